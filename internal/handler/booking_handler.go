package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sshperkin/travel-agency/internal/service"
	"github.com/sshperkin/travel-agency/pkg/logger"
	"github.com/sshperkin/travel-agency/prometheus"
)

// BookingHandler exposes booking and payment endpoints
type BookingHandler struct {
	bookings *service.BookingService
	payments *service.PaymentService
}

// NewBookingHandler creates the booking handler
func NewBookingHandler(bookings *service.BookingService, payments *service.PaymentService) *BookingHandler {
	return &BookingHandler{bookings: bookings, payments: payments}
}

// Create places a new pending booking
func (h *BookingHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("booking", "create")

	var req service.CreateBookingInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid booking payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	booking, err := h.bookings.Create(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Booking created",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("client_id", booking.ClientID),
		zap.Uint("tour_id", booking.TourID))
	return c.JSON(http.StatusCreated, booking)
}

// Get returns one booking with its related records
func (h *BookingHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	booking, err := h.bookings.Get(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// Confirm moves a pending booking to confirmed
func (h *BookingHandler) Confirm(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("booking", "confirm")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	booking, err := h.bookings.Confirm(id)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Booking confirmed", zap.Uint("booking_id", booking.ID))
	return c.JSON(http.StatusOK, booking)
}

// Cancel cancels a booking and frees its seat
func (h *BookingHandler) Cancel(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("booking", "cancel")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	booking, err := h.bookings.Cancel(id)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Booking cancelled", zap.Uint("booking_id", booking.ID))
	return c.JSON(http.StatusOK, booking)
}

// Delete removes a booking without payments
func (h *BookingHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("booking", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.bookings.Delete(id); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Booking deleted", zap.Uint("booking_id", id))
	return c.NoContent(http.StatusNoContent)
}

// List returns bookings filtered by ?client_id=, ?tour_id=, ?status=
func (h *BookingHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	filter := service.BookingFilter{Status: c.QueryParam("status")}
	if v, err := strconv.ParseUint(c.QueryParam("client_id"), 10, 32); err == nil {
		filter.ClientID = uint(v)
	}
	if v, err := strconv.ParseUint(c.QueryParam("tour_id"), 10, 32); err == nil {
		filter.TourID = uint(v)
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		filter.Offset = v
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	bookings, err := h.bookings.List(filter)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings, "count": len(bookings)})
}

// RecordPayment records a payment against a booking
func (h *BookingHandler) RecordPayment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("payment", "create")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.RecordPaymentInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid payment payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	req.BookingID = id

	defer prometheus.TrackDBOperation("insert")(time.Now())
	payment, err := h.payments.Record(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Payment recorded",
		zap.Uint("booking_id", payment.BookingID),
		zap.Float64("amount", payment.Amount))
	return c.JSON(http.StatusCreated, payment)
}

// ListPayments returns the payments recorded against a booking
func (h *BookingHandler) ListPayments(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	payments, err := h.payments.ListForBooking(id)
	if err != nil {
		return respondError(c, log, err)
	}

	total, err := h.payments.PaidTotal(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments, "total_paid": total})
}
