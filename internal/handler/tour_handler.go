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

// TourHandler exposes tour CRUD and review endpoints
type TourHandler struct {
	tours   *service.TourService
	reviews *service.ReviewService
}

// NewTourHandler creates the tour handler
func NewTourHandler(tours *service.TourService, reviews *service.ReviewService) *TourHandler {
	return &TourHandler{tours: tours, reviews: reviews}
}

// Create registers a new tour
func (h *TourHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tour", "create")

	var req service.TourInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid tour payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	tour, err := h.tours.Create(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Tour created",
		zap.Uint("tour_id", tour.ID),
		zap.String("destination", tour.Destination))
	return c.JSON(http.StatusCreated, tour)
}

// Get returns one tour by id
func (h *TourHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	tour, err := h.tours.Get(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, tour)
}

// Update applies a partial update to a tour
func (h *TourHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tour", "update")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.TourInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid tour payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	tour, err := h.tours.Update(id, req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Tour updated", zap.Uint("tour_id", tour.ID))
	return c.JSON(http.StatusOK, tour)
}

// Delete soft-deletes a tour without bookings
func (h *TourHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("tour", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.tours.Delete(id); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Tour deleted", zap.Uint("tour_id", id))
	return c.NoContent(http.StatusNoContent)
}

// List returns tours filtered by ?destination=, ?active=, ?from=, ?to=
func (h *TourHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	filter := service.TourFilter{
		Destination: c.QueryParam("destination"),
		ActiveOnly:  c.QueryParam("active") == "true",
	}
	if from, err := time.Parse("2006-01-02", c.QueryParam("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.QueryParam("to")); err == nil {
		filter.To = &to
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		filter.Offset = v
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	tours, err := h.tours.List(filter)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tours": tours, "count": len(tours)})
}

// CreateReview leaves a client review on a tour
func (h *TourHandler) CreateReview(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("review", "create")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.CreateReviewInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid review payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	req.TourID = id

	defer prometheus.TrackDBOperation("insert")(time.Now())
	review, err := h.reviews.Create(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Review created",
		zap.Uint("tour_id", review.TourID),
		zap.Int("rating", review.Rating))
	return c.JSON(http.StatusCreated, review)
}

// ListReviews returns the reviews of a tour
func (h *TourHandler) ListReviews(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	reviews, err := h.reviews.ListForTour(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews, "count": len(reviews)})
}
