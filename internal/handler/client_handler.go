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

// ClientHandler exposes client CRUD and CSV import/export endpoints
type ClientHandler struct {
	clients *service.ClientService
	export  *service.ExportService
}

// NewClientHandler creates the client handler
func NewClientHandler(clients *service.ClientService, export *service.ExportService) *ClientHandler {
	return &ClientHandler{clients: clients, export: export}
}

// Create registers a new client
func (h *ClientHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "create")

	var req service.ClientInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid client payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	client, err := h.clients.Create(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Client created", zap.Uint("client_id", client.ID))
	return c.JSON(http.StatusCreated, client)
}

// Get returns one client by id
func (h *ClientHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	client, err := h.clients.Get(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Update applies a partial update to a client
func (h *ClientHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "update")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.ClientInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid client payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	client, err := h.clients.Update(id, req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Client updated", zap.Uint("client_id", client.ID))
	return c.JSON(http.StatusOK, client)
}

// Delete soft-archives a client without bookings
func (h *ClientHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.clients.Delete(id); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Client archived", zap.Uint("client_id", id))
	return c.NoContent(http.StatusNoContent)
}

// List returns clients, optionally filtered by ?search=, ?limit=, ?offset=
func (h *ClientHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	filter := service.ClientFilter{Search: c.QueryParam("search")}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		filter.Offset = v
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	clients, err := h.clients.List(filter)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"clients": clients, "count": len(clients)})
}

// ExportCSV streams all clients as a CSV attachment
func (h *ClientHandler) ExportCSV(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "export")

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="clients.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	defer prometheus.TrackDBOperation("query")(time.Now())
	count, err := h.export.ExportClients(c.Response())
	if err != nil {
		log.Error("Client export failed", zap.Error(err))
		return err
	}

	log.Info("Clients exported", zap.Int("count", count))
	return nil
}

// ImportCSV reads clients from the request body in the export format
func (h *ClientHandler) ImportCSV(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("client", "import")

	defer prometheus.TrackDBOperation("insert")(time.Now())
	count, err := h.export.ImportClients(c.Request().Body)
	if err != nil {
		log.Error("Client import failed", zap.Int("imported", count), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Clients imported", zap.Int("count", count))
	return c.JSON(http.StatusOK, echo.Map{"imported": count})
}
