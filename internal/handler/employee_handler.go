package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sshperkin/travel-agency/internal/service"
	"github.com/sshperkin/travel-agency/pkg/logger"
	"github.com/sshperkin/travel-agency/prometheus"
)

// EmployeeHandler exposes employee CRUD endpoints
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler creates the employee handler
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Create registers a new employee
func (h *EmployeeHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("employee", "create")

	var req service.EmployeeInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid employee payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	employee, err := h.employees.Create(req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Employee created", zap.Uint("employee_id", employee.ID))
	return c.JSON(http.StatusCreated, employee)
}

// Get returns one employee by id
func (h *EmployeeHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	employee, err := h.employees.Get(id)
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, employee)
}

// Update applies a partial update to an employee
func (h *EmployeeHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("employee", "update")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req service.EmployeeInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid employee payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	employee, err := h.employees.Update(id, req)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Employee updated", zap.Uint("employee_id", employee.ID))
	return c.JSON(http.StatusOK, employee)
}

// Delete soft-deletes an employee without bookings
func (h *EmployeeHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("employee", "delete")

	id, err := idParam(c)
	if err != nil {
		return respondError(c, log, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.employees.Delete(id); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Employee deleted", zap.Uint("employee_id", id))
	return c.NoContent(http.StatusNoContent)
}

// List returns employees, ?active=true restricts to active ones
func (h *EmployeeHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	employees, err := h.employees.List(c.QueryParam("active") == "true")
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"employees": employees, "count": len(employees)})
}
