package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/service-catalog/internal/api/metrics"
	"github.com/99minutos/service-catalog/internal/core/domain"
	"github.com/99minutos/service-catalog/internal/core/ports"
)

const (
	msgServiceNotFound = "Service not found"
	msgRequiredFields  = "Name, description, and price are required"
	msgInvalidPayload  = "Invalid request payload"
	msgServiceCreated  = "Service created successfully"
	msgServiceUpdated  = "Service updated successfully"
	msgServiceDeleted  = "Service deleted successfully"
	msgListFailed      = "Server error while fetching services"
	msgGetFailed       = "Server error while fetching service"
	msgCreateFailed    = "Server error while creating service"
	msgUpdateFailed    = "Server error while updating service"
	msgDeleteFailed    = "Server error while deleting service"
)

// ServiceHandler handles HTTP requests for catalog services.
type ServiceHandler struct {
	service ports.CatalogService
	log     zerolog.Logger
}

func NewServiceHandler(service ports.CatalogService, log zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{service: service, log: log}
}

// List handles GET /services.
//
// @Summary      List active services
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Case-insensitive match on name or description"
// @Param        category   query     string  false  "Exact category; 'all' disables the filter"
// @Param        sortBy     query     string  false  "Sort field (default name)"
// @Param        sortOrder  query     string  false  "asc | desc (default asc)"
// @Success      200        {object}  listServicesResponse
// @Failure      401        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.service.ListServices(c.Request().Context(), ports.ListServicesInput{
		Search:    c.QueryParam("search"),
		Category:  c.QueryParam("category"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	})
	if err != nil {
		return h.internal(c, "list", err, msgListFailed)
	}

	metrics.ServiceOperationsTotal.WithLabelValues("list", "ok").Inc()
	metrics.ServicesListedCount.Observe(float64(len(services)))

	return c.JSON(http.StatusOK, listServicesResponse{
		Success:  true,
		Count:    len(services),
		Services: toServiceResponses(services),
	})
}

// Get handles GET /services/:id. Inactive services are returned too.
//
// @Summary      Get a service by id
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  getServiceResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /services/{id} [get]
func (h *ServiceHandler) Get(c echo.Context) error {
	svc, err := h.service.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return h.notFound(c, "get")
		}
		return h.internal(c, "get", err, msgGetFailed)
	}

	metrics.ServiceOperationsTotal.WithLabelValues("get", "ok").Inc()
	return c.JSON(http.StatusOK, getServiceResponse{Success: true, Service: toServiceResponse(svc)})
}

// Create handles POST /services.
//
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceRequest  true  "Service details"
// @Success      201   {object}  mutateServiceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		metrics.ServiceOperationsTotal.WithLabelValues("create", "invalid").Inc()
		return fail(c, http.StatusBadRequest, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		h.log.Debug().Err(err).Msg("create service rejected")
		metrics.ServiceOperationsTotal.WithLabelValues("create", "invalid").Inc()
		return fail(c, http.StatusBadRequest, msgRequiredFields)
	}

	svc, err := h.service.CreateService(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return h.internal(c, "create", err, msgCreateFailed)
	}

	metrics.ServiceOperationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, mutateServiceResponse{
		Success: true,
		Message: msgServiceCreated,
		Service: toServiceResponse(svc),
	})
}

// Update handles PUT /services/:id with partial-update semantics.
//
// @Summary      Update a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Service id"
// @Param        body  body      updateServiceRequest  true  "Fields to change"
// @Success      200   {object}  mutateServiceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /services/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		metrics.ServiceOperationsTotal.WithLabelValues("update", "invalid").Inc()
		return fail(c, http.StatusBadRequest, msgInvalidPayload)
	}

	svc, err := h.service.UpdateService(c.Request().Context(), c.Param("id"), toPatch(req))
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return h.notFound(c, "update")
		}
		return h.internal(c, "update", err, msgUpdateFailed)
	}

	metrics.ServiceOperationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, mutateServiceResponse{
		Success: true,
		Message: msgServiceUpdated,
		Service: toServiceResponse(svc),
	})
}

// Delete handles DELETE /services/:id by deactivating the service.
//
// @Summary      Soft-delete a service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteService(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return h.notFound(c, "delete")
		}
		return h.internal(c, "delete", err, msgDeleteFailed)
	}

	metrics.ServiceOperationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: msgServiceDeleted})
}

func (h *ServiceHandler) notFound(c echo.Context, op string) error {
	metrics.ServiceOperationsTotal.WithLabelValues(op, "not_found").Inc()
	return fail(c, http.StatusNotFound, msgServiceNotFound)
}

// internal logs the real cause and answers with a generic message.
func (h *ServiceHandler) internal(c echo.Context, op string, err error, msg string) error {
	metrics.ServiceOperationsTotal.WithLabelValues(op, "error").Inc()
	h.log.Error().
		Err(err).
		Str("operation", op).
		Str("service_id", c.Param("id")).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("service operation failed")
	return fail(c, http.StatusInternalServerError, msg)
}
