package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/simplecrm/crm-system/internal/core/domain"
	"github.com/simplecrm/crm-system/internal/core/ports"
)

// RequestHandler handles HTTP requests for the request lifecycle.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// List handles GET /v1/requests.
//
// @Summary      List requests with optional status filter and sort
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Exact status to filter by"
// @Param        sort    query     string  false  "Sort order"  Enums(date_asc, date_desc, status_asc, status_desc)
// @Success      200     {object}  listRequestsResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), ports.ListRequestsInput{
		Status: c.QueryParam("status"),
		Sort:   c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}

	data := make([]requestResponse, 0, len(result.Items))
	for _, item := range result.Items {
		data = append(data, toRequestResponse(item))
	}

	return c.JSON(http.StatusOK, listRequestsResponse{
		Data:         data,
		StatusFilter: result.StatusFilter,
		SortTokens: sortTokensResponse{
			Date:   result.SortTokens.Date,
			Status: result.SortTokens.Status,
		},
	})
}

// Get handles GET /v1/requests/:id. It doubles as the read-only confirmation
// step of the delete flow.
//
// @Summary      Get a request by id
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request id"
// @Success      200  {object}  requestResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	req, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRequestResponse(req))
}

// Create handles POST /v1/requests. Status is never accepted from the
// caller: new requests always start in the default status.
//
// @Summary      Create a new request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Request details"
// @Success      201   {object}  requestResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateRequestInput{
		Title:               req.Title,
		Description:         req.Description,
		ResponsibleEmployee: req.ResponsibleEmployee,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRequestResponse(created))
}

// Update handles PUT /v1/requests/:id. The body id must match the path id;
// a mismatch reads as a missing record, not a validation error.
//
// @Summary      Update a request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Request id"
// @Param        body  body      updateRequestRequest  true  "Updated request"
// @Success      200   {object}  requestResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/requests/{id} [put]
func (h *RequestHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID != id {
		return domain.ErrRequestNotFound
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), ports.UpdateRequestInput{
		PathID:              id,
		ID:                  req.ID,
		Title:               req.Title,
		Description:         req.Description,
		Status:              req.Status,
		ResponsibleEmployee: req.ResponsibleEmployee,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRequestResponse(updated))
}

// Delete handles DELETE /v1/requests/:id, the commit step of the two-step
// delete. Deleting an id that is already gone still returns 204.
//
// @Summary      Delete a request
// @Tags         requests
// @Security     BearerAuth
// @Param        id  path  int  true  "Request id"
// @Success      204
// @Router       /v1/requests/{id} [delete]
func (h *RequestHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, domain.ErrRequestNotFound
	}
	return id, nil
}

func toRequestResponse(r *domain.Request) requestResponse {
	return requestResponse{
		ID:                  r.ID,
		CreatedAt:           r.CreatedAt,
		Title:               r.Title,
		Description:         r.Description,
		Status:              r.Status,
		ResponsibleEmployee: r.ResponsibleEmployee,
	}
}
