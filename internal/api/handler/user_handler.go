package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eshopsolution/admin-api/internal/api/metrics"
	"github.com/eshopsolution/admin-api/internal/core/domain"
	"github.com/eshopsolution/admin-api/internal/core/ports"
)

// UserHandler exposes the auth service operations over HTTP.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Authenticate verifies credentials and returns a session token.
//
// @Summary      Authenticate and obtain a session token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Credentials"
// @Success      200   {object}  authenticateResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/authenticate [post]
func (h *UserHandler) Authenticate(c echo.Context) error {
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.service.Authenticate(c.Request().Context(), req.UserName, req.Password, req.RememberMe)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return err
	}
	if !res.IsOk() {
		metrics.SignInsTotal.WithLabelValues(signInLabel(res.Kind())).Inc()
		return c.JSON(failureStatus(res.Kind()), errorResponse{Error: res.Message()})
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authenticateResponse{Token: res.Value()})
}

func signInLabel(kind domain.FailureKind) string {
	if kind == domain.FailureNotFound {
		return "not_found"
	}
	return "unauthorized"
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  map[string]bool
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		UserName: req.UserName,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}
	if !res.IsOk() {
		metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		return c.JSON(failureStatus(res.Kind()), errorResponse{Error: res.Message()})
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, map[string]bool{"created": true})
}

// Update mutates email, name and phone of an account.
//
// @Summary      Update an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Mutable fields"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateInput{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	if !res.IsOk() {
		return c.JSON(failureStatus(res.Kind()), errorResponse{Error: res.Message()})
	}

	return c.JSON(http.StatusOK, map[string]bool{"updated": true})
}

// Delete removes an account and its role associations.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	res, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !res.IsOk() {
		return c.JSON(failureStatus(res.Kind()), errorResponse{Error: res.Message()})
	}

	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

// GetByID returns one account including its current role names.
//
// @Summary      Get an account by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  domain.UserView
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	res, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !res.IsOk() {
		return c.JSON(failureStatus(res.Kind()), errorResponse{Error: res.Message()})
	}

	return c.JSON(http.StatusOK, res.Value())
}

// GetUsersPaging returns one page of accounts filtered by keyword.
//
// @Summary      Page through accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        keyword    query  string  false  "Substring matched against username, phone and email"
// @Param        pageIndex  query  int     false  "1-based page index"  default(1)
// @Param        pageSize   query  int     false  "Page size"           default(10)
// @Success      200  {object}  domain.PagedResult[domain.UserView]
// @Failure      400  {object}  errorResponse
// @Router       /v1/users/paging [get]
func (h *UserHandler) GetUsersPaging(c echo.Context) error {
	pageIndex := queryInt(c, "pageIndex", 1)
	pageSize := queryInt(c, "pageSize", 10)

	start := time.Now()
	res, err := h.service.GetUsersPaging(c.Request().Context(), ports.PagingInput{
		Keyword:   c.QueryParam("keyword"),
		PageIndex: pageIndex,
		PageSize:  pageSize,
	})
	if err != nil {
		return err
	}
	metrics.UserPagingDuration.Observe(time.Since(start).Seconds())

	if !res.IsOk() {
		return c.JSON(failureStatus(res.Kind()), errorResponse{Error: res.Message()})
	}
	return c.JSON(http.StatusOK, res.Value())
}

// AssignRoles reconciles an account's role membership with the selection.
//
// @Summary      Assign roles to an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "User ID"
// @Param        body  body      assignRolesRequest  true  "Desired role selection"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id}/roles [put]
func (h *UserHandler) AssignRoles(c echo.Context) error {
	var req assignRolesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	selection := make([]domain.RoleSelection, 0, len(req.Roles))
	for _, r := range req.Roles {
		selection = append(selection, domain.RoleSelection{Name: r.Name, Selected: r.Selected})
	}

	res, err := h.service.AssignRoles(c.Request().Context(), c.Param("id"), selection)
	if err != nil {
		metrics.RoleAssignmentsTotal.WithLabelValues("error").Inc()
		return err
	}
	if !res.IsOk() {
		metrics.RoleAssignmentsTotal.WithLabelValues("not_found").Inc()
		return c.JSON(failureStatus(res.Kind()), errorResponse{Error: res.Message()})
	}

	metrics.RoleAssignmentsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"assigned": true})
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
