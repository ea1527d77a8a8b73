package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shivon404/financy-backend/internal/api/metrics"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

// AdminHandler serves account administration. Routes are guarded by RBAC.
type AdminHandler struct {
	service ports.AccountService
}

func NewAdminHandler(service ports.AccountService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers returns every account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.User}
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", users)
}

// UpdateUser overwrites an account's editable fields.
//
// @Summary      Update user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "User ID"
// @Param        body  body      adminUpdateUserRequest  true  "Fields"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req adminUpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.service.AdminUpdateUser(c.Request().Context(), actorID, ports.AdminUpdateUserInput{
		UserID:           id,
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		StudentID:        req.StudentID,
		MonthlyAllowance: req.MonthlyAllowance,
		Status:           req.Status,
		Password:         req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user updated", nil)
}

// SetStatus applies an explicit status.
//
// @Summary      Set user status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "User ID"
// @Param        body  body      statusRequest  true  "Status"
// @Success      200   {object}  envelope{data=statusResponse}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/users/{id}/status [put]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.SetUserStatus(c.Request().Context(), actorID, id, req.Status); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "status updated", statusResponse{UserID: id, Status: req.Status})
}

// ToggleStatus flips active and inactive.
//
// @Summary      Toggle user status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  envelope{data=statusResponse}
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/status/toggle [post]
func (h *AdminHandler) ToggleStatus(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.service.ToggleUserStatus(c.Request().Context(), actorID, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "status updated", statusResponse{UserID: id, Status: string(status)})
}

// DeleteUser removes an account with all its expenses and budgets.
//
// @Summary      Delete user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	err = h.service.AdminDeleteUser(c.Request().Context(), actorID, id)
	metrics.AccountDeletionsTotal.WithLabelValues("admin", deletionResult(err)).Inc()
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "user deleted", nil)
}

// UserStatistics summarises one user's activity.
//
// @Summary      User statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  envelope{data=domain.UserStatistics}
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/statistics [get]
func (h *AdminHandler) UserStatistics(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.service.UserStatistics(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", stats)
}

// SystemStats summarises the whole installation.
//
// @Summary      System statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.SystemStats}
// @Router       /api/admin/stats [get]
func (h *AdminHandler) SystemStats(c echo.Context) error {
	stats, err := h.service.SystemStats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", stats)
}
