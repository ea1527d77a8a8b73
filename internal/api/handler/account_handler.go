package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shivon404/financy-backend/internal/api/metrics"
	"github.com/Shivon404/financy-backend/internal/core/domain"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

// AccountHandler serves the authenticated user's own account.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Me returns the caller's profile.
//
// @Summary      Current user
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.User}
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", user)
}

// UpdateProfile changes the caller's name and student id.
//
// @Summary      Update profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  envelope{data=domain.User}
// @Failure      400   {object}  errorResponse
// @Router       /api/me/profile [put]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), userID, ports.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		StudentID: req.StudentID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "profile updated", user)
}

// UpdateAllowance sets the caller's monthly allowance.
//
// @Summary      Update monthly allowance
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      allowanceRequest  true  "New allowance"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Router       /api/me/allowance [put]
func (h *AccountHandler) UpdateAllowance(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req allowanceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateAllowance(c.Request().Context(), userID, req.MonthlyAllowance); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "allowance updated", nil)
}

// Statistics summarises the caller's activity.
//
// @Summary      My statistics
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.UserStatistics}
// @Router       /api/me/statistics [get]
func (h *AccountHandler) Statistics(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	stats, err := h.service.UserStatistics(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", stats)
}

// Delete removes the caller's account with all expenses and budgets.
//
// @Summary      Delete my account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /api/me [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	err = h.service.DeleteAccount(c.Request().Context(), userID)
	metrics.AccountDeletionsTotal.WithLabelValues("self", deletionResult(err)).Inc()
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "account deleted", nil)
}

func deletionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}
