package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shivon404/financy-backend/internal/api/metrics"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

type BudgetHandler struct {
	service ports.BudgetService
}

func NewBudgetHandler(service ports.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// List resolves the caller's active budgets for a month with spend and status.
//
// @Summary      Monthly budget overview
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "YYYY-MM or YYYY-MM-DD; defaults to the current month"
// @Success      200    {object}  envelope{data=[]budgetResponse}
// @Failure      400    {object}  errorResponse
// @Router       /api/budgets [get]
func (h *BudgetHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var month *time.Time
	if raw := c.QueryParam("month"); raw != "" {
		m, err := parseMonth(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "month: "+err.Error())
		}
		month = &m
	}

	views, err := h.service.ResolveBudgets(c.Request().Context(), userID, month)
	if err != nil {
		return err
	}

	out := make([]budgetResponse, 0, len(views))
	for _, v := range views {
		r := toBudgetResponse(v)
		metrics.BudgetStatusTotal.WithLabelValues(r.Status).Inc()
		out = append(out, r)
	}
	metrics.BudgetsResolvedTotal.Inc()
	return respond(c, http.StatusOK, "", out)
}

// Set creates or updates the budget for a category and month.
//
// @Summary      Set budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      budgetRequest  true  "Budget"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Router       /api/budgets [post]
func (h *BudgetHandler) Set(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req budgetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	month, err := parseMonth(req.Month)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "month: "+err.Error())
	}

	err = h.service.SetBudget(c.Request().Context(), ports.SetBudgetInput{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Limit:      req.BudgetLimit,
		Month:      month,
	})
	if err != nil {
		return err
	}

	metrics.BudgetsSetTotal.Inc()
	return respond(c, http.StatusOK, "budget saved", nil)
}

// Delete removes one of the caller's budget rows.
//
// @Summary      Delete budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Budget ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /api/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteBudget(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "budget deleted", nil)
}
