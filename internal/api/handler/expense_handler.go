package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Shivon404/financy-backend/internal/api/metrics"
	"github.com/Shivon404/financy-backend/internal/core/ports"
)

const idempotencyHeader = "Idempotency-Key"

type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// List returns the caller's expenses, newest first.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        category_id  query     int     false  "Category filter"
// @Param        start_date   query     string  false  "Inclusive start (YYYY-MM-DD)"
// @Param        end_date     query     string  false  "Inclusive end (YYYY-MM-DD)"
// @Success      200          {object}  envelope{data=[]expenseResponse}
// @Failure      400          {object}  errorResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filter := ports.ExpenseFilter{UserID: userID}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		filter.CategoryID = &id
	}
	if raw := c.QueryParam("start_date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "start_date: "+err.Error())
		}
		filter.StartDate = &d
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "end_date: "+err.Error())
		}
		filter.EndDate = &d
	}

	expenses, err := h.service.ListExpenses(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toExpenseResponses(expenses))
}

// Create records an expense. A repeated Idempotency-Key is acknowledged
// without writing a second row.
//
// @Summary      Add expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Client-generated key to deduplicate retries"
// @Param        body             body      expenseRequest  true   "Expense"
// @Success      201              {object}  envelope{data=domain.Expense}
// @Success      200              {object}  envelope
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	in, err := h.bindExpense(c)
	if err != nil {
		return err
	}
	in.IdempotencyKey = c.Request().Header.Get(idempotencyHeader)

	res, err := h.service.AddExpense(c.Request().Context(), in)
	if err != nil {
		return err
	}
	if res.Replayed {
		metrics.ExpensesRecordedTotal.WithLabelValues("replayed").Inc()
		return respond(c, http.StatusOK, "expense already recorded", nil)
	}

	metrics.ExpensesRecordedTotal.WithLabelValues("created").Inc()
	return respond(c, http.StatusCreated, "expense recorded", res.Expense)
}

// Update edits one of the caller's expenses.
//
// @Summary      Update expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Expense ID"
// @Param        body  body      expenseRequest  true  "Expense"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	in, err := h.bindExpense(c)
	if err != nil {
		return err
	}
	in.ID = id

	if err := h.service.UpdateExpense(c.Request().Context(), in); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "expense updated", nil)
}

// Delete removes one of the caller's expenses.
//
// @Summary      Delete expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  errorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteExpense(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "expense deleted", nil)
}

func (h *ExpenseHandler) bindExpense(c echo.Context) (ports.ExpenseInput, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return ports.ExpenseInput{}, err
	}
	var req expenseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return ports.ExpenseInput{}, err
	}
	date, err := parseDate(req.ExpenseDate)
	if err != nil {
		return ports.ExpenseInput{}, echo.NewHTTPError(http.StatusBadRequest, "expense_date: "+err.Error())
	}
	return ports.ExpenseInput{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		ExpenseDate: date,
		Description: req.Description,
	}, nil
}
