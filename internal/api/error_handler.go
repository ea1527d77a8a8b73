package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Shivon404/financy-backend/internal/core/domain"
)

// errorBody is the failure shape of the response envelope.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// statusBySentinel maps business outcomes to HTTP status codes. The sentinel
// text is what the client sees.
var statusBySentinel = []struct {
	err  error
	code int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrAccountInactive, http.StatusForbidden},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrCategoryNotFound, http.StatusNotFound},
	{domain.ErrExpenseNotFound, http.StatusNotFound},
	{domain.ErrBudgetNotFound, http.StatusNotFound},
	{domain.ErrEmailTaken, http.StatusConflict},
	{domain.ErrCategoryInUse, http.StatusConflict},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - maps business sentinels to 4xx codes,
//   - passes echo.HTTPError codes through,
//   - logs anything else and answers 500 without leaking the cause.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorBody{Success: false, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logFault(log, c, err)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if !domain.IsBusiness(err) {
		logFault(log, c, err)
		return http.StatusInternalServerError, "internal server error"
	}

	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			return m.code, businessMessage(err, m.err)
		}
	}
	// business outcome without a dedicated status
	return http.StatusBadRequest, err.Error()
}

// businessMessage keeps the detail of an invalid-input error and otherwise
// reports the bare sentinel text.
func businessMessage(err, sentinel error) string {
	if sentinel == domain.ErrInvalidInput {
		return err.Error()
	}
	return sentinel.Error()
}

func logFault(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
