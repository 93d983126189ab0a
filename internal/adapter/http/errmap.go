package http

import (
	"errors"
	"net/http"

	confDomain "hedniya-backend/internal/domain/confirmation"
	loanDomain "hedniya-backend/internal/domain/loan"

	"github.com/labstack/echo/v4"
)

// respondError maps domain errors onto the HTTP surface. Anything
// unrecognized is a 500 with a generic body; the real error stays in the
// request log.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, confDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrTerminalState),
		errors.Is(err, loanDomain.ErrAlreadyConfirmed),
		errors.Is(err, loanDomain.ErrConflict),
		errors.Is(err, confDomain.ErrAlreadyFinalized):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrInvalidParticipants),
		errors.Is(err, loanDomain.ErrInvalidAmount),
		errors.Is(err, confDomain.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
