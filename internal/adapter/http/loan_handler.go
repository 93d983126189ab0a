package http

import (
	"net/http"
	"time"

	loanDomain "hedniya-backend/internal/domain/loan"
	"hedniya-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	LenderID    string          `json:"lender_id"     validate:"required,hex32"`
	BorrowerID  string          `json:"borrower_id"   validate:"required,hex32"`
	Amount      decimal.Decimal `json:"amount"        validate:"dec2"`
	Currency    string          `json:"currency"      validate:"omitempty,oneof=MAD USD EUR"`
	DueDate     string          `json:"due_date"      validate:"required,datetime=2006-01-02"`
	CreatedByID string          `json:"created_by_id" validate:"required,hex32"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	due, _ := time.ParseInLocation("2006-01-02", req.DueDate, time.UTC)

	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		LenderID:    req.LenderID,
		BorrowerID:  req.BorrowerID,
		Amount:      req.Amount,
		Currency:    loanDomain.Currency(req.Currency),
		DueDate:     due,
		CreatedByID: req.CreatedByID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type confirmLoanReq struct {
	UserID    string `json:"user_id"   validate:"required,hex32"`
	Confirmed *bool  `json:"confirmed" validate:"required"`
}

func (h *LoanHandler) ConfirmLoan(c echo.Context) error {
	var req confirmLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Confirm(c.Request().Context(), loan.ConfirmInput{
		LoanID:    c.Param("loan_id"),
		UserID:    req.UserID,
		Confirmed: *req.Confirmed,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type cancelLoanReq struct {
	UserID string `json:"user_id" validate:"required,hex32"`
}

func (h *LoanHandler) CancelLoan(c echo.Context) error {
	var req cancelLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Cancel(c.Request().Context(), c.Param("loan_id"), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Dashboard(c echo.Context) error {
	userID := c.Param("user_id")
	if !reHex32.MatchString(userID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}
	dto, err := h.uc.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
