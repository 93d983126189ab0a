package http

import (
	"encoding/json"
	"net/http"

	confDomain "hedniya-backend/internal/domain/confirmation"
	"hedniya-backend/internal/usecase/proposal"

	"github.com/labstack/echo/v4"
)

type ProposalHandler struct{ uc *proposal.Usecase }

func NewProposalHandler(uc *proposal.Usecase) *ProposalHandler { return &ProposalHandler{uc: uc} }

type proposeReq struct {
	Type          string          `json:"type"            validate:"required,oneof=REPAYMENT DUE_DATE_CHANGE"`
	Payload       json.RawMessage `json:"payload"         validate:"required"`
	RequestedByID string          `json:"requested_by_id" validate:"required,hex32"`
}

func (h *ProposalHandler) Propose(c echo.Context) error {
	var req proposeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Propose(c.Request().Context(), proposal.ProposeInput{
		LoanID:        c.Param("loan_id"),
		Type:          confDomain.Type(req.Type),
		Payload:       req.Payload,
		RequestedByID: req.RequestedByID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type actReq struct {
	ActorUserID string `json:"actor_user_id" validate:"required,hex32"`
	Accept      *bool  `json:"accept"        validate:"required"`
}

func (h *ProposalHandler) Act(c echo.Context) error {
	var req actReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Act(c.Request().Context(), proposal.ActInput{
		ConfirmationID: c.Param("confirmation_id"),
		ActorUserID:    req.ActorUserID,
		Accept:         *req.Accept,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
