package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/internal/utils"
	"github.com/NyashaEysenck/offline-wallet/services/ledger"
)

// LedgerHandler handles HTTP requests for ledger operations
type LedgerHandler struct {
	ledgerUC ledger.LedgerUC
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerUC ledger.LedgerUC) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Commit handles transaction commit submissions. The response body always
// carries the outcome; the HTTP status mirrors it so plain clients can
// branch without parsing.
func (h *LedgerHandler) Commit(c echo.Context) error {
	var req models.CommitRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.ledgerUC.Commit(c.Request().Context(), &req)
	if err != nil {
		logger.Error("Commit failed",
			logger.Err(err),
			logger.String("receipt_id", req.ReceiptID))
		return utils.InternalServerErrorResponse(c, "Failed to commit transaction")
	}

	commitOutcomes.WithLabelValues(string(resp.Outcome)).Inc()

	switch resp.Outcome {
	case models.OutcomeConflict:
		return c.JSON(http.StatusConflict, resp)
	case models.OutcomeRejected:
		return c.JSON(http.StatusUnprocessableEntity, resp)
	default:
		return c.JSON(http.StatusOK, resp)
	}
}

// GetTransaction retrieves a committed transaction by receipt ID
func (h *LedgerHandler) GetTransaction(c echo.Context) error {
	receiptID := c.Param("receiptId")
	if receiptID == "" {
		return utils.BadRequestResponse(c, "Invalid receipt ID")
	}

	txn, err := h.ledgerUC.GetTransaction(c.Request().Context(), receiptID)
	if err != nil {
		if errors.Is(err, ledger.ErrReceiptNotFound) {
			return utils.NotFoundResponse(c, "Transaction not found")
		}
		logger.Error("Failed to get transaction", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to get transaction")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transaction retrieved", txn)
}

// ListTransactions returns every transaction an identity participates in
func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	identity := c.QueryParam("identity")
	if identity == "" {
		return utils.BadRequestResponse(c, "identity query parameter is required")
	}

	txns, err := h.ledgerUC.ListTransactions(c.Request().Context(), identity)
	if err != nil {
		logger.Error("Failed to list transactions", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to list transactions")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transactions retrieved", txns)
}

// GetBalance returns an identity's balance
func (h *LedgerHandler) GetBalance(c echo.Context) error {
	identity := c.QueryParam("identity")
	if identity == "" {
		return utils.BadRequestResponse(c, "identity query parameter is required")
	}

	balance, err := h.ledgerUC.GetBalance(c.Request().Context(), identity)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return utils.NotFoundResponse(c, "Account not found")
		}
		logger.Error("Failed to get balance", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to get balance")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Balance retrieved", balance)
}

// Reserve moves available funds into the reserved bucket
func (h *LedgerHandler) Reserve(c echo.Context) error {
	return h.balanceOp(c, "reserve", h.ledgerUC.Reserve)
}

// Release returns reserved funds to the available bucket
func (h *LedgerHandler) Release(c echo.Context) error {
	return h.balanceOp(c, "release", h.ledgerUC.Release)
}

// Deposit credits available funds
func (h *LedgerHandler) Deposit(c echo.Context) error {
	return h.balanceOp(c, "deposit", h.ledgerUC.Deposit)
}

func (h *LedgerHandler) balanceOp(c echo.Context, op string,
	call func(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error)) error {

	var req models.BalanceRequest
	if err := c.Bind(&req); err != nil {
		balanceOps.WithLabelValues(op, "invalid").Inc()
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Identity == "" {
		balanceOps.WithLabelValues(op, "invalid").Inc()
		return utils.BadRequestResponse(c, "identity is required")
	}

	balance, err := call(c.Request().Context(), req.Identity, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrAccountNotFound):
			balanceOps.WithLabelValues(op, "not_found").Inc()
			return utils.NotFoundResponse(c, "Account not found")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			balanceOps.WithLabelValues(op, "insufficient").Inc()
			return utils.UnprocessableEntityResponse(c, "Insufficient funds")
		case errors.Is(err, ledger.ErrInvalidCommit):
			balanceOps.WithLabelValues(op, "invalid").Inc()
			return utils.BadRequestResponse(c, err.Error())
		default:
			balanceOps.WithLabelValues(op, "error").Inc()
			logger.Error("Balance operation failed",
				logger.Err(err),
				logger.String("operation", op))
			return utils.InternalServerErrorResponse(c, "Balance operation failed")
		}
	}

	balanceOps.WithLabelValues(op, "ok").Inc()
	return utils.SuccessResponse(c, http.StatusOK, "Balance updated", balance)
}
