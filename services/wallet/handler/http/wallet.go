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
	"github.com/NyashaEysenck/offline-wallet/services/wallet"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/payload"
)

// StatusReader exposes the monitor's current connectivity view
type StatusReader interface {
	Status() models.ConnStatus
}

// WalletHandler handles HTTP requests for wallet operations
type WalletHandler struct {
	walletUC wallet.WalletUC
	monitor  StatusReader
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUC wallet.WalletUC, monitor StatusReader) *WalletHandler {
	return &WalletHandler{
		walletUC: walletUC,
		monitor:  monitor,
	}
}

// IntentRequest is the request body for creating a payment intent
type IntentRequest struct {
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	Channel   models.Channel  `json:"channel"`
}

// PayloadRequest carries an opaque transport payload
type PayloadRequest struct {
	Payload string `json:"payload"`
}

// AmountRequest carries an amount for balance operations
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateIntent handles payment intent creation requests
func (h *WalletHandler) CreateIntent(c echo.Context) error {
	var req IntentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	encoded, err := h.walletUC.CreateOfflineIntent(c.Request().Context(), req.Recipient, req.Amount, req.Note, req.Channel)
	if err != nil {
		return h.payloadError(c, err, "Failed to create payment intent")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Payment intent created", map[string]string{
		"payload": encoded,
		"channel": string(req.Channel),
	})
}

// SendPayment records the payer's side of an offline payment. When the
// ledger is reachable the pending record drains right away.
func (h *WalletHandler) SendPayment(c echo.Context) error {
	var req PayloadRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	txn, err := h.walletUC.SendOfflinePayment(c.Request().Context(), req.Payload)
	if err != nil {
		return h.payloadError(c, err, "Failed to record offline payment")
	}

	if h.monitor.Status() == models.ConnOnline {
		if _, err := h.walletUC.Reconcile(c.Request().Context()); err != nil {
			logger.Warn("Best-effort reconciliation after send failed", logger.Err(err))
		}
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Offline payment recorded", txn)
}

// AcceptPayload records the receiving side of an offline payment
func (h *WalletHandler) AcceptPayload(c echo.Context) error {
	var req PayloadRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	txn, err := h.walletUC.AcceptOfflinePayload(c.Request().Context(), req.Payload)
	if err != nil {
		return h.payloadError(c, err, "Failed to accept payment payload")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Payment accepted", txn)
}

// ListTransactions returns the local ledger in insertion order
func (h *WalletHandler) ListTransactions(c echo.Context) error {
	txns, err := h.walletUC.ListTransactions(c.Request().Context())
	if err != nil {
		logger.Error("Failed to list transactions", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to list transactions")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transactions retrieved", txns)
}

// PendingCount returns the number of transactions awaiting reconciliation
func (h *WalletHandler) PendingCount(c echo.Context) error {
	count, err := h.walletUC.PendingCount(c.Request().Context())
	if err != nil {
		logger.Error("Failed to count pending transactions", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to count pending transactions")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Pending count retrieved", map[string]int{"count": count})
}

// Connectivity reports the monitor's current state
func (h *WalletHandler) Connectivity(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Connectivity status", map[string]string{
		"status": string(h.monitor.Status()),
	})
}

// Balance returns the wallet balance, remote-fresh when reachable
func (h *WalletHandler) Balance(c echo.Context) error {
	balance, err := h.walletUC.Balance(c.Request().Context())
	if err != nil {
		logger.Error("Failed to get balance", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to get balance")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Balance retrieved", balance)
}

// Reserve moves available funds into the reserved bucket
func (h *WalletHandler) Reserve(c echo.Context) error {
	return h.balanceOp(c, h.walletUC.Reserve, "Funds reserved")
}

// Release returns reserved funds to the available bucket
func (h *WalletHandler) Release(c echo.Context) error {
	return h.balanceOp(c, h.walletUC.Release, "Funds released")
}

func (h *WalletHandler) balanceOp(c echo.Context,
	op func(ctx context.Context, amount decimal.Decimal) (*models.AccountBalance, error), successMsg string) error {

	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if !req.Amount.IsPositive() {
		return utils.BadRequestResponse(c, "Amount must be positive")
	}

	balance, err := op(c.Request().Context(), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrLedgerUnreachable):
			return utils.ServiceUnavailableResponse(c, "Remote ledger unreachable")
		case errors.Is(err, wallet.ErrInsufficientFunds):
			return utils.UnprocessableEntityResponse(c, "Insufficient funds")
		default:
			logger.Error("Balance operation failed", logger.Err(err))
			return utils.InternalServerErrorResponse(c, "Balance operation failed")
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, successMsg, balance)
}

// payloadError maps codec errors onto HTTP statuses
func (h *WalletHandler) payloadError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, payload.ErrExpired):
		return utils.UnprocessableEntityResponse(c, "Payment intent has expired")
	case errors.Is(err, payload.ErrMalformed), errors.Is(err, payload.ErrUnknownChannel):
		return utils.BadRequestResponse(c, err.Error())
	default:
		logger.Error(fallback, logger.Err(err))
		return utils.InternalServerErrorResponse(c, fallback)
	}
}

// Reconcile triggers a manual reconciliation pass
func (h *WalletHandler) Reconcile(c echo.Context) error {
	result, err := h.walletUC.Reconcile(c.Request().Context())
	if err != nil {
		if errors.Is(err, wallet.ErrLedgerUnreachable) {
			return utils.ServiceUnavailableResponse(c, "Remote ledger unreachable")
		}
		logger.Error("Reconciliation failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Reconciliation failed")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Reconciliation finished", result)
}
