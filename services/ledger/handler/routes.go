package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NyashaEysenck/offline-wallet/services/ledger/handler/http"
)

// Handler coordinates the protocol handlers for the ledger service
type Handler struct {
	ledgerHandler *http.LedgerHandler
}

// NewHandler creates and initializes all handlers
func NewHandler(ledgerHandler *http.LedgerHandler) *Handler {
	return &Handler{ledgerHandler: ledgerHandler}
}

// RegisterRoutes sets up all ledger service routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/transactions/commit", h.ledgerHandler.Commit)
	e.GET("/transactions", h.ledgerHandler.ListTransactions)
	e.GET("/transactions/:receiptId", h.ledgerHandler.GetTransaction)

	e.GET("/wallet/balance", h.ledgerHandler.GetBalance)
	e.POST("/wallet/reserve", h.ledgerHandler.Reserve)
	e.POST("/wallet/release", h.ledgerHandler.Release)
	e.POST("/wallet/deposit", h.ledgerHandler.Deposit)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
