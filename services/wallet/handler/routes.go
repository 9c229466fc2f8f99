package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/NyashaEysenck/offline-wallet/services/wallet/handler/http"
)

// Handler coordinates the protocol handlers for the wallet service
type Handler struct {
	walletHandler *http.WalletHandler
}

// NewHandler creates and initializes all handlers
func NewHandler(walletHandler *http.WalletHandler) *Handler {
	return &Handler{walletHandler: walletHandler}
}

// RegisterRoutes sets up all wallet service routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/intents", h.walletHandler.CreateIntent)
	e.POST("/payments/offline", h.walletHandler.SendPayment)
	e.POST("/payloads/accept", h.walletHandler.AcceptPayload)

	e.GET("/transactions", h.walletHandler.ListTransactions)
	e.GET("/transactions/pending/count", h.walletHandler.PendingCount)

	e.GET("/connectivity", h.walletHandler.Connectivity)
	e.POST("/reconcile", h.walletHandler.Reconcile)

	e.GET("/wallet/balance", h.walletHandler.Balance)
	e.POST("/wallet/reserve", h.walletHandler.Reserve)
	e.POST("/wallet/release", h.walletHandler.Release)
}
