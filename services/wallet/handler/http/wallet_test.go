package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/services/wallet"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/mocks"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/payload"
)

type stubStatus struct {
	status models.ConnStatus
}

func (s stubStatus) Status() models.ConnStatus { return s.status }

func doRequest(t *testing.T, handler echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	return rec
}

func TestWalletHandler_CreateIntent(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOffline})

	uc.EXPECT().CreateOfflineIntent(gomock.Any(), "bob", decimal.RequireFromString("15"), "lunch", models.ChannelQR).
		Return("opaque-payload", nil)

	// Act
	rec := doRequest(t, h.CreateIntent, http.MethodPost, "/intents",
		`{"recipient":"bob","amount":"15","note":"lunch","channel":"qr"}`)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "opaque-payload", resp.Data["payload"])
}

func TestWalletHandler_CreateIntent_MalformedMapsTo400(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOffline})

	uc.EXPECT().CreateOfflineIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", payload.ErrMalformed)

	rec := doRequest(t, h.CreateIntent, http.MethodPost, "/intents",
		`{"recipient":"","amount":"15","channel":"qr"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWalletHandler_SendPayment_ReconcilesWhenOnline(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOnline})

	txn := &models.Transaction{ID: "tx_1", Status: models.StatusPending}
	uc.EXPECT().SendOfflinePayment(gomock.Any(), "opaque").Return(txn, nil)
	uc.EXPECT().Reconcile(gomock.Any()).Return(&models.ReconcileResult{Synced: 1}, nil)

	// Act
	rec := doRequest(t, h.SendPayment, http.MethodPost, "/payments/offline", `{"payload":"opaque"}`)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWalletHandler_SendPayment_SkipsReconcileWhenOffline(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOffline})

	txn := &models.Transaction{ID: "tx_1", Status: models.StatusPending}
	uc.EXPECT().SendOfflinePayment(gomock.Any(), "opaque").Return(txn, nil)
	// No Reconcile expectation: offline sends stay local

	// Act
	rec := doRequest(t, h.SendPayment, http.MethodPost, "/payments/offline", `{"payload":"opaque"}`)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWalletHandler_AcceptPayload_ExpiredMapsTo422(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOffline})

	uc.EXPECT().AcceptOfflinePayload(gomock.Any(), "stale").Return(nil, payload.ErrExpired)

	rec := doRequest(t, h.AcceptPayload, http.MethodPost, "/payloads/accept", `{"payload":"stale"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWalletHandler_PendingCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOnline})

	uc.EXPECT().PendingCount(gomock.Any()).Return(3, nil)

	rec := doRequest(t, h.PendingCount, http.MethodGet, "/transactions/pending/count", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data["count"])
}

func TestWalletHandler_Connectivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOffline})

	rec := doRequest(t, h.Connectivity, http.MethodGet, "/connectivity", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"offline"`)
}

func TestWalletHandler_Reserve(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOnline})

	balance := &models.AccountBalance{Identity: "alice", Available: decimal.NewFromInt(80), Reserved: decimal.NewFromInt(20)}
	uc.EXPECT().Reserve(gomock.Any(), decimal.RequireFromString("20")).Return(balance, nil)

	// Act
	rec := doRequest(t, h.Reserve, http.MethodPost, "/wallet/reserve", `{"amount":"20"}`)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWalletHandler_Reserve_UnreachableMapsTo503(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOffline})

	uc.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, wallet.ErrLedgerUnreachable)

	rec := doRequest(t, h.Reserve, http.MethodPost, "/wallet/reserve", `{"amount":"20"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWalletHandler_Reserve_InsufficientFundsMapsTo422(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOnline})

	uc.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(nil, wallet.ErrInsufficientFunds)

	rec := doRequest(t, h.Reserve, http.MethodPost, "/wallet/reserve", `{"amount":"500"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWalletHandler_Reserve_RejectsNonPositiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOnline})

	rec := doRequest(t, h.Reserve, http.MethodPost, "/wallet/reserve", `{"amount":"0"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWalletHandler_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOnline})

	uc.EXPECT().Reconcile(gomock.Any()).Return(&models.ReconcileResult{Synced: 2, Conflicts: 1}, nil)

	rec := doRequest(t, h.Reconcile, http.MethodPost, "/reconcile", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data models.ReconcileResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Synced)
	assert.Equal(t, 1, resp.Data.Conflicts)
}

func TestWalletHandler_Reconcile_UnreachableMapsTo503(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockWalletUC(ctrl)
	h := NewWalletHandler(uc, stubStatus{models.ConnOffline})

	uc.EXPECT().Reconcile(gomock.Any()).Return(nil, wallet.ErrLedgerUnreachable)

	rec := doRequest(t, h.Reconcile, http.MethodPost, "/reconcile", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
