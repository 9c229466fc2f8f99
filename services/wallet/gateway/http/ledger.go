package gateway_http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	httpclient "github.com/NyashaEysenck/offline-wallet/internal/pkg/http"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/retry"
	"github.com/NyashaEysenck/offline-wallet/internal/utils"
	"github.com/NyashaEysenck/offline-wallet/services/wallet"
)

// LedgerGateway is the HTTP client for the authoritative remote ledger
type LedgerGateway struct {
	client        *httpclient.Client
	healthTimeout time.Duration
	retrier       *retry.Retrier
	logger        *logger.ZapLogger
}

// NewLedgerGateway creates a gateway for the remote ledger service. Commit
// submissions retry transient network failures with exponential backoff;
// health probes use their own bounded timeout.
func NewLedgerGateway(ledgerURL string, healthTimeout time.Duration, l *logger.ZapLogger) *LedgerGateway {
	retryCfg := retry.DefaultConfig()
	retryCfg.RetryableFunc = retry.NetworkRetryableFunc()

	return &LedgerGateway{
		client:        httpclient.NewClient(ledgerURL, 10*time.Second),
		healthTimeout: healthTimeout,
		retrier:       retry.New(retryCfg, l),
		logger:        l,
	}
}

// CommitTransaction submits a transaction for commit. The remote dedupes
// on receipt ID, so retrying a submission is safe.
func (g *LedgerGateway) CommitTransaction(ctx context.Context, req *models.CommitRequest) (*models.CommitResponse, error) {
	var resp models.CommitResponse

	err := g.retrier.Execute(ctx, func(ctx context.Context) error {
		return g.postJSON(ctx, "/transactions/commit", req, &resp, true)
	})
	if err != nil {
		if errors.Is(err, wallet.ErrLedgerUnreachable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", wallet.ErrLedgerUnreachable, err)
	}

	return &resp, nil
}

// GetBalance fetches the authoritative balance for an identity
func (g *LedgerGateway) GetBalance(ctx context.Context, identity string) (*models.AccountBalance, error) {
	endpoint := "/wallet/balance?identity=" + url.QueryEscape(identity)

	var balance models.AccountBalance
	if err := g.getJSON(ctx, endpoint, &balance); err != nil {
		if errors.Is(err, wallet.ErrLedgerUnreachable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", wallet.ErrLedgerUnreachable, err)
	}

	return &balance, nil
}

// Reserve asks the remote ledger to move funds into the reserved bucket
func (g *LedgerGateway) Reserve(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	return g.postBalanceOp(ctx, "/wallet/reserve", identity, amount)
}

// Release asks the remote ledger to return reserved funds
func (g *LedgerGateway) Release(ctx context.Context, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	return g.postBalanceOp(ctx, "/wallet/release", identity, amount)
}

// CheckHealth probes the remote ledger health endpoint. Any 2xx response
// counts as reachable.
func (g *LedgerGateway) CheckHealth(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, g.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, g.client.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := g.client.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("health probe failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode)
	}

	return nil
}

func (g *LedgerGateway) postBalanceOp(ctx context.Context, endpoint, identity string, amount decimal.Decimal) (*models.AccountBalance, error) {
	req := models.BalanceRequest{Identity: identity, Amount: amount}

	var balance models.AccountBalance
	if err := g.postJSON(ctx, endpoint, req, &balance, false); err != nil {
		return nil, err
	}

	return &balance, nil
}

func (g *LedgerGateway) postJSON(ctx context.Context, endpoint string, body, target interface{}, outcomeInBody bool) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.client.BaseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(req, target, outcomeInBody)
}

func (g *LedgerGateway) getJSON(ctx context.Context, endpoint string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.client.BaseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return g.do(req, target, false)
}

// do executes a request and decodes the JSON body. Only the commit
// endpoint carries its outcome in the body of 409 and 422 responses;
// everywhere else those statuses are error envelopes and must surface as
// errors, never as zero-value payloads. Transport failures mean the
// ledger could not be reached at all.
func (g *LedgerGateway) do(req *http.Request, target interface{}, outcomeInBody bool) error {
	resp, err := g.client.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", wallet.ErrLedgerUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if outcomeInBody &&
		(resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity) {
		ok = true
	}

	if !ok {
		msg := errorEnvelopeMessage(body)
		if resp.StatusCode == http.StatusUnprocessableEntity {
			return fmt.Errorf("%w: %s", wallet.ErrInsufficientFunds, msg)
		}
		return fmt.Errorf("ledger returned %d %s: %s", resp.StatusCode, http.StatusText(resp.StatusCode), msg)
	}

	if target == nil {
		return nil
	}
	if err := utils.ParseJSONResponse(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorEnvelopeMessage extracts the message from the ledger's error
// envelope, falling back to the raw body
func errorEnvelopeMessage(body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return string(body)
}
