package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/database"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

// DefaultReceiptTTL bounds how long a cached commit response stays valid
const DefaultReceiptTTL = 24 * time.Hour

// cachedCommit is the stored form of a receipt cache entry. The
// fingerprint pins the entry to the exact economic event that produced
// it, so a tampered resubmission never hits the fast path.
type cachedCommit struct {
	Fingerprint string                `json:"fingerprint"`
	Response    models.CommitResponse `json:"response"`
}

// ReceiptCache is the Redis fast path for repeated commit submissions
type ReceiptCache struct {
	client *database.RedisClient
	ttl    time.Duration
}

// NewReceiptCache creates a receipt cache. A zero TTL falls back to the
// default.
func NewReceiptCache(client *database.RedisClient, ttl time.Duration) *ReceiptCache {
	if ttl <= 0 {
		ttl = DefaultReceiptTTL
	}
	return &ReceiptCache{client: client, ttl: ttl}
}

func receiptKey(receiptID, submittedBy string) string {
	return fmt.Sprintf("ledger:receipt:%s:%s", receiptID, submittedBy)
}

// GetResponse returns the cached response for a resubmission, or nil on a
// miss or a fingerprint mismatch
func (c *ReceiptCache) GetResponse(ctx context.Context, receiptID, submittedBy, fingerprint string) (*models.CommitResponse, error) {
	raw, err := c.client.Get(ctx, receiptKey(receiptID, submittedBy))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read receipt cache: %w", err)
	}

	var entry cachedCommit
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, nil
	}
	if entry.Fingerprint != fingerprint {
		return nil, nil
	}

	return &entry.Response, nil
}

// StoreResponse caches a commit response for the submitting party. The
// first writer wins: concurrent submissions of the same receipt race to
// the database anyway, and the entry they cache is the same classified
// outcome, so a later overwrite buys nothing.
func (c *ReceiptCache) StoreResponse(ctx context.Context, receiptID, submittedBy, fingerprint string, resp *models.CommitResponse) error {
	entry := cachedCommit{Fingerprint: fingerprint, Response: *resp}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt cache entry: %w", err)
	}

	if _, err := c.client.SetNX(ctx, receiptKey(receiptID, submittedBy), raw, c.ttl); err != nil {
		return fmt.Errorf("failed to write receipt cache: %w", err)
	}

	return nil
}
