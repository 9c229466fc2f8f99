package payload

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/pbkdf2"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

// Decode errors. Callers distinguish them with errors.Is; the codec never
// panics on malformed input.
var (
	ErrMalformed      = errors.New("payload is not a valid payment intent")
	ErrExpired        = errors.New("payment intent has expired")
	ErrUnknownChannel = errors.New("unknown transport channel")
)

const (
	kdfIterations = 10000
	keyLength     = 32
)

// profile binds a transport channel to its derived symmetric key
type profile struct {
	channel models.Channel
	key     []byte
}

// Codec encrypts payment intents into transport-safe opaque strings and
// back. Each channel uses a distinct derived key; decoding is
// channel-agnostic and tries keys in a fixed priority order.
type Codec struct {
	// QR first, then NFC, then Bluetooth - the order receivers probe
	profiles []profile
	now      func() time.Time
}

// NewCodec derives the per-channel keys from the configured secret/salt
// pairs
func NewCodec(cfg models.ChannelsConfig) *Codec {
	return &Codec{
		profiles: []profile{
			{channel: models.ChannelQR, key: deriveKey(cfg.QR)},
			{channel: models.ChannelNFC, key: deriveKey(cfg.NFC)},
			{channel: models.ChannelBluetooth, key: deriveKey(cfg.Bluetooth)},
		},
		now: time.Now,
	}
}

func deriveKey(p models.ChannelProfile) []byte {
	return pbkdf2.Key([]byte(p.Secret), []byte(p.Salt), kdfIterations, keyLength, sha256.New)
}

// wireIntent is the serialized form of a payment intent. Field names and
// millisecond timestamps match what scanning devices already exchange.
type wireIntent struct {
	ID        string          `json:"id,omitempty"`
	Receipt   string          `json:"receipt,omitempty"`
	Sender    string          `json:"sender,omitempty"`
	Recipient string          `json:"recipient"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	Type      string          `json:"type,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
	Expiry    int64           `json:"expiry,omitempty"`
}

func toWire(intent *models.PaymentIntent) wireIntent {
	w := wireIntent{
		ID:        intent.TransactionID,
		Receipt:   intent.ReceiptID,
		Sender:    intent.Sender,
		Recipient: intent.Recipient,
		Amount:    intent.Amount,
		Note:      intent.Note,
		Type:      string(intent.Channel),
	}
	if !intent.CreatedAt.IsZero() {
		w.Timestamp = intent.CreatedAt.UnixMilli()
	}
	if !intent.ExpiresAt.IsZero() {
		w.Expiry = intent.ExpiresAt.UnixMilli()
	}
	return w
}

func fromWire(w wireIntent, fallbackChannel models.Channel) *models.PaymentIntent {
	intent := &models.PaymentIntent{
		TransactionID: w.ID,
		ReceiptID:     w.Receipt,
		Sender:        w.Sender,
		Recipient:     w.Recipient,
		Amount:        w.Amount,
		Note:          w.Note,
		Channel:       fallbackChannel,
	}
	if ch := models.Channel(w.Type); ch.Valid() {
		intent.Channel = ch
	}
	if w.Timestamp > 0 {
		intent.CreatedAt = time.UnixMilli(w.Timestamp)
	}
	if w.Expiry > 0 {
		intent.ExpiresAt = time.UnixMilli(w.Expiry)
	}
	return intent
}

// Encode serializes and encrypts the intent with the channel's key, then
// base64-encodes the result so it fits a QR matrix, an NDEF text record or
// a Bluetooth characteristic. Pure transform: no side effects.
func (c *Codec) Encode(intent *models.PaymentIntent, channel models.Channel) (string, error) {
	prof, err := c.profileFor(channel)
	if err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(toWire(intent))
	if err != nil {
		return "", fmt.Errorf("failed to serialize intent: %w", err)
	}

	ciphertext, err := encrypt(plaintext, prof.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt intent: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decode recovers a payment intent from an opaque payload. The receiver
// does not always know which channel produced the bytes, so each channel
// key is tried in priority order; if no key decrypts the payload it is
// parsed as plain JSON for compatibility with peers that have no
// encryption configured.
func (c *Codec) Decode(opaque string) (*models.PaymentIntent, error) {
	raw, b64Err := base64.StdEncoding.DecodeString(opaque)
	if b64Err == nil {
		for _, prof := range c.profiles {
			plaintext, err := decrypt(raw, prof.key)
			if err != nil {
				continue
			}

			var w wireIntent
			if err := json.Unmarshal(plaintext, &w); err != nil {
				continue
			}

			return c.validate(w, prof.channel)
		}
	}

	// Plaintext fallback
	var w wireIntent
	if err := json.Unmarshal([]byte(opaque), &w); err != nil {
		return nil, ErrMalformed
	}

	return c.validate(w, models.ChannelQR)
}

func (c *Codec) validate(w wireIntent, fallbackChannel models.Channel) (*models.PaymentIntent, error) {
	if w.Recipient == "" || !w.Amount.IsPositive() {
		return nil, ErrMalformed
	}

	intent := fromWire(w, fallbackChannel)
	if intent.Expired(c.now()) {
		return nil, ErrExpired
	}

	return intent, nil
}

func (c *Codec) profileFor(channel models.Channel) (profile, error) {
	for _, prof := range c.profiles {
		if prof.channel == channel {
			return prof, nil
		}
	}
	return profile{}, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
}

// encrypt seals plaintext with AES-256-GCM, prefixing the random nonce
func encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt opens a nonce-prefixed AES-256-GCM ciphertext
func decrypt(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(data) < gcm.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}

	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
