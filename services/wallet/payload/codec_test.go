package payload

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

func testChannelsConfig() models.ChannelsConfig {
	return models.ChannelsConfig{
		QR:        models.ChannelProfile{Secret: "qr-secret", Salt: "qr-salt"},
		NFC:       models.ChannelProfile{Secret: "nfc-secret", Salt: "nfc-salt"},
		Bluetooth: models.ChannelProfile{Secret: "bt-secret", Salt: "bt-salt"},
	}
}

func testIntent(channel models.Channel) *models.PaymentIntent {
	now := time.Now().Truncate(time.Millisecond)
	return &models.PaymentIntent{
		TransactionID: "tx_5f1c9a",
		ReceiptID:     "rcpt_9d42e1",
		Sender:        "alice",
		Recipient:     "merchant-7",
		Amount:        decimal.NewFromFloat(42.50),
		Note:          "coffee",
		Channel:       channel,
		CreatedAt:     now,
		ExpiresAt:     now.Add(models.DefaultIntentTTL),
	}
}

func TestCodec_EncodeDecode_RoundTrip(t *testing.T) {
	codec := NewCodec(testChannelsConfig())

	for _, channel := range []models.Channel{models.ChannelQR, models.ChannelNFC, models.ChannelBluetooth} {
		t.Run(string(channel), func(t *testing.T) {
			// Arrange
			intent := testIntent(channel)

			// Act
			opaque, err := codec.Encode(intent, channel)
			require.NoError(t, err)
			decoded, err := codec.Decode(opaque)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, intent.TransactionID, decoded.TransactionID)
			assert.Equal(t, intent.ReceiptID, decoded.ReceiptID)
			assert.Equal(t, intent.Sender, decoded.Sender)
			assert.Equal(t, intent.Recipient, decoded.Recipient)
			assert.True(t, intent.Amount.Equal(decoded.Amount))
			assert.Equal(t, intent.Note, decoded.Note)
			assert.Equal(t, channel, decoded.Channel)
			assert.Equal(t, intent.ExpiresAt.UnixMilli(), decoded.ExpiresAt.UnixMilli())
		})
	}
}

func TestCodec_Encode_ProducesOpaquePayload(t *testing.T) {
	// Arrange
	codec := NewCodec(testChannelsConfig())
	intent := testIntent(models.ChannelQR)

	// Act
	opaque, err := codec.Encode(intent, models.ChannelQR)

	// Assert
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(opaque)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "merchant-7",
		"recipient must not be readable without the channel key")
}

func TestCodec_Encode_UnknownChannel(t *testing.T) {
	codec := NewCodec(testChannelsConfig())

	_, err := codec.Encode(testIntent(models.ChannelQR), models.Channel("carrier-pigeon"))

	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestCodec_Encode_DistinctCiphertexts(t *testing.T) {
	// Arrange
	codec := NewCodec(testChannelsConfig())
	intent := testIntent(models.ChannelNFC)

	// Act
	first, err := codec.Encode(intent, models.ChannelNFC)
	require.NoError(t, err)
	second, err := codec.Encode(intent, models.ChannelNFC)
	require.NoError(t, err)

	// Assert: random nonce means identical intents never serialize alike
	assert.NotEqual(t, first, second)
}

func TestCodec_Decode_CrossChannel(t *testing.T) {
	// Arrange: encoded for Bluetooth, decoded without knowing the channel
	codec := NewCodec(testChannelsConfig())
	intent := testIntent(models.ChannelBluetooth)
	opaque, err := codec.Encode(intent, models.ChannelBluetooth)
	require.NoError(t, err)

	// Act
	decoded, err := codec.Decode(opaque)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.ChannelBluetooth, decoded.Channel)
	assert.Equal(t, intent.Recipient, decoded.Recipient)
}

func TestCodec_Decode_PlainJSONFallback(t *testing.T) {
	// Arrange
	codec := NewCodec(testChannelsConfig())
	plain, err := json.Marshal(map[string]interface{}{
		"recipient": "merchant-9",
		"amount":    "10.00",
		"type":      "nfc",
	})
	require.NoError(t, err)

	// Act
	decoded, err := codec.Decode(string(plain))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "merchant-9", decoded.Recipient)
	assert.True(t, decimal.NewFromInt(10).Equal(decoded.Amount))
	assert.Equal(t, models.ChannelNFC, decoded.Channel)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := NewCodec(testChannelsConfig())

	tests := []struct {
		name    string
		payload string
	}{
		{name: "garbage", payload: "not-a-payload"},
		{name: "empty", payload: ""},
		{name: "valid base64 random bytes", payload: base64.StdEncoding.EncodeToString([]byte("random junk bytes here"))},
		{name: "json missing recipient", payload: `{"amount":"5.00"}`},
		{name: "json zero amount", payload: `{"recipient":"merchant-1","amount":"0"}`},
		{name: "json negative amount", payload: `{"recipient":"merchant-1","amount":"-3.50"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.payload)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCodec_Decode_WrongKeys(t *testing.T) {
	// Arrange: receiver provisioned with different secrets
	sender := NewCodec(testChannelsConfig())
	receiver := NewCodec(models.ChannelsConfig{
		QR:        models.ChannelProfile{Secret: "other", Salt: "other"},
		NFC:       models.ChannelProfile{Secret: "other", Salt: "other"},
		Bluetooth: models.ChannelProfile{Secret: "other", Salt: "other"},
	})
	opaque, err := sender.Encode(testIntent(models.ChannelQR), models.ChannelQR)
	require.NoError(t, err)

	// Act
	_, err = receiver.Decode(opaque)

	// Assert
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCodec_Decode_Expired(t *testing.T) {
	// Arrange
	codec := NewCodec(testChannelsConfig())
	intent := testIntent(models.ChannelQR)
	opaque, err := codec.Encode(intent, models.ChannelQR)
	require.NoError(t, err)

	codec.now = func() time.Time { return intent.ExpiresAt.Add(time.Second) }

	// Act
	_, err = codec.Decode(opaque)

	// Assert
	assert.ErrorIs(t, err, ErrExpired)
}

func TestCodec_Decode_NoExpirySetNeverExpires(t *testing.T) {
	// Arrange
	codec := NewCodec(testChannelsConfig())
	codec.now = func() time.Time { return time.Now().Add(24 * time.Hour) }

	// Act
	decoded, err := codec.Decode(`{"recipient":"merchant-2","amount":"1.00"}`)

	// Assert
	require.NoError(t, err)
	assert.True(t, decoded.ExpiresAt.IsZero())
}
