package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order adalah gateway-side object yang dibayar client di luar platform
type Order struct {
	ID       string
	Amount   int64 // minor units
	Currency string
}

// Client abstraction supaya orchestrator bisa di-test dengan double.
// Diinisialisasi sekali saat bootstrap, di-inject sebagai dependency.
type Client interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

type razorpayClient struct {
	api       *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpayClient(keyID, keySecret string) Client {
	return &razorpayClient{
		api:       razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// CreateOrder membuka order baru di Razorpay untuk platform fee
func (c *razorpayClient) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create razorpay order: %w", err)
	}

	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("create razorpay order: response missing order id")
	}

	amount := amountMinor
	if v, ok := body["amount"].(float64); ok {
		amount = int64(v)
	}

	return &Order{
		ID:       orderID,
		Amount:   amount,
		Currency: currency,
	}, nil
}

// VerifySignature mengecek HMAC callback dari gateway.
// Mismatch berarti callback palsu, tidak boleh ada mutation.
func (c *razorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	expected := Signature(orderID, paymentID, c.keySecret)

	// constant-time compare
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *razorpayClient) KeyID() string {
	return c.keyID
}

// Signature menghitung HMAC-SHA256 hex atas "orderID|paymentID"
// dengan shared secret, sesuai skema callback Razorpay
func Signature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
