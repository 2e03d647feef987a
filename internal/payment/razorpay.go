package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Razorpay Orders APIのクライアント。
// key_id/key_secret でBasic認証する。
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

func NewClient(keyID string, keySecret string) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// checkout.jsに渡すkey
func (c *Client) KeyID() string {
	return c.keyID
}

// シークレット未設定ならHMAC検証はできない
func (c *Client) CanVerify() bool {
	return c.keySecret != ""
}

// ゲートウェイ側の注文
type CheckoutOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder はゲートウェイに注文を作ってIDを受け取る。
// amountは最小通貨単位（INRならpaise）。
func (c *Client) CreateOrder(ctx context.Context, amount int64, receipt string) (CheckoutOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
	})
	if err != nil {
		return CheckoutOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return CheckoutOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	res, err := c.http.Do(req)
	if err != nil {
		return CheckoutOrder{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return CheckoutOrder{}, fmt.Errorf("gateway order create failed: %d %s", res.StatusCode, string(msg))
	}

	var out CheckoutOrder
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return CheckoutOrder{}, err
	}
	return out, nil
}

// VerifySignature はcheckoutコールバックの署名を検証する。
// signature = HMAC-SHA256(order_id + "|" + payment_id, key_secret) のhex。
func (c *Client) VerifySignature(orderID string, paymentID string, signature string) bool {
	if !c.CanVerify() {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
