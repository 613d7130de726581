// Package shurjopay is a thin client for the ShurjoPay payment gateway's
// checkout API. It is a pure adapter: a failed call is surfaced immediately
// and the caller decides whether to resubmit.
package shurjopay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rise-summit/event-registration/registration"
)

const defaultTimeout = 10 * time.Second

// tokenExpiryMargin keeps us from sending a token that expires mid-request.
const tokenExpiryMargin = 30 * time.Second

type Config struct {
	BaseURL   string
	Username  string
	Password  string
	Prefix    string
	ReturnURL string
	CancelURL string
}

type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	storeID     int
	tokenExpiry time.Time
}

var _ registration.CheckoutManager = &Client{}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

type tokenResponse struct {
	Token     string      `json:"token"`
	StoreID   int         `json:"store_id"`
	TokenType string      `json:"token_type"`
	SpCode    json.Number `json:"sp_code"`
	Message   string      `json:"message"`
	ExpiresIn int         `json:"expires_in"`
}

type checkoutRequest struct {
	Token           string  `json:"token"`
	StoreID         int     `json:"store_id"`
	Prefix          string  `json:"prefix"`
	Currency        string  `json:"currency"`
	ReturnURL       string  `json:"return_url"`
	CancelURL       string  `json:"cancel_url"`
	Amount          float64 `json:"amount"`
	OrderID         string  `json:"order_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerAddress string  `json:"customer_address"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerCity    string  `json:"customer_city"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerState   string  `json:"customer_state"`
	CustomerPost    string  `json:"customer_postcode"`
}

type checkoutResponse struct {
	CheckoutURL     string `json:"checkout_url"`
	SpOrderID       string `json:"sp_order_id"`
	CustomerOrderID string `json:"customer_order_id"`
	Message         string `json:"message"`
}

type verificationResponse struct {
	SpOrderID       string      `json:"order_id"`
	CustomerOrderID string      `json:"customer_order_id"`
	BankStatus      string      `json:"bank_status"`
	SpCode          json.Number `json:"sp_code"`
	SpMessage       string      `json:"sp_message"`
}

// spCodeVerifiedPaid is the verification sp_code ShurjoPay sends for a
// completed payment.
const spCodeVerifiedPaid = "1000"

func (c *Client) CreateCheckout(ctx context.Context, params registration.CheckoutParams) (registration.CheckoutInfo, error) {
	token, storeID, err := c.getToken(ctx)
	if err != nil {
		return registration.CheckoutInfo{}, err
	}

	req := checkoutRequest{
		Token:           token,
		StoreID:         storeID,
		Prefix:          c.cfg.Prefix,
		Currency:        params.Price.Currency().Code,
		ReturnURL:       c.cfg.ReturnURL,
		CancelURL:       c.cfg.CancelURL,
		Amount:          params.Price.AsMajorUnits(),
		OrderID:         params.OrderID,
		CustomerName:    params.CustomerName,
		CustomerAddress: params.CustomerAddress,
		CustomerPhone:   params.CustomerPhone,
		CustomerCity:    params.CustomerCity,
		CustomerEmail:   params.CustomerEmail,
	}

	var resp checkoutResponse
	err = c.postJSON(ctx, "/api/secret-pay", token, req, &resp)
	if err != nil {
		return registration.CheckoutInfo{}, err
	}

	if resp.CheckoutURL == "" {
		return registration.CheckoutInfo{}, NewPaymentRejectedError(fmt.Sprintf("Gateway did not return a checkout URL for order %q: %s", params.OrderID, resp.Message))
	}

	return registration.CheckoutInfo{
		CheckoutURL:     resp.CheckoutURL,
		ProviderOrderID: resp.SpOrderID,
	}, nil
}

func (c *Client) VerifyCheckout(ctx context.Context, providerOrderID string) (registration.CheckoutVerification, error) {
	token, _, err := c.getToken(ctx)
	if err != nil {
		return registration.CheckoutVerification{}, err
	}

	var resp []verificationResponse
	err = c.postJSON(ctx, "/api/verification", token, map[string]string{"order_id": providerOrderID}, &resp)
	if err != nil {
		return registration.CheckoutVerification{}, err
	}

	if len(resp) == 0 {
		return registration.CheckoutVerification{}, NewMalformedResponseError("Gateway returned an empty verification list", nil)
	}

	v := resp[0]
	return registration.CheckoutVerification{
		OrderID:         v.CustomerOrderID,
		ProviderOrderID: v.SpOrderID,
		Paid:            v.SpCode.String() == spCodeVerifiedPaid,
		BankStatus:      v.BankStatus,
	}, nil
}

// getToken returns a cached bearer token, re-authenticating once the previous
// one is close to expiry.
func (c *Client) getToken(ctx context.Context) (string, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpiryMargin)) {
		return c.token, c.storeID, nil
	}

	body := map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	}

	var resp tokenResponse
	err := c.postJSON(ctx, "/api/get_token", "", body, &resp)
	if err != nil {
		return "", 0, err
	}

	if resp.Token == "" {
		return "", 0, NewAuthFailedError(fmt.Sprintf("Gateway rejected credentials: %s", resp.Message))
	}

	c.token = resp.Token
	c.storeID = resp.StoreID
	c.tokenExpiry = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)

	return c.token, c.storeID, nil
}

func (c *Client) postJSON(ctx context.Context, path string, bearerToken string, body any, out any) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return NewRequestFailedError(fmt.Sprintf("Failed to encode request to %s", path), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return NewRequestFailedError(fmt.Sprintf("Failed to build request to %s", path), err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return NewTimeoutError(fmt.Sprintf("Request to %s timed out", path), err)
		}
		return NewRequestFailedError(fmt.Sprintf("Request to %s failed", path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewRequestFailedError(fmt.Sprintf("Request to %s returned status %d", path, resp.StatusCode), nil)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return NewMalformedResponseError(fmt.Sprintf("Failed to decode response from %s", path), err)
	}

	return nil
}
