// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package address standardizes postal addresses against the USPS Addresses
// API. It is a sibling of the name-classification pipeline, never called
// from inside it; a failing address service must not taint a name result.
package address

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"namecheck/internal/observability"
	"namecheck/internal/resilience"
)

// Standardized is the normalized form of a deliverable address.
type Standardized struct {
	Street string `json:"streetAddress"`
	City   string `json:"city"`
	State  string `json:"state"`
	ZIP5   string `json:"ZIPCode"`
	ZIP4   string `json:"ZIPPlus4,omitempty"`
}

// Result is the outcome of one address validation call.
type Result struct {
	Success      bool              `json:"success"`
	Deliverable  bool              `json:"deliverable"`
	Standardized *Standardized     `json:"standardized,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// Client calls the USPS OAuth and address endpoints with rate limiting and
// retry. Safe for concurrent use.
type Client struct {
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string

	httpClient *http.Client
	limiter    *rate.Limiter
	retry      resilience.RetryConfig
	observer   *observability.StandardObserver

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	TokenURL          string
	ClientID          string
	ClientSecret      string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// NewClient builds an address client. Missing rate or timeout settings get
// conservative defaults.
func NewClient(opts Options, observer *observability.StandardObserver) *Client {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		tokenURL:     opts.TokenURL,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		httpClient:   &http.Client{Timeout: opts.Timeout},
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		retry:        resilience.DefaultRetryConfig(),
		observer:     observer,
	}
}

// tokenResponse is the OAuth client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached access token, refreshing it when within a minute of
// expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Until(c.tokenExpiry) > time.Minute {
		return c.accessToken, nil
	}

	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

// apiAddress is the USPS address payload shape.
type apiAddress struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZIPCode       string `json:"ZIPCode"`
	ZIPPlus4      string `json:"ZIPPlus4"`
	DPVConfirm    string `json:"DPVConfirmation"`
}

// ValidateAddress standardizes one address. Failures come back inside the
// Result rather than as a hard error wherever the call itself completed.
func (c *Client) ValidateAddress(ctx context.Context, street, city, state, zip string) Result {
	finish := c.observer.StartTiming("address", "validate", "")

	if street == "" || (zip == "" && (city == "" || state == "")) {
		finish(false, nil)
		return Result{Error: "street plus either zip or city/state is required"}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		finish(false, nil)
		return Result{Error: err.Error()}
	}

	var result Result
	err := resilience.Do(ctx, c.retry, func() error {
		r, err := c.callOnce(ctx, street, city, state, zip)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		finish(false, nil)
		return Result{Error: err.Error()}
	}

	finish(result.Success, map[string]interface{}{"deliverable": result.Deliverable})
	return result
}

func (c *Client) callOnce(ctx context.Context, street, city, state, zip string) (Result, error) {
	token, err := c.token(ctx)
	if err != nil {
		return Result{}, err
	}

	query := url.Values{}
	query.Set("streetAddress", street)
	query.Set("city", city)
	query.Set("state", state)
	query.Set("ZIPCode", zip)

	endpoint := c.baseURL + "/address?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, resilience.PermanentError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Parsed below.
	case resp.StatusCode == http.StatusNotFound:
		// Address unknown to USPS: a definitive answer, not a failure.
		return Result{Success: true, Deliverable: false}, nil
	case resp.StatusCode == http.StatusUnauthorized:
		c.invalidateToken()
		return Result{}, fmt.Errorf("address endpoint rejected the token")
	case resp.StatusCode >= 500:
		return Result{}, fmt.Errorf("address endpoint returned %d", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, resilience.PermanentError(
			fmt.Errorf("address endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload struct {
		Address apiAddress `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("decoding address response: %w", err)
	}

	deliverable := payload.Address.DPVConfirm == "Y"
	result := Result{
		Success:     true,
		Deliverable: deliverable,
		Standardized: &Standardized{
			Street: payload.Address.StreetAddress,
			City:   payload.Address.City,
			State:  payload.Address.State,
			ZIP5:   payload.Address.ZIPCode,
			ZIP4:   payload.Address.ZIPPlus4,
		},
		Metadata: map[string]string{
			"dpv_confirmation": payload.Address.DPVConfirm,
		},
	}
	return result, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}
