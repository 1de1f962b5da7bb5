package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"carebook/config"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2/clientcredentials"
)

// Client is a thin Microsoft Graph client shared by the calendar and
// directory services. All calls are time-bounded and guarded by a circuit
// breaker so a slow Graph outage cannot pin request handlers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// APIError is a non-2xx response from Graph.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph: status %d: %s", e.Status, e.Body)
}

// NewClient builds a Graph client using the single administrative credential
// (client-credentials grant) from AppConfig.
func NewClient() *Client {
	cfg := config.AppConfig
	cc := &clientcredentials.Config{
		ClientID:     cfg.GraphClientID,
		ClientSecret: cfg.GraphClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.GraphTenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}
	return NewClientWith(cfg.GraphBaseURL, cc.Client(context.Background()), cfg.GraphRequestTimeout)
}

// NewClientWith builds a client around an explicit HTTP client. Used by tests
// and by callers that manage their own credential.
func NewClientWith(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "msgraph",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		breaker:    breaker,
	}
}

// GetJSON performs a GET against a Graph path and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// PostJSON performs a POST with a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(reqCtx, method, reqURL, reader)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{Status: resp.StatusCode, Body: string(data)}
		}
		return data, nil
	})
	if err != nil {
		return fmt.Errorf("graph %s %s: %w", method, path, err)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode graph response: %w", err)
		}
	}
	return nil
}
