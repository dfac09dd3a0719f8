package resales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"inmofeed/internal/feederrors"
	"inmofeed/pkg/logger"
)

// errNotFound marks a 404 from the upstream; the provider translates it
// into a PropertyNotFoundError with the reference the caller asked for.
var errNotFound = errors.New("resales: not found")

const maxRetries = 3

// client manages Resales API authentication and requests. Tokens are
// cached until shortly before expiry and refreshed lazily.
type client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	log          *logger.Logger

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func newClient(baseURL, clientID, clientSecret string, log *logger.Logger) *client {
	return &client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// getToken retrieves or refreshes the access token.
func (c *client) getToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(data.Encode()))
	if err != nil {
		return "", feederrors.NewProviderUnavailableError(ProviderName, "failed to build token request", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorf("token request failed: %v", err)
		return "", feederrors.NewProviderUnavailableError(ProviderName, "token request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", feederrors.NewProviderUnavailableError(ProviderName, "failed to read token response", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.log.Errorf("token request rejected: status=%s", resp.Status)
		return "", feederrors.NewAuthenticationError(ProviderName, "upstream rejected credentials", nil)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("token request failed: status=%s, response=%s", resp.Status, string(body))
		return "", feederrors.NewProviderUnavailableError(ProviderName,
			fmt.Sprintf("token endpoint returned %s", resp.Status), nil)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", feederrors.NewInvalidResponseError(ProviderName, "failed to decode token response", err)
	}

	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second).Add(-30 * time.Second)
	c.log.Debugf("token refreshed, expires_in=%d seconds", tokenResp.ExpiresIn)
	return c.token, nil
}

// getJSON performs an authenticated GET and decodes the JSON body.
// Transient failures (network errors, 5xx) are retried with linear
// backoff; 4xx responses are classified and returned immediately.
func (c *client) getJSON(ctx context.Context, path string, query url.Values) (map[string]interface{}, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, feederrors.NewProviderUnavailableError(ProviderName, "failed to build request", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, feederrors.NewProviderUnavailableError(ProviderName, "request cancelled", ctx.Err())
			}
			c.log.Errorf("request failed (attempt %d/%d): url=%s, error=%v", attempt, maxRetries, requestURL, err)
			lastErr = err
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			c.log.Errorf("failed to read response (attempt %d/%d): url=%s, error=%v", attempt, maxRetries, requestURL, readErr)
			lastErr = readErr
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			var payload map[string]interface{}
			if err := json.Unmarshal(body, &payload); err != nil {
				return nil, feederrors.NewInvalidResponseError(ProviderName, "failed to decode response", err)
			}
			return payload, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, errNotFound
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, feederrors.NewAuthenticationError(ProviderName, "upstream rejected token", nil)
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, feederrors.NewRateLimitError(ProviderName, "upstream rate limit hit", nil)
		case resp.StatusCode >= 500:
			c.log.Errorf("upstream error (attempt %d/%d): url=%s, status=%s", attempt, maxRetries, requestURL, resp.Status)
			lastErr = fmt.Errorf("upstream returned %s", resp.Status)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		default:
			return nil, feederrors.NewInvalidResponseError(ProviderName,
				fmt.Sprintf("unexpected status %s: %s", resp.Status, string(body)), nil)
		}
	}

	return nil, feederrors.NewProviderUnavailableError(ProviderName, "max retries exceeded", lastErr)
}
