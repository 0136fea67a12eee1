package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"marketplace-client/internal/dto"
	"marketplace-client/pkg/tokenstore"
)

type refreshResult struct {
	access string
	err    error
}

// Refresh exchanges the stored refresh token for a new access token. At
// most one refresh call is in flight at any time: concurrent callers park
// on a channel and are all settled with the same outcome when the single
// in-flight exchange finishes.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan refreshResult, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case res := <-ch:
			return res.access, res.err
		case <-ctx.Done():
			// The abandoning caller gives up waiting; the shared
			// refresh keeps running for everyone else.
			return "", ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	access, err := c.doRefresh()

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- refreshResult{access: access, err: err}
	}
	return access, err
}

// doRefresh performs the actual token exchange. It runs detached from any
// caller context so one timed-out request cannot abort the refresh other
// callers are waiting on.
func (c *Client) doRefresh() (string, error) {
	refreshToken, err := c.tokens.Get(tokenstore.RefreshTokenKey)
	if err != nil || refreshToken == "" {
		c.clearSession()
		return "", ErrNoRefreshToken
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	payload, err := json.Marshal(dto.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		c.clearSession()
		return "", err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.clearSession()
		return "", err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.clearSession()
		isJSON := strings.Contains(res.Header.Get("Content-Type"), "application/json")
		return "", shapeError(res.StatusCode, isJSON, raw)
	}

	var body dto.RefreshResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		c.clearSession()
		return "", err
	}

	// The pair is replaced together; an unrotated refresh token stays.
	if err := c.SetTokens(body.Access, body.Refresh); err != nil {
		return "", err
	}

	c.log.Debug("apiclient", "access token refreshed", nil)
	return body.Access, nil
}
