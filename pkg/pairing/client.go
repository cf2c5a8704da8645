package pairing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PairResult is what the external resource-control service returns for
// a pairing request. SessionID may be empty.
type PairResult struct {
	Code      string `json:"code"`
	SessionID string `json:"sessionId"`
}

// Client talks to the external pairing service. Either call may fail
// independently of local state; callers must not assume success.
type Client interface {
	Pair(ctx context.Context, phoneNumber string) (*PairResult, error)
	Stop(ctx context.Context, sessionID string) error
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *httpClient) Pair(ctx context.Context, phoneNumber string) (*PairResult, error) {
	url := fmt.Sprintf("%s/pair/%s", h.baseURL, phoneNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pairing service returned status %d", resp.StatusCode)
	}

	var result PairResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode pairing response: %w", err)
	}

	return &result, nil
}

func (h *httpClient) Stop(ctx context.Context, sessionID string) error {
	url := fmt.Sprintf("%s/stop/%s", h.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pairing service returned status %d", resp.StatusCode)
	}

	return nil
}
