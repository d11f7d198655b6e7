package calls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxProviderBody = 1 << 20

// ProviderError reports a non-2xx answer from the video provider.
// Body is the provider's raw response text.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("daily api status %d: %s", e.Status, e.Body)
}

// DailyClient creates rooms through the Daily REST API.
type DailyClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewDailyClient(baseURL, apiKey string, timeout time.Duration) *DailyClient {
	return &DailyClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *DailyClient) CreateRoom(ctx context.Context, req RoomRequest) (Room, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Room{}, fmt.Errorf("marshal room request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rooms", bytes.NewReader(payload))
	if err != nil {
		return Room{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return Room{}, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxProviderBody))
	if err != nil {
		return Room{}, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return Room{}, &ProviderError{Status: res.StatusCode, Body: string(body)}
	}

	var room Room
	if err := json.Unmarshal(body, &room); err != nil {
		return Room{}, fmt.Errorf("decode room: %w", err)
	}
	return room, nil
}
