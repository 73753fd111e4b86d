// Package push implements the PushSender port against an HTTP push provider.
// The provider exposes a single batch endpoint that accepts a message and a
// list of device tokens and reports a per-token outcome.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/ports"
)

// HTTPSender sends push messages over the provider's JSON API.
type HTTPSender struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPSender creates a push sender for the given provider endpoint.
func NewHTTPSender(baseURL, apiKey string) *HTTPSender {
	return &HTTPSender{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type pushRequest struct {
	Tokens   []string       `json:"tokens"`
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Priority string         `json:"priority"`
	Data     map[string]any `json:"data"`
}

type pushResponse struct {
	Results []struct {
		Token        string `json:"token"`
		Status       string `json:"status"`
		Error        string `json:"error"`
		Unregistered bool   `json:"unregistered"`
	} `json:"results"`
}

// SendPush delivers the notification to the given tokens in one batch call.
// The returned slice carries one result per token the provider reported on.
func (s *HTTPSender) SendPush(
	ctx context.Context,
	entity *notification.Notification,
	tokens []string,
) ([]ports.PushResult, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	payload := pushRequest{
		Tokens:   tokens,
		Title:    entity.Title(),
		Body:     entity.Body(),
		Priority: entity.Priority().String(),
		Data: map[string]any{
			"type":      entity.Type().String(),
			"entity_id": entity.Entity().String(),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/send", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	var decoded pushResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	results := make([]ports.PushResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		result := ports.PushResult{
			Token:        r.Token,
			Delivered:    r.Status == "ok",
			Unregistered: r.Unregistered,
		}
		if r.Error != "" {
			result.Err = fmt.Errorf("push provider: %s", r.Error)
		}
		results = append(results, result)
	}

	return results, nil
}
