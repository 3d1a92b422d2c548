package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"brickdeals/internal/structures"
)

// PushMessage is one message for one device token, in the shape the push
// gateway's batch endpoint expects.
type PushMessage struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Sound string         `json:"sound,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

type PushClientInterface interface {
	SendBatch(ctx context.Context, messages []PushMessage) error
}

// PushClient posts message batches to the external push gateway. The
// gateway accepts at most 100 messages per call; batching is the caller's
// responsibility.
type PushClient struct {
	http       *http.Client
	gatewayURL string
}

func NewPushClient(conf *structures.Config) PushClientInterface {
	return &PushClient{
		http:       &http.Client{Timeout: conf.Push.Timeout},
		gatewayURL: conf.Push.GatewayURL,
	}
}

func (c *PushClient) SendBatch(ctx context.Context, messages []PushMessage) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway: unexpected status %d", resp.StatusCode)
	}
	return nil
}
