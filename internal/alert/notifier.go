package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notifier posts incidents to an external webhook (an incident table API) when
// the marketplace records a failed action. Delivery is best effort with a
// small retry budget; callers must never block on it.
type Notifier struct {
	URL      string
	User     string
	Password string
	Client   *http.Client
	Log      *zap.Logger

	Retries int
	Backoff time.Duration
}

type Incident struct {
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
}

func (n *Notifier) Notify(ctx context.Context, inc Incident) error {
	if n == nil || n.URL == "" {
		return nil
	}
	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	retries := n.Retries
	if retries == 0 {
		retries = 3
	}
	backoff := n.Backoff
	if backoff == 0 {
		backoff = time.Second
	}

	body, err := json.Marshal(inc)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		if n.User != "" {
			req.SetBasicAuth(n.User, n.Password)
		}

		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 300 {
				return nil
			}
			err = fmt.Errorf("alert: webhook returned %d", resp.StatusCode)
		}
		lastErr = err
		if attempt == retries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff * time.Duration(1<<(attempt-1))):
		}
	}

	if n.Log != nil {
		n.Log.Warn("alert delivery failed", zap.Error(lastErr))
	}
	return lastErr
}
