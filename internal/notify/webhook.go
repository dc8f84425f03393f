// Package notify posts the run summary to an operator-configured
// webhook, so scheduled runs can alert without anyone watching stdout.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhouston2019/auditresponse.ai/internal/report"
)

type Webhook struct {
	URL     string
	Timeout time.Duration
}

func (w *Webhook) Send(ctx context.Context, s report.Summary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: w.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
