// Package supabase probes the backend by inserting a timestamped marker
// row through the PostgREST endpoint, which exercises connectivity,
// service-role auth and table permissions in one round trip.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
)

type Probe struct {
	NameValue  string
	URL        string
	ServiceKey string
	Table      string
	Timeout    time.Duration
}

type markerRow struct {
	Source    string `json:"source"`
	CheckedAt string `json:"checked_at"`
}

type restError struct {
	Message string `json:"message"`
}

func (p *Probe) Name() string {
	return p.NameValue
}

func (p *Probe) Probe(ctx context.Context) check.Result {
	if strings.TrimSpace(p.URL) == "" {
		return check.Fail(p.NameValue, check.KindConfigMissing, "SUPABASE_URL not set")
	}
	if strings.TrimSpace(p.ServiceKey) == "" {
		return check.Fail(p.NameValue, check.KindConfigMissing, "SUPABASE_SERVICE_ROLE_KEY not set")
	}

	payload, err := json.Marshal(markerRow{
		Source:    "prod-check",
		CheckedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return check.Fail(p.NameValue, check.KindException, err.Error())
	}

	endpoint := strings.TrimRight(p.URL, "/") + "/rest/v1/" + p.Table
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return check.Fail(p.NameValue, check.KindException, err.Error())
	}
	req.Header.Set("apikey", p.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+p.ServiceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	client := &http.Client{Timeout: p.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return check.Fail(p.NameValue, check.KindNetworkError, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr restError
		detail := fmt.Sprintf("insert returned %d", resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			detail = apiErr.Message
		}
		return check.Fail(p.NameValue, check.KindBadResponse, detail)
	}
	return check.Pass(p.NameValue, "insert into "+p.Table+" ok")
}
