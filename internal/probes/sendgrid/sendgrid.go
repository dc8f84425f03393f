// Package sendgrid probes the email API with a lightweight authenticated
// GET against the account profile endpoint.
package sendgrid

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
)

const defaultBaseURL = "https://api.sendgrid.com"

type Probe struct {
	NameValue string
	APIKey    string
	Timeout   time.Duration
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
}

func (p *Probe) Name() string {
	return p.NameValue
}

func (p *Probe) Probe(ctx context.Context) check.Result {
	if strings.TrimSpace(p.APIKey) == "" {
		return check.Fail(p.NameValue, check.KindConfigMissing, "SENDGRID_API_KEY not set")
	}

	base := p.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(base, "/")+"/v3/user/profile", nil)
	if err != nil {
		return check.Fail(p.NameValue, check.KindException, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	client := &http.Client{Timeout: p.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return check.Fail(p.NameValue, check.KindNetworkError, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return check.Fail(p.NameValue, check.KindBadResponse, fmt.Sprintf("profile endpoint returned %d", resp.StatusCode))
	}
	return check.Pass(p.NameValue, "authenticated, "+resp.Status)
}
