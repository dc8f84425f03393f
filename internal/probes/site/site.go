// Package site probes the production site URL. Only an exact 200 passes:
// a redirecting or error-page deployment is not production ready, so
// redirects are not followed.
package site

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
)

type Probe struct {
	NameValue string
	URL       string
	Timeout   time.Duration
}

func (p *Probe) Name() string {
	return p.NameValue
}

func (p *Probe) Probe(ctx context.Context) check.Result {
	if strings.TrimSpace(p.URL) == "" {
		return check.Fail(p.NameValue, check.KindConfigMissing, "SITE_URL not set")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return check.Fail(p.NameValue, check.KindException, err.Error())
	}

	client := &http.Client{
		Timeout: p.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		return check.Fail(p.NameValue, check.KindNetworkError, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return check.Fail(p.NameValue, check.KindBadResponse, fmt.Sprintf("status %d, want 200", resp.StatusCode))
	}
	return check.Pass(p.NameValue, "status 200")
}
