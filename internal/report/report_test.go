package report

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jhouston2019/auditresponse.ai/internal/config"
	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
	"github.com/jhouston2019/auditresponse.ai/internal/logger"
)

func resolveAll(t *testing.T, skip ...string) *config.Resolution {
	t.Helper()
	skipped := make(map[string]bool)
	for _, key := range skip {
		skipped[key] = true
	}
	for _, key := range config.RequiredVars {
		if skipped[key] {
			t.Setenv(key, "")
		} else {
			t.Setenv(key, "value-"+key)
		}
	}
	for alias := range config.Aliases {
		t.Setenv(alias, "")
	}
	log := logger.New(logger.Config{Output: io.Discard})
	return config.Resolve(context.Background(), nil, "", log)
}

func passingResults() []check.Result {
	names := []string{"OpenAI", "Supabase", "Stripe", "SendGrid", "Site"}
	results := make([]check.Result, len(names))
	for i, name := range names {
		results[i] = check.Result{Name: name, OK: true, Elapsed: time.Duration(i+1) * 10 * time.Millisecond}
	}
	return results
}

func TestAverageLatency(t *testing.T) {
	res := resolveAll(t)
	s := Build(res, passingResults()) // 10, 20, 30, 40, 50 ms

	if s.AverageMS != 30 {
		t.Fatalf("average = %d, want 30", s.AverageMS)
	}
}

func TestVerdictAllGreen(t *testing.T) {
	s := Build(resolveAll(t), passingResults())
	if !s.OK {
		t.Fatal("summary should be OK")
	}
	if len(s.Missing) != 0 {
		t.Fatalf("missing = %v", s.Missing)
	}
}

func TestVerdictSingleMissingVariable(t *testing.T) {
	s := Build(resolveAll(t, "STRIPE_WEBHOOK_SECRET"), passingResults())
	if s.OK {
		t.Fatal("summary should fail with a missing variable")
	}
	if len(s.Missing) != 1 || s.Missing[0] != "STRIPE_WEBHOOK_SECRET" {
		t.Fatalf("missing = %v", s.Missing)
	}
}

func TestVerdictSingleFailedCheck(t *testing.T) {
	results := passingResults()
	results[3] = check.Fail("SendGrid", check.KindBadResponse, "profile endpoint returned 401")

	s := Build(resolveAll(t), results)
	if s.OK {
		t.Fatal("summary should fail with a failed check")
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	rep := &Reporter{Out: &buf}

	rep.Render(Build(resolveAll(t), passingResults()))
	out := buf.String()

	if !strings.Contains(out, "PRODUCTION READY") {
		t.Fatalf("missing success banner:\n%s", out)
	}
	if strings.Contains(out, "Missing variables:") {
		t.Fatalf("missing-variables line printed with nothing missing:\n%s", out)
	}
	for _, key := range config.RequiredVars {
		if !strings.Contains(out, key) {
			t.Fatalf("variable %s not rendered", key)
		}
	}
}

func TestRenderTextFailure(t *testing.T) {
	var buf bytes.Buffer
	rep := &Reporter{Out: &buf}

	rep.Render(Build(resolveAll(t, "SENDGRID_API_KEY", "SITE_URL"), passingResults()))
	out := buf.String()

	if !strings.Contains(out, "NOT PRODUCTION READY") {
		t.Fatalf("missing failure banner:\n%s", out)
	}
	if !strings.Contains(out, "Missing variables: SENDGRID_API_KEY, SITE_URL") {
		t.Fatalf("missing-variables list wrong:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	rep := &Reporter{Out: &buf}

	if err := rep.RenderJSON(Build(resolveAll(t), passingResults())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !decoded.OK {
		t.Fatal("decoded summary should be OK")
	}
	if len(decoded.Checks) != 5 {
		t.Fatalf("decoded %d checks, want 5", len(decoded.Checks))
	}
}
