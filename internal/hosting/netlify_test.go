package hosting

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRunner serves canned output per command, popping queued responses
// so linkage state can change between calls.
type fakeRunner struct {
	outputs map[string][]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if err := f.errs[key]; err != nil {
		return "", err
	}
	queue := f.outputs[key]
	if len(queue) == 0 {
		return "", nil
	}
	out := queue[0]
	if len(queue) > 1 {
		f.outputs[key] = queue[1:]
	}
	return out, nil
}

func (f *fakeRunner) called(key string) bool {
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

const linkedStatus = `{"siteData": {"site-id": "site-1", "site-name": "auditresponse-ai"}}`

func TestLinkedParsesStatus(t *testing.T) {
	r := &fakeRunner{outputs: map[string][]string{
		"netlify status --json": {linkedStatus},
	}}
	cli := &NetlifyCLI{Runner: r}
	if !cli.Linked(context.Background()) {
		t.Fatal("expected linked")
	}

	r = &fakeRunner{outputs: map[string][]string{
		"netlify status --json": {`{}`},
	}}
	cli = &NetlifyCLI{Runner: r}
	if cli.Linked(context.Background()) {
		t.Fatal("expected not linked")
	}
}

func TestLinkedFalseWhenCLIMissing(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{
		"netlify status --json": errors.New("netlify: command not found"),
	}}
	cli := &NetlifyCLI{Runner: r}
	if cli.Linked(context.Background()) {
		t.Fatal("expected not linked when CLI is unavailable")
	}
}

func TestEnsureLinkedAlreadyLinked(t *testing.T) {
	r := &fakeRunner{outputs: map[string][]string{
		"netlify status --json": {linkedStatus},
	}}
	cli := &NetlifyCLI{Runner: r}
	if err := cli.EnsureLinked(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.calls) != 1 {
		t.Fatalf("calls = %v, want status only", r.calls)
	}
}

func TestEnsureLinkedByGitRemote(t *testing.T) {
	remote := "git@github.com:jhouston2019/auditresponse.ai.git"
	r := &fakeRunner{outputs: map[string][]string{
		"netlify status --json":     {`{}`, linkedStatus},
		"git remote get-url origin": {remote + "\n"},
		"netlify link --git-remote-url " + remote: {""},
	}}
	cli := &NetlifyCLI{Runner: r}
	if err := cli.EnsureLinked(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.called("netlify link --git-remote-url " + remote) {
		t.Fatalf("git-remote link not attempted: %v", r.calls)
	}
}

func TestEnsureLinkedNameFallback(t *testing.T) {
	remote := "https://github.com/jhouston2019/auditresponse.ai.git"
	r := &fakeRunner{
		outputs: map[string][]string{
			"netlify status --json":     {`{}`},
			"git remote get-url origin": {remote},
			"netlify sites:list --json": {`[{"id": "s1", "name": "auditresponse-ai"}, {"id": "s2", "name": "other-site"}]`},
		},
		errs: map[string]error{
			"netlify link --git-remote-url " + remote: errors.New("no site found for repository"),
		},
	}
	cli := &NetlifyCLI{Runner: r}
	if err := cli.EnsureLinked(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.called("netlify link --id s1") {
		t.Fatalf("expected link by id, calls: %v", r.calls)
	}
}

func TestEnsureLinkedAmbiguousMatch(t *testing.T) {
	remote := "https://github.com/jhouston2019/auditresponse.ai.git"
	r := &fakeRunner{
		outputs: map[string][]string{
			"netlify status --json":     {`{}`},
			"git remote get-url origin": {remote},
			"netlify sites:list --json": {`[{"id": "s1", "name": "auditresponse-ai"}, {"id": "s2", "name": "auditresponse-ai-staging"}]`},
		},
		errs: map[string]error{
			"netlify link --git-remote-url " + remote: errors.New("no site found for repository"),
		},
	}
	cli := &NetlifyCLI{Runner: r}
	if err := cli.EnsureLinked(context.Background()); err == nil {
		t.Fatal("ambiguous match must not auto-link")
	}
	if r.called("netlify link --id s1") || r.called("netlify link --id s2") {
		t.Fatalf("link attempted despite ambiguity: %v", r.calls)
	}
}

func TestEnsureLinkedNoGitRemote(t *testing.T) {
	r := &fakeRunner{
		outputs: map[string][]string{"netlify status --json": {`{}`}},
		errs:    map[string]error{"git remote get-url origin": errors.New("not a git repository")},
	}
	cli := &NetlifyCLI{Runner: r}
	if err := cli.EnsureLinked(context.Background()); err == nil {
		t.Fatal("expected error without a git remote")
	}
}

func TestEnvGetTrims(t *testing.T) {
	r := &fakeRunner{outputs: map[string][]string{
		"netlify env:get SITE_URL": {"https://auditresponse.ai\n"},
	}}
	cli := &NetlifyCLI{Runner: r}
	val, err := cli.EnvGet(context.Background(), "SITE_URL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "https://auditresponse.ai" {
		t.Fatalf("value = %q", val)
	}
}

func TestRepoNameFromRemote(t *testing.T) {
	cases := []struct {
		remote string
		want   string
	}{
		{"git@github.com:jhouston2019/auditresponse.ai.git", "auditresponse.ai"},
		{"https://github.com/jhouston2019/auditresponse.ai.git", "auditresponse.ai"},
		{"https://github.com/jhouston2019/auditresponse.ai", "auditresponse.ai"},
	}
	for _, c := range cases {
		if got := repoNameFromRemote(c.remote); got != c.want {
			t.Errorf("repoNameFromRemote(%q) = %q, want %q", c.remote, got, c.want)
		}
	}
}
