// Package hosting wraps the Netlify CLI as a read-only source of
// deployment environment variables.
package hosting

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

type Site struct {
	ID   string
	Name string
}

// NetlifyCLI drives the netlify binary. Linked state is queried first;
// an unlinked checkout is auto-linked from the git remote, falling back
// to a name match against the account's site list.
type NetlifyCLI struct {
	Bin    string
	Runner Runner
}

func (c *NetlifyCLI) bin() string {
	if c.Bin == "" {
		return "netlify"
	}
	return c.Bin
}

func (c *NetlifyCLI) runner() Runner {
	if c.Runner == nil {
		return &ExecRunner{}
	}
	return c.Runner
}

// Linked reports whether the working directory is linked to a site.
func (c *NetlifyCLI) Linked(ctx context.Context) bool {
	out, err := c.runner().Run(ctx, c.bin(), "status", "--json")
	if err != nil {
		return false
	}
	data := gjson.Get(out, "siteData")
	if !data.Exists() {
		return false
	}
	return data.Get("site-id").String() != "" || data.Get("id").String() != ""
}

// EnsureLinked establishes site linkage when missing. Auto-link order:
// by git remote URL, then by a fuzzy name match against sites:list.
// The name match links only when exactly one candidate matches.
func (c *NetlifyCLI) EnsureLinked(ctx context.Context) error {
	if c.Linked(ctx) {
		return nil
	}

	remote, err := c.gitRemoteURL(ctx)
	if err != nil || remote == "" {
		return fmt.Errorf("not linked and no git remote to link from: %w", err)
	}

	if err := c.linkByGitRemote(ctx, remote); err == nil && c.Linked(ctx) {
		return nil
	}

	sites, err := c.Sites(ctx)
	if err != nil {
		return fmt.Errorf("list sites: %w", err)
	}
	name := normalizeName(repoNameFromRemote(remote))
	var matches []Site
	for _, s := range sites {
		if strings.Contains(normalizeName(s.Name), name) {
			matches = append(matches, s)
		}
	}
	if len(matches) != 1 {
		return fmt.Errorf("cannot auto-link: %d candidate sites match %q", len(matches), name)
	}
	return c.linkByID(ctx, matches[0].ID)
}

func (c *NetlifyCLI) linkByGitRemote(ctx context.Context, remoteURL string) error {
	_, err := c.runner().Run(ctx, c.bin(), "link", "--git-remote-url", remoteURL)
	return err
}

func (c *NetlifyCLI) linkByID(ctx context.Context, id string) error {
	_, err := c.runner().Run(ctx, c.bin(), "link", "--id", id)
	return err
}

// Sites lists the remote sites visible to the authenticated account.
func (c *NetlifyCLI) Sites(ctx context.Context) ([]Site, error) {
	out, err := c.runner().Run(ctx, c.bin(), "sites:list", "--json")
	if err != nil {
		return nil, err
	}
	var sites []Site
	gjson.Parse(out).ForEach(func(_, v gjson.Result) bool {
		sites = append(sites, Site{
			ID:   v.Get("id").String(),
			Name: v.Get("name").String(),
		})
		return true
	})
	return sites, nil
}

// EnvGet reads one deployment variable value. The caller is expected to
// reject values that look like CLI error output.
func (c *NetlifyCLI) EnvGet(ctx context.Context, key string) (string, error) {
	out, err := c.runner().Run(ctx, c.bin(), "env:get", key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *NetlifyCLI) gitRemoteURL(ctx context.Context) (string, error) {
	out, err := c.runner().Run(ctx, "git", "remote", "get-url", "origin")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// repoNameFromRemote extracts the repository name from a git remote URL
// in either SSH or HTTPS form.
func repoNameFromRemote(remote string) string {
	remote = strings.TrimSuffix(strings.TrimSpace(remote), ".git")
	remote = strings.TrimSuffix(remote, "/")
	if idx := strings.LastIndexAny(remote, "/:"); idx >= 0 {
		remote = remote[idx+1:]
	}
	return remote
}

// normalizeName folds case and separators so "auditresponse.ai" matches
// a site named "auditresponse-ai".
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return b.String()
}
