package config

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jhouston2019/auditresponse.ai/internal/logger"
)

// HostingCLI is the slice of the hosting-provider CLI the resolver
// needs: establish linkage to a remote site, then read variable values.
type HostingCLI interface {
	EnsureLinked(ctx context.Context) error
	EnvGet(ctx context.Context, key string) (string, error)
}

// Resolve builds the environment set for a check run. Sources are
// consulted in a fixed order and the first writer for a key wins:
//
//	1. the process environment
//	2. the hosting-provider CLI (when linkage can be established)
//	3. a local dotenv fallback file
//
// Alias names are copied to their canonical names afterwards. Resolve
// never fails: a broken source contributes nothing and resolution
// continues with whatever is available.
func Resolve(ctx context.Context, cli HostingCLI, envFile string, log *logger.Logger) *Resolution {
	res := newResolution()
	keys := trackedKeys()

	for _, key := range keys {
		if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
			res.set(key, val, SourceProcess)
		}
	}

	if cli != nil {
		resolveFromCLI(ctx, cli, keys, res, log)
	}

	if envFile != "" {
		resolveFromFile(envFile, keys, res, log)
	}

	for alias, canonical := range Aliases {
		if res.Has(alias) && !res.Has(canonical) {
			res.set(canonical, res.Get(alias), SourceAlias)
		}
	}

	return res
}

func resolveFromCLI(ctx context.Context, cli HostingCLI, keys []string, res *Resolution, log *logger.Logger) {
	if err := cli.EnsureLinked(ctx); err != nil {
		log.With("source", SourceCLI).Infof("hosting CLI unavailable, relying on fallback sources: %v", err)
		return
	}
	for _, key := range keys {
		if res.Has(key) {
			continue
		}
		val, err := cli.EnvGet(ctx, key)
		if err != nil || !usableValue(val) {
			continue
		}
		res.set(key, strings.TrimSpace(val), SourceCLI)
	}
}

func resolveFromFile(path string, keys []string, res *Resolution, log *logger.Logger) {
	vars, err := godotenv.Read(path)
	if err != nil {
		log.With("source", SourceFile).Infof("fallback file %s not readable: %v", path, err)
		return
	}
	for _, key := range keys {
		if res.Has(key) {
			continue
		}
		if val, ok := vars[key]; ok && strings.TrimSpace(val) != "" {
			res.set(key, val, SourceFile)
		}
	}
}

// usableValue rejects empty values and CLI output that is an error
// message rather than a variable value.
func usableValue(val string) bool {
	val = strings.TrimSpace(val)
	if val == "" {
		return false
	}
	lower := strings.ToLower(val)
	if strings.Contains(lower, "error") || strings.Contains(lower, "not found") {
		return false
	}
	if strings.HasPrefix(val, "(") {
		return false
	}
	return true
}
