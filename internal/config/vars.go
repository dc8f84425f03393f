package config

// Source labels recorded per resolved variable.
const (
	SourceProcess = "process"
	SourceCLI     = "cli"
	SourceFile    = "file"
	SourceAlias   = "alias"
)

// RequiredVars is the fixed set of deployment variables the checker
// verifies, in report order.
var RequiredVars = []string{
	"OPENAI_API_KEY",
	"SUPABASE_URL",
	"SUPABASE_SERVICE_ROLE_KEY",
	"STRIPE_PUBLISHABLE_KEY",
	"STRIPE_SECRET_KEY",
	"STRIPE_PRICE_RESPONSE",
	"STRIPE_WEBHOOK_SECRET",
	"SENDGRID_API_KEY",
	"SITE_URL",
	"ENVIRONMENT",
}

// Aliases maps legacy variable names to their canonical names. An alias
// value is copied to the canonical name only when the canonical name is
// absent after all sources have run.
var Aliases = map[string]string{
	"STRIPE_PUBLIC_KEY": "STRIPE_PUBLISHABLE_KEY",
	"STRIPE_PRICE_ID":   "STRIPE_PRICE_RESPONSE",
}

// trackedKeys returns every variable name worth collecting from a
// source: the required set plus all alias names.
func trackedKeys() []string {
	keys := make([]string, 0, len(RequiredVars)+len(Aliases))
	keys = append(keys, RequiredVars...)
	for alias := range Aliases {
		keys = append(keys, alias)
	}
	return keys
}

// Resolution is the immutable outcome of environment resolution. Values
// are written once during Resolve (first writer wins) and read-only
// afterwards.
type Resolution struct {
	values map[string]string
	source map[string]string
}

func newResolution() *Resolution {
	return &Resolution{
		values: make(map[string]string),
		source: make(map[string]string),
	}
}

// set records a value for key unless an earlier source already did.
func (r *Resolution) set(key, value, source string) {
	if _, ok := r.values[key]; ok {
		return
	}
	r.values[key] = value
	r.source[key] = source
}

func (r *Resolution) Get(key string) string {
	return r.values[key]
}

func (r *Resolution) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// SourceOf reports which source supplied a key, or "" when absent.
func (r *Resolution) SourceOf(key string) string {
	return r.source[key]
}

// Missing lists the required variables with no value, in declared order.
func (r *Resolution) Missing() []string {
	var missing []string
	for _, key := range RequiredVars {
		if !r.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// CountFrom reports how many required variables came from a source.
func (r *Resolution) CountFrom(source string) int {
	n := 0
	for _, key := range RequiredVars {
		if r.source[key] == source {
			n++
		}
	}
	return n
}
