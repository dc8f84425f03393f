package app

import (
	"context"
	"io"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/jhouston2019/auditresponse.ai/internal/config"
	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
	"github.com/jhouston2019/auditresponse.ai/internal/core/runner"
	"github.com/jhouston2019/auditresponse.ai/internal/hosting"
	"github.com/jhouston2019/auditresponse.ai/internal/logger"
	"github.com/jhouston2019/auditresponse.ai/internal/notify"
	aiprobe "github.com/jhouston2019/auditresponse.ai/internal/probes/openai"
	sendgridprobe "github.com/jhouston2019/auditresponse.ai/internal/probes/sendgrid"
	siteprobe "github.com/jhouston2019/auditresponse.ai/internal/probes/site"
	stripeprobe "github.com/jhouston2019/auditresponse.ai/internal/probes/stripe"
	supabaseprobe "github.com/jhouston2019/auditresponse.ai/internal/probes/supabase"
	"github.com/jhouston2019/auditresponse.ai/internal/report"
)

type Options struct {
	ConfigPath string
	EnvFile    string
	JSON       bool
	Schedule   string

	// probeBuilder substitutes probe construction in tests; nil means
	// the real five-probe set.
	probeBuilder func(*config.Config, *config.Resolution) []check.Probe
}

// Run executes the full check cycle and returns the process exit code:
// 0 when every required variable is present and every probe passed,
// 1 otherwise. A panic anywhere below is recovered here and also maps
// to exit code 1; the process never reports success on an unexpected
// failure.
func Run(ctx context.Context, opts Options, out io.Writer) (code int) {
	log := logger.New(logger.Config{})
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("unexpected failure: %v", r)
			code = 1
		}
	}()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Errorf("load config: %v", err)
		return 1
	}
	log = logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	var cli config.HostingCLI
	if !cfg.Hosting.Disable {
		cli = &hosting.NetlifyCLI{Bin: cfg.Hosting.Bin}
	}
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = cfg.Hosting.EnvFile
	}

	// Resolution runs once, strictly before any probe dispatch.
	res := config.Resolve(ctx, cli, envFile, log)
	log.Infof("environment resolved: %d/%d present (%d cli, %d file)",
		len(config.RequiredVars)-len(res.Missing()), len(config.RequiredVars),
		res.CountFrom(config.SourceCLI), res.CountFrom(config.SourceFile))

	builder := opts.probeBuilder
	if builder == nil {
		builder = buildProbes
	}
	probes := builder(cfg, res)

	cycle := func(ctx context.Context) int {
		results := runner.RunAll(ctx, probes)
		summary := report.Build(res, results)

		rep := &report.Reporter{Out: out}
		if opts.JSON {
			if err := rep.RenderJSON(summary); err != nil {
				log.Errorf("render summary: %v", err)
				return 1
			}
		} else {
			rep.Render(summary)
		}

		if cfg.Notify.WebhookURL != "" {
			wh := &notify.Webhook{URL: cfg.Notify.WebhookURL, Timeout: cfg.Notify.Timeout}
			if err := wh.Send(ctx, summary); err != nil {
				log.Errorf("notify webhook: %v", err)
			}
		}

		if summary.OK {
			return 0
		}
		return 1
	}

	if opts.Schedule == "" {
		return cycle(ctx)
	}
	return runScheduled(ctx, opts.Schedule, cycle, log)
}

// runScheduled repeats the check cycle on a cron schedule until the
// context is cancelled; the most recent completed cycle's verdict
// becomes the exit code. Cycles never overlap: a tick that fires while
// the previous cycle is still running is skipped, and shutdown waits
// for an in-flight cycle to finish before the verdict is read.
func runScheduled(ctx context.Context, schedule string, cycle func(context.Context) int, log *logger.Logger) int {
	var mu sync.Mutex
	last := cycle(ctx)

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	runLog := log.With("mode", "schedule")
	_, err := c.AddFunc(schedule, func() {
		code := cycle(ctx)
		mu.Lock()
		last = code
		mu.Unlock()
		runLog.Infof("scheduled run finished: exit=%d", code)
	})
	if err != nil {
		log.Errorf("invalid schedule %q: %v", schedule, err)
		return 1
	}
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()

	mu.Lock()
	defer mu.Unlock()
	return last
}

// buildProbes wires resolved environment values into the five probes,
// in fixed report order.
func buildProbes(cfg *config.Config, env *config.Resolution) []check.Probe {
	return []check.Probe{
		&aiprobe.Probe{
			NameValue: "OpenAI",
			APIKey:    env.Get("OPENAI_API_KEY"),
			Model:     cfg.Probes.Model,
			Timeout:   cfg.Probes.AITimeout,
		},
		&supabaseprobe.Probe{
			NameValue:  "Supabase",
			URL:        env.Get("SUPABASE_URL"),
			ServiceKey: env.Get("SUPABASE_SERVICE_ROLE_KEY"),
			Table:      cfg.Probes.Table,
			Timeout:    cfg.Probes.Timeout,
		},
		&stripeprobe.Probe{
			NameValue: "Stripe",
			SecretKey: env.Get("STRIPE_SECRET_KEY"),
			PriceID:   env.Get("STRIPE_PRICE_RESPONSE"),
			Timeout:   cfg.Probes.Timeout,
		},
		&sendgridprobe.Probe{
			NameValue: "SendGrid",
			APIKey:    env.Get("SENDGRID_API_KEY"),
			Timeout:   cfg.Probes.Timeout,
		},
		&siteprobe.Probe{
			NameValue: "Site",
			URL:       env.Get("SITE_URL"),
			Timeout:   cfg.Probes.Timeout,
		},
	}
}
