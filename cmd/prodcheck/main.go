package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhouston2019/auditresponse.ai/internal/app"
)

func main() {
	configPath := flag.String("config", "", "config file path (optional)")
	envFile := flag.String("env-file", "", "fallback dotenv file (default .env.production)")
	jsonOut := flag.Bool("json", false, "emit the machine-readable summary instead of the text report")
	schedule := flag.String("schedule", "", "cron expression to repeat checks (default: run once)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := app.Run(ctx, app.Options{
		ConfigPath: *configPath,
		EnvFile:    *envFile,
		JSON:       *jsonOut,
		Schedule:   *schedule,
	}, os.Stdout)
	stop()
	os.Exit(code)
}
