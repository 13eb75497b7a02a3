package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/buildboard/buildboard/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	envFile := flag.String("env-file", "", "dotenv file to load (optional, defaults to .env)")
	admin := flag.Bool("admin", false, "print early-access signups and exit")
	health := flag.Bool("health", false, "check backend health and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, EnvFile: *envFile}

	var err error
	switch {
	case *admin:
		err = app.RunAdmin(ctx, opts, os.Stdout)
	case *health:
		err = app.RunHealth(ctx, opts, os.Stdout)
	default:
		err = app.Run(ctx, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildboard: %v\n", err)
		return 1
	}
	return 0
}
