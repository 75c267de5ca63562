// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/poly-millionaire/client"
	"github.com/danielhkuo/poly-millionaire/cliparse"
)

const (
	defaultURL  = "http://localhost:5000"
	defaultTick = 30 * time.Second
)

const usage = `Usage: millionaire [flags] <command> [args]

Commands:
  play <slug>          play a game on a subject
  subjects             list subjects
  leaderboard          show the global leaderboard
  history [gameID]     list your games, or show one game's answers
  me                   show who you are signed in as
  admin <command>      manage subjects, questions and users (admin only)

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Live countdown lines only make sense on a terminal
	tick := time.Duration(0)
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		tick = defaultTick
	}

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, tick); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "millionaire:", err)
		}
		os.Exit(1)
	}
}

type config struct {
	URL    string
	User   string
	Outbox string
}

// parseConfig reads the global flags, falling back to MILLIONAIRE_*
// environment variables (optionally from an env file) and defaults.
// It returns the remaining arguments.
func parseConfig(args []string, out io.Writer) (config, []string, error) {
	var cfg config
	var envFile string

	fs := flag.NewFlagSet("millionaire", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&envFile, "env", ".env", "Environment file loaded before reading env variables")
	fs.StringVar(&cfg.URL, "url", "", "Server URL (env MILLIONAIRE_URL, default "+defaultURL+")")
	fs.StringVar(&cfg.User, "user", "", "User id sent as the identity cookie (env MILLIONAIRE_USER)")
	fs.StringVar(&cfg.Outbox, "outbox", "", "File holding undelivered games (env MILLIONAIRE_OUTBOX)")

	if err := fs.Parse(args); err != nil {
		return config{}, nil, err
	}
	if err := cliparse.LoadEnvFile(envFile); err != nil {
		return config{}, nil, err
	}

	if cfg.URL == "" {
		cfg.URL = os.Getenv("MILLIONAIRE_URL")
		if cfg.URL == "" {
			cfg.URL = defaultURL
		}
	}
	if cfg.User == "" {
		cfg.User = os.Getenv("MILLIONAIRE_USER")
	}
	if cfg.Outbox == "" {
		cfg.Outbox = os.Getenv("MILLIONAIRE_OUTBOX")
		if cfg.Outbox == "" {
			cfg.Outbox = defaultOutbox()
		}
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return config{}, nil, flag.ErrHelp
	}
	return cfg, fs.Args(), nil
}

func defaultOutbox() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "millionaire-outbox.jsonl"
	}
	return filepath.Join(dir, "poly-millionaire", "outbox.jsonl")
}

// run executes one command. tick is the interval of the live countdown
// during play; zero disables it.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer, tick time.Duration) error {
	cfg, args, err := parseConfig(args, out)
	if err != nil {
		return err
	}

	api, err := client.New(cfg.URL, cfg.User)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Outbox), 0o755); err != nil {
		return fmt.Errorf("failed to create outbox directory: %w", err)
	}

	a := &app{
		api:       api,
		submitter: client.NewSubmitter(api, client.NewOutbox(cfg.Outbox)),
		lines:     readLines(in),
		out:       out,
		tick:      tick,
	}
	a.flushOutbox(ctx)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "play":
		return a.play(ctx, rest)
	case "subjects":
		return a.listSubjects(ctx)
	case "leaderboard":
		return a.leaderboard(ctx)
	case "history":
		return a.history(ctx, rest)
	case "me":
		return a.me(ctx)
	case "admin":
		return a.admin(ctx, rest)
	case "help":
		fmt.Fprint(out, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q (see millionaire help)", cmd)
}
