package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"dailyread/internal/attempt"
	"dailyread/internal/config"
	"dailyread/internal/playbook"
	"dailyread/internal/sim"
	"dailyread/internal/util"
)

func main() {
	var playPath, tuningPath, name, endpoint, outboxDir, logPath string
	flag.StringVar(&playPath, "play", "", "play file (YAML or JSON); empty loads the daily play")
	flag.StringVar(&tuningPath, "tuning", "", "tuning file")
	flag.StringVar(&name, "name", "", "override play name for the generator")
	flag.StringVar(&endpoint, "endpoint", util.GetEnvDefault("DAILYREAD_ENDPOINT", "ws://localhost:9090/api/attempts"), "attempt websocket endpoint")
	flag.StringVar(&outboxDir, "outbox", util.GetEnvDefault("DAILYREAD_OUTBOX", ".dailyread/outbox"), "directory for unsent attempts")
	flag.StringVar(&logPath, "logfile", "", "write logs to this file")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var play *config.Play
	var err error
	switch {
	case playPath != "":
		play, err = config.LoadPlay(playPath)
	case name != "":
		play = playbook.FromName(name)
	default:
		play = playbook.Today(time.Now())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load play: %v\n", err)
		os.Exit(1)
	}
	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load tuning: %v\n", err)
		os.Exit(1)
	}
	store, err := attempt.NewFileStore(outboxDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open outbox: %v\n", err)
		os.Exit(1)
	}
	outbox := attempt.NewOutbox(store, attempt.NewWSSubmitter(endpoint), attempt.WithOutboxLogger(logger))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	frames := &sim.FrameQueue{}
	session := sim.NewSession(frames, sim.WithTuning(tuning), sim.WithLogger(logger))
	ui := newApp(screen, session, frames, outbox)
	if err := ui.load(play); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to load play: %v\n", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return outbox.Run(gctx) })
	g.Go(func() error { return ui.deliver(gctx) })
	g.Go(func() error {
		defer cancel()
		defer screen.Fini()
		ui.run(gctx)
		session.Log(gctx, "session closed")
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("shutdown", "err", err)
	}
	if n, err := outbox.Pending(context.Background()); err == nil && n > 0 {
		fmt.Printf("%d attempt(s) waiting in %s\n", n, outboxDir)
	}
}
