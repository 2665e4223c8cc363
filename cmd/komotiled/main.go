package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/komotile/internal/animation"
	"github.com/1broseidon/komotile/internal/border"
	"github.com/1broseidon/komotile/internal/config"
	"github.com/1broseidon/komotile/internal/daemon"
	"github.com/1broseidon/komotile/internal/eventsource"
	"github.com/1broseidon/komotile/internal/ipc"
	"github.com/1broseidon/komotile/internal/notify"
	"github.com/1broseidon/komotile/internal/platform"
	"github.com/1broseidon/komotile/internal/reducer"
	"github.com/1broseidon/komotile/internal/wm"
	"github.com/1broseidon/komotile/internal/x11"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		logger.Error("failed to connect to display server", "error", err)
		os.Exit(1)
	}
	defer backend.Disconnect()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := eventsource.NewBus(256, logger)
	animEngine := animation.NewEngine(cfg.Animation.FPS)
	notifyBus := notify.New(logger)

	var borderDriver *border.Driver
	if cfg.Border.Enabled {
		borderConn, err := x11.NewConnection()
		if err != nil {
			logger.Warn("border overlay disabled: failed to open X11 connection", "error", err)
		} else {
			borderDriver, err = border.NewDriver(borderConn, cfg.Border)
			if err != nil {
				logger.Warn("border overlay disabled", "error", err)
				borderDriver = nil
			}
		}
	}

	publisher := fanOutPublisher(notifyBus, borderDriver)

	state := wm.NewState()
	red := reducer.New(state, cfg, backend, animEngine, publisher, nil, logger)
	recon := eventsource.NewReconciliator(red, durationFromMs(cfg.AltTabReconciliationWindowMs), logger)
	red.SetReconciliator(recon)

	focusNotifier := eventsource.NewFocusNotifier(red, func() bool { return red.Config().MouseFollowsFocus }, logger)

	go red.Run(ctx, bus)
	go recon.Run(ctx)
	go focusNotifier.Run(ctx)

	if err := bus.PumpOSEvents(ctx, backend); err != nil {
		logger.Error("failed to subscribe to OS events", "error", err)
		os.Exit(1)
	}

	bootstrap(bus, backend, logger)

	server, err := ipc.NewServer(red, notifyBus, cancel, logger)
	if err != nil {
		logger.Error("failed to create command socket server", "error", err)
		os.Exit(1)
	}
	if err := server.Start(); err != nil {
		logger.Error("failed to start command socket", "error", err)
		os.Exit(1)
	}
	defer server.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	logger.Info("komotiled started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("komotiled shutting down")
			return
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				newCfg, err := config.Load()
				if err != nil {
					logger.Warn("configuration reload failed", "error", err)
					continue
				}
				if err := red.ReloadConfig(newCfg); err != nil {
					logger.Warn("configuration reload rejected", "error", err)
				} else {
					logger.Info("configuration reloaded")
				}
			case os.Interrupt, syscall.SIGTERM:
				cancel()
			}
		}
	}
}

func fanOutPublisher(notifyBus *notify.Bus, borderDriver *border.Driver) reducer.SnapshotPublisher {
	targets := []daemon.Publisher{notifyBus}
	if borderDriver != nil {
		targets = append(targets, borderDriver)
	}
	return daemon.NewFanOutPublisher(targets...)
}

// bootstrap seeds the reducer's empty state tree with the platform's
// current displays and windows by publishing the same events the OS event
// pump would emit for a hotplug/window-create, reusing handleDisplaysChanged
// and handleWindowCreated instead of duplicating their logic.
func bootstrap(bus *eventsource.Bus, backend platform.Backend, logger *slog.Logger) {
	bus.Publish(eventsource.Event{Kind: eventsource.KindDisplaysChanged})

	displays, err := backend.Displays()
	if err != nil {
		logger.Warn("bootstrap: failed to list displays", "error", err)
		return
	}
	for _, d := range displays {
		windows, err := backend.ListWindowsOnDisplay(d.ID)
		if err != nil {
			logger.Warn("bootstrap: failed to list windows", "display", d.ID, "error", err)
			continue
		}
		for _, w := range windows {
			bus.Publish(eventsource.Event{Kind: eventsource.KindWindowCreated, WindowID: w.ID})
		}
	}
}

func durationFromMs(ms int) time.Duration {
	if ms <= 0 {
		return time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	out := os.Stderr
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			out = f
		}
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
