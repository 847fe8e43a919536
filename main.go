package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/handler"
	"github.com/fakhrymubarak/weather-cli/internal/presenter"
	"github.com/fakhrymubarak/weather-cli/internal/redis"
	"github.com/fakhrymubarak/weather-cli/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// run wires the lookup loop to the given streams and blocks until it finishes.
func run(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	log := config.ConfigureLogger()
	defer func() { _ = log.Sync() }()

	if config.GetOpenWeatherMapAPIKey() == "" {
		log.Warnw("OPENWEATHERMAP_API_KEY is not set; every lookup will fail")
	}
	if config.IsCacheEnabled() {
		if err := redis.Ping(ctx); err != nil {
			log.Warnw("Redis unreachable, lookups will bypass the cache", "addr", config.GetRedisAddr(), "error", err)
		}
		defer func() { _ = redis.Close() }()
	}

	p := presenter.New(!config.IsColorDisabled() && isTerminal(out))
	h := handler.NewPromptHandler(service.NewWeatherService(), p, in, out, errOut)

	err := h.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, handler.ErrInputUnreadable):
		log.Errorw("Aborting: standard input is unreadable", "error", err)
	default:
		log.Warnw("Interrupted", "error", err)
	}
	return err
}

// isTerminal reports whether w is a terminal; colors are only written there.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
