package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	apperrors "github.com/agbru/orbitcalc/internal/errors"
	"github.com/agbru/orbitcalc/internal/logging"
	"github.com/agbru/orbitcalc/internal/server"
)

// runServer serves the HTTP API until SIGINT or SIGTERM.
func (a *Application) runServer(ctx context.Context, _ io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.New(a.Config.Serve, a.Factory,
		server.WithLogger(logging.NewLogger(a.ErrWriter, "server")),
		server.WithRequestTimeout(a.Config.Timeout),
	)
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
