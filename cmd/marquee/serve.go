package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/presentation/tui"
	httpAdapter "github.com/aretw0/marquee/pkg/adapters/http"
	"github.com/aretw0/marquee/pkg/adapters/process"
	"github.com/aretw0/marquee/pkg/adapters/terminal"
	"github.com/aretw0/marquee/pkg/observability"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the settings form and the display loop",
	Long: `Starts the HTTP settings form (with its JSON API, SSE display stream and
metrics) and the poll loop that rotates chunks onto the display.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		listen := a.cfg.Server.Listen
		if cmd.Flags().Changed("listen") {
			listen, _ = cmd.Flags().GetString("listen")
		}
		tick := a.cfg.Server.Tick
		if cmd.Flags().Changed("tick") {
			tick, _ = cmd.Flags().GetDuration("tick")
		}
		noTerminal, _ := cmd.Flags().GetBool("no-terminal")

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		streams := httpAdapter.NewStreamManager(a.logger)
		displays := ports.Displays{streams}
		if !noTerminal {
			displays = append(displays, terminal.New(os.Stdout, terminal.WithClear(true)))
			if terminal.IsTerminal(os.Stdout) {
				tui.PrintBanner(os.Stdout)
			}
		}

		if dc := a.cfg.Display; dc.Command != "" {
			proc := process.New(dc.Command, dc.Args,
				process.WithTimeout(dc.Timeout),
				process.WithLogger(a.logger),
			)
			defer proc.Close()
			displays = append(displays, proc)
		}

		engine := a.engine(ctx,
			marquee.WithDisplay(displays),
			marquee.WithLifecycleHooks(metrics.Hooks()),
		)
		defer engine.Close()

		srv := &http.Server{
			Addr: listen,
			Handler: httpAdapter.NewHandler(engine,
				httpAdapter.WithStreams(streams),
				httpAdapter.WithGatherer(reg),
				httpAdapter.WithLogger(a.logger),
			),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			a.logger.Info("Starting Marquee Server", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		loop := runner.NewRunner(tick)
		loop.Logger = a.logger
		go func() {
			_ = loop.Run(ctx, engine)
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			a.logger.Info("Start shutdown...")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("Graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					a.logger.Error("Error killing server", "err", err)
				}
			}
			a.logger.Info("Marquee Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
	serveCmd.Flags().Duration("tick", 250*time.Millisecond, "Display refresh tick")
	serveCmd.Flags().Bool("no-terminal", false, "Do not print chunks on stdout")
}
