package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corey/saw/internal/adapters/fsnotify"
	"github.com/corey/saw/internal/adapters/prom"
	"github.com/corey/saw/internal/adapters/resources"
	"github.com/corey/saw/internal/app"
	"github.com/corey/saw/internal/ports"
)

var watchMetricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Load saw recipes and reload on every change",
	Long: "Loads the recipes, then watches the resource root and reloads whenever a\n" +
		".json or .json5 document changes. With --metrics-addr, serves Prometheus\n" +
		"metrics on /metrics. Stops on SIGINT or SIGTERM.",
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve /metrics on this address (SAW_METRICS_ADDR)")
}

// reloadPrinter prints a one-line summary after every reload.
type reloadPrinter struct {
	out io.Writer
}

func (p reloadPrinter) RecipeRejected(string, error) {}

func (p reloadPrinter) ReloadCompleted(r ports.ReloadReport) {
	status := fmt.Sprintf("%s✓%s", colorGreen, colorReset)
	if r.Rejected > 0 {
		status = fmt.Sprintf("%s✗%s", colorRed, colorReset)
	}
	fmt.Fprintf(p.out, "%s %s%s%s │ %d accepted │ %d rejected │ %s\n",
		status, colorGray, time.Now().Format(time.TimeOnly), colorReset,
		r.Accepted, r.Rejected, r.Duration.Round(time.Microsecond))
}

func runWatch(cmd *cobra.Command, args []string) error {
	addr := cfg.MetricsAddr
	if cmd.Flags().Changed("metrics-addr") {
		addr = watchMetricsAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	metrics := prom.NewMetrics()
	engine, err := newEngine(app.Fanout{metrics, reloadPrinter{out: out}}, metrics)
	if err != nil {
		return err
	}

	if addr != "" {
		srv := &http.Server{Addr: addr, Handler: metricsMux(metrics), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", zap.Error(err))
			}
		}()
		defer shutdownServer(srv)
		fmt.Fprintf(out, "⚡ metrics on http://%s/metrics\n", addr)
	}

	if _, err := engine.Reload(ctx); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	w.RequireSegment(resources.Directory)
	fmt.Fprintf(out, "%s⚡ watching %s%s\n", colorBold, cfg.Resources, colorReset)

	err = engine.Watch(ctx, w, cfg.Resources, func(err error) {
		logger.Error("reload failed", zap.Error(err))
	})
	fmt.Fprintln(out, "\n⚡ shutting down...")
	return err
}

func metricsMux(m *prom.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return mux
}

func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
