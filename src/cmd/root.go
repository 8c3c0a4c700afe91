// Package cmd implements the chronos command-line entrypoint.
package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apimgr/chronos/src/capability"
	"github.com/apimgr/chronos/src/logging"
	"github.com/apimgr/chronos/src/metrics"
	"github.com/apimgr/chronos/src/paths"
	chronossignal "github.com/apimgr/chronos/src/signal"
	"github.com/apimgr/chronos/src/supervisor"
)

var (
	// Build info, set via -ldflags at build time.
	Version   = "dev"
	CommitID  = "unknown"
	BuildDate = "unknown"

	logLevel    string
	logDir      string
	metricsAddr string
	pidFile     string
)

var rootCmd = &cobra.Command{
	Use:   "chronos SCHEDULE_FILE",
	Short: "A persistent single-host task scheduler daemon",
	Long: `chronos reads a schedule file describing recurring shell commands,
runs them at their due times, and reloads the schedule automatically
whenever the file's content changes.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(args[0])
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for rotated log files (OS default if empty)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (disabled if empty)")
	rootCmd.PersistentFlags().StringVar(&pidFile, "pid-file", "", "PID file location (OS default if empty)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("chronos %s (%s) built %s\n", Version, CommitID, BuildDate))
	rootCmd.Version = Version
}

func initConfig() {
	viper.SetEnvPrefix("chronos")
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_dir", "")
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("pid_file", "")

	if !rootCmd.PersistentFlags().Changed("log-level") {
		if v := viper.GetString("log_level"); v != "" {
			logLevel = v
		}
	}
	if !rootCmd.PersistentFlags().Changed("log-dir") {
		logDir = viper.GetString("log_dir")
	}
	if !rootCmd.PersistentFlags().Changed("metrics-addr") {
		metricsAddr = viper.GetString("metrics_addr")
	}
	if !rootCmd.PersistentFlags().Changed("pid-file") {
		pidFile = viper.GetString("pid_file")
	}
}

// Execute runs the root command, returning any error for main to report and
// translate into an exit code.
func Execute() error {
	return rootCmd.Execute()
}

func runDaemon(schedulePath string) error {
	p := paths.Get("apimgr", "chronos", paths.IsPrivileged())
	if logDir == "" {
		logDir = p.LogDir
	}
	if pidFile == "" {
		pidFile = p.PIDFile
	}

	logging.Init(logging.Config{Level: logLevel, Dir: logDir})
	logger := logging.Get()
	adapter := logging.SlogAdapter{L: logger}

	if err := writePIDFile(pidFile); err != nil {
		logger.Warn("failed to write PID file", "path", pidFile, "error", err)
	}

	var m *metrics.Metrics
	if metricsAddr != "" {
		m = serveMetrics(metricsAddr, logger)
	} else {
		m = &metrics.Metrics{}
	}

	sup, err := supervisor.New(schedulePath, capability.RealClock{}, capability.NewShellCall(), adapter, m)
	if err != nil {
		return fmt.Errorf("chronos: %w", err)
	}

	chronossignal.Setup(chronossignal.ShutdownConfig{
		Stop:      sup.Stop,
		ReloadNow: sup.RequestReload,
		PIDFile:   pidFile,
		Logger:    logger,
	})

	go sup.Run()
	sup.Wait()

	if err := chronossignal.RemovePIDFile(pidFile); err != nil {
		logger.Warn("failed to remove PID file", "path", pidFile, "error", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0o644)
}

// serveMetrics registers the Prometheus collectors and starts the metrics
// HTTP server on a background goroutine. A listen failure is logged, not
// fatal: metrics are an optional ambient concern, never a reason to refuse
// to run the schedule.
func serveMetrics(addr string, logger *slog.Logger) *metrics.Metrics {
	m, handler := metrics.New()
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Warn("metrics server stopped", "addr", addr, "error", err)
		}
	}()
	return m
}
