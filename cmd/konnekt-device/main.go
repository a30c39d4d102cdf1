// Command konnekt-device is a simulated KONNEKTING device.
//
// The device runs on an in-process bus. Frames for the provisioning object
// are entered on an interactive console or piped in as hex lines; every
// frame the device sends is printed. The store image is kept in a file so a
// provisioned device survives restarts of the command.
//
// Usage:
//
//	konnekt-device [flags]
//
// Flags:
//
//	-config string        Device description file (.yaml, .yml or .toml)
//	-store string         Store image file (overrides the description)
//	-protocol-log string  Protocol capture file (.klog)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-interactive          Start the interactive console (default true)
//	-scenarios string     Run the YAML scenarios in a directory and exit
//	-verbose              Report every scenario step
//
// Examples:
//
//	# Interactive device with a persistent store
//	konnekt-device -config device.yaml -store device.eep
//
//	# Scripted session
//	printf '01 0A 11 FE 01 FF FF FF FF FF FF FF FF FF\n' | konnekt-device -interactive=false
//
//	# Conformance scenarios
//	konnekt-device -scenarios internal/scenario/testdata -verbose
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

	"github.com/konnekting/konnekting-go/cmd/konnekt-device/interactive"
	"github.com/konnekting/konnekting-go/internal/scenario"
	"github.com/konnekting/konnekting-go/pkg/config"
	"github.com/konnekting/konnekting-go/pkg/log"
)

// Config holds the command line configuration.
type Config struct {
	ConfigFile  string
	StoreFile   string
	ProtocolLog string
	LogLevel    string
	Interactive bool
	Scenarios   string
	Verbose     bool
}

var cliConfig Config

func init() {
	flag.StringVar(&cliConfig.ConfigFile, "config", "", "Device description file (.yaml, .yml or .toml)")
	flag.StringVar(&cliConfig.StoreFile, "store", "", "Store image file (overrides the description)")
	flag.StringVar(&cliConfig.ProtocolLog, "protocol-log", "", "Protocol capture file (.klog)")
	flag.StringVar(&cliConfig.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&cliConfig.Interactive, "interactive", true, "Start the interactive console")
	flag.StringVar(&cliConfig.Scenarios, "scenarios", "", "Run the YAML scenarios in a directory and exit")
	flag.BoolVar(&cliConfig.Verbose, "verbose", false, "Report every scenario step")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "konnekt-device: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if cliConfig.Scenarios != "" {
		return runScenarios(cliConfig.Scenarios)
	}

	desc, err := loadDescription()
	if err != nil {
		return err
	}

	var console *interactive.Console
	logOut := io.Writer(os.Stderr)
	if cliConfig.Interactive {
		console, err = interactive.New()
		if err != nil {
			return err
		}
		logOut = console.Stderr()
	}
	logger := setupLogging(cliConfig.LogLevel, logOut)

	protocolLogger, closeLog, err := setupProtocolLog(desc.ProtocolLog, logger)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := desc.OpenStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	rt, err := newSimulator(desc, store, logger, protocolLogger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		rt.Run(ctx)
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	if console != nil {
		console.Run(ctx, cancel, rt)
	} else if err := runPipe(ctx, rt, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("pipe failed", "error", err)
	}

	cancel()
	<-done
	return nil
}

// runScenarios runs every scenario in dir on its own simulated device and
// fails if any scenario fails.
func runScenarios(dir string) error {
	logger := setupLogging(cliConfig.LogLevel, os.Stderr)

	protocolLogger, closeLog, err := setupProtocolLog(cliConfig.ProtocolLog, logger)
	if err != nil {
		return err
	}
	defer closeLog()

	scenarios, err := scenario.LoadDirectory(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := scenario.NewRunner(scenario.Config{Logger: logger, ProtocolLogger: protocolLogger})
	result := runner.RunSuite(ctx, dir, scenarios)
	scenario.NewTextReporter(os.Stdout, cliConfig.Verbose).ReportSuite(result)

	if result.FailCount > 0 {
		return fmt.Errorf("%d of %d scenarios failed", result.FailCount, len(result.Results))
	}
	return nil
}

func loadDescription() (*config.Device, error) {
	desc := config.Default()
	if cliConfig.ConfigFile != "" {
		var err error
		desc, err = config.Load(cliConfig.ConfigFile)
		if err != nil {
			return nil, err
		}
	}
	if cliConfig.StoreFile != "" {
		desc.Store.Path = cliConfig.StoreFile
	}
	if cliConfig.ProtocolLog != "" {
		desc.ProtocolLog = cliConfig.ProtocolLog
	}
	return desc, desc.Validate()
}

func setupLogging(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// setupProtocolLog writes captures to path and, at debug level, to the
// operational log as well.
func setupProtocolLog(path string, logger *slog.Logger) (log.Logger, func(), error) {
	var loggers []log.Logger
	closeFn := func() {}

	if path != "" {
		fl, err := log.NewFileLogger(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open protocol log: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = func() { _ = fl.Close() }
		logger.Info("protocol capture enabled", "path", path)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}
	return log.NewMultiLogger(loggers...), closeFn, nil
}
