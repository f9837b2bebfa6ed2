package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/austinkregel/g935-battery/internal/app"
	"github.com/austinkregel/g935-battery/pkg/config"
	"github.com/austinkregel/g935-battery/pkg/logging"
	"github.com/austinkregel/g935-battery/pkg/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const (
	cmdVoltage    = "get-battery-voltage"
	cmdPercentage = "get-battery-percentage"
	cmdStatus     = "get-i3-status"
	cmdWatch      = "watch-i3-status"
)

type reporter interface {
	Watch(ctx context.Context, w io.Writer) error
	Status(ctx context.Context, w io.Writer) error
	Query(ctx context.Context, field app.Field, w io.Writer) error
	Close() error
}

// newApp is an indirection to make cmd/g935-battery testable.
var newApp = func(cfg *config.Config, log *logging.Logger) (reporter, error) {
	return app.New(cfg, log)
}

// printVersion prints the version information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "g935-battery %s built=%s\n", version.Short(), version.BuildDate)
}

// handleVersionFlag processes the version flag and returns true if the program should exit.
func handleVersionFlag(showVersion bool, w io.Writer) bool {
	if showVersion {
		printVersion(w)
		return true
	}
	return false
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		w := fs.Output()
		fmt.Fprintf(w, "Usage: %s [flags] <command>\n\nCommands:\n", fs.Name())
		fmt.Fprintf(w, "  %-24s print the battery voltage in mV and charging state\n", cmdVoltage)
		fmt.Fprintf(w, "  %-24s print the estimated battery percentage and charging state\n", cmdPercentage)
		fmt.Fprintf(w, "  %-24s print one i3status-rust record\n", cmdStatus)
		fmt.Fprintf(w, "  %-24s print a record every interval until interrupted\n", cmdWatch)
		fmt.Fprintln(w, "\nFlags:")
		fs.PrintDefaults()
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("g935-battery", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs)

	var cfgPath, mode string
	var switchProfile, showVersion bool
	fs.StringVar(&cfgPath, "config", config.DefaultPath(), "Path to config.yaml")
	fs.StringVar(&mode, "mode", "", "Acquisition mode: auto, hid or sysfs (overrides config)")
	fs.BoolVar(&switchProfile, "switch-profile", false, "Switch the audio card profile on connect and disconnect")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if handleVersionFlag(showVersion, stdout) {
		return exitOK
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	command := fs.Arg(0)
	switch command {
	case cmdVoltage, cmdPercentage, cmdStatus, cmdWatch:
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitError
	}
	if mode != "" {
		cfg.Mode = strings.ToLower(strings.TrimSpace(mode))
	}
	if switchProfile {
		cfg.ProfileSwitch.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return exitError
	}

	log, err := logging.New(logging.Options{
		File:   cfg.Logging.FilePath,
		Level:  cfg.Logging.Level,
		Output: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to init logger: %v\n", err)
		return exitError
	}
	defer log.Sync() // best effort

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		fmt.Fprintln(stderr, app.Describe(err))
		return exitError
	}
	defer a.Close()

	switch command {
	case cmdVoltage, cmdPercentage:
		field := app.FieldVoltage
		if command == cmdPercentage {
			field = app.FieldPercentage
		}
		if err := a.Query(ctx, field, stdout); err != nil {
			fmt.Fprintln(stderr, app.Describe(err))
			return exitError
		}
	case cmdStatus:
		if err := a.Status(ctx, stdout); err != nil {
			fmt.Fprintln(stderr, app.Describe(err))
			return exitError
		}
	case cmdWatch:
		if err := a.Watch(ctx, stdout); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("reporter terminated with error", "error", err)
			return exitError
		}
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
