package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wilbur182/flagreg/internal/config"
	"github.com/wilbur182/flagreg/internal/version"
)

// Version is set at build time via ldflags
var Version = ""

const usage = `Usage: flagctl [options] <command> [args]

Inspect and override runtime feature flags.

Commands:
  dump               print the registry report
  list               print flags with descriptions
  get KEY            print a flag's current value
  set KEY true|false persist an override (debug flags need a debug runtime)
  unset KEY          remove an override
  watch              reload flags whenever the store changes
  config init        write a default config file
  config path        print the config file path

Options:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("flagctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  = fs.String("config", "", "path to config file")
		debugFlag   = fs.Bool("debug", false, "enable debug logging")
		metricsAddr = fs.String("metrics-addr", "", "serve prometheus metrics on this address (watch only)")
		versionFlag = fs.Bool("version", false, "print version and exit")
	)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "flagctl version %s\n", version.Effective(Version))
		return 0
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	if fs.Arg(0) == "config" {
		if err := configCmd(*configPath, fs.Args()[1:], stdout); err != nil {
			if errors.Is(err, errUsage) {
				fs.Usage()
				return 2
			}
			fmt.Fprintf(stderr, "flagctl config: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	a, err := newApp(cfg, logger, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize flags: %v\n", err)
		return 1
	}
	defer a.close()

	if err := a.dispatch(fs.Arg(0), fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
			return 2
		}
		fmt.Fprintf(stderr, "flagctl %s: %v\n", fs.Arg(0), err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// configCmd handles "config init" and "config path". init never overwrites
// an existing file.
func configCmd(path string, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	if path == "" {
		path = config.ConfigPath()
	}

	switch args[0] {
	case "path":
		_, err := fmt.Fprintln(stdout, path)
		return err
	case "init":
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := config.SaveTo(path, config.Default()); err != nil {
			return err
		}
		_, err := fmt.Fprintf(stdout, "wrote %s\n", path)
		return err
	default:
		return errUsage
	}
}
