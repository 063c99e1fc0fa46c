package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adampresley/configinator"
	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/config"
)

// Flags are process-level settings; everything else lives in config.toml.
type Flags struct {
	ConfigPath string `flag:"config" env:"GALLERIA_CONFIG" default:"" description:"Path to config.toml (default ~/.config/galleria/config.toml)"`
	LogLevel   string `flag:"loglevel" env:"GALLERIA_LOG_LEVEL" default:"info" description:"The log level to use. Valid values are 'info', 'debug' and 'trace'"`
	LogFile    string `flag:"logfile" env:"GALLERIA_LOG_FILE" default:"~/.local/state/galleria/galleria.log" description:"Where logs are written while the UI owns the terminal"`
}

func loadFlags() Flags {
	flags := Flags{}
	configinator.Behold(&flags)
	return flags
}

// setupLogging points klog at the log file and keeps it off the terminal.
func setupLogging(flags Flags) error {
	path, err := config.ExpandPath(flags.LogFile)
	if err != nil {
		return fmt.Errorf("resolve log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	settings := map[string]string{
		"logtostderr":     "false",
		"alsologtostderr": "false",
		"stderrthreshold": "FATAL",
		"one_output":      "true",
		"log_file":        path,
		"v":               verbosity(flags.LogLevel),
	}
	for name, value := range settings {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("set klog %s: %w", name, err)
		}
	}
	return nil
}

func verbosity(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return "1"
	case "trace":
		return "2"
	default:
		return "0"
	}
}
