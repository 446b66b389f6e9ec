package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/atomicstack/overflow-menu/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWidth      = "OVERFLOW_MENU_WIDTH"
	envHeight     = "OVERFLOW_MENU_HEIGHT"
	envMenuFile   = "OVERFLOW_MENU_FILE"
	envShowFooter = "OVERFLOW_MENU_FOOTER"
	envTrace      = "OVERFLOW_MENU_TRACE"
	envDev        = "OVERFLOW_MENU_DEV"
	envLogFile    = "OVERFLOW_MENU_LOG_FILE"
	envOpen       = "OVERFLOW_MENU_OPEN"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags win over
// environment variables, which win over built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("overflow-menu", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	menuFile := fs.StringP("menu-file", "m", envOrDefault(env, envMenuFile, ""), "YAML file describing the menus (built-in demo menus when empty)")
	open := fs.StringSlice("open", envOrList(env, envOpen), "menu ids to open at startup")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key help row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	dev := fs.Bool("dev", envOrBool(env, envDev, false), "log developer warnings such as invalid menu directions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	openIDs := cleanList(*open)

	cfg := Config{
		App: app.Config{
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			MenuFile:   *menuFile,
			Open:       openIDs,
			Dev:        *dev,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"menuFile": *menuFile,
			"open":     strings.Join(openIDs, ","),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"dev":      strconv.FormatBool(*dev),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), fs.Args()...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrList(env map[string]string, key string) []string {
	v, ok := env[key]
	if !ok {
		return nil
	}
	return cleanList(strings.Split(v, ","))
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the configured menu file can be read.
func Validate(cfg Config) error {
	if cfg.App.MenuFile == "" {
		return nil
	}
	info, err := os.Stat(cfg.App.MenuFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("menu file %s does not exist", cfg.App.MenuFile)
		}
		return fmt.Errorf("menu file %s: %w", cfg.App.MenuFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("menu file %s is a directory", cfg.App.MenuFile)
	}
	return nil
}
