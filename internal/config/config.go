// Package config provides functionality for managing configuration options
// for the client using command-line flags, a JSON config file and
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Duration is a time.Duration that reads "5s"-style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts either a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration must be a string or an integer: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Options holds the configuration values for the client.
type Options struct {
	// BaseURL is the root of the six-cities API.
	BaseURL string `json:"base_url"`

	// Timeout bounds every HTTP request.
	Timeout Duration `json:"timeout"`

	// TokenFile is where the authorization token is persisted.
	TokenFile string `json:"token_file"`

	// TokenDSN, when set, stores the token in PostgreSQL instead of TokenFile.
	TokenDSN string `json:"token_dsn"`

	// CAFile is an optional PEM bundle of extra root CAs.
	CAFile string `json:"ca_file"`

	// LogLevel is the zap level name.
	LogLevel string `json:"log_level"`

	// RPS limits outgoing requests per second; zero disables the limit.
	RPS float64 `json:"rps"`

	// ReconcileInterval is the favorites refetch period; zero disables it.
	ReconcileInterval Duration `json:"reconcile_interval"`

	// Demo serves a built-in sample API in process and ignores BaseURL.
	Demo bool `json:"demo"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// Defaults used when neither a flag, the config file nor the environment
// sets a value.
const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = 5 * time.Second
	DefaultTokenFile = ".six-cities-token.json"
	DefaultLogLevel  = "info"
	DefaultConfig    = "config.json"
)

// Parse parses os.Args and the environment. It stops the process on
// invalid configuration, like the other entry points do.
func Parse() *Options {
	opts, err := ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return opts
}

// ParseArgs builds Options from args. Precedence, lowest first: defaults,
// flags, the JSON config file, environment variables (a .env file in the
// working directory is loaded first when present).
func ParseArgs(args []string) (*Options, error) {
	opts := &Options{}
	var timeout, reconcile time.Duration

	fset := flag.NewFlagSet("six-cities", flag.ContinueOnError)
	fset.StringVar(&opts.BaseURL, "url", DefaultBaseURL, "API base URL")
	fset.DurationVar(&timeout, "timeout", DefaultTimeout, "HTTP request timeout")
	fset.StringVar(&opts.TokenFile, "token-file", DefaultTokenFile, "path to the token file")
	fset.StringVar(&opts.TokenDSN, "d", "", "PostgreSQL DSN for token storage")
	fset.StringVar(&opts.CAFile, "ca", "", "path to CA cert")
	fset.StringVar(&opts.LogLevel, "log-level", DefaultLogLevel, "log level")
	fset.Float64Var(&opts.RPS, "rps", 0, "max requests per second (0 = unlimited)")
	fset.DurationVar(&reconcile, "reconcile", 0, "favorites reconcile interval (0 = off)")
	fset.BoolVar(&opts.Demo, "demo", false, "run against a built-in sample API")
	fset.StringVar(&opts.Config, "config", DefaultConfig, "path to config file")
	fset.StringVar(&opts.Config, "c", DefaultConfig, "path to config file (shorthand)")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	opts.Timeout = Duration(timeout)
	opts.ReconcileInterval = Duration(reconcile)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		opts.Config = configPath
	}

	if opts.Config != "" {
		if _, err := os.Stat(opts.Config); err == nil {
			data, err := os.ReadFile(opts.Config)
			if err != nil {
				return nil, fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, opts); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if err := applyEnv(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func applyEnv(opts *Options) error {
	if v := os.Getenv("API_URL"); v != "" {
		opts.BaseURL = v
	}
	if v := os.Getenv("TOKEN_FILE"); v != "" {
		opts.TokenFile = v
	}
	if v := os.Getenv("TOKEN_DATABASE_DSN"); v != "" {
		opts.TokenDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		opts.LogLevel = v
	}
	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid API_TIMEOUT %q: %w", v, err)
		}
		opts.Timeout = Duration(d)
	}
	if v := os.Getenv("API_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid API_RPS %q: %w", v, err)
		}
		opts.RPS = rps
	}
	return nil
}
