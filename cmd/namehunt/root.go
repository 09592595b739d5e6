package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/namehunt/namehunt/internal/registrar/namecheap"
)

const defaultTimeout = 15 * time.Second

// credentials holds every secret the tool reads from the environment.
// A .env file in the working directory is loaded first when present.
type credentials struct {
	NamecheapAPIUser  string `env:"NAMECHEAP_API_USER"`
	NamecheapAPIKey   string `env:"NAMECHEAP_API_KEY"`
	NamecheapUsername string `env:"NAMECHEAP_USERNAME"`
	NamecheapClientIP string `env:"NAMECHEAP_CLIENT_IP"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GoogleAPIKey      string `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
}

func loadCredentials() (credentials, error) {
	_ = godotenv.Load()
	var creds credentials
	if err := env.Parse(&creds); err != nil {
		return creds, fmt.Errorf("failed to parse environment: %w", err)
	}
	return creds, nil
}

type config struct {
	Version string

	// Global flags.
	VersionFlag bool
	Format      string
	JSON        bool
	NDJSON      bool
	Plain       bool
	Timeout     time.Duration
	Quiet       bool
	Verbose     bool
	Provider    string
	LLMModel    string
	Sandbox     bool

	// Derived at startup.
	outFormat outputFormat
	logger    *log.Logger
	creds     credentials
	registrar *namecheap.Client
}

func (cfg *config) hasNamecheapCreds() bool {
	return cfg.creds.NamecheapAPIUser != "" &&
		cfg.creds.NamecheapAPIKey != "" &&
		cfg.creds.NamecheapClientIP != ""
}

// requireRegistrar turns absent registrar credentials into a usage error at
// the subcommand that actually needs them, so --help and --version keep
// working in an empty environment.
func (cfg *config) requireRegistrar(cmd *cobra.Command) error {
	if cfg.registrar != nil {
		return nil
	}
	return usageErr(cmd, errors.New("missing Namecheap credentials (set NAMECHEAP_API_USER, NAMECHEAP_API_KEY and NAMECHEAP_CLIENT_IP)"))
}

func newRootCmd(version string) *cobra.Command {
	cfg := &config{Version: version}

	root := &cobra.Command{
		Use:           "namehunt",
		Short:         "Find an affordable, available domain name for a topic",
		SilenceErrors: true,
		SilenceUsage:  true,
		// Stray args reach RunE below instead of cobra's own unknown-command
		// error, keeping the exit code at 2.
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.VersionFlag {
				fmt.Fprintf(os.Stdout, "namehunt %s (%s/%s)\n", cfg.Version, runtime.GOOS, runtime.GOARCH)
				return errExit0
			}

			format, err := resolveFormat(cfg, os.Stdout)
			if err != nil {
				return usageErr(cmd, err)
			}
			cfg.outFormat = format

			if cfg.Timeout <= 0 {
				cfg.Timeout = defaultTimeout
			}

			cfg.logger = log.New(os.Stderr, "", 0)
			if cfg.Quiet {
				cfg.logger = log.New(io.Discard, "", 0)
			}

			creds, err := loadCredentials()
			if err != nil {
				return err
			}
			cfg.creds = creds

			if cfg.hasNamecheapCreds() {
				opts := namecheap.Options{
					APIUser:  creds.NamecheapAPIUser,
					APIKey:   creds.NamecheapAPIKey,
					Username: creds.NamecheapUsername,
					ClientIP: creds.NamecheapClientIP,
					Timeout:  cfg.Timeout,
				}
				if cfg.Sandbox {
					opts.BaseURL = namecheap.SandboxBaseURL
				}
				if cfg.Verbose && !cfg.Quiet {
					opts.Logger = cfg.logger
				}
				client, err := namecheap.NewClient(opts)
				if err != nil {
					return fmt.Errorf("failed to set up Namecheap client: %w", err)
				}
				cfg.registrar = client
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return &cliError{Code: 2, ShowUsage: true, Cmd: cmd}
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	pf := root.PersistentFlags()
	pf.BoolVar(&cfg.VersionFlag, "version", false, "Print version and exit")
	pf.StringVar(&cfg.Format, "format", "auto", "Output format: auto|table|json|ndjson|plain")
	pf.BoolVar(&cfg.JSON, "json", false, "Alias for --format json (single JSON array)")
	pf.BoolVar(&cfg.NDJSON, "ndjson", false, "Alias for --format ndjson (one JSON object per line)")
	pf.BoolVar(&cfg.NDJSON, "jsonl", false, "Alias for --format ndjson (one JSON object per line)")
	pf.BoolVar(&cfg.Plain, "plain", false, "Alias for --format plain (stable tab-separated)")
	pf.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP timeout per registrar API call")
	pf.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress progress output on stderr")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log registrar API diagnostics")
	pf.StringVar(&cfg.Provider, "provider", "gemini", "Text generation provider: gemini or openai")
	pf.StringVar(&cfg.LLMModel, "llm-model", "", "Model name for the generation provider (default per provider)")
	pf.BoolVar(&cfg.Sandbox, "sandbox", false, "Use the Namecheap sandbox API endpoint")

	root.SetFlagErrorFunc(usageErr)

	root.AddCommand(newSearchCmd(cfg))
	root.AddCommand(newCheckCmd(cfg))

	return root
}
