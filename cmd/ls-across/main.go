// Command ls-across queries the ACROSS astronomical scheduling API from the
// terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-across/internal/across"
	"github.com/litescript/ls-across/internal/config"
	"github.com/litescript/ls-across/internal/logging"
	"github.com/litescript/ls-across/internal/normalize"
	"github.com/litescript/ls-across/internal/schema"
	"github.com/litescript/ls-across/internal/version"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatTUI  = "tui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if merr := a.writeMetrics(); merr != nil {
		fmt.Fprintf(stderr, "Error: write metrics: %v\n", merr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// app holds what every command shares once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// persistent flags
	configPath string
	baseURL    string
	mission    string
	logLevel   string
	format     string
	username   string
	apiKey     string
	zone       string
	metrics    bool

	cfg      config.Config
	log      *logging.Logger
	client   *across.Client
	times    normalize.TimeParser
	registry *prometheus.Registry
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ls-across",
		Short:         "Query the ACROSS astronomical scheduling API",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&a.baseURL, "base-url", "", "ACROSS API base URL")
	pf.StringVar(&a.mission, "mission", "", "mission to query (ACROSS, Swift, NICER, NuSTAR, BurstCube)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.format, "format", formatText, "output format (text, json, tui)")
	pf.StringVar(&a.username, "username", "", "ACROSS username")
	pf.StringVar(&a.apiKey, "api-key", "", "ACROSS API key")
	pf.StringVar(&a.zone, "zone", "", "time zone for timestamps given without one")
	pf.BoolVar(&a.metrics, "metrics", false, "print request metrics to stderr on exit")

	root.AddCommand(
		a.helloCmd(),
		a.resolveCmd(),
		a.visibilityCmd(),
		a.saaCmd(),
		a.ephemCmd(),
		a.fovCmd(),
		a.planCmd(across.APIPlan),
		a.planCmd(across.APIObservations),
		a.tooCmd(),
		a.jobsCmd(),
		a.missionsCmd(),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the client.
func (a *app) setup(cmd *cobra.Command) error {
	switch a.format {
	case formatText, formatJSON, formatTUI:
	default:
		return fmt.Errorf("unknown format %q", a.format)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	for name, field := range map[string]*string{
		"base-url":  &cfg.BaseURL,
		"mission":   &cfg.Mission,
		"log-level": &cfg.LogLevel,
		"username":  &cfg.Username,
		"api-key":   &cfg.APIKey,
		"zone":      &cfg.LocalZone,
	} {
		if flags.Changed(name) {
			*field = flags.Lookup(name).Value.String()
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config:\n%w", err)
	}
	a.cfg = cfg

	a.log = logging.New(logging.ParseLevel(cfg.LogLevel))
	a.log.SetOutput(a.stderr)
	a.log.SetJSON(a.format == formatJSON)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	a.times = normalize.TimeParser{Location: loc, Logger: a.log}

	opts := append(cfg.ClientOptions(), across.WithLogger(a.log))
	if a.metrics {
		a.registry = prometheus.NewRegistry()
		opts = append(opts, across.WithRegisterer(a.registry))
	}
	a.client, err = across.New(opts...)
	if err != nil {
		return err
	}
	a.log.Debug("using %s (timeout %s)", cfg.BaseURL, time.Duration(cfg.Timeout))
	return nil
}

// missionFor picks the mission for api. An explicit --mission always wins so
// that unsupported combinations are reported; otherwise the configured
// mission is used when it offers api, then the first mission that does.
func (a *app) missionFor(cmd *cobra.Command, api across.API, method string) (across.Mission, error) {
	m, err := across.ParseMission(a.cfg.Mission)
	if err != nil {
		return "", err
	}
	if cmd.Flags().Changed("mission") || m.Supports(api, method) {
		return m, nil
	}
	for _, m := range across.Missions {
		if m.Supports(api, method) {
			return m, nil
		}
	}
	return m, nil
}

func (a *app) credentials() schema.Credentials {
	return schema.Credentials{Username: a.cfg.Username, APIKey: a.cfg.APIKey}
}

// decode fills out from in, a flag or request-file mapping.
func (a *app) decode(in map[string]any, out any) error {
	if err := typedInput(in); err != nil {
		return err
	}
	return schema.Decoder{Times: a.times}.Decode(in, out)
}
