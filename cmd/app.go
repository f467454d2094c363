// Package cmd implements the CLI application to run the micro-cap
// trading experiment.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/niksbanna/Gemini-Micro-Cap-Trader/advisor"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/session"
)

// Commands lists every subcommand for registration by the main package.
var Commands = []subcommands.Command{
	&loginCmd{},
	&buyCmd{},
	&sellCmd{},
	&summaryCmd{},
	&historyCmd{},
	&txCmd{},
	&discoverCmd{},
	&analyzeCmd{},
	&predictCmd{},
	&overviewCmd{},
}

// As a CLI application the process is short lived, so global flags and
// lazily built singletons are fine.

var (
	configFile = flag.String("config", "mct.yaml", "Path to the configuration file")
	userFlag   = flag.String("user", "", "User id, overrides the configured one")
	offline    = flag.Bool("offline", false, "Use the deterministic offline advisor instead of Gemini")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

// Config is the application configuration.
type Config struct {
	User    string `yaml:"user"`     // user id, the session store key
	DataDir string `yaml:"data_dir"` // where session records live
	Model   string `yaml:"model"`    // Gemini model name
}

// LoadConfig reads the yaml configuration, falling back to defaults
// when the file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		User:    "trader",
		DataDir: ".mct",
		Model:   advisor.DefaultModel,
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %q: %w", path, err)
	}
	return cfg, nil
}

// app bundles everything a subcommand needs.
type app struct {
	cfg Config
	log *zap.Logger
}

func openApp() (*app, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *userFlag != "" {
		cfg.User = *userFlag
	}

	zcfg := zap.NewProductionConfig()
	if *verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{"stderr"}
	log, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log}, nil
}

// openSession opens the configured user's session from the file store.
func (a *app) openSession() (*session.Session, error) {
	store, err := session.NewFileStore(a.cfg.DataDir, a.log)
	if err != nil {
		return nil, err
	}
	return session.Open(store, a.cfg.User, a.log)
}

// newAdvisor builds the advisory service: Gemini, or the deterministic
// stub when running offline.
func (a *app) newAdvisor(ctx context.Context) (advisor.Service, error) {
	if *offline {
		return &advisor.Stub{}, nil
	}
	return advisor.NewGemini(ctx, a.cfg.Model, a.log)
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	// plain markdown is still readable
	fmt.Print(md)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
