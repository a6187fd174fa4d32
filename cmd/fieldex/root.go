package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leofalp/fieldex/core/extract"
	"github.com/leofalp/fieldex/core/schema"
	"github.com/leofalp/fieldex/internal/config"
	"github.com/leofalp/fieldex/providers/generator/httpgen"
	"github.com/leofalp/fieldex/providers/observability/slogobs"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	envFile    string
	verbose    bool
}

// Set by the root PersistentPreRunE for every subcommand.
var (
	cfg      *config.Config
	observer *slogobs.Observer
)

var rootCmd = &cobra.Command{
	Use:   "fieldex",
	Short: "Tolerant structured-data extraction from free text",
	Long: "fieldex asks a text generator for one field at a time, repairs and\n" +
		"classifies the fragments it returns and merges them into a typed record.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: setup,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "fieldex.yaml", "Path to the YAML config file (skipped when missing)")
	f.StringVar(&rootFlags.envFile, "env-file", ".env", "Path to a dotenv file (skipped when missing)")
	f.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log at DEBUG level")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(schemasCmd)
	rootCmd.Version = version
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(rootFlags.configPath, rootFlags.envFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level := slogobs.ParseLogLevel(cfg.Log.Level)
	if rootFlags.verbose && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	observer = slogobs.New(
		slogobs.WithLevel(level),
		slogobs.WithFormat(slogobs.ParseFormat(cfg.Log.Format)),
		slogobs.WithOutput(cmd.ErrOrStderr()),
	)
	return nil
}

func loadEntry(name string) (*schema.Entry, error) {
	reg, err := schema.LoadRegistry(cfg.Catalogue)
	if err != nil {
		return nil, err
	}
	entry, err := reg.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w (known: %v)", err, reg.Names())
	}
	return entry, nil
}

func newExtractor() *extract.Extractor {
	gen := httpgen.New().
		WithBaseURL(cfg.Generator.URL).
		WithAPIKey(cfg.Generator.APIKey).
		WithTimeout(cfg.Generator.Timeout)

	return extract.NewExtractor(gen,
		extract.WithMaxAttempts(cfg.Extraction.MaxAttempts),
		extract.WithRepair(cfg.Extraction.Repair),
		extract.WithObserver(observer),
	)
}
