package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aims-dev/sectorburst/internal/allocation"
	"github.com/aims-dev/sectorburst/internal/buildinfo"
	"github.com/aims-dev/sectorburst/internal/config"
	"github.com/aims-dev/sectorburst/internal/logger"
	"github.com/aims-dev/sectorburst/internal/palette"
	"github.com/aims-dev/sectorburst/internal/reference"
	"github.com/aims-dev/sectorburst/internal/sunburst"
)

// app is the state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg   *config.Config
	log   zerolog.Logger
	table *reference.Table
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "sectorburst",
		Short:   "Sunburst charts of sector allocations",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(),
		newRenderCommand(a),
		newTreeCommand(a),
		newCheckCommand(a),
		newResolveCommand(a),
		newExportCommand(a),
		newServeCommand(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	load := config.LoadOrDefault
	if cmd.Flags().Changed("config") {
		load = config.Load
	}
	cfg, err := load(a.configPath)
	if err != nil {
		return err
	}
	// Reference paths in the file are relative to the file.
	if p := cfg.Reference.Path; p != "" && !filepath.IsAbs(p) {
		cfg.Reference.Path = filepath.Join(filepath.Dir(a.configPath), p)
	}
	cfg.ApplyEnv()
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.configPath, err)
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// reference loads the configured sector table, or the bundled one.
func (a *app) reference() (*reference.Table, error) {
	if a.table != nil {
		return a.table, nil
	}

	var (
		t   *reference.Table
		err error
	)
	if a.cfg.Reference.Path != "" {
		t, err = reference.Load(a.cfg.Reference.Path)
	} else {
		t, err = reference.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading sector reference: %w", err)
	}

	a.log.Debug().Int("sectors", t.Len()).Str("path", a.cfg.Reference.Path).Msg("Loaded sector reference")
	a.table = t
	return t, nil
}

func (a *app) engine() (*sunburst.Engine, error) {
	table, err := a.reference()
	if err != nil {
		return nil, err
	}
	p, err := palette.New(a.cfg.Scheme())
	if err != nil {
		return nil, err
	}
	return sunburst.NewEngine(table, p, sunburst.Options{
		IncludeUnallocated: a.cfg.Layout.IncludeUnallocated,
		Render:             a.cfg.RenderOptions(),
	}, a.log), nil
}

// run reads an allocation file and pushes it through the pipeline.
func (a *app) run(path string) (*sunburst.Result, error) {
	allocs, err := allocation.ReadFile(path)
	if err != nil {
		return nil, err
	}
	e, err := a.engine()
	if err != nil {
		return nil, err
	}
	return e.Run(allocs), nil
}
