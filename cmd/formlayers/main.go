package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formlayers/internal/config"
)

// app holds state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	format     string
	output     string

	cfg    config.Config
	logger *zap.Logger
	input  inputFlags
	path   []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "formlayers",
		Short: "Split form schemas into nested tab layers",
		Long: `formlayers reads a form schema together with its uiSchema and tab data,
routes every field to a tab through its "ui:tabID" hint and prints the
resulting tab tree, the sub-forms along an active path or rendered tab bars.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/formlayers/formlayers.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.format, "format", "", "output format: json or yaml")
	flags.StringVarP(&a.output, "output", "o", "", "output file (stdout if empty)")
	flags.StringSliceVar(&a.path, "path", nil, "comma separated tab ids from the root, e.g. contact,address")
	a.input.register(flags)

	root.AddCommand(
		newSplitCmd(a),
		newTabsCmd(a),
		newMaterializeCmd(a),
		newRenderCmd(a),
		newBrowseCmd(a),
		newLintCmd(a),
		newExtractCmd(a),
		newOperationsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = a.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := buildLogger(cfg.Log.Level, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("format", cfg.Format),
		zap.String("renderer", cfg.Renderer),
		zap.Bool("allow_http", cfg.Loader.AllowHTTP))
	return nil
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else if parsed, err := zapcore.ParseLevel(strings.TrimSpace(level)); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return zcfg.Build()
}

// write sends payload to --output or the command's stdout.
func (a *app) write(cmd *cobra.Command, payload []byte) error {
	if a.output == "" {
		_, err := cmd.OutOrStdout().Write(payload)
		return err
	}
	if err := os.WriteFile(a.output, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("output written", zap.String("path", a.output), zap.Int("bytes", len(payload)))
	return nil
}
