// Package cli implements the valuate command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"valuation_service/pkg/contextx"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type options struct {
	server  string
	format  string
	timeout time.Duration
	verbose bool
}

type app struct {
	opts   options
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
}

// NewRootCommand builds the valuate command tree writing results to stdout and
// logs to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		log:    zap.NewNop(),
	}

	root := &cobra.Command{
		Use:   "valuate",
		Short: "Estimate residential property prices",
		Long: `valuate prices properties with the rule-based valuation model.

Without --server it prices locally; with --server it calls the valuation API.

Examples:
  valuate estimate --file request.json
  valuate batch --file requests.json --format json
  valuate tables --server http://localhost:8083`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.opts.server, "server", "", "valuation API base URL (local pricing when empty)")
	root.PersistentFlags().StringVarP(&a.opts.format, "format", "f", formatText, "output format (text, json)")
	root.PersistentFlags().DurationVar(&a.opts.timeout, "timeout", 30*time.Second, "overall command timeout")
	root.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newEstimateCommand(a),
		newBatchCommand(a),
		newTablesCommand(a),
	)

	return root
}

func (a *app) init() error {
	if a.opts.format != formatText && a.opts.format != formatJSON {
		return fmt.Errorf("unknown format %q", a.opts.format)
	}

	level := zapcore.WarnLevel
	if a.opts.verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	a.log = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(a.stderr),
		level,
	))

	return nil
}

// context hands the service and client packages a slog logger that writes
// through the zap core, so all CLI logs share one encoder and level.
func (a *app) context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := contextx.WithLogger(parent, slog.New(zapslog.NewHandler(a.log.Core())))

	return context.WithTimeout(ctx, a.opts.timeout)
}

func (a *app) backend() backend {
	if a.opts.server == "" {
		a.log.Debug("pricing locally")
		return newLocalBackend()
	}

	a.log.Debug("using valuation api", zap.String("server", a.opts.server))

	return newRemoteBackend(a.opts.server)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("io.ReadAll: %w", err)
		}

		return b, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	return b, nil
}
