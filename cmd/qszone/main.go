package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/qszone/internal/config"
	"github.com/vango-dev/qszone/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:   "qszone",
		Short: "Merge query-string fragments into the current location",
		Long: `qszone computes hrefs of the form #<path>?<query>#<hash> by merging a
query-string fragment into a location's existing search parameters.

Zones intercept the merge: a zone can null keys so they drop out of the
href, or reset them to a default before the fragment is applied.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(
		hrefCmd(),
		serveCmd(),
		zonesCmd(),
		initCmd(),
		versionCmd(),
	)
	return rootCmd
}

// newLogger builds the process logger from the --log-* flags.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.New("E061").
			WithDetail("Unknown log level " + level + ".").
			Wrap(err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, errors.New("E061").
			WithDetail("Unknown log format " + format + ".")
	}
}

// loadConfig resolves --config. An empty location yields the defaults, an
// s3:// URI is fetched with the default AWS credential chain, anything else
// is a local file.
func loadConfig(ctx context.Context, location string) (*config.Config, error) {
	switch {
	case location == "":
		return config.New(), nil
	case config.IsS3URI(location):
		bucket, key, err := config.ParseS3URI(location)
		if err != nil {
			return nil, err
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.New("E006").Wrap(err)
		}
		return config.LoadFromS3(ctx, s3.NewFromConfig(awsCfg), bucket, key)
	default:
		return config.LoadFile(location)
	}
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
