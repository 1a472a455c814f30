// Package app implements the alert script command invoked by Zabbix.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/config"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/env"
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/handler"
)

const Name string = "zabbix-autoscaler-webhook"

type options struct {
	paramsFile string
	logLevel   string
	timeout    time.Duration
}

func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   Name + " [params-json]",
		Short: "Forward a Zabbix alert to an autoscaler inputs webhook",
		Long: "Reads the Zabbix webhook parameters as a JSON object from the first argument,\n" +
			"--params-file, or stdin, posts them to the autoscaler and prints its response.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.paramsFile, "params-file", "", "Path to a file holding the parameter JSON object.")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error). Overrides LOG_LEVEL.")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.DefaultHTTPTimeout, "Webhook request timeout. Overrides HTTP_TIMEOUT.")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		level, err := env.ParseLogLevel(opts.logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
		}
		cfg.LogLevel = level
	}
	if cmd.Flags().Changed("timeout") {
		if opts.timeout < 0 {
			return fmt.Errorf("negative timeout %s not allowed", opts.timeout)
		}
		cfg.HTTPTimeout = opts.timeout
	}

	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))

	raw, err := readParams(cmd, opts, args)
	if err != nil {
		return err
	}

	h, err := handler.NewFromConfig(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	resp, err := h.Handle(cmd.Context(), raw)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), resp)
	return err
}

func readParams(cmd *cobra.Command, opts *options, args []string) ([]byte, error) {
	switch {
	case len(args) == 1:
		if opts.paramsFile != "" {
			return nil, fmt.Errorf("parameters given both as argument and --params-file")
		}
		return []byte(args[0]), nil
	case opts.paramsFile != "":
		data, err := os.ReadFile(opts.paramsFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read params file: %w", err)
		}
		return data, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("cannot read params from stdin: %w", err)
		}
		return data, nil
	}
}
