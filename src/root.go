package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yashkumarverma/cronline/src/utils"
)

type ctxConfigKey struct{}

// newRootCmd builds the command tree. Configuration comes from the
// environment (and .env) and can be overridden per invocation with flags.
func newRootCmd() *cobra.Command {
	var (
		output   string
		failFast bool
	)

	rootCmd := &cobra.Command{
		Use:   "cronline",
		Short: "Parse and format crontab lines",
		Long: `cronline reads crontab lines (five time fields followed by a command),
reports the ones it cannot parse, and prints them in canonical form.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg := *utils.GetConfig(ctx)
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("fail-fast") {
				cfg.FailFast = failFast
			}

			logger := utils.GetChildLogger(utils.InitAppLogger(&cfg), map[string]string{
				"run_id":  cfg.RunID,
				"command": cmd.Name(),
			})
			ctx = utils.LoggerWithCtx(ctx, logger)
			ctx = context.WithValue(ctx, ctxConfigKey{}, &cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&failFast, "fail-fast", false, "stop at the first malformed line")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func configFromCmd(cmd *cobra.Command) *utils.Config {
	if cfg, ok := cmd.Context().Value(ctxConfigKey{}).(*utils.Config); ok {
		return cfg
	}
	return utils.GetConfig(cmd.Context())
}

// openInput resolves the crontab to read: the positional argument when given,
// the configured input otherwise. "-" is standard input.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	path := configFromCmd(cmd).Input
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" || path == utils.StdinPath {
		return io.NopCloser(cmd.InOrStdin()), utils.StdinPath, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to open crontab: %w", err)
	}
	return f, path, nil
}
