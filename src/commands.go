package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yashkumarverma/cronline/src/crontab"
	"github.com/yashkumarverma/cronline/src/utils"
	"go.uber.org/multierr"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [crontab]",
		Short: "Print the parsed entries of a crontab",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
}

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [crontab]",
		Short: "Print a crontab with every entry in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFmt,
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [crontab]",
		Short: "Report malformed crontab lines",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cronline %s\n", Version)
		},
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := configFromCmd(cmd)
	format, err := crontab.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	src, path, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx := cmd.Context()
	entries, readErr := crontab.NewReader(cfg.FailFast).Read(ctx, src)
	if err := crontab.Encode(cmd.OutOrStdout(), format, entries); err != nil {
		return err
	}
	if readErr != nil {
		utils.LoggerFromCtx(ctx).Errorw("Crontab has malformed lines", "path", path, "error", readErr)
		return reportLineErrors(cmd, readErr)
	}
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg := configFromCmd(cmd)
	src, path, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx := cmd.Context()
	if err := crontab.NewReader(cfg.FailFast).Rewrite(ctx, src, cmd.OutOrStdout()); err != nil {
		utils.LoggerFromCtx(ctx).Errorw("Crontab has malformed lines", "path", path, "error", err)
		return reportLineErrors(cmd, err)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := configFromCmd(cmd)
	src, path, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx := cmd.Context()
	entries, err := crontab.NewReader(cfg.FailFast).Read(ctx, src)
	if err != nil {
		return reportLineErrors(cmd, err)
	}

	utils.LoggerFromCtx(ctx).Infow("Crontab is valid", "path", path, "entries", len(entries))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries ok\n", path, len(entries))
	return nil
}

// reportLineErrors prints one line per failure to stderr and returns a summary
func reportLineErrors(cmd *cobra.Command, err error) error {
	errs := multierr.Errors(err)
	for _, e := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), e)
	}
	return fmt.Errorf("crontab has %d error(s)", len(errs))
}
