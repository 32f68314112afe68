package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cull/internal/action"
	"cull/internal/config"
	"cull/internal/filter"
	"cull/internal/logging"
	"cull/internal/triage"
)

type actionFlags struct {
	src           string
	dest          string
	label         string
	threshold     int
	comparison    string
	exclude       []string
	inverse       bool
	flipExclusion bool
	includeVideos bool
	matchRaws     bool
	dryRun        bool
	force         bool
	verbose       bool
}

func newCopyCommand(ctx *commandContext) *cobra.Command {
	flags := &actionFlags{}
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy selected files to a destination directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, ctx, action.Copy, flags)
		},
	}
	addSelectionFlags(cmd, flags)
	addDestinationFlags(cmd, flags)
	return cmd
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	flags := &actionFlags{}
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move selected files to a destination directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, ctx, action.Move, flags)
		},
	}
	addSelectionFlags(cmd, flags)
	addDestinationFlags(cmd, flags)
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	flags := &actionFlags{}
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete selected files from the source directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, ctx, action.Delete, flags)
		},
	}
	addSelectionFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.force, "force", false, "Actually delete files; without it the run only reports what would be removed")
	return cmd
}

func newPrintCommand(ctx *commandContext) *cobra.Command {
	flags := &actionFlags{}
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the paths of selected files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, ctx, action.Print, flags)
		},
	}
	addSelectionFlags(cmd, flags)
	return cmd
}

func addSelectionFlags(cmd *cobra.Command, flags *actionFlags) {
	cmd.Flags().StringVar(&flags.src, "src", "", "Source directory to enumerate (required)")
	_ = cmd.MarkFlagRequired("src")
	cmd.Flags().IntVar(&flags.threshold, "threshold", 0, "Rating threshold (default from config)")
	cmd.Flags().StringVar(&flags.comparison, "comparison", "", "Rating comparison: more-equal, less-equal, or equal (default from config)")
	cmd.Flags().BoolVar(&flags.inverse, "inverse", false, "Select files that fail the rating test instead")
	cmd.Flags().BoolVar(&flags.includeVideos, "include-videos", false, "Consider video files for selection")
	cmd.Flags().BoolVar(&flags.matchRaws, "match-raws", false, "Bring raw companions of selected files along")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "Extension or filename to exclude (repeatable)")
	cmd.Flags().BoolVar(&flags.flipExclusion, "flip-exclusion", false, "Keep only entries matching --exclude")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report what would happen without touching files")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Render the per-file outcome table")
}

func addDestinationFlags(cmd *cobra.Command, flags *actionFlags) {
	cmd.Flags().StringVar(&flags.dest, "dest", "", "Destination directory (required, created when missing)")
	_ = cmd.MarkFlagRequired("dest")
	cmd.Flags().StringVar(&flags.label, "label", "", "Label applied to each file after a successful copy or move")
}

func runAction(cmd *cobra.Command, ctx *commandContext, kind action.Kind, flags *actionFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	src, err := config.ExpandPath(flags.src)
	if err != nil {
		return err
	}
	dest := ""
	if kind.NeedsDest() {
		if dest, err = config.ExpandPath(flags.dest); err != nil {
			return err
		}
	}

	filterCfg, matchRaws, err := resolveFilter(cmd, cfg, flags)
	if err != nil {
		return err
	}

	dryRun := flags.dryRun
	// The confirmation gate for delete: without --force the run only
	// evaluates the selection.
	if kind == action.Delete && !flags.force {
		dryRun = true
	}

	logger, err := buildLogger(cfg, flags.verbose)
	if err != nil {
		return err
	}

	engine := triage.NewEngine(cfg, logger)
	rep, err := engine.Run(cmd.Context(), triage.Request{
		Action:    kind,
		Source:    src,
		Dest:      dest,
		Label:     flags.label,
		DryRun:    dryRun,
		MatchRaws: matchRaws,
		Filter:    filterCfg,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if kind == action.Print {
		for _, row := range rep.Rows {
			fmt.Fprintln(out, row.Outcome.Candidate.Path)
		}
	}
	if flags.verbose {
		renderReport(out, rep)
	}
	if kind == action.Delete && !flags.force && !flags.dryRun {
		fmt.Fprintf(out, "%d file(s) would be deleted. Pass --force to delete them.\n", rep.Counts.Selected)
	}
	return nil
}

// resolveFilter merges command-line flags over config defaults. Flags the
// user did not pass fall back to the configured values.
func resolveFilter(cmd *cobra.Command, cfg *config.Config, flags *actionFlags) (filter.Config, bool, error) {
	threshold := cfg.Selection.Threshold
	if cmd.Flags().Changed("threshold") {
		threshold = flags.threshold
	}
	comparisonValue := cfg.Selection.Comparison
	if cmd.Flags().Changed("comparison") {
		comparisonValue = flags.comparison
	}
	comparison, err := filter.ParseComparison(comparisonValue)
	if err != nil {
		return filter.Config{}, false, err
	}
	includeVideos := cfg.Selection.IncludeVideos
	if cmd.Flags().Changed("include-videos") {
		includeVideos = flags.includeVideos
	}
	matchRaws := cfg.Selection.MatchRaws
	if cmd.Flags().Changed("match-raws") {
		matchRaws = flags.matchRaws
	}

	return filter.Config{
		Threshold:     threshold,
		Comparison:    comparison,
		Inverse:       flags.inverse,
		IncludeVideos: includeVideos,
		Exclude:       flags.exclude,
		FlipExclusion: flags.flipExclusion,
	}, matchRaws, nil
}

func buildLogger(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{Level: level, Format: cfg.Logging.Format})
}
