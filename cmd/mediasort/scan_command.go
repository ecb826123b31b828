package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"mediasort/internal/backup"
	"mediasort/internal/catalog"
	"mediasort/internal/organizer"
	"mediasort/internal/scan"
)

type decisionView struct {
	Folder        string  `json:"folder"`
	Decision      string  `json:"decision"`
	Pattern       string  `json:"pattern,omitempty"`
	Date          string  `json:"date,omitempty"`
	MatchFraction float64 `json:"match_fraction"`
	Members       int     `json:"members"`
}

type moveView struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Reason string `json:"reason"`
}

type scanReport struct {
	Root         string         `json:"root"`
	MediaFiles   int            `json:"media_files"`
	SkippedFiles int            `json:"skipped_files"`
	Decisions    []decisionView `json:"decisions"`
	FolderMoves  []moveView     `json:"folder_moves"`
	Moves        []moveView     `json:"moves"`
	Trash        []string       `json:"trash"`
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var applyPlan bool

	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "Preview the sorting plan for a library root",
		Long: "Scan walks the library, analyzes backup-candidate folders by majority vote, " +
			"and prints the full plan of moves without touching any file. " +
			"--apply executes the plan after printing it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, plan, err := buildPlanForRoot(ctx, cmd, args[0])
			if err != nil {
				return err
			}

			if err := journalRun(ctx, cmd, snapshot, plan, 0); err != nil {
				return err
			}

			report := buildScanReport(snapshot, plan)
			if jsonOut {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				renderScanReport(cmd, report)
			}

			if !applyPlan || plan.IsEmpty() {
				return nil
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			result, err := organizer.Apply(cmd.Context(), plan, logger)
			if err != nil {
				return err
			}
			if !jsonOut {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied: %d folders, %d files moved, %d trashed, %d skipped\n",
					result.FoldersMoved, result.FilesMoved, result.Trashed, result.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the plan as JSON")
	cmd.Flags().BoolVar(&applyPlan, "apply", false, "Execute the plan after printing it")
	return cmd
}

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "apply <root>",
		Short: "Execute the sorting plan for a library root",
		Long: "Apply builds the same plan as scan and then executes it: sidecars move to the " +
			"in-library trash folder, preserved backup folders move under their year, and " +
			"loose files move into the dated layout. Nothing is deleted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			snapshot, plan, err := buildPlanForRoot(ctx, cmd, args[0])
			if err != nil {
				return err
			}
			if plan.IsEmpty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do; library is already sorted")
				return nil
			}

			result, err := organizer.Apply(cmd.Context(), plan, logger)
			if err != nil {
				return err
			}
			if err := journalRun(ctx, cmd, snapshot, plan, 0); err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Moved %d folders, %d files; trashed %d sidecars", result.FoldersMoved, result.FilesMoved, result.Trashed)
			if result.Skipped > 0 {
				fmt.Fprintf(out, " (%d skipped)", result.Skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the apply result as JSON")
	return cmd
}

func buildPlanForRoot(ctx *commandContext, cmd *cobra.Command, root string) (*scan.Snapshot, *organizer.Plan, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	opts := scan.OptionsFromConfig(cfg)
	snapshot, err := scan.Walk(cmd.Context(), root, opts, logger)
	if err != nil {
		return nil, nil, err
	}
	return snapshot, organizer.BuildPlan(snapshot, opts), nil
}

// journalRun records one run in the catalog when it is enabled. Journaling
// failures surface; they indicate a broken catalog the user should know about.
func journalRun(ctx *commandContext, cmd *cobra.Command, snapshot *scan.Snapshot, plan *organizer.Plan, duplicateGroups int) error {
	store, err := ctx.openCatalog()
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	defer store.Close()

	runID, err := store.BeginRun(cmd.Context(), snapshot.Root)
	if err != nil {
		return err
	}
	return store.FinishRun(cmd.Context(), runID, catalog.RunCounters{
		MediaFiles:      len(snapshot.Records),
		DuplicateGroups: duplicateGroups,
		PlannedMoves:    plan.Operations(),
	})
}

func buildScanReport(snapshot *scan.Snapshot, plan *organizer.Plan) scanReport {
	report := scanReport{
		Root:         snapshot.Root,
		MediaFiles:   len(snapshot.Records),
		SkippedFiles: snapshot.SkippedFiles,
		Trash:        plan.Trash,
	}

	names := make([]string, 0, len(plan.Decisions))
	for name := range plan.Decisions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		decision := plan.Decisions[name]
		view := decisionView{
			Folder:        name,
			Decision:      decision.Kind.String(),
			MatchFraction: decision.MatchFraction,
			Members:       len(snapshot.Backups[name]),
		}
		if decision.Kind == backup.DecisionPreserve {
			view.Pattern = decision.Date.Pattern
			view.Date = decision.Date.String()
		}
		report.Decisions = append(report.Decisions, view)
	}

	for _, folder := range plan.FolderMoves {
		report.FolderMoves = append(report.FolderMoves, moveView{Source: folder.Source, Dest: folder.Dest, Reason: "preserve"})
	}
	for _, move := range plan.Moves {
		report.Moves = append(report.Moves, moveView{Source: move.Source, Dest: move.Dest, Reason: string(move.Reason)})
	}
	return report
}

func renderScanReport(cmd *cobra.Command, report scanReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanned %s: %d media files (%d skipped)\n", report.Root, report.MediaFiles, report.SkippedFiles)

	if len(report.Decisions) > 0 {
		rows := make([][]string, 0, len(report.Decisions))
		for _, d := range report.Decisions {
			rows = append(rows, []string{
				d.Folder,
				d.Decision,
				d.Date,
				formatPercent(d.MatchFraction),
				fmt.Sprintf("%d", d.Members),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Backup Folder", "Decision", "Date", "Match", "Members"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		))
	}

	total := len(report.FolderMoves) + len(report.Moves) + len(report.Trash)
	if total == 0 {
		fmt.Fprintln(out, "Nothing to do; library is already sorted")
		return
	}

	rows := make([][]string, 0, len(report.FolderMoves)+len(report.Moves))
	for _, move := range report.FolderMoves {
		rows = append(rows, []string{"folder", move.Reason, move.Source, move.Dest})
	}
	for _, move := range report.Moves {
		rows = append(rows, []string{"file", move.Reason, move.Source, move.Dest})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Kind", "Reason", "Source", "Dest"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		))
	}
	if len(report.Trash) > 0 {
		fmt.Fprintf(out, "%d sidecar files will move to trash\n", len(report.Trash))
	}
	fmt.Fprintf(out, "Planned operations: %d (run `mediasort apply` to execute)\n", total)
}
