package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mediasort/internal/catalog"
	"mediasort/internal/dupes"
	"mediasort/internal/scan"
)

type groupView struct {
	Size     int64    `json:"size"`
	Digest   string   `json:"digest"`
	Keeper   string   `json:"keeper"`
	Discards []string `json:"discards"`
}

type dupesReport struct {
	Root           string      `json:"root"`
	MediaFiles     int         `json:"media_files"`
	Groups         []groupView `json:"groups"`
	RedundantBytes int64       `json:"redundant_bytes"`
}

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var workers int

	cmd := &cobra.Command{
		Use:   "dupes <root>",
		Short: "Find duplicate files and suggest which copy to keep",
		Long: "Dupes groups files by exact size and content hash, then ranks each group " +
			"deterministically: originals over \"(1)\" copies, earlier timestamps, better " +
			"folders. It only reports; no file is moved or deleted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			scanOpts := scan.OptionsFromConfig(cfg)
			snapshot, err := scan.Walk(cmd.Context(), args[0], scanOpts, logger)
			if err != nil {
				return err
			}

			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			groupOpts := dupes.Options{Workers: cfg.Hashing.Workers}
			if workers > 0 {
				groupOpts.Workers = workers
			}
			if store != nil {
				groupOpts.Hasher = catalog.NewCachingHasher(store, nil, logger)
			}
			if !jsonOut && isatty.IsTerminal(os.Stderr.Fd()) {
				groupOpts.OnProgress = hashProgress()
			}

			groups := dupes.GroupDuplicates(cmd.Context(), snapshot.Records, groupOpts, logger)

			report := dupesReport{Root: snapshot.Root, MediaFiles: len(snapshot.Records)}
			var runID string
			if store != nil {
				if runID, err = store.BeginRun(cmd.Context(), snapshot.Root); err != nil {
					return err
				}
			}
			for _, group := range groups {
				decision, err := dupes.SelectKeeper(group)
				if err != nil {
					return err
				}
				view := groupView{
					Size:   group.Size,
					Digest: group.Digest,
					Keeper: decision.Keeper.Path,
				}
				for _, discard := range decision.Discards {
					view.Discards = append(view.Discards, discard.Path)
				}
				report.Groups = append(report.Groups, view)
				report.RedundantBytes += group.Size * int64(len(decision.Discards))

				if store != nil {
					if err := store.RecordKeeper(cmd.Context(), runID, group.Digest, group.Size,
						decision.Keeper.Path, len(decision.Discards)); err != nil {
						return err
					}
				}
			}
			if store != nil {
				if err := store.FinishRun(cmd.Context(), runID, catalog.RunCounters{
					MediaFiles:      len(snapshot.Records),
					DuplicateGroups: len(groups),
				}); err != nil {
					return err
				}
			}

			if jsonOut {
				return writeJSON(cmd, report)
			}
			renderDupesReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit duplicate groups as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "Hash worker count (0 uses the configured value)")
	return cmd
}

// hashProgress returns an OnProgress callback backed by a terminal progress
// bar. The bar is created on the first call, once the task total is known.
func hashProgress() func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("hashing"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}
}

func renderDupesReport(cmd *cobra.Command, report dupesReport) {
	out := cmd.OutOrStdout()
	if len(report.Groups) == 0 {
		fmt.Fprintf(out, "No duplicates among %d media files\n", report.MediaFiles)
		return
	}

	rows := make([][]string, 0, len(report.Groups))
	for _, group := range report.Groups {
		rows = append(rows, []string{
			humanize.Bytes(uint64(group.Size)),
			shortDigest(group.Digest),
			group.Keeper,
			fmt.Sprintf("%d", len(group.Discards)),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Size", "Digest", "Keep", "Dupes"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	))
	fmt.Fprintf(out, "%d duplicate groups, %s redundant\n",
		len(report.Groups), humanize.Bytes(uint64(report.RedundantBytes)))
}
