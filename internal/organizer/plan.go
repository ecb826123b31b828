package organizer

import (
	"path/filepath"
	"sort"
	"strconv"

	"mediasort/internal/backup"
	"mediasort/internal/media"
	"mediasort/internal/scan"
)

// MoveReason explains why a file move was planned.
type MoveReason string

const (
	// ReasonRedistribute routes a backup-folder member by its own timestamp
	// after the folder lost its majority vote.
	ReasonRedistribute MoveReason = "redistribute"
	// ReasonOlderThanBackup pulls a member out of a preserved backup folder
	// because it predates the folder's label.
	ReasonOlderThanBackup MoveReason = "older-than-backup"
	// ReasonScreenshot routes a screenshot to the generated folder.
	ReasonScreenshot MoveReason = "screenshot"
	// ReasonScreenRecording routes a screen recording to the generated folder.
	ReasonScreenRecording MoveReason = "screen-recording"
	// ReasonDate routes an unclassified file into the YYYY/MM-Month layout.
	ReasonDate MoveReason = "date"
)

// Move is one planned file relocation.
type Move struct {
	Source string
	Dest   string
	Reason MoveReason
}

// FolderMove relocates a preserved backup folder under its inferred year.
type FolderMove struct {
	Source string
	Dest   string
}

// Plan is the full set of mutations a run proposes. Building a plan touches
// nothing on disk.
type Plan struct {
	Root     string
	TrashDir string
	// Decisions records the analysis outcome per backup-candidate folder
	// name, including the ones that produced no operations.
	Decisions   map[string]backup.Decision
	FolderMoves []FolderMove
	Moves       []Move
	Trash       []string
}

// IsEmpty reports whether the plan proposes no mutation at all.
func (p *Plan) IsEmpty() bool {
	return len(p.FolderMoves) == 0 && len(p.Moves) == 0 && len(p.Trash) == 0
}

// Operations counts the individual mutations the plan proposes.
func (p *Plan) Operations() int {
	return len(p.FolderMoves) + len(p.Moves) + len(p.Trash)
}

// BuildPlan derives the mutation plan for a snapshot. Backup-candidate
// folders follow their majority-vote decision; unclassified files route into
// the dated layout or the generated folders; sidecars go to trash. Files
// already in their proper place produce no operation, so a re-run over
// sorted material yields an empty plan.
func BuildPlan(snapshot *scan.Snapshot, opts scan.Options) *Plan {
	plan := &Plan{
		Root:      snapshot.Root,
		TrashDir:  filepath.Join(snapshot.Root, opts.TrashDirName),
		Decisions: make(map[string]backup.Decision, len(snapshot.Backups)),
	}

	handled := make(map[*media.Record]struct{})

	backupNames := make([]string, 0, len(snapshot.Backups))
	for name := range snapshot.Backups {
		backupNames = append(backupNames, name)
	}
	sort.Strings(backupNames)

	for _, name := range backupNames {
		members := snapshot.Backups[name]
		decision := backup.Analyze(name, members, opts.Backup)
		plan.Decisions[name] = decision

		switch decision.Kind {
		case backup.DecisionPreserve:
			planPreserve(plan, name, decision.Date, members, handled)
		case backup.DecisionRedistribute:
			for _, member := range members {
				handled[member] = struct{}{}
				planByTimestamp(plan, member, ReasonRedistribute, opts)
			}
		default:
			// NoMatch: leave the folder untouched; members still count
			// as handled so the generic sweep cannot second-guess the
			// decision.
			for _, member := range members {
				handled[member] = struct{}{}
			}
		}
	}

	for _, rec := range snapshot.Records {
		if _, done := handled[rec]; done {
			continue
		}
		switch rec.Folder {
		case media.FolderDated, media.FolderScreenshot, media.FolderMeme:
			// Already where it belongs.
		case media.FolderBackup:
			// Nested under a backup folder that is not top-level; the
			// folder decision covers top-level candidates only.
		default:
			planByTimestamp(plan, rec, ReasonDate, opts)
		}
	}

	plan.Trash = append(plan.Trash, snapshot.Sidecars...)
	sort.Strings(plan.Trash)
	return plan
}

// planPreserve keeps the folder as a unit under its inferred year, first
// pulling out members that predate the folder label.
func planPreserve(plan *Plan, name string, date backup.FolderDate, members []*media.Record, handled map[*media.Record]struct{}) {
	start := date.Start()
	for _, member := range members {
		handled[member] = struct{}{}
		if member.Timestamp.Before(start) {
			dest := filepath.Join(scan.DatedDir(plan.Root, member.Timestamp), filepath.Base(member.Path))
			appendMove(plan, member.Path, dest, ReasonOlderThanBackup)
		}
	}

	source := filepath.Join(plan.Root, name)
	dest := filepath.Join(plan.Root, strconv.Itoa(date.Year), name)
	if source != dest {
		plan.FolderMoves = append(plan.FolderMoves, FolderMove{Source: source, Dest: dest})
	}
}

// planByTimestamp routes one record to its generated folder or dated
// destination.
func planByTimestamp(plan *Plan, rec *media.Record, reason MoveReason, opts scan.Options) {
	var dest string
	switch {
	case scan.IsScreenshotFile(rec.Path, opts):
		dest = filepath.Join(plan.Root, "Screenshots", filepath.Base(rec.Path))
		reason = ReasonScreenshot
	case scan.IsScreenRecordingFile(rec.Path, opts):
		dest = filepath.Join(plan.Root, "ScreenRecordings", filepath.Base(rec.Path))
		reason = ReasonScreenRecording
	default:
		dest = filepath.Join(scan.DatedDir(plan.Root, rec.Timestamp), filepath.Base(rec.Path))
	}
	appendMove(plan, rec.Path, dest, reason)
}

func appendMove(plan *Plan, source, dest string, reason MoveReason) {
	if source == dest {
		return
	}
	plan.Moves = append(plan.Moves, Move{Source: source, Dest: dest, Reason: reason})
}
