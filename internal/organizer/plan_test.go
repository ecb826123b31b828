package organizer_test

import (
	"context"
	"path/filepath"
	"testing"

	"mediasort/internal/backup"
	"mediasort/internal/logging"
	"mediasort/internal/organizer"
	"mediasort/internal/scan"
	"mediasort/internal/testsupport"
)

func buildSnapshot(t *testing.T, root string, cfg scan.Options) *scan.Snapshot {
	t.Helper()
	snapshot, err := scan.Walk(context.Background(), root, cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	return snapshot
}

func TestBuildPlanPreservesMajorityBackupFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := scan.OptionsFromConfig(cfg)
	root := t.TempDir()

	september := testsupport.Stamp(t, "2021-09-10 12:00")
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		testsupport.WriteFileAt(t, root, "2021-09/"+name, name, september)
	}
	// One member predates the label and must be pulled out.
	old := testsupport.WriteFileAt(t, root, "2021-09/old.jpg", "old",
		testsupport.Stamp(t, "2019-03-02 08:00"))

	snapshot := buildSnapshot(t, root, opts)
	plan := organizer.BuildPlan(snapshot, opts)

	decision, ok := plan.Decisions["2021-09"]
	if !ok || decision.Kind != backup.DecisionPreserve {
		t.Fatalf("expected preserve decision, got %+v", decision)
	}
	if len(plan.FolderMoves) != 1 {
		t.Fatalf("expected one folder move, got %v", plan.FolderMoves)
	}
	wantDest := filepath.Join(root, "2021", "2021-09")
	if plan.FolderMoves[0].Dest != wantDest {
		t.Fatalf("folder dest = %s, want %s", plan.FolderMoves[0].Dest, wantDest)
	}
	if len(plan.Moves) != 1 || plan.Moves[0].Source != old {
		t.Fatalf("expected only the stale member to move, got %v", plan.Moves)
	}
	if plan.Moves[0].Reason != organizer.ReasonOlderThanBackup {
		t.Fatalf("unexpected reason %s", plan.Moves[0].Reason)
	}
	if plan.Moves[0].Dest != filepath.Join(root, "2019", "03-March", "old.jpg") {
		t.Fatalf("unexpected dest %s", plan.Moves[0].Dest)
	}
}

func TestBuildPlanRedistributesMinorityBackupFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := scan.OptionsFromConfig(cfg)
	root := t.TempDir()

	testsupport.WriteFileAt(t, root, "2021-09/a.jpg", "a", testsupport.Stamp(t, "2020-01-05 09:00"))
	testsupport.WriteFileAt(t, root, "2021-09/b.jpg", "b", testsupport.Stamp(t, "2022-07-20 17:30"))
	testsupport.WriteFileAt(t, root, "2021-09/c.jpg", "c", testsupport.Stamp(t, "2021-09-14 10:00"))

	snapshot := buildSnapshot(t, root, opts)
	plan := organizer.BuildPlan(snapshot, opts)

	if plan.Decisions["2021-09"].Kind != backup.DecisionRedistribute {
		t.Fatalf("expected redistribute, got %v", plan.Decisions["2021-09"].Kind)
	}
	if len(plan.FolderMoves) != 0 {
		t.Fatalf("redistribute must not move the folder, got %v", plan.FolderMoves)
	}
	if len(plan.Moves) != 3 {
		t.Fatalf("expected every member routed, got %v", plan.Moves)
	}
	wantDests := map[string]string{
		"a.jpg": filepath.Join(root, "2020", "01-January", "a.jpg"),
		"b.jpg": filepath.Join(root, "2022", "07-July", "b.jpg"),
		"c.jpg": filepath.Join(root, "2021", "09-September", "c.jpg"),
	}
	for _, move := range plan.Moves {
		want := wantDests[filepath.Base(move.Source)]
		if move.Dest != want {
			t.Errorf("%s: dest = %s, want %s", move.Source, move.Dest, want)
		}
		if move.Reason != organizer.ReasonRedistribute {
			t.Errorf("%s: reason = %s", move.Source, move.Reason)
		}
	}
}

func TestBuildPlanRoutesLooseAndGeneratedFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := scan.OptionsFromConfig(cfg)
	root := t.TempDir()

	ts := testsupport.Stamp(t, "2021-09-05 10:00")
	photo := testsupport.WriteFileAt(t, root, "vacation/photo.jpg", "p", ts)
	shot := testsupport.WriteFileAt(t, root, "vacation/shot.png", "s", ts)
	recording := testsupport.WriteFileAt(t, root, "ScreenRecording_1.mov", "r", ts)
	sidecar := testsupport.WriteFile(t, root, "vacation/photo.aae", "x")
	// Already sorted material must produce no operations.
	testsupport.WriteFileAt(t, root, "2021/09-September/done.jpg", "d", ts)
	testsupport.WriteFileAt(t, root, "Screenshots/old.png", "o", ts)

	snapshot := buildSnapshot(t, root, opts)
	plan := organizer.BuildPlan(snapshot, opts)

	wantMoves := map[string]struct {
		dest   string
		reason organizer.MoveReason
	}{
		photo:     {filepath.Join(root, "2021", "09-September", "photo.jpg"), organizer.ReasonDate},
		shot:      {filepath.Join(root, "Screenshots", "shot.png"), organizer.ReasonScreenshot},
		recording: {filepath.Join(root, "ScreenRecordings", "ScreenRecording_1.mov"), organizer.ReasonScreenRecording},
	}
	if len(plan.Moves) != len(wantMoves) {
		t.Fatalf("expected %d moves, got %v", len(wantMoves), plan.Moves)
	}
	for _, move := range plan.Moves {
		want, ok := wantMoves[move.Source]
		if !ok {
			t.Errorf("unexpected move %+v", move)
			continue
		}
		if move.Dest != want.dest || move.Reason != want.reason {
			t.Errorf("%s: got (%s, %s), want (%s, %s)",
				move.Source, move.Dest, move.Reason, want.dest, want.reason)
		}
	}
	if len(plan.Trash) != 1 || plan.Trash[0] != sidecar {
		t.Fatalf("unexpected trash list %v", plan.Trash)
	}
}

func TestBuildPlanIdempotentAfterApply(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := scan.OptionsFromConfig(cfg)
	root := t.TempDir()

	september := testsupport.Stamp(t, "2021-09-10 12:00")
	testsupport.WriteFileAt(t, root, "2021-09/a.jpg", "a", september)
	testsupport.WriteFileAt(t, root, "2021-09/b.jpg", "b", september)
	testsupport.WriteFileAt(t, root, "vacation/photo.jpg", "p", testsupport.Stamp(t, "2020-05-01 09:00"))
	testsupport.WriteFile(t, root, "vacation/Thumbs.db", "t")

	snapshot := buildSnapshot(t, root, opts)
	plan := organizer.BuildPlan(snapshot, opts)
	if plan.IsEmpty() {
		t.Fatal("first plan should propose work")
	}
	if _, err := organizer.Apply(context.Background(), plan, logging.NewNop()); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	second := organizer.BuildPlan(buildSnapshot(t, root, opts), opts)
	if !second.IsEmpty() {
		t.Fatalf("second plan should be empty, got %d ops (moves %v folders %v trash %v)",
			second.Operations(), second.Moves, second.FolderMoves, second.Trash)
	}
}
