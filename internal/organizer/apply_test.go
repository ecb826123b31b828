package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"mediasort/internal/engine"
	"mediasort/internal/logging"
	"mediasort/internal/organizer"
	"mediasort/internal/scan"
	"mediasort/internal/testsupport"
)

func TestApplyExecutesFullPlan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := scan.OptionsFromConfig(cfg)
	root := t.TempDir()

	september := testsupport.Stamp(t, "2021-09-10 12:00")
	testsupport.WriteFileAt(t, root, "2021-09/a.jpg", "a", september)
	testsupport.WriteFileAt(t, root, "2021-09/b.jpg", "b", september)
	testsupport.WriteFileAt(t, root, "2021-09/old.jpg", "old",
		testsupport.Stamp(t, "2019-03-02 08:00"))
	testsupport.WriteFileAt(t, root, "vacation/photo.jpg", "p",
		testsupport.Stamp(t, "2020-05-01 09:00"))
	testsupport.WriteFile(t, root, "vacation/photo.aae", "x")

	snapshot := buildSnapshot(t, root, opts)
	plan := organizer.BuildPlan(snapshot, opts)

	result, err := organizer.Apply(context.Background(), plan, logging.NewNop())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.FoldersMoved != 1 || result.FilesMoved != 2 || result.Trashed != 1 || result.Skipped != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	mustExist := []string{
		filepath.Join(root, "2021", "2021-09", "a.jpg"),
		filepath.Join(root, "2021", "2021-09", "b.jpg"),
		filepath.Join(root, "2019", "03-March", "old.jpg"),
		filepath.Join(root, "2020", "05-May", "photo.jpg"),
		filepath.Join(root, cfg.Paths.TrashDirName, "vacation", "photo.aae"),
	}
	for _, path := range mustExist {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
	}
	// The emptied vacation folder is pruned; the old top-level backup
	// folder path is gone.
	if _, err := os.Stat(filepath.Join(root, "vacation")); !os.IsNotExist(err) {
		t.Errorf("vacation folder should have been pruned, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "2021-09")); !os.IsNotExist(err) {
		t.Errorf("old backup folder path should be gone, stat err = %v", err)
	}
}

func TestApplySkipsDestinationCollision(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := scan.OptionsFromConfig(cfg)
	root := t.TempDir()

	ts := testsupport.Stamp(t, "2020-05-01 09:00")
	source := testsupport.WriteFileAt(t, root, "loose/photo.jpg", "source", ts)
	existing := testsupport.WriteFileAt(t, root, "2020/05-May/photo.jpg", "existing", ts)

	plan := organizer.BuildPlan(buildSnapshot(t, root, opts), opts)
	result, err := organizer.Apply(context.Background(), plan, logging.NewNop())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.FilesMoved != 0 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("collision must leave the source in place: %v", err)
	}
	content, err := os.ReadFile(existing)
	if err != nil || string(content) != "existing" {
		t.Errorf("destination clobbered: %q, %v", content, err)
	}
}

func TestApplyRefusesConcurrentRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := scan.OptionsFromConfig(cfg)
	root := t.TempDir()
	testsupport.WriteFileAt(t, root, "loose/photo.jpg", "p",
		testsupport.Stamp(t, "2020-05-01 09:00"))

	holder := flock.New(filepath.Join(root, ".mediasort.lock"))
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not seed lock: locked=%v err=%v", locked, err)
	}
	defer func() {
		_ = holder.Unlock()
	}()

	plan := organizer.BuildPlan(buildSnapshot(t, root, opts), opts)
	_, err = organizer.Apply(context.Background(), plan, logging.NewNop())
	if !errors.Is(err, engine.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "loose", "photo.jpg")); statErr != nil {
		t.Errorf("locked run must not touch files: %v", statErr)
	}
}
