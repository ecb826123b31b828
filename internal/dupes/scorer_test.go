package dupes_test

import (
	"errors"
	"testing"
	"time"

	"mediasort/internal/dupes"
	"mediasort/internal/engine"
	"mediasort/internal/media"
)

func rec(path string, ts time.Time, folder media.FolderClass) *media.Record {
	return &media.Record{Path: path, Size: 100, Timestamp: ts, Folder: folder}
}

func groupOf(records ...*media.Record) dupes.Group {
	return dupes.Group{Size: 100, Digest: "d", Records: records}
}

func TestOriginalBeatsAddonRegardlessOfTimestamp(t *testing.T) {
	early := time.Date(2021, 9, 1, 10, 0, 0, 0, time.UTC)
	later := early.Add(48 * time.Hour)

	original := rec("lib/IMG_1.JPG", later, media.FolderOther)
	addon := rec("lib/IMG_1 (1).JPG", early, media.FolderOther)

	decision, err := dupes.SelectKeeper(groupOf(addon, original))
	if err != nil {
		t.Fatalf("SelectKeeper: %v", err)
	}
	if decision.Keeper != original {
		t.Fatalf("expected original as keeper, got %s", decision.Keeper.Path)
	}
	if len(decision.Discards) != 1 || decision.Discards[0] != addon {
		t.Fatalf("unexpected discards: %v", decision.Discards)
	}
}

func TestSmallerOrdinalWinsAmongAddons(t *testing.T) {
	ts := time.Date(2021, 9, 1, 10, 0, 0, 0, time.UTC)
	one := rec("a/photo (1).jpg", ts, media.FolderOther)
	two := rec("a/photo (2).jpg", ts, media.FolderOther)
	live := rec("a/photo-Live.mov", ts, media.FolderOther)

	decision, err := dupes.SelectKeeper(groupOf(two, live, one))
	if err != nil {
		t.Fatalf("SelectKeeper: %v", err)
	}
	if decision.Keeper != one {
		t.Fatalf("expected ordinal 1 as keeper, got %s", decision.Keeper.Path)
	}
	// Numbered addons outrank the live companion.
	if decision.Discards[0] != two || decision.Discards[1] != live {
		t.Fatalf("unexpected discard order: %s, %s",
			decision.Discards[0].Path, decision.Discards[1].Path)
	}
}

func TestEarlierTimestampWinsAmongOriginals(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	later := early.AddDate(1, 0, 0)

	a := rec("x/first.jpg", later, media.FolderDated)
	b := rec("y/second.jpg", early, media.FolderOther)

	decision, err := dupes.SelectKeeper(groupOf(a, b))
	if err != nil {
		t.Fatalf("SelectKeeper: %v", err)
	}
	if decision.Keeper != b {
		t.Fatalf("expected earlier file as keeper, got %s", decision.Keeper.Path)
	}
}

func TestFolderPreferenceBreaksTimestampTie(t *testing.T) {
	ts := time.Date(2021, 9, 5, 12, 0, 0, 0, time.UTC)

	dated := rec("2021/09-September/a.jpg", ts, media.FolderDated)
	other := rec("misc/a.jpg", ts, media.FolderOther)
	shot := rec("Screenshots/a.jpg", ts, media.FolderScreenshot)
	backupRec := rec("2021-09/a.jpg", ts, media.FolderBackup)

	decision, err := dupes.SelectKeeper(groupOf(backupRec, other, shot, dated))
	if err != nil {
		t.Fatalf("SelectKeeper: %v", err)
	}
	if decision.Keeper != dated {
		t.Fatalf("expected dated-folder file as keeper, got %s", decision.Keeper.Path)
	}
	wantOrder := []*media.Record{shot, other, backupRec}
	for i, want := range wantOrder {
		if decision.Discards[i] != want {
			t.Fatalf("discard %d = %s, want %s", i, decision.Discards[i].Path, want.Path)
		}
	}
}

func TestLexicalPathIsFinalTieBreak(t *testing.T) {
	ts := time.Date(2021, 9, 5, 12, 0, 0, 0, time.UTC)
	a := rec("misc/a.jpg", ts, media.FolderOther)
	b := rec("misc/b.jpg", ts, media.FolderOther)

	decision, err := dupes.SelectKeeper(groupOf(b, a))
	if err != nil {
		t.Fatalf("SelectKeeper: %v", err)
	}
	if decision.Keeper != a {
		t.Fatalf("expected lexically first path as keeper, got %s", decision.Keeper.Path)
	}
}

func TestSelectKeeperIdempotent(t *testing.T) {
	ts := time.Date(2021, 9, 5, 12, 0, 0, 0, time.UTC)
	group := groupOf(
		rec("b/photo (2).jpg", ts, media.FolderOther),
		rec("a/photo.jpg", ts.Add(time.Hour), media.FolderBackup),
		rec("c/photo (1).jpg", ts, media.FolderDated),
	)

	first, err := dupes.SelectKeeper(group)
	if err != nil {
		t.Fatalf("SelectKeeper: %v", err)
	}
	second, err := dupes.SelectKeeper(group)
	if err != nil {
		t.Fatalf("SelectKeeper: %v", err)
	}
	if first.Keeper != second.Keeper {
		t.Fatal("keeper changed between identical runs")
	}
	for i := range first.Discards {
		if first.Discards[i] != second.Discards[i] {
			t.Fatal("discard order changed between identical runs")
		}
	}
}

func TestSelectKeeperRejectsDegenerateGroup(t *testing.T) {
	_, err := dupes.SelectKeeper(groupOf(rec("solo.jpg", time.Now(), media.FolderOther)))
	if !errors.Is(err, engine.ErrInvariant) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}
