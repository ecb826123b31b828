package scan_test

import (
	"context"
	"testing"

	"mediasort/internal/logging"
	"mediasort/internal/media"
	"mediasort/internal/scan"
	"mediasort/internal/testsupport"
)

func TestWalkClassifiesAndCollects(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	opts := scan.OptionsFromConfig(cfg)
	root := t.TempDir()

	dated := testsupport.WriteFile(t, root, "2021/09-September/a.jpg", "a")
	shot := testsupport.WriteFile(t, root, "Screenshots/shot.png", "s")
	meme := testsupport.WriteFile(t, root, "Memes/funny.jpg", "m")
	backupMember := testsupport.WriteFile(t, root, "2021-09/b.jpg", "b")
	other := testsupport.WriteFile(t, root, "vacation/c.jpg", "c")
	loose := testsupport.WriteFile(t, root, "loose.jpg", "l")
	sidecar := testsupport.WriteFile(t, root, "vacation/Thumbs.db", "t")
	testsupport.WriteFile(t, root, "vacation/._c.jpg", "apple")
	testsupport.WriteFile(t, root, "notes.txt", "not media")
	testsupport.WriteFile(t, root, ".mediasort-trash/old.jpg", "trashed")

	snapshot, err := scan.Walk(context.Background(), root, opts, logging.NewNop())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	classes := map[string]media.FolderClass{
		dated:        media.FolderDated,
		shot:         media.FolderScreenshot,
		meme:         media.FolderMeme,
		backupMember: media.FolderBackup,
		other:        media.FolderOther,
		loose:        media.FolderOther,
	}
	if len(snapshot.Records) != len(classes) {
		t.Fatalf("expected %d records, got %d", len(classes), len(snapshot.Records))
	}
	for _, rec := range snapshot.Records {
		want, ok := classes[rec.Path]
		if !ok {
			t.Errorf("unexpected record %s", rec.Path)
			continue
		}
		if rec.Folder != want {
			t.Errorf("%s: class = %v, want %v", rec.Path, rec.Folder, want)
		}
		if rec.Size == 0 || rec.Timestamp.IsZero() {
			t.Errorf("%s: metadata not populated", rec.Path)
		}
	}

	members, ok := snapshot.Backups["2021-09"]
	if !ok || len(members) != 1 || members[0].Path != backupMember {
		t.Fatalf("backup folder members wrong: %v", snapshot.Backups)
	}
	if len(snapshot.Sidecars) != 1 || snapshot.Sidecars[0] != sidecar {
		t.Fatalf("sidecars wrong: %v", snapshot.Sidecars)
	}
	if snapshot.SkippedFiles != 1 {
		t.Fatalf("expected one skipped file, got %d", snapshot.SkippedFiles)
	}
}

func TestWalkRecordsAreSorted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := t.TempDir()
	testsupport.WriteFile(t, root, "z.jpg", "z")
	testsupport.WriteFile(t, root, "a.jpg", "a")
	testsupport.WriteFile(t, root, "m/n.jpg", "n")

	snapshot, err := scan.Walk(context.Background(), root, scan.OptionsFromConfig(cfg), logging.NewNop())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	for i := 1; i < len(snapshot.Records); i++ {
		if snapshot.Records[i-1].Path >= snapshot.Records[i].Path {
			t.Fatalf("records not sorted: %s before %s",
				snapshot.Records[i-1].Path, snapshot.Records[i].Path)
		}
	}
}

func TestWalkMissingRoot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_, err := scan.Walk(context.Background(), "/does/not/exist", scan.OptionsFromConfig(cfg), logging.NewNop())
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}
