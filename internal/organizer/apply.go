package organizer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"mediasort/internal/engine"
	"mediasort/internal/fileutil"
	"mediasort/internal/logging"
)

// Result summarizes an Apply pass.
type Result struct {
	FoldersMoved int
	FilesMoved   int
	Trashed      int
	Skipped      int
}

const lockFileName = ".mediasort.lock"

// Apply executes a plan: sidecars to trash first, then individual file
// moves, then preserved folder relocations. File moves run before folder
// renames because members pulled out of a preserved folder are addressed by
// the folder's pre-move path. A lock file in the library root guards against
// concurrent runs. Destination collisions and vanished sources are skipped
// with a warning; nothing is ever deleted outright.
func Apply(ctx context.Context, plan *Plan, logger *slog.Logger) (Result, error) {
	log := logging.NewComponentLogger(logger, "organizer")
	var result Result

	lock := flock.New(filepath.Join(plan.Root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return result, engine.Wrap(engine.ErrLocked, "organizer", "acquire lock", plan.Root, err)
	}
	if !locked {
		return result, engine.Wrap(engine.ErrLocked, "organizer", "acquire lock",
			"another run is processing "+plan.Root, nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	for _, path := range plan.Trash {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rel, err := filepath.Rel(plan.Root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		dest := filepath.Join(plan.TrashDir, rel)
		if moveOne(path, dest, plan.Root, log) {
			result.Trashed++
		} else {
			result.Skipped++
		}
	}

	for _, move := range plan.Moves {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if moveOne(move.Source, move.Dest, plan.Root, log) {
			result.FilesMoved++
		} else {
			result.Skipped++
		}
	}

	for _, folder := range plan.FolderMoves {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := os.Stat(folder.Dest); err == nil {
			log.Warn("folder destination already exists, skipping",
				logging.String("source", folder.Source),
				logging.String("dest", folder.Dest))
			result.Skipped++
			continue
		}
		if err := fileutil.EnsureDir(filepath.Dir(folder.Dest)); err != nil {
			return result, err
		}
		if err := os.Rename(folder.Source, folder.Dest); err != nil {
			log.Warn("folder move failed, skipping",
				logging.String("source", folder.Source), logging.Error(err))
			result.Skipped++
			continue
		}
		result.FoldersMoved++
		log.Info("moved backup folder",
			logging.String("source", folder.Source),
			logging.String("dest", folder.Dest))
	}

	log.Info("apply complete",
		logging.Int("folders_moved", result.FoldersMoved),
		logging.Int("files_moved", result.FilesMoved),
		logging.Int("trashed", result.Trashed),
		logging.Int("skipped", result.Skipped))
	return result, nil
}

// moveOne relocates a single file, creating the destination directory and
// pruning the emptied source chain. Returns false when the move was skipped.
func moveOne(source, dest, root string, log *slog.Logger) bool {
	if _, err := os.Stat(source); err != nil {
		log.Warn("source vanished before move",
			logging.String("source", source), logging.Error(err))
		return false
	}
	if _, err := os.Stat(dest); err == nil {
		log.Warn("destination already exists, skipping",
			logging.String("source", source),
			logging.String("dest", dest))
		return false
	}
	if err := fileutil.EnsureDir(filepath.Dir(dest)); err != nil {
		log.Warn("cannot create destination directory",
			logging.String("dest", dest), logging.Error(err))
		return false
	}
	if err := fileutil.MoveFile(source, dest); err != nil {
		log.Warn("move failed",
			logging.String("source", source),
			logging.String("dest", dest),
			logging.Error(err))
		return false
	}
	fileutil.RemoveEmptyParents(filepath.Dir(source), root)
	return true
}
