package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"mediasort/internal/backup"
	"mediasort/internal/config"
	"mediasort/internal/logging"
	"mediasort/internal/media"
)

// Options carries the filename vocabulary used while scanning.
type Options struct {
	Images       media.ExtensionSet
	Videos       media.ExtensionSet
	SidecarNames map[string]struct{}
	SidecarExts  media.ExtensionSet
	Generated    map[string]struct{}
	TrashDirName string
	Backup       backup.Options
}

// OptionsFromConfig builds scan options from application configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	names := make(map[string]struct{}, len(cfg.Scan.SidecarNames))
	for _, name := range cfg.Scan.SidecarNames {
		names[strings.ToLower(name)] = struct{}{}
	}
	generated := make(map[string]struct{}, len(cfg.Scan.GeneratedFolders))
	for _, folder := range cfg.Scan.GeneratedFolders {
		generated[folder] = struct{}{}
	}
	return Options{
		Images:       media.NewExtensionSet(cfg.Scan.ImageExtensions),
		Videos:       media.NewExtensionSet(cfg.Scan.VideoExtensions),
		SidecarNames: names,
		SidecarExts:  media.NewExtensionSet(cfg.Scan.SidecarExtensions),
		Generated:    generated,
		TrashDirName: cfg.Paths.TrashDirName,
		Backup:       backup.Options{PivotYear: cfg.Backup.PivotYear},
	}
}

// IsMedia reports whether the extension belongs to a recognized image or
// video format.
func (o Options) IsMedia(path string) bool {
	ext := filepath.Ext(path)
	return o.Images.Contains(ext) || o.Videos.Contains(ext)
}

// IsSidecar reports whether the base name is sidecar junk (Thumbs.db, .aae
// and friends).
func (o Options) IsSidecar(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := o.SidecarNames[lower]; ok {
		return true
	}
	return o.SidecarExts.Contains(filepath.Ext(lower))
}

// Snapshot is an immutable view of one library root at scan time.
type Snapshot struct {
	Root string
	// Records holds every recognized media file, sorted by path.
	Records []*media.Record
	// Backups maps each top-level backup-candidate folder name to its
	// media members.
	Backups map[string][]*media.Record
	// Sidecars lists files flagged for trash.
	Sidecars []string
	// SkippedFiles counts non-media, non-sidecar files left untouched.
	SkippedFiles int
}

// Walk builds a snapshot of root. The walk is read-only; AppleDouble "._"
// files and the in-library trash directory are ignored entirely. A file that
// cannot be statted is skipped with a warning rather than failing the scan.
func Walk(ctx context.Context, root string, opts Options, logger *slog.Logger) (*Snapshot, error) {
	log := logging.NewComponentLogger(logger, "scanner")
	root = filepath.Clean(root)

	snapshot := &Snapshot{
		Root:    root,
		Backups: make(map[string][]*media.Record),
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			log.Warn("skipping unreadable entry",
				logging.String("path", path), logging.Error(walkErr))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		if entry.IsDir() {
			if path != root && name == opts.TrashDirName {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, "._") {
			return nil
		}
		if opts.IsSidecar(name) {
			snapshot.Sidecars = append(snapshot.Sidecars, path)
			return nil
		}
		if !opts.IsMedia(name) {
			snapshot.SkippedFiles++
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			log.Warn("skipping unstattable file",
				logging.String("path", path), logging.Error(err))
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(rel, string(filepath.Separator))

		record := &media.Record{
			Path:      path,
			Size:      info.Size(),
			Timestamp: earliestTimestamp(path, info),
			Folder:    classifyParts(parts, opts),
		}
		snapshot.Records = append(snapshot.Records, record)

		if len(parts) > 1 {
			if _, ok := backup.ParseFolderDate(parts[0], opts.Backup); ok {
				snapshot.Backups[parts[0]] = append(snapshot.Backups[parts[0]], record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(snapshot.Records, func(i, j int) bool {
		return snapshot.Records[i].Path < snapshot.Records[j].Path
	})
	sort.Strings(snapshot.Sidecars)

	log.Info("snapshot complete",
		logging.String(logging.FieldRoot, root),
		logging.Int("media_files", len(snapshot.Records)),
		logging.Int("backup_folders", len(snapshot.Backups)),
		logging.Int("sidecars", len(snapshot.Sidecars)),
		logging.Int("skipped", snapshot.SkippedFiles))
	return snapshot, nil
}
