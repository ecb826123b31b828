package media

import (
	"strings"
	"time"
)

// FolderClass describes the kind of folder a record lives in. The ordering of
// the constants is the keeper-preference order used by duplicate scoring.
type FolderClass int

const (
	// FolderDated is a canonical YYYY/MM-Month library location.
	FolderDated FolderClass = iota
	// FolderScreenshot covers the generated Screenshots and
	// ScreenRecordings folders.
	FolderScreenshot
	// FolderMeme is the generated Memes folder.
	FolderMeme
	// FolderOther is any unclassified location.
	FolderOther
	// FolderBackup is a backup-candidate folder awaiting a decision.
	FolderBackup
)

func (c FolderClass) String() string {
	switch c {
	case FolderDated:
		return "dated"
	case FolderScreenshot:
		return "screenshot"
	case FolderMeme:
		return "meme"
	case FolderOther:
		return "other"
	case FolderBackup:
		return "backup"
	default:
		return "unknown"
	}
}

// Rank returns the keeper-preference rank of the class; lower is preferred.
// Screenshots and memes share a rank.
func (c FolderClass) Rank() int {
	switch c {
	case FolderDated:
		return 0
	case FolderScreenshot, FolderMeme:
		return 1
	case FolderOther:
		return 2
	case FolderBackup:
		return 3
	default:
		return 2
	}
}

// Record is one media file in a snapshot. Records are immutable for the
// duration of an engine run except for the lazily computed content hash,
// which is filled in exactly once by the duplicate grouper's merge step.
type Record struct {
	// Path is the record identity, owned by the caller.
	Path string
	// Size in bytes.
	Size int64
	// Timestamp is the earliest of creation and modification time.
	Timestamp time.Time
	// Folder classifies the record's parent directory.
	Folder FolderClass

	hash string
}

// Hash returns the cached content hash, or "" when not yet computed.
func (r *Record) Hash() string { return r.hash }

// SetHash caches the content hash. The first value wins; the grouper's single
// merge point is the only writer during a run.
func (r *Record) SetHash(digest string) {
	if r.hash == "" {
		r.hash = digest
	}
}

// Date returns the record's calendar date in local time.
func (r *Record) Date() (year int, month time.Month, day int) {
	return r.Timestamp.Date()
}

// ExtensionSet is a lowercase set of filename extensions including the dot.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from the given extensions, lowercasing each.
func NewExtensionSet(exts []string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Contains reports whether ext (any case, with dot) is in the set.
func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[strings.ToLower(ext)]
	return ok
}
