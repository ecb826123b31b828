package scan

import (
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mediasort/internal/backup"
	"mediasort/internal/media"
)

var titleCaser = cases.Title(language.English)

// classifyParts maps a file's path segments relative to the library root to
// the folder class of its location. The first segment decides: a generated
// folder, a backup-candidate name, or the YYYY/MM-Month dated layout.
func classifyParts(parts []string, opts Options) media.FolderClass {
	if len(parts) < 2 {
		// Loose file directly under the root.
		return media.FolderOther
	}
	top := parts[0]

	if _, ok := opts.Generated[top]; ok {
		if strings.EqualFold(top, "Memes") {
			return media.FolderMeme
		}
		return media.FolderScreenshot
	}
	// A backup folder shields its whole subtree, not just direct children.
	for _, part := range parts[:len(parts)-1] {
		if _, ok := backup.ParseFolderDate(part, opts.Backup); ok {
			return media.FolderBackup
		}
	}
	if len(parts) >= 3 && isYearFolder(top) && IsMonthFolder(parts[1]) {
		return media.FolderDated
	}
	return media.FolderOther
}

func isYearFolder(name string) bool {
	if len(name) != 4 {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsMonthFolder reports whether name is a canonical month folder such as
// "09-September". The month name is matched case-insensitively and must
// agree with the leading month number.
func IsMonthFolder(name string) bool {
	if len(name) < 4 || name[2] != '-' {
		return false
	}
	number := name[:2]
	if number[0] < '0' || number[0] > '9' || number[1] < '0' || number[1] > '9' {
		return false
	}
	month := int(number[0]-'0')*10 + int(number[1]-'0')
	if month < 1 || month > 12 {
		return false
	}
	return titleCaser.String(name[3:]) == time.Month(month).String()
}

// MonthFolder renders the canonical month folder name for a timestamp,
// for example "09-September".
func MonthFolder(ts time.Time) string {
	return ts.Format("01") + "-" + ts.Month().String()
}

// DatedDir returns the canonical destination directory for a timestamp under
// root: <root>/<year>/<MM-Month>.
func DatedDir(root string, ts time.Time) string {
	return filepath.Join(root, ts.Format("2006"), MonthFolder(ts))
}

// IsScreenshotFile reports whether the file should route to the Screenshots
// folder. Detection is filename-based: PNG images are treated as screenshots.
func IsScreenshotFile(path string, opts Options) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

// IsScreenRecordingFile reports whether the video should route to the
// ScreenRecordings folder, going by the recording markers phones put in
// file names.
func IsScreenRecordingFile(path string, opts Options) bool {
	if !opts.Videos.Contains(filepath.Ext(path)) {
		return false
	}
	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	return strings.Contains(stem, "screenrecording") || strings.Contains(stem, "screen recording")
}
