package media

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// AddonKind enumerates the filename suffix patterns that mark a file as a
// secondary copy of an original.
type AddonKind int

const (
	// AddonOriginal means the filename carries no addon marker.
	AddonOriginal AddonKind = iota
	// AddonParenNumeral matches "photo (1).jpg".
	AddonParenNumeral
	// AddonSpaceNumeral matches "photo 1.jpg".
	AddonSpaceNumeral
	// AddonLiveCompanion matches the paired live-photo video, "IMG_0001-Live.mov".
	AddonLiveCompanion
)

func (k AddonKind) String() string {
	switch k {
	case AddonOriginal:
		return "original"
	case AddonParenNumeral:
		return "parenthetical-numeral"
	case AddonSpaceNumeral:
		return "space-numeral"
	case AddonLiveCompanion:
		return "live-companion"
	default:
		return "unknown"
	}
}

// AddonClass is the derived addon classification of a filename. Ordinal is
// zero for originals and live companions.
type AddonClass struct {
	Kind    AddonKind
	Ordinal int
}

// IsOriginal reports whether the filename carries no addon marker.
func (a AddonClass) IsOriginal() bool { return a.Kind == AddonOriginal }

// HasOrdinal reports whether the classification carries an extracted integer.
func (a AddonClass) HasOrdinal() bool {
	return a.Kind == AddonParenNumeral || a.Kind == AddonSpaceNumeral
}

var (
	parenNumeralPattern = regexp.MustCompile(`\((\d+)\)$`)
	spaceNumeralPattern = regexp.MustCompile(`\s(\d+)$`)
)

const liveSuffix = "-live"

// ClassifyAddon derives the addon classification from a file name or path.
// Only the base name without extension participates in matching.
func ClassifyAddon(name string) AddonClass {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if m := parenNumeralPattern.FindStringSubmatch(stem); m != nil {
		if ordinal, err := strconv.Atoi(m[1]); err == nil {
			return AddonClass{Kind: AddonParenNumeral, Ordinal: ordinal}
		}
	}
	if m := spaceNumeralPattern.FindStringSubmatch(stem); m != nil {
		if ordinal, err := strconv.Atoi(m[1]); err == nil {
			return AddonClass{Kind: AddonSpaceNumeral, Ordinal: ordinal}
		}
	}
	if strings.HasSuffix(strings.ToLower(stem), liveSuffix) {
		return AddonClass{Kind: AddonLiveCompanion}
	}
	return AddonClass{Kind: AddonOriginal}
}
