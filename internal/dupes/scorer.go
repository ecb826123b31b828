package dupes

import (
	"sort"
	"strings"

	"mediasort/internal/engine"
	"mediasort/internal/media"
)

// KeeperDecision names the group member to retain by default and orders the
// rest best-to-worst. The decision is data only; nothing is deleted here.
type KeeperDecision struct {
	Keeper   *media.Record
	Discards []*media.Record
}

// SelectKeeper deterministically picks one keeper from a duplicate group.
//
// Candidates compare on a lexicographic cascade; the first criterion that
// differentiates two candidates decides between them:
//
//  1. An original filename outranks any addon.
//  2. Among addons, a smaller extracted ordinal outranks a larger one;
//     a numbered addon outranks a live companion, which has no ordinal.
//  3. An earlier timestamp outranks a later one.
//  4. Folder preference: dated year/month over screenshot/meme over
//     other over backup-candidate.
//  5. Lexical order of the file path.
//
// The final path comparison makes the order total; two distinct records
// comparing equal indicates a comparator bug and is returned as an
// invariant-violation error rather than resolved silently.
func SelectKeeper(group Group) (KeeperDecision, error) {
	if len(group.Records) < 2 {
		return KeeperDecision{}, engine.Wrap(engine.ErrInvariant, "dupes", "select keeper",
			"group must have at least two members", nil)
	}

	ranked := make([]*media.Record, len(group.Records))
	copy(ranked, group.Records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return compareRecords(ranked[i], ranked[j]) < 0
	})

	for i := 1; i < len(ranked); i++ {
		if compareRecords(ranked[i-1], ranked[i]) == 0 {
			return KeeperDecision{}, engine.Wrap(engine.ErrInvariant, "dupes", "select keeper",
				"comparator ranked two distinct files as equal: "+ranked[i-1].Path+" and "+ranked[i].Path, nil)
		}
	}

	return KeeperDecision{Keeper: ranked[0], Discards: ranked[1:]}, nil
}

// compareRecords returns a negative value when a should be kept over b.
func compareRecords(a, b *media.Record) int {
	addonA := media.ClassifyAddon(a.Path)
	addonB := media.ClassifyAddon(b.Path)

	if addonA.IsOriginal() != addonB.IsOriginal() {
		if addonA.IsOriginal() {
			return -1
		}
		return 1
	}

	if !addonA.IsOriginal() {
		if c := compareOrdinals(addonA, addonB); c != 0 {
			return c
		}
	}

	if a.Timestamp.Before(b.Timestamp) {
		return -1
	}
	if b.Timestamp.Before(a.Timestamp) {
		return 1
	}

	if c := a.Folder.Rank() - b.Folder.Rank(); c != 0 {
		return c
	}

	return strings.Compare(a.Path, b.Path)
}

func compareOrdinals(a, b media.AddonClass) int {
	switch {
	case a.HasOrdinal() && b.HasOrdinal():
		return a.Ordinal - b.Ordinal
	case a.HasOrdinal():
		return -1
	case b.HasOrdinal():
		return 1
	default:
		return 0
	}
}
