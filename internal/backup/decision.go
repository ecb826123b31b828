package backup

import "mediasort/internal/media"

// DecisionKind tags the analysis outcome for one folder. Exactly one kind
// holds per analysis.
type DecisionKind int

const (
	// DecisionNoMatch means the folder name matched no recognized pattern
	// or the folder was empty; the caller falls back to generic handling.
	DecisionNoMatch DecisionKind = iota
	// DecisionPreserve means a strict majority of members agree with the
	// parsed date; the folder moves under its inferred year as a unit.
	DecisionPreserve
	// DecisionRedistribute means the name parsed but members disagree;
	// each member is re-routed by its own timestamp.
	DecisionRedistribute
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionPreserve:
		return "preserve"
	case DecisionRedistribute:
		return "redistribute"
	default:
		return "no-match"
	}
}

// Decision is the analysis result for one backup-candidate folder. Date is
// meaningful only when Kind is DecisionPreserve.
type Decision struct {
	Kind DecisionKind
	Date FolderDate
	// MatchFraction is the share of members agreeing with the parsed
	// date, recorded for reporting. Zero for DecisionNoMatch.
	MatchFraction float64
}

// NoMatch returns the decision for an unparseable name or empty folder.
func NoMatch() Decision { return Decision{Kind: DecisionNoMatch} }

// Preserve returns the decision keeping the folder under date.
func Preserve(date FolderDate, fraction float64) Decision {
	return Decision{Kind: DecisionPreserve, Date: date, MatchFraction: fraction}
}

// Redistribute returns the decision dissolving the folder.
func Redistribute(fraction float64) Decision {
	return Decision{Kind: DecisionRedistribute, MatchFraction: fraction}
}

// Analyze parses folderName and runs majority inference over the member
// timestamps. Pure function: no I/O, no clock access.
//
// A strict majority (> 0.5) of members matching the parsed date at its own
// granularity preserves the folder; anything else redistributes. Exactly 50%
// is not a majority. An unparseable name or zero members yields NoMatch
// regardless of the other input.
func Analyze(folderName string, members []*media.Record, opts Options) Decision {
	date, ok := ParseFolderDate(folderName, opts)
	if !ok {
		return NoMatch()
	}
	if len(members) == 0 {
		return NoMatch()
	}

	matching := 0
	for _, member := range members {
		if date.matchesAt(member.Timestamp) {
			matching++
		}
	}
	fraction := float64(matching) / float64(len(members))
	if fraction > 0.5 {
		return Preserve(date, fraction)
	}
	return Redistribute(fraction)
}
