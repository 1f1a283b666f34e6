package standings

import (
	"sort"
	"strconv"
)

// PointStatus classifies how final a player's points are.
type PointStatus string

const (
	PointStatusUpcoming      PointStatus = "upcoming"
	PointStatusFinalScored   PointStatus = "final-scored"
	PointStatusFinalUnscored PointStatus = "final-unscored"
)

// Color is the display color tied to the status.
func (s PointStatus) Color() string {
	switch s {
	case PointStatusFinalScored:
		return "green"
	case PointStatusFinalUnscored:
		return "red"
	default:
		return "amber"
	}
}

// ClassifyPointStatus maps fixture and play state to exactly one status.
func ClassifyPointStatus(p Player) PointStatus {
	if !p.FixturesFinished {
		return PointStatusUpcoming
	}
	if p.HasPlayed {
		return PointStatusFinalScored
	}
	return PointStatusFinalUnscored
}

// FormatPoints renders "actual" or "actual (projected)" when they differ.
func FormatPoints(actual, projected int) string {
	if actual == projected {
		return strconv.Itoa(actual)
	}
	return strconv.Itoa(actual) + " (" + strconv.Itoa(projected) + ")"
}

// ResolveOpponent finds the current head-to-head opponent of team in table.
func ResolveOpponent(team Entry, table Table) (Entry, bool) {
	if team.H2HInfo == nil {
		return Entry{}, false
	}
	for _, candidate := range table.Entries {
		if candidate.TeamCode == team.H2HInfo.CurrentOpponent {
			return candidate, true
		}
	}
	return Entry{}, false
}

// ResolveSubstitute finds the player that p was swapped with inside team.
func ResolveSubstitute(team Entry, p Player) (Player, bool) {
	if p.PlayStatus.SubbedWith == nil {
		return Player{}, false
	}
	target := *p.PlayStatus.SubbedWith
	for _, candidate := range team.Players {
		if candidate.ID == target {
			return candidate, true
		}
	}
	return Player{}, false
}

var pointSourceRank = map[string]int{
	"goals_scored":           0,
	"assists":                1,
	"penalties_saved":        2,
	"defensive_contribution": 3,
	"clean_sheets":           4,
	"penalties_missed":       5,
	"yellow_cards":           6,
	"red_cards":              7,
	"bonus":                  8,
}

// unknownStatRank sorts unrecognized stats after every known one.
const unknownStatRank = 1 << 30

// PointSourceRank is the display precedence of a stat tag.
func PointSourceRank(stat string) int {
	if rank, ok := pointSourceRank[stat]; ok {
		return rank
	}
	return unknownStatRank
}

// OrderPointSources drops zero-point sources and sorts the rest by stat precedence.
// The input slice is not modified.
func OrderPointSources(sources []PointSource) []PointSource {
	out := make([]PointSource, 0, len(sources))
	for _, source := range sources {
		if source.PointsTotal == 0 {
			continue
		}
		out = append(out, source)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return PointSourceRank(out[i].Stat) < PointSourceRank(out[j].Stat)
	})
	return out
}
