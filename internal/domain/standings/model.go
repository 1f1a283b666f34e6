package standings

import "strings"

// Scoring is the league scoring mode.
type Scoring string

const (
	ScoringH2H   Scoring = "H2H"
	ScoringTotal Scoring = "TOTAL"
)

// IsH2H reports whether the league ranks by head-to-head points.
// Every other value (TOTAL, CLASSIC, ...) ranks by aggregate points.
func (s Scoring) IsH2H() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(ScoringH2H))
}

// Table is one fetched snapshot of the league standings.
type Table struct {
	Code    int64              `json:"code,omitempty"`
	Name    string             `json:"name"`
	Scoring Scoring            `json:"scoring" validate:"required"`
	Entries []Entry            `json:"entries" validate:"required,dive"`
	Matches map[string][]Match `json:"matches,omitempty"`
}

// Match is one scheduled head-to-head pairing.
type Match struct {
	Gameweek     int   `json:"gw"`
	LeagueEntry1 int64 `json:"league_entry_1"`
	LeagueEntry2 int64 `json:"league_entry_2"`
	Started      bool  `json:"started"`
	Finished     bool  `json:"finished"`
}

// Entry is one league participant.
type Entry struct {
	TeamCode                   int64                        `json:"team_code" validate:"required"`
	TeamName                   string                       `json:"team_name"`
	OwnerName                  string                       `json:"owner_name"`
	TotalPoints                int                          `json:"total_points"`
	TotalProjectedPoints       int                          `json:"total_projected_points"`
	GWPoints                   int                          `json:"gw_points"`
	GWProjectedPoints          int                          `json:"gw_projected_points"`
	H2HInfo                    *H2HInfo                     `json:"h2h_info,omitempty"`
	ProjectedPointsExplanation []ProjectedPointsExplanation `json:"projected_points_explanation,omitempty"`
	Players                    []Player                     `json:"players" validate:"dive"`
}

// H2HInfo is present only for head-to-head leagues.
// CurrentOpponent is a lookup key into the same table, not an owned link.
type H2HInfo struct {
	Points          int   `json:"points"`
	CurrentOpponent int64 `json:"current_opponent"`
	MatchesWon      int   `json:"matches_won"`
	MatchesDrawn    int   `json:"matches_drawn"`
	MatchesLost     int   `json:"matches_lost"`
	MatchesPlayed   int   `json:"matches_played"`
}

// ProjectedPointsExplanation describes why projected points differ from actual.
type ProjectedPointsExplanation struct {
	Name         string `json:"name"`
	BonusPoints  *int   `json:"bonus_points,omitempty"`
	SubbedPoints *int   `json:"subbed_points,omitempty"`
}

// Player is one roster member for the current gameweek.
type Player struct {
	ID                  int64         `json:"id" validate:"required"`
	FullName            string        `json:"full_name"`
	DisplayName         string        `json:"display_name"`
	Team                Club          `json:"team"`
	TeamPos             Position      `json:"team_pos"`
	OnField             bool          `json:"on_field"`
	PickNumber          int           `json:"pick_number"`
	PlayStatus          PlayStatus    `json:"play_status"`
	Points              int           `json:"points"`
	BPS                 int           `json:"bps"`
	ProjectedPoints     int           `json:"projected_points"`
	HasPlayed           bool          `json:"has_played"`
	FixturesFinished    bool          `json:"fixtures_finished"`
	HasUpcomingFixtures bool          `json:"has_upcoming_fixtures"`
	News                string        `json:"news,omitempty"`
	Status              string        `json:"status,omitempty"`
	PointSources        []PointSource `json:"point_sources"`
}

// IsGoalkeeper reports whether the player is listed in the goalkeeper slot.
func (p Player) IsGoalkeeper() bool {
	return p.TeamPos.Number == PositionGoalkeeper
}

// ShirtURL picks the goalkeeper or outfield shirt image.
func (p Player) ShirtURL() string {
	if p.IsGoalkeeper() && p.Team.GKShirtURL != "" {
		return p.Team.GKShirtURL
	}
	return p.Team.ShirtURL
}

// Club is the real-world club a player belongs to.
type Club struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ShortName  string `json:"short_name"`
	Code       int64  `json:"code"`
	ShirtURL   string `json:"shirt_url"`
	GKShirtURL string `json:"gk_shirt_url"`
}

const (
	PositionGoalkeeper = 1
	PositionDefender   = 2
	PositionMidfielder = 3
	PositionForward    = 4
)

// Position is the squad position of a player.
type Position struct {
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
}

// PlayStatusType tags the play status variant.
type PlayStatusType string

const (
	PlayStatusPlaying   PlayStatusType = "playing"
	PlayStatusSubbedOff PlayStatusType = "subbed_off"
	PlayStatusSubbedIn  PlayStatusType = "subbed_in"
	PlayStatusBenched   PlayStatusType = "benched"
	PlayStatusOther     PlayStatusType = "other"
)

// PlayStatus is a tagged variant; SubbedWith is set for subbed_off and subbed_in
// and refers to a player id within the same team.
type PlayStatus struct {
	Type       PlayStatusType `json:"type"`
	SubbedWith *int64         `json:"subbed_with,omitempty"`
}

// Kind normalizes the tag, folding unknown values into PlayStatusOther.
func (s PlayStatus) Kind() PlayStatusType {
	switch PlayStatusType(strings.ToLower(strings.TrimSpace(string(s.Type)))) {
	case PlayStatusPlaying:
		return PlayStatusPlaying
	case PlayStatusSubbedOff:
		return PlayStatusSubbedOff
	case PlayStatusSubbedIn:
		return PlayStatusSubbedIn
	case PlayStatusBenched:
		return PlayStatusBenched
	default:
		return PlayStatusOther
	}
}

// PointSource is one attributable scoring event.
type PointSource struct {
	Name        string `json:"name,omitempty"`
	Stat        string `json:"stat"`
	Amount      int    `json:"amount"`
	PointsTotal int    `json:"points_total"`
	Fixture     int64  `json:"fixture,omitempty"`
}
