package usecase

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/draft-league-board/internal/domain/standings"
	"github.com/riskibarqy/draft-league-board/internal/platform/cache"
)

// Leaderboard is the display-ready projection of the current table.
type Leaderboard struct {
	LeagueName  string     `json:"leagueName"`
	Scoring     string     `json:"scoring"`
	Status      Status     `json:"status"`
	Title       string     `json:"title"`
	FailureText string     `json:"failureText,omitempty"`
	Version     uint64     `json:"version"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Teams       []TeamCard `json:"teams"`
}

type TeamCard struct {
	Rank         int            `json:"rank"`
	TeamCode     int64          `json:"teamCode"`
	TeamName     string         `json:"teamName"`
	OwnerName    string         `json:"ownerName"`
	LeaguePoints int            `json:"leaguePoints"`
	Diff         int            `json:"diff"`
	Total        string         `json:"total"`
	Gameweek     string         `json:"gameweek"`
	Opponent     *OpponentPanel `json:"opponent,omitempty"`
	Record       *H2HRecord     `json:"record,omitempty"`
	Explanations []string       `json:"explanations,omitempty"`
	Players      []PlayerRow    `json:"players"`
}

type OpponentPanel struct {
	TeamCode int64  `json:"teamCode"`
	TeamName string `json:"teamName"`
	Gameweek string `json:"gameweek"`
}

type H2HRecord struct {
	Won    int `json:"won"`
	Drawn  int `json:"drawn"`
	Lost   int `json:"lost"`
	Played int `json:"played"`
}

type PlayerRow struct {
	ID          int64                    `json:"id"`
	DisplayName string                   `json:"displayName"`
	ShirtURL    string                   `json:"shirtUrl"`
	Club        string                   `json:"club"`
	Points      string                   `json:"points"`
	PointStatus standings.PointStatus    `json:"pointStatus"`
	Color       string                   `json:"color"`
	PlayStatus  standings.PlayStatusType `json:"playStatus"`
	Substitute  *SubstituteRow           `json:"substitute,omitempty"`
	Sources     []SourceRow              `json:"sources"`
}

type SubstituteRow struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Points      string `json:"points"`
}

type SourceRow struct {
	Stat        string `json:"stat"`
	Name        string `json:"name,omitempty"`
	Amount      int    `json:"amount"`
	PointsTotal int    `json:"pointsTotal"`
}

// LeaderboardService projects store snapshots into view models, caching one
// projection per installed table version.
type LeaderboardService struct {
	store *TableStore
	views *cache.Store[Leaderboard]
}

func NewLeaderboardService(store *TableStore, views *cache.Store[Leaderboard]) *LeaderboardService {
	if views == nil {
		views = cache.NewStore[Leaderboard](0)
	}
	svc := &LeaderboardService{store: store, views: views}
	store.Subscribe(func(Snapshot) { views.Purge() })
	return svc
}

// Current returns ErrNotReady until the first table has been installed.
func (s *LeaderboardService) Current(ctx context.Context) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Current")
	defer span.End()

	snap := s.store.Snapshot()
	if !snap.Loaded() {
		return Leaderboard{}, ErrNotReady
	}
	span.SetAttributes(attribute.Int64("standings.version", int64(snap.Version)))

	board, err := s.views.GetOrLoad(ctx, viewCacheKey(snap), func(context.Context) (Leaderboard, error) {
		return Project(snap), nil
	})
	if err != nil {
		recordSpanError(span, err)
		return Leaderboard{}, err
	}
	return board, nil
}

// Status returns the page-level signals without projecting the table.
func (s *LeaderboardService) Status(context.Context) Snapshot {
	return s.store.Snapshot()
}

// Table returns the last installed table, or ErrNotReady.
func (s *LeaderboardService) Table(context.Context) (*standings.Table, error) {
	snap := s.store.Snapshot()
	if !snap.Loaded() {
		return nil, ErrNotReady
	}
	return snap.Table, nil
}

// The status is part of the key because a failed poll changes the signals
// while keeping the table version.
func viewCacheKey(snap Snapshot) string {
	return "leaderboard:" + strconv.FormatUint(snap.Version, 10) + ":" + string(snap.Status)
}

// Project builds the view model for one snapshot. It does not touch the store.
func Project(snap Snapshot) Leaderboard {
	board := Leaderboard{
		Status:      snap.Status,
		Title:       snap.Title,
		FailureText: snap.FailureText(),
		Version:     snap.Version,
		UpdatedAt:   snap.UpdatedAt,
	}
	table := snap.Table
	if table == nil {
		return board
	}

	board.LeagueName = table.Name
	board.Scoring = string(table.Scoring)
	board.Teams = make([]TeamCard, 0, len(table.Entries))

	h2h := table.Scoring.IsH2H()
	leader := 0
	if len(table.Entries) > 0 {
		leader = standings.LeaguePoints(table.Entries[0], table.Scoring)
	}

	for i, entry := range table.Entries {
		points := standings.LeaguePoints(entry, table.Scoring)
		card := TeamCard{
			Rank:         i + 1,
			TeamCode:     entry.TeamCode,
			TeamName:     entry.TeamName,
			OwnerName:    entry.OwnerName,
			LeaguePoints: points,
			Diff:         points - leader,
			Total:        standings.FormatPoints(entry.TotalPoints, entry.TotalProjectedPoints),
			Gameweek:     standings.FormatPoints(entry.GWPoints, entry.GWProjectedPoints),
			Explanations: explainProjection(entry.ProjectedPointsExplanation),
			Players:      projectPlayers(entry),
		}

		if h2h && entry.H2HInfo != nil {
			info := entry.H2HInfo
			card.Record = &H2HRecord{
				Won:    info.MatchesWon,
				Drawn:  info.MatchesDrawn,
				Lost:   info.MatchesLost,
				Played: info.MatchesPlayed,
			}
			if opponent, ok := standings.ResolveOpponent(entry, *table); ok {
				card.Opponent = &OpponentPanel{
					TeamCode: opponent.TeamCode,
					TeamName: opponent.TeamName,
					Gameweek: standings.FormatPoints(opponent.GWPoints, opponent.GWProjectedPoints),
				}
			}
		}

		board.Teams = append(board.Teams, card)
	}

	return board
}

func projectPlayers(team standings.Entry) []PlayerRow {
	rows := make([]PlayerRow, 0, len(team.Players))
	for _, p := range team.Players {
		if !p.OnField {
			continue
		}

		status := standings.ClassifyPointStatus(p)
		row := PlayerRow{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			ShirtURL:    p.ShirtURL(),
			Club:        p.Team.ShortName,
			Points:      standings.FormatPoints(p.Points, p.ProjectedPoints),
			PointStatus: status,
			Color:       status.Color(),
			PlayStatus:  p.PlayStatus.Kind(),
		}
		if row.Club == "" {
			row.Club = p.Team.Name
		}

		if p.PlayStatus.Kind() == standings.PlayStatusSubbedOff {
			if sub, ok := standings.ResolveSubstitute(team, p); ok {
				row.Substitute = &SubstituteRow{
					ID:          sub.ID,
					DisplayName: sub.DisplayName,
					Points:      standings.FormatPoints(sub.Points, sub.ProjectedPoints),
				}
			}
		}

		ordered := standings.OrderPointSources(p.PointSources)
		row.Sources = make([]SourceRow, 0, len(ordered))
		for _, source := range ordered {
			row.Sources = append(row.Sources, SourceRow{
				Stat:        source.Stat,
				Name:        source.Name,
				Amount:      source.Amount,
				PointsTotal: source.PointsTotal,
			})
		}

		rows = append(rows, row)
	}
	return rows
}

func explainProjection(items []standings.ProjectedPointsExplanation) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var line string
		switch {
		case nonZero(item.SubbedPoints) && nonZero(item.BonusPoints):
			line = item.Name + " " + strconv.Itoa(*item.SubbedPoints) + "p (" + strconv.Itoa(*item.BonusPoints) + " bonus) sub"
		case nonZero(item.SubbedPoints):
			line = item.Name + " " + strconv.Itoa(*item.SubbedPoints) + "p sub"
		case nonZero(item.BonusPoints):
			line = item.Name + " " + strconv.Itoa(*item.BonusPoints) + "p bonus"
		default:
			continue
		}
		out = append(out, line)
	}
	return out
}

func nonZero(v *int) bool {
	return v != nil && *v != 0
}
