// Package render turns a leaderboard into plain text for terminals and chat.
package render

import (
	"io"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/draft-league-board/internal/domain/standings"
	"github.com/riskibarqy/draft-league-board/internal/usecase"
)

var statusMarker = map[standings.PointStatus]string{
	standings.PointStatusUpcoming:      "~",
	standings.PointStatusFinalScored:   "+",
	standings.PointStatusFinalUnscored: "-",
}

// WriteText renders board as plain text into w.
func WriteText(w io.Writer, board usecase.Leaderboard) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeBoard(buf, board)
	_, err := buf.WriteTo(w)
	return err
}

func writeBoard(buf *bytebufferpool.ByteBuffer, board usecase.Leaderboard) {
	title := board.Title
	if title == "" {
		title = board.LeagueName
	}
	_, _ = buf.WriteString(title)
	if board.Scoring != "" {
		_, _ = buf.WriteString(" [" + board.Scoring + "]")
	}
	_ = buf.WriteByte('\n')
	if text := board.FailureText; text != "" {
		_, _ = buf.WriteString("! " + text + "\n")
	}

	for _, team := range board.Teams {
		_ = buf.WriteByte('\n')
		writeTeam(buf, team)
	}
}

func writeTeam(buf *bytebufferpool.ByteBuffer, team usecase.TeamCard) {
	_, _ = buf.WriteString(strconv.Itoa(team.Rank) + ". " + team.TeamName)
	if team.OwnerName != "" {
		_, _ = buf.WriteString(" (" + team.OwnerName + ")")
	}
	_, _ = buf.WriteString("  " + strconv.Itoa(team.LeaguePoints) + "\n")

	_, _ = buf.WriteString("   Total: " + team.Total +
		"  GW: " + team.Gameweek +
		"  Diff: " + strconv.Itoa(team.Diff) + "\n")

	if opp := team.Opponent; opp != nil {
		_, _ = buf.WriteString("   vs " + opp.TeamName + ": " + opp.Gameweek + "\n")
	}
	for _, line := range team.Explanations {
		_, _ = buf.WriteString("   * " + line + "\n")
	}

	for _, p := range team.Players {
		marker := statusMarker[p.PointStatus]
		if marker == "" {
			marker = "?"
		}
		_, _ = buf.WriteString("     " + marker + " " + p.DisplayName + ": " + p.Points)
		if sub := p.Substitute; sub != nil {
			_, _ = buf.WriteString(" -> " + sub.DisplayName + ": " + sub.Points)
		}
		for i, src := range p.Sources {
			if i == 0 {
				_, _ = buf.WriteString(" |")
			}
			_, _ = buf.WriteString(" " + src.Stat + " x" + strconv.Itoa(src.Amount) + " = " + strconv.Itoa(src.PointsTotal))
		}
		_ = buf.WriteByte('\n')
	}
}
