package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mcoot/cornhole/internal/api/response"
	"github.com/mcoot/cornhole/internal/model"
	"github.com/mcoot/cornhole/internal/services/roster"
	"github.com/mcoot/cornhole/internal/services/stats"
	"github.com/mcoot/cornhole/internal/services/upload"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error. Daemon errors also carry their code and the
// request ID to look up in the daemon log.
func (o *Output) PrintError(err error) {
	var apiErr *APIError
	isAPI := errors.As(err, &apiErr)

	if o.format == "json" {
		detail := map[string]string{"message": err.Error()}
		if isAPI {
			detail["code"] = apiErr.Code
			if apiErr.RequestID != "" {
				detail["requestId"] = apiErr.RequestID
			}
		}
		data, _ := json.Marshal(map[string]any{"error": detail})
		_, _ = fmt.Fprintln(o.errOut, string(data))
		return
	}

	_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	if isAPI && apiErr.RequestID != "" {
		_, _ = fmt.Fprintf(o.errOut, "Request ID: %s\n", apiErr.RequestID)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Status:
		o.printf("Status: %s\n", v.Status)
	case response.Game:
		o.printGame(v)
	case response.ThrowResponse:
		o.printThrow(v)
	case response.RoundResponse:
		o.printRoundRecord(v.Record)
		o.printf("Score: %s %d - %d %s\n",
			v.Game.Round.Player1.Name, v.Game.Round.Player1.TotalPoints,
			v.Game.Round.Player2.TotalPoints, v.Game.Round.Player2.Name)
	case model.GameRecord:
		o.printGameRecord(v)
	case response.Rounds:
		if len(v.Rounds) == 0 {
			o.printf("No rounds played\n")
		}
		for _, r := range v.Rounds {
			o.printRoundRecord(r)
		}
	case response.Session:
		o.printProfile(v.Profile)
	case roster.Result:
		o.printRoster(v)
	case response.History:
		o.printHistory(v)
	case stats.Summary:
		o.printSummary(v)
	case upload.Result:
		o.printf("Uploaded %d of %d games for %s\n", v.Accepted, v.Submitted, v.User)
	case response.Metadata:
		o.printMetadata(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.out, format, args...)
}

func (o *Output) printGame(g response.Game) {
	o.printf("State: %s\n", g.State)
	if g.Board != "" {
		o.printf("Board: %s\n", g.Board)
	}
	if g.Owner != nil {
		o.printf("Owner: %s\n", g.Owner.Name)
	}

	if g.Round != nil && g.State == model.GameStateActive {
		o.printf("Round %d\n", g.Round.Number)
		for _, p := range []model.PlayerState{g.Round.Player1, g.Round.Player2} {
			o.printf("  %-12s total %3d  round %2d  in %d  on %d  bags left %d\n",
				p.Name, p.TotalPoints, p.RoundPoints, p.RoundBagsIn, p.RoundBagsOn, p.BagsRemaining)
		}
	}

	if len(g.Stats) > 0 {
		o.printf("Stats:\n")
		for _, s := range g.Stats {
			o.printf("  %-12s ppr %.2f  in%% %.1f\n", s.Name, s.PointsPerRound, s.InPercentage)
		}
	}

	if g.Result != nil {
		o.printGameRecord(*g.Result)
	}
}

func (o *Output) printThrow(t response.ThrowResponse) {
	if !t.Accepted {
		o.printf("Throw refused\n")
		return
	}
	o.printf("Throw recorded\n")
	if t.Game.Round != nil {
		o.printf("Round: %s %d - %d %s\n",
			t.Game.Round.Player1.Name, t.Game.Round.Player1.RoundPoints,
			t.Game.Round.Player2.RoundPoints, t.Game.Round.Player2.Name)
	}
}

func (o *Output) printRoundRecord(r model.RoundRecord) {
	o.printf("Round %d: %d - %d (in %d/%d, on %d/%d)\n",
		r.RoundNumber, r.Player1RoundScore, r.Player2RoundScore,
		r.Player1RoundBagsIn, r.Player2RoundBagsIn,
		r.Player1RoundBagsOn, r.Player2RoundBagsOn)
}

func (o *Output) printGameRecord(g model.GameRecord) {
	o.printf("%s  %s %d - %d %s  winner: %s  (%d rounds)\n",
		g.Date.Local().Format(time.DateTime),
		g.Player1.Name, g.Player1.Score, g.Player2.Score, g.Player2.Name,
		g.Winner, g.TotalRounds)
}

func (o *Output) printProfile(p model.Profile) {
	o.printf("Player: %s (%s)\n", p.Name, p.ID)
	if p.Board != "" {
		o.printf("Board: %s\n", p.Board)
	}
}

func (o *Output) printRoster(r roster.Result) {
	if r.Stale {
		o.printf("Roster (cached, record store unreachable):\n")
	} else {
		o.printf("Roster:\n")
	}
	for _, p := range r.Players {
		o.printf("  - %s (%s)\n", p.Name, p.ID)
	}
}

func (o *Output) printHistory(h response.History) {
	o.printf("Games (%d of %d kept):\n", len(h.Games), h.MaxSize)
	for _, g := range h.Games {
		o.printf("  ")
		o.printGameRecord(g)
	}
	if h.LastUpload != nil {
		o.printf("Last upload: %s\n", h.LastUpload.Local().Format(time.DateTime))
	} else {
		o.printf("Last upload: never\n")
	}
}

func (o *Output) printSummary(s stats.Summary) {
	o.printf("Player: %s\n", s.Name)
	o.printf("Games: %d (W %d / L %d / T %d)\n", s.GamesPlayed, s.Wins, s.Losses, s.Ties)
	o.printf("Rounds: %d\n", s.RoundsPlayed)
	o.printf("PPR: %.2f  DPR: %.2f  In%%: %.1f\n", s.PointsPerRound, s.BagsInPerRound, s.InPercentage)
}

func (o *Output) printMetadata(m response.Metadata) {
	o.printf("User: %s\n", m.UserID)
	keys := make([]string, 0, len(m.Metadata))
	for k := range m.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.printf("  %s: %v\n", k, m.Metadata[k])
	}
}
