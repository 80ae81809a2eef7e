package scoring

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// BreakdownExport is the read-only display format: player -> category -> points.
type BreakdownExport struct {
	UserID      string                    `json:"user_id"`
	Gameweek    int                       `json:"gameweek"`
	TotalPoints int                       `json:"total_points"`
	Captain     string                    `json:"captain,omitempty"`
	Players     map[string]map[string]int `json:"players"`
}

func NewBreakdownExport(result GameweekPointsResult) BreakdownExport {
	out := BreakdownExport{
		UserID:      result.UserID,
		Gameweek:    result.Gameweek,
		TotalPoints: result.TotalPoints,
		Players:     make(map[string]map[string]int, len(result.Players)),
	}
	for _, item := range result.Players {
		categories := make(map[string]int, len(item.Breakdown))
		for key, points := range item.Breakdown {
			categories[key] = points
		}
		out.Players[item.PlayerID] = categories
		if item.IsCaptain {
			out.Captain = item.PlayerID
		}
	}
	return out
}

// ExportBreakdown encodes the result's per-player breakdown as JSON.
func ExportBreakdown(result GameweekPointsResult) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(NewBreakdownExport(result)); err != nil {
		return nil, fmt.Errorf("encode breakdown export: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
