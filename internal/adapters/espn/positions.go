package espn

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPosition is returned for a position with no free-agent slot filter.
var ErrUnknownPosition = errors.New("unknown position")

// slotByPosition maps a position label to the lineup slot id used when
// filtering the player pool.
var slotByPosition = map[string]int{ //nolint:gochecknoglobals // static lookup table
	"QB":   0,
	"RB":   2,
	"WR":   4,
	"TE":   6,
	"OP":   7,
	"D/ST": 16,
	"K":    17,
	"FLEX": 23,
}

var slotNames = map[int]string{ //nolint:gochecknoglobals // static lookup table
	0:  "QB",
	1:  "TQB",
	2:  "RB",
	3:  "RB/WR",
	4:  "WR",
	5:  "WR/TE",
	6:  "TE",
	7:  "OP",
	8:  "DT",
	9:  "DE",
	10: "LB",
	11: "DL",
	12: "CB",
	13: "S",
	14: "DB",
	15: "DP",
	16: "D/ST",
	17: "K",
	18: "P",
	19: "HC",
	20: "BE",
	21: "IR",
	23: "FLEX",
	24: "ER",
	25: "Rookie",
}

var positionNames = map[int]string{ //nolint:gochecknoglobals // static lookup table
	1:  "QB",
	2:  "RB",
	3:  "WR",
	4:  "TE",
	5:  "K",
	16: "D/ST",
}

var proTeamAbbrevs = map[int]string{ //nolint:gochecknoglobals // static lookup table
	1:  "ATL",
	2:  "BUF",
	3:  "CHI",
	4:  "CIN",
	5:  "CLE",
	6:  "DAL",
	7:  "DEN",
	8:  "DET",
	9:  "GB",
	10: "TEN",
	11: "IND",
	12: "KC",
	13: "LV",
	14: "LAR",
	15: "MIA",
	16: "MIN",
	17: "NE",
	18: "NO",
	19: "NYG",
	20: "NYJ",
	21: "PHI",
	22: "ARI",
	23: "PIT",
	24: "LAC",
	25: "SF",
	26: "SEA",
	27: "TB",
	28: "WSH",
	29: "CAR",
	30: "JAX",
	33: "BAL",
	34: "HOU",
}

// SlotID returns the lineup slot id for a position label.
func SlotID(position string) (int, error) {
	id, ok := slotByPosition[strings.ToUpper(strings.TrimSpace(position))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPosition, position)
	}
	return id, nil
}

// SlotName returns the label of a lineup slot id, or "" when unknown.
func SlotName(id int) string {
	return slotNames[id]
}

// PositionName returns the label for a default position id, or "".
func PositionName(id int) string {
	return positionNames[id]
}

// ProTeamAbbrev returns the NFL abbreviation for a pro team id.
func ProTeamAbbrev(id int) (string, bool) {
	a, ok := proTeamAbbrevs[id]
	return a, ok
}
