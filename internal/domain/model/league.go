package model

import "time"

// League is a snapshot of the league as returned by the provider.
type League struct {
	ID                   int
	Year                 int
	Name                 string
	CurrentScoringPeriod int
	Teams                []Team
	FetchedAt            time.Time
}

// Team returns the team with the given id.
func (l League) Team(id int) (Team, bool) {
	for _, t := range l.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Team is one fantasy team with its current roster.
type Team struct {
	ID           int
	Abbreviation string
	Name         string
	Wins         int
	Losses       int
	Ties         int
	Roster       []RosterSlot
}

// RosterSlot is a rostered player and the lineup slot they occupy.
type RosterSlot struct {
	Player     Candidate
	LineupSlot string
}

// ProTeam is an NFL team as known to the provider.
type ProTeam struct {
	ID      int
	Abbrev  string
	ByeWeek int
}

// Transaction statuses and item types used by the activity summary.
const (
	TxStatusExecuted = "EXECUTED"
	TxItemAdd        = "ADD"
	TxItemDrop       = "DROP"
)

// Transaction types that count as league activity. Lineup moves (ROSTER),
// draft picks and FUTURE_ROSTER records are not activity.
const (
	TxTypeFreeAgent   = "FREEAGENT"
	TxTypeWaiver      = "WAIVER"
	TxTypeTradeAccept = "TRADE_ACCEPT"
)

// IsActivity reports whether the transaction is an executed pickup, waiver
// claim or accepted trade.
func (t Transaction) IsActivity() bool {
	if t.Status != TxStatusExecuted {
		return false
	}
	switch t.Type {
	case TxTypeFreeAgent, TxTypeWaiver, TxTypeTradeAccept:
		return true
	default:
		return false
	}
}

// Transaction is a league roster move.
type Transaction struct {
	ID          string
	Type        string // FREEAGENT, WAIVER, TRADE_ACCEPT, ...
	Status      string
	TeamID      int
	ProcessedAt time.Time
	Items       []TransactionItem
}

// TransactionItem is a single player movement inside a transaction.
type TransactionItem struct {
	PlayerID   string
	Type       string // ADD, DROP, ...
	FromTeamID int
	ToTeamID   int
}
