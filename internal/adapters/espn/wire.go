package espn

// Response shapes. Only the fields the service reads are declared. Numbers
// that may be missing are pointers so absence survives decoding.

type leagueResponse struct {
	ID              int            `json:"id"`
	SeasonID        int            `json:"seasonId"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	Status          leagueStatus   `json:"status"`
	Settings        leagueSettings `json:"settings"`
	Teams           []teamWire     `json:"teams"`
}

type leagueStatus struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	LatestScoringPeriod  int  `json:"latestScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type leagueSettings struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type teamWire struct {
	ID           int        `json:"id"`
	Abbreviation string     `json:"abbrev"`
	Name         string     `json:"name"`
	Location     string     `json:"location"`
	Nickname     string     `json:"nickname"`
	Record       recordWire `json:"record"`
	Roster       rosterWire `json:"roster"`
}

type recordWire struct {
	Overall struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
		Ties   int `json:"ties"`
	} `json:"overall"`
}

type rosterWire struct {
	Entries []rosterEntryWire `json:"entries"`
}

type rosterEntryWire struct {
	PlayerID        any             `json:"playerId"`
	LineupSlotID    int             `json:"lineupSlotId"`
	PlayerPoolEntry playerEntryWire `json:"playerPoolEntry"`
}

type playersResponse struct {
	Players []playerEntryWire `json:"players"`
}

type playerEntryWire struct {
	ID       any        `json:"id"`
	OnTeamID int        `json:"onTeamId"`
	Status   string     `json:"status"`
	Player   playerWire `json:"player"`
}

type playerWire struct {
	ID                any            `json:"id"`
	FullName          string         `json:"fullName"`
	DefaultPositionID int            `json:"defaultPositionId"`
	ProTeamID         int            `json:"proTeamId"`
	InjuryStatus      string         `json:"injuryStatus"`
	Ownership         *ownershipWire `json:"ownership"`
	Stats             []statWire     `json:"stats"`
}

type ownershipWire struct {
	PercentOwned   *float64 `json:"percentOwned"`
	PercentStarted *float64 `json:"percentStarted"`
}

type statWire struct {
	SeasonID        int      `json:"seasonId"`
	ScoringPeriodID int      `json:"scoringPeriodId"`
	StatSourceID    int      `json:"statSourceId"`
	StatSplitTypeID int      `json:"statSplitTypeId"`
	AppliedTotal    *float64 `json:"appliedTotal"`
	AppliedAverage  *float64 `json:"appliedAverage"`
}

type proTeamsResponse struct {
	Settings struct {
		ProTeams []proTeamWire `json:"proTeams"`
	} `json:"settings"`
}

type proTeamWire struct {
	ID      int    `json:"id"`
	Abbrev  string `json:"abbrev"`
	ByeWeek int    `json:"byeWeek"`
}

type transactionsResponse struct {
	Transactions []transactionWire `json:"transactions"`
}

type transactionWire struct {
	ID            any                   `json:"id"`
	Type          string                `json:"type"`
	Status        string                `json:"status"`
	TeamID        int                   `json:"teamId"`
	ProcessedDate any                   `json:"processedDate"` // epoch millis
	Items         []transactionItemWire `json:"items"`
}

type transactionItemWire struct {
	PlayerID   any    `json:"playerId"`
	Type       string `json:"type"`
	FromTeamID int    `json:"fromTeamId"`
	ToTeamID   int    `json:"toTeamId"`
}
