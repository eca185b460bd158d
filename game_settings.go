package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	WhiteType      PlayerType `json:"-"`
	BlackType      PlayerType `json:"-"`
	WhiteStarts    bool       `json:"white_starts"`
	TournamentRule bool       `json:"tournament_rule"` // queen may not be the first placement
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		WhiteType:      PlayerHuman,
		BlackType:      PlayerAI,
		WhiteStarts:    true,
		TournamentRule: false,
	}
}
