package entity

// StatsRecord holds per-user aggregate counters, updated exactly once per
// concluded game. GamesPlayed always equals Wins + Losses + Draws.
type StatsRecord struct {
	GamesPlayed int `json:"games_played"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Draws       int `json:"draws"`
}
