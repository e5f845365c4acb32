package entities

import "guildbot/domain/progression"

// EconomyStats are the per-user counters that drive job and gamble levels
type EconomyStats struct {
	DiscordID   int64            `db:"discord_id"`
	WorkCount   int64            `db:"work_count"`
	GambleCount int64            `db:"gamble_count"`
	GambleWins  int64            `db:"gamble_wins"`
	JobCounts   map[string]int64 `db:"-"`
}

// JobCount returns how many times the user worked a job
func (s *EconomyStats) JobCount(job string) int64 {
	if s.JobCounts == nil {
		return 0
	}
	return s.JobCounts[job]
}

// JobLevel returns the user's level at a job
func (s *EconomyStats) JobLevel(job string) int64 {
	return progression.JobLevel(s.JobCount(job))
}

// GambleLevel returns the user's gamble level
func (s *EconomyStats) GambleLevel() int64 {
	return progression.GambleLevel(s.GambleCount)
}

// HasAdvancedWork reports whether doubled pay is unlocked
func (s *EconomyStats) HasAdvancedWork() bool {
	return s.WorkCount >= progression.AdvancedWorkThreshold
}

// HasAdvancedGamble reports whether advanced gambling is unlocked
func (s *EconomyStats) HasAdvancedGamble() bool {
	return s.GambleWins >= progression.AdvancedGambleThreshold
}
