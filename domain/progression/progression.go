package progression

const (
	// JobLevelStep is the number of shifts at one job needed per job level
	JobLevelStep = 15
	// GambleLevelStep is the number of gambles needed per gamble level
	GambleLevelStep = 8
	// SalaryPerLevel is added to both ends of the salary range for each job level above 1
	SalaryPerLevel = 100

	// BaseWinChance is the win chance in percent at gamble level 1
	BaseWinChance = 50
	// MaxWinChance caps the win chance in percent
	MaxWinChance = 60

	// AdvancedWorkThreshold is the total work count that unlocks doubled pay
	AdvancedWorkThreshold = 150
	// AdvancedGambleThreshold is the number of gamble wins that unlocks advanced gambling
	AdvancedGambleThreshold = 75
)

// SalaryRange is an inclusive pay range
type SalaryRange struct {
	Min int64
	Max int64
}

// Job describes a job that can be worked with !work <job>
type Job struct {
	Name       string
	BaseSalary SalaryRange
}

var jobs = map[string]Job{
	"fireman": {Name: "fireman", BaseSalary: SalaryRange{Min: 200, Max: 500}},
	"police":  {Name: "police", BaseSalary: SalaryRange{Min: 200, Max: 500}},
	"doctor":  {Name: "doctor", BaseSalary: SalaryRange{Min: 200, Max: 500}},
	"nurse":   {Name: "nurse", BaseSalary: SalaryRange{Min: 200, Max: 500}},
	"teacher": {Name: "teacher", BaseSalary: SalaryRange{Min: 200, Max: 500}},
	"chef":    {Name: "chef", BaseSalary: SalaryRange{Min: 200, Max: 500}},
}

// jobOrder keeps the display order stable
var jobOrder = []string{"fireman", "police", "doctor", "nurse", "teacher", "chef"}

// LookupJob returns the job with the given name
func LookupJob(name string) (Job, bool) {
	job, ok := jobs[name]
	return job, ok
}

// JobNames returns every job name in display order
func JobNames() []string {
	names := make([]string, len(jobOrder))
	copy(names, jobOrder)
	return names
}

// IsJobItem reports whether an item name is one that work can drop
func IsJobItem(item string) bool {
	_, ok := jobs[item]
	return ok
}

// JobLevel returns the level for a job worked count times
func JobLevel(count int64) int64 {
	if count < 0 {
		count = 0
	}
	return count/JobLevelStep + 1
}

// JobsToNextLevel returns how many more shifts are needed for the next job level
func JobsToNextLevel(count int64) int64 {
	return JobLevelStep - count%JobLevelStep
}

// Salary returns the pay range for a job at the given level
func (j Job) Salary(level int64) SalaryRange {
	bonus := SalaryPerLevel * (level - 1)
	return SalaryRange{
		Min: j.BaseSalary.Min + bonus,
		Max: j.BaseSalary.Max + bonus,
	}
}

// GambleLevel returns the gamble level after count gambles
func GambleLevel(count int64) int64 {
	if count < 0 {
		count = 0
	}
	return count/GambleLevelStep + 1
}

// GamblesToNextLevel returns how many more gambles are needed for the next gamble level
func GamblesToNextLevel(count int64) int64 {
	return GambleLevelStep - count%GambleLevelStep
}

// WinChance returns the win chance in percent for a gamble level
func WinChance(level int64) int64 {
	chance := BaseWinChance + (level - 1)
	if chance > MaxWinChance {
		return MaxWinChance
	}
	if chance < BaseWinChance {
		return BaseWinChance
	}
	return chance
}

// WinProbability is WinChance as a probability in [0,1]
func WinProbability(gambleCount int64) float64 {
	return float64(WinChance(GambleLevel(gambleCount))) / 100
}

// XPThreshold is the XP needed to go from level to level+1
func XPThreshold(level int64) int64 {
	return 5*level*level + 50*level + 100
}

// CumulativeXP is the total XP needed to reach level from zero
func CumulativeXP(level int64) int64 {
	var total int64
	for i := int64(0); i < level; i++ {
		total += XPThreshold(i)
	}
	return total
}

// LevelFromXP counts the thresholds fully consumed by xp
func LevelFromXP(xp int64) int64 {
	var level int64
	for xp >= XPThreshold(level) {
		xp -= XPThreshold(level)
		level++
	}
	return level
}

// LevelProgress returns the XP earned inside the current level and the size of the level
func LevelProgress(xp, level int64) (into int64, needed int64) {
	return xp - CumulativeXP(level), XPThreshold(level)
}
