package combat

import "fmt"

// Level is a character tier. Levels are ordered; Level1 is the lowest.
type Level int

const (
	Level1 Level = iota + 1
	Level2
	Level3
	Level4
	Level5
	Level6
	Level7
	Level8
	Level9
	Level10
)

const (
	MinLevel = Level1
	MaxLevel = Level10
)

// basePointBudget is the allocation budget of Level1; each tier adds pointsPerLevel.
const (
	basePointBudget    = 200
	pointsPerLevel     = 50
	experiencePerLevel = 100
)

func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// PointBudget is the maximum attack power plus resource pair a character
// of this level may allocate.
func (l Level) PointBudget() int {
	if !l.Valid() {
		l = MinLevel
	}
	return basePointBudget + pointsPerLevel*int(l-1)
}

// ExperienceThreshold is the experience at which this level is reached.
func (l Level) ExperienceThreshold() int {
	if !l.Valid() {
		l = MinLevel
	}
	return experiencePerLevel * int(l-1)
}

func (l Level) String() string {
	return fmt.Sprintf("LEVEL_%d", int(l))
}

// LevelFor returns the highest level whose experience threshold is <= experience.
func LevelFor(experience int) Level {
	for l := MaxLevel; l > MinLevel; l-- {
		if l.ExperienceThreshold() <= experience {
			return l
		}
	}
	return MinLevel
}

// ShouldLevelUp reports whether experience has passed the level's threshold.
func ShouldLevelUp(level Level, experience int) bool {
	return experience > level.ExperienceThreshold()
}

// BudgetError reports a stat allocation above the level budget.
type BudgetError struct {
	Level  Level
	Total  int
	Budget int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("%s: allocated %d points, %s allows %d", ErrInvariantViolation, e.Total, e.Level, e.Budget)
}

func (e *BudgetError) Unwrap() error { return ErrInvariantViolation }

// ValidateAllocation checks attack power plus the class resource pair
// against the point budget of level. Health is not counted.
func ValidateAllocation(stats BaseStats, level Level) error {
	if err := stats.Validate(); err != nil {
		return err
	}
	total := stats.AllocatedPoints()
	if budget := level.PointBudget(); total > budget {
		return &BudgetError{Level: level, Total: total, Budget: budget}
	}
	return nil
}
