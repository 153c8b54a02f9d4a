package combat

import (
	"errors"
	"testing"
)

func TestLevelTable(t *testing.T) {
	cases := []struct {
		level     Level
		budget    int
		threshold int
	}{
		{Level1, 200, 0},
		{Level2, 250, 100},
		{Level5, 400, 400},
		{Level10, 650, 900},
	}
	for _, tc := range cases {
		if got := tc.level.PointBudget(); got != tc.budget {
			t.Fatalf("%s budget: got %d want %d", tc.level, got, tc.budget)
		}
		if got := tc.level.ExperienceThreshold(); got != tc.threshold {
			t.Fatalf("%s threshold: got %d want %d", tc.level, got, tc.threshold)
		}
	}
}

func TestLevelFor(t *testing.T) {
	cases := map[int]Level{
		-10:  Level1,
		0:    Level1,
		99:   Level1,
		100:  Level2,
		150:  Level2,
		899:  Level9,
		900:  Level10,
		5000: Level10,
	}
	for exp, want := range cases {
		if got := LevelFor(exp); got != want {
			t.Fatalf("LevelFor(%d) = %s, want %s", exp, got, want)
		}
	}
}

func TestLevelForIsMonotonic(t *testing.T) {
	prev := LevelFor(0)
	for exp := 1; exp <= 1500; exp++ {
		got := LevelFor(exp)
		if got < prev {
			t.Fatalf("LevelFor(%d) = %s dropped below %s", exp, got, prev)
		}
		prev = got
	}
}

func TestShouldLevelUp(t *testing.T) {
	if ShouldLevelUp(Level1, 0) {
		t.Fatal("level 1 with no experience should not level up")
	}
	if !ShouldLevelUp(Level1, 1) {
		t.Fatal("level 1 with experience above 0 should level up")
	}
	if ShouldLevelUp(Level2, 100) {
		t.Fatal("threshold itself is not enough")
	}
	if !ShouldLevelUp(Level2, 101) {
		t.Fatal("level 2 past 100 should level up")
	}
}

func TestValidateAllocation(t *testing.T) {
	valid := []BaseStats{
		{ID: "w", Health: 100, AttackPower: 50, Warrior: &WarriorStats{Stamina: 40, DefensePower: 30}},
		{ID: "s", Health: 100, AttackPower: 40, Sorcerer: &SorcererStats{Mana: 60, HealingPower: 50}},
		{ID: "edge", Health: 1, AttackPower: 100, Warrior: &WarriorStats{Stamina: 50, DefensePower: 50}},
	}
	for _, b := range valid {
		if err := ValidateAllocation(b, Level1); err != nil {
			t.Fatalf("%s: unexpected error %v", b.ID, err)
		}
	}

	over := []BaseStats{
		{ID: "w", Health: 100, AttackPower: 100, Warrior: &WarriorStats{Stamina: 90, DefensePower: 80}},
		{ID: "s", Health: 100, AttackPower: 80, Sorcerer: &SorcererStats{Mana: 100, HealingPower: 90}},
	}
	for _, b := range over {
		err := ValidateAllocation(b, Level1)
		if !errors.Is(err, ErrInvariantViolation) {
			t.Fatalf("%s: expected invariant violation, got %v", b.ID, err)
		}
		var be *BudgetError
		if !errors.As(err, &be) {
			t.Fatalf("%s: expected *BudgetError, got %T", b.ID, err)
		}
		if be.Total != 270 || be.Budget != 200 {
			t.Fatalf("%s: totals %d/%d", b.ID, be.Total, be.Budget)
		}
	}

	// the same allocation fits a higher tier
	if err := ValidateAllocation(over[0], Level2); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("270 points should not fit level 2, got %v", err)
	}
	if err := ValidateAllocation(over[0], Level3); err != nil {
		t.Fatalf("270 points should fit level 3, got %v", err)
	}
}

func TestValidateAllocationRejectsMalformed(t *testing.T) {
	both := BaseStats{ID: "x", Health: 10, Warrior: &WarriorStats{}, Sorcerer: &SorcererStats{}}
	if err := ValidateAllocation(both, Level1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	neither := BaseStats{ID: "y", Health: 10}
	if err := ValidateAllocation(neither, Level1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
