package services

import (
	"errors"
	"fmt"
	"log"

	"character-arena/combat"
	"character-arena/models"
	"character-arena/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// CharacterInput is the stat allocation sent on create and level-up.
// Warriors send stamina and defense_power, sorcerers mana and healing_power.
type CharacterInput struct {
	Name         string `json:"name"`
	Class        string `json:"class"`
	Health       int    `json:"health"`
	AttackPower  int    `json:"attack_power"`
	Stamina      *int   `json:"stamina,omitempty"`
	DefensePower *int   `json:"defense_power,omitempty"`
	Mana         *int   `json:"mana,omitempty"`
	HealingPower *int   `json:"healing_power,omitempty"`
}

type CharacterFilter struct {
	Class string
	Name  string
}

// CharacterView is a character as shown to a given account.
type CharacterView struct {
	models.Character
	ClassLabel    string `json:"class_label"`
	IsOwner       bool   `json:"is_owner"`
	ShouldLevelUp bool   `json:"should_level_up"`
	PointBudget   int    `json:"point_budget"`
	UnspentPoints int    `json:"unspent_points"`
}

func NewCharacterView(c models.Character, accountID string) CharacterView {
	level := combat.Level(c.Level)
	budget := allocationLevel(c).PointBudget()
	unspent := budget - c.BaseStats().AllocatedPoints()
	if unspent < 0 {
		unspent = 0
	}
	return CharacterView{
		Character:     c,
		ClassLabel:    utils.ClassLabel(string(c.Class)),
		IsOwner:       accountID != "" && c.AccountID == accountID,
		ShouldLevelUp: combat.ShouldLevelUp(level, c.Experience),
		PointBudget:   budget,
		UnspentPoints: unspent,
	}
}

// allocationLevel is the level whose budget a character may spend: the
// level its experience has reached, or its stored level if that is higher.
func allocationLevel(c models.Character) combat.Level {
	level := combat.LevelFor(c.Experience)
	if stored := combat.Level(c.Level); stored > level {
		level = stored
	}
	return level
}

func NewCharacterViews(chars []models.Character, accountID string) []CharacterView {
	views := make([]CharacterView, 0, len(chars))
	for _, c := range chars {
		views = append(views, NewCharacterView(c, accountID))
	}
	return views
}

type CharacterService struct {
	DB *gorm.DB
}

func NewCharacterService(db *gorm.DB) *CharacterService {
	return &CharacterService{DB: db}
}

// toBaseStats checks the input shape and turns it into a combat record.
func (in CharacterInput) toBaseStats(class combat.Class) (combat.BaseStats, error) {
	b := combat.BaseStats{Health: in.Health, AttackPower: in.AttackPower}
	if in.Health <= 0 {
		return b, fmt.Errorf("%w: health must be greater than 0", combat.ErrInvalidArgument)
	}
	switch class {
	case combat.ClassWarrior:
		if in.Stamina == nil || in.DefensePower == nil {
			return b, fmt.Errorf("%w: warriors need stamina and defense_power", combat.ErrInvalidArgument)
		}
		if in.Mana != nil || in.HealingPower != nil {
			return b, fmt.Errorf("%w: warriors cannot have mana or healing_power", combat.ErrInvalidArgument)
		}
		b.Warrior = &combat.WarriorStats{Stamina: *in.Stamina, DefensePower: *in.DefensePower}
	case combat.ClassSorcerer:
		if in.Mana == nil || in.HealingPower == nil {
			return b, fmt.Errorf("%w: sorcerers need mana and healing_power", combat.ErrInvalidArgument)
		}
		if in.Stamina != nil || in.DefensePower != nil {
			return b, fmt.Errorf("%w: sorcerers cannot have stamina or defense_power", combat.ErrInvalidArgument)
		}
		b.Sorcerer = &combat.SorcererStats{Mana: *in.Mana, HealingPower: *in.HealingPower}
	}
	return b, b.Validate()
}

// Create stores a new level 1 character for accountID.
func (s *CharacterService) Create(accountID string, in CharacterInput) (*models.Character, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", combat.ErrInvalidArgument)
	}
	name, err := utils.NormalizeName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", combat.ErrInvalidArgument, err)
	}
	class, err := combat.ParseClass(in.Class)
	if err != nil {
		return nil, err
	}
	stats, err := in.toBaseStats(class)
	if err != nil {
		return nil, err
	}
	level := combat.LevelFor(0)
	if err := combat.ValidateAllocation(stats, level); err != nil {
		return nil, err
	}

	char := models.Character{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Name:        name,
		Slug:        utils.NameSlug(name),
		Health:      stats.Health,
		AttackPower: stats.AttackPower,
		Experience:  0,
		Level:       int(level),
	}
	char.SetResources(stats)

	if err := s.ensureNameFree(s.DB, char.Slug, ""); err != nil {
		return nil, err
	}
	if err := s.DB.Create(&char).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: character name already exists", ErrConflict)
		}
		return nil, fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}

	log.Printf("[Characters] Created %s %q (%s) for account %s", char.Class, char.Name, char.ID, accountID)
	return &char, nil
}

// LevelUp re-allocates the stats of an owned character within the budget
// of the level its experience has reached.
func (s *CharacterService) LevelUp(accountID, id string, in CharacterInput) (*models.Character, error) {
	var updated models.Character
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		char, err := s.get(tx, id)
		if err != nil {
			return err
		}
		if char.AccountID != accountID {
			return fmt.Errorf("%w: character %s belongs to another account", ErrForbidden, id)
		}
		if in.Class != "" {
			class, err := combat.ParseClass(in.Class)
			if err != nil {
				return err
			}
			if class != char.Class {
				return fmt.Errorf("%w: a %s cannot become a %s", combat.ErrInvalidArgument, char.Class, class)
			}
		}

		name := char.Name
		if in.Name != "" {
			if name, err = utils.NormalizeName(in.Name); err != nil {
				return fmt.Errorf("%w: %v", combat.ErrInvalidArgument, err)
			}
		}
		stats, err := in.toBaseStats(char.Class)
		if err != nil {
			return err
		}
		level := allocationLevel(*char)
		if err := combat.ValidateAllocation(stats, level); err != nil {
			return err
		}

		newSlug := utils.NameSlug(name)
		if newSlug != char.Slug {
			if err := s.ensureNameFree(tx, newSlug, char.ID); err != nil {
				return err
			}
		}

		char.Name = name
		char.Slug = newSlug
		char.Health = stats.Health
		char.AttackPower = stats.AttackPower
		char.Level = int(level)
		char.SetResources(stats)
		if err := tx.Save(char).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: character name already exists", ErrConflict)
			}
			return fmt.Errorf("%w: %w", combat.ErrPersistence, err)
		}
		updated = *char
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Characters] %q re-allocated at %s", updated.Name, combat.Level(updated.Level))
	return &updated, nil
}

func (s *CharacterService) ensureNameFree(db *gorm.DB, slug, exceptID string) error {
	q := db.Model(&models.Character{}).Where("slug = ?", slug)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: character name already exists", ErrConflict)
	}
	return nil
}

func (s *CharacterService) Get(id string) (*models.Character, error) {
	return s.get(s.DB, id)
}

func (s *CharacterService) get(db *gorm.DB, id string) (*models.Character, error) {
	var char models.Character
	if err := db.Where("id = ?", id).First(&char).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: character %s", combat.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}
	return &char, nil
}

// List returns characters ordered by name. Name matches on slug prefix.
func (s *CharacterService) List(filter CharacterFilter) ([]models.Character, error) {
	q := s.DB.Model(&models.Character{})
	if filter.Class != "" {
		class, err := combat.ParseClass(filter.Class)
		if err != nil {
			return nil, err
		}
		q = q.Where("class = ?", class)
	}
	if filter.Name != "" {
		q = q.Where("slug LIKE ?", utils.NameSlug(filter.Name)+"%")
	}
	var chars []models.Character
	if err := q.Order("name ASC").Find(&chars).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}
	return chars, nil
}

// Challengers are the characters accountID may send into a match.
func (s *CharacterService) Challengers(accountID string) ([]models.Character, error) {
	return s.pool(s.DB.Where("account_id = ?", accountID))
}

// Opponents are the characters accountID may fight against.
func (s *CharacterService) Opponents(accountID string) ([]models.Character, error) {
	return s.pool(s.DB.Where("account_id <> ?", accountID))
}

func (s *CharacterService) pool(q *gorm.DB) ([]models.Character, error) {
	var chars []models.Character
	if err := q.Order("name ASC").Find(&chars).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}
	return chars, nil
}

func baseStatsOf(chars []models.Character) []combat.BaseStats {
	out := make([]combat.BaseStats, 0, len(chars))
	for i := range chars {
		out = append(out, chars[i].BaseStats())
	}
	return out
}
