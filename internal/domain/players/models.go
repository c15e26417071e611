package players

import (
	"errors"
	"fmt"
	"strings"
)

// MinLevel is the level every new character starts at or above.
const MinLevel = 1

// ErrInvalidPlayer is returned when a candidate player breaks a model invariant.
var ErrInvalidPlayer = errors.New("invalid player")

// Player is the single persisted game character.
type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Profession string   `json:"profession"`
	Level      int      `json:"level"`
	HitPoints  int      `json:"hitPoints"`
	Equipment  []string `json:"equipment"`
}

// New builds a player from already-parsed fields. Equipment is copied.
func New(name, profession string, level, hitPoints int, equipment []string) Player {
	return Player{
		Name:       strings.TrimSpace(name),
		Profession: strings.TrimSpace(profession),
		Level:      level,
		HitPoints:  hitPoints,
		Equipment:  append([]string(nil), equipment...),
	}
}

// Clone returns a deep copy so callers never share the equipment backing array.
func (p Player) Clone() Player {
	p.Equipment = append([]string(nil), p.Equipment...)
	if p.Equipment == nil {
		p.Equipment = []string{}
	}
	return p
}

// ParseEquipment splits raw input on ',' or '|', trims every tag and drops empty ones.
func ParseEquipment(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '|'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if tag := strings.TrimSpace(f); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Validate checks the model invariants.
func Validate(p Player) error {
	if p.Level < MinLevel {
		return fmt.Errorf("%w: level must be at least %d", ErrInvalidPlayer, MinLevel)
	}
	if p.HitPoints < 0 {
		return fmt.Errorf("%w: hit points must not be negative", ErrInvalidPlayer)
	}
	for i, tag := range p.Equipment {
		if tag == "" || tag != strings.TrimSpace(tag) {
			return fmt.Errorf("%w: equipment entry %d must be a non-empty trimmed tag", ErrInvalidPlayer, i)
		}
	}
	return nil
}
