package combat

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/effect"
)

// Encounter schedules turns among a fixed set of characters.
// It is not safe for concurrent use.
//
// Invariant: turnIndex always indexes combatants; Round >= 1.
type Encounter struct {
	combatants []*Character
	initiative map[string]int
	turnIndex  int
	round      int
}

// NewEncounter creates an encounter over combatants in the given turn order and points
// targets (when non-nil) at it so area effects see the whole roster.
//
// Precondition: at least two combatants, none nil, IDs unique.
// Postcondition: Round() == 1 and CurrentTurn() is the first living combatant.
func NewEncounter(combatants []*Character, targets *TargetSelection) (*Encounter, error) {
	if len(combatants) < 2 {
		return nil, fmt.Errorf("encounter needs at least two combatants, got %d: %w", len(combatants), ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(combatants))
	for i, c := range combatants {
		if c == nil {
			return nil, fmt.Errorf("encounter combatant %d is nil: %w", i, ErrInvalidArgument)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("encounter combatant %q appears twice: %w", c.Name, ErrInvalidArgument)
		}
		seen[c.ID] = true
	}
	e := &Encounter{
		combatants: append([]*Character(nil), combatants...),
		initiative: make(map[string]int, len(combatants)),
		round:      1,
	}
	e.skipDead()
	if targets != nil {
		targets.SetRoster(e)
	}
	return e, nil
}

// Combatants returns every combatant, living or not, in turn order.
func (e *Encounter) Combatants() []*Character {
	out := make([]*Character, len(e.combatants))
	copy(out, e.combatants)
	return out
}

// Living returns the combatants still above 0 health, in turn order.
func (e *Encounter) Living() []*Character {
	var out []*Character
	for _, c := range e.combatants {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// Round returns the current round number, starting at 1.
func (e *Encounter) Round() int { return e.round }

// Initiative returns the last initiative rolled for c, or 0 if none was rolled.
func (e *Encounter) Initiative(c *Character) int {
	if c == nil {
		return 0
	}
	return e.initiative[c.ID]
}

// RollInitiative rolls d20 + Level for every combatant and reorders turns highest first.
// Ties keep their previous relative order. The turn pointer resets to the first living
// combatant.
//
// Precondition: src must be non-nil.
func (e *Encounter) RollInitiative(src dice.Source) {
	for _, c := range e.combatants {
		e.initiative[c.ID] = src.Intn(20) + 1 + c.Level
	}
	sort.SliceStable(e.combatants, func(i, j int) bool {
		return e.initiative[e.combatants[i].ID] > e.initiative[e.combatants[j].ID]
	})
	e.turnIndex = 0
	e.skipDead()
}

// CurrentTurn returns the combatant whose turn it is, or nil when nobody is alive.
func (e *Encounter) CurrentTurn() *Character {
	c := e.combatants[e.turnIndex]
	if !c.IsAlive() {
		return nil
	}
	return c
}

// EndTurn ends the current combatant's turn: its cooldowns and effects tick, then the
// turn passes to the next living combatant. Passing the end of the order starts a new
// round. The actor's expired effects are returned.
func (e *Encounter) EndTurn() []effect.Active {
	expired := e.combatants[e.turnIndex].Tick()
	if len(e.Living()) == 0 {
		return expired
	}
	for {
		e.turnIndex++
		if e.turnIndex >= len(e.combatants) {
			e.turnIndex = 0
			e.round++
		}
		if e.combatants[e.turnIndex].IsAlive() {
			return expired
		}
	}
}

// Over reports whether at most one side has living members.
func (e *Encounter) Over() bool {
	return len(e.sides()) <= 1
}

// Winner returns the living members of the last side standing. ok is false while more
// than one side remains or when everyone is down.
func (e *Encounter) Winner() (survivors []*Character, ok bool) {
	sides := e.sides()
	if len(sides) != 1 {
		return nil, false
	}
	for _, members := range sides {
		return members, true
	}
	return nil, false
}

// sides groups living combatants by team. A character with no team is its own side.
func (e *Encounter) sides() map[string][]*Character {
	out := make(map[string][]*Character)
	for _, c := range e.Living() {
		key := "team:" + c.Team
		if c.Team == "" {
			key = "solo:" + c.ID
		}
		out[key] = append(out[key], c)
	}
	return out
}

// skipDead moves the turn pointer forward to a living combatant without changing the round.
func (e *Encounter) skipDead() {
	for i := 0; i < len(e.combatants); i++ {
		idx := (e.turnIndex + i) % len(e.combatants)
		if e.combatants[idx].IsAlive() {
			e.turnIndex = idx
			return
		}
	}
}
