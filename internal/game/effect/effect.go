// Package effect tracks the temporary modifiers that buffs and debuffs leave on a character.
package effect

import (
	"fmt"
	"sort"
)

// Permanent marks an effect that never expires on Tick.
const Permanent = -1

// Modifier is the stat delta an effect contributes while active.
// Positive values help the holder; debuffs use negative values.
type Modifier struct {
	// Power is added to damage the holder deals.
	Power int `yaml:"power"`
	// Defense is subtracted from damage the holder receives.
	Defense int `yaml:"defense"`
}

// IsZero reports whether m changes nothing.
func (m Modifier) IsZero() bool { return m.Power == 0 && m.Defense == 0 }

// Key identifies one applied effect: the ability that produced it and the character holding it.
type Key struct {
	Ability string
	Target  string
}

// String returns "ability@target".
func (k Key) String() string { return k.Ability + "@" + k.Target }

// Active is one effect currently applied to a character.
type Active struct {
	Key         Key
	Description string
	Modifier    Modifier
	// Remaining is turns left; Permanent (-1) never expires.
	Remaining int
}

// Set holds all effects currently applied to one character.
// It is not safe for concurrent use; the caller must serialise access.
//
// Each key holds a stack of entries. Only the top entry is observable; the ones below
// are the states a refresh replaced, restored by Remove.
type Set struct {
	effects map[Key][]*slot
}

type slot struct {
	Active
	// held exempts the entry from the next Tick.
	held bool
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{effects: make(map[Key][]*slot)}
}

// Apply records a as active. Re-applying an existing key replaces its modifier and
// refreshes Remaining to the longer of the two durations; effects never stack. The
// replaced state is kept so that Remove undoes exactly this Apply.
//
// Precondition: a.Remaining > 0 or a.Remaining == Permanent.
// Postcondition: Has(a.Key) is true.
func (s *Set) Apply(a Active) error {
	if a.Remaining == 0 || a.Remaining < Permanent {
		return fmt.Errorf("effect %s: duration must be positive or permanent, got %d", a.Key, a.Remaining)
	}
	next := &slot{Active: a}
	if stack := s.effects[a.Key]; len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Remaining == Permanent || (a.Remaining != Permanent && top.Remaining > a.Remaining) {
			next.Remaining = top.Remaining
		}
	}
	s.effects[a.Key] = append(s.effects[a.Key], next)
	return nil
}

// Hold exempts the current entry for k from the next Tick. Effects a character puts on
// itself are held so the tick closing that same turn does not count against them.
// It reports whether k is active.
func (s *Set) Hold(k Key) bool {
	stack := s.effects[k]
	if len(stack) == 0 {
		return false
	}
	stack[len(stack)-1].held = true
	return true
}

// Remove undoes the most recent Apply for k: a refreshed effect reverts to the state
// before the refresh, otherwise the effect is deleted. It reports whether k was active.
//
// Postcondition: Power, Defense and Get(k) equal their values before the undone Apply.
func (s *Set) Remove(k Key) bool {
	stack := s.effects[k]
	if len(stack) == 0 {
		return false
	}
	stack = stack[:len(stack)-1]
	if len(stack) == 0 {
		delete(s.effects, k)
	} else {
		s.effects[k] = stack
	}
	return true
}

// Has reports whether k is active.
func (s *Set) Has(k Key) bool {
	return len(s.effects[k]) > 0
}

// Get returns a copy of the effect with key k.
func (s *Set) Get(k Key) (Active, bool) {
	stack := s.effects[k]
	if len(stack) == 0 {
		return Active{}, false
	}
	return stack[len(stack)-1].Active, true
}

// Len returns the number of active effects.
func (s *Set) Len() int { return len(s.effects) }

// Tick advances every timed effect by one turn and removes those that reach zero.
// Permanent and held entries are not counted down; a held entry is released.
//
// Postcondition: for every returned effect, Has(effect.Key) is false.
func (s *Set) Tick() []Active {
	var expired []Active
	for k, stack := range s.effects {
		last := stack[len(stack)-1].Active
		kept := stack[:0]
		for _, e := range stack {
			switch {
			case e.held:
				e.held = false
			case e.Remaining != Permanent:
				e.Remaining--
			}
			if e.Remaining == Permanent || e.Remaining > 0 {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			last.Remaining = 0
			expired = append(expired, last)
			delete(s.effects, k)
			continue
		}
		s.effects[k] = kept
	}
	sortActive(expired)
	return expired
}

// All returns a snapshot of the active effects ordered by key.
func (s *Set) All() []Active {
	out := make([]Active, 0, len(s.effects))
	for _, stack := range s.effects {
		out = append(out, stack[len(stack)-1].Active)
	}
	sortActive(out)
	return out
}

// Power returns the sum of all active Power modifiers.
func (s *Set) Power() int {
	total := 0
	for _, stack := range s.effects {
		total += stack[len(stack)-1].Modifier.Power
	}
	return total
}

// Defense returns the sum of all active Defense modifiers.
func (s *Set) Defense() int {
	total := 0
	for _, stack := range s.effects {
		total += stack[len(stack)-1].Modifier.Defense
	}
	return total
}

func sortActive(as []Active) {
	sort.Slice(as, func(i, j int) bool {
		if as[i].Key.Ability != as[j].Key.Ability {
			return as[i].Key.Ability < as[j].Key.Ability
		}
		return as[i].Key.Target < as[j].Key.Target
	})
}
