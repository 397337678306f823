// Package resource implements the bounded numeric pools a character fights with:
// hit points (Health) and the resource that gates ability use (Mana).
//
// Pools are not safe for concurrent use; each is owned and mutated by one character.
package resource

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a pool operation receives a negative amount.
var ErrInvalidArgument = errors.New("invalid argument")

// Health kinds.
const (
	KindStandard = "standard"
	KindArmored  = "armored"
)

// Health is a character's hit point pool.
//
// Invariant: 0 <= Current() <= Max().
type Health interface {
	// TakeDamage lowers Current by the (possibly mitigated) amount, flooring at zero.
	// Returns the hit points actually removed.
	TakeDamage(amount int) (int, error)
	// Heal raises Current by amount, capped at Max. Returns the hit points actually restored.
	Heal(amount int) (int, error)
	// IsAlive reports whether Current > 0.
	IsAlive() bool
	Current() int
	Max() int
	Kind() string
}

// hitPoints holds the shared bookkeeping for every Health variant.
type hitPoints struct {
	current int
	max     int
}

func newHitPoints(maxHP int) (hitPoints, error) {
	if maxHP < 0 {
		return hitPoints{}, fmt.Errorf("max health %d: %w", maxHP, ErrInvalidArgument)
	}
	return hitPoints{current: maxHP, max: maxHP}, nil
}

func (h *hitPoints) Current() int  { return h.current }
func (h *hitPoints) Max() int      { return h.max }
func (h *hitPoints) IsAlive() bool { return h.current > 0 }

// Heal raises current by amount, capped at max.
//
// Postcondition: current <= max; returns the amount actually restored.
func (h *hitPoints) Heal(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("heal %d: %w", amount, ErrInvalidArgument)
	}
	before := h.current
	h.current += amount
	if h.current > h.max {
		h.current = h.max
	}
	return h.current - before, nil
}

// subtract lowers current by amount, flooring at zero.
func (h *hitPoints) subtract(amount int) int {
	before := h.current
	h.current -= amount
	if h.current < 0 {
		h.current = 0
	}
	return before - h.current
}

// StandardHealth takes damage at face value.
type StandardHealth struct {
	hitPoints
}

// NewStandardHealth returns a full StandardHealth pool.
//
// Precondition: maxHP >= 0.
// Postcondition: Current() == Max() == maxHP.
func NewStandardHealth(maxHP int) (*StandardHealth, error) {
	hp, err := newHitPoints(maxHP)
	if err != nil {
		return nil, err
	}
	return &StandardHealth{hitPoints: hp}, nil
}

// TakeDamage subtracts amount directly.
//
// Postcondition: Current() >= 0; Current() never increases.
func (s *StandardHealth) TakeDamage(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("damage %d: %w", amount, ErrInvalidArgument)
	}
	return s.subtract(amount), nil
}

// Kind returns KindStandard.
func (s *StandardHealth) Kind() string { return KindStandard }

// ArmoredHealth mitigates each hit by ReductionPercent before subtracting.
// A hit of at least Max() is overwhelming and bypasses the armor.
type ArmoredHealth struct {
	hitPoints
	reductionPercent int
}

// NewArmoredHealth returns a full ArmoredHealth pool.
//
// Precondition: maxHP >= 0; 0 <= reductionPercent <= 100.
func NewArmoredHealth(maxHP, reductionPercent int) (*ArmoredHealth, error) {
	if reductionPercent < 0 || reductionPercent > 100 {
		return nil, fmt.Errorf("armor reduction %d%% outside 0-100: %w", reductionPercent, ErrInvalidArgument)
	}
	hp, err := newHitPoints(maxHP)
	if err != nil {
		return nil, err
	}
	return &ArmoredHealth{hitPoints: hp, reductionPercent: reductionPercent}, nil
}

// Mitigate returns the damage that gets through the armor for a raw hit.
//
// Postcondition: 0 <= result <= amount for amount >= 0; result == amount when amount >= Max().
func (a *ArmoredHealth) Mitigate(amount int) int {
	if amount >= a.max {
		return amount
	}
	return amount * (100 - a.reductionPercent) / 100
}

// TakeDamage applies Mitigate, then subtracts.
//
// Postcondition: Current() >= 0; Current() never increases.
func (a *ArmoredHealth) TakeDamage(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("damage %d: %w", amount, ErrInvalidArgument)
	}
	return a.subtract(a.Mitigate(amount)), nil
}

// ReductionPercent returns the configured mitigation.
func (a *ArmoredHealth) ReductionPercent() int { return a.reductionPercent }

// Kind returns KindArmored.
func (a *ArmoredHealth) Kind() string { return KindArmored }
