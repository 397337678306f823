package combat

import "fmt"

// Mode is a targeting tag selecting which characters are eligible recipients of an effect.
type Mode string

const (
	// ModeSelf affects only the caster.
	ModeSelf Mode = "self"
	// ModeSingle affects the chosen target when it is a live character other than the caster.
	ModeSingle Mode = "single"
	// ModeArea affects every live roster member outside the caster's team.
	ModeArea Mode = "area"
	// ModeAlly affects the chosen target when it is a live teammate other than the caster.
	ModeAlly Mode = "ally"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeSelf, ModeSingle, ModeArea, ModeAlly:
		return true
	default:
		return false
	}
}

// Roster supplies the characters taking part in a fight.
type Roster interface {
	Combatants() []*Character
}

// TargetSelection resolves the set of legal targets for an activation. It is a shared
// service: one instance typically serves every ability in an encounter.
type TargetSelection struct {
	roster Roster
}

// NewTargetSelection creates a TargetSelection over roster. A nil roster is allowed;
// area effects then fall back to the chosen target alone.
func NewTargetSelection(roster Roster) *TargetSelection {
	return &TargetSelection{roster: roster}
}

// SetRoster replaces the roster consulted for area effects.
func (ts *TargetSelection) SetRoster(r Roster) { ts.roster = r }

// Select resolves targets using a's own mode.
func (ts *TargetSelection) Select(caster, primary *Character, a Ability) ([]*Character, error) {
	return ts.SelectMode(caster, primary, a, a.Mode())
}

// SelectMode resolves targets for an explicit mode.
//
// Precondition: caster must be non-nil.
// Postcondition: every returned character is alive; the caster is returned only for
// ModeSelf. An empty result is valid and means there is nothing to affect.
func (ts *TargetSelection) SelectMode(caster, primary *Character, a Ability, mode Mode) ([]*Character, error) {
	if caster == nil {
		return nil, fmt.Errorf("select targets: caster must not be nil: %w", ErrInvalidArgument)
	}
	switch mode {
	case ModeSelf:
		if !caster.IsAlive() {
			return nil, nil
		}
		return []*Character{caster}, nil
	case ModeSingle:
		if eligible(caster, primary) {
			return []*Character{primary}, nil
		}
		return nil, nil
	case ModeAlly:
		if eligible(caster, primary) && caster.Team != "" && primary.Team == caster.Team {
			return []*Character{primary}, nil
		}
		return nil, nil
	case ModeArea:
		if ts.roster == nil {
			if eligible(caster, primary) {
				return []*Character{primary}, nil
			}
			return nil, nil
		}
		var out []*Character
		for _, c := range ts.roster.Combatants() {
			if !eligible(caster, c) {
				continue
			}
			if caster.Team != "" && c.Team == caster.Team {
				continue
			}
			out = append(out, c)
		}
		return out, nil
	default:
		name := ""
		if a != nil {
			name = a.Name()
		}
		return nil, fmt.Errorf("select targets for %q: unknown mode %q: %w", name, mode, ErrInvalidArgument)
	}
}

// eligible reports whether c is a live character other than caster.
func eligible(caster, c *Character) bool {
	return c != nil && c.ID != caster.ID && c.IsAlive()
}
