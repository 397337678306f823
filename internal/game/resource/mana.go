package resource

import "fmt"

// Mana kinds.
const (
	KindArcane = "arcane"
	KindRage   = "rage"
)

// Mana is the pool an ability's cost is paid from.
//
// Invariant: 0 <= Current() <= Max().
type Mana interface {
	// Consume deducts amount and returns true iff amount <= Current.
	// Otherwise the pool is untouched and false is returned.
	Consume(amount int) (bool, error)
	// Regenerate raises Current by amount, capped at Max. Returns the amount actually gained.
	Regenerate(amount int) (int, error)
	Current() int
	Max() int
	Kind() string
}

// CombatFueled is implemented by pools that refill from landing or taking hits.
type CombatFueled interface {
	// OnCombatHit is called once per damaging hit dealt or received.
	OnCombatHit()
}

type pool struct {
	current int
	max     int
}

func newPool(maxResource, start int) (pool, error) {
	if maxResource < 0 {
		return pool{}, fmt.Errorf("max resource %d: %w", maxResource, ErrInvalidArgument)
	}
	return pool{current: start, max: maxResource}, nil
}

func (p *pool) Current() int { return p.current }
func (p *pool) Max() int     { return p.max }

// Consume deducts amount when affordable.
//
// Postcondition: on true, current decreased by exactly amount; on false or error, current is unchanged.
func (p *pool) Consume(amount int) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("consume %d: %w", amount, ErrInvalidArgument)
	}
	if amount > p.current {
		return false, nil
	}
	p.current -= amount
	return true, nil
}

// Regenerate raises current by amount, capped at max.
//
// Postcondition: current <= max.
func (p *pool) Regenerate(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("regenerate %d: %w", amount, ErrInvalidArgument)
	}
	before := p.current
	p.current += amount
	if p.current > p.max {
		p.current = p.max
	}
	return p.current - before, nil
}

// ArcaneMana starts full and refills only when a caller regenerates it.
type ArcaneMana struct {
	pool
}

// NewArcaneMana returns a full ArcaneMana pool.
//
// Precondition: maxResource >= 0.
func NewArcaneMana(maxResource int) (*ArcaneMana, error) {
	p, err := newPool(maxResource, maxResource)
	if err != nil {
		return nil, err
	}
	return &ArcaneMana{pool: p}, nil
}

// NewArcaneManaAt returns an ArcaneMana pool holding current out of maxResource.
//
// Precondition: 0 <= current <= maxResource.
func NewArcaneManaAt(current, maxResource int) (*ArcaneMana, error) {
	if current < 0 || current > maxResource {
		return nil, fmt.Errorf("current mana %d outside [0, %d]: %w", current, maxResource, ErrInvalidArgument)
	}
	p, err := newPool(maxResource, current)
	if err != nil {
		return nil, err
	}
	return &ArcaneMana{pool: p}, nil
}

// Kind returns KindArcane.
func (a *ArcaneMana) Kind() string { return KindArcane }

// RageEnergy starts empty and builds up as its owner trades blows.
type RageEnergy struct {
	pool
	perHit int
}

// NewRageEnergy returns an empty RageEnergy pool that gains perHit on every combat hit.
//
// Precondition: maxResource >= 0; perHit >= 0.
func NewRageEnergy(maxResource, perHit int) (*RageEnergy, error) {
	if perHit < 0 {
		return nil, fmt.Errorf("rage per hit %d: %w", perHit, ErrInvalidArgument)
	}
	p, err := newPool(maxResource, 0)
	if err != nil {
		return nil, err
	}
	return &RageEnergy{pool: p, perHit: perHit}, nil
}

// OnCombatHit regenerates the configured per-hit amount.
func (r *RageEnergy) OnCombatHit() {
	// perHit is validated non-negative at construction.
	_, _ = r.Regenerate(r.perHit)
}

// Kind returns KindRage.
func (r *RageEnergy) Kind() string { return KindRage }
