package combat

import (
	"errors"

	"github.com/cory-johannsen/skirmish/internal/game/resource"
)

// Activation failures. All are recoverable: the caster, its resources and every target
// are left exactly as they were before the failed call.
var (
	// ErrInsufficientResource is returned when the caster cannot pay an ability's cost.
	ErrInsufficientResource = errors.New("insufficient resource")
	// ErrAbilityNotFound is returned by UseAbility for a name the character does not own.
	ErrAbilityNotFound = errors.New("ability not found")
	// ErrInvalidArgument is returned for negative amounts and malformed definitions.
	ErrInvalidArgument = resource.ErrInvalidArgument
	// ErrOnCooldown is returned when cooldowns are enforced and the ability is still recovering.
	ErrOnCooldown = errors.New("ability on cooldown")
	// ErrCasterDefeated is returned when a character at 0 health tries to act.
	ErrCasterDefeated = errors.New("caster is defeated")
)
