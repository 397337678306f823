package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/effect"
)

// duelResult summarizes a finished duel.
type duelResult struct {
	Rounds  int
	Winners []*combat.Character
	// Decided is false when the round limit ran out with both sides standing.
	Decided bool
}

// chooseAction picks the first ability actor can use to any effect against opponent.
// It returns nil when the default attack is the best option.
//
// Ally abilities have no recipient in a duel. Buffs and debuffs already in force on
// their recipient are skipped so their cost is not wasted on a refresh.
func chooseAction(actor, opponent *combat.Character) combat.Ability {
	for _, a := range actor.Abilities() {
		if !actor.Ready(a) {
			continue
		}
		switch a.Mode() {
		case combat.ModeAlly:
			continue
		case combat.ModeSelf:
			if isStatus(a) && actor.Effects().Has(effect.Key{Ability: a.Name(), Target: actor.ID}) {
				continue
			}
		default:
			if isStatus(a) && opponent.Effects().Has(effect.Key{Ability: a.Name(), Target: opponent.ID}) {
				continue
			}
		}
		return a
	}
	return nil
}

func isStatus(a combat.Ability) bool {
	return a.Kind() == combat.KindBuff || a.Kind() == combat.KindDebuff
}

// opponentOf returns the first living combatant on a different side than actor.
func opponentOf(enc *combat.Encounter, actor *combat.Character) *combat.Character {
	for _, c := range enc.Living() {
		if c.ID == actor.ID {
			continue
		}
		if actor.Team == "" || c.Team != actor.Team {
			return c
		}
	}
	return nil
}

// runDuel plays enc to completion or until maxRounds rounds have been started,
// narrating every action to out.
//
// Precondition: maxRounds > 0; initiative has already been rolled.
func runDuel(enc *combat.Encounter, maxRounds int, out io.Writer, logger *zap.Logger) (duelResult, error) {
	round := 0
	for !enc.Over() && enc.Round() <= maxRounds {
		if enc.Round() != round {
			round = enc.Round()
			fmt.Fprintf(out, "\n-- Round %d --\n", round)
		}
		actor := enc.CurrentTurn()
		if actor == nil {
			break
		}
		target := opponentOf(enc, actor)
		if target == nil {
			break
		}

		var (
			outcome combat.Outcome
			err     error
		)
		if a := chooseAction(actor, target); a != nil {
			outcome, err = actor.UseAbility(a.Name(), target)
		} else {
			outcome, err = actor.Attack(target)
		}
		if err != nil {
			return duelResult{}, fmt.Errorf("round %d, %s: %w", round, actor.Name, err)
		}
		fmt.Fprintln(out, outcome.String())

		for _, e := range enc.EndTurn() {
			fmt.Fprintf(out, "%s wears off %s.\n", e.Key.Ability, actor.Name)
		}
	}

	winners, ok := enc.Winner()
	logger.Info("duel finished",
		zap.Int("rounds", round),
		zap.Bool("decided", ok),
		zap.Int("survivors", len(winners)),
	)
	return duelResult{Rounds: round, Winners: winners, Decided: ok}, nil
}
