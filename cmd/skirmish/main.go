// Package main provides the duel simulator: two archetypes from the content catalog
// fight until one falls or the round limit is reached.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/catalog"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "content root holding abilities/ and archetypes/; empty = use config")
	scriptsDir := flag.String("scripts", "", "directory of Lua damage scripts; empty = use config")
	archA := flag.String("a", "warrior", "archetype ID of the first combatant")
	archB := flag.String("b", "mage", "archetype ID of the second combatant")
	maxRounds := flag.Int("max-rounds", 30, "round limit before the duel is declared a draw")
	seed := flag.Uint64("seed", 0, "dice seed for a reproducible duel; 0 = crypto randomness")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.AbilitiesDir = filepath.Join(*contentDir, "abilities")
		cfg.Content.ArchetypesDir = filepath.Join(*contentDir, "archetypes")
	}
	if *scriptsDir != "" {
		cfg.Content.ScriptsDir = *scriptsDir
	}
	if *maxRounds <= 0 {
		log.Fatalf("-max-rounds must be > 0, got %d", *maxRounds)
	}

	logger, err := observability.NewLogger(cfg.Logging, "skirmish")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = observability.Sync(logger) }()

	src := dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	roller := dice.NewLoggedRoller(src, logger)

	reg, err := catalog.LoadDirectory(cfg.Content.AbilitiesDir, cfg.Content.ArchetypesDir)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("abilities", len(reg.Abilities())),
		zap.Int("archetypes", len(reg.Archetypes())),
	)

	calcOpts := []combat.CalculatorOption{combat.WithRoller(roller)}
	if cfg.Content.ScriptsDir != "" {
		mgr := scripting.NewManager(roller, logger)
		if err := mgr.LoadDirectory(cfg.Content.ScriptsDir, cfg.Content.ScriptInstructionLimit); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		defer mgr.Close()
		calcOpts = append(calcOpts, combat.WithHook(scripting.NewDamageHook(mgr, logger)))
	}

	rules := &combat.Rules{
		Damage:              combat.NewDamageCalculator(cfg.Combat.LevelScaling, calcOpts...),
		Targets:             combat.NewTargetSelection(nil),
		DefaultAttackDamage: cfg.Combat.DefaultAttackDamage,
		EnforceCooldowns:    cfg.Combat.EnforceCooldowns,
		Logger:              logger,
	}
	factory := catalog.NewFactory(reg, cfg.Combat, rules)

	a, err := factory.Build(*archA, catalog.Overrides{Team: "red"})
	if err != nil {
		logger.Fatal("building first combatant", zap.Error(err))
	}
	bOverrides := catalog.Overrides{Team: "blue"}
	if *archA == *archB {
		bOverrides.Name = a.Name + " II"
	}
	b, err := factory.Build(*archB, bOverrides)
	if err != nil {
		logger.Fatal("building second combatant", zap.Error(err))
	}

	enc, err := combat.NewEncounter([]*combat.Character{a, b}, rules.Targets)
	if err != nil {
		logger.Fatal("creating encounter", zap.Error(err))
	}
	enc.RollInitiative(roller.Source())
	for _, c := range enc.Combatants() {
		fmt.Printf("%s (level %d, %d hp, %d %s) rolls %d initiative\n",
			c.Name, c.Level, c.Health().Current(), c.Mana().Current(), c.Mana().Kind(), enc.Initiative(c))
	}

	res, err := runDuel(enc, *maxRounds, os.Stdout, logger)
	if err != nil {
		logger.Fatal("running duel", zap.Error(err))
	}
	if res.Decided {
		fmt.Printf("\n%s wins after %d rounds.\n", res.Winners[0].Name, res.Rounds)
	} else {
		fmt.Printf("\nNo winner after %d rounds.\n", res.Rounds)
	}

	logger.Info("duel complete", zap.Duration("elapsed", time.Since(start)))
}
