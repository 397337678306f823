// Package config provides Viper-based configuration loading for skirmish.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CombatConfig holds the tunable rules of the combat core.
type CombatConfig struct {
	// DefaultAttackDamage is the base damage of Character.Attack.
	DefaultAttackDamage int `mapstructure:"default_attack_damage"`
	// LevelScaling is the bonus damage per caster level above 1.
	LevelScaling int `mapstructure:"level_scaling"`
	// RagePerHit is the rage gained by a RageEnergy pool on each damaging hit dealt or taken.
	RagePerHit int `mapstructure:"rage_per_hit"`
	// ArmorReductionPercent is the damage reduction used for armored health when an
	// archetype does not specify its own.
	ArmorReductionPercent int `mapstructure:"armor_reduction_percent"`
	// EnforceCooldowns turns ability cooldowns from metadata into a gate.
	EnforceCooldowns bool `mapstructure:"enforce_cooldowns"`
}

// ContentConfig locates the YAML and Lua content directories.
type ContentConfig struct {
	AbilitiesDir  string `mapstructure:"abilities_dir"`
	ArchetypesDir string `mapstructure:"archetypes_dir"`
	// ScriptsDir is optional; empty disables Lua damage hooks.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// ScriptInstructionLimit caps Lua opcodes per hook call; 0 uses the scripting default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// InventoryConfig holds settings for the inventory console.
type InventoryConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Combat    CombatConfig    `mapstructure:"combat"`
	Content   ContentConfig   `mapstructure:"content"`
	Inventory InventoryConfig `mapstructure:"inventory"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	if c.DefaultAttackDamage < 0 {
		errs = append(errs, fmt.Sprintf("combat.default_attack_damage must be >= 0, got %d", c.DefaultAttackDamage))
	}
	if c.LevelScaling < 0 {
		errs = append(errs, fmt.Sprintf("combat.level_scaling must be >= 0, got %d", c.LevelScaling))
	}
	if c.RagePerHit < 0 {
		errs = append(errs, fmt.Sprintf("combat.rage_per_hit must be >= 0, got %d", c.RagePerHit))
	}
	if c.ArmorReductionPercent < 0 || c.ArmorReductionPercent > 100 {
		errs = append(errs, fmt.Sprintf("combat.armor_reduction_percent must be 0-100, got %d", c.ArmorReductionPercent))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.AbilitiesDir == "" {
		errs = append(errs, "content.abilities_dir must not be empty")
	}
	if c.ArchetypesDir == "" {
		errs = append(errs, "content.archetypes_dir must not be empty")
	}
	if c.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.script_instruction_limit must be >= 0, got %d", c.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// Default returns the configuration produced by defaults alone, without a file.
//
// Postcondition: Returns a Config that passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: defaults failed validation: " + err.Error())
	}
	return cfg
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("combat.default_attack_damage", 5)
	v.SetDefault("combat.level_scaling", 1)
	v.SetDefault("combat.rage_per_hit", 10)
	v.SetDefault("combat.armor_reduction_percent", 25)
	v.SetDefault("combat.enforce_cooldowns", false)

	v.SetDefault("content.abilities_dir", "content/abilities")
	v.SetDefault("content.archetypes_dir", "content/archetypes")
	v.SetDefault("content.scripts_dir", "")
	v.SetDefault("content.script_instruction_limit", 0)

	v.SetDefault("inventory.currency_symbol", "$")
}
