// Package settings holds the generator options that select which entrance
// categories are shuffled and how strictly the result is checked.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Logic selects how much of the world must stay reachable.
type Logic string

const (
	LogicAllLocations Logic = "allLocations"
	LogicBeatable     Logic = "beatable"
	LogicNone         Logic = "none"
)

// Goal selects the win condition.
type Goal string

const (
	GoalGanon    Goal = "ganon"
	GoalMajora   Goal = "majora"
	GoalBoth     Goal = "both"
	GoalTriforce Goal = "triforce"
)

// ERMode selects whether an entrance category is shuffled and whether
// entrances must stay within their own game.
type ERMode string

const (
	ERNone    ERMode = "none"
	EROwnGame ERMode = "ownGame"
	ERFull    ERMode = "full"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid settings")

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DOORSHUFFLE_"

// Settings are the options the shuffler reads.
type Settings struct {
	Logic Logic `env:"LOGIC" json:"logic" envDefault:"allLocations"`
	Goal  Goal  `env:"GOAL" json:"goal" envDefault:"both"`

	ERRegions  bool   `env:"ER_REGIONS" json:"erRegions"`
	ERDungeons ERMode `env:"ER_DUNGEONS" json:"erDungeons" envDefault:"none"`
	ERBoss     ERMode `env:"ER_BOSS" json:"erBoss" envDefault:"none"`

	ERMinorDungeons  bool `env:"ER_MINOR_DUNGEONS" json:"erMinorDungeons"`
	ERGanonCastle    bool `env:"ER_GANON_CASTLE" json:"erGanonCastle"`
	ERGanonTower     bool `env:"ER_GANON_TOWER" json:"erGanonTower"`
	ERSpiderHouses   bool `env:"ER_SPIDER_HOUSES" json:"erSpiderHouses"`
	ERPirateFortress bool `env:"ER_PIRATE_FORTRESS" json:"erPirateFortress"`
	ERBeneathWell    bool `env:"ER_BENEATH_WELL" json:"erBeneathWell"`
	ERIkanaCastle    bool `env:"ER_IKANA_CASTLE" json:"erIkanaCastle"`
	ERSecretShrine   bool `env:"ER_SECRET_SHRINE" json:"erSecretShrine"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Logic:      LogicAllLocations,
		Goal:       GoalBoth,
		ERDungeons: ERNone,
		ERBoss:     ERNone,
	}
}

// FromEnv loads settings from DOORSHUFFLE_* environment variables.
func FromEnv() (Settings, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// FromMap loads settings from the given variables instead of the process
// environment. Keys carry the DOORSHUFFLE_ prefix.
func FromMap(vars map[string]string) (Settings, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func parse(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects unknown enum values.
func (s Settings) Validate() error {
	var errs []string
	switch s.Logic {
	case LogicAllLocations, LogicBeatable, LogicNone:
	default:
		errs = append(errs, fmt.Sprintf("unknown logic %q", s.Logic))
	}
	switch s.Goal {
	case GoalGanon, GoalMajora, GoalBoth, GoalTriforce:
	default:
		errs = append(errs, fmt.Sprintf("unknown goal %q", s.Goal))
	}
	modes := []struct {
		name string
		mode ERMode
	}{{"erDungeons", s.ERDungeons}, {"erBoss", s.ERBoss}}
	for _, m := range modes {
		switch m.mode {
		case ERNone, EROwnGame, ERFull:
		default:
			errs = append(errs, fmt.Sprintf("unknown %s mode %q", m.name, m.mode))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errs, "; "))
	}
	return nil
}

// RequiresGanon reports whether the goal requires defeating Ganon.
func (s Settings) RequiresGanon() bool {
	return s.Goal == GoalGanon || s.Goal == GoalBoth
}
