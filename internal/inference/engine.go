// Package inference implements the opponent-inference engine of spec
// §4.2: speed bounds, choice-scarf and Heavy-Duty Boots deduction,
// Hidden Power narrowing, Zoroark disguise resolution, and damage-roll
// reverse validation. It runs once per turn, over the exact line batch
// the interpreter just drained, grounded on
// _examples/original_source/fp/battle_modifier.py's check_* functions.
package inference

import (
	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/config"
	"github.com/l1jgo/battlecore/internal/dataset"
	"github.com/l1jgo/battlecore/internal/model"
	"github.com/l1jgo/battlecore/internal/rollout"
)

// Engine bundles every external collaborator the inference passes
// need (spec §6.4): a type chart, a damage-roll service, a battle
// serializer for that service, and the battle's own dataset registry
// for candidate-set filtering.
type Engine struct {
	TypeChart  rollout.TypeChart
	Damage     rollout.Engine
	Serializer rollout.Serializer
	Datasets   *dataset.Registry
	Cfg        config.InferenceConfig
	Log        *zap.Logger
}

// New constructs an Engine. Datasets may be nil if damage-roll
// filtering is not wired for this battle (e.g. unit tests of the
// other passes in isolation).
func New(typeChart rollout.TypeChart, damage rollout.Engine, serializer rollout.Serializer, datasets *dataset.Registry, cfg config.InferenceConfig, log *zap.Logger) *Engine {
	return &Engine{TypeChart: typeChart, Damage: damage, Serializer: serializer, Datasets: datasets, Cfg: cfg, Log: log}
}

// RunTurnPasses satisfies interpreter.InferenceRunner. Every pass is
// best-effort: a failure in one (e.g. the damage-roll service being
// unreachable) is logged and does not block the others, since an
// inference pass skipped is strictly safer than a battle the bot
// cannot continue reasoning about (spec §7).
func (e *Engine) RunTurnPasses(b *model.Battle, lines []string) error {
	events := parseEvents(lines)

	e.checkSpeedBounds(b, events)
	e.checkChoiceScarf(b, events)
	e.checkHeavyDutyBoots(b, events)
	e.checkHiddenPower(b, events)
	e.checkZoroark(b, events)
	if e.Damage != nil && e.Serializer != nil && e.Datasets != nil {
		if err := e.filterDamageRolls(b, events); err != nil {
			e.Log.Warn("damage-roll filtering pass failed", zap.Error(err))
		}
	}
	return nil
}
