package search

import (
	"strings"

	"github.com/l1jgo/battlecore/internal/config"
	"github.com/l1jgo/battlecore/internal/model"
)

// ScheduleParams is the per-decision scheduling discipline of spec
// §4.3: how many scenarios to sample and how long each rollout worker
// gets, grounded on
// _examples/original_source/fp/search/main.py's
// search_time_num_battles_randombattles/_standard_battle.
type ScheduleParams struct {
	NumSamples      int
	TimePerSampleMs int
}

const timePressureThresholdSeconds = 60

// Schedule derives ScheduleParams for battle under cfg. Blitz-style
// formats (name ends in "blitz") always use the configured defaults
// unscaled, since their timer is too short for extra sampling to pay
// off (original: "timer is very short in blitz battles, so just use
// defaults").
func Schedule(battle *model.Battle, cfg config.SearchConfig) ScheduleParams {
	if strings.HasSuffix(battle.Format, "blitz") {
		return ScheduleParams{NumSamples: cfg.Parallelism, TimePerSampleMs: cfg.TimeMs}
	}
	if battle.BattleType == model.BattleTypeRandom {
		return scheduleRandomBattle(battle, cfg)
	}
	return scheduleStandardBattle(battle, cfg)
}

func scheduleRandomBattle(battle *model.Battle, cfg config.SearchConfig) ScheduleParams {
	inTimePressure := battle.TimeRemainingSeconds > 0 && battle.TimeRemainingSeconds <= timePressureThresholdSeconds

	revealed := len(battle.Opponent.Reserve())
	active := battle.Opponent.Active()
	if active != nil {
		revealed++
	}
	activeHasNoRevealedMoves := active != nil && active.HP > 0 && len(active.Moves) == 0

	if revealed <= 3 && activeHasNoRevealedMoves {
		multiplier := 4
		if inTimePressure {
			multiplier = 2
		}
		return ScheduleParams{
			NumSamples:      cfg.Parallelism * multiplier,
			TimePerSampleMs: cfg.TimeMs / 2,
		}
	}

	multiplier := 2
	if inTimePressure {
		multiplier = 1
	}
	return ScheduleParams{
		NumSamples:      cfg.Parallelism * multiplier,
		TimePerSampleMs: cfg.TimeMs,
	}
}

func scheduleStandardBattle(battle *model.Battle, cfg config.SearchConfig) ScheduleParams {
	inTimePressure := battle.TimeRemainingSeconds > 0 && battle.TimeRemainingSeconds <= timePressureThresholdSeconds
	active := battle.Opponent.Active()
	activeHasFewRevealedMoves := active != nil && len(active.Moves) < 3
	activeHasNoRevealedMoves := active != nil && active.HP > 0 && len(active.Moves) == 0

	if battle.TeamPreview || activeHasNoRevealedMoves || activeHasFewRevealedMoves {
		multiplier := 2
		if inTimePressure {
			multiplier = 1
		}
		return ScheduleParams{
			NumSamples:      cfg.Parallelism * multiplier,
			TimePerSampleMs: cfg.TimeMs,
		}
	}

	return ScheduleParams{NumSamples: cfg.Parallelism, TimePerSampleMs: cfg.TimeMs}
}
