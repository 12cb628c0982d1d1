// Package protocolfmt renders the search driver's chosen action and the
// battle's running state as outbound protocol strings (spec §6.2) and
// operator-facing log lines (SPEC_FULL.md supplement 3), grounded on
// _examples/original_source/fp/run_battle.py's format_decision and
// fp_mcp/markdown_formatters.py's battle-state renderer, collapsed from
// markdown into a single log line since there is no GUI consumer here.
package protocolfmt

import (
	"fmt"
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// switchPrefix matches model's own "switch <species>" action encoding
// (internal/model/battle.go LegalActions), so callers can pass a
// LegalActions() entry straight through to FormatAction.
const switchPrefix = "switch "

// Modifier marks which optional suffix a move choice carries (spec
// §6.2 "[ mega|ultra|dynamax|terastallize|zmove]").
type Modifier string

const (
	ModifierNone         Modifier = ""
	ModifierMega         Modifier = "mega"
	ModifierTerastallize Modifier = "terastallize"
)

// FormatAction renders decision (a LegalActions()-style identifier,
// either "switch <species>" or a bare move name) as the outbound
// command Pokemon Showdown expects, echoing battle.RQID. mega and tera
// request the corresponding modifier suffix when the active Pokemon is
// able to use it; ultra burst and dynamax are never requested
// explicitly, they are applied automatically exactly when the battle
// state allows them, matching format_decision's auto-detection.
func FormatAction(battle *model.Battle, decision string, mega, tera bool) (string, error) {
	if strings.HasPrefix(decision, switchPrefix) {
		return formatSwitch(battle, strings.TrimPrefix(decision, switchPrefix))
	}
	return formatMove(battle, decision, mega, tera)
}

func formatSwitch(battle *model.Battle, species string) (string, error) {
	idx := battle.User.FindBySpecies(species)
	if idx < 0 {
		return "", fmt.Errorf("protocolfmt: switch target %q is not on the user's team", species)
	}
	// Pokemon Showdown slot numbers are 1-based team-order positions,
	// not reserve-only positions.
	return fmt.Sprintf("/switch %d|%d", idx+1, battle.RQID), nil
}

func formatMove(battle *model.Battle, moveName string, mega, tera bool) (string, error) {
	active := battle.User.Active()
	if active == nil {
		return "", fmt.Errorf("protocolfmt: no active Pokemon to move with")
	}
	mv := active.MoveByName(moveName)
	if mv == nil {
		return "", fmt.Errorf("protocolfmt: %q is not a known move of %s", moveName, active.Species)
	}

	message := "/choose move " + moveName

	if active.CanMega && mega {
		message += " " + string(ModifierMega)
	} else if active.CanUltraBurst {
		message += " ultra"
	}

	// Dynamax is only ever offered on the last Pokemon standing, per
	// format_decision's "only dynamax on last pokemon".
	if active.CanDynamax && allReserveFainted(battle.User) {
		message += " dynamax"
	}

	if active.CanTerastallize && tera {
		message += " " + string(ModifierTerastallize)
	}

	if mv.CanZ {
		message += " zmove"
	}

	return fmt.Sprintf("%s|%d", message, battle.RQID), nil
}

func allReserveFainted(s *model.Side) bool {
	for _, p := range s.Reserve() {
		if p.HP > 0 {
			return false
		}
	}
	return true
}

// FormatTeamOrder renders a team-preview ordering as the "/team" command
// (spec §6.2), order being the 1-based permutation of team slots the
// bot wants to lead with, e.g. []int{3,1,2,4,5,6}.
func FormatTeamOrder(battle *model.Battle, order []int) string {
	var b strings.Builder
	for _, slot := range order {
		fmt.Fprintf(&b, "%d", slot)
	}
	return fmt.Sprintf("/team %s|%d", b.String(), battle.RQID)
}

// Forfeit renders the forfeit command (spec §6.2). It carries no rqid:
// Showdown accepts it unconditionally.
func Forfeit() string { return "/forfeit" }

// TimerOn renders the room command that keeps the per-turn clock
// running (spec §6.2).
func TimerOn() string { return "/timer on" }

// SaveReplay renders the room command requesting a replay be saved
// (spec §6.2).
func SaveReplay() string { return "/savereplay" }

// Leave renders the room command leaving the battle's chat room once
// it has concluded (spec §6.2).
func Leave(tag string) string { return "/leave " + tag }
