package protocolfmt

import (
	"fmt"
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// Summarize renders the running battle state as a single log line
// (SPEC_FULL.md supplement 3), grounded on
// _examples/original_source/fp_mcp/markdown_formatters.py's
// format_battle_state_md section-by-section layout, but flattened:
// there is no markdown/GUI consumer here, only an operator's log
// stream, so headings become "|"-delimited segments instead of
// multi-line sections.
func Summarize(battle *model.Battle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn %d", battle.Turn)

	b.WriteString(" | you: ")
	b.WriteString(summarizeSide(battle.User, false))

	b.WriteString(" | opponent: ")
	b.WriteString(summarizeSide(battle.Opponent, true))

	if field := summarizeField(battle); field != "" {
		b.WriteString(" | field: ")
		b.WriteString(field)
	}

	return b.String()
}

func summarizeSide(s *model.Side, hideUnknowns bool) string {
	active := s.Active()
	if active == nil {
		return "no active pokemon"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s", active.Species)
	if pct := hpPercent(active); active.MaxHP > 0 {
		fmt.Fprintf(&b, " %d%%hp", pct)
	}
	if active.Status != model.StatusNone {
		fmt.Fprintf(&b, " (%s)", active.Status)
	}
	if len(active.Types) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(active.Types, "/"))
	}
	if active.Ability != "" {
		fmt.Fprintf(&b, " ability=%s", active.Ability)
	}
	if active.Item != "" && !(hideUnknowns && active.Item == model.ItemUnknown) {
		fmt.Fprintf(&b, " item=%s", active.Item)
	}
	if boosts := summarizeBoosts(active); boosts != "" {
		fmt.Fprintf(&b, " boosts={%s}", boosts)
	}
	if moves := summarizeMoves(active, hideUnknowns); moves != "" {
		fmt.Fprintf(&b, " moves=[%s]", moves)
	}

	reserves := s.AliveReserve()
	if len(reserves) > 0 {
		names := make([]string, len(reserves))
		for i, p := range reserves {
			names[i] = fmt.Sprintf("%s %d%%", p.Species, hpPercent(p))
		}
		fmt.Fprintf(&b, " reserves=[%s]", strings.Join(names, ", "))
	}

	return b.String()
}

func hpPercent(p *model.Pokemon) int {
	if p.MaxHP <= 0 {
		return 0
	}
	return int(p.HPPercent())
}

func summarizeBoosts(p *model.Pokemon) string {
	var parts []string
	for _, stat := range []model.Stat{model.StatAtk, model.StatDef, model.StatSpA, model.StatSpD, model.StatSpe, model.StatAccuracy, model.StatEvasion} {
		if v := p.Boosts[stat]; v != 0 {
			parts = append(parts, fmt.Sprintf("%s:%+d", stat, v))
		}
	}
	return strings.Join(parts, ", ")
}

func summarizeMoves(p *model.Pokemon, hideUnknowns bool) string {
	var parts []string
	for _, m := range p.Moves {
		if hideUnknowns && m.Name == "" {
			continue
		}
		entry := m.Name
		if m.MaxPP > 0 {
			entry += fmt.Sprintf(" %d/%d", m.PP, m.MaxPP)
		}
		if m.Disabled {
			entry += " disabled"
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", ")
}

func summarizeField(battle *model.Battle) string {
	var parts []string
	if battle.Weather != nil {
		parts = append(parts, fmt.Sprintf("%s(%d)", battle.Weather.Name, battle.Weather.TurnsRemaining))
	}
	if battle.Field != nil {
		parts = append(parts, fmt.Sprintf("%s(%d)", battle.Field.Name, battle.Field.TurnsRemaining))
	}
	if battle.TrickRoom {
		parts = append(parts, fmt.Sprintf("trickroom(%d)", battle.TrickRoomTurns))
	}
	return strings.Join(parts, ", ")
}
