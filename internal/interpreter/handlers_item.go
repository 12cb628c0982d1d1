package interpreter

import "strings"

// handleSetItem applies "|-item|p2a: Rotom|Choice Scarf|[from] ability: Frisk"
// (a concrete reveal, from the holder itself or a revealing ability).
func handleSetItem(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	p.SetItem(fields[1], false)
	return nil
}

// handleEndItem applies "|-enditem|p2a: Rotom|Sitrus Berry" (consumed
// or knocked off). The item is recorded as no-longer-held, since a
// Pokemon cannot regain a removed item mid-battle (spec §3.2).
func handleEndItem(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	p.RemovedItem = fields[1]
	if reason, ok := annotation(fields, "from"); ok && strings.Contains(reason, "Knock Off") {
		p.KnockedOff = true
	}
	p.SetItem("", false)
	return nil
}

func handleImmune(ctx *Context, fields []string) error {
	// "|-immune|p2a: Gengar" — a type or ability immunity was shown.
	// No direct state mutation; this is a signal consumed by the
	// inference engine's Zoroark illusion detector over the same line
	// buffer, not by the interpreter itself.
	return nil
}

// handleAbility applies "|-ability|p2a: Landorus-Therian|Intimidate"
// (an ability activated and is thereby revealed).
func handleAbility(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	ability := fields[1]
	p.Ability = ability
	if p.OriginalAbility == "" {
		p.OriginalAbility = ability
	}
	delete(p.ImpossibleAbilities, ability)
	return nil
}
