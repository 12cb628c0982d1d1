// Package interpreter implements the protocol interpreter of spec
// §4.1: a dispatch table keyed by message tag, grounded on an
// internal/net/packet.Registry style (opcode→handler map,
// panic-recovered dispatch) and on
// _examples/original_source/fp/battle_modifier.py for per-tag
// semantics.
package interpreter

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/model"
)

// HandlerFunc mutates battle in response to one parsed protocol line.
// fields excludes the leading tag (fields[0] is the first argument).
type HandlerFunc func(ctx *Context, fields []string) error

// Context bundles the dependencies handlers need beyond the raw
// Battle pointer (species/move tables the interpreter only consults,
// never owns — spec §1 scopes those out as external collaborators).
type Context struct {
	Battle     *model.Battle
	Log        *zap.Logger
	Generation GenerationLookup
}

// GenerationLookup is the narrow slice of data.GenerationTable the
// interpreter needs, kept as an interface so tests don't need a real
// YAML fixture on disk.
type GenerationLookup interface {
	SleepCounterCap(generation string) int
}

// Dispatcher is a fixed tag→handler map (spec §4.1 "Dispatch table").
// Unknown tags are ignored after a debug-level log line (spec §7).
type Dispatcher struct {
	handlers map[string]HandlerFunc
	log      *zap.Logger
}

// NewDispatcher builds the dispatch table with every handler in this
// package registered under its protocol tag.
func NewDispatcher(log *zap.Logger) *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]HandlerFunc, 64), log: log}
	d.register("switch", handleSwitch)
	d.register("drag", handleDrag)
	d.register("faint", handleFaint)
	d.register("-heal", handleHealOrDamage)
	d.register("-damage", handleHealOrDamage)
	d.register("-sethp", handleSetHP)
	d.register("move", handleMove)
	d.register("-boost", handleBoost)
	d.register("-unboost", handleUnboost)
	d.register("-setboost", handleSetBoost)
	d.register("-clearboost", handleClearBoost)
	d.register("-clearnegativeboost", handleClearNegativeBoost)
	d.register("-clearallboost", handleClearAllBoost)
	d.register("-status", handleStatus)
	d.register("-curestatus", handleCureStatus)
	d.register("-cureteam", handleCureTeam)
	d.register("-weather", handleWeather)
	d.register("-fieldstart", handleFieldStart)
	d.register("-fieldend", handleFieldEnd)
	d.register("-sidestart", handleSideStart)
	d.register("-sideend", handleSideEnd)
	d.register("-swapsideconditions", handleSwapSideConditions)
	d.register("-item", handleSetItem)
	d.register("-enditem", handleEndItem)
	d.register("-immune", handleImmune)
	d.register("-ability", handleAbility)
	d.register("detailschange", handleDetailsChange)
	d.register("replace", handleReplace)
	d.register("-formechange", handleFormeChange)
	d.register("-transform", handleTransform)
	d.register("-mega", handleMega)
	d.register("-terastallize", handleTerastallize)
	d.register("-zpower", handleZPower)
	d.register("-singleturn", handleSingleTurn)
	d.register("-mustrecharge", handleMustRecharge)
	d.register("-start", handleStart)
	d.register("-end", handleEnd)
	d.register("-singlemove", handleSingleMove)
	d.register("-activate", handleActivate)
	d.register("-prepare", handlePrepare)
	d.register("-anim", handleAnim)
	d.register("-fail", handleFail)
	d.register("upkeep", handleUpkeep)
	d.register("cant", handleCant)
	d.register("turn", handleTurn)
	d.register("inactive", handleInactive)
	d.register("inactiveoff", handleInactiveOff)
	d.register("noinit", handleNoinit)
	return d
}

func (d *Dispatcher) register(tag string, fn HandlerFunc) {
	d.handlers[tag] = fn
}

// Dispatch looks up line's tag and invokes its handler, recovering
// from any panic so a single malformed line never crashes the battle
// (spec §7 "Unknown tag → log and ignore", a safeCall-style recovery).
func (d *Dispatcher) Dispatch(ctx *Context, line string) (err error) {
	tag, fields := parseLine(line)
	if tag == "" {
		return nil
	}
	fn, ok := d.handlers[tag]
	if !ok {
		d.log.Debug("unknown protocol tag", zap.String("tag", tag))
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("handler panic recovered", zap.String("tag", tag), zap.Any("panic", r))
			err = fmt.Errorf("handler panic for tag %s: %v", tag, r)
		}
	}()
	return fn(ctx, fields)
}

// parseLine splits "|tag|arg1|arg2|..." into (tag, args). Lines not
// starting with "|" (blank separators) return an empty tag.
func parseLine(line string) (string, []string) {
	if !strings.HasPrefix(line, "|") {
		return "", nil
	}
	parts := strings.Split(line[1:], "|")
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

// annotation extracts a trailing "[key] value" or "[key]" annotation
// from fields, e.g. "[from] ability: Intimidate" or "[silent]" (spec
// §6.1 "Trailing annotations").
func annotation(fields []string, key string) (string, bool) {
	prefix := "[" + key + "]"
	for _, f := range fields {
		if f == prefix {
			return "", true
		}
		if strings.HasPrefix(f, prefix+" ") {
			return strings.TrimSpace(strings.TrimPrefix(f, prefix)), true
		}
	}
	return "", false
}

// sidePokemon splits a "p2a: Zoroark" style identifier into (side tag,
// display name).
func sidePokemon(ident string) (model.SideTag, string) {
	if len(ident) < 2 {
		return "", ident
	}
	tag := model.SideTag(ident[:2])
	rest := ident
	if idx := strings.Index(ident, ": "); idx >= 0 {
		rest = ident[idx+2:]
	}
	return tag, rest
}
