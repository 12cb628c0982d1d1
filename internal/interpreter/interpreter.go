package interpreter

import (
	"strings"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/model"
)

// InferenceRunner is the narrow hook the interpreter calls once a
// turn's lines have all been applied, letting the inference engine
// (speed bounds, choice-item/HDB narrowing, Hidden Power, Zoroark,
// damage-roll filtering — spec §4.2) run over the same batch of lines
// without this package importing it back (spec §9 "keep the
// interpreter and inference engine independently testable").
type InferenceRunner interface {
	RunTurnPasses(b *model.Battle, lines []string) error
}

// Interpreter owns the dispatch table and the per-battle line buffer
// contract of spec §4.1: Update(battle, message) buffers non-request
// lines, and upon seeing a "request" tag, drains the buffer and
// applies every handler in order before running the inference passes.
type Interpreter struct {
	dispatch   *Dispatcher
	log        *zap.Logger
	inference  InferenceRunner
	generation GenerationLookup
}

// New builds an Interpreter. inference may be nil, in which case
// battles are mutated but no opponent-set narrowing ever runs (useful
// for interpreter-only tests). generation may also be nil, in which
// case sleep-counter handling falls back to the gen9-style default.
func New(log *zap.Logger, inference InferenceRunner, generation GenerationLookup) *Interpreter {
	return &Interpreter{dispatch: NewDispatcher(log), log: log, inference: inference, generation: generation}
}

// Update feeds one raw server message (one or more "\n"-joined
// protocol lines) into battle. It returns actionRequired=true exactly
// when the message carried a "request" line, signaling a decision is
// now due (spec §4.1, §4.4 hands the request payload itself to the
// reconciler — this method only recognizes the tag to trigger Process).
func (ip *Interpreter) Update(battle *model.Battle, message string) (actionRequired bool, err error) {
	for _, line := range strings.Split(message, "\n") {
		if line == "" {
			continue
		}
		tag, _ := parseLine(line)
		if tag == "request" {
			actionRequired = true
			continue // the request payload itself is consumed by the reconciler, not buffered
		}
		battle.AppendLine(line)
	}
	if actionRequired {
		if perr := ip.Process(battle); perr != nil {
			return false, perr
		}
	}
	return actionRequired, nil
}

// Process drains battle's pending line buffer, applies every handler
// in order, and then runs the inference engine's turn-scoped passes
// over the same batch of lines (spec §4.1 "process(battle)").
func (ip *Interpreter) Process(battle *model.Battle) error {
	lines := battle.DrainLines()
	ctx := &Context{Battle: battle, Log: ip.log, Generation: ip.generation}
	for _, line := range lines {
		if err := ip.dispatch.Dispatch(ctx, line); err != nil {
			ip.log.Warn("dropping malformed protocol line", zap.String("line", line), zap.Error(err))
		}
	}
	if ip.inference != nil {
		return ip.inference.RunTurnPasses(battle, lines)
	}
	return nil
}
