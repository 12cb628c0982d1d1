// Package battleerr classifies the error taxonomy from spec §7 so the
// search driver and interpreter can decide policy (log-and-continue,
// abort-this-pass, forfeit) without string-matching error messages.
package battleerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by the policy it demands.
type Kind int

const (
	// KindIgnored covers unknown tags/moves: log and continue.
	KindIgnored Kind = iota
	// KindAbortPass covers an inference pass that would empty a
	// guarded candidate set: keep the prior possibilities.
	KindAbortPass
	// KindSkipSwap covers an ambiguous Zoroark resolution: skip the
	// swap, keep the apparent species.
	KindSkipSwap
	// KindFatalBattle covers a corrupted battle: terminate it locally,
	// the process continues.
	KindFatalBattle
)

// classified wraps an error with its policy Kind.
type classified struct {
	kind Kind
	err  error
}

func (c *classified) Error() string { return c.err.Error() }
func (c *classified) Unwrap() error { return c.err }

// New returns an error tagged with kind, wrapping msg/args like fmt.Errorf.
func New(kind Kind, format string, args ...any) error {
	return &classified{kind: kind, err: fmt.Errorf(format, args...)}
}

// Wrap tags an existing error with kind, preserving it as the cause.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &classified{kind: kind, err: err}
}

// Classify extracts the Kind from err, defaulting to KindIgnored for
// plain errors that were never classified (conservative: never forfeit
// a battle because of an untagged error).
func Classify(err error) Kind {
	var c *classified
	if errors.As(err, &c) {
		return c.kind
	}
	return KindIgnored
}

// ErrRequestParse is fatal for the battle: the server's request JSON
// could not be parsed, so the bot's own side can no longer be trusted.
var ErrRequestParse = errors.New("request snapshot: parse failure")

// ErrDecisionDeadline signals the external agent surface's ~150s
// decision timeout was exceeded; the battle must be forfeited.
var ErrDecisionDeadline = errors.New("decision deadline exceeded")

// ErrAmbiguousInference signals a Zoroark resolution could not find
// exactly one Zoroark-family candidate in reserves.
var ErrAmbiguousInference = errors.New("ambiguous zoroark inference")

// ErrStaticTableMutation is fatal for the whole process: a read-only
// static data table was mutated after initialization.
var ErrStaticTableMutation = errors.New("static data table mutated")
