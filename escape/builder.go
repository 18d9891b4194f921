package escape

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/arloliu/dtext/errs"
	"github.com/arloliu/dtext/internal/collision"
	"github.com/arloliu/dtext/internal/hash"
)

type opKind uint8

const (
	opMapping opKind = iota + 1
	opNull
)

type builderOp struct {
	kind    opKind
	trigger rune
	literal rune
}

// Builder collects escape mappings and validates them in Build.
//
// Builder methods return the receiver so calls can be chained. Errors are
// reported by Build, never by the chained calls.
type Builder struct {
	escape        rune
	ops           []builderOp
	lineSeparator bool
	noSelfEscape  bool
}

// NewBuilder starts a table whose escape character is escape.
func NewBuilder(escape rune) *Builder {
	return &Builder{escape: escape}
}

// AddMapping registers "escape + trigger" as the representation of literal.
func (b *Builder) AddMapping(trigger, literal rune) *Builder {
	b.ops = append(b.ops, builderOp{kind: opMapping, trigger: trigger, literal: literal})
	return b
}

// AddNullMapping registers "escape + trigger" as the representation of a null field.
func (b *Builder) AddNullMapping(trigger rune) *Builder {
	b.ops = append(b.ops, builderOp{kind: opNull, trigger: trigger})
	return b
}

// AddLineSeparator lets raw CR and LF inside field content be protected by
// writing the escape character directly in front of them.
func (b *Builder) AddLineSeparator() *Builder {
	b.lineSeparator = true
	return b
}

// DisableSelfEscape stops Build from mapping the escape character to itself.
// Escape characters in field content are then written raw, and writers
// report every place where that makes the output ambiguous.
func (b *Builder) DisableSelfEscape() *Builder {
	b.noSelfEscape = true
	return b
}

// Build validates the collected mappings and returns the immutable table.
//
// Returns an error wrapping:
//   - errs.ErrInvalidEscapeRune if the escape character is a line break or not a valid rune
//   - errs.ErrTriggerConflict if a trigger would have two meanings, a trigger is CR/LF
//     while AddLineSeparator is set, or two different null triggers were added
//   - errs.ErrLiteralConflict if a literal would be reachable from two triggers
func (b *Builder) Build() (*Table, error) {
	if !validRune(b.escape) || b.escape == '\r' || b.escape == '\n' {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidEscapeRune, b.escape)
	}

	tracker := collision.NewTracker()
	if b.lineSeparator {
		if err := tracker.Reserve('\r', "escaped line separator"); err != nil {
			return nil, err
		}
		if err := tracker.Reserve('\n', "escaped line separator"); err != nil {
			return nil, err
		}
	}

	for _, op := range b.ops {
		if !validRune(op.trigger) {
			return nil, fmt.Errorf("%w: invalid trigger %q", errs.ErrTriggerConflict, op.trigger)
		}

		var err error
		switch op.kind {
		case opMapping:
			if !validRune(op.literal) {
				return nil, fmt.Errorf("%w: invalid literal %q", errs.ErrLiteralConflict, op.literal)
			}
			err = tracker.TrackMapping(op.trigger, op.literal)
		case opNull:
			err = tracker.TrackNull(op.trigger)
		}
		if err != nil {
			return nil, err
		}
	}

	if !b.noSelfEscape && !tracker.HasLiteral(b.escape) {
		if err := tracker.TrackMapping(b.escape, b.escape); err != nil {
			return nil, fmt.Errorf("cannot map escape character to itself: %w", err)
		}
	}

	return newTable(b.escape, tracker, b.lineSeparator), nil
}

// MustBuild is like Build but panics on error. It is intended for
// package-level table definitions.
func (b *Builder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}

	return t
}

func newTable(esc rune, tracker *collision.Tracker, lineSeparator bool) *Table {
	t := &Table{
		escape:        esc,
		lineSeparator: lineSeparator,
	}
	for i := range t.encodeASCII {
		t.encodeASCII[i] = -1
		t.decodeASCII[i] = -1
	}

	for _, trigger := range tracker.Triggers() {
		m, _ := tracker.Lookup(trigger)
		if m.Null {
			t.nullTrigger = trigger
			t.hasNull = true

			continue
		}

		t.triggers = append(t.triggers, trigger)
		t.literals = append(t.literals, m.Literal)
		if m.Literal >= 0 && m.Literal < asciiLimit {
			t.encodeASCII[m.Literal] = trigger
		}
		if trigger >= 0 && trigger < asciiLimit {
			t.decodeASCII[trigger] = m.Literal
		}
	}
	t.fingerprint = fingerprint(esc, tracker, lineSeparator)

	return t
}

// fingerprint hashes the escape rune, the flags and the (trigger, kind, literal)
// triples sorted by trigger, so registration order does not matter.
func fingerprint(esc rune, tracker *collision.Tracker, lineSeparator bool) uint64 {
	triggers := slices.Clone(tracker.Triggers())
	slices.Sort(triggers)

	seq := make([]rune, 0, 2+3*len(triggers))
	seq = append(seq, esc, boolRune(lineSeparator))
	for _, trigger := range triggers {
		m, _ := tracker.Lookup(trigger)
		if m.Null {
			seq = append(seq, trigger, 1, 0)
		} else {
			seq = append(seq, trigger, 0, m.Literal)
		}
	}

	return hash.Runes(seq...)
}

func validRune(r rune) bool {
	return utf8.ValidRune(r) && r != utf8.RuneError
}

func boolRune(b bool) rune {
	if b {
		return 1
	}

	return 0
}
