package escape

import (
	"fmt"
	"strings"
)

const asciiLimit = 128

// Mapping is one entry of a Table. Null mappings have no literal.
type Mapping struct {
	Trigger rune
	Literal rune
	Null    bool
}

// Decoded is the meaning of an escape sequence.
type Decoded struct {
	Literal rune
	Null    bool
}

// Table is an immutable escape table.
//
// It maps literal runes that need protection to one-rune triggers written after
// the escape rune, optionally designates a null trigger, and optionally allows
// raw CR and LF to be protected by prefixing them with the escape rune.
//
// A nil *Table is valid and means "no escaping": every lookup misses.
// Tables are safe for concurrent use.
type Table struct {
	escape        rune
	triggers      []rune // parallel to literals
	literals      []rune
	nullTrigger   rune
	hasNull       bool
	lineSeparator bool
	fingerprint   uint64

	// ASCII fast paths; -1 means no entry.
	encodeASCII [asciiLimit]int32
	decodeASCII [asciiLimit]int32
}

// EscapeRune returns the escape character. It returns false for a nil table.
func (t *Table) EscapeRune() (rune, bool) {
	if t == nil {
		return 0, false
	}

	return t.escape, true
}

// IsEscape reports whether r is the escape character.
func (t *Table) IsEscape(r rune) bool {
	return t != nil && r == t.escape
}

// NeedsEscape reports whether literal has an escape sequence in this table.
func (t *Table) NeedsEscape(literal rune) bool {
	_, ok := t.Encode(literal)
	return ok
}

// Encode returns the trigger that represents literal.
func (t *Table) Encode(literal rune) (rune, bool) {
	if t == nil {
		return 0, false
	}
	if literal >= 0 && literal < asciiLimit {
		tr := t.encodeASCII[literal]
		return tr, tr >= 0
	}
	for i, l := range t.literals {
		if l == literal {
			return t.triggers[i], true
		}
	}

	return 0, false
}

// Decode returns what the escape sequence "escape + trigger" stands for.
// CR and LF accepted through EscapesLineSeparator are not reported here.
func (t *Table) Decode(trigger rune) (Decoded, bool) {
	if t == nil {
		return Decoded{}, false
	}
	if t.hasNull && trigger == t.nullTrigger {
		return Decoded{Null: true}, true
	}
	if trigger >= 0 && trigger < asciiLimit {
		l := t.decodeASCII[trigger]
		return Decoded{Literal: l}, l >= 0
	}
	for i, tr := range t.triggers {
		if tr == trigger {
			return Decoded{Literal: t.literals[i]}, true
		}
	}

	return Decoded{}, false
}

// NullTrigger returns the trigger that represents a null field.
func (t *Table) NullTrigger() (rune, bool) {
	if t == nil || !t.hasNull {
		return 0, false
	}

	return t.nullTrigger, true
}

// EscapesLineSeparator reports whether raw CR and LF may be protected by
// writing the escape rune in front of them.
func (t *Table) EscapesLineSeparator() bool {
	return t != nil && t.lineSeparator
}

// Mappings returns a copy of the table entries, literal mappings first in
// registration order, followed by the null mapping if any.
func (t *Table) Mappings() []Mapping {
	if t == nil {
		return nil
	}

	out := make([]Mapping, 0, len(t.triggers)+1)
	for i := range t.triggers {
		out = append(out, Mapping{Trigger: t.triggers[i], Literal: t.literals[i]})
	}
	if t.hasNull {
		out = append(out, Mapping{Trigger: t.nullTrigger, Null: true})
	}

	return out
}

// Fingerprint returns an xxHash64 over the table definition. Equal tables
// have equal fingerprints.
func (t *Table) Fingerprint() uint64 {
	if t == nil {
		return 0
	}

	return t.fingerprint
}

// Equal reports whether t and other decode every input identically.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.fingerprint != other.fingerprint || t.escape != other.escape ||
		t.hasNull != other.hasNull || t.nullTrigger != other.nullTrigger ||
		t.lineSeparator != other.lineSeparator || len(t.triggers) != len(other.triggers) {
		return false
	}
	for i := range t.triggers {
		d, ok := other.Decode(t.triggers[i])
		if !ok || d.Null || d.Literal != t.literals[i] {
			return false
		}
	}

	return true
}

func (t *Table) String() string {
	if t == nil {
		return "escape.Table(none)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "escape.Table(%q", t.escape)
	for _, m := range t.Mappings() {
		if m.Null {
			fmt.Fprintf(&sb, " %q=null", m.Trigger)
		} else {
			fmt.Fprintf(&sb, " %q=%q", m.Trigger, m.Literal)
		}
	}
	if t.lineSeparator {
		sb.WriteString(" +eol")
	}
	sb.WriteByte(')')

	return sb.String()
}
