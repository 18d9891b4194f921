package collision

import (
	"fmt"

	"github.com/arloliu/dtext/errs"
)

// Meaning is what an escape trigger decodes to: a literal rune, or the null marker.
type Meaning struct {
	Literal rune
	Null    bool
}

func (m Meaning) String() string {
	if m.Null {
		return "<null>"
	}

	return fmt.Sprintf("%q", m.Literal)
}

// Tracker records trigger registrations in order and rejects any registration
// that would make the trigger/literal relation ambiguous.
//
// Registering the exact same pair twice is accepted and ignored.
type Tracker struct {
	byTrigger map[rune]Meaning // trigger → meaning
	byLiteral map[rune]rune    // literal → trigger
	reserved  map[rune]string  // triggers that may not be registered, with the reason
	order     []rune           // triggers in registration order
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byTrigger: make(map[rune]Meaning),
		byLiteral: make(map[rune]rune),
		reserved:  make(map[rune]string),
	}
}

// Reserve forbids trigger from being registered later (or reports it if it
// already was).
func (t *Tracker) Reserve(trigger rune, reason string) error {
	if m, exists := t.byTrigger[trigger]; exists {
		return fmt.Errorf("%w: trigger %q (%s) is already mapped to %s", errs.ErrTriggerConflict, trigger, reason, m)
	}
	t.reserved[trigger] = reason

	return nil
}

// TrackMapping registers trigger as the escape argument for literal.
func (t *Tracker) TrackMapping(trigger, literal rune) error {
	return t.track(trigger, Meaning{Literal: literal})
}

// TrackNull registers trigger as the null marker. At most one null trigger may exist.
func (t *Tracker) TrackNull(trigger rune) error {
	for _, tr := range t.order {
		if t.byTrigger[tr].Null && tr != trigger {
			return fmt.Errorf("%w: null is already mapped by trigger %q, cannot remap to %q",
				errs.ErrTriggerConflict, tr, trigger)
		}
	}

	return t.track(trigger, Meaning{Null: true})
}

func (t *Tracker) track(trigger rune, m Meaning) error {
	if reason, ok := t.reserved[trigger]; ok {
		return fmt.Errorf("%w: trigger %q is reserved (%s)", errs.ErrTriggerConflict, trigger, reason)
	}

	if existing, exists := t.byTrigger[trigger]; exists {
		if existing == m {
			return nil
		}

		return fmt.Errorf("%w: trigger %q maps to both %s and %s", errs.ErrTriggerConflict, trigger, existing, m)
	}

	if !m.Null {
		if other, exists := t.byLiteral[m.Literal]; exists {
			return fmt.Errorf("%w: literal %q is mapped by both %q and %q", errs.ErrLiteralConflict, m.Literal, other, trigger)
		}
		t.byLiteral[m.Literal] = trigger
	}

	t.byTrigger[trigger] = m
	t.order = append(t.order, trigger)

	return nil
}

// HasTrigger reports whether trigger has been registered.
func (t *Tracker) HasTrigger(trigger rune) bool {
	_, ok := t.byTrigger[trigger]
	return ok
}

// HasLiteral reports whether literal is reachable from a registered trigger.
func (t *Tracker) HasLiteral(literal rune) bool {
	_, ok := t.byLiteral[literal]
	return ok
}

// Triggers returns the registered triggers in registration order.
func (t *Tracker) Triggers() []rune {
	return t.order
}

// Lookup returns the meaning registered for trigger.
func (t *Tracker) Lookup(trigger rune) (Meaning, bool) {
	m, ok := t.byTrigger[trigger]
	return m, ok
}

// Count returns the number of registered triggers.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all registrations and reservations.
func (t *Tracker) Reset() {
	clear(t.byTrigger)
	clear(t.byLiteral)
	clear(t.reserved)
	t.order = t.order[:0]
}
