// Package escape provides immutable escape tables for delimited text.
//
// An escape table names one escape character and a set of one-rune triggers.
// Writing the escape character followed by a trigger stands for the trigger's
// literal (or for a null field, if the trigger is the null trigger). Tables are
// built once with a Builder, validated for conflicts, and then shared
// read-only by any number of writers and readers.
//
// # Building a Table
//
//	table, err := escape.NewBuilder('\\').
//	    AddMapping('t', '\t').
//	    AddMapping('n', '\n').
//	    AddMapping('r', '\r').
//	    AddNullMapping('N').
//	    Build()
//
// The escape character is mapped to itself ("\\" decodes to "\") unless the
// builder calls DisableSelfEscape.
//
// # Line Separators
//
// AddLineSeparator allows raw CR and LF bytes to appear in field content when
// they are preceded by the escape character. A mapping for CR or LF, when
// present, takes precedence when writing.
//
// # No Table
//
// A nil *Table is a valid value that means "no escaping configured". Every
// lookup on it misses, so writers report any structural character found in
// field content.
package escape
