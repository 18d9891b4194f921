package delimited

// Field is one field value: its text, or null.
// Text is ignored when Null is set.
type Field struct {
	Text string
	Null bool
}

// Text returns a non-null field.
func Text(s string) Field {
	return Field{Text: s}
}

// Null returns a null field.
func Null() Field {
	return Field{Null: true}
}

// FieldTransform rewrites the text of a non-null field before it is written.
// Returning false turns the field into null.
type FieldTransform func(text string) (string, bool)
