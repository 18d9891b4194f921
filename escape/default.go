package escape

var defaultTable = NewBuilder('\\').
	AddMapping('t', '\t').
	AddMapping('n', '\n').
	AddMapping('r', '\r').
	AddNullMapping('N').
	MustBuild()

// Default returns the table used by tab-separated files with backslash
// escapes: "\t", "\n", "\r", "\\" and "\N" for null.
func Default() *Table {
	return defaultTable
}
