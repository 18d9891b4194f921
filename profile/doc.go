// Package profile loads delimited text layouts from YAML or JSON.
//
// A profile names the field separator, the line separator, the compression
// codec and the escape table of a file format, so the same layout can be
// shared between programs without repeating builder calls:
//
//	name: tsv
//	field_separator: tab
//	line_separator: unix
//	escape:
//	  character: backslash
//	  null_trigger: N
//	  mappings:
//	    - {trigger: t, literal: tab}
//	    - {trigger: n, literal: '\n'}
//	    - {trigger: r, literal: '\r'}
//
// Load the profile and open writers and readers from it:
//
//	p, err := profile.LoadFile("tsv.yaml")
//	if err != nil {
//	    return err
//	}
//	w, err := p.NewWriter(out)
//
// Escape tables built from profiles are cached, so loading the same
// profile repeatedly does not rebuild its table.
package profile
