package dtext_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arloliu/dtext"
	"github.com/arloliu/dtext/adapter"
	"github.com/arloliu/dtext/delimited"
	"github.com/arloliu/dtext/escape"
	"github.com/arloliu/dtext/format"
)

func ExampleNewTSVWriter() {
	buf := &bytes.Buffer{}
	w, err := dtext.NewTSVWriter(buf)
	if err != nil {
		panic(err)
	}

	_ = w.PutField("alice")
	_ = w.PutField("line one\nline two")
	_ = w.PutNull()
	_ = w.PutEndOfRecord()
	_ = w.Close()

	fmt.Printf("%q\n", buf.String())
	// Output: "alice\tline one\\nline two\t\\N\n"
}

func ExampleNewTSVReader() {
	r, err := dtext.NewTSVReader(strings.NewReader("alice\tline one\\nline two\t\\N\nbob\t\\\\\t42\n"))
	if err != nil {
		panic(err)
	}
	defer r.Close()

	for record, err := range r.All() {
		if err != nil {
			panic(err)
		}
		fmt.Println(record)
	}
	// Output:
	// [{alice false} {line one
	// line two false} { true}]
	// [{bob false} {\ false} {42 false}]
}

func ExampleNewFieldWriter_diagnostics() {
	// a table that cannot escape line breaks
	table := escape.NewBuilder('\\').AddMapping('t', '\t').MustBuild()

	buf := &bytes.Buffer{}
	w, err := dtext.NewFieldWriter(buf, table)
	if err != nil {
		panic(err)
	}
	defer w.Close()

	_ = w.PutField("a\nb")
	err = w.PutEndOfRecord()

	var unmappable *delimited.UnmappableOutputError
	if errors.As(err, &unmappable) {
		fmt.Println(unmappable)
	}
	fmt.Printf("%q\n", buf.String())
	// Output:
	// unmappable output in record 1: EXTRA_RECORD_SEPARATOR at field 0
	// "a\nb\n"
}

func ExampleNewCompressedTSVWriter() {
	buf := &bytes.Buffer{}
	w, err := dtext.NewCompressedTSVWriter(buf, format.CompressionZstd)
	if err != nil {
		panic(err)
	}
	_ = w.WriteRecord(delimited.Text("id"), delimited.Text("name"))
	_ = w.WriteRecord(delimited.Text("1"), delimited.Text("alice"))
	_ = w.Close()

	r, err := dtext.NewCompressedTSVReader(bytes.NewReader(buf.Bytes()), format.CompressionZstd)
	if err != nil {
		panic(err)
	}
	defer r.Close()

	records, err := r.ReadAll()
	if err != nil {
		panic(err)
	}
	fmt.Println(len(records), records[1][1].Text)
	// Output: 2 alice
}

func Example_adapters() {
	amounts, err := adapter.NewDecimal(adapter.WithNumberFormat("#,##0.00"), adapter.WithNullFormat("-"))
	if err != nil {
		panic(err)
	}

	fmt.Println(amounts.Emit(adapter.Value(decimal.RequireFromString("1234.5"))).Text)
	fmt.Println(amounts.Emit(adapter.Null[decimal.Decimal]()).Text)

	v, err := amounts.Parse("9,876.54")
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output:
	// 1,234.50
	// -
	// 9876.54
}
