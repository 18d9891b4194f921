package format

import (
	"fmt"
	"strings"
)

type (
	LineSeparator   uint8
	CompressionType uint8
	OutputStyle     uint8
)

const (
	LineSeparatorUnix    LineSeparator = 0x1 // LineSeparatorUnix terminates records with "\n".
	LineSeparatorWindows LineSeparator = 0x2 // LineSeparatorWindows terminates records with "\r\n".

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
	CompressionXZ   CompressionType = 0x5 // CompressionXZ represents xz/LZMA2 compression.

	StyleDefault     OutputStyle = 0x1 // StyleDefault uses scientific notation only when it is shorter.
	StylePlain       OutputStyle = 0x2 // StylePlain always expands the number.
	StyleEngineering OutputStyle = 0x3 // StyleEngineering uses exponents that are multiples of three.
)

// Sequence returns the record terminator bytes.
// Unknown values fall back to the Unix terminator so the result is never empty.
func (s LineSeparator) Sequence() string {
	if s == LineSeparatorWindows {
		return "\r\n"
	}

	return "\n"
}

func (s LineSeparator) String() string {
	switch s {
	case LineSeparatorUnix:
		return "Unix"
	case LineSeparatorWindows:
		return "Windows"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionXZ:
		return "XZ"
	default:
		return "Unknown"
	}
}

func (o OutputStyle) String() string {
	switch o {
	case StyleDefault:
		return "Default"
	case StylePlain:
		return "Plain"
	case StyleEngineering:
		return "Engineering"
	default:
		return "Unknown"
	}
}

// ParseLineSeparator converts a case-insensitive name ("unix", "lf", "windows", "crlf")
// into a LineSeparator.
func ParseLineSeparator(name string) (LineSeparator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unix", "lf":
		return LineSeparatorUnix, nil
	case "windows", "crlf":
		return LineSeparatorWindows, nil
	default:
		return 0, fmt.Errorf("unknown line separator: %q", name)
	}
}

// ParseCompressionType converts a case-insensitive codec name into a CompressionType.
// An empty name selects CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "xz":
		return CompressionXZ, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}

// ParseOutputStyle converts a case-insensitive style name into an OutputStyle.
// An empty name selects StyleDefault.
func ParseOutputStyle(name string) (OutputStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return StyleDefault, nil
	case "plain":
		return StylePlain, nil
	case "engineering":
		return StyleEngineering, nil
	default:
		return 0, fmt.Errorf("unknown output style: %q", name)
	}
}
