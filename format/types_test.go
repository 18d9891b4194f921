package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineSeparator_Sequence(t *testing.T) {
	require.Equal(t, "\n", LineSeparatorUnix.Sequence())
	require.Equal(t, "\r\n", LineSeparatorWindows.Sequence())
	require.Equal(t, "\n", LineSeparator(0).Sequence())
}

func TestParseLineSeparator(t *testing.T) {
	tests := []struct {
		in      string
		want    LineSeparator
		wantErr bool
	}{
		{in: "", want: LineSeparatorUnix},
		{in: "unix", want: LineSeparatorUnix},
		{in: "LF", want: LineSeparatorUnix},
		{in: "windows", want: LineSeparatorWindows},
		{in: " crlf ", want: LineSeparatorWindows},
		{in: "mac", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLineSeparator(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseCompressionType(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4, CompressionXZ} {
		got, err := ParseCompressionType(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	got, err := ParseCompressionType("")
	require.NoError(t, err)
	require.Equal(t, CompressionNone, got)

	_, err = ParseCompressionType("gzip")
	require.Error(t, err)
}

func TestParseOutputStyle(t *testing.T) {
	for _, s := range []OutputStyle{StyleDefault, StylePlain, StyleEngineering} {
		got, err := ParseOutputStyle(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}

	_, err := ParseOutputStyle("scientific")
	require.Error(t, err)
	require.Equal(t, "Unknown", OutputStyle(0).String())
}
