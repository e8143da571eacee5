package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/networth/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	const text = "Descrição;Montante\nCafé;12,50\n"

	utf16LE, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	win1252, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	// A two-byte rune straddling the detection window.
	straddling := strings.Repeat("a", 4095) + "ção;1,00\n"

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "UTF8Passthrough",
			input: []byte(text),
			want:  text,
		},
		{
			name:  "UTF8BOMStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, text...),
			want:  text,
		},
		{
			name:  "UTF16LittleEndian",
			input: utf16LE,
			want:  text,
		},
		{
			name:  "Windows1252",
			input: win1252,
			want:  text,
		},
		{
			name:  "RuneAcrossSampleBoundary",
			input: []byte(straddling),
			want:  straddling,
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDetect(t *testing.T) {
	enc, name := encoding.Detect([]byte("plain ascii"), true)
	assert.Nil(t, enc)
	assert.Equal(t, "UTF-8", name)

	enc, name = encoding.Detect([]byte{0xFE, 0xFF, 0x00, 'A'}, true)
	assert.NotNil(t, enc)
	assert.Equal(t, "UTF-16BE", name)

	// A truncated rune only counts as valid when more input may follow.
	enc, _ = encoding.Detect([]byte{'a', 0xC3}, false)
	assert.Nil(t, enc)
}
