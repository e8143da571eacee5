// Package encoding normalizes uploaded bank statements to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sampleSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// charsets maps chardet names to decoders. Anything unlisted falls back to
// Windows-1252, which is what Portuguese bank exports use in practice.
var charsets = map[string]xencoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// Detect names the encoding of sample. A nil encoding means the bytes are
// already UTF-8. complete reports whether sample is the whole input.
func Detect(sample []byte, complete bool) (xencoding.Encoding, string) {
	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		return nil, "UTF-8"
	case bytes.HasPrefix(sample, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), "UTF-16LE"
	case bytes.HasPrefix(sample, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "UTF-16BE"
	}

	if !complete {
		sample = trimPartialRune(sample)
	}

	if utf8.Valid(sample) {
		return nil, "UTF-8"
	}

	if result, err := chardet.NewTextDetector().DetectBest(sample); err == nil {
		if result.Charset == "UTF-8" {
			return nil, "UTF-8"
		}

		if enc, ok := charsets[result.Charset]; ok {
			return enc, result.Charset
		}
	}

	return charmap.Windows1252, "windows-1252"
}

// NewUTF8Reader decodes r to UTF-8, dropping a UTF-8 byte order mark.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sampleSize)

	sample, err := br.Peek(sampleSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	enc, _ := Detect(sample, err == io.EOF)
	if enc != nil {
		return transform.NewReader(br, enc.NewDecoder()), nil
	}

	if bytes.HasPrefix(sample, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
	}

	return br, nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}

		if !utf8.FullRune(b[i:]) {
			return b[:i]
		}

		break
	}

	return b
}
