package bsp

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Decoding selects how entity lump bytes become text. No policy ever fails:
// bytes that are not valid in the chosen encoding are dropped or replaced.
type Decoding string

const (
	DecodeDrop    Decoding = "drop"    // UTF-8, invalid sequences removed
	DecodeReplace Decoding = "replace" // UTF-8, invalid sequences become U+FFFD
	DecodeLatin1  Decoding = "latin1"  // ISO 8859-1, every byte maps to a rune
)

// ParseDecoding converts a config value into a Decoding. Empty means DecodeDrop.
func ParseDecoding(s string) (Decoding, error) {
	switch d := Decoding(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DecodeDrop, nil
	case DecodeDrop, DecodeReplace, DecodeLatin1:
		return d, nil
	default:
		return "", fmt.Errorf("unknown decoding %q", s)
	}
}

// DecodeText turns raw lump bytes into a string using dec. Unknown policies
// fall back to DecodeDrop.
func DecodeText(data []byte, dec Decoding) string {
	switch dec {
	case DecodeReplace:
		return decodeWith(unicode.UTF8.NewDecoder(), data)
	case DecodeLatin1:
		return decodeWith(charmap.ISO8859_1.NewDecoder(), data)
	default:
		return strings.ToValidUTF8(string(data), "")
	}
}

func decodeWith(d *encoding.Decoder, data []byte) string {
	out, err := d.Bytes(data)
	if err != nil {
		// Both decoders substitute bad input, so this is not expected.
		logger.Debug("decoder error, dropping invalid bytes", "err", err)
		return strings.ToValidUTF8(string(data), "")
	}
	return string(out)
}
