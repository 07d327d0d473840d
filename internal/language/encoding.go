package language

import (
	"fmt"
	"strings"
)

// Encoding identifies the text encoding providers use to compute byte
// offsets for syntactic tokens. The numeric values match the Google
// Cloud Natural Language EncodingType enum, so they can be passed to
// the vendor API unchanged.
type Encoding int32

const (
	// EncodingNone means no encoding was supplied; providers fall back
	// to their default behavior and token offsets are unreliable.
	EncodingNone Encoding = 0

	EncodingUTF8  Encoding = 1
	EncodingUTF16 Encoding = 2
	EncodingUTF32 Encoding = 3
)

// ParseEncoding converts a caller-supplied encoding name. Matching is
// case-insensitive and hyphen-optional ("utf-8" and "UTF8" are the same
// value). An empty string means no encoding.
func ParseEncoding(s string) (Encoding, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	switch normalized {
	case "":
		return EncodingNone, nil
	case "UTF8":
		return EncodingUTF8, nil
	case "UTF16":
		return EncodingUTF16, nil
	case "UTF32":
		return EncodingUTF32, nil
	default:
		return EncodingNone, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
	}
}

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF8"
	case EncodingUTF16:
		return "UTF16"
	case EncodingUTF32:
		return "UTF32"
	default:
		return "NONE"
	}
}
