package kvstore

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DecodeText renders a stored value as text for display. Values are kept
// as raw bytes internally; decoding happens only at the display boundary
// (read and list output). A value that is not valid UTF-8 fails with
// ErrValueNotText rather than being rendered mangled.
func DecodeText(value []byte) (string, error) {
	if !utf8.Valid(value) {
		return "", errors.Wrap(ErrValueNotText, "DecodeText")
	}
	return string(value), nil
}
