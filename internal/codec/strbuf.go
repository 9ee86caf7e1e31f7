package codec

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// DecodeString reads a NUL-terminated or NUL-padded text buffer. Bytes up to
// the first NUL, or the whole buffer when there is none, must be valid UTF-8.
// The returned string never aliases buf.
func DecodeString(buf []byte) (string, error) {
	n := bytes.IndexByte(buf, 0)
	if n < 0 {
		n = len(buf)
	}
	text := buf[:n]
	if !utf8.Valid(text) {
		return "", InvalidEncodingError{Offset: firstInvalid(text)}
	}
	return string(text), nil
}

// EncodeString lays s out in a fresh buffer of exactly capacity bytes: the
// text, one terminator, then zero padding.
func EncodeString(s string, capacity int) ([]byte, error) {
	if err := checkEncodable(s, capacity); err != nil {
		return nil, err
	}
	buf := make([]byte, capacity)
	copy(buf, s)
	return buf, nil
}

// EncodeStringInto is EncodeString writing into a caller-owned fixed buffer.
// dst is left untouched when s does not fit.
func EncodeStringInto(dst []byte, s string) error {
	if err := checkEncodable(s, len(dst)); err != nil {
		return err
	}
	n := copy(dst, s)
	clear(dst[n:])
	return nil
}

func checkEncodable(s string, capacity int) error {
	if strings.IndexByte(s, 0) >= 0 {
		return InvalidValueError{Reason: "embedded NUL in text value"}
	}
	if !utf8.ValidString(s) {
		return InvalidEncodingError{Offset: firstInvalid([]byte(s))}
	}
	if need := len(s) + 1; need > capacity {
		return ValueTooLargeError{MaxLen: capacity, ActualLen: need}
	}
	return nil
}

func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
