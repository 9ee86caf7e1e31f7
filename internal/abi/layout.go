package abi

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/nvwire/internal/codec"
)

var le = binary.LittleEndian

// SizeError reports a byte block that cannot hold the record it claims to be.
type SizeError struct {
	Record string
	Got    int
	Want   int
}

func (e SizeError) Error() string {
	return fmt.Sprintf("abi: %s needs %d bytes, got %d", e.Record, e.Want, e.Got)
}

func (e SizeError) Is(target error) bool { return target == codec.ErrInvalidValue }

func checkSize(record string, b []byte, want int) error {
	if len(b) < want {
		return SizeError{Record: record, Got: len(b), Want: want}
	}
	return nil
}

// DecodeList splits a caller-sized buffer into consecutive records of stride
// bytes. The buffer length must be a whole number of records.
func DecodeList[T any](record string, b []byte, stride int, decode func([]byte) (T, error)) ([]T, error) {
	if len(b)%stride != 0 {
		return nil, SizeError{Record: record, Got: len(b), Want: (len(b)/stride + 1) * stride}
	}
	out := make([]T, 0, len(b)/stride)
	for off := 0; off < len(b); off += stride {
		v, err := decode(b[off : off+stride])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeList concatenates encoded records.
func EncodeList[T any](items []T, stride int, encode func(T) []byte) []byte {
	out := make([]byte, 0, len(items)*stride)
	for _, it := range items {
		out = append(out, encode(it)...)
	}
	return out
}
