package domain

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Compression identifies how a raw result blob is encoded on the wire.
type Compression string

// Compression formats the CMD service has been observed to emit.
// Only gzip is actually produced today; bzip2 and zip are recognised so a
// format change fails loudly instead of being parsed as garbage.
const (
	CompressionNone  Compression = ""
	CompressionGzip  Compression = "gz"
	CompressionBzip2 Compression = "bz2"
	CompressionZip   Compression = "zip"
)

var magicNumbers = []struct {
	prefix []byte
	format Compression
}{
	{[]byte{0x1f, 0x8b, 0x08}, CompressionGzip},
	{[]byte{0x42, 0x5a, 0x68}, CompressionBzip2},
	{[]byte{0x50, 0x4b, 0x03, 0x04}, CompressionZip},
}

// SniffCompression detects the compression format of a blob from its
// leading magic bytes.
func SniffCompression(data []byte) Compression {
	for _, m := range magicNumbers {
		if bytes.HasPrefix(data, m.prefix) {
			return m.format
		}
	}
	return CompressionNone
}

// Decompress returns the plain-text bytes of a raw result blob,
// decompressing gzip when detected. Other compression formats are an error.
func Decompress(data []byte) ([]byte, error) {
	switch SniffCompression(data) {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported compression %q",
			ErrServerResponse, SniffCompression(data))
	}
}

// RawResult is an undecoded blob returned by the CMD service or the cache,
// tagged with its detected compression.
type RawResult struct {
	Body        []byte
	Compression Compression
}

// Text returns the decompressed table text.
func (r *RawResult) Text() ([]byte, error) {
	return Decompress(r.Body)
}
