package format

import (
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
)

// bzip2Magic is the stream header every bzip2 file starts with.
var bzip2Magic = []byte("BZh")

// Compressed reports whether data carries a recognized compressed-stream
// magic. Detection is by magic only; a corrupted compressed stream is a
// decompression error, never silently reparsed as plain data.
func Compressed(data []byte) bool {
	return bytes.HasPrefix(data, bzip2Magic)
}

// Decompress returns the decompressed form of data when it starts with a
// compressed-stream magic, and data unchanged otherwise.
func Decompress(data []byte) ([]byte, error) {
	if !Compressed(data) {
		return data, nil
	}
	out, err := io.ReadAll(bzip2.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("bzip2 stream: %w", err)
	}
	return out, nil
}
