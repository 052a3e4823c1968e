package parser

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies the compression wrapper of a source file
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGZ
	CompressionBZ2
	CompressionXZ
	CompressionZSTD
)

var compressionExtensions = []struct {
	ext         string
	compression Compression
}{
	{".gz", CompressionGZ},
	{".bz2", CompressionBZ2},
	{".xz", CompressionXZ},
	{".zst", CompressionZSTD},
}

// DetectCompression detects the compression type from a file path and
// returns the path with the compression extension removed
func DetectCompression(path string) (Compression, string) {
	lower := strings.ToLower(path)
	for _, c := range compressionExtensions {
		if strings.HasSuffix(lower, c.ext) {
			return c.compression, path[:len(path)-len(c.ext)]
		}
	}
	return CompressionNone, path
}

// newDecompressor wraps r with a decompression reader for c.
// The returned close func must be called once reading is done.
func newDecompressor(c Compression, r io.Reader) (io.Reader, func() error, error) {
	switch c {
	case CompressionNone:
		return r, func() error { return nil }, nil

	case CompressionGZ:
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, gzReader.Close, nil

	case CompressionBZ2:
		return bzip2.NewReader(r), func() error { return nil }, nil

	case CompressionXZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzReader, func() error { return nil }, nil

	case CompressionZSTD:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return decoder, func() error {
			decoder.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("%w: compression %d", ErrUnsupportedFormat, c)
	}
}
