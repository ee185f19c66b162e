// Package fileio opens input and output streams by name. "-" selects the
// standard streams; a .gz, .zst or .lz4 suffix selects a compressed stream.
package fileio

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// Stdio names standard input or standard output.
	Stdio = "-"
	// Disabled names an output that should not be written at all.
	Disabled = "&"
)

// Open returns a reader for path, decompressing by suffix. "-" reads stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return readCloser{Reader: gr, closers: []func() error{gr.Close, fh.Close}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return readCloser{Reader: zr, closers: []func() error{
			func() error { zr.Close(); return nil },
			fh.Close,
		}}, nil
	case strings.HasSuffix(path, ".lz4"):
		return readCloser{Reader: lz4.NewReader(fh), closers: []func() error{fh.Close}}, nil
	}
	return fh, nil
}

// Create returns a writer for path, compressing by suffix. "-" writes to
// stdout, which is never closed by the returned writer.
func Create(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == Stdio {
		return nopWriteCloser{stdout}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		gw := gzip.NewWriter(fh)
		return writeCloser{Writer: gw, closers: []func() error{gw.Close, fh.Close}}, nil
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return writeCloser{Writer: zw, closers: []func() error{zw.Close, fh.Close}}, nil
	case strings.HasSuffix(path, ".lz4"):
		lw := lz4.NewWriter(fh)
		return writeCloser{Writer: lw, closers: []func() error{lw.Close, fh.Close}}, nil
	}
	return fh, nil
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r readCloser) Close() error { return closeAll(r.closers) }

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w writeCloser) Close() error { return closeAll(w.closers) }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// closeAll runs every closer in order and joins their errors.
func closeAll(fns []func() error) error {
	var errs []error
	for _, fn := range fns {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
