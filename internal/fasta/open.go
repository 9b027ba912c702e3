package fasta

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path, transparently decompressing gzip input.
// Gzip is detected by magic number (1F 8B) or a .gz suffix; "-" reads stdin.
func Open(path string) (io.ReadCloser, error) {
	return open(path, false)
}

// OpenProgress is Open with an optional byte-progress bar on stderr, fed by
// the raw (compressed) file stream so the bar tracks real disk bytes.
func OpenProgress(path string, progress bool) (io.ReadCloser, error) {
	return open(path, progress)
}

func open(path string, progress bool) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	gzipped := (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz")

	var (
		src     io.Reader = fh
		closers           = []io.Closer{fh}
	)
	if progress {
		if fi, err := fh.Stat(); err == nil {
			bar := pb.Full.Start64(fi.Size())
			bar.Set(pb.Bytes, true)
			bar.SetWriter(os.Stderr)
			proxy := bar.NewProxyReader(fh)
			src = proxy
			closers = []io.Closer{barCloser{bar}, fh}
		}
	}
	if gzipped {
		gr, err := gzip.NewReader(src)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		closers = append([]io.Closer{gr}, closers...)
		src = gr
	}
	return &multiReadCloser{Reader: src, closers: closers}, nil
}

type barCloser struct{ bar *pb.ProgressBar }

func (b barCloser) Close() error {
	b.bar.Finish()
	return nil
}
