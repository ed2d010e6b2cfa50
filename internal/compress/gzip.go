// Payload compression capability used by the HTTP output
package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/gzip"
)

type Compressor interface {
	Compress(in []byte) (out []byte, err error)
	Installed() (available bool)
}

// Gzip with pooled writers
type Gzip struct {
	level   int
	writers sync.Pool
}

func NewGzip(level int) (zip *Gzip, err error) {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		err = fmt.Errorf("invalid gzip level %d", level)
		return
	}
	zip = &Gzip{level: level}
	return
}

func (zip *Gzip) Installed() (available bool) {
	available = zip != nil
	return
}

func (zip *Gzip) Compress(in []byte) (out []byte, err error) {
	var buf bytes.Buffer

	writer, _ := zip.writers.Get().(*gzip.Writer)
	if writer == nil {
		writer, err = gzip.NewWriterLevel(&buf, zip.level)
		if err != nil {
			return
		}
	} else {
		writer.Reset(&buf)
	}
	defer zip.writers.Put(writer)

	_, err = writer.Write(in)
	if err != nil {
		err = fmt.Errorf("failed compressing payload: %w", err)
		return
	}
	err = writer.Close()
	if err != nil {
		err = fmt.Errorf("failed finalizing compressed payload: %w", err)
		return
	}

	out = buf.Bytes()
	return
}

// Reports unavailable. For deployments built without compression support.
type Unavailable struct{}

func (Unavailable) Installed() (available bool) { return }

func (Unavailable) Compress(in []byte) (out []byte, err error) {
	err = fmt.Errorf("compression not available")
	return
}
