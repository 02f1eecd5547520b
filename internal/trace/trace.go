// Package trace writes glide runs as JSON lines, optionally zstd-compressed.
package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// Header is the first line of every trace.
type Header struct {
	Kind    string         `json:"kind"`
	RunID   string         `json:"run_id"`
	Sim     string         `json:"sim"`
	Params  map[string]any `json:"params"`
	Atoms   int            `json:"atoms"`
	Bonds   int            `json:"bonds"`
	Started string         `json:"started"`
}

// Atom is one atom's position and state within a frame.
type Atom struct {
	Index int        `json:"i"`
	Pos   [3]float64 `json:"p"`
	State string     `json:"s"`
}

// Frame is one tick of a run.
type Frame struct {
	Kind      string        `json:"kind"`
	Tick      int           `json:"tick"`
	Time      float64       `json:"time"`
	Wall      float64       `json:"wall"`
	State     string        `json:"state"`
	Phase     int           `json:"phase"`
	Paused    bool          `json:"paused"`
	Moved     int           `json:"moved"`
	Bonds     int           `json:"bonds"`
	Indicator [2][3]float64 `json:"indicator"`
	Atoms     []Atom        `json:"atoms,omitempty"`
}

const (
	kindHeader = "header"
	kindFrame  = "frame"
)

// NewRunID returns a fresh identifier for a trace header.
func NewRunID() string { return uuid.NewString() }

// Writer emits one JSON document per line.
type Writer struct {
	f   io.Closer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create opens path for writing. A ".zst" suffix enables zstd compression.
func Create(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, strings.HasSuffix(path, ".zst"))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.f = f
	return w, nil
}

// NewWriter wraps dst. The caller keeps ownership of dst.
func NewWriter(dst io.Writer, compress bool) (*Writer, error) {
	w := &Writer{}
	if compress {
		enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, err
		}
		w.enc = enc
		dst = enc
	}
	w.w = bufio.NewWriterSize(dst, 128*1024)
	return w, nil
}

// WriteHeader writes the run header.
func (w *Writer) WriteHeader(h Header) error {
	h.Kind = kindHeader
	return w.write(h)
}

// WriteFrame writes one tick.
func (w *Writer) WriteFrame(f Frame) error {
	f.Kind = kindFrame
	return w.write(f)
}

func (w *Writer) write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Close flushes buffered lines and closes the encoder and file, if owned.
func (w *Writer) Close() error {
	var errs []error
	if w.w != nil {
		errs = append(errs, w.w.Flush())
	}
	if w.enc != nil {
		errs = append(errs, w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		errs = append(errs, w.f.Close())
		w.f = nil
	}
	w.w = nil
	return errors.Join(errs...)
}

// Read decodes a trace produced by Writer.
func Read(src io.Reader, compressed bool) (Header, []Frame, error) {
	var h Header
	if compressed {
		dec, err := zstd.NewReader(src)
		if err != nil {
			return h, nil, err
		}
		defer dec.Close()
		src = dec
	}
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	var frames []Frame
	line := 0
	for sc.Scan() {
		line++
		var probe struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(sc.Bytes(), &probe); err != nil {
			return h, frames, fmt.Errorf("trace line %d: %w", line, err)
		}
		switch probe.Kind {
		case kindHeader:
			if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
				return h, frames, fmt.Errorf("trace line %d: %w", line, err)
			}
		case kindFrame:
			var f Frame
			if err := json.Unmarshal(sc.Bytes(), &f); err != nil {
				return h, frames, fmt.Errorf("trace line %d: %w", line, err)
			}
			frames = append(frames, f)
		default:
			return h, frames, fmt.Errorf("trace line %d: unknown kind %q", line, probe.Kind)
		}
	}
	return h, frames, sc.Err()
}

// ReadFile opens and decodes a trace file written by Create.
func ReadFile(path string) (Header, []Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	return Read(f, strings.HasSuffix(path, ".zst"))
}
