// Package replay records and verifies per-tick inputs of cubes sessions.
//
// A recording is a zstd-compressed JSON lines stream: one Header line followed
// by one Record per engine tick. Each record carries the digest of the snapshot
// the tick produced, so a recording can be re-run and checked for divergence.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Version is the recording format version.
const Version = 1

// Header is the first line of a recording.
type Header struct {
	Version int    `json:"version"`
	Level   string `json:"level"`
	Player  string `json:"player"`
}

// Record is one engine tick. A record with Remake set replaces the tick with
// the same number that precedes it. A tick number that does not grow, or a
// new level id, starts a new attempt.
type Record struct {
	Tick   int    `json:"tick"`
	Level  string `json:"level"`
	Input  string `json:"input"`
	Remake bool   `json:"remake,omitempty"`
	Digest uint64 `json:"digest"`
}

// Recorder writes a recording. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	closer io.Closer
	enc    *zstd.Encoder
	w      *bufio.Writer
	count  int
}

// Create creates the file at path, including missing parent directories, and
// starts a recording in it.
func Create(path string, h Header) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("replay: cannot create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create recording: %w", err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewRecorder starts a recording on w. Closing the recorder does not close w.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create encoder: %w", err)
	}
	r := &Recorder{enc: enc, w: bufio.NewWriterSize(enc, 32*1024)}
	if h.Version == 0 {
		h.Version = Version
	}
	if err := r.writeLine(h); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return r, nil
}

// Record appends a tick.
func (r *Recorder) Record(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enc == nil {
		return errors.New("replay: recorder is closed")
	}
	if err := r.writeLine(rec); err != nil {
		return err
	}
	r.count++
	return nil
}

// Count returns the number of records written so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *Recorder) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("replay: cannot encode record: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return fmt.Errorf("replay: cannot write record: %w", err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("replay: cannot write record: %w", err)
	}
	return nil
}

// Close flushes the recording and closes the underlying file, if any.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enc == nil {
		return nil
	}

	err := r.w.Flush()
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	r.enc = nil
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("replay: cannot close recording: %w", err)
	}
	return nil
}

// Open reads the recording stored at path.
func Open(path string) (Header, []Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, fmt.Errorf("replay: cannot open recording: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a recording.
func Read(r io.Reader) (Header, []Record, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Header{}, nil, fmt.Errorf("replay: cannot create decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		h       Header
		records []Record
		line    int
	)
	for sc.Scan() {
		line++
		if line == 1 {
			if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
				return Header{}, nil, fmt.Errorf("replay: bad header: %w", err)
			}
			if h.Version != Version {
				return Header{}, nil, fmt.Errorf("replay: unsupported version %d", h.Version)
			}
			continue
		}
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return Header{}, nil, fmt.Errorf("replay: line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return Header{}, nil, fmt.Errorf("replay: cannot read recording: %w", err)
	}
	if line == 0 {
		return Header{}, nil, errors.New("replay: empty recording")
	}
	return h, records, nil
}
