package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

var ErrNoHeader = errors.New("replay: missing header")

// Read decodes a whole recording.
func Read(r io.Reader) (*Recording, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("replay: zstd: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var rec *Recording
	n := 0
	for sc.Scan() {
		n++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var l line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			return nil, fmt.Errorf("replay: line %d: %w", n, err)
		}

		if rec == nil {
			if l.Kind != KindHeader || l.Header == nil {
				return nil, ErrNoHeader
			}
			rec = &Recording{Header: *l.Header}
			continue
		}

		switch l.Kind {
		case KindInput:
			if l.Input == nil {
				return nil, fmt.Errorf("replay: line %d: empty input", n)
			}
			rec.Inputs = append(rec.Inputs, *l.Input)
		case KindEnd:
			if l.End == nil {
				return nil, fmt.Errorf("replay: line %d: empty end", n)
			}
			e := *l.End
			rec.End = &e
		default:
			return nil, fmt.Errorf("replay: line %d: unknown kind %q", n, l.Kind)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay: read: %w", err)
	}
	if rec == nil {
		return nil, ErrNoHeader
	}
	if rec.Header.Version > FormatVersion {
		return nil, fmt.Errorf("replay: unsupported version %d", rec.Header.Version)
	}
	return rec, nil
}

// ReadFile decodes the recording at path.
func ReadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
