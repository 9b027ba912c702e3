package primer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yash27-lab/primer-scout/internal/guard"
)

// Load reads a primer panel from r. Accepted shape, per line:
//
//	name<TAB>sequence   or   name,sequence   or   sequence
//
// The delimiter is inferred from the first data line (tab wins over comma).
// Blank lines and '#' comments are skipped, an optional leading header row
// (e.g. "name\tsequence") is recognized and dropped, and rows without a name
// get an auto-generated one.
func Load(r io.Reader, lim guard.Limits) ([]*Primer, error) {
	sc := bufio.NewScanner(r)
	// Scanner's cap is max(cap(buf), max), so the initial buffer must not
	// exceed the configured limit.
	bufSize := 64 * 1024
	if lim.MaxPrimerLineBytes < bufSize {
		bufSize = lim.MaxPrimerLineBytes
	}
	sc.Buffer(make([]byte, bufSize), lim.MaxPrimerLineBytes)

	var (
		primers   []*Primer
		delimiter string
		row       int
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if delimiter == "" {
			delimiter = inferDelimiter(line)
		}
		row++

		parts := strings.Split(line, delimiter)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		var name, seq string
		if len(parts) >= 2 {
			name, seq = parts[0], parts[1]
		} else {
			seq = parts[0]
		}
		if row == 1 && isHeader(name, seq) {
			continue
		}
		if name == "" {
			name = fmt.Sprintf("primer_%04d", len(primers)+1)
		}
		p, err := New(name, seq)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		primers = append(primers, p)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, guard.LineError("primer file", lim.MaxPrimerLineBytes)
		}
		return nil, err
	}
	if len(primers) == 0 {
		return nil, errors.New("no primers found")
	}
	return primers, nil
}

func inferDelimiter(line string) string {
	if strings.Contains(line, "\t") {
		return "\t"
	}
	return ","
}

// isHeader recognizes a column-label row like "name\tsequence" so panels
// exported from spreadsheets load without edits.
func isHeader(name, seq string) bool {
	left := strings.ToLower(name)
	right := strings.ToLower(seq)
	return (left == "name" || left == "primer" || left == "id") &&
		(right == "sequence" || right == "primer" || right == "seq")
}
