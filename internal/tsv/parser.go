package tsv

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads an annotation table from path. Gzip-compressed tables are
// detected by magic bytes regardless of extension, and "-" reads from
// stdin.
func Load(path string, skipRows int) (*Table, error) {
	if path == "-" {
		return Parse(os.Stdin, skipRows)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation table: %w", err)
	}
	defer file.Close()

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read annotation table: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seek annotation table: %w", err)
	}

	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close()
		return Parse(gz, skipRows)
	}

	return Parse(file, skipRows)
}

// Parse reads an annotation table from r. The first skipRows physical
// lines are discarded before the header, blank lines are skipped
// everywhere, empty cells become Placeholder, and short rows are padded so
// every row matches the header width.
func Parse(r io.Reader, skipRows int) (*Table, error) {
	p := &parser{reader: bufio.NewReader(r)}

	for i := 0; i < skipRows; i++ {
		if err := p.skipLine(); err != nil {
			return nil, err
		}
	}

	header, ok, err := p.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newMalformedf("no header line found")
	}

	table, err := NewTable(strings.Split(header, "\t"))
	if err != nil {
		return nil, err
	}

	for {
		line, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		cells := strings.Split(line, "\t")
		if len(cells) > table.NumColumns() {
			return nil, newMalformedf("line %d: expected at most %d columns, found %d",
				p.lineNumber, table.NumColumns(), len(cells))
		}
		for i, cell := range cells {
			if cell == "" {
				cells[i] = Placeholder
			}
		}
		for len(cells) < table.NumColumns() {
			cells = append(cells, Placeholder)
		}
		table.appendRow(cells)
	}

	return table, nil
}

// parser tracks position while reading lines, for error context.
type parser struct {
	reader     *bufio.Reader
	lineNumber int
	eof        bool
}

// next returns the next non-blank line with the trailing newline stripped.
// The second return value is false once the input is exhausted.
func (p *parser) next() (string, bool, error) {
	for {
		if p.eof {
			return "", false, nil
		}
		line, err := p.reader.ReadString('\n')
		if err == io.EOF {
			p.eof = true
		} else if err != nil {
			return "", false, fmt.Errorf("read line %d: %w", p.lineNumber+1, err)
		}
		if line == "" {
			continue
		}
		p.lineNumber++
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		return line, true, nil
	}
}

// skipLine discards one physical line. Hitting EOF early is not an error;
// the header check reports the empty input.
func (p *parser) skipLine() error {
	if p.eof {
		return nil
	}
	_, err := p.reader.ReadString('\n')
	if err == io.EOF {
		p.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("read line %d: %w", p.lineNumber+1, err)
	}
	p.lineNumber++
	return nil
}

// MalformedInputError reports a structural problem with the input table,
// such as a required column that is absent.
type MalformedInputError struct {
	Column string // offending column name, when known
	Detail string
}

func (e *MalformedInputError) Error() string {
	switch {
	case e.Detail == "":
		return fmt.Sprintf("malformed input table: required column %q not found", e.Column)
	case e.Column != "":
		return fmt.Sprintf("malformed input table: column %q: %s", e.Column, e.Detail)
	default:
		return fmt.Sprintf("malformed input table: %s", e.Detail)
	}
}

func newMalformedf(format string, args ...interface{}) *MalformedInputError {
	return &MalformedInputError{Detail: fmt.Sprintf(format, args...)}
}
