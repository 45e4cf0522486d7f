package tsv

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader reads a tab-separated variant table. The first non-empty line is the
// header; all following lines are data rows. Supports plain and gzipped input.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    []string
}

// NewReader opens a TSV file for reading. Gzipped files are detected by their
// magic bytes and decompressed transparently. Use "-" for stdin.
func NewReader(path string) (*Reader, error) {
	if path == "-" {
		return NewReaderFrom(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open variant file: %w", err)
	}

	r := &Reader{file: file}

	buf := make([]byte, 2)
	if _, err := file.Read(buf); err != nil {
		file.Close()
		return nil, fmt.Errorf("read variant file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek variant file: %w", err)
	}

	// gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReader(r.gzipReader)
	} else {
		r.reader = bufio.NewReader(file)
	}

	if err := r.parseHeader(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// NewReaderFrom creates a Reader from an io.Reader (e.g. stdin).
func NewReaderFrom(src io.Reader) (*Reader, error) {
	r := &Reader{reader: bufio.NewReader(src)}
	if err := r.parseHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// parseHeader reads the first non-empty line as the column header.
// Lines starting with '#' are NOT skipped: annotator output such as InterVar
// uses "#Chr" as the first header column.
func (r *Reader) parseHeader() error {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				return &ParseError{Line: r.lineNumber, Message: "no header line found"}
			}
			if err != io.EOF {
				return fmt.Errorf("read header: %w", err)
			}
		}
		r.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		r.columns = strings.Split(line, "\t")
		return nil
	}
}

// Next reads the next data row. Returns a zero Record and false at EOF.
func (r *Reader) Next() (Record, bool, error) {
	for {
		line, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return Record{}, false, fmt.Errorf("read variant line: %w", err)
		}
		atEOF := err == io.EOF
		r.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if atEOF {
				return Record{}, false, nil
			}
			continue
		}

		return Record{Fields: strings.Split(line, "\t")}, true, nil
	}
}

// ReadAll consumes the remaining rows and returns the complete table.
func (r *Reader) ReadAll() (*Table, error) {
	t := &Table{Columns: r.columns}
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return t, nil
		}
		t.Rows = append(t.Rows, rec)
	}
}

// Columns returns the parsed header columns.
func (r *Reader) Columns() []string {
	return r.columns
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the reader and the underlying file.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ParseError is an error during TSV parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tsv parse error at line %d: %s", e.Line, e.Message)
}
