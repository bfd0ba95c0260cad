package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single log line.
const maxLineSize = 1024 * 1024

// FileSource implements LineSource for reading a single log file.
// The file is opened on the first call to Next and closed once it is
// exhausted, when a read fails, or when Close is called.
type FileSource struct {
	path string

	file    *os.File
	scanner *bufio.Scanner
	lineNum int
	done    bool
}

// NewFileSource creates a LineSource that reads from the given file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file path this source reads.
func (s *FileSource) Path() string {
	return s.path
}

// Next returns the next line of the file.
// Returns io.EOF when the file has been exhausted.
func (s *FileSource) Next(ctx context.Context) (*LogLine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.done {
		return nil, io.EOF
	}

	if s.scanner == nil {
		if err := s.open(); err != nil {
			s.done = true
			return nil, err
		}
	}

	if s.scanner.Scan() {
		s.lineNum++
		return &LogLine{
			Content: s.scanner.Text(),
			Source:  s.path,
			LineNum: s.lineNum,
		}, nil
	}

	s.done = true
	scanErr := s.scanner.Err()
	closeErr := s.close()

	if scanErr != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, scanErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("closing %s: %w", s.path, closeErr)
	}
	return nil, io.EOF
}

// Close releases resources.
func (s *FileSource) Close() error {
	s.done = true
	return s.close()
}

func (s *FileSource) open() error {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return &FileNotFoundError{Path: s.path, Err: err}
	}

	s.file = f
	s.scanner = bufio.NewScanner(f)
	s.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	s.lineNum = 0
	return nil
}

func (s *FileSource) close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
