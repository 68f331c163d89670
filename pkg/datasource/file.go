package datasource

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

type FileSource struct {
	dataSourceName string
	reader         *mmap.ReaderAt
	scanner        *bufio.Scanner
}

func NewFileSource(dataSourceName string) *FileSource {
	return &FileSource{
		dataSourceName: dataSourceName,
	}
}

func (s *FileSource) Open() error {
	var err error
	s.reader, err = mmap.Open(s.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open data source %q: %w", s.dataSourceName, err)
	}
	s.scanner = bufio.NewScanner(io.NewSectionReader(s.reader, 0, int64(s.reader.Len())))
	s.scanner.Split(scanRows)
	return nil
}

func (s *FileSource) Close() error {
	if s.reader == nil {
		return nil
	}
	return s.reader.Close()
}

func (s *FileSource) Next(ctx context.Context) (string, error) {
	if s.scanner == nil {
		return "", fmt.Errorf("data source %q is not open", s.dataSourceName)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return "", fmt.Errorf("unable to read %q: %w", s.dataSourceName, err)
			}
			return "", ErrEof
		}
		row := bytes.TrimSuffix(s.scanner.Bytes(), []byte{'\r'})
		if len(row) == 0 {
			continue
		}
		return string(row), nil
	}
}

func scanRows(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\n;"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
