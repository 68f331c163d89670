package datasource

import (
	"context"
	"errors"
	"strings"
)

var ErrEof = errors.New("EOF")

const (
	rowSeparator     = ';'
	sectionSeparator = "@"
)

// Source yields raw instrument lines one at a time. Next returns ErrEof once
// the source is exhausted.
type Source interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// SplitRows extracts the instrument rows of a feed payload. Only the first
// section (up to '@') is considered; rows are separated by ';' or new lines.
func SplitRows(payload string) []string {
	if i := strings.Index(payload, sectionSeparator); i >= 0 {
		payload = payload[:i]
	}

	fields := strings.FieldsFunc(payload, func(r rune) bool {
		return r == rowSeparator || r == '\n'
	})

	rows := fields[:0]
	for _, f := range fields {
		f = strings.TrimSuffix(f, "\r")
		if f == "" {
			continue
		}
		rows = append(rows, f)
	}
	return rows
}

type Lines struct {
	rows []string
	idx  int
}

func NewLines(rows ...string) *Lines {
	return &Lines{rows: rows}
}

func (l *Lines) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if l.idx >= len(l.rows) {
		return "", ErrEof
	}
	row := l.rows[l.idx]
	l.idx++
	return row, nil
}

func (l *Lines) Close() error {
	return nil
}
