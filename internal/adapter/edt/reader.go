// Package edt reads Vaisala MW41 EDT exports from disk.
package edt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/gapintheclouds/woest-sondes/internal/domain"
)

// maxLineBytes bounds a single EDT line; data rows are a few hundred bytes.
const maxLineBytes = 1 << 20

// Reader loads raw soundings. It implements pipeline.Extractor.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Extract reads the file at path as ISO-8859-1 text and splits it into lines.
func (r *Reader) Extract(ctx context.Context, path string) (domain.RawSounding, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawSounding{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.RawSounding{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return domain.RawSounding{}, fmt.Errorf("read %s: %w", path, err)
	}
	r.logger.Debug("edt file read", "file", path, "lines", len(lines))
	return domain.RawSounding{Path: path, Lines: lines}, nil
}

// ReadLines decodes Latin-1 input into UTF-8 lines with CR/LF endings removed.
func ReadLines(src io.Reader) ([]string, error) {
	sc := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(src))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
