package parsers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
)

var ErrUnsupportedFile = errors.New("unsupported file type")

// Parser turns a raw match-results file into records.
type Parser interface {
	Parse(data []byte) ([]matchtypes.MatchRecord, error)
}

// ParserFactory picks a parser for a file name.
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension
type Factory struct{}

// NewFactory creates a new parser factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the appropriate parser for the given filename
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
}
