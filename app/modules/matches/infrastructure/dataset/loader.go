package matchdataset

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	"github.com/courtside-labs/atp-dashboard/app/modules/matches/infrastructure/parsers"
)

// Loader reads the season table from disk exactly once per call.
type Loader struct {
	factory parsers.ParserFactory
	logger  *slog.Logger
}

// NewLoader creates a Loader. A nil factory uses the extension-based default.
func NewLoader(factory parsers.ParserFactory, logger *slog.Logger) *Loader {
	if factory == nil {
		factory = parsers.NewFactory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{factory: factory, logger: logger}
}

// Load parses path into an immutable Dataset. Any failure is meant to be fatal
// to the caller; there is no partial dataset.
func (l *Loader) Load(path string) (*matchtypes.Dataset, error) {
	start := time.Now()

	parser, err := l.factory.GetParser(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	records, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	ds, err := matchtypes.NewDataset(records)
	if err != nil {
		return nil, fmt.Errorf("failed to index dataset %s: %w", path, err)
	}

	l.logger.Info("Dataset loaded",
		slog.String("path", path),
		slog.Int("matches", ds.Len()),
		slog.Int("players", len(ds.Players())),
		slog.String("last_tourney_date", ds.LastDate().Format("2006-01-02")),
		slog.Duration("elapsed", time.Since(start)),
	)

	return ds, nil
}
