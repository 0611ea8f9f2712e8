package matchdataset

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	"github.com/courtside-labs/atp-dashboard/app/modules/matches/infrastructure/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvData = `tourney_date,winner_name,loser_name,winner_ioc,winner_rank,w_svpt,w_1stWon,w_ace,w_bpSaved,w_bpFaced
20200106,Novak Djokovic,Rafael Nadal,SRB,2,70,40,10,2,3
20200113,Rafael Nadal,Novak Djokovic,ESP,1,80,45,5,4,6
`

type fakeFactory struct {
	parser parsers.Parser
	err    error
}

func (f fakeFactory) GetParser(string) (parsers.Parser, error) { return f.parser, f.err }

type fakeParser struct {
	records []matchtypes.MatchRecord
	err     error
}

func (p fakeParser) Parse([]byte) ([]matchtypes.MatchRecord, error) { return p.records, p.err }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("csv file", func(t *testing.T) {
		ds, err := NewLoader(nil, logger).Load(writeFile(t, "atp.csv", csvData))
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Len())
		assert.Equal(t, []string{"Novak Djokovic", "Rafael Nadal"}, ds.Players())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader(nil, logger).Load(filepath.Join(t.TempDir(), "missing.csv"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewLoader(nil, logger).Load(writeFile(t, "atp.json", "{}"))
		assert.ErrorIs(t, err, parsers.ErrUnsupportedFile)
	})

	t.Run("parser failure", func(t *testing.T) {
		boom := errors.New("boom")
		loader := NewLoader(fakeFactory{parser: fakeParser{err: boom}}, logger)
		_, err := loader.Load(writeFile(t, "atp.csv", csvData))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no records", func(t *testing.T) {
		loader := NewLoader(fakeFactory{parser: fakeParser{}}, logger)
		_, err := loader.Load(writeFile(t, "atp.csv", csvData))
		assert.ErrorIs(t, err, matchtypes.ErrEmptyDataset)
	})
}
