package parsers

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleHeader = "tourney_id,tourney_name,surface,tourney_date,match_num,winner_id,winner_name,winner_ioc,winner_rank,loser_id,loser_name,loser_ioc,loser_rank,score,best_of,round,w_ace,w_df,w_svpt,w_1stIn,w_1stWon,w_2ndWon,w_SvGms,w_bpSaved,w_bpFaced,l_ace,l_df,l_svpt,l_1stIn,l_1stWon,l_2ndWon,l_SvGms,l_bpSaved,l_bpFaced"

var sampleRows = []string{
	"2020-0580,Australian Open,Hard,20200120,100,104925,Novak Djokovic,SRB,2,105138,Roberto Bautista Agut,ESP,10,6-3 6-4,3,QF,9,2,80,55,44,15,12,3,4,4,3,70,40,28,14,11,5,9",
	"2020-0580,Australian Open,Hard,20200120,101,105138,Roberto Bautista Agut,ESP,10,200000,Qualifier Q,,,6-0 6-0,3,R128,,,,,,,,,,,,,,,,,,",
}

func sampleCSV(rows ...string) string {
	return sampleHeader + "\n" + strings.Join(rows, "\n")
}

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "atp_matches_2020.csv", want: "csv"},
		{name: "upper-case extension", filename: "ATP.CSV", want: "csv"},
		{name: "xlsx file", filename: "matches.xlsx", want: "xlsx"},
		{name: "unsupported file", filename: "matches.txt", wantErr: true},
		{name: "no extension", filename: "matches", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFile)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			}
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	records, err := NewCSVParser().Parse([]byte(sampleCSV(sampleRows...)))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Novak Djokovic", first.WinnerName)
	assert.Equal(t, "SRB", first.WinnerIOC)
	assert.Equal(t, time.Date(2020, 1, 20, 0, 0, 0, 0, time.UTC), first.TourneyDate)
	require.NotNil(t, first.WinnerRank)
	assert.Equal(t, 2, *first.WinnerRank)
	require.NotNil(t, first.Winner)
	assert.Equal(t, 80, first.Winner.ServePoints)
	assert.Equal(t, 44, first.Winner.FirstWon)
	assert.Equal(t, 9, first.Winner.Aces)
	assert.Equal(t, 3, first.Winner.BPSaved)
	assert.Equal(t, 4, first.Winner.BPFaced)
	require.NotNil(t, first.Loser)
	assert.Equal(t, 70, first.Loser.ServePoints)
	assert.Equal(t, 100, first.MatchNum)
	assert.Equal(t, "QF", first.Round)

	walkover := records[1]
	assert.Nil(t, walkover.Winner, "blank serve columns mean no stats")
	assert.Nil(t, walkover.Loser)
	assert.Nil(t, walkover.LoserRank)
	assert.Equal(t, "", walkover.LoserIOC)
}

func TestCSVParser_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		wantRow int
	}{
		{
			name:    "empty file",
			data:    "",
			wantErr: ErrMissingHeader,
		},
		{
			name:    "header only",
			data:    sampleHeader,
			wantErr: ErrNoRows,
		},
		{
			name:    "missing required column",
			data:    "winner_name,loser_name\nA,B",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "bad date",
			data:    sampleCSV(strings.Replace(sampleRows[0], "20200120", "2020-13-45", 1)),
			wantErr: ErrInvalidDate,
			wantRow: 2,
		},
		{
			name:    "non-numeric serve stat",
			data:    sampleCSV(sampleRows[1], strings.Replace(sampleRows[0], ",80,", ",eighty,", 1)),
			wantErr: ErrInvalidNumber,
			wantRow: 3,
		},
		{
			name:    "serve stat beyond int range",
			data:    sampleCSV(strings.Replace(sampleRows[0], ",80,", ",1e300,", 1)),
			wantErr: ErrInvalidNumber,
			wantRow: 2,
		},
		{
			name:    "integer beyond int range",
			data:    sampleCSV(strings.Replace(sampleRows[0], ",80,", ",99999999999999999999,", 1)),
			wantErr: ErrInvalidNumber,
			wantRow: 2,
		},
		{
			name:    "missing winner name",
			data:    sampleCSV(strings.Replace(sampleRows[0], "Novak Djokovic", "", 1)),
			wantErr: ErrMissingValue,
			wantRow: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVParser().Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantRow > 0 {
				var rowErr *RowError
				require.True(t, errors.As(err, &rowErr))
				assert.Equal(t, tt.wantRow, rowErr.Row)
			}
		})
	}
}

func TestCSVParser_OptionalColumnsAbsent(t *testing.T) {
	data := "tourney_date,winner_name,loser_name,winner_ioc,winner_rank,w_svpt,w_1stWon,w_ace,w_bpSaved,w_bpFaced\n" +
		"20200203,Dominic Thiem,Rafael Nadal,AUT,5.0,90,50,7,6,9\n"

	records, err := NewCSVParser().Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Winner)
	assert.Equal(t, 90, records[0].Winner.ServePoints)
	assert.Equal(t, 0, records[0].Winner.DoubleFaults)
	assert.Nil(t, records[0].Loser)
	require.NotNil(t, records[0].WinnerRank)
	assert.Equal(t, 5, *records[0].WinnerRank)
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]string{strings.Split(sampleHeader, ",")}
	for _, r := range sampleRows {
		rows = append(rows, strings.Split(r, ","))
	}
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	records, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Novak Djokovic", records[0].WinnerName)
	require.NotNil(t, records[0].Winner)
	assert.Equal(t, 44, records[0].Winner.FirstWon)
	assert.Nil(t, records[1].Winner)
}

func TestXLSXParser_NotAWorkbook(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte(sampleCSV(sampleRows...)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open XLSX file")
}

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantOK  bool
		wantErr bool
	}{
		{in: "", wantOK: false},
		{in: "NaN", wantOK: false},
		{in: "-", wantOK: false},
		{in: "12", want: 12, wantOK: true},
		{in: "12.0", want: 12, wantOK: true},
		{in: "1e3", want: 1000, wantOK: true},
		{in: "12.5", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "1e300", wantErr: true},
		{in: "9223372036854775808", wantErr: true},
		{in: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok, err := parseOptionalInt(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSVParser_PartiallyBlankServeSide(t *testing.T) {
	// w_ace blank, every other winner serve cell filled.
	row := strings.Replace(sampleRows[0], ",QF,9,", ",QF,,", 1)
	records, err := NewCSVParser().Parse([]byte(sampleCSV(row)))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Nil(t, records[0].Winner, "a partially blank side has no stats")
	require.NotNil(t, records[0].Loser)
	assert.Equal(t, 70, records[0].Loser.ServePoints)
}
