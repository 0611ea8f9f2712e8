package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/courtside-labs/atp-dashboard/app/observability"
	"github.com/courtside-labs/atp-dashboard/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seasonCSV = `tourney_id,tourney_name,surface,tourney_date,match_num,winner_id,winner_name,winner_ioc,winner_rank,loser_id,loser_name,loser_ioc,loser_rank,w_ace,w_df,w_svpt,w_1stIn,w_1stWon,w_2ndWon,w_SvGms,w_bpSaved,w_bpFaced,l_ace,l_df,l_svpt,l_1stIn,l_1stWon,l_2ndWon,l_SvGms,l_bpSaved,l_bpFaced
2020-0580,Australian Open,Hard,20200120,1,104925,Novak Djokovic,SRB,2,106233,Dominic Thiem,AUT,5,12,2,100,65,60,20,20,5,7,8,3,110,70,55,20,19,9,12
2020-0495,Dubai,Hard,20200217,2,104925,Novak Djokovic,SRB,1,126774,Stefanos Tsitsipas,GRE,6,8,1,90,60,50,18,15,3,3,4,2,85,50,44,17,14,2,5
2020-0337,Vienna,Hard,20201026,3,126203,Lorenzo Sonego,ITA,42,104925,Novak Djokovic,SRB,1,7,0,60,40,35,12,10,1,1,6,4,75,45,38,14,11,4,7
`

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	dataset := filepath.Join(dir, "atp_matches_2020.csv")
	require.NoError(t, os.WriteFile(dataset, []byte(seasonCSV), 0o600))

	t.Setenv("ATP_DATASET_PATH", dataset)
	cfg, err := config.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	obsCfg := config.ToObsConfig(cfg)
	obsCfg.Output = io.Discard
	obs, err := observability.Init(context.Background(), obsCfg)
	require.NoError(t, err)

	a, err := NewApp(context.Background(), cfg, obs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestApp_ServesDashboard(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t).Handler())
	defer srv.Close()

	get := func(path string) *http.Response {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	t.Run("stats", func(t *testing.T) {
		resp := get("/api/stats?player=Novak+Djokovic&mode=won")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "SRB", body["country_of_origin"])
		assert.InDelta(t, 1.5, body["average_ranking"], 1e-9)
		assert.InDelta(t, 100.0*110/190, body["first_serve_win_pct"], 1e-9)
		assert.Equal(t, map[string]any{"won": 2.0, "lost": 1.0}, body["win_loss"])
	})

	t.Run("players", func(t *testing.T) {
		resp := get("/api/players")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `["Lorenzo Sonego","Novak Djokovic"]`, string(b))
	})

	t.Run("chart", func(t *testing.T) {
		resp := get("/api/charts/first-serve.png?player=Novak+Djokovic&window=last+6+weeks")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	})

	t.Run("dashboard", func(t *testing.T) {
		resp := get("/")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(b), "Player Name: Novak Djokovic"))
	})

	t.Run("health", func(t *testing.T) {
		resp := get("/healthz")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestNewApp_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ATP_DATASET_PATH", filepath.Join(dir, "absent.csv"))
	cfg, err := config.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	obsCfg := config.ToObsConfig(cfg)
	obsCfg.Output = io.Discard
	obs, err := observability.Init(context.Background(), obsCfg)
	require.NoError(t, err)

	_, err = NewApp(context.Background(), cfg, obs)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a := newTestApp(t)
	a.Config.HTTP.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	assert.NoError(t, <-done)
}
