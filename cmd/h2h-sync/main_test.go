package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"github.com/Haynesmodel/DarlingDraft/internal/publisher"
)

func sleeperServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/league/L1/users", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"user_id":"u1","username":"alpha","display_name":"Alpha Dog","metadata":{"team_name":"Dogs"}},
			{"user_id":"u2","username":"beta","display_name":"Beta Cat","metadata":{}}
		]`))
	})
	mux.HandleFunc("/league/L1/rosters", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"roster_id":1,"owner_id":"u1"},{"roster_id":2,"owner_id":"u2"}]`))
	})
	mux.HandleFunc("/league/L1/matchups/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"matchup_id":1,"roster_id":1,"points":88.4},{"matchup_id":1,"roster_id":2,"points":90.256}]`))
	})
	mux.HandleFunc("/league/L1/matchups/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"matchup_id":1,"roster_id":1,"points":0},{"matchup_id":1,"roster_id":2,"points":0}]`))
	})
	mux.HandleFunc("/league/L1/matchups/3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/league/L1/matchups/4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type fixture struct {
	dir    string
	in     string
	out    string
	mapf   string
	base   string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newFixture(t *testing.T, store, mapping string) *fixture {
	t.Helper()

	f := &fixture{dir: t.TempDir(), base: sleeperServer(t).URL}
	f.in = filepath.Join(f.dir, "H2H.json")
	f.out = filepath.Join(f.dir, "out.json")
	f.mapf = filepath.Join(f.dir, "map.json")

	require.NoError(t, os.WriteFile(f.in, []byte(store), 0o644))
	if mapping != "" {
		require.NoError(t, os.WriteFile(f.mapf, []byte(mapping), 0o644))
	}
	return f
}

func (f *fixture) run(extra ...string) int {
	args := append([]string{
		"--league", "L1",
		"--h2h", f.in,
		"--out", f.out,
		"--api-base", f.base,
		"--log-level", "error",
		"--cutoff-date", "2025-12-31",
	}, extra...)
	f.stdout.Reset()
	f.stderr.Reset()
	return run(context.Background(), args, noEnv, &f.stdout, &f.stderr)
}

const fullMapping = `{"1":"Alpha","2":"Beta"}`

func TestRun_AppendsAndIsIdempotent(t *testing.T) {
	f := newFixture(t, `[{"season":2024,"date":"2024-09-08","teamA":"X","teamB":"Y","scoreA":1,"scoreB":2,"week":1,"round":"","type":"Regular","note":"keep"}]`, fullMapping)

	code := f.run("--map", f.mapf, "--weeks", "1-2")
	require.Equal(t, exitOK, code, f.stderr.String())
	require.Contains(t, f.stdout.String(), "Done. Appended 1 new games. Wrote: "+f.out+". Sort mode: season. Only-played: true. Cutoff: 2025-12-31")

	records, err := history.Load(f.out)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Alpha", records[1].TeamA)
	require.Equal(t, 90.26, records[1].ScoreB)
	require.Equal(t, "2025-09-07", records[1].Date)

	raw, err := os.ReadFile(f.out)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"note": "keep"`)

	f.in = f.out
	code = f.run("--map", f.mapf, "--weeks", "1-2")
	require.Equal(t, exitOK, code, f.stderr.String())
	require.Contains(t, f.stdout.String(), "Done. Appended 0 new games.")
}

func TestRun_UnanchoredSeasonWithEmptyWeeks(t *testing.T) {
	f := newFixture(t, `[]`, fullMapping)

	code := f.run("--map", f.mapf, "--season", "2024", "--weeks", "4")
	require.Equal(t, exitOK, code, f.stderr.String())
	require.Contains(t, f.stdout.String(), "Done. Appended 0 new games. Wrote: "+f.out)

	records, err := history.Load(f.out)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestRun_PublishesEventWithAbsoluteOutput(t *testing.T) {
	mr := miniredis.RunT(t)
	f := newFixture(t, `[]`, fullMapping)

	code := f.run("--map", f.mapf, "--weeks", "1-2", "--redis-url", "redis://"+mr.Addr()+"?protocol=2")
	require.Equal(t, exitOK, code, f.stderr.String())

	entries, err := mr.Stream(publisher.AppendedGamesStream)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	values := map[string]interface{}{}
	for i := 0; i+1 < len(entries[0].Values); i += 2 {
		values[entries[0].Values[i]] = entries[0].Values[i+1]
	}
	event, err := publisher.DecodeSyncEvent(values)
	require.NoError(t, err)
	require.Equal(t, 1, event.Appended)
	require.True(t, filepath.IsAbs(event.Output))
	require.Equal(t, f.out, event.Output)

	require.True(t, mr.Exists("sleeper:/league/L1/matchups/1"))
}

func TestRun_ListTeams(t *testing.T) {
	f := newFixture(t, `[]`, "")

	code := f.run("--list-teams")
	require.Equal(t, exitOK, code, f.stderr.String())

	out := f.stdout.String()
	require.Contains(t, out, `"display_name": "Alpha Dog"`)
	require.Contains(t, out, `"sleeper_team_name": "Dogs"`)
	require.Contains(t, out, "\nTip: create a mapping JSON like:\n{\n  \"1\": \"\",\n  \"2\": \"\"\n}\n")

	_, err := os.Stat(f.out)
	require.True(t, os.IsNotExist(err))
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		mapping string
		args    []string
		code    int
		stderr  string
	}{
		{name: "store not an array", store: `{"games":[]}`, mapping: fullMapping, code: exitSchema, stderr: "must be a list of game objects"},
		{name: "mapping absent", store: `[]`, code: exitConfig, stderr: "--map is required when appending data"},
		{name: "mapping incomplete", store: `[]`, mapping: `{"1":"Alpha","2":"  "}`, code: exitMappingIncomplete, stderr: "roster_id=2  display_name=Beta Cat  username=beta"},
		{name: "api failure", store: `[]`, mapping: fullMapping, args: []string{"--weeks", "1-3"}, code: exitRuntime, stderr: "500"},
		{name: "unsupported season", store: `[]`, mapping: fullMapping, args: []string{"--season", "2019"}, code: exitRuntime, stderr: "2019"},
		{name: "bad options", store: `[]`, mapping: fullMapping, args: []string{"--sort-mode", "sideways"}, code: exitUsage, stderr: "--sort-mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.store, tt.mapping)

			args := tt.args
			if tt.mapping != "" {
				args = append([]string{"--map", f.mapf}, args...)
			}

			require.Equal(t, tt.code, f.run(args...))
			require.Contains(t, f.stderr.String(), tt.stderr)

			_, err := os.Stat(f.out)
			require.True(t, os.IsNotExist(err), "output must not be written on failure")
		})
	}
}
