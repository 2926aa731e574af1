package experiments

import (
	"os"
	"path/filepath"
	"polis/engine"
	"polis/experiments/metrics"
	"polis/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunReplays(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	writer, err := metrics.NewWriter(t.TempDir(), "replay")
	require.NoError(t, err)

	results, err := RunReplays(paths, writer)

	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for _, r := range results {
		require.NoError(t, r.Err, r.Path)
	}
	require.FileExists(t, filepath.Join(writer.Dir(), "game_records.csv"))
	require.FileExists(t, filepath.Join(writer.Dir(), "move_records.csv"))
}

func TestRunReplaysReportsFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
name: wrong winner
layout: 8/8/8/8/8/3C4/4r3/8
first: B
moves: ["6,4-6,3"]
expect:
  winner: B
`), 0644))

	results, err := RunReplays([]string{bad, filepath.Join(dir, "missing.yaml")}, nil)

	require.Error(t, err)
	require.Len(t, results, 2)
	require.ErrorIs(t, results[0].Err, ErrMismatch)
	require.Equal(t, "wrong winner", results[0].Name)
	require.Error(t, results[1].Err)
}

func TestReplay(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name: "matches",
			yaml: `
layout: RR6/R7/2r5/8/8/8/8/8
moves: ["0,0-1,1"]
expect: {layout: r7/1RR5/1R6/8/8/8/8/8, winner: none}
`,
		},
		{
			name: "wrong board",
			yaml: `
layout: RR6/R7/2r5/8/8/8/8/8
moves: ["0,0-1,1"]
expect: {layout: RR6/R7/2r5/8/8/8/8/8}
`,
			wantErr: ErrMismatch,
		},
		{
			name: "wrong capture count",
			yaml: `
layout: 8/8/3r4/8/3R4/3R4/8/8
moves: ["4,3-3,3"]
expect: {captures: 0}
`,
			wantErr: ErrMismatch,
		},
		{
			name: "illegal move",
			yaml: `
layout: 8/8/4r3/3R4/4r3/8/8/8
moves: ["3,3-3,4"]
`,
			wantErr: engine.ErrIllegalMove,
		},
		{
			name: "moves after the game ended",
			yaml: `
layout: 8/8/8/8/8/3C4/4r3/8
first: B
moves: ["6,4-6,3", "7,3-7,4"]
`,
			wantErr: ErrMismatch,
		},
		{
			name:    "bad move text",
			yaml:    `{layout: 8/8/8/8/8/8/8/8, moves: ["0,0"]}`,
			wantErr: game.ErrInvalidMove,
		},
		{
			name:    "bad layout",
			yaml:    `{layout: 8/8, moves: []}`,
			wantErr: game.ErrInvalidLayout,
		},
		{
			name:    "no board",
			yaml:    `{moves: []}`,
			wantErr: ErrTranscript,
		},
		{
			name:    "bad team",
			yaml:    `{layout: 8/8/8/8/8/8/8/8, first: C}`,
			wantErr: ErrTranscript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := ParseTranscript([]byte(tt.yaml))
			require.NoError(t, err)

			_, _, _, err = Replay(tr)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseTranscriptRejectsBadYAML(t *testing.T) {
	_, err := ParseTranscript([]byte("moves: [unterminated"))
	require.ErrorIs(t, err, ErrTranscript)
}

func TestRunSoak(t *testing.T) {
	cfg := SoakConfig{Games: 12, Seed: 3, MaxTurns: 60, Goroutines: 4}

	report, err := RunSoak(cfg)

	require.NoError(t, err)
	require.Equal(t, 12, report.Games)
	total := 0
	for _, n := range report.Reasons {
		total += n
	}
	require.Equal(t, 12, total)

	again, err := RunSoak(cfg)
	require.NoError(t, err)
	require.Equal(t, report.Wins, again.Wins)
	require.Equal(t, report.Reasons, again.Reasons)
	require.Equal(t, report.Moves, again.Moves)
}

func TestRunSoakWritesRecords(t *testing.T) {
	writer, err := metrics.NewWriter(t.TempDir(), "soak")
	require.NoError(t, err)

	_, err = RunSoak(SoakConfig{Games: 2, Seed: 9, MaxTurns: 10, Goroutines: 2, Writer: writer})

	require.NoError(t, err)
	require.FileExists(t, filepath.Join(writer.Dir(), "game_records.csv"))
}

func TestCheckInvariants(t *testing.T) {
	b, err := game.DecodeLayout("RR6/R7/2r5/8/8/8/8/8")
	require.NoError(t, err)
	before := game.NewGameState(b, game.TeamA)
	move := game.GameMove{From: game.Position{Row: 0, Col: 0}, To: game.Position{Row: 1, Col: 1}}

	after := before.Apply(move)
	require.NoError(t, CheckInvariants(before, move, after))

	t.Run("stale stun", func(t *testing.T) {
		broken := after.Copy()
		broken.Board.Place(game.Position{Row: 5, Col: 5}, game.TeamA, game.Carrier).Stunned = true
		require.ErrorIs(t, CheckInvariants(before, move, broken), ErrInvariant)
	})

	t.Run("lost piece", func(t *testing.T) {
		broken := after.Copy()
		broken.Board.Clear(game.Position{Row: 2, Col: 1})
		require.ErrorIs(t, CheckInvariants(before, move, broken), ErrInvariant)
	})

	t.Run("winner out of sync", func(t *testing.T) {
		broken := after.Copy()
		broken.Won = game.TeamB
		require.ErrorIs(t, CheckInvariants(before, move, broken), ErrInvariant)
	})

	t.Run("illegal move", func(t *testing.T) {
		bad := game.GameMove{From: game.Position{Row: 0, Col: 0}, To: game.Position{Row: 2, Col: 2}}
		require.ErrorIs(t, CheckInvariants(before, bad, after), ErrInvariant)
	})
}
