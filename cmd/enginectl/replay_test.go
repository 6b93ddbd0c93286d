package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplayCommand(t *testing.T) {
	tests := []struct {
		name        string
		trace       string
		json        bool
		validate    bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "lifo text",
			trace:       "lifo.yaml",
			validate:    true,
			wantContain: []string{"acquire", "0:1", "value=10", "Live slots: 1", "Segments: 1"},
		},
		{
			name:        "signals text",
			trace:       "signals.yaml",
			wantContain: []string{"fired=[C(1) B(1) A(1)]", "Subscriptions: 0"},
		},
		{
			name:        "lifo json",
			trace:       "lifo.yaml",
			json:        true,
			wantContain: []string{`"run_id"`, `"handle": "0:1"`, `"reuses"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json
			replayValidate = tt.validate

			out, err := captureOutput(t, func() error {
				return runReplay([]string{testTracePath(t, tt.trace)})
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.json {
				assertJSON(t, out)
			}
			assertContains(t, out, tt.wantContain)
		})
	}
}

func TestReplayCommand_MissingFile(t *testing.T) {
	resetFlags()
	err := runReplay([]string{"testdata/does-not-exist.yaml"})
	require.ErrorContains(t, err, "failed to open trace")
}
