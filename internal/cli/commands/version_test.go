package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/unitconv/internal/cli/output"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

func TestVersionCommand_Text(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		wantOut []string
	}{
		{
			name:    "release build",
			info:    BuildInfo{Version: "1.2.3", BuildDate: "2026-01-02", GitCommit: "abc123"},
			wantOut: []string{"unitconv v1.2.3\n", "(commit abc123, 2026-01-02)", "7 quantities", "rounding affine"},
		},
		{
			name:    "dev build",
			info:    BuildInfo{Version: "dev", BuildDate: "unknown", GitCommit: "unknown"},
			wantOut: []string{"unitconv vdev\n", "built with go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCommandTest(t)
			out, _, err := execute(t, NewVersionCommand(tt.info))
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	cfg := setupCommandTest(t)
	cfg.OutputFormat = "json"
	cfg.Rounding = units.RoundAll

	out, _, err := execute(t, NewVersionCommand(BuildInfo{Version: "0.1.0", BuildDate: "unknown", GitCommit: "unknown"}))
	require.NoError(t, err)

	var got output.VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0.1.0", got.Version)
	assert.Equal(t, len(units.Quantities()), got.Quantities)
	assert.Equal(t, "all", got.Rounding)

	total := 0
	for _, q := range units.Quantities() {
		list, err := units.ListUnits(q)
		require.NoError(t, err)
		total += len(list)
	}
	assert.Equal(t, total, got.Units)
}

func TestVersionCommand_RejectsArgs(t *testing.T) {
	setupCommandTest(t)
	_, _, err := execute(t, NewVersionCommand(BuildInfo{Version: "test"}), "extra")
	assert.Error(t, err)
}
