package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikey/phish-trainer/internal/core"
	"github.com/mikey/phish-trainer/internal/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCount(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		flag    int
		want    int
		wantErr bool
	}{
		{"flag default", nil, 10, 10, false},
		{"positional wins", []string{"25"}, 10, 25, false},
		{"not a number", []string{"many"}, 10, 0, true},
		{"zero", []string{"0"}, 10, 0, true},
		{"negative flag", nil, -3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveCount(tt.args, tt.flag)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "10", cmd.Flags().Lookup("count").DefValue)
	assert.Equal(t, "zh", cmd.Flags().Lookup("lang").DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("verbose"))
	assert.NotNil(t, cmd.Flags().Lookup("json-log"))
}

func TestRootCommand_RejectsExtraArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"1", "2"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestRun_NoBackendsIsConfigurationError(t *testing.T) {
	for _, key := range []string{"DEEPSEEK_API_KEY", "GEMINI_API_KEY", "PHISH_TRAINER_OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pool:\n  store: memory\n"), 0o600))

	var out bytes.Buffer
	err := run(context.Background(), &di.CLIFlags{Count: 1, Lang: "en", ConfigFile: path}, &out)
	assert.ErrorIs(t, err, errNoBackends)
	assert.Empty(t, out.String())
}

func TestRun_InvalidLocale(t *testing.T) {
	err := run(context.Background(), &di.CLIFlags{Count: 1, Lang: "fr"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, &core.BuildSummary{
		Locale: core.LocaleZH, Requested: 5, Succeeded: 4, Added: 4, Total: 19,
		Duration: 7340 * time.Millisecond,
	})

	assert.Contains(t, out.String(), "Locale:     zh")
	assert.Contains(t, out.String(), "Succeeded:  4")
	assert.Contains(t, out.String(), "Pool total: 19")
	assert.Contains(t, out.String(), "Duration:   7.3s")
}
