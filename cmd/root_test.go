package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/riverwqi/internal/config"
	"github.com/dotcommander/riverwqi/internal/model"
)

// setupTestDir moves into a temp dir with an optional .riverwqirc.yaml and a
// clean viper state.
func setupTestDir(t *testing.T, rc string) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))

	if rc != "" {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".riverwqirc.yaml"), []byte(rc), 0644))
	}

	viper.Reset()
	bindFlags()
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
		viper.Reset()
	})
	return tmpDir
}

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "riverwqi", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	for _, name := range []string{"config", "quiet", "verbose", "format", "output"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "f", rootCmd.PersistentFlags().Lookup("format").Shorthand)
	assert.Equal(t, "o", rootCmd.PersistentFlags().Lookup("output").Shorthand)
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		cmd *cobra.Command
		use string
	}{
		{predictCmd, "predict <distance>"},
		{batchCmd, "batch [distances...]"},
		{reportCmd, "report <distance>"},
		{standardsCmd, "standards"},
		{trendCmd, "trend"},
		{serveCmd, "serve"},
		{configCmd, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.NotEmpty(t, tt.cmd.Long)
			assert.NotNil(t, tt.cmd.Run)
			assert.Equal(t, rootCmd, tt.cmd.Parent())
		})
	}
}

func TestParseDistance(t *testing.T) {
	d, err := parseDistance(" 4.5 ")
	require.NoError(t, err)
	assert.Equal(t, 4.5, d)

	_, err = parseDistance("far")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
	assert.Contains(t, err.Error(), `"far"`)
}

func TestBindFlags(t *testing.T) {
	setupTestDir(t, "")
	require.NoError(t, trendCmd.Flags().Set("points", "33"))
	t.Cleanup(func() {
		_ = trendCmd.Flags().Set("points", "120")
		trendCmd.Flags().Lookup("points").Changed = false
	})

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 33, cfg.Plot.Points)
}

func TestRunPredict(t *testing.T) {
	dir := setupTestDir(t, "format: json\noutput: predict.json\n")

	require.NoError(t, runPredict([]string{"10"}))

	data, err := os.ReadFile(filepath.Join(dir, "predict.json"))
	require.NoError(t, err)

	var report struct {
		Evaluation struct {
			Distance float64 `json:"distance_km"`
		} `json:"evaluation"`
		Issues []string `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 10.0, report.Evaluation.Distance)
	assert.Contains(t, report.Issues, "High TDS (780.370)")
}

func TestRunPredict_InvalidDistance(t *testing.T) {
	setupTestDir(t, "")

	for _, arg := range []string{"0", "-1", "abc"} {
		err := runPredict([]string{arg})
		require.Error(t, err, arg)
		assert.True(t, errors.Is(err, model.ErrInvalidInput), arg)
	}
}

func TestRunPredict_BadConfig(t *testing.T) {
	setupTestDir(t, "format: xml\n")

	err := runPredict([]string{"5"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading configuration")
}

func TestRunBatch_Args(t *testing.T) {
	dir := setupTestDir(t, "format: markdown\noutput: batch.md\n")

	require.NoError(t, runBatch([]string{"5,0", "-2,10"}))

	data, err := os.ReadFile(filepath.Join(dir, "batch.md"))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "| 5 |")
	assert.Contains(t, out, "| 10 |")
	assert.Contains(t, out, "## Skipped")
	assert.Contains(t, out, "| Count | 2 |")
}

func TestRunBatch_Files(t *testing.T) {
	dir := setupTestDir(t, "format: json\noutput: batch.json\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "survey"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "survey", "june.distances"), []byte("# june\n1\n2\n"), 0644))

	batchFiles = []string{"survey/*.distances"}
	t.Cleanup(func() { batchFiles = nil })

	require.NoError(t, runBatch([]string{"3"}))

	data, err := os.ReadFile(filepath.Join(dir, "batch.json"))
	require.NoError(t, err)

	var report struct {
		Batch struct {
			Results []struct {
				Distance float64 `json:"distance_km"`
			} `json:"results"`
		} `json:"batch"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report.Batch.Results, 3)
	assert.Equal(t, 3.0, report.Batch.Results[0].Distance)
	assert.Equal(t, 1.0, report.Batch.Results[1].Distance)
	assert.Equal(t, 2.0, report.Batch.Results[2].Distance)
}

func TestRunBatch_ConfigPatterns(t *testing.T) {
	dir := setupTestDir(t, "format: text\noutput: batch.txt\nbatch:\n  patterns:\n    - \"*.csv\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "points.csv"), []byte("4\n8\n"), 0644))

	require.NoError(t, runBatch(nil))

	data, err := os.ReadFile(filepath.Join(dir, "batch.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "count=2")
}

func TestRunBatch_NoDistances(t *testing.T) {
	setupTestDir(t, "")

	err := runBatch(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no batch distances given")
}

func TestRunReport(t *testing.T) {
	tests := []struct {
		name     string
		rc       string
		wantFile string
		check    func(t *testing.T, data []byte)
	}{
		{
			name:     "default text",
			wantFile: "sungan_report.txt",
			check: func(t *testing.T, data []byte) {
				assert.True(t, strings.HasPrefix(string(data), "Generated: "))
				assert.Contains(t, string(data), "Distance: 4.5 km")
				assert.Contains(t, string(data), "Overall WQI: ")
			},
		},
		{
			name:     "pdf",
			rc:       "format: pdf\nquiet: true\n",
			wantFile: "sungan_report.pdf",
			check: func(t *testing.T, data []byte) {
				assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
			},
		},
		{
			name:     "explicit output",
			rc:       "format: markdown\noutput: out/site.md\nquiet: true\n",
			wantFile: "out/site.md",
			check: func(t *testing.T, data []byte) {
				assert.Contains(t, string(data), "**Distance:** 4.5 km")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupTestDir(t, tt.rc)

			require.NoError(t, runReport([]string{"4.5"}))

			data, err := os.ReadFile(filepath.Join(dir, tt.wantFile))
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestRunStandards(t *testing.T) {
	dir := setupTestDir(t, "format: markdown\noutput: standards.md\n")

	require.NoError(t, runStandards(nil))

	data, err := os.ReadFile(filepath.Join(dir, "standards.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "| DO | 5 | No max | mg/L |")
	assert.Contains(t, string(data), "## Rating Bands")
}

func TestRunTrend(t *testing.T) {
	dir := setupTestDir(t, "format: json\noutput: trend.json\nplot:\n  maxDistance: 10\n  points: 4\n")
	trendPNG = filepath.Join(dir, "trend.png")
	t.Cleanup(func() { trendPNG = "" })

	require.NoError(t, runTrend(nil))

	data, err := os.ReadFile(filepath.Join(dir, "trend.json"))
	require.NoError(t, err)
	var report struct {
		Trend struct {
			Distances []float64 `json:"distances"`
		} `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, []float64{1, 4, 7, 10}, report.Trend.Distances)

	f, err := os.Open(trendPNG)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestRunConfig_Write(t *testing.T) {
	dir := setupTestDir(t, "format: text\nquiet: true\nserver:\n  addr: \":9090\"\n")
	configWrite = filepath.Join(dir, "saved.json")
	t.Cleanup(func() { configWrite = "" })

	require.NoError(t, runConfig(nil))

	viper.Reset()
	cfg, err := config.LoadConfig(configWrite)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestRunCommandUsesExitFunc(t *testing.T) {
	setupTestDir(t, "")

	originalExitFunc := exitFunc
	exitCode := -1
	exitFunc = func(code int) {
		exitCode = code
	}
	defer func() { exitFunc = originalExitFunc }()

	runCommand(runPredict)(predictCmd, []string{"not-a-number"})
	assert.Equal(t, 1, exitCode)

	exitCode = -1
	runCommand(func([]string) error { return nil })(predictCmd, nil)
	assert.Equal(t, -1, exitCode)
}
