package report

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/riverwqi/internal/analyzer"
)

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func evaluate(t *testing.T, distance float64) *analyzer.Evaluation {
	t.Helper()
	ev, err := analyzer.New(nil).Evaluate(distance)
	require.NoError(t, err)
	ev.GeneratedAt = fixedTime
	return ev
}

func TestText(t *testing.T) {
	ev := evaluate(t, 10)
	text := Text(ev)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	require.Len(t, lines, 10)
	assert.Equal(t, "Generated: 2025-03-14 09:26:53", lines[0])
	assert.Equal(t, "Distance: 10 km", lines[1])
	assert.Equal(t, "  pH        : 7.6290", lines[2])
	assert.Equal(t, "  DO        : 8.2000", lines[3])
	assert.True(t, strings.HasPrefix(lines[5], "  TDS       : 780.37"), lines[5])
	assert.True(t, strings.HasPrefix(lines[9], "Overall WQI: "), lines[9])
	assert.True(t, strings.HasSuffix(lines[9], "--> "+string(ev.WQI.Rating)), lines[9])
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "5", FormatDistance(5))
	assert.Equal(t, "4.5", FormatDistance(4.5))
	assert.Equal(t, "0.25", FormatDistance(0.25))
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "sungan_report.pdf", DefaultFileName("pdf"))
	assert.Equal(t, "sungan_report.txt", DefaultFileName(".txt"))
}

func TestWrapLines(t *testing.T) {
	long := strings.Repeat("a", 250)
	lines := WrapLines("short\n"+long+"\n", 100)

	require.Len(t, lines, 4)
	assert.Equal(t, "short", lines[0])
	assert.Len(t, lines[1], 100)
	assert.Len(t, lines[2], 100)
	assert.Len(t, lines[3], 50)
}

func TestWrapLinesCountsRunes(t *testing.T) {
	lines := WrapLines(strings.Repeat("✓", 5), 2)
	assert.Equal(t, []string{"✓✓", "✓✓", "✓"}, lines)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, fixedTime, Text(evaluate(t, 4.5))))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWritePDFPaginates(t *testing.T) {
	body := strings.Repeat("line\n", 200)

	var short, long bytes.Buffer
	require.NoError(t, WritePDF(&short, fixedTime, "line\n"))
	require.NoError(t, WritePDF(&long, fixedTime, body))

	assert.Equal(t, 1, bytes.Count(short.Bytes(), []byte("/Type /Page\n")))
	assert.Greater(t, bytes.Count(long.Bytes(), []byte("/Type /Page\n")), 1)
}

func TestPDFOrText(t *testing.T) {
	var buf bytes.Buffer
	fallback, err := PDFOrText(&buf, fixedTime, "body\n")
	require.NoError(t, err)
	assert.NoError(t, fallback)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFOrTextFallsBack(t *testing.T) {
	orig := renderPDF
	t.Cleanup(func() { renderPDF = orig })
	renderPDF = func(io.Writer, time.Time, string) error {
		return errors.New("no fonts")
	}

	var buf bytes.Buffer
	fallback, err := PDFOrText(&buf, fixedTime, "body\n")
	require.NoError(t, err)
	require.Error(t, fallback)
	assert.Contains(t, fallback.Error(), "no fonts")
	assert.Equal(t, "body\n", buf.String())
}
