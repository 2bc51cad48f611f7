package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shekhar67907/SPC/internal/spc"
)

func analysisFixture(t *testing.T) *spc.Result {
	t.Helper()
	res, err := spc.Analyze(
		[]float64{10, 12, 11, 13, 9, 11, 10, 12, 11, 10},
		spc.Options{SubgroupSize: 2, LSL: 5, USL: 15},
	)
	require.NoError(t, err)
	return res
}

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestCreateCharts(t *testing.T) {
	res := analysisFixture(t)

	xbar, err := CreateXBarChart(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xbar, pngHeader), "X-bar chart is not a PNG")

	rng, err := CreateRangeChart(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(rng, pngHeader), "Range chart is not a PNG")

	hist, err := CreateHistogramChart(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(hist, pngHeader), "histogram chart is not a PNG")
}

func TestCreateHistogramChart_ZeroVariance(t *testing.T) {
	res, err := spc.Analyze(
		[]float64{10, 10, 10, 10, 10, 10, 10, 10},
		spc.Options{SubgroupSize: 2, LSL: 9, USL: 11},
	)
	require.NoError(t, err)

	img, err := CreateHistogramChart(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngHeader))
}

func TestBuildPDFReport(t *testing.T) {
	res := analysisFixture(t)

	charts := map[string][]byte{}
	for key, create := range map[string]func(*spc.Result) ([]byte, error){
		"xbar":      CreateXBarChart,
		"range":     CreateRangeChart,
		"histogram": CreateHistogramChart,
	} {
		img, err := create(res)
		require.NoError(t, err)
		charts[key] = img
	}

	path := filepath.Join(t.TempDir(), "report.pdf")
	meta := Meta{
		Source:      "test.csv",
		From:        "2024-01-01",
		To:          "2024-01-31",
		Shift:       "A",
		Material:    "EN8",
		Operation:   "Turning",
		Gauge:       "Micrometer",
		GeneratedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, BuildPDFReport(path, res, meta, charts))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000), "PDF looks truncated")
}

func TestBuildPDFReport_MissingChartsStillWrites(t *testing.T) {
	res := analysisFixture(t)
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, BuildPDFReport(path, res, Meta{Source: "test.csv", GeneratedAt: time.Now()}, nil))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestBuildPDFReport_NilResult(t *testing.T) {
	err := BuildPDFReport(filepath.Join(t.TempDir(), "report.pdf"), nil, Meta{}, nil)
	require.Error(t, err)
}
