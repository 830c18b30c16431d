package report

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mweagle/doegen/doe"
	"github.com/mweagle/doegen/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDesign(t *testing.T) *doe.Design {
	t.Helper()
	design, err := doe.NewDesign(strategy.MethodLatinHypercube,
		[][]float64{{10, 20}, {1, 2.5}},
		map[string]interface{}{"num_samples": 8, "seed": 3},
		nil,
		nil)
	require.NoError(t, err)
	return design
}

func TestWriteCSV(t *testing.T) {
	samples := mat.NewDense(2, 2, []float64{
		0, 10,
		1.0 / 3.0, 20,
	})
	var output bytes.Buffer
	require.NoError(t, WriteCSV(&output, []string{"x", "y"}, samples, 4))
	assert.Equal(t, "x,y\n0,10\n0.3333,20\n", output.String())

	assert.Error(t, WriteCSV(&output, []string{"x"}, samples, 4))
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.csv")
	samples := mat.NewDense(1, 3, []float64{1.5, 2, -3})
	require.NoError(t, WriteCSVFile(path, []string{"a", "b c", "d,e"}, samples, 6))
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b c,\"d,e\"\n1.5,2,-3\n", string(contents))
}

func TestPlotDesign(t *testing.T) {
	dir := t.TempDir()
	design := testDesign(t)

	pairPath := filepath.Join(dir, "pair.png")
	require.NoError(t, PlotDesign(pairPath, "pair", []string{"span", "chord"}, design.Samples, discardLogger()))
	info, err := os.Stat(pairPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	singlePath := filepath.Join(dir, "single.svg")
	single := mat.NewDense(3, 1, []float64{1, 2, 3})
	require.NoError(t, PlotDesign(singlePath, "single", []string{"x"}, single, discardLogger()))
	_, err = os.Stat(singlePath)
	require.NoError(t, err)

	assert.Error(t, PlotDesign(pairPath, "bad", []string{"x"}, design.Samples, discardLogger()))
}

func TestWriteD2(t *testing.T) {
	summary := NewSummary("wing sweep", []string{"span", "chord"}, testDesign(t), "wing.png")
	var output strings.Builder
	require.NoError(t, WriteD2(&output, summary, discardLogger()))
	d2Source := output.String()

	assert.Contains(t, d2Source, "run: |md\n# wing sweep\n")
	assert.Contains(t, d2Source, "shape: sql_table")
	assert.Contains(t, d2Source, `"span": "[10, 20]"`)
	assert.Contains(t, d2Source, `"chord": "[1, 2.5]"`)
	assert.Contains(t, d2Source, `strategy: "LatinHypercube"`)
	assert.Contains(t, d2Source, `"num_samples": "8"`)
	assert.Contains(t, d2Source, `"seed": "3"`)
	assert.Contains(t, d2Source, "icon: wing.png")

	// Nodes are written before the connections, in pipeline order.
	connections := d2Source[strings.Index(d2Source, "# Connections"):]
	assert.Equal(t, "# Connections\n"+
		"# ------------------------------------------------------------------------------\n"+
		"run -> parameters\n"+
		"parameters -> strategy\n"+
		"strategy -> design\n"+
		"design -> plot\n", connections)
	assert.Less(t, strings.Index(d2Source, "parameters: "), strings.Index(d2Source, "design: "))
}

func TestWriteD2WithoutPlot(t *testing.T) {
	summary := NewSummary("no plot", []string{"span", "chord"}, testDesign(t), "")
	var output strings.Builder
	require.NoError(t, WriteD2(&output, summary, discardLogger()))
	assert.NotContains(t, output.String(), "shape: image")
	assert.True(t, strings.HasSuffix(output.String(), "strategy -> design\n"))
}

func TestWriteDOT(t *testing.T) {
	summary := NewSummary("wing", []string{"span", "chord"}, testDesign(t), "wing.png")
	var output bytes.Buffer
	require.NoError(t, WriteDOT(&output, summary, discardLogger()))
	dotSource := output.String()
	assert.Contains(t, dotSource, "digraph wing {")
	assert.Contains(t, dotSource, "strategy -> design")
}

func TestRenderD2MissingSource(t *testing.T) {
	err := RenderD2(context.Background(),
		filepath.Join(t.TempDir(), "missing.d2"),
		filepath.Join(t.TempDir(), "missing.svg"),
		DefaultSVGOptions(0, 200),
		discardLogger())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderSVGRejectsInvalidSource(t *testing.T) {
	svg, err := RenderSVG(context.Background(),
		"design: {\n  strategy -> \n",
		DefaultSVGOptions(0, 200),
		discardLogger())
	assert.Nil(t, svg)
	assert.ErrorContains(t, err, "compile")
}

func TestDefaultSVGOptions(t *testing.T) {
	options := DefaultSVGOptions(0, 200)
	assert.Equal(t, int64(0), options.LightThemeID)
	assert.Equal(t, int64(200), options.DarkThemeID)
	assert.Equal(t, int64(50), options.Padding)
	assert.False(t, options.Sketch)
}
