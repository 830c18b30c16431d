package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"oss.terrastruct.com/d2/d2exporter"
	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2elklayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// SVGOptions controls how a design diagram is rendered.
type SVGOptions struct {
	LightThemeID int64
	DarkThemeID  int64
	Padding      int64
	Sketch       bool
}

// DefaultSVGOptions returns the rendering options for the given themes.
func DefaultSVGOptions(lightThemeID int64, darkThemeID int64) SVGOptions {
	return SVGOptions{
		LightThemeID: lightThemeID,
		DarkThemeID:  darkThemeID,
		Padding:      50,
	}
}

// RenderD2 renders the D2 diagram in inputFile to an SVG at outputFile.
func RenderD2(ctx context.Context,
	inputFile string,
	outputFile string,
	options SVGOptions,
	log *slog.Logger) error {
	log.Info("Rendering design diagram", "path", inputFile)
	source, readErr := os.ReadFile(inputFile)
	if readErr != nil {
		return fmt.Errorf("failed to read diagram %s: %w", inputFile, readErr)
	}
	svg, svgErr := RenderSVG(ctx, string(source), options, log)
	if svgErr != nil {
		return fmt.Errorf("failed to render diagram %s: %w", inputFile, svgErr)
	}
	log.Info("Writing diagram image", "path", outputFile)
	return os.WriteFile(outputFile, svg, 0600)
}

// RenderSVG compiles D2 source, lays it out with ELK and returns the SVG
// bytes.
func RenderSVG(ctx context.Context,
	source string,
	options SVGOptions,
	log *slog.Logger) ([]byte, error) {
	graph, compileErr := compileDiagram(ctx, source, log)
	if compileErr != nil {
		return nil, compileErr
	}
	layoutErr := layoutDiagram(ctx, graph)
	if layoutErr != nil {
		return nil, layoutErr
	}
	diagram, exportErr := d2exporter.Export(ctx, graph, nil)
	if exportErr != nil {
		return nil, fmt.Errorf("export: %w", exportErr)
	}
	svg, renderErr := d2svg.Render(diagram, &d2svg.RenderOpts{
		ThemeID:     &options.LightThemeID,
		DarkThemeID: &options.DarkThemeID,
		Sketch:      &options.Sketch,
		Pad:         &options.Padding,
	})
	if renderErr != nil {
		return nil, fmt.Errorf("render: %w", renderErr)
	}
	return svg, nil
}

func compileDiagram(ctx context.Context, source string, log *slog.Logger) (*d2graph.Graph, error) {
	_, graph, compileErr := d2lib.Compile(ctx, source, nil, nil)
	if graph == nil {
		if compileErr == nil {
			compileErr = fmt.Errorf("empty diagram")
		}
		return nil, fmt.Errorf("compile: %w", compileErr)
	}
	if compileErr != nil {
		log.Warn("Diagram compiled with errors", "error", compileErr)
	}
	themeErr := graph.ApplyTheme(d2themescatalog.ColorblindClear.ID)
	if themeErr != nil {
		return nil, fmt.Errorf("theme: %w", themeErr)
	}
	return graph, nil
}

func layoutDiagram(ctx context.Context, graph *d2graph.Graph) error {
	ruler, rulerErr := textmeasure.NewRuler()
	if rulerErr != nil {
		return fmt.Errorf("text ruler: %w", rulerErr)
	}
	dimErr := graph.SetDimensions(nil, ruler, nil)
	if dimErr != nil {
		return fmt.Errorf("dimensions: %w", dimErr)
	}
	layoutErr := d2elklayout.Layout(ctx, graph, nil)
	if layoutErr != nil {
		return fmt.Errorf("layout: %w", layoutErr)
	}
	return nil
}
