package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mweagle/doegen/config"
	"github.com/mweagle/doegen/doe"
	"github.com/mweagle/doegen/report"
)

// ApplicationParams are the command line inputs of a generation run.
type ApplicationParams struct {
	InputFile string

	// OutputDirectory overrides the definition's output directory. When both
	// are empty the files are written next to the input file.
	OutputDirectory string
	CreateDot       bool
	LightThemeID    int64
	DarkThemeID     int64
}

// Outputs lists the files a run created. Empty paths were not requested.
type Outputs struct {
	CSV     string
	Plot    string
	D2      string
	SVG     string
	DOT     string
	Summary *report.Summary
}

func outputDirectory(params *ApplicationParams, definition *config.Definition) string {
	if len(params.OutputDirectory) != 0 {
		return params.OutputDirectory
	}
	inputDir := filepath.Dir(params.InputFile)
	if len(definition.Output.Directory) != 0 {
		if filepath.IsAbs(definition.Output.Directory) {
			return definition.Output.Directory
		}
		return filepath.Join(inputDir, definition.Output.Directory)
	}
	return inputDir
}

// NewApplicationDesign loads the definition, generates the design and writes
// every requested output.
func NewApplicationDesign(params *ApplicationParams, log *slog.Logger) (*Outputs, error) {
	if len(params.InputFile) <= 0 {
		return nil, errors.New("empty input file path provided")
	}
	definition, definitionErr := config.Load(params.InputFile)
	if definitionErr != nil {
		return nil, definitionErr
	}
	log.Debug("Loaded definition",
		"name", definition.Name,
		"method", definition.Method,
		"parameters", len(definition.Parameters))

	design, designErr := doe.NewDesign(definition.Method,
		definition.Bounds(),
		definition.Options,
		nil,
		log)
	if designErr != nil {
		return nil, fmt.Errorf("failed to generate design %s: %w", definition.Name, designErr)
	}
	rows, _ := design.Samples.Dims()
	log.Info("Generated design", "method", design.Method, "samples", rows)

	outputDir := outputDirectory(params, definition)
	mkdirErr := os.MkdirAll(outputDir, 0755)
	if mkdirErr != nil {
		return nil, mkdirErr
	}
	outputFileName := filepath.Base(params.InputFile)
	outputFileBaseName := filepath.Join(outputDir,
		strings.TrimSuffix(outputFileName, filepath.Ext(outputFileName)))
	names := definition.Names()
	outputs := &Outputs{}

	if definition.Output.CSV {
		outputs.CSV = outputFileBaseName + ".csv"
		csvErr := report.WriteCSVFile(outputs.CSV, names, design.Samples, definition.Output.Precision)
		if csvErr != nil {
			return nil, csvErr
		}
		log.Info("Created CSV output file", "path", outputs.CSV)
	}
	if definition.Output.Plot {
		outputs.Plot = outputFileBaseName + ".png"
		plotErr := report.PlotDesign(outputs.Plot, definition.Name, names, design.Samples, log)
		if plotErr != nil {
			return nil, plotErr
		}
		log.Info("Created plot output file", "path", outputs.Plot)
	}
	outputs.Summary = report.NewSummary(definition.Name, names, design, outputs.Plot)

	if params.CreateDot {
		outputs.DOT = outputFileBaseName + ".dot"
		dotErr := writeFile(outputs.DOT, func(f *os.File) error {
			return report.WriteDOT(f, outputs.Summary, log)
		})
		if dotErr != nil {
			return nil, dotErr
		}
		log.Info("Created dot output file", "path", outputs.DOT)
	}
	if definition.Output.Diagram {
		outputs.D2 = outputFileBaseName + ".d2"
		d2Err := writeFile(outputs.D2, func(f *os.File) error {
			return report.WriteD2(f, outputs.Summary, log)
		})
		if d2Err != nil {
			return nil, d2Err
		}
		outputs.SVG = outputFileBaseName + ".svg"
		renderErr := report.RenderD2(context.Background(),
			outputs.D2,
			outputs.SVG,
			report.DefaultSVGOptions(params.LightThemeID, params.DarkThemeID),
			log)
		if renderErr != nil {
			return nil, renderErr
		}
	}
	return outputs, nil
}

func writeFile(path string, encoder func(f *os.File) error) error {
	f, createErr := os.Create(path)
	if createErr != nil {
		return createErr
	}
	encodeErr := encoder(f)
	closeErr := f.Close()
	if encodeErr != nil {
		return encodeErr
	}
	return closeErr
}
