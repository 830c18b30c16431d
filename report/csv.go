package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// WriteCSV writes a header of parameter names followed by one record per
// sample. Values are formatted with the given number of significant digits.
func WriteCSV(w io.Writer, names []string, samples *mat.Dense, precision int) error {
	rows, cols := samples.Dims()
	if len(names) != cols {
		return fmt.Errorf("%d parameter names for %d columns", len(names), cols)
	}
	if precision <= 0 {
		precision = -1
	}
	csvWriter := csv.NewWriter(w)
	if writeErr := csvWriter.Write(names); writeErr != nil {
		return writeErr
	}
	record := make([]string, cols)
	for i := 0; i != rows; i++ {
		for j := 0; j != cols; j++ {
			record[j] = strconv.FormatFloat(samples.At(i, j), 'g', precision, 64)
		}
		if writeErr := csvWriter.Write(record); writeErr != nil {
			return writeErr
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteCSVFile is WriteCSV to a newly created file.
func WriteCSVFile(path string, names []string, samples *mat.Dense, precision int) error {
	outFile, outFileErr := os.Create(path)
	if outFileErr != nil {
		return outFileErr
	}
	writeErr := WriteCSV(outFile, names, samples, precision)
	closeErr := outFile.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}
