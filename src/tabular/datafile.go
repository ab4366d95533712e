package tabular

import (
	"path/filepath"
	"strings"

	"github.com/dataveil/dataveil/src/errs"
)

const (
	CSV  = "csv"
	XLSX = "xlsx"
)

var supportedFormats = []string{CSV, XLSX}

// Options control how raw files map onto the in-memory dataset.
type Options struct {
	// NullString is the sentinel representing a missing value, both on
	// ingestion and on export. Defaults to the empty string.
	NullString string
	// SheetName selects the worksheet for spreadsheet files. Defaults to the
	// first sheet on read and "Sheet1" on write.
	SheetName string
}

// FormatOf dispatches on the file extension. Unrecognized extensions are an
// UnsupportedFormatError; nothing is read from the file itself.
func FormatOf(fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return CSV, nil
	case ".xlsx", ".xlsm":
		return XLSX, nil
	default:
		return "", errs.NewUnsupportedFormatError(fileName, ext, supportedFormats)
	}
}

// ReadDatasetFile loads a tabular file into memory. The first row is the
// header; column names must be unique.
func ReadDatasetFile(filePath string, opts Options) (*Dataset, error) {
	format, err := FormatOf(filePath)
	if err != nil {
		return nil, err
	}
	switch format {
	case CSV:
		return readCsvDataset(filePath, opts)
	case XLSX:
		return readXlsxDataset(filePath, opts)
	}
	// unreachable: FormatOf only returns known formats
	return nil, errs.NewUnsupportedFormatError(filePath, filepath.Ext(filePath), supportedFormats)
}

// WriteDatasetFile exports the dataset, with the format again chosen by the
// target file's extension.
func WriteDatasetFile(ds *Dataset, filePath string, opts Options) error {
	format, err := FormatOf(filePath)
	if err != nil {
		return err
	}
	switch format {
	case CSV:
		return writeCsvDataset(ds, filePath, opts)
	case XLSX:
		return writeXlsxDataset(ds, filePath, opts)
	}
	return errs.NewUnsupportedFormatError(filePath, filepath.Ext(filePath), supportedFormats)
}

// datasetFromRows builds a dataset out of header + row-major records,
// padding ragged rows with nulls.
func datasetFromRows(header []string, rows [][]string, opts Options) (*Dataset, error) {
	ds := NewDataset()
	for i, name := range header {
		raws := make([]string, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				raws = append(raws, row[i])
			} else {
				raws = append(raws, opts.NullString)
			}
		}
		if err := ds.AddColumn(NewColumnFromStrings(name, raws, opts.NullString)); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
