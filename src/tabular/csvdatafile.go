package tabular

import (
	"encoding/csv"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

func readCsvDataset(filePath string, opts Options) (*Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open csv file %q: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // rows may be ragged; short rows are padded with nulls

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv file %q: %w", filePath, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file %q has no header row", filePath)
	}

	ds, err := datasetFromRows(records[0], records[1:], opts)
	if err != nil {
		return nil, fmt.Errorf("build dataset from csv file %q: %w", filePath, err)
	}
	log.Infof("loaded csv file %q: %d rows, %d columns", filePath, ds.RowCount(), ds.ColumnCount())
	return ds, nil
}

func writeCsvDataset(ds *Dataset, filePath string, opts Options) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create csv file %q: %w", filePath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(ds.ColumnNames()); err != nil {
		return fmt.Errorf("write csv header to %q: %w", filePath, err)
	}

	columns := ds.Columns()
	record := make([]string, len(columns))
	for row := 0; row < ds.RowCount(); row++ {
		for i, col := range columns {
			cell := col.Cells[row]
			if cell.IsNull() {
				record[i] = opts.NullString
			} else {
				record[i] = cell.String()
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d to %q: %w", row, filePath, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv file %q: %w", filePath, err)
	}
	log.Infof("wrote csv file %q: %d rows, %d columns", filePath, ds.RowCount(), ds.ColumnCount())
	return nil
}
