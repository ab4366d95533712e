package tabular

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

func readXlsxDataset(filePath string, opts Options) (*Dataset, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open xlsx file %q: %w", filePath, err)
	}
	defer f.Close()

	sheet := opts.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %q: %w", sheet, filePath, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q of %q has no header row", sheet, filePath)
	}

	ds, err := datasetFromRows(rows[0], rows[1:], opts)
	if err != nil {
		return nil, fmt.Errorf("build dataset from xlsx file %q: %w", filePath, err)
	}
	log.Infof("loaded xlsx file %q (sheet %q): %d rows, %d columns", filePath, sheet, ds.RowCount(), ds.ColumnCount())
	return ds, nil
}

func writeXlsxDataset(ds *Dataset, filePath string, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.SheetName
	if sheet == "" {
		sheet = defaultSheetName
	}
	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return fmt.Errorf("rename sheet to %q: %w", sheet, err)
		}
	}

	for i, name := range ds.ColumnNames() {
		cellRef, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell reference for column %d: %w", i, err)
		}
		if err := f.SetCellValue(sheet, cellRef, name); err != nil {
			return fmt.Errorf("write header %q: %w", name, err)
		}
	}

	for row := 0; row < ds.RowCount(); row++ {
		for i, col := range ds.Columns() {
			cell := col.Cells[row]
			if cell.IsNull() {
				continue // empty spreadsheet cell is the null representation
			}
			cellRef, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return fmt.Errorf("cell reference for row %d column %d: %w", row, i, err)
			}
			if num, ok := cell.Number(); ok {
				err = f.SetCellValue(sheet, cellRef, num)
			} else {
				err = f.SetCellValue(sheet, cellRef, cell.String())
			}
			if err != nil {
				return fmt.Errorf("write cell %s: %w", cellRef, err)
			}
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("save xlsx file %q: %w", filePath, err)
	}
	log.Infof("wrote xlsx file %q (sheet %q): %d rows, %d columns", filePath, sheet, ds.RowCount(), ds.ColumnCount())
	return nil
}
