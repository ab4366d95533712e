package mask

import (
	log "github.com/sirupsen/logrus"
	"github.com/samber/lo"

	"github.com/dataveil/dataveil/src/errs"
	"github.com/dataveil/dataveil/src/tabular"
)

// Unmask restores original values via the store's reverse index. With a nil
// or empty selection it operates on every column present in both the
// dataset and the store. Explicitly selected columns must exist in the
// dataset; selected columns the store knows nothing about are skipped and
// returned as the advisory skipped list. The store is never mutated.
//
// Cells whose stringified value has no reverse entry (nulls, values that
// were never masked, tokens from a truncated store) pass through unchanged.
func Unmask(ds *tabular.Dataset, columnNames []string, store *MappingStore) (*tabular.Dataset, []string, error) {
	var skipped []string
	if len(columnNames) == 0 {
		columnNames = lo.Filter(store.Columns(), func(name string, _ int) bool { return ds.HasColumn(name) })
		log.Infof("no columns selected for unmasking, using all mapped dataset columns: %v", columnNames)
	} else {
		columnNames = lo.Uniq(columnNames)
		unknown := lo.Filter(columnNames, func(name string, _ int) bool { return !ds.HasColumn(name) })
		if len(unknown) > 0 {
			return nil, nil, errs.NewUnknownColumnError("unmask", unknown, ds.ColumnNames())
		}
		skipped = lo.Filter(columnNames, func(name string, _ int) bool { return !store.HasColumn(name) })
		if len(skipped) > 0 {
			log.Warnf("columns selected for unmasking have no entry in the mapping store, skipping: %v", skipped)
			columnNames = lo.Without(columnNames, skipped...)
		}
	}

	restored := ds.Clone()
	for _, columnName := range columnNames {
		column, _ := restored.Column(columnName)
		cells := make([]tabular.Cell, len(column.Cells))
		for i, cell := range column.Cells {
			if cell.IsNull() {
				cells[i] = cell
				continue
			}
			if original, ok := store.Original(columnName, cell.String()); ok {
				cells[i] = tabular.StringCell(original)
			} else {
				cells[i] = cell
			}
		}
		if err := restored.ReplaceColumnCells(columnName, cells); err != nil {
			return nil, nil, err
		}
	}
	return restored, skipped, nil
}
