package mask

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/samber/lo"

	"github.com/dataveil/dataveil/src/errs"
	"github.com/dataveil/dataveil/src/tabular"
)

type pendingEntry struct {
	columnName string
	original   string
	token      string
}

// Mask replaces every non-null cell of the selected columns with its
// deterministic token, reusing store entries where they exist and minting
// new ones where they do not. The input dataset is never mutated; the
// returned dataset preserves row order and all unselected columns exactly.
//
// The operation is atomic with respect to the store: all new entries are
// computed and collision-checked first, and only then committed. A failure
// therefore leaves the store exactly as it was.
func Mask(ds *tabular.Dataset, columnNames []string, prefix string, store *MappingStore) (*tabular.Dataset, error) {
	if len(columnNames) == 0 {
		return nil, errs.ErrEmptySelection
	}
	if prefix == "" {
		return nil, fmt.Errorf("mask prefix must not be empty")
	}
	columnNames = lo.Uniq(columnNames)
	unknown := lo.Filter(columnNames, func(name string, _ int) bool { return !ds.HasColumn(name) })
	if len(unknown) > 0 {
		return nil, errs.NewUnknownColumnError("mask", unknown, ds.ColumnNames())
	}

	// Phase 1: compute entries for values the store does not know yet,
	// detecting digest collisions against both the store and this batch.
	var pending []pendingEntry
	for _, columnName := range columnNames {
		column, _ := ds.Column(columnName)
		batchTokens := map[string]string{} // token -> original, within this column's batch
		for _, original := range column.DistinctNonNullValues() {
			if _, ok := store.Token(columnName, original); ok {
				continue
			}
			token := Tokenize(original, prefix)
			if existing, ok := store.Original(columnName, token); ok && existing != original {
				return nil, errs.NewTokenCollisionError(columnName, token, existing, original)
			}
			if existing, ok := batchTokens[token]; ok && existing != original {
				return nil, errs.NewTokenCollisionError(columnName, token, existing, original)
			}
			batchTokens[token] = original
			pending = append(pending, pendingEntry{columnName: columnName, original: original, token: token})
		}
	}

	// Phase 2: commit. Collisions were ruled out above, so Put cannot fail.
	for _, entry := range pending {
		if err := store.Put(entry.columnName, entry.original, entry.token); err != nil {
			return nil, fmt.Errorf("commit mapping entry for column %q: %w", entry.columnName, err)
		}
	}
	log.Infof("masking added %d new entries to the store across %d columns", len(pending), len(columnNames))

	// Phase 3: substitute cells in a copy of the dataset.
	masked := ds.Clone()
	for _, columnName := range columnNames {
		column, _ := masked.Column(columnName)
		cells := make([]tabular.Cell, len(column.Cells))
		for i, cell := range column.Cells {
			if cell.IsNull() {
				cells[i] = cell
				continue
			}
			if token, ok := store.Token(columnName, cell.String()); ok {
				cells[i] = tabular.StringCell(token)
			} else {
				cells[i] = cell
			}
		}
		if err := masked.ReplaceColumnCells(columnName, cells); err != nil {
			return nil, fmt.Errorf("replace masked column %q: %w", columnName, err)
		}
	}
	return masked, nil
}
