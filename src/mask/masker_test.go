package mask

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataveil/dataveil/src/errs"
	"github.com/dataveil/dataveil/src/tabular"
	testutils "github.com/dataveil/dataveil/test/utils"
)

func buildDataset(t *testing.T, columns []string, values map[string][]string) *tabular.Dataset {
	t.Helper()
	ds := tabular.NewDataset()
	for _, name := range columns {
		err := ds.AddColumn(tabular.NewColumnFromStrings(name, values[name], ""))
		require.NoError(t, err)
	}
	return ds
}

func cellStrings(t *testing.T, ds *tabular.Dataset, columnName string) []string {
	t.Helper()
	column, ok := ds.Column(columnName)
	require.True(t, ok)
	out := make([]string, len(column.Cells))
	for i, cell := range column.Cells {
		out[i] = cell.String()
	}
	return out
}

func TestMaskScenario(t *testing.T) {
	ds := buildDataset(t, []string{"name", "age"}, map[string][]string{
		"name": {"Alice", "Bob"},
		"age":  {"30", "40"},
	})
	store := NewMappingStore()

	masked, err := Mask(ds, []string{"name"}, "MASKED", store)
	require.NoError(t, err)

	assert.Equal(t, []string{"MASKED_3BC51062", "MASKED_CD9FB1E1"}, cellStrings(t, masked, "name"))
	assert.Equal(t, []string{"30", "40"}, cellStrings(t, masked, "age"))
	assert.Equal(t, []string{"name", "age"}, masked.ColumnNames())

	// input dataset untouched
	assert.Equal(t, []string{"Alice", "Bob"}, cellStrings(t, ds, "name"))
}

func TestMaskExportReloadUnmaskRecoversOriginals(t *testing.T) {
	dir := testutils.CreateTempDir()
	defer testutils.RemoveTempDir(dir)
	mappingFile := filepath.Join(dir, "masking_map.json")

	ds := buildDataset(t, []string{"name", "age"}, map[string][]string{
		"name": {"Alice", "Bob"},
		"age":  {"30", "40"},
	})
	store := NewMappingStore()
	masked, err := Mask(ds, []string{"name"}, "MASKED", store)
	require.NoError(t, err)
	require.NoError(t, store.Save(mappingFile))

	// a later session with only the document and the masked dataset
	reloaded, err := LoadMappingStore(mappingFile)
	require.NoError(t, err)
	restored, skipped, err := Unmask(masked, nil, reloaded)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, []string{"Alice", "Bob"}, cellStrings(t, restored, "name"))
	assert.Equal(t, []string{"30", "40"}, cellStrings(t, restored, "age"))
}

func TestMaskRoundTripMultipleColumns(t *testing.T) {
	ds := buildDataset(t, []string{"name", "email", "city"}, map[string][]string{
		"name":  {"Alice", "Bob", "Alice"},
		"email": {"a@b.com", "c@d.org", "a@b.com"},
		"city":  {"Oslo", "Lima", "Oslo"},
	})
	store := NewMappingStore()

	masked, err := Mask(ds, []string{"name", "email"}, "MASKED", store)
	require.NoError(t, err)
	// repeated values share one token
	names := cellStrings(t, masked, "name")
	assert.Equal(t, names[0], names[2])
	assert.NotEqual(t, names[0], names[1])
	// unselected column passes through
	assert.Equal(t, []string{"Oslo", "Lima", "Oslo"}, cellStrings(t, masked, "city"))

	restored, _, err := Unmask(masked, []string{"name", "email"}, store)
	require.NoError(t, err)
	assert.Equal(t, cellStrings(t, ds, "name"), cellStrings(t, restored, "name"))
	assert.Equal(t, cellStrings(t, ds, "email"), cellStrings(t, restored, "email"))
}

func TestMaskIsDeterministicAndIdempotent(t *testing.T) {
	values := map[string][]string{"name": {"Alice", "Bob", "Alice"}}
	store := NewMappingStore()

	first, err := Mask(buildDataset(t, []string{"name"}, values), []string{"name"}, "MASKED", store)
	require.NoError(t, err)
	entriesAfterFirst := store.TotalEntries()
	assert.Equal(t, 2, entriesAfterFirst)

	second, err := Mask(buildDataset(t, []string{"name"}, values), []string{"name"}, "MASKED", store)
	require.NoError(t, err)

	assert.Equal(t, cellStrings(t, first, "name"), cellStrings(t, second, "name"))
	// get-or-create semantics: the second run minted nothing new
	assert.Equal(t, entriesAfterFirst, store.TotalEntries())
}

func TestMaskPreservesNulls(t *testing.T) {
	ds := buildDataset(t, []string{"name"}, map[string][]string{
		"name": {"Alice", "", "Bob", ""},
	})
	store := NewMappingStore()

	masked, err := Mask(ds, []string{"name"}, "MASKED", store)
	require.NoError(t, err)
	column, _ := masked.Column("name")
	assert.False(t, column.Cells[0].IsNull())
	assert.True(t, column.Cells[1].IsNull())
	assert.True(t, column.Cells[3].IsNull())
	assert.Equal(t, 2, store.EntryCount("name"))

	restored, _, err := Unmask(masked, nil, store)
	require.NoError(t, err)
	restoredColumn, _ := restored.Column("name")
	assert.True(t, restoredColumn.Cells[1].IsNull())
	assert.True(t, restoredColumn.Cells[3].IsNull())
}

func TestMaskEmptySelection(t *testing.T) {
	ds := buildDataset(t, []string{"name"}, map[string][]string{"name": {"Alice"}})
	store := NewMappingStore()

	_, err := Mask(ds, nil, "MASKED", store)
	assert.ErrorIs(t, err, errs.ErrEmptySelection)
	assert.True(t, store.IsEmpty())
}

func TestMaskUnknownColumn(t *testing.T) {
	ds := buildDataset(t, []string{"name"}, map[string][]string{"name": {"Alice"}})
	store := NewMappingStore()

	_, err := Mask(ds, []string{"name", "salary"}, "MASKED", store)
	require.Error(t, err)
	var unknownErr *errs.UnknownColumnError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, []string{"salary"}, unknownErr.UnknownColumns())
	// rejected before any mutation
	assert.True(t, store.IsEmpty())
}

func TestMaskEmptyPrefix(t *testing.T) {
	ds := buildDataset(t, []string{"name"}, map[string][]string{"name": {"Alice"}})
	_, err := Mask(ds, []string{"name"}, "", NewMappingStore())
	assert.Error(t, err)
}

func TestUnmaskExplicitColumns(t *testing.T) {
	ds := buildDataset(t, []string{"name", "email"}, map[string][]string{
		"name":  {"Alice"},
		"email": {"a@b.com"},
	})
	store := NewMappingStore()
	masked, err := Mask(ds, []string{"name", "email"}, "MASKED", store)
	require.NoError(t, err)

	restored, skipped, err := Unmask(masked, []string{"name"}, store)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, []string{"Alice"}, cellStrings(t, restored, "name"))
	// email stays masked: it was not selected
	assert.Equal(t, []string{"MASKED_FB98D44A"}, cellStrings(t, restored, "email"))
}

func TestUnmaskSkipsColumnsAbsentFromStore(t *testing.T) {
	ds := buildDataset(t, []string{"name", "city"}, map[string][]string{
		"name": {"MASKED_3BC51062"},
		"city": {"Oslo"},
	})
	store := NewMappingStore()
	require.NoError(t, store.Put("name", "Alice", "MASKED_3BC51062"))

	restored, skipped, err := Unmask(ds, []string{"name", "city"}, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"city"}, skipped)
	assert.Equal(t, []string{"Alice"}, cellStrings(t, restored, "name"))
	assert.Equal(t, []string{"Oslo"}, cellStrings(t, restored, "city"))
}

func TestUnmaskUnknownColumn(t *testing.T) {
	ds := buildDataset(t, []string{"name"}, map[string][]string{"name": {"MASKED_3BC51062"}})
	store := NewMappingStore()
	require.NoError(t, store.Put("name", "Alice", "MASKED_3BC51062"))

	_, _, err := Unmask(ds, []string{"nope"}, store)
	var unknownErr *errs.UnknownColumnError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestUnmaskLeavesUnknownTokensUntouched(t *testing.T) {
	// a token the (truncated) store has never seen passes through unchanged
	ds := buildDataset(t, []string{"name"}, map[string][]string{
		"name": {"MASKED_3BC51062", "MASKED_FFFFFFFF"},
	})
	store := NewMappingStore()
	require.NoError(t, store.Put("name", "Alice", "MASKED_3BC51062"))

	restored, _, err := Unmask(ds, nil, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "MASKED_FFFFFFFF"}, cellStrings(t, restored, "name"))
}

func TestUnmaskNeverMutatesStore(t *testing.T) {
	ds := buildDataset(t, []string{"name"}, map[string][]string{"name": {"MASKED_3BC51062", "stray"}})
	store := NewMappingStore()
	require.NoError(t, store.Put("name", "Alice", "MASKED_3BC51062"))

	_, _, err := Unmask(ds, nil, store)
	require.NoError(t, err)
	assert.Equal(t, 1, store.TotalEntries())
}

func TestMaskCollisionAbortsBeforeStoreMutation(t *testing.T) {
	// pre-seed the store so that masking "Mallory" would need the token
	// already owned by a different original
	store := NewMappingStore()
	require.NoError(t, store.Put("name", "Alice", Tokenize("Mallory", "MASKED")))

	ds := buildDataset(t, []string{"name", "city"}, map[string][]string{
		"name": {"Mallory"},
		"city": {"Oslo"},
	})
	_, err := Mask(ds, []string{"city", "name"}, "MASKED", store)
	require.Error(t, err)
	var collisionErr *errs.TokenCollisionError
	assert.ErrorAs(t, err, &collisionErr)

	// no partial application: the city column minted nothing either
	assert.Equal(t, 1, store.TotalEntries())
	assert.Equal(t, 0, store.EntryCount("city"))
}
