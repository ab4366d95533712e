package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataveil/dataveil/src/errs"
	testutils "github.com/dataveil/dataveil/test/utils"
)

func TestFormatOf(t *testing.T) {
	cases := []struct {
		fileName   string
		wantFormat string
		wantErr    bool
	}{
		{"data.csv", CSV, false},
		{"DATA.CSV", CSV, false},
		{"report.xlsx", XLSX, false},
		{"report.xlsm", XLSX, false},
		{"data.txt", "", true},
		{"data.xls", "", true}, // legacy BIFF format is not supported
		{"data", "", true},
		{"archive.json", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.fileName, func(t *testing.T) {
			format, err := FormatOf(tc.fileName)
			if tc.wantErr {
				require.Error(t, err)
				var formatErr *errs.UnsupportedFormatError
				assert.ErrorAs(t, err, &formatErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantFormat, format)
		})
	}
}

func TestReadDatasetFileUnsupportedFormat(t *testing.T) {
	dir := testutils.CreateTempDir()
	defer testutils.RemoveTempDir(dir)
	filePath := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("name\nAlice\n"), 0644))

	ds, err := ReadDatasetFile(filePath, Options{})
	require.Error(t, err)
	assert.Nil(t, ds)
	var formatErr *errs.UnsupportedFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestCsvReadWriteRoundTrip(t *testing.T) {
	dir := testutils.CreateTempDir()
	defer testutils.RemoveTempDir(dir)
	inPath := filepath.Join(dir, "in.csv")
	outPath := filepath.Join(dir, "out.csv")

	content := "name,age,city\nAlice,30,Oslo\nBob,40,\nCara,,Lima\n"
	require.NoError(t, os.WriteFile(inPath, []byte(content), 0644))

	ds, err := ReadDatasetFile(inPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "city"}, ds.ColumnNames())
	assert.Equal(t, 3, ds.RowCount())

	age, _ := ds.Column("age")
	assert.Equal(t, KindNumber, age.Cells[0].Kind())
	assert.True(t, age.Cells[2].IsNull())
	city, _ := ds.Column("city")
	assert.True(t, city.Cells[1].IsNull())

	require.NoError(t, WriteDatasetFile(ds, outPath, Options{}))
	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(written))
}

func TestCsvReadRaggedRowsPaddedWithNulls(t *testing.T) {
	dir := testutils.CreateTempDir()
	defer testutils.RemoveTempDir(dir)
	inPath := filepath.Join(dir, "ragged.csv")
	require.NoError(t, os.WriteFile(inPath, []byte("a,b\n1,2\n3\n"), 0644))

	ds, err := ReadDatasetFile(inPath, Options{})
	require.NoError(t, err)
	b, _ := ds.Column("b")
	assert.True(t, b.Cells[1].IsNull())
}

func TestCsvReadMissingHeader(t *testing.T) {
	dir := testutils.CreateTempDir()
	defer testutils.RemoveTempDir(dir)
	inPath := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(inPath, []byte(""), 0644))

	_, err := ReadDatasetFile(inPath, Options{})
	assert.Error(t, err)
}

func TestCsvCustomNullString(t *testing.T) {
	dir := testutils.CreateTempDir()
	defer testutils.RemoveTempDir(dir)
	inPath := filepath.Join(dir, "na.csv")
	outPath := filepath.Join(dir, "na_out.csv")
	require.NoError(t, os.WriteFile(inPath, []byte("name\nAlice\nNA\n"), 0644))

	opts := Options{NullString: "NA"}
	ds, err := ReadDatasetFile(inPath, opts)
	require.NoError(t, err)
	name, _ := ds.Column("name")
	assert.True(t, name.Cells[1].IsNull())

	// the sentinel round-trips on export
	require.NoError(t, WriteDatasetFile(ds, outPath, opts))
	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "name\nAlice\nNA\n", string(written))
}

func TestXlsxReadWriteRoundTrip(t *testing.T) {
	dir := testutils.CreateTempDir()
	defer testutils.RemoveTempDir(dir)
	filePath := filepath.Join(dir, "data.xlsx")

	ds := NewDataset()
	require.NoError(t, ds.AddColumn(NewColumnFromStrings("name", []string{"Alice", "Bob", ""}, "")))
	require.NoError(t, ds.AddColumn(NewColumnFromStrings("age", []string{"30", "40", "50"}, "")))
	require.NoError(t, WriteDatasetFile(ds, filePath, Options{}))

	loaded, err := ReadDatasetFile(filePath, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, loaded.ColumnNames())
	assert.Equal(t, 3, loaded.RowCount())

	name, _ := loaded.Column("name")
	assert.Equal(t, "Alice", name.Cells[0].String())
	assert.True(t, name.Cells[2].IsNull())

	age, _ := loaded.Column("age")
	assert.Equal(t, KindNumber, age.Cells[0].Kind())
	assert.Equal(t, "30", age.Cells[0].String())
}

func TestXlsxNamedSheet(t *testing.T) {
	dir := testutils.CreateTempDir()
	defer testutils.RemoveTempDir(dir)
	filePath := filepath.Join(dir, "sheet.xlsx")

	ds := NewDataset()
	require.NoError(t, ds.AddColumn(NewColumnFromStrings("v", []string{"x"}, "")))
	opts := Options{SheetName: "people"}
	require.NoError(t, WriteDatasetFile(ds, filePath, opts))

	loaded, err := ReadDatasetFile(filePath, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"v"}, loaded.ColumnNames())

	// default read picks the first sheet regardless of its name
	loadedDefault, err := ReadDatasetFile(filePath, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"v"}, loadedDefault.ColumnNames())
}
