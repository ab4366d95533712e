/*
Copyright (c) Dataveil Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dataveil/dataveil/src/config"
	"github.com/dataveil/dataveil/src/detect"
	"github.com/dataveil/dataveil/src/mask"
	"github.com/dataveil/dataveil/src/tabular"
	"github.com/dataveil/dataveil/src/utils"
)

const DEFAULT_MAPPING_FILE = "masking_map.json"

var (
	inputFilePath   string
	outputFilePath  string
	mappingFilePath string
	nullString      string
	sheetName       string
)

func registerDatasetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&inputFilePath, "file", "",
		"path of the dataset file to process (CSV, XLSX)")
	cmd.MarkFlagRequired("file")

	cmd.Flags().StringVar(&nullString, "null-string", "",
		"string that represents a null/missing value in the dataset (default empty)")

	cmd.Flags().StringVar(&sheetName, "sheet", "",
		"worksheet name for spreadsheet files (default: first sheet)")
}

func registerMappingFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mappingFilePath, "mapping-file", DEFAULT_MAPPING_FILE,
		"path of the mapping store document (keep it safe - it is the only way to unmask)")
}

func registerDetectFlags(cmd *cobra.Command) {
	cmd.Flags().Int("sample-size", detect.DEFAULT_SAMPLE_SIZE,
		"number of non-null values sampled per column by the pattern heuristic")
	cmd.Flags().Float64("pattern-match-ratio", detect.DEFAULT_PATTERN_MATCH_RATIO,
		"fraction of sampled values that must match a content pattern to flag a column")
	cmd.Flags().Float64("cardinality-ratio", detect.DEFAULT_CARDINALITY_RATIO,
		"distinct/total ratio above which a column is flagged as a likely identifier")
}

// bindDetectFlags points the viper keys at the invoked command's flag set.
// More than one command registers these flags, so binding has to happen at
// run time; binding at registration would leave the keys attached to
// whichever command registered last.
func bindDetectFlags(cmd *cobra.Command) {
	viper.BindPFlag(config.DETECT_SAMPLE_SIZE_KEY, cmd.Flags().Lookup("sample-size"))
	viper.BindPFlag(config.DETECT_PATTERN_MATCH_RATIO_KEY, cmd.Flags().Lookup("pattern-match-ratio"))
	viper.BindPFlag(config.DETECT_CARDINALITY_RATIO_KEY, cmd.Flags().Lookup("cardinality-ratio"))
}

func detectConfigFromViper() detect.Config {
	cfg := detect.Config{
		SampleSize:        viper.GetInt(config.DETECT_SAMPLE_SIZE_KEY),
		PatternMatchRatio: viper.GetFloat64(config.DETECT_PATTERN_MATCH_RATIO_KEY),
		CardinalityRatio:  viper.GetFloat64(config.DETECT_CARDINALITY_RATIO_KEY),
	}
	if err := config.ValidateSampleSize(cfg.SampleSize); err != nil {
		utils.ErrExit("%v", err)
	}
	if err := config.ValidateRatio("pattern-match-ratio", cfg.PatternMatchRatio); err != nil {
		utils.ErrExit("%v", err)
	}
	if err := config.ValidateRatio("cardinality-ratio", cfg.CardinalityRatio); err != nil {
		utils.ErrExit("%v", err)
	}
	return cfg
}

func datasetOptions() tabular.Options {
	return tabular.Options{NullString: nullString, SheetName: sheetName}
}

func loadDataset(filePath string) *tabular.Dataset {
	ds, err := tabular.ReadDatasetFile(filePath, datasetOptions())
	if err != nil {
		utils.ErrExit("load dataset: %v", err)
	}
	utils.PrintAndLog("File loaded: %s (%s rows, %d columns)",
		filePath, humanize.Comma(int64(ds.RowCount())), ds.ColumnCount())
	return ds
}

func loadMappingStore(filePath string) *mask.MappingStore {
	store, err := mask.LoadMappingStore(filePath)
	if err != nil {
		utils.ErrExit("load mapping store: %v", err)
	}
	return store
}

func writeDataset(ds *tabular.Dataset, filePath string) {
	err := tabular.WriteDatasetFile(ds, filePath, datasetOptions())
	if err != nil {
		utils.ErrExit("write dataset: %v", err)
	}
}
