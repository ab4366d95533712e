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
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dataveil/dataveil/src/mask"
	"github.com/dataveil/dataveil/src/utils"
)

var columnsToUnmask []string

var unmaskCmd = &cobra.Command{
	Use:   "unmask",
	Short: "Restore original values of a masked dataset using a mapping store document.",
	Long: `Replace tokens with their original values using the reverse index of the mapping
store document. The document may come from a different session or machine as long as it
conforms to the {column: {original: token}} schema. Without --columns, every dataset
column present in the store is restored. The store is never modified.`,

	Run: func(cmd *cobra.Command, args []string) {
		if !utils.FileOrFolderExists(mappingFilePath) {
			utils.ErrExit("mapping file does not exist: %q", mappingFilePath)
		}
		store := loadMappingStore(mappingFilePath)
		ds := loadDataset(inputFilePath)

		restoredDs, skipped, err := mask.Unmask(ds, columnsToUnmask, store)
		if err != nil {
			utils.ErrExit("unmask dataset: %v", err)
		}
		if len(skipped) > 0 {
			utils.PrintAndLog("%s columns not present in the mapping store were skipped: %v",
				color.YellowString("Note:"), skipped)
		}

		writeDataset(restoredDs, outputFilePath)
		utils.PrintAndLog("%s Unmasked %q into %q", color.GreenString("Done."), inputFilePath, outputFilePath)
	},
}

func init() {
	rootCmd.AddCommand(unmaskCmd)
	registerDatasetFlags(unmaskCmd)
	registerMappingFileFlag(unmaskCmd)

	unmaskCmd.Flags().StringSliceVar(&columnsToUnmask, "columns", nil,
		"comma-separated list of column names to unmask (default: all mapped columns)")

	unmaskCmd.Flags().StringVar(&outputFilePath, "output", "",
		"path of the restored dataset file to write (CSV, XLSX)")
	unmaskCmd.MarkFlagRequired("output")
}
