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

	"github.com/dataveil/dataveil/src/detect"
	"github.com/dataveil/dataveil/src/lockfile"
	"github.com/dataveil/dataveil/src/mask"
	"github.com/dataveil/dataveil/src/utils"
)

var (
	columnsToMask []string
	maskPrefix    string
	autoDetect    bool
)

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Mask sensitive columns of a dataset and update the mapping store.",
	Long: `Replace the values of the selected columns with deterministic tokens and record the
original<->token pairs in the mapping store document. The document is the only way to
restore the data - download/store it safely. Re-masking the same values reuses the
existing tokens, so the store only ever grows.`,

	PreRun: func(cmd *cobra.Command, args []string) {
		bindDetectFlags(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		ds := loadDataset(inputFilePath)

		columns := columnsToMask
		if len(columns) == 0 && autoDetect {
			result := detect.NewClassifier(detectConfigFromViper()).Classify(ds)
			columns = result.ColumnNames()
			if len(columns) == 0 {
				utils.ErrExit("auto-detection found no sensitive columns in %q; pass --columns explicitly", inputFilePath)
			}
			utils.PrintAndLog("Auto-detected sensitive columns: %v", columns)
		}

		// The lock spans load-mask-save so concurrent dataveil runs cannot
		// interleave their check-then-insert on the same document.
		lock := lockfile.NewLockfile(mappingFilePath, cmd.Use)
		lock.Lock()
		defer lock.Unlock()

		store := loadMappingStore(mappingFilePath)
		entriesBefore := store.TotalEntries()

		maskedDs, err := mask.Mask(ds, columns, maskPrefix, store)
		if err != nil {
			utils.ErrExit("mask dataset: %v", err)
		}

		err = store.Save(mappingFilePath)
		if err != nil {
			utils.ErrExit("persist mapping store: %v", err)
		}
		writeDataset(maskedDs, outputFilePath)

		utils.PrintAndLog("%s Masked %d column(s) of %q into %q (%d new mapping entries)",
			color.GreenString("Done."), len(columns), inputFilePath, outputFilePath,
			store.TotalEntries()-entriesBefore)
		utils.PrintAndLog("%s Keep the mapping file %q safe - it is the only way to unmask the data.",
			color.YellowString("Important:"), mappingFilePath)
	},
}

func init() {
	rootCmd.AddCommand(maskCmd)
	registerDatasetFlags(maskCmd)
	registerMappingFileFlag(maskCmd)
	registerDetectFlags(maskCmd)

	maskCmd.Flags().StringSliceVar(&columnsToMask, "columns", nil,
		"comma-separated list of column names to mask")

	maskCmd.Flags().BoolVar(&autoDetect, "auto-detect", false,
		"mask the columns suggested by the sensitivity heuristics when --columns is not given")

	maskCmd.Flags().StringVar(&maskPrefix, "prefix", mask.DEFAULT_TOKEN_PREFIX,
		"prefix of the generated tokens")

	maskCmd.Flags().StringVar(&outputFilePath, "output", "",
		"path of the masked dataset file to write (CSV, XLSX)")
	maskCmd.MarkFlagRequired("output")
}
