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
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dataveil/dataveil/src/utils"
)

var mappingDisplayLimit int

var showMappingCmd = &cobra.Command{
	Use:   "show-mapping",
	Short: "Display the contents of the current mapping store document.",

	Run: func(cmd *cobra.Command, args []string) {
		if !utils.FileOrFolderExists(mappingFilePath) {
			utils.PrintAndLog("No mapping available at %q. Mask some data first!", mappingFilePath)
			return
		}
		store := loadMappingStore(mappingFilePath)
		if store.IsEmpty() {
			utils.PrintAndLog("Mapping store %q is empty. Mask some data first!", mappingFilePath)
			return
		}

		headerFmt := color.New(color.FgGreen, color.Underline).SprintFunc()
		for _, columnName := range store.Columns() {
			entryCount := store.EntryCount(columnName)
			utils.PrintAndLog("Column %q (%s values):", columnName, humanize.Comma(int64(entryCount)))

			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow(headerFmt("ORIGINAL"), headerFmt("MASKED"))

			columnMapping := store.ColumnMapping(columnName)
			originals := make([]string, 0, len(columnMapping))
			for original := range columnMapping {
				originals = append(originals, original)
			}
			sort.Strings(originals)

			shown := 0
			for _, original := range originals {
				if shown == mappingDisplayLimit {
					break
				}
				table.AddRow(original, columnMapping[original])
				shown++
			}
			fmt.Println(table.String())
			if entryCount > mappingDisplayLimit {
				utils.PrintAndLog("Showing first %d of %d mappings", mappingDisplayLimit, entryCount)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(showMappingCmd)
	registerMappingFileFlag(showMappingCmd)

	showMappingCmd.Flags().IntVar(&mappingDisplayLimit, "limit", 100,
		"maximum number of entries displayed per column")
}
