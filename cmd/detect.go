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
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/dataveil/dataveil/src/detect"
	"github.com/dataveil/dataveil/src/utils"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Suggest dataset columns that likely contain sensitive identifiers.",
	Long: `Inspect column names and sampled values of a dataset and report columns that likely
contain sensitive identifiers. Three heuristics contribute reasons: name keywords,
content patterns (email, phone, SSN, credit card), and high value cardinality.
The output is advisory only; nothing is modified.`,

	PreRun: func(cmd *cobra.Command, args []string) {
		bindDetectFlags(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		ds := loadDataset(inputFilePath)
		classifier := detect.NewClassifier(detectConfigFromViper())
		result := classifier.Classify(ds)

		if result.IsEmpty() {
			utils.PrintAndLog("No sensitive columns detected in %q", inputFilePath)
			return
		}

		utils.PrintAndLog("Found %d potentially sensitive column(s) in %q:", len(result.Findings), inputFilePath)
		fmt.Println(renderFindingsTable(result))
	},
}

func renderFindingsTable(result *detect.Result) string {
	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true

	headerFmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	table.AddRow(headerFmt("COLUMN"), headerFmt("REASONS"))
	for _, finding := range result.Findings {
		table.AddRow(finding.ColumnName, strings.Join(finding.Reasons, ", "))
	}
	return table.String()
}

func init() {
	rootCmd.AddCommand(detectCmd)
	registerDatasetFlags(detectCmd)
	registerDetectFlags(detectCmd)
}
