/*
Copyright © 2025 Graydon Shevchenko <graydon.shevchenko@gov.bc.ca>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/GraydonShevchenko/lup-interest-reporting/internal/ioreport"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getReportCmd returns the report command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getReportCmd() *cobra.Command {
	var (
		fileNumber string
		schemaPath string
		workspace  string
		aoiName    string
		aoiField   string
		leaveAreas string
		outputDir  string
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build an overlap report workbook",
		Long: `Build the cumulative-effects overlap report for one AOI.

This command:
  1. Reads the Excel schema workbook (Indicators, Additional Fields)
  2. Resolves dataset paths locally, then via catalog.yaml
  3. Reads overlay records from the scratch SQLite workspace
  4. Aggregates overlap statistics per assessment unit and partition
  5. Writes CE_Overview_<file>_<yyyymmdd>.xlsx to the output directory

The workspace is produced beforehand by the geometry tooling; lupr
performs no spatial processing itself.

Examples:
  # Report for a single, unpartitioned AOI
  lupr report -f 18744-30 -s schema.xlsx -w scratch.db -n "Howe Sound"

  # One sheet per landscape unit
  lupr report -f 18744-30 -s schema.xlsx -w scratch.db \
    -n "Howe Sound" -a LANDSCAPE_UNIT`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReport(
				cmd, fileNumber, schemaPath, workspace,
				aoiName, aoiField, leaveAreas, outputDir,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	reportCmd.Flags().StringVarP(
		&fileNumber, "file-number", "f", "",
		"file name or number used in the report and output name",
	)
	reportCmd.Flags().StringVarP(
		&schemaPath, "schema", "s", "",
		"path to the Excel schema workbook",
	)
	reportCmd.Flags().StringVarP(
		&workspace, "workspace", "w", "",
		"path to the scratch SQLite overlay workspace",
	)
	reportCmd.Flags().StringVarP(
		&aoiName, "aoi-name", "n", "",
		"display name of the area of interest",
	)
	reportCmd.Flags().StringVarP(
		&aoiField, "aoi-field", "a", "",
		"attribute that splits the AOI into one sheet per value",
	)
	reportCmd.Flags().StringVarP(
		&leaveAreas, "leave-areas", "l", "",
		"leave-area source netted out of the AOI (reporting context)",
	)
	reportCmd.Flags().StringVarP(
		&outputDir, "output", "o", "",
		"directory for the report workbook (overrides config)",
	)

	_ = reportCmd.MarkFlagRequired("file-number")
	_ = reportCmd.MarkFlagRequired("schema")
	_ = reportCmd.MarkFlagRequired("workspace")

	return reportCmd
}

func runReport(
	cmd *cobra.Command,
	fileNumber, schemaPath, workspace string,
	aoiName, aoiField, leaveAreas, outputDir string,
) error {
	ctx := context.Background()

	reportOpts := []config.Option{
		config.OptFileNumber(fileNumber),
		config.OptSchemaPath(schemaPath),
		config.OptWorkspace(workspace),
	}
	if cmd.Flags().Changed("aoi-name") {
		reportOpts = append(reportOpts, config.OptAOIName(aoiName))
	}
	if cmd.Flags().Changed("aoi-field") {
		reportOpts = append(reportOpts, config.OptAOIField(aoiField))
	}
	if cmd.Flags().Changed("leave-areas") {
		reportOpts = append(reportOpts, config.OptLeaveAreas(leaveAreas))
	}
	if cmd.Flags().Changed("output") {
		reportOpts = append(reportOpts, config.OptOutputDir(outputDir))
	}
	cfg.Update(reportOpts)

	rep := ioreport.New(cfg)

	gn.Info("Starting overlap report for <em>%s</em>...",
		cfg.Report.FileNumber)
	path, err := rep.Run(ctx)
	if err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Review the report at '<em>%s</em>'
	 - Adjust the schema workbook and re-run if values are missing
`, path)

	return nil
}
