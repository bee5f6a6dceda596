// Package ioreport orchestrates a complete report run: schema load,
// dataset resolution, overlay aggregation and workbook writing.
// This is an impure I/O package tying the pure engines to the
// workspace, the catalog and the file system.
package ioreport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/GraydonShevchenko/lup-interest-reporting/internal/iocatalog"
	"github.com/GraydonShevchenko/lup-interest-reporting/internal/iooverlay"
	"github.com/GraydonShevchenko/lup-interest-reporting/internal/ioxlsx"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/aggregate"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/config"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/lupr"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/report"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/google/uuid"
)

// reporter implements the Reporter interface.
type reporter struct {
	cfg *config.Config
}

// New creates a new Reporter.
func New(cfg *config.Config) lupr.Reporter {
	return &reporter{cfg: cfg}
}

// Run produces the report workbook and returns its path. Per-dataset
// problems (unresolvable path, missing overlay table, no overlap) are
// recovered with warnings; schema and workspace problems abort the run.
func (r *reporter) Run(ctx context.Context) (string, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	rep := r.cfg.Report

	slog.Info("Starting overlap report run",
		"run_id", runID,
		"file_number", rep.FileNumber,
		"schema", rep.SchemaPath,
		"workspace", rep.Workspace,
	)

	gn.Info("(1/4) Reading schema workbook <em>%s</em>",
		filepath.Base(rep.SchemaPath))
	res, err := ioxlsx.ReadSchema(rep.SchemaPath)
	if err != nil {
		return "", err
	}

	catalogPath := rep.Catalog
	if catalogPath == "" {
		catalogPath = config.CatalogFilePath(r.cfg.HomeDir)
	}
	resolver, err := iocatalog.New(catalogPath)
	if err != nil {
		return "", err
	}
	count := resolveDatasets(res.Schema, resolver)
	if count == 0 {
		return "", NoDatasetsError(rep.SchemaPath)
	}
	slog.Info("Schema loaded",
		"run_id", runID,
		"categories", len(res.Schema.Categories),
		"datasets", count,
	)

	gn.Info("(2/4) Aggregating overlay statistics...")
	ws, err := iooverlay.Open(rep.Workspace, rep.AOIField)
	if err != nil {
		return "", err
	}
	defer ws.Close()

	aoiTotal, partTotals, partitions, err := ws.AOITotals(ctx)
	if err != nil {
		return "", err
	}

	if err = r.aggregateDatasets(ctx, ws, res.Schema); err != nil {
		return "", err
	}

	gn.Info("(3/4) Building report layout...")
	layout, err := report.Build(res.Schema, report.Params{
		Title:           "Cumulative Effects Analysis - " + rep.AOIName,
		FileNumber:      rep.FileNumber,
		AOITotal:        aoiTotal,
		PartitionTotals: partTotals,
		Partitions:      partitions,
		LeaveAreas:      rep.LeaveAreas,
	})
	if err != nil {
		return "", LayoutError(err)
	}

	outPath := filepath.Join(rep.OutputDir, fmt.Sprintf(
		"CE_Overview_%s_%s.xlsx",
		rep.FileNumber, startTime.Format("20060102"),
	))
	// a report from an earlier run today gets replaced
	if _, err = os.Stat(outPath); err == nil {
		if err = os.Remove(outPath); err != nil {
			return "", ioxlsx.ReportSaveError(outPath, err)
		}
	}

	gn.Info("(4/4) Writing report <em>%s</em>", outPath)
	if err = ioxlsx.WriteReport(outPath, layout, res.Styles); err != nil {
		return "", err
	}

	totalDuration := time.Since(startTime)
	slog.Info("Report run complete",
		"run_id", runID,
		"datasets", count,
		"sheets", len(layout.Sheets),
		"path", outPath,
		"duration", totalDuration.Round(time.Millisecond).String(),
	)
	gn.Info(`Report complete
Datasets processed: %s, sheets written: %s.
Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(count)),
		humanize.Comma(int64(len(layout.Sheets))),
		totalDuration.Round(time.Second),
	)
	return outPath, nil
}

// aggregateDatasets folds every dataset's overlay records into its
// statistics. A dataset without an overlay table is reported as having
// no overlap instead of failing the run.
func (r *reporter) aggregateDatasets(
	ctx context.Context,
	ws *iooverlay.Workspace,
	sch *schema.Schema,
) error {
	datasets := sch.Datasets()

	bar := pb.Full.Start(len(datasets))
	bar.Set("prefix", "Processing datasets: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for _, ds := range datasets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		src, err := ws.DatasetSource(ctx, ds)
		if err != nil {
			slog.Warn("No overlay table for dataset, reporting no overlap",
				"dataset", ds.Name, "error", err)
			ds.ResetStats()
			ds.NoOverlap = true
			bar.Increment()
			continue
		}

		overlapped, err := aggregate.Run(ctx, ds, src)
		if err != nil {
			return err
		}
		if !overlapped {
			slog.Warn("Dataset has no overlap with the AOI",
				"dataset", ds.Name, "filter", ds.Filter)
		}
		bar.Increment()
	}
	return nil
}

// resolveDatasets checks every dataset path against the file system and
// the catalog, rewrites resolved paths and drops the rest. Returns the
// number of datasets kept.
func resolveDatasets(sch *schema.Schema, resolver *iocatalog.Resolver) int {
	var count int
	for _, cat := range sch.Categories {
		var kept []*schema.IndicatorDataset
		for _, ds := range cat.Datasets {
			loc, ok := resolver.Resolve(ds.Path)
			if !ok {
				gn.Warn("Cannot resolve dataset <em>%s</em> (%s), "+
					"excluding it from the report", ds.Name, ds.Path)
				slog.Warn("Dataset path not resolvable",
					"dataset", ds.Name, "path", ds.Path)
				continue
			}
			ds.Path = loc
			kept = append(kept, ds)
			count++
		}
		cat.Datasets = kept
	}
	return count
}
