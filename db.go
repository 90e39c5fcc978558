package main

import (
	"context"
	"errors"
	"fmt"

	"footdash/dataset"
	"footdash/report"
	"footdash/store"

	"go.uber.org/zap"
)

func openStore(ctx context.Context, cfg Config, logger *zap.Logger) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("store opened", zap.String("driver", store.DriverFor(cfg.DatabaseURL)))
	return st, nil
}

// readSource reads a local export or downloads one when src is a URL.
func readSource(ctx context.Context, src string) ([]dataset.Row, error) {
	if dataset.IsURL(src) {
		return dataset.NewFetcher().Fetch(ctx, src)
	}
	return dataset.ReadFile(src)
}

func importDataset(ctx context.Context, st *store.Store, src string, logger *zap.Logger) (store.Import, error) {
	rows, err := readSource(ctx, src)
	if err != nil {
		return store.Import{}, fmt.Errorf("read %s: %w", src, err)
	}
	imp, err := st.Replace(ctx, src, rows)
	if err != nil {
		return store.Import{}, fmt.Errorf("store %s: %w", src, err)
	}
	logger.Info("dataset imported",
		zap.String("import_id", imp.ID),
		zap.String("source", src),
		zap.Int("rows", imp.RowCount))
	return imp, nil
}

// loadReport builds the report from whatever the store currently holds.
func loadReport(ctx context.Context, st *store.Store, opts report.Options, logger *zap.Logger) (*report.Report, error) {
	ds, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}

	imp, err := st.LastImport(ctx)
	switch {
	case errors.Is(err, store.ErrNoImport):
		logger.Warn("no dataset imported yet; run `footdash import <file>`")
	case err != nil:
		return nil, err
	default:
		logger.Info("dataset loaded",
			zap.String("import_id", imp.ID),
			zap.String("source", imp.Source),
			zap.Time("imported_at", imp.ImportedAt),
			zap.Int("rows", ds.Len()))
	}

	rep := report.New(ds, opts)
	logger.Info("report ready",
		zap.Int("eligible_rows", rep.Dataset().Len()),
		zap.Int("players", len(rep.TopPlayers())),
		zap.String("default_player", rep.DefaultPlayer()))
	return rep, nil
}
