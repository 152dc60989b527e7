package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/five82/wyrm/internal/cache"
	"github.com/five82/wyrm/internal/config"
	"github.com/five82/wyrm/internal/item"
	"github.com/five82/wyrm/internal/logsink"
	"github.com/five82/wyrm/internal/seeker"
	"github.com/five82/wyrm/internal/ui"
)

// Options configure a wyrm run.
type Options struct {
	ConfigPath string
	Query      item.Query
	Debug      bool
}

// Result carries the items the user took from the result list.
type Result struct {
	Wanted []item.Item
}

// Run searches every configured seeker and shows the results until the user
// quits or takes the marked items.
func Run(ctx context.Context, opts Options) (Result, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return Result{}, fmt.Errorf("load config: %w", err)
	}

	// stdout carries the handed-back items, so the UI is drawn on stderr.
	tty := os.Stderr
	if err := ui.CheckTerminal(tty); err != nil {
		return Result{}, err
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	sink := logsink.New(level, cfg.LogLimit)
	previous := slog.Default()
	slog.SetDefault(slog.New(sink))
	defer slog.SetDefault(previous)

	searchers, fetchers, err := buildSeekers(cfg)
	if err != nil {
		return Result{}, err
	}

	descriptions, err := cache.Open(ctx, cfg.CachePath)
	if err != nil {
		slog.Warn("description cache unavailable", "path", cfg.CachePath, "error", err)
	}
	defer descriptions.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &item.Store{}
	program := ui.New(ui.Options{
		Context:   ctx,
		Store:     store,
		Output:    tty,
		Fetcher:   &detailFetcher{cache: descriptions, seekers: fetchers},
		Logs:      sink,
		Columns:   columns(cfg.Columns),
		ThemeName: themeName(cfg.Theme),
		LogLimit:  cfg.LogLimit,
	})

	collector := &Collector{
		Store:     store,
		Searchers: searchers,
		Query:     opts.Query,
		Accuracy:  cfg.Accuracy,
		Notify:    program.Update,
	}
	slog.Info("searching", "seekers", len(searchers), "query", describeQuery(opts.Query))
	collector.Start(ctx)

	took, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	if !took {
		return Result{}, nil
	}
	return Result{Wanted: program.WantedItems()}, nil
}

func buildSeekers(cfg config.Config) ([]seeker.Searcher, map[string]seeker.DetailFetcher, error) {
	searchers := make([]seeker.Searcher, 0, len(cfg.Seekers))
	fetchers := make(map[string]seeker.DetailFetcher, len(cfg.Seekers))
	for _, s := range cfg.Seekers {
		client, err := seeker.NewClient(s.Name, s.URL, cfg.FetchTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("init seeker %s: %w", s.Name, err)
		}
		if _, dup := fetchers[client.Name()]; dup {
			return nil, nil, fmt.Errorf("duplicate seeker name %q", client.Name())
		}
		searchers = append(searchers, client)
		fetchers[client.Name()] = client
	}
	return searchers, fetchers, nil
}

func columns(overrides map[string]config.ColumnWidth) []ui.ColumnSpec {
	cols := ui.DefaultColumns()
	for name, w := range overrides {
		if !ui.OverrideColumn(cols, name, w.Cells, w.Fraction) {
			slog.Warn("unknown column in config", "column", name)
		}
	}
	return cols
}

// themeName returns name if it is a known theme, the first theme otherwise.
func themeName(name string) string {
	names := ui.ThemeNames()
	if slices.Contains(names, name) {
		return name
	}
	slog.Warn("unknown theme in config", "theme", name, "available", strings.Join(names, ", "))
	return names[0]
}

func describeQuery(q item.Query) string {
	if q.Empty() {
		return "everything"
	}
	return fmt.Sprintf("%+v", q)
}
