// Package main implements shardmap-bench, a load harness that drives a
// sharded map with concurrent writers and readers while periodically
// exporting snapshots, then reports operation counts and optionally
// dumps the final snapshot as JSON.
//
// The harness is peripheral glue around the library: it decides when to
// export and what to do with exported data, the two responsibilities the
// map deliberately leaves to its callers.
//
// Workload:
//   - writers: mixed set/get/delete over a bounded key space
//   - exporter: exports a snapshot on a fixed interval
//   - readers: resolve random keys through the current snapshot
//
// Configuration (YAML file, path in SHARDMAP_BENCH_CONFIG, default
// "shardmap-bench.yaml"; built-in defaults apply if the file is absent):
//
//	shards: 16          # shard count, 0 = library default
//	writers: 8          # concurrent writer goroutines
//	readers: 4          # concurrent snapshot-reader goroutines
//	keys: 100000        # key space size
//	duration: 10s       # total run time
//	exportEvery: 250ms  # snapshot export interval
//	out: dump.json      # optional final-snapshot dump path
//
// Example usage:
//
//	SHARDMAP_BENCH_CONFIG=bench.yaml ./shardmap-bench
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dreamware/shardmap"
)

// config holds the harness settings. Durations are YAML strings parsed
// with time.ParseDuration.
type config struct {
	Shards      int    `yaml:"shards"`
	Writers     int    `yaml:"writers"`
	Readers     int    `yaml:"readers"`
	Keys        int    `yaml:"keys"`
	Duration    string `yaml:"duration"`
	ExportEvery string `yaml:"exportEvery"`
	Out         string `yaml:"out"`

	duration    time.Duration
	exportEvery time.Duration
}

func defaultConfig() config {
	return config{
		Shards:      16,
		Writers:     8,
		Readers:     4,
		Keys:        100000,
		Duration:    "10s",
		ExportEvery: "250ms",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Built-in defaults.
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.duration, err = time.ParseDuration(cfg.Duration); err != nil {
		return cfg, fmt.Errorf("parse duration: %w", err)
	}
	if cfg.exportEvery, err = time.ParseDuration(cfg.ExportEvery); err != nil {
		return cfg, fmt.Errorf("parse exportEvery: %w", err)
	}
	if cfg.Writers < 1 || cfg.Readers < 0 || cfg.Keys < 1 {
		return cfg, fmt.Errorf("invalid workload: writers=%d readers=%d keys=%d",
			cfg.Writers, cfg.Readers, cfg.Keys)
	}
	return cfg, nil
}

func main() {
	lg, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	path := os.Getenv("SHARDMAP_BENCH_CONFIG")
	if path == "" {
		path = "shardmap-bench.yaml"
	}
	cfg, err := loadConfig(path)
	if err != nil {
		lg.Fatal("configuration", zap.Error(err))
	}

	opts := []shardmap.Option[string]{shardmap.WithCapacity[string](cfg.Keys)}
	if cfg.Shards > 0 {
		opts = append(opts, shardmap.WithShards[string](cfg.Shards))
	}
	m, err := shardmap.New[string, int64](opts...)
	if err != nil {
		lg.Fatal("construct map", zap.Error(err))
	}

	lg.Info("starting load",
		zap.Int("shards", m.Shards()),
		zap.Int("writers", cfg.Writers),
		zap.Int("readers", cfg.Readers),
		zap.Int("keys", cfg.Keys),
		zap.Duration("duration", cfg.duration),
		zap.Duration("exportEvery", cfg.exportEvery),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.duration)
	defer cancel()

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < cfg.Writers; w++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			for ctx.Err() == nil {
				key := fmt.Sprintf("key-%d", rng.Intn(cfg.Keys))
				switch rng.Intn(10) {
				case 0:
					m.Delete(key)
				case 1, 2, 3:
					m.Get(key)
				default:
					m.Set(key, time.Now().UnixNano())
				}
			}
			return nil
		})
	}

	var exports int
	g.Go(func() error {
		ticker := time.NewTicker(cfg.exportEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				snap := m.ExportSnapshot()
				exports++
				lg.Debug("exported snapshot", zap.Int("entries", snap.Len()))
			}
		}
	})

	for r := 0; r < cfg.Readers; r++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			for ctx.Err() == nil {
				snap, ok := m.CurrentSnapshot()
				if !ok {
					// Nothing exported yet.
					time.Sleep(time.Millisecond)
					continue
				}
				snap.Get(fmt.Sprintf("key-%d", rng.Intn(cfg.Keys)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		lg.Fatal("load run failed", zap.Error(err))
	}
	elapsed := time.Since(start)

	stats := m.Stats()
	ops := stats.Gets + stats.Puts + stats.Deletes
	lg.Info("load complete",
		zap.Duration("elapsed", elapsed),
		zap.Uint64("gets", stats.Gets),
		zap.Uint64("puts", stats.Puts),
		zap.Uint64("deletes", stats.Deletes),
		zap.Int("exports", exports),
		zap.Int("entries", m.Len()),
		zap.Float64("opsPerSec", float64(ops)/elapsed.Seconds()),
	)

	if cfg.Out != "" {
		if err := dumpSnapshot(m.ExportSnapshot(), cfg.Out); err != nil {
			lg.Fatal("dump snapshot", zap.Error(err))
		}
		lg.Info("snapshot dumped", zap.String("path", cfg.Out))
	}
}

// dumpSnapshot serializes every snapshot entry to a JSON object. This is
// the bulk-consumption pattern the snapshot iterator exists for: one
// lock-free pass over frozen data while writers keep going.
func dumpSnapshot(snap *shardmap.Snapshot[string, int64], path string) error {
	entries := make(map[string]int64, snap.Len())
	for k, v := range snap.All() {
		entries[k] = v
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
