package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/platinummonkey/pkgcycle/pkg/analyzer"
	"github.com/platinummonkey/pkgcycle/pkg/config"
	"github.com/platinummonkey/pkgcycle/pkg/imports"
	"github.com/platinummonkey/pkgcycle/pkg/linter"
	"github.com/platinummonkey/pkgcycle/pkg/linter/rules"
	"github.com/platinummonkey/pkgcycle/pkg/observability"
)

// DefaultWatchDelay is how long watch waits for changes to settle
const DefaultWatchDelay = 2 * time.Second

// newWatchCommand creates the watch command
func newWatchCommand(s *streams) *Command {
	flags := flag.NewFlagSet("watch", flag.ContinueOnError)
	flags.SetOutput(s.errOut)

	var common commonFlags
	common.register(flags)
	delay := flags.Duration("delay", DefaultWatchDelay, "Quiet period after a change before re-checking")

	return &Command{
		Name:        "watch",
		Description: "Re-run the check whenever sources change",
		Flags:       flags,
		Run: func(args []string) error {
			if err := flags.Parse(args); err != nil {
				return failure(err)
			}
			cfg, err := common.load(flags)
			if err != nil {
				return failure(err)
			}

			ctx, stop := observability.SignalContext(context.Background())
			defer stop()

			return runWatch(ctx, s, cfg, common.dir, *delay)
		},
	}
}

// runWatch checks once, then again after every burst of source changes,
// until ctx is cancelled
func runWatch(ctx context.Context, s *streams, cfg *config.Config, dir string, delay time.Duration) error {
	sourceDir := cfg.ResolveSourceRoot(dir)
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return failure(fmt.Errorf("source directory not found: %s", sourceDir))
	}

	sess, err := newSession(ctx, cfg, s.errOut)
	if err != nil {
		return failure(err)
	}
	logger := sess.logger

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		_ = sess.close(context.Background())
		return failure(fmt.Errorf("failed to create watcher: %w", err))
	}

	shutdown := observability.NewShutdownManager(logger, 0)
	shutdown.RegisterShutdownFunc(sess.close)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return watcher.Close()
	})

	if err := addWatches(watcher, sourceDir); err != nil {
		_ = shutdown.Shutdown(context.Background())
		return failure(fmt.Errorf("failed to watch %s: %w", sourceDir, err))
	}

	cache := imports.NewCache(imports.DefaultCacheSize, imports.DefaultCacheTTL)
	rule := rules.NewNoCyclicPackageDependencyRule(cfg, sess.analyzerOptions(analyzer.WithCache(cache))...)
	rule.OnReport(func(r *analyzer.Report) {
		writeReportText(s.out, r, cfg.FailOnError)
	})
	registry := linter.NewRuleRegistry()
	registry.Register(rule)
	engine := linter.NewEngine(registry, logger)
	project := &linter.Project{Name: cfg.ProjectName, BaseDir: dir}

	check := func() {
		_, err := engine.Run(ctx, project)
		sess.writeMetrics()

		var enforcement *linter.EnforcementError
		if err != nil && !errors.As(err, &enforcement) {
			logger.WithError(err).Error("Check failed")
		}
	}

	logger.Infof("Watching %s for changes", sourceDir)
	check()

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watch")
			return shutdown.Shutdown(context.Background())

		case event, ok := <-watcher.Events:
			if !ok {
				return shutdown.Shutdown(context.Background())
			}
			if !relevant(event, cfg.FileSuffix) {
				continue
			}
			logger.Debugf("Changed: %s (%s)", event.Name, event.Op)

			if event.Op&(fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				cache.Remove(event.Name)
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := addWatches(watcher, event.Name); err != nil {
						logger.WithError(err).Warnf("Failed to watch new directory %s", event.Name)
					}
				}
			}
			settle = time.After(delay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return shutdown.Shutdown(context.Background())
			}
			logger.WithError(err).Warn("Watcher error")

		case <-settle:
			settle = nil
			check()
		}
	}
}

// relevant reports whether event may change the dependency graph
func relevant(event fsnotify.Event, suffix string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasSuffix(event.Name, suffix) {
		return true
	}
	// directories carry no suffix; creating or removing one can add or drop files
	return filepath.Ext(event.Name) == "" && event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// addWatches recursively adds root and every directory below it
func addWatches(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
