package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tplgen/internal/loader"
	"github.com/leapstack-labs/tplgen/pkg/expand"
)

var errNothingToWatch = errors.New("--watch needs a template file (--file) or a job file (--values)")

func watchGenerate(cmd *cobra.Command, c *CommandContext, opts *GenerateOptions, deps generateDeps) error {
	paths := watchedPaths(&opts.SourceOptions)
	if len(paths) == 0 {
		return errNothingToWatch
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	errOut := c.Renderer.ErrWriter()
	regenerate := func() bool {
		err := generateOnce(cmd, c, opts, deps)
		if err == nil {
			return true
		}
		// Generation errors were already shown as notifications
		if _, ok := expand.KindOf(err); !ok {
			c.Renderer.Warning(err.Error())
		}
		return false
	}

	regenerate()

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	printMuted(c, errOut, fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", strings.Join(names, ", ")))

	return watchFiles(ctx, paths, c.Cfg.WatchDebounce, c.Logger, func(name string) {
		if regenerate() {
			c.Renderer.Success(fmt.Sprintf("Regenerated after change to %s", filepath.Base(name)))
		}
	})
}

func printMuted(c *CommandContext, w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, c.Renderer.Styles().Muted.Render(text))
}

// watchedPaths lists the files whose changes trigger regeneration: the
// template file, the job file and the template file the job refers to.
func watchedPaths(opts *SourceOptions) []string {
	var paths []string
	if opts.File != "" && opts.File != "-" {
		paths = append(paths, opts.File)
	}
	if opts.ValuesFile != "" {
		paths = append(paths, opts.ValuesFile)
		if job, err := loader.LoadJob(opts.ValuesFile); err == nil && job.TemplateFile != "" {
			paths = append(paths, job.TemplateFile)
		}
	}
	return paths
}

// watchFiles calls onChange, debounced, whenever one of paths is written or
// recreated. The parent directories are watched so editors that replace files
// on save are picked up. onChange runs on the calling goroutine.
func watchFiles(ctx context.Context, paths []string, debounce time.Duration, logger *slog.Logger, onChange func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()
	fire := make(chan string, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !targets[name] {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case fire <- name:
				default:
				}
			})
		case name := <-fire:
			logger.Debug("change detected", "file", name)
			onChange(name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
