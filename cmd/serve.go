package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	debounceDuration = 500 * time.Millisecond
	shutdownTimeout  = 5 * time.Second
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a local
web server to serve your output directory. It also watches your content, layouts,
and static directories for changes and automatically rebuilds the site.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := appConfig
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		logger.Info("performing initial build")
		if err := runBuildProcess(ctx, cfg); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		for _, dir := range []string{cfg.ContentDir, cfg.LayoutsDir, cfg.StaticDir} {
			watchTree(watcher, dir)
		}

		var mu sync.Mutex
		go watchLoop(ctx, watcher, debounceDuration, func() {
			mu.Lock()
			defer mu.Unlock()
			logger.Info("rebuilding site due to changes")
			if err := runBuildProcess(ctx, cfg); err != nil {
				logger.Error("rebuild failed", zap.Error(err))
			}
		})

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           newDevHandler(cfg.OutputDir),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			logger.Info("serving site",
				zap.String("dir", cfg.OutputDir),
				zap.String("url", fmt.Sprintf("http://localhost:%d/", cfg.Port)))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to start HTTP server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// watchTree adds root and every directory below it; fsnotify is not
// recursive.
func watchTree(w *fsnotify.Watcher, root string) {
	if root == "" || !isDir(root) {
		logger.Debug("directory not found, not watching", zap.String("dir", root))
		return
	}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("error walking directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				logger.Warn("failed to watch directory", zap.String("path", path), zap.Error(err))
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("error during initial directory walk", zap.String("dir", root), zap.Error(err))
	}
}

// watchLoop calls rebuild once changes have been quiet for debounce.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, debounce time.Duration, rebuild func()) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				watchTree(w, event.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, rebuild)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// newDevHandler serves root without caching, answers directories lacking
// an index.html with 404 and uses 404.html for missing files when present.
func newDevHandler(root string) http.Handler {
	files := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		p := filepath.Join(root, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		info, err := os.Stat(p)
		if err != nil {
			serveNotFound(w, r, root)
			return
		}
		if info.IsDir() {
			if _, err := os.Stat(filepath.Join(p, "index.html")); err != nil {
				serveNotFound(w, r, root)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

func serveNotFound(w http.ResponseWriter, r *http.Request, root string) {
	page, err := os.ReadFile(filepath.Join(root, "404.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "port to serve the site on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
