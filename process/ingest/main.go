// Command ingest registers image files dropped under the media base as Photo
// rows, so bulk-copied scans show up in the catalog without manual uploads.
// Idempotent per relative path; optional watch mode for continuous ingest.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cairocms/models"
	"cairocms/pkg/catalog"
)

var verbose bool

// knownRefs caches already-registered image refs to avoid per-file queries.
type knownRefs struct {
	refs map[string]bool
	mu   sync.RWMutex
}

func newKnownRefs() *knownRefs {
	return &knownRefs{refs: make(map[string]bool, 1024)}
}

func (k *knownRefs) has(ref string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.refs[ref]
}

func (k *knownRefs) put(ref string) {
	k.mu.Lock()
	k.refs[ref] = true
	k.mu.Unlock()
}

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

func main() {
	baseFlag := flag.String("base", "media", "media base directory (same as MEDIA_BASE)")
	dirFlag := flag.String("dir", "photos", "subdirectory under the base to scan")
	dryRun := flag.Bool("dry-run", false, "list unregistered files without touching the DB")
	watch := flag.Bool("watch", false, "watch the directory for new files")
	workers := flag.Int("workers", 0, "worker pool size (default NumCPU)")
	flag.BoolVar(&verbose, "verbose", false, "verbose per-file logging")
	flag.Parse()

	scanDir := filepath.Join(*baseFlag, *dirFlag)
	files := listImageFiles(scanDir, *dirFlag)

	if *dryRun {
		log.Printf("Dry-run: found %d candidate files under %s", len(files), scanDir)
		for _, f := range files {
			log.Printf("  %s", f)
		}
		return
	}

	db := mustInitDBFromEnv()
	store := catalog.New(db, *baseFlag)
	known := preloadRefs(db)
	log.Printf("Preloaded %d existing photo refs", len(known.refs))

	log.Printf("Scanning %d files (workers=%d)", len(files), effectiveWorkers(*workers))
	runWorkerPool(store, known, files, effectiveWorkers(*workers), nil)

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := watchDirectory(ctx, scanDir, *dirFlag, store, known, effectiveWorkers(*workers)); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
		log.Printf("watch stopped")
	}
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func logV(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func preloadRefs(db *gorm.DB) *knownRefs {
	k := newKnownRefs()
	var photos []models.Photo
	if err := db.Select("image_ref").Find(&photos).Error; err == nil {
		for _, p := range photos {
			k.refs[p.ImageRef] = true
		}
	}
	return k
}

// listImageFiles returns refs (relative to the media base) for image files in dir.
func listImageFiles(dir, refPrefix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, refPrefix+"/"+e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// registerRef creates the Photo row for one ref unless it is already known.
func registerRef(store *catalog.Store, known *knownRefs, ref string) {
	if known.has(ref) {
		logV("skip %s (already registered)", ref)
		return
	}
	photo, err := store.CreatePhoto(catalog.PhotoInput{ImageRef: ref})
	if err != nil {
		log.Printf("register %s failed: %v", ref, err)
		return
	}
	known.put(ref)
	logV("registered %s as photo %d", ref, photo.ID)
}

// watchDirectory feeds debounced fsnotify Create events into the worker pool
// until ctx is cancelled (SIGINT/SIGTERM in main).
func watchDirectory(ctx context.Context, dir, refPrefix string, store *catalog.Store, known *knownRefs, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		defer close(fileCh)
		// simple debounce map of pending files
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[refPrefix+"/"+name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for ref, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- ref
						delete(pending, ref)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	runWorkerPool(store, known, nil, workers, fileCh)
	return nil
}

// runWorkerPool registers refs over a fixed worker pool: the initial list
// first, then anything arriving on extra until it closes. Always drains its
// queue and waits for the workers before returning.
func runWorkerPool(store *catalog.Store, known *knownRefs, initial []string, workers int, extra <-chan string) {
	refCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ref := range refCh {
				registerRef(store, known, ref)
			}
		}()
	}
	go func() {
		defer close(refCh)
		for _, f := range initial {
			refCh <- f
		}
		if extra != nil {
			for ref := range extra {
				refCh <- ref
			}
		}
	}()
	wg.Wait()
}
