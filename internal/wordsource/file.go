package wordsource

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"crosswarped.com/boggle/internal/wordlist"
)

// File reads scrubbed word files. Path is a single file or a doublestar glob;
// the words of every matching file are merged.
type File struct {
	Path   string
	Filter wordlist.Filter
}

func (f *File) Words(ctx context.Context) ([]string, error) {
	paths, err := f.files()
	if err != nil {
		return nil, err
	}

	var words []string
	for _, path := range paths {
		w, err := wordlist.Load(ctx, path, f.Filter)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", path, err)
		}
		words = append(words, w...)
	}
	return words, nil
}

func (f *File) files() ([]string, error) {
	paths, err := doublestar.FilepathGlob(f.Path)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", f.Path, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("file %s: no word files match", f.Path)
	}
	slices.Sort(paths)
	return paths, nil
}

// Watch calls reload once matching files have been quiet for the given
// duration after a change. Only the pattern's base directory and the
// directories of files matching at start are watched. Watch blocks until ctx
// is done.
func (f *File) Watch(ctx context.Context, quiet time.Duration, reload func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file %s: watcher: %w", f.Path, err)
	}
	defer w.Close()

	for _, dir := range f.watchDirs() {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("file %s: watching %s: %w", f.Path, dir, err)
		}
	}

	pending := time.NewTimer(quiet)
	pending.Stop()
	defer pending.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if match, _ := doublestar.PathMatch(f.Path, ev.Name); !match {
				continue
			}
			pending.Reset(quiet)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file %s: watcher: %w", f.Path, err)
		case <-pending.C:
			reload()
		}
	}
}

func (f *File) watchDirs() []string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(f.Path))
	dirs := []string{filepath.FromSlash(base)}
	if paths, err := doublestar.FilepathGlob(f.Path); err == nil {
		for _, p := range paths {
			dirs = append(dirs, filepath.Dir(p))
		}
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}
