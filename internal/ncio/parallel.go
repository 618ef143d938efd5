package ncio

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dnora/dnora/pkg/store"
)

// ReadOptions controls how ReadAll reads files and handles errors.
type ReadOptions struct {
	// Parallel enables concurrent reading.
	Parallel bool

	// Workers is the number of reader goroutines. If 0, defaults to
	// runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors continues past files that fail to read. When false, the
	// first error stops reading and is returned alone.
	SkipErrors bool

	// Progress is called after each file with the number of files processed
	// so far.
	Progress func(read, total int)

	// Log receives one entry per failed file. Nil disables logging.
	Log logrus.FieldLogger
}

// DefaultReadOptions returns read options with sensible defaults.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// ReadAll reads the stores in paths, keeping their order. Files that fail are
// left out of the result and reported in the error slice when
// opts.SkipErrors is set.
//
// Example:
//
//	stores, errs := ncio.ReadAll(paths, ncio.ReadOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Log:        logrus.StandardLogger(),
//	})
func ReadAll(paths []string, opts ReadOptions) ([]*store.Store, []error) {
	if len(paths) == 0 {
		return []*store.Store{}, nil
	}
	if !opts.Parallel {
		return readSerial(paths, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type readResult struct {
		index int
		store *store.Store
		err   error
	}

	jobs := make(chan int, len(paths))
	results := make(chan readResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				s, err := Read(paths[index])
				results <- readResult{index: index, store: s, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	byIndex := make(map[int]*store.Store)
	var errs []error
	read := 0
	for result := range results {
		read++
		if opts.Progress != nil {
			opts.Progress(read, len(paths))
		}
		if result.err != nil {
			err := fmt.Errorf("%s: %w", paths[result.index], result.err)
			logFailure(opts.Log, paths[result.index], result.err)
			if !opts.SkipErrors {
				// Workers drain into the buffered channel and exit.
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		byIndex[result.index] = result.store
	}

	stores := make([]*store.Store, 0, len(byIndex))
	for i := range paths {
		if s, ok := byIndex[i]; ok {
			stores = append(stores, s)
		}
	}
	return stores, errs
}

func readSerial(paths []string, opts ReadOptions) ([]*store.Store, []error) {
	stores := make([]*store.Store, 0, len(paths))
	var errs []error
	for i, path := range paths {
		s, err := Read(path)
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
		if err != nil {
			logFailure(opts.Log, path, err)
			err = fmt.Errorf("%s: %w", path, err)
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		stores = append(stores, s)
	}
	return stores, errs
}

func logFailure(log logrus.FieldLogger, path string, err error) {
	if log == nil {
		return
	}
	log.WithError(err).WithField("file", path).Warn("reading store failed")
}
