package ttyframe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/ttyframe/export"
	"github.com/bodgit/ttyframe/frame"
)

// DefaultWorkers is the number of frames rendered concurrently by Export
const DefaultWorkers = 10

type step struct {
	index int
	obs   *frame.Observation
}

func (t *TTYFrame) findSteps(ctx context.Context, name string) (<-chan step, <-chan error, error) {
	out := make(chan step)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- t.db.eachFrame(ctx, name, func(i int, o *frame.Observation) error {
			select {
			case out <- step{index: i, obs: o}:
			case <-ctx.Done():
				return errors.New("export cancelled")
			}
			return nil
		})
	}()
	return out, errc, nil
}

func (t *TTYFrame) writePNGFile(file string, s step) error {
	m, err := t.render(s.obs)
	if err != nil {
		return fmt.Errorf("step %d: %w", s.index, err)
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WritePNG(f, m); err != nil {
		return err
	}

	return f.Close()
}

func (t *TTYFrame) renderWorker(ctx context.Context, dir string, in <-chan step, count *int64, mu *sync.Mutex) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for s := range in {
			file := filepath.Join(dir, fmt.Sprintf("%06d.png", s.index))
			if err := t.writePNGFile(file, s); err != nil {
				errc <- err
				return
			}
			mu.Lock()
			*count++
			mu.Unlock()
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Export renders every step of session name as a numbered PNG file in dir
// using the given number of concurrent workers
func (t *TTYFrame) Export(name, path string, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	steps, errc, err := t.findSteps(ctx, name)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	var (
		count int64
		mu    sync.Mutex
	)
	for i := 0; i < workers; i++ {
		errc, err := t.renderWorker(ctx, dir, steps, &count, &mu)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return err
	}

	if count == 0 {
		return fmt.Errorf("\"%s\": %w", name, errNoSteps)
	}
	t.logger.Printf("Wrote %d frames to \"%s\"\n", count, dir)
	t.logStats()

	return nil
}
