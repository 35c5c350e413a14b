package calculator

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// 基于任务下标分配的执行器，每个任务互相独立，结果按下标写回
type executor struct {
	workers int
}

type task struct {
	index int
}

func newExecutor(workers int) *executor {
	if workers < 1 {
		workers = 1
	}
	return &executor{workers: workers}
}

// dispatchTask 执行 total 个任务，返回第一个错误
func (e *executor) dispatchTask(total int, f func(index int) error) error {
	start := time.Now()
	dispatchChan := make(chan task, total)
	for i := 0; i < total; i++ {
		dispatchChan <- task{index: i}
	}
	close(dispatchChan)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	workers := e.workers
	if workers > total {
		workers = total
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range dispatchChan {
				if err := f(t.index); err != nil {
					once.Do(func() { firstErr = err })
				}
			}
		}()
	}
	wg.Wait()

	log.WithFields(log.Fields{
		"tasks":   total,
		"workers": workers,
		"elapsed": time.Since(start),
	}).Debug("tasks finished")
	return firstErr
}

// Sweep1D 同一组参数在多个时间下的一维剖面，结果顺序与 times 一致
func Sweep1D(p *Parameters, times []float64, opt Options, workers int) ([]Profile, error) {
	profiles := make([]Profile, len(times))
	err := newExecutor(workers).dispatchTask(len(times), func(i int) error {
		pt := p.Clone()
		vary, _ := pt.Vary(Time)
		pt.Add(Time, times[i], vary)
		profile, err := Diffusion1D(pt, opt)
		if err != nil {
			return fmt.Errorf("time %g s: %w", times[i], err)
		}
		profiles[i] = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
