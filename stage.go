package stratum

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Stage is an ordered batch of systems (spec.md §4.6). Systems whose access
// sets don't conflict run concurrently; a conflicting pair always runs in
// the order they were added to the stage. Every system's deferred commands
// are drained into the world only after the whole stage finishes running,
// in declaration order — so a later system never observes an earlier
// system's spawns/despawns mid-stage, matching the "apply after the whole
// stage" policy spec.md §7 recommends over applying per system.
type Stage struct {
	systems []*ErasedSystem
}

// NewStage returns an empty stage.
func NewStage() *Stage { return &Stage{} }

// Add appends sys to the stage, returning the stage for chaining.
func (s *Stage) Add(sys *ErasedSystem) *Stage {
	s.systems = append(s.systems, sys)
	return s
}

// run schedules systems into conflict-free levels — each system lands in
// the lowest level after every earlier system it conflicts with — then
// executes one level at a time with golang.org/x/sync/errgroup, locking the
// world for the duration so a system can't accidentally mutate it directly
// instead of going through Commands (spec.md §4.6/§4.7).
func (s *Stage) run(w *World) error {
	n := len(s.systems)
	if n == 0 {
		return nil
	}

	levelOf := make([]int, n)
	var levels [][]int
	for i := 0; i < n; i++ {
		lvl := 0
		for j := 0; j < i; j++ {
			if s.systems[j].access.conflicts(s.systems[i].access) && levelOf[j]+1 > lvl {
				lvl = levelOf[j] + 1
			}
		}
		levelOf[i] = lvl
		for len(levels) <= lvl {
			levels = append(levels, nil)
		}
		levels[lvl] = append(levels[lvl], i)
	}

	buffers := make([]*CommandBuffer, n)
	w.lock()
	for _, idxs := range levels {
		g, _ := errgroup.WithContext(context.Background())
		for _, idx := range idxs {
			idx := idx
			buf := NewCommandBuffer()
			buffers[idx] = buf
			sys := s.systems[idx]
			g.Go(func() error {
				sys.run(w, buf)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			w.unlock()
			return err
		}
	}
	w.unlock()

	for _, buf := range buffers {
		if err := w.ApplyCommands(buf); err != nil {
			return err
		}
	}
	return nil
}
