package rtos

import (
	"context"
	"math/bits"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

type State int32

const (
	StateReady State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "run"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// TaskStatus is one row of a system-state snapshot.
type TaskStatus struct {
	Name          string
	RunTime       uint64
	HighWaterMark int
	State         State
}

// OverflowHandler is invoked when a task's stack watermark reaches zero.
// The handler must never return.
type OverflowHandler func(task *Handle)

// Sim keeps the task registry and run-time accounting the external
// scheduler would otherwise provide. Dispatch itself stays with the Go
// runtime; priorities are recorded, not enforced.
type Sim struct {
	mu      sync.Mutex
	tasks   []*Handle
	handler OverflowHandler
}

func NewSim() *Sim {
	return &Sim{}
}

func (s *Sim) NewTask(name string, stackBudget, priority int) *Handle {
	h := &Handle{
		sim:      s,
		name:     name,
		budget:   stackBudget,
		priority: priority,
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, h)
	s.mu.Unlock()
	return h
}

func (s *Sim) OnOverflow(handler OverflowHandler) {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()
}

func (s *Sim) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Sim) FreeHeap() int {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int(m.HeapSys - m.HeapAlloc)
}

// SystemState fills dst with one row per registered task, up to
// len(dst), and returns the number of rows written plus the total
// run time across all tasks. Allocation stays with the caller.
func (s *Sim) SystemState(dst []TaskStatus) (int, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total uint64
	for _, h := range s.tasks {
		total += h.runTime.Load()
	}
	n := 0
	for _, h := range s.tasks {
		if n == len(dst) {
			break
		}
		dst[n] = TaskStatus{
			Name:          h.name,
			RunTime:       h.runTime.Load(),
			HighWaterMark: h.HighWaterMark(),
			State:         State(h.state.Load()),
		}
		n++
	}
	return n, total
}

// Monitor polls task watermarks and invokes the overflow handler the
// first time one reaches zero. The handler never returns, so the
// monitor wedges with it and the system stops making progress.
func (s *Sim) Monitor(ctx context.Context, interval time.Duration) func() error {
	return func() error {
		done := ctx.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				s.mu.Lock()
				tasks := slices.Clone(s.tasks)
				handler := s.handler
				s.mu.Unlock()
				if handler == nil {
					continue
				}
				for _, h := range tasks {
					if h.HighWaterMark() <= 0 && h.trip() {
						handler(h)
					}
				}
			}
		}
	}
}

// Handle is one registered task.
type Handle struct {
	sim        *Sim
	name       string
	budget     int
	priority   int
	runTime    atomic.Uint64
	state      atomic.Int32
	overflowed atomic.Bool
}

func (h *Handle) Name() string {
	return h.name
}

func (h *Handle) Priority() int {
	return h.priority
}

// Tally charges n work units to the task's run-time counter. Go exposes
// no per-goroutine CPU time, so tasks account cooperatively, once per
// processed item.
func (h *Handle) Tally(n int) {
	h.runTime.Add(uint64(n))
}

func (h *Handle) RunTime() uint64 {
	return h.runTime.Load()
}

// HighWaterMark models the scheduler's minimum-free-stack statistic:
// the budget less a fixed base frame and a cost growing with the work
// done so far. Monotonically non-increasing, floored at zero.
func (h *Handle) HighWaterMark() int {
	hwm := h.budget - stackBase - bits.Len64(h.runTime.Load())
	if hwm < 0 {
		hwm = 0
	}
	return hwm
}

const stackBase = 24

func (h *Handle) State() State {
	return State(h.state.Load())
}

// Run wraps a runner so the handle tracks its lifecycle state.
func (h *Handle) Run(fn func() error) func() error {
	return func() error {
		h.state.Store(int32(StateRunning))
		defer h.state.Store(int32(StateDone))
		return fn()
	}
}

func (h *Handle) trip() bool {
	return h.overflowed.CompareAndSwap(false, true)
}
