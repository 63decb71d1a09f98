package swma

// Window is a sliding-window moving average over a fixed arena. The
// arena is allocated once at the maximum capacity; Resize moves only the
// logical window length, never the backing storage.
type Window struct {
	arena  []int
	size   int
	cursor int
	sum    int
	fill   int
}

func New(size, capacity int) *Window {
	return &Window{
		arena: make([]int, capacity),
		size:  size,
	}
}

// Add evicts the sample under the cursor, stores the new one and returns
// the running average with truncating integer division. Until the window
// has filled, the average covers only the samples seen so far.
func (w *Window) Add(value int) int {
	w.sum -= w.arena[w.cursor]
	w.arena[w.cursor] = value
	w.sum += value
	w.cursor = (w.cursor + 1) % w.size
	if w.fill < w.size {
		w.fill++
	}
	return w.sum / w.fill
}

// Resize sets a new logical window length and clears all accumulated
// history. The average restarts from zero evidence.
func (w *Window) Resize(size int) {
	w.size = size
	w.cursor = 0
	w.sum = 0
	w.fill = 0
	clear(w.arena)
}

func (w *Window) Size() int {
	return w.size
}

func (w *Window) Fill() int {
	return w.fill
}

func (w *Window) Sum() int {
	return w.sum
}

func (w *Window) Capacity() int {
	return len(w.arena)
}
