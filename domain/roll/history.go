package roll

// History is a bounded FIFO of the most recent raw-text samples, used solely
// for stuck detection: identical text three times in a row means the game
// stopped updating (lost focus, misaligned region) and the loop is making no
// observable progress.
type History struct {
	capacity int
	items    []string
}

// NewHistory returns a history bounded to capacity entries (default 3).
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 3
	}
	return &History{capacity: capacity}
}

// Push appends text, evicting the oldest entry beyond capacity.
func (h *History) Push(text string) {
	h.items = append(h.items, text)
	if len(h.items) > h.capacity {
		h.items = h.items[1:]
	}
}

// Len returns the number of retained samples.
func (h *History) Len() int { return len(h.items) }

// Stuck reports whether the history is full and every retained sample is
// character-for-character identical. Histories below capacity never signal.
func (h *History) Stuck() bool {
	if len(h.items) < h.capacity {
		return false
	}
	for _, s := range h.items[1:] {
		if s != h.items[0] {
			return false
		}
	}
	return true
}
