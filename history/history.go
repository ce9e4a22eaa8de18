// Package history keeps the transcript history: a bounded in-memory ring
// for the overlay and an append-only log file for persistence.
package history

// Entry is one transcription with its display timestamp (HH:MM:SS).
type Entry struct {
	Timestamp string
	Text      string
}

// Ring is a bounded FIFO of the most recent entries. It is not
// goroutine-safe; callers that touch it from more than one goroutine
// must hold their own lock, as Dispatcher does.
type Ring struct {
	max     int
	entries []Entry
}

func NewRing(max int) *Ring {
	if max < 1 {
		max = 1
	}
	return &Ring{max: max}
}

// Add appends an entry, evicting the oldest once capacity is exceeded.
func (r *Ring) Add(e Entry) {
	r.entries = append(r.entries, e)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

// Entries returns the entries oldest-first. The returned slice is a copy.
func (r *Ring) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Ring) Len() int { return len(r.entries) }

func (r *Ring) Cap() int { return r.max }

// Latest returns the most recent entry, if any.
func (r *Ring) Latest() (Entry, bool) {
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

func (r *Ring) Clear() {
	r.entries = r.entries[:0]
}
