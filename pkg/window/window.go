// Package window implements the order id admission window used to absorb
// redelivered orders from an at-least-once source with bounded memory.
package window

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleOrDuplicate is returned for ids at or behind the trailing edge of the window.
	ErrStaleOrDuplicate = errors.New("id is stale or duplicate")
	// ErrDuplicate is returned for ids inside the window that were already admitted.
	ErrDuplicate = errors.New("id is duplicate")
)

// Window tracks which ids in (min, max] have been admitted. The bitmap is
// indexed by id modulo cap, so memory stays at cap/8 bytes regardless of the
// id magnitude. The window only ever slides forward.
type Window struct {
	min    int64
	max    int64
	cap    int64
	bitmap *Bitmap
}

// New creates a window covering [min, max) with capacity max-min.
func New(min, max int64) *Window {
	return &Window{
		min:    min,
		max:    max,
		cap:    max - min,
		bitmap: NewBitmap(max - min),
	}
}

// FromRaw rebuilds a window from its persisted state.
func FromRaw(min, max, cap int64, data []byte) *Window {
	bitmap := BitmapFromData(data)
	if need := NewBitmap(cap); bitmap.Len() < need.Len() {
		copy(need.data, bitmap.data)
		bitmap = need
	}
	return &Window{
		min:    min,
		max:    max,
		cap:    cap,
		bitmap: bitmap,
	}
}

// Put admits id. Ids ahead of the window slide it forward; ids at or behind
// min fail with ErrStaleOrDuplicate and ids already marked fail with ErrDuplicate.
func (w *Window) Put(id int64) error {
	switch {
	case id <= w.min:
		return fmt.Errorf("%w: id %d, window [%d-%d]", ErrStaleOrDuplicate, id, w.min, w.max)
	case id > w.max:
		delta := id - w.max
		w.min += delta
		w.max += delta
		w.bitmap.Set(id%w.cap, true)
	case w.bitmap.Get(id % w.cap):
		return fmt.Errorf("%w: id %d", ErrDuplicate, id)
	default:
		w.bitmap.Set(id%w.cap, true)
	}
	return nil
}

// Min returns the trailing edge.
func (w *Window) Min() int64 { return w.min }

// Max returns the leading edge.
func (w *Window) Max() int64 { return w.max }

// Cap returns the window capacity.
func (w *Window) Cap() int64 { return w.cap }

// Raw returns the window state for persistence. The bitmap bytes are copied.
func (w *Window) Raw() (min, max, cap int64, data []byte) {
	return w.min, w.max, w.cap, w.bitmap.Data()
}
