package window

// Bitmap is a fixed size bit set. Bit i is stored in data[i/8] at position i%8,
// which is the layout persisted in order book snapshots.
type Bitmap struct {
	data []byte
}

// NewBitmap creates a Bitmap able to hold length bits.
func NewBitmap(length int64) *Bitmap {
	n := length / 8
	if length%8 != 0 {
		n++
	}
	return &Bitmap{data: make([]byte, n)}
}

// BitmapFromData creates a Bitmap over a copy of data.
func BitmapFromData(data []byte) *Bitmap {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Bitmap{data: buf}
}

// Get reports whether bit i is set.
func (b *Bitmap) Get(i int64) bool {
	return b.data[i/8]&(1<<uint(i%8)) != 0
}

// Set sets or clears bit i.
func (b *Bitmap) Set(i int64, v bool) {
	if v {
		b.data[i/8] |= 1 << uint(i%8)
		return
	}
	b.data[i/8] &^= 1 << uint(i%8)
}

// Len returns the number of bytes backing the bitmap.
func (b *Bitmap) Len() int {
	return len(b.data)
}

// Data returns a copy of the raw bytes.
func (b *Bitmap) Data() []byte {
	buf := make([]byte, len(b.data))
	copy(buf, b.data)
	return buf
}
