package model

// Ring is a fixed-capacity circular buffer of utilization samples.
// Writes past capacity overwrite the oldest sample.
type Ring struct {
	data   []float64
	cursor int
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{data: make([]float64, capacity)}
}

func (r *Ring) Cap() int { return len(r.data) }

// Push stores a sample at the write cursor and advances it.
func (r *Ring) Push(v float64) {
	r.data[r.cursor] = v
	r.cursor = (r.cursor + 1) % len(r.data)
}

// Last returns the most recently pushed sample.
func (r *Ring) Last() float64 {
	return r.data[(r.cursor-1+len(r.data))%len(r.data)]
}

// Ordered copies the buffer out in chronological order, oldest first.
func (r *Ring) Ordered() []float64 {
	out := make([]float64, len(r.data))
	for i := range r.data {
		out[i] = r.data[(r.cursor+i)%len(r.data)]
	}
	return out
}

// Tail returns the most recent n samples in chronological order.
func (r *Ring) Tail(n int) []float64 {
	if n > len(r.data) {
		n = len(r.data)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = r.data[(r.cursor-n+i+len(r.data))%len(r.data)]
	}
	return out
}

// RingSet is a group of rings that advance under one shared write cursor,
// keeping all series time-aligned. One tick writes one sample to every ring.
type RingSet struct {
	data     [][]float64
	capacity int
	cursor   int
}

func NewRingSet(series, capacity int) *RingSet {
	if capacity < 1 {
		capacity = 1
	}
	data := make([][]float64, series)
	for i := range data {
		data[i] = make([]float64, capacity)
	}
	return &RingSet{data: data, capacity: capacity}
}

func (rs *RingSet) Series() int { return len(rs.data) }
func (rs *RingSet) Cap() int    { return rs.capacity }

// PushAll writes one sample per series and advances the shared cursor once.
// Missing values (len(vals) < series) are recorded as 0 for that series.
func (rs *RingSet) PushAll(vals []float64) {
	for i := range rs.data {
		v := 0.0
		if i < len(vals) {
			v = vals[i]
		}
		rs.data[i][rs.cursor] = v
	}
	rs.cursor = (rs.cursor + 1) % rs.capacity
}

// Tail returns the most recent n samples of one series, oldest first.
func (rs *RingSet) Tail(series, n int) []float64 {
	if series < 0 || series >= len(rs.data) {
		return nil
	}
	if n > rs.capacity {
		n = rs.capacity
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = rs.data[series][(rs.cursor-n+i+rs.capacity)%rs.capacity]
	}
	return out
}

// Last returns the most recent sample of one series.
func (rs *RingSet) Last(series int) float64 {
	if series < 0 || series >= len(rs.data) {
		return 0
	}
	return rs.data[series][(rs.cursor-1+rs.capacity)%rs.capacity]
}
