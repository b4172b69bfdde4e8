package metrics

import "github.com/san-kum/rcsaid/internal/sim"

// DefaultWindow is how many samples a RunningAverage keeps unless told
// otherwise.
const DefaultWindow = 1000

// RunningAverage is the mean of the most recent samples, at most capacity of
// them. The oldest sample is evicted first.
type RunningAverage struct {
	buf   []float64
	head  int
	count int
}

func NewRunningAverage(capacity int) *RunningAverage {
	if capacity <= 0 {
		capacity = DefaultWindow
	}
	return &RunningAverage{buf: make([]float64, capacity)}
}

func (r *RunningAverage) Record(v float64) {
	if r.count < len(r.buf) {
		r.count++
	}
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

func (r *RunningAverage) Clear() {
	r.head = 0
	r.count = 0
}

// Average is the arithmetic mean of the window. ok is false for an empty
// window, whose mean is undefined.
func (r *RunningAverage) Average() (avg float64, ok bool) {
	if r.count == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range r.Samples() {
		sum += v
	}
	return sum / float64(r.count), true
}

func (r *RunningAverage) Len() int { return r.count }
func (r *RunningAverage) Cap() int { return len(r.buf) }

// Samples returns the window oldest first.
func (r *RunningAverage) Samples() []float64 {
	out := make([]float64, 0, r.count)
	start := (r.head - r.count + len(r.buf)) % len(r.buf)
	for i := 0; i < r.count; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// DragAverage smooths the per-tick drag coefficient.
type DragAverage struct {
	name string
	avg  *RunningAverage
	last float64
}

func NewDragAverage(window int) *DragAverage {
	return &DragAverage{
		name: "avg_cd",
		avg:  NewRunningAverage(window),
	}
}

func (d *DragAverage) Name() string { return d.name }

func (d *DragAverage) Observe(s sim.Sample) {
	d.last = s.DragCoefficient
	d.avg.Record(s.DragCoefficient)
}

// Value is 0 until the first sample arrives.
func (d *DragAverage) Value() float64 {
	v, _ := d.avg.Average()
	return v
}

func (d *DragAverage) Report(readings map[string]float64) {
	readings["cd"] = d.last
}

func (d *DragAverage) Reset() {
	d.avg.Clear()
	d.last = 0
}
