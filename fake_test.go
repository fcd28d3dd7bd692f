package snowgo

import (
	"errors"
	"sync"
)

// fakeDetector records every call so tests can check forwarding.
type fakeDetector struct {
	mu          sync.Mutex
	result      int
	results     []int
	resets      int
	runs        [][]int16
	sensitivity string
	gain        float32
	frontend    bool
	destructed  int
}

func (d *fakeDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resets++
}

func (d *fakeDetector) RunDetection(samples []int16) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.runs = append(d.runs, append([]int16(nil), samples...))
	if len(d.results) > 0 {
		r := d.results[0]
		d.results = d.results[1:]
		return r
	}
	return d.result
}

func (d *fakeDetector) SetSensitivity(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sensitivity = s
}

func (d *fakeDetector) SetAudioGain(g float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gain = g
}

func (d *fakeDetector) ApplyFrontend(apply bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frontend = apply
	return nil
}

func (d *fakeDetector) Destruct() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destructed++
}

// fakeBackend hands out fakeDetectors, or fails while fail is set.
type fakeBackend struct {
	mu        sync.Mutex
	fail      bool
	created   []*fakeDetector
	resources []string
	models    []string
}

var errFakeConstruct = errors.New("fake construct failure")

func (b *fakeBackend) Construct(resource, model string) (Detector, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resources = append(b.resources, resource)
	b.models = append(b.models, model)
	if b.fail {
		return nil, errFakeConstruct
	}
	d := &fakeDetector{}
	b.created = append(b.created, d)
	return d, nil
}

func (b *fakeBackend) last() *fakeDetector {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created[len(b.created)-1]
}

// constant returns n samples of value v.
func constant(n int, v int16) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = v
	}
	return s
}
