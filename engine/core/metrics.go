package core

import "github.com/spaghettifunk/affine/engine/containers"

const AVG_COUNT = 30

// FrameMetrics keeps a moving average of frame times over the last
// AVG_COUNT frames and a frames-per-second counter.
type FrameMetrics struct {
	times              *containers.RingQueue[float64]
	msSum              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
	total              uint64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{
		times: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records one frame that took frameElapsedTime seconds.
func (m *FrameMetrics) Update(frameElapsedTime float64) {
	frameMS := frameElapsedTime * 1000.0

	if m.times.IsFull() {
		old, _ := m.times.Dequeue()
		m.msSum -= old
	}
	_ = m.times.Enqueue(frameMS)
	m.msSum += frameMS

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	// Count all frames.
	m.frames++
	m.total++
}

// FPS returns the frames counted during the last full second.
func (m *FrameMetrics) FPS() float64 {
	return m.fps
}

// FrameTime returns the average frame time in milliseconds over the
// recorded window.
func (m *FrameMetrics) FrameTime() float64 {
	if m.times.IsEmpty() {
		return 0
	}
	return m.msSum / float64(m.times.Len())
}

// Frames returns the total number of recorded frames.
func (m *FrameMetrics) Frames() uint64 {
	return m.total
}
