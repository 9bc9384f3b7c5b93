// Package observability provides frame-pacing instrumentation for the
// render loop and Prometheus metrics for canvas activity.
package observability

import (
	"time"
)

// Target frame times for common refresh rates
const (
	TargetFrameTime60FPS  = 16667 * time.Microsecond
	TargetFrameTime120FPS = 8333 * time.Microsecond
	TargetFrameTime144FPS = 6944 * time.Microsecond
)

// stutterThresholdMultiplier marks a frame as a stutter when it takes
// more than this many target frame times
const stutterThresholdMultiplier = 2

// frameTimeHistorySize is the number of frame times kept for statistics
const frameTimeHistorySize = 120

// FrameStats is a snapshot of frame timing statistics
type FrameStats struct {
	// LastFrameTime is the most recently recorded frame time
	LastFrameTime time.Duration
	// AvgFrameTime is the mean over the history window
	AvgFrameTime time.Duration
	// MinFrameTime is the fastest frame in the window
	MinFrameTime time.Duration
	// MaxFrameTime is the slowest frame in the window
	MaxFrameTime time.Duration
	// StutterCount is the total number of stutters since creation
	StutterCount uint64
	// FPS is derived from the average frame time
	FPS float64
}

// FrameTimer tracks frame times in a fixed ring buffer, so recording a
// frame never allocates
type FrameTimer struct {
	frameTimes [frameTimeHistorySize]time.Duration
	index      int
	count      int

	frameStart      time.Time
	targetFrameTime time.Duration
	stutterCount    uint64
}

// NewFrameTimer creates a frame timer targeting 60 FPS
func NewFrameTimer() *FrameTimer {
	return NewFrameTimerWithTarget(TargetFrameTime60FPS)
}

// NewFrameTimerWithTarget creates a frame timer with a custom target
// frame time
func NewFrameTimerWithTarget(target time.Duration) *FrameTimer {
	return &FrameTimer{
		frameStart:      time.Now(),
		targetFrameTime: target,
	}
}

// BeginFrame marks the start of a new frame
func (t *FrameTimer) BeginFrame() {
	t.frameStart = time.Now()
}

// EndFrame records the duration since BeginFrame. Returns true if the
// frame was a stutter.
func (t *FrameTimer) EndFrame() bool {
	return t.RecordFrameTime(time.Since(t.frameStart))
}

// RecordFrameTime records an externally measured frame time. Returns
// true if the frame was a stutter.
func (t *FrameTimer) RecordFrameTime(frameTime time.Duration) bool {
	t.frameTimes[t.index] = frameTime
	t.index = (t.index + 1) % frameTimeHistorySize
	if t.count < frameTimeHistorySize {
		t.count++
	}

	isStutter := frameTime > t.targetFrameTime*stutterThresholdMultiplier
	if isStutter {
		t.stutterCount++
	}
	return isStutter
}

// Stats computes current frame statistics over the history window
func (t *FrameTimer) Stats() FrameStats {
	if t.count == 0 {
		return FrameStats{}
	}

	var sum time.Duration
	min := time.Duration(1<<63 - 1)
	max := time.Duration(0)

	for i := 0; i < t.count; i++ {
		ft := t.frameTimes[i]
		sum += ft
		if ft < min {
			min = ft
		}
		if ft > max {
			max = ft
		}
	}

	avg := sum / time.Duration(t.count)

	lastIndex := t.index - 1
	if lastIndex < 0 {
		lastIndex = frameTimeHistorySize - 1
	}

	fps := 0.0
	if avg > 0 {
		fps = float64(time.Second) / float64(avg)
	}

	return FrameStats{
		LastFrameTime: t.frameTimes[lastIndex],
		AvgFrameTime:  avg,
		MinFrameTime:  min,
		MaxFrameTime:  max,
		StutterCount:  t.stutterCount,
		FPS:           fps,
	}
}

// Reset clears the history and stutter count
func (t *FrameTimer) Reset() {
	t.frameTimes = [frameTimeHistorySize]time.Duration{}
	t.index = 0
	t.count = 0
	t.stutterCount = 0
}

// TargetFrameTime returns the current target frame time
func (t *FrameTimer) TargetFrameTime() time.Duration {
	return t.targetFrameTime
}

// SetTargetFrameTime changes the target frame time (e.g. when the
// output switches refresh rate)
func (t *FrameTimer) SetTargetFrameTime(target time.Duration) {
	t.targetFrameTime = target
}
