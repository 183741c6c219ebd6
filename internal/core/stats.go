package core

import "time"

// FrameStats accumulates timing for a session of rendered frames.
type FrameStats struct {
	Frames   int           // Frames rendered
	Render   time.Duration // Time spent inside the renderer
	Distance float64       // Grid units walked by the player
	Started  time.Time
}

// Record adds one rendered frame that took d.
func (s *FrameStats) Record(d time.Duration) {
	if s.Started.IsZero() {
		s.Started = time.Now()
	}
	s.Frames++
	s.Render += d
}

// AvgFrame returns the mean render time per frame.
func (s FrameStats) AvgFrame() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Render / time.Duration(s.Frames)
}

// FPS returns the frame rate the renderer alone could sustain.
func (s FrameStats) FPS() float64 {
	avg := s.AvgFrame()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
