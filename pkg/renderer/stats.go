package renderer

// RenderStats contains statistics about rendering one frame
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	CapturedPixels int     // Rays that reached the event horizon
	EscapedPixels  int     // Rays that escaped (including exhausted marches)
	TotalSteps     int     // March steps summed over all pixels
	AverageSteps   float64 // Average march steps per pixel
}

// merge folds stats from one tile into the frame totals
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.CapturedPixels += other.CapturedPixels
	s.EscapedPixels += other.EscapedPixels
	s.TotalSteps += other.TotalSteps
}

// finalize computes the derived averages after all tiles are merged
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSteps = float64(s.TotalSteps) / float64(s.TotalPixels)
	}
}
