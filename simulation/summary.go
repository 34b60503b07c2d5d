package simulation

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/locomotion/game"
)

// Summary describes a run of physics steps.
type Summary struct {
	Ticks    int
	AirTicks int
	Snaps    int
	Jumps    int

	MeanSpeed      float32
	MedianSpeed    float32
	SpeedDeviation float32
	// SpeedOutliers is the amount of steps whose horizontal speed lies far outside the usual range, which
	// usually points at collisions or snapping gone wrong.
	SpeedOutliers int
}

// Summarize summarizes the records passed.
func Summarize(records []TickRecord) Summary {
	s := Summary{Ticks: len(records)}
	speeds := make([]float32, 0, len(records))
	for _, r := range records {
		if !r.Result.OnGround {
			s.AirTicks++
		}
		if r.Result.Snapped {
			s.Snaps++
		}
		if r.Result.Jumped {
			s.Jumps++
		}
		v := r.Result.Velocity
		speeds = append(speeds, math32.Hypot(v.X(), v.Z()))
	}
	s.MeanSpeed = game.Mean(speeds)
	s.MedianSpeed = game.Median(speeds)
	s.SpeedDeviation = game.StandardDeviation(speeds)
	s.SpeedOutliers = game.Outliers(speeds)
	return s
}
