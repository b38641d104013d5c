package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the aggregate after a run. Radii are Euclidean distances
// from the seed.
type Summary struct {
	RunID       string
	Attachments int
	Walks       int
	Rejected    int
	Encircled   int
	TotalSteps  int

	MeanSteps        float64
	MaxRadius        float64
	MeanRadius       float64
	RadiusOfGyration float64
	// FractalDimension is the slope of log(size) against log(max radius).
	// Zero when fewer than two distinct radii were seen.
	FractalDimension float64
}

// Summarize computes radius statistics and a mass-radius fractal dimension
// estimate from attachment records in attachment order. The seed counts as
// the first member of the aggregate.
func Summarize(records []Record) Summary {
	s := Summary{Attachments: len(records)}
	if len(records) == 0 {
		return s
	}

	radii := make([]float64, len(records))
	squares := make([]float64, len(records))
	steps := make([]float64, len(records))
	var logR, logN []float64
	maxSq := 0
	for i, r := range records {
		radii[i] = math.Sqrt(float64(r.DistSq))
		squares[i] = float64(r.DistSq)
		steps[i] = float64(r.Steps)
		if r.DistSq > maxSq {
			maxSq = r.DistSq
			logR = append(logR, 0.5*math.Log(float64(maxSq)))
			logN = append(logN, math.Log(float64(i+2)))
		}
	}

	s.MeanSteps = stat.Mean(steps, nil)
	s.MaxRadius = math.Sqrt(float64(maxSq))
	s.MeanRadius = stat.Mean(radii, nil)
	// The seed sits at radius 0 and contributes nothing but mass.
	s.RadiusOfGyration = math.Sqrt(stat.Mean(squares, nil) * float64(len(records)) / float64(len(records)+1))
	if len(logR) >= 2 {
		_, s.FractalDimension = stat.LinearRegression(logR, logN, nil, false)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("attachments", s.Attachments),
		slog.Int("walks", s.Walks),
		slog.Int("rejected", s.Rejected),
		slog.Int("encircled", s.Encircled),
		slog.Float64("mean_steps", s.MeanSteps),
		slog.Float64("max_radius", s.MaxRadius),
		slog.Float64("mean_radius", s.MeanRadius),
		slog.Float64("radius_of_gyration", s.RadiusOfGyration),
		slog.Float64("fractal_dimension", s.FractalDimension),
	)
}
