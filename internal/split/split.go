package split

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Sample pairs a bib number with a finish time in minutes.
type Sample struct {
	Bib     int
	Minutes float64
}

// Options tunes the grid search. Use DefaultOptions as the starting point;
// the zero value fails validation.
type Options struct {
	// CoarseStep is the stage-1 grid spacing across the whole interior.
	CoarseStep int
	// MediumStep and FineStep are the grid spacings of the two
	// refinement stages.
	MediumStep int
	FineStep   int
	// MediumSpan and FineSpan are the half-widths of the re-centered
	// refinement grids. Each span must cover the previous stage's grid
	// resolution or the boundary can fall between candidates and never
	// be rescanned.
	MediumSpan int
	FineSpan   int
}

// DefaultOptions returns the scan geometry used across the pipeline:
// coarse candidates every 500 positions, a ±250 medium rescan in steps of
// 50, and a ±100 fine rescan in steps of 1.
func DefaultOptions() Options {
	return Options{
		CoarseStep: 500,
		MediumStep: 50,
		FineStep:   1,
		MediumSpan: 250,
		FineSpan:   100,
	}
}

// windowFloor keeps scan windows statistically meaningful even at the fine
// stage, where 2*step would leave just two observations per side.
const windowFloor = 20

func window(step int) int {
	if w := 2 * step; w > windowFloor {
		return w
	}
	return windowFloor
}

var (
	// ErrInsufficientData reports an input shorter than one coarse scan
	// window plus a candidate, the minimum stage 1 can work with.
	ErrInsufficientData = errors.New("split: not enough records for the coarse scan")
	// ErrDuplicateBib reports two samples sharing a bib number.
	ErrDuplicateBib = errors.New("split: duplicate bib number")
	// ErrNonFiniteTime reports a NaN or infinite finish time.
	ErrNonFiniteTime = errors.New("split: non-finite finish time")
	// ErrInvalidOptions reports a non-positive step or negative span.
	ErrInvalidOptions = errors.New("split: invalid options")
)

// Find estimates the bib number where the finish-time variance changes most
// sharply and returns it. Samples may arrive in any order; they are sorted
// by bib and re-indexed to dense positions 0..N-1, so gaps between bib
// numbers do not widen the scan.
//
// The search runs in three stages. Stage 1 scores every CoarseStep-th
// interior position; stages 2 and 3 re-center and rescan around the best
// candidate so far with progressively smaller steps and windows. A
// position's score is the population variance of the window after it minus
// the variance of the window before it, with both windows truncated to the
// same length near the ends of the data; windows with fewer than two
// observations score zero. The highest score wins and ties go to the lowest
// position, so the result is deterministic.
//
// The finder is a heuristic: it reports the sharpest variance change on the
// grids examined, not a guaranteed discontinuity.
func Find(samples []Sample, opts Options) (int, error) {
	sorted, times, err := prepare(samples, opts)
	if err != nil {
		return 0, err
	}
	return sorted[scan(times, opts)].Bib, nil
}

// FindPosition is Find returning the dense 0-based position in bib order
// instead of the bib number itself.
func FindPosition(samples []Sample, opts Options) (int, error) {
	_, times, err := prepare(samples, opts)
	if err != nil {
		return 0, err
	}
	return scan(times, opts), nil
}

func prepare(samples []Sample, opts Options) ([]Sample, []float64, error) {
	if opts.CoarseStep <= 0 || opts.MediumStep <= 0 || opts.FineStep <= 0 ||
		opts.MediumSpan < 0 || opts.FineSpan < 0 {
		return nil, nil, ErrInvalidOptions
	}
	if len(samples) < 2*opts.CoarseStep+1 {
		return nil, nil, fmt.Errorf("%w: have %d samples, need at least %d",
			ErrInsufficientData, len(samples), 2*opts.CoarseStep+1)
	}
	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Bib < sorted[j].Bib })

	times := make([]float64, len(sorted))
	for i, s := range sorted {
		if math.IsNaN(s.Minutes) || math.IsInf(s.Minutes, 0) {
			return nil, nil, fmt.Errorf("%w: bib %d", ErrNonFiniteTime, s.Bib)
		}
		if i > 0 && sorted[i-1].Bib == s.Bib {
			return nil, nil, fmt.Errorf("%w: bib %d", ErrDuplicateBib, s.Bib)
		}
		times[i] = s.Minutes
	}
	return sorted, times, nil
}

func scan(times []float64, opts Options) int {
	n := len(times)
	candidates := make([]int, 0, n/opts.CoarseStep)
	for p := opts.CoarseStep; p <= n-1-opts.CoarseStep; p += opts.CoarseStep {
		candidates = append(candidates, p)
	}
	best := maxDelta(times, candidates, window(opts.CoarseStep))
	best = refine(times, best, opts.MediumSpan, opts.MediumStep)
	return refine(times, best, opts.FineSpan, opts.FineStep)
}

// refine rescans the ±span neighborhood of center on a step-spaced grid.
func refine(times []float64, center, span, step int) int {
	candidates := make([]int, 0, 2*span/step+1)
	for p := center - span; p <= center+span; p += step {
		if p < 1 || p > len(times)-1 {
			continue
		}
		candidates = append(candidates, p)
	}
	return maxDelta(times, candidates, window(step))
}

// maxDelta returns the candidate with the greatest variance delta.
// Candidates must be in ascending order; the first maximum wins.
func maxDelta(times []float64, candidates []int, window int) int {
	best := candidates[0]
	bestDelta := math.Inf(-1)
	for _, p := range candidates {
		if d := varianceDelta(times, p, window); d > bestDelta {
			bestDelta = d
			best = p
		}
	}
	return best
}

// varianceDelta scores position p by variance(after window) minus
// variance(before window). Near the ends both windows shrink to the same
// length so a half-covered window cannot masquerade as a variance change.
func varianceDelta(times []float64, p, window int) float64 {
	w := window
	if p < w {
		w = p
	}
	if n := len(times) - p; n < w {
		w = n
	}
	if w < 2 {
		return 0
	}
	return variance(times[p:p+w]) - variance(times[p-w:p])
}

// variance is the population variance, defined as 0 for fewer than two
// observations.
func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / float64(len(xs))
}
