package split_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pfrederiksen/marathon-results/internal/split"
	"github.com/stretchr/testify/assert"
)

// jitter is a deterministic zero-mean perturbation with standard deviation
// sigma. The golden-ratio stride spreads values evenly, so every scan
// window sees close to the nominal variance and the tests stay stable.
func jitter(i int, sigma float64) float64 {
	u := math.Mod(float64(i)*0.6180339887498949, 1)
	return (2*u - 1) * sigma * math.Sqrt(3)
}

// twoPopulations builds bibs 1..n whose finish times switch distribution at
// the given 0-based position.
func twoPopulations(n, boundary int, narrowMean, narrowSigma, wideMean, wideSigma float64) []split.Sample {
	samples := make([]split.Sample, n)
	for i := 0; i < n; i++ {
		minutes := narrowMean + jitter(i, narrowSigma)
		if i >= boundary {
			minutes = wideMean + jitter(i, wideSigma)
		}
		samples[i] = split.Sample{Bib: i + 1, Minutes: minutes}
	}
	return samples
}

// TestFind_SeededRace mirrors the motivating case: a tight qualified field
// ahead of a slower, noisier charity field. The boundary sits at bib 1001.
func TestFind_SeededRace(t *testing.T) {
	samples := twoPopulations(2000, 1000, 180, 5, 240, 40)

	bib, err := split.Find(samples, split.DefaultOptions())
	assert.NoError(t, err, "well-formed input should not error")
	assert.GreaterOrEqual(t, bib, 970, "boundary bib too low")
	assert.LessOrEqual(t, bib, 1030, "boundary bib too high")
}

// TestFind_VarianceChangeOnly uses identical means so only the variance
// carries the boundary signal, placed away from every coarse gridpoint.
func TestFind_VarianceChangeOnly(t *testing.T) {
	samples := twoPopulations(4000, 2137, 210, 5, 210, 40)

	pos, err := split.FindPosition(samples, split.DefaultOptions())
	assert.NoError(t, err)
	assert.InDelta(t, 2137, pos, 30, "position should land within one fine window of the boundary")
}

// TestFind_UniformVariance checks that a single population yields some
// interior position without error.
func TestFind_UniformVariance(t *testing.T) {
	samples := twoPopulations(3000, 3000, 200, 10, 0, 0)

	pos, err := split.FindPosition(samples, split.DefaultOptions())
	assert.NoError(t, err, "uniform variance is not an error")
	assert.Greater(t, pos, 0, "result must be strictly inside the interior")
	assert.Less(t, pos, 2999, "result must be strictly inside the interior")
}

// TestFind_Deterministic runs the finder twice on one input and on a
// shuffled copy; all three runs must agree.
func TestFind_Deterministic(t *testing.T) {
	samples := twoPopulations(2000, 1000, 180, 5, 240, 40)

	first, err := split.Find(samples, split.DefaultOptions())
	assert.NoError(t, err)
	second, err := split.Find(samples, split.DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, first, second, "same input must give the same boundary")

	shuffled := make([]split.Sample, len(samples))
	copy(shuffled, samples)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	fromShuffled, err := split.Find(shuffled, split.DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, first, fromShuffled, "input order must not matter")
}

// TestFind_BibGaps verifies that sparse bib numbering is re-indexed densely
// rather than stretching the scan grid.
func TestFind_BibGaps(t *testing.T) {
	samples := twoPopulations(2500, 1200, 190, 5, 250, 35)
	for i := range samples {
		samples[i].Bib = 11 + 3*i
	}

	pos, err := split.FindPosition(samples, split.DefaultOptions())
	assert.NoError(t, err)
	assert.InDelta(t, 1200, pos, 30)

	bib, err := split.Find(samples, split.DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, 11+3*pos, bib, "Find must report the bib at the found position")
}

// TestFind_MinimumSize exercises the smallest accepted input and the first
// rejected size below it.
func TestFind_MinimumSize(t *testing.T) {
	opts := split.DefaultOptions()
	minimum := 2*opts.CoarseStep + 1

	ok := twoPopulations(minimum, minimum/2, 200, 5, 260, 30)
	_, err := split.Find(ok, opts)
	assert.NoError(t, err, "minimum-size input must scan cleanly")

	short := twoPopulations(minimum-1, minimum/2, 200, 5, 260, 30)
	_, err = split.Find(short, opts)
	assert.ErrorIs(t, err, split.ErrInsufficientData)

	_, err = split.Find(nil, opts)
	assert.ErrorIs(t, err, split.ErrInsufficientData, "empty input")
}

// TestFind_InputValidation covers duplicate bibs and non-finite times.
func TestFind_InputValidation(t *testing.T) {
	samples := twoPopulations(1200, 600, 200, 5, 260, 30)
	samples[17].Bib = samples[16].Bib
	_, err := split.Find(samples, split.DefaultOptions())
	assert.ErrorIs(t, err, split.ErrDuplicateBib)

	samples = twoPopulations(1200, 600, 200, 5, 260, 30)
	samples[901].Minutes = math.NaN()
	_, err = split.Find(samples, split.DefaultOptions())
	assert.ErrorIs(t, err, split.ErrNonFiniteTime)

	samples = twoPopulations(1200, 600, 200, 5, 260, 30)
	samples[3].Minutes = math.Inf(1)
	_, err = split.Find(samples, split.DefaultOptions())
	assert.ErrorIs(t, err, split.ErrNonFiniteTime)
}

// TestFind_InvalidOptions rejects zero steps and negative spans.
func TestFind_InvalidOptions(t *testing.T) {
	samples := twoPopulations(1200, 600, 200, 5, 260, 30)

	opts := split.DefaultOptions()
	opts.CoarseStep = 0
	_, err := split.Find(samples, opts)
	assert.ErrorIs(t, err, split.ErrInvalidOptions)

	opts = split.DefaultOptions()
	opts.FineSpan = -1
	_, err = split.Find(samples, opts)
	assert.ErrorIs(t, err, split.ErrInvalidOptions)
}
