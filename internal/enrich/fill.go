package enrich

// splitDistances are the course marks, in km, of the eleven time columns
// from the start line through the finish.
var splitDistances = []float64{0, 5, 10, 15, 20, 21.098, 25, 30, 35, 40, 42.195}

// splitTimes returns the row's time columns in course order.
func (r *Row) splitTimes() []*float64 {
	return []*float64{
		&r.StartTime, &r.Time5K, &r.Time10K, &r.Time15K, &r.Time20K,
		&r.TimeHalf, &r.Time25K, &r.Time30K, &r.Time35K, &r.Time40K,
		&r.OfflTime,
	}
}

// missFlags returns the flags for the nine interior splits, same order.
func (r *Row) missFlags() []*bool {
	return []*bool{
		&r.Miss5K, &r.Miss10K, &r.Miss15K, &r.Miss20K, &r.MissHalf,
		&r.Miss25K, &r.Miss30K, &r.Miss35K, &r.Miss40K,
	}
}

// FillMissingSplits interpolates zero-valued interior splits at constant
// pace between the nearest recorded marks and flags every filled split.
// Interpolation reads the recorded values only, never values filled
// earlier in the same row. A zero split with no later recorded mark stays
// zero but is still flagged.
func FillMissingSplits(rows []Row) {
	for i := range rows {
		fillRow(&rows[i])
	}
}

func fillRow(r *Row) {
	times := r.splitTimes()
	recorded := make([]float64, len(times))
	for i, t := range times {
		recorded[i] = *t
	}
	miss := r.missFlags()
	last := 0
	for j := 1; j < len(recorded)-1; j++ {
		if recorded[j] > 0 {
			last = j
			continue
		}
		if recorded[j] != 0 {
			continue
		}
		*miss[j-1] = true
		next := -1
		for k := j + 1; k < len(recorded); k++ {
			if recorded[k] != 0 {
				next = k
				break
			}
		}
		if next == -1 {
			continue
		}
		pace := (recorded[next] - recorded[last]) / (splitDistances[next] - splitDistances[last])
		*times[j] = recorded[last] + pace*(splitDistances[j]-splitDistances[last])
	}
}
