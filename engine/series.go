// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

//completenessThreshold is the share of the expected samples a period must have to count
const completenessThreshold = 0.9

//periodStats accumulates the samples falling into one aggregation period
type periodStats struct {
	sum   float64
	count int
}

//mean returns the average of the samples in the period
func (p *periodStats) mean() float64 {
	if p.count == 0 {
		return math.NaN()
	}
	return p.sum / float64(p.count)
}

//aggregate buckets a time series at the given resolution skipping the NaN samples
func aggregate(times []time.Time, values []float64, res Resolution) map[time.Time]*periodStats {
	out := map[time.Time]*periodStats{}
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		v := values[i]
		if math.IsNaN(v) {
			continue
		}
		p := res.truncate(times[i])
		s := out[p]
		if s == nil {
			s = &periodStats{}
			out[p] = s
		}
		s.sum += v
		s.count++
	}
	return out
}

//sortedPeriods returns the period keys of an aggregation in time order
func sortedPeriods(agg map[time.Time]*periodStats) []time.Time {
	periods := make([]time.Time, 0, len(agg))
	for p := range agg {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(a, b int) bool {
		return periods[a].Before(periods[b])
	})
	return periods
}

//completeEnough returns true when the sample count covers enough of the expected one
func completeEnough(count int, expected float64) bool {
	if expected <= 0 {
		return false
	}
	return float64(count) >= completenessThreshold*expected
}

//sampleInterval estimates the sampling interval of a sorted time series.
//It takes the median of the positive gaps so that the repeated timestamps of
//the per turbine rows don't drag the estimate down to zero
func sampleInterval(times []time.Time) time.Duration {
	var gaps []time.Duration
	for i := 1; i < len(times); i++ {
		if g := times[i].Sub(times[i-1]); g > 0 {
			gaps = append(gaps, g)
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	sort.Slice(gaps, func(a, b int) bool {
		return gaps[a] < gaps[b]
	})
	return gaps[len(gaps)/2]
}

//circularMeanDeg returns the circular mean of the angles in degrees within [0, 360)
func circularMeanDeg(deg []float64) float64 {
	var s, c float64
	n := 0
	for _, d := range deg {
		if math.IsNaN(d) {
			continue
		}
		r := d * math.Pi / 180
		s += math.Sin(r)
		c += math.Cos(r)
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	m := math.Atan2(s, c) * 180 / math.Pi
	if m < 0 {
		m += 360
	}
	return m
}

//meanStd returns the mean and the standard deviation of the samples
func meanStd(xs []float64) (float64, float64) {
	m := stat.Mean(xs, nil)
	if len(xs) < 2 {
		return m, 0
	}
	return m, stat.StdDev(xs, nil)
}

//uncertaintyPct expresses the spread as a percentage of the central estimate
func uncertaintyPct(mean, std float64) float64 {
	if mean == 0 {
		return 0
	}
	return math.Abs(std / mean * 100)
}

//daysIn returns the number of days in the month of the given time
func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

//argsort returns the indices ordering the values ascending
func argsort(xs []float64) []int {
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return xs[order[a]] < xs[order[b]]
	})
	return order
}
