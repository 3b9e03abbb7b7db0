// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/swaralipi04/openoa-Assignment/plant"
)

//WakeInput has the dataset tables consumed by the wake losses analysis
type WakeInput struct {
	//Scada is the turbine level operational table
	Scada *plant.Table
	//Asset is the turbine metadata table
	Asset *plant.Table
}

//WakeConfig has the parameters of the wake losses analysis
type WakeConfig struct {
	//NumSim is the number of monte carlo iterations
	NumSim int
	//DirectionColumn is the canonical scada column holding the wind direction
	DirectionColumn string
	//BinWidthDeg is the width of the wind direction bins in degrees
	BinWidthDeg float64
}

//WakeResult has the outputs of the wake losses analysis
type WakeResult struct {
	//MeanLossesPct is the mean of the simulated plant wake losses in percent
	MeanLossesPct float64
	//StdLossesPct is the standard deviation of the simulated plant wake losses in percent
	StdLossesPct float64
	//Turbines has the wake loss per turbine in percent
	Turbines map[string]float64
	//Plot is the png render of the per turbine losses and can be nil
	Plot []byte
}

//wakeName is the analysis name used in the failure reports
const wakeName = "wake-losses"

//wakeJitterDeg is the sigma of the direction jitter applied per monte carlo iteration
const wakeJitterDeg = 2.0

//WakeLosses estimates the energy lost to the wakes between the turbines.
//For every wind direction bin the most upwind third of the layout is taken as
//freestream and the plant production is compared against the freestream level
func (e *Engine) WakeLosses(ctx context.Context, in WakeInput, cfg WakeConfig) (*WakeResult, error) {
	/*
	 * We will project the turbine layout into plant coordinates
	 * Then group the scada rows by timestamp and derive the plant wind direction
	 * Then compare the actual energy against the freestream potential per direction bin
	 * Finally we will run the monte carlo loop jittering the directions and resampling
	 */
	if !in.Scada.HasColumn(cfg.DirectionColumn) {
		return nil, FailureError{
			Analysis: wakeName,
			Reason:   fmt.Sprintf("the scada data has no %s column", cfg.DirectionColumn),
		}
	}
	turbines, xs, ys, err := plantLayout(in.Asset)
	if err != nil {
		return nil, err
	}
	snaps := wakeSnapshots(in.Scada, cfg.DirectionColumn, turbines)
	if len(snaps) == 0 {
		return nil, FailureError{
			Analysis: wakeName,
			Reason:   "no timestamp has every turbine reporting usable power and direction",
		}
	}
	free := freestreamSets(xs, ys, cfg.BinWidthDeg)

	rng := e.rng()
	dist := make([]float64, 0, cfg.NumSim)
	perTurbine := make([]float64, len(turbines))
	accepted := 0
	sample := make([]wakeSnapshot, len(snaps))
	for i := 0; i < cfg.NumSim; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		for j := range sample {
			s := snaps[rng.Intn(len(snaps))]
			s.dir = wrapDeg(s.dir + rng.NormFloat64()*wakeJitterDeg)
			sample[j] = s
		}
		plantLoss, losses, ok := wakeLossesOf(sample, free, cfg.BinWidthDeg)
		if !ok {
			continue
		}
		dist = append(dist, plantLoss)
		for t := range losses {
			perTurbine[t] += losses[t]
		}
		accepted++
	}
	if accepted == 0 {
		return nil, FailureError{Analysis: wakeName, Reason: "every simulation was discarded"}
	}

	mean, std := meanStd(dist)
	byName := make(map[string]float64, len(turbines))
	for t, name := range turbines {
		byName[name] = perTurbine[t] / float64(accepted)
	}
	res := &WakeResult{
		MeanLossesPct: mean,
		StdLossesPct:  std,
		Turbines:      byName,
	}
	plot, err := turbineBars("Wake Losses", "%", turbines, byName, colorWakeBars, colorWakeMean)
	if err != nil {
		e.log.Warn("couldn't render the wake losses plot", err)
	} else {
		res.Plot = plot
	}
	return res, nil
}

//plantLayout projects the turbine positions into meters around the plant centroid
func plantLayout(asset *plant.Table) ([]string, []float64, []float64, error) {
	names := asset.Labels(plant.ColTurbine)
	lats := asset.Numbers(plant.ColLatitude)
	lons := asset.Numbers(plant.ColLongitude)
	var turbines []string
	var plat, plon []float64
	seen := map[string]bool{}
	for i, name := range names {
		if name == "" || seen[name] || i >= len(lats) || i >= len(lons) {
			continue
		}
		if math.IsNaN(lats[i]) || math.IsNaN(lons[i]) {
			continue
		}
		seen[name] = true
		turbines = append(turbines, name)
		plat = append(plat, lats[i])
		plon = append(plon, lons[i])
	}
	if len(turbines) < 2 {
		return nil, nil, nil, FailureError{
			Analysis: wakeName,
			Reason:   fmt.Sprintf("need at least 2 positioned turbines, got %d", len(turbines)),
		}
	}
	var lat0, lon0 float64
	for i := range turbines {
		lat0 += plat[i]
		lon0 += plon[i]
	}
	lat0 /= float64(len(turbines))
	lon0 /= float64(len(turbines))
	xs := make([]float64, len(turbines))
	ys := make([]float64, len(turbines))
	for i := range turbines {
		xs[i] = (plon[i] - lon0) * 111320 * math.Cos(lat0*math.Pi/180)
		ys[i] = (plat[i] - lat0) * 110540
	}
	return turbines, xs, ys, nil
}

//wakeSnapshot is the plant state at one timestamp
type wakeSnapshot struct {
	dir    float64
	powers []float64
}

//wakeSnapshots groups the scada rows by timestamp keeping the fully reported ones.
//A timestamp counts when every turbine produced power and at least two reported a direction
func wakeSnapshots(scada *plant.Table, dirCol string, turbines []string) []wakeSnapshot {
	times := scada.Times()
	power := scada.Numbers(plant.ColPowerKW)
	dirs := scada.Numbers(dirCol)
	labels := scada.Labels(plant.ColTurbine)
	index := make(map[string]int, len(turbines))
	for i, name := range turbines {
		index[name] = i
	}

	var snaps []wakeSnapshot
	for start := 0; start < len(times); {
		end := start + 1
		for end < len(times) && times[end].Equal(times[start]) {
			end++
		}
		powers := make([]float64, len(turbines))
		for i := range powers {
			powers[i] = math.NaN()
		}
		var reported []float64
		for i := start; i < end && i < len(power) && i < len(labels); i++ {
			t, ok := index[labels[i]]
			if !ok {
				continue
			}
			powers[t] = power[i]
			if i < len(dirs) && !math.IsNaN(dirs[i]) {
				reported = append(reported, dirs[i])
			}
		}
		usable := len(reported) >= 2
		for _, p := range powers {
			if math.IsNaN(p) || p <= 0 {
				usable = false
				break
			}
		}
		if usable {
			snaps = append(snaps, wakeSnapshot{dir: circularMeanDeg(reported), powers: powers})
		}
		start = end
	}
	return snaps
}

//freestreamSets picks the most upwind third of the layout for every direction bin
func freestreamSets(xs, ys []float64, binWidth float64) [][]int {
	n := len(xs)
	count := (n + 2) / 3
	bins := int(math.Ceil(360 / binWidth))
	out := make([][]int, bins)
	for b := 0; b < bins; b++ {
		theta := (float64(b) + 0.5) * binWidth * math.Pi / 180
		depth := make([]float64, n)
		for i := 0; i < n; i++ {
			depth[i] = xs[i]*math.Sin(theta) + ys[i]*math.Cos(theta)
		}
		order := argsort(depth)
		set := make([]int, 0, count)
		for k := n - 1; k >= n-count; k-- {
			set = append(set, order[k])
		}
		out[b] = set
	}
	return out
}

//wakeLossesOf compares the produced energy against the freestream potential.
//It returns the plant loss and the per turbine losses in percent
func wakeLossesOf(snaps []wakeSnapshot, free [][]int, binWidth float64) (float64, []float64, bool) {
	n := len(snaps[0].powers)
	actual := make([]float64, n)
	potential := make([]float64, n)
	var actualPlant, potentialPlant float64
	for _, s := range snaps {
		b := int(s.dir/binWidth) % len(free)
		if b < 0 {
			b += len(free)
		}
		var fs float64
		for _, i := range free[b] {
			fs += s.powers[i]
		}
		fs /= float64(len(free[b]))
		for i := 0; i < n; i++ {
			actual[i] += s.powers[i]
			potential[i] += fs
			actualPlant += s.powers[i]
			potentialPlant += fs
		}
	}
	if potentialPlant <= 0 {
		return 0, nil, false
	}
	losses := make([]float64, n)
	for i := 0; i < n; i++ {
		if potential[i] <= 0 {
			return 0, nil, false
		}
		losses[i] = (1 - actual[i]/potential[i]) * 100
	}
	return (1 - actualPlant/potentialPlant) * 100, losses, true
}

//wrapDeg wraps an angle into [0, 360)
func wrapDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
