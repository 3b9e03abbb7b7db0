// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/swaralipi04/openoa-Assignment/plant"
)

//TurbineInput has the dataset tables consumed by the turbine energy analysis
type TurbineInput struct {
	//Scada is the turbine level operational table
	Scada *plant.Table
	//Asset is the turbine metadata table
	Asset *plant.Table
	//Reanalysis is the long term reference weather table
	Reanalysis *plant.Table
}

//TurbineConfig has the parameters of the turbine energy analysis
type TurbineConfig struct {
	//NumSim is the number of monte carlo iterations
	NumSim int
	//UncertaintyScada is the relative uncertainty of the turbine power records
	UncertaintyScada float64
}

//TurbineResult has the outputs of the turbine energy analysis
type TurbineResult struct {
	//TotalGWh is the long term gross energy of the plant in GWh per year
	TotalGWh float64
	//UncertaintyPct is the relative uncertainty of the estimate in percent
	UncertaintyPct float64
	//Turbines has the long term gross energy per turbine in GWh per year
	Turbines map[string]float64
	//Plot is the png render of the per turbine energies and can be nil
	Plot []byte
}

//turbineName is the analysis name used in the failure reports
const turbineName = "turbine-energy"

//Following constants shape the binned power curves
const (
	curveBinWidth    = 1.0
	minCurveBinCount = 3
	minCurvePairs    = 10
)

//TurbineEnergy estimates the long term gross energy production per turbine.
//It bins a power curve per turbine against the hour matched reference wind speed,
//projects each curve over the full reference record and samples the uncertainty
//in a monte carlo loop
func (e *Engine) TurbineEnergy(ctx context.Context, in TurbineInput, cfg TurbineConfig) (*TurbineResult, error) {
	/*
	 * We will match the turbine power records with the reference wind speed by the hour
	 * Then bin a long term power curve per turbine out of the matches
	 * Then run the monte carlo loop over perturbed resampled curves
	 * Finally we will summarize the gross energy per turbine and for the plant
	 */
	turbines := distinctLabels(in.Asset.Labels(plant.ColTurbine))
	if len(turbines) == 0 {
		return nil, FailureError{Analysis: turbineName, Reason: "the asset data names no turbines"}
	}
	ref := referenceSpeeds(in.Reanalysis)
	if len(ref.series) == 0 {
		return nil, FailureError{Analysis: turbineName, Reason: "the reanalysis data has no usable wind speeds"}
	}
	pairs, err := matchPairs(in.Scada, ref.byHour, turbines)
	if err != nil {
		return nil, err
	}

	rng := e.rng()
	perTurbine := map[string]float64{}
	dist := make([]float64, 0, cfg.NumSim)
	sims := make(map[string]float64, len(turbines))
	for i := 0; i < cfg.NumSim; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		/*
		 * Each iteration resamples the matches of every turbine, perturbs the power
		 * within its uncertainty and refits the curve. The refit applied over the
		 * reference record gives one annual gross energy sample per turbine
		 */
		var total float64
		usable := true
		for _, name := range turbines {
			p := pairs[name]
			n := len(p.ws)
			bws := make([]float64, n)
			bpw := make([]float64, n)
			for j := 0; j < n; j++ {
				k := rng.Intn(n)
				bws[j] = p.ws[k]
				bpw[j] = p.power[k] * (1 + rng.NormFloat64()*cfg.UncertaintyScada)
			}
			curve, ok := fitPowerCurve(bws, bpw)
			if !ok {
				usable = false
				break
			}
			var sum float64
			for _, w := range ref.series {
				pw := curve.eval(w)
				if pw < 0 {
					pw = 0
				}
				sum += pw
			}
			annual := sum / float64(len(ref.series)) * hoursPerYear / 1e6
			sims[name] = annual
			total += annual
		}
		if !usable {
			continue
		}
		for name, v := range sims {
			perTurbine[name] += v
		}
		dist = append(dist, total)
	}
	if len(dist) == 0 {
		return nil, FailureError{Analysis: turbineName, Reason: "every simulation was discarded"}
	}
	for name := range perTurbine {
		perTurbine[name] /= float64(len(dist))
	}

	mean, std := meanStd(dist)
	res := &TurbineResult{
		TotalGWh:       mean,
		UncertaintyPct: uncertaintyPct(mean, std),
		Turbines:       perTurbine,
	}
	plot, err := turbineBars("Long Term Gross Energy", "GWh", turbines, perTurbine, colorTurbineBars, colorTurbineBars)
	if err != nil {
		e.log.Warn("couldn't render the turbine energy plot", err)
	} else {
		res.Plot = plot
	}
	return res, nil
}

//referenceRecord has the reference wind speeds and their index by the hour
type referenceRecord struct {
	byHour map[time.Time]float64
	series []float64
}

//referenceSpeeds indexes the usable reanalysis wind speeds by the hour
func referenceSpeeds(rean *plant.Table) *referenceRecord {
	times := rean.Times()
	ws := rean.Numbers(plant.ColWindSpeedMS)
	rec := &referenceRecord{byHour: map[time.Time]float64{}}
	for i, t := range times {
		if i >= len(ws) || math.IsNaN(ws[i]) {
			continue
		}
		rec.byHour[ResolutionHour.truncate(t)] = ws[i]
		rec.series = append(rec.series, ws[i])
	}
	return rec
}

//turbinePairs has the matched power and reference speed samples of one turbine
type turbinePairs struct {
	ws    []float64
	power []float64
}

//matchPairs joins the power records of every turbine with the reference speed of the same hour
func matchPairs(scada *plant.Table, refByHour map[time.Time]float64, turbines []string) (map[string]*turbinePairs, error) {
	times := scada.Times()
	power := scada.Numbers(plant.ColPowerKW)
	labels := scada.Labels(plant.ColTurbine)
	out := map[string]*turbinePairs{}
	for _, name := range turbines {
		out[name] = &turbinePairs{}
	}
	for i, t := range times {
		if i >= len(power) || i >= len(labels) {
			break
		}
		p := out[labels[i]]
		if p == nil || math.IsNaN(power[i]) {
			continue
		}
		ws, ok := refByHour[ResolutionHour.truncate(t)]
		if !ok {
			continue
		}
		p.ws = append(p.ws, ws)
		p.power = append(p.power, power[i])
	}
	for _, name := range turbines {
		if n := len(out[name].ws); n < minCurvePairs {
			return nil, FailureError{
				Analysis: turbineName,
				Reason:   fmt.Sprintf("turbine %s has only %d records matched with the reference wind, need at least %d", name, n, minCurvePairs),
			}
		}
	}
	return out, nil
}

//fitPowerCurve bins the matched samples into speed bins and averages the power in each.
//Bins with too few samples are dropped and at least two bins must survive
func fitPowerCurve(ws, power []float64) (*binSmoother, bool) {
	sums := map[int]float64{}
	counts := map[int]int{}
	for i, w := range ws {
		b := int(w / curveBinWidth)
		if b < 0 {
			b = 0
		}
		sums[b] += power[i]
		counts[b]++
	}
	var idxs []int
	for b, c := range counts {
		if c >= minCurveBinCount {
			idxs = append(idxs, b)
		}
	}
	if len(idxs) < 2 {
		return nil, false
	}
	sort.Ints(idxs)
	curve := &binSmoother{}
	for _, b := range idxs {
		curve.centers = append(curve.centers, (float64(b)+0.5)*curveBinWidth)
		curve.values = append(curve.values, sums[b]/float64(counts[b]))
	}
	return curve, true
}
