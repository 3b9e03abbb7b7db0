// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"sort"

	"github.com/swaralipi04/openoa-Assignment/plant"
	"gonum.org/v1/gonum/stat"
)

//ElectricalInput has the dataset tables consumed by the electrical losses analysis
type ElectricalInput struct {
	//Scada is the turbine level operational table
	Scada *plant.Table
	//Meter is the revenue meter energy table
	Meter *plant.Table
}

//ElectricalConfig has the parameters of the electrical losses analysis
type ElectricalConfig struct {
	//NumSim is the number of monte carlo iterations
	NumSim int
	//UncertaintyMeter is the relative uncertainty of the metered energy
	UncertaintyMeter float64
	//UncertaintyScada is the relative uncertainty of the turbine power records
	UncertaintyScada float64
}

//ElectricalResult has the outputs of the electrical losses analysis
type ElectricalResult struct {
	//MeanLossesPct is the mean of the simulated losses in percent
	MeanLossesPct float64
	//MedianLossesPct is the median of the simulated losses in percent
	MedianLossesPct float64
	//StdLossesPct is the standard deviation of the simulated losses in percent
	StdLossesPct float64
	//Distribution has the simulated loss samples in percent
	Distribution []float64
	//Plot is the png render of the distribution and can be nil
	Plot []byte
}

//electricalName is the analysis name used in the failure reports
const electricalName = "electrical-losses"

//ElectricalLosses estimates the energy lost between the turbines and the revenue meter.
//It compares the summed turbine energy with the metered energy over the complete
//overlapping months and samples both totals within their uncertainties
func (e *Engine) ElectricalLosses(ctx context.Context, in ElectricalInput, cfg ElectricalConfig) (*ElectricalResult, error) {
	/*
	 * We will total the turbine energy and the metered energy by calendar month
	 * Then keep the months where both the records are complete
	 * Then run the monte carlo loop perturbing both the totals
	 * Finally we will summarize the simulated loss distribution
	 */
	scadaTimes := in.Scada.Times()
	scadaInterval := sampleInterval(scadaTimes)
	if scadaInterval <= 0 {
		return nil, FailureError{Analysis: electricalName, Reason: "couldn't infer the scada sampling interval"}
	}
	meterTimes := in.Meter.Times()
	meterInterval := sampleInterval(meterTimes)
	if meterInterval <= 0 {
		return nil, FailureError{Analysis: electricalName, Reason: "couldn't infer the meter sampling interval"}
	}
	turbines := distinctLabels(in.Scada.Labels(plant.ColTurbine))
	if len(turbines) == 0 {
		return nil, FailureError{Analysis: electricalName, Reason: "the scada data names no turbines"}
	}

	scadaAgg := aggregate(scadaTimes, in.Scada.Numbers(plant.ColPowerKW), ResolutionMonthStart)
	meterAgg := aggregate(meterTimes, in.Meter.Numbers(plant.ColEnergyKWh), ResolutionMonthStart)

	var scadaTotal, meterTotal float64
	months := 0
	for _, month := range sortedPeriods(scadaAgg) {
		ss := scadaAgg[month]
		ms, ok := meterAgg[month]
		if !ok {
			continue
		}
		hours := ResolutionMonthStart.hours(month)
		if !completeEnough(ss.count, hours/scadaInterval.Hours()*float64(len(turbines))) {
			continue
		}
		if !completeEnough(ms.count, hours/meterInterval.Hours()) {
			continue
		}
		scadaTotal += ss.sum * scadaInterval.Hours()
		meterTotal += ms.sum
		months++
	}
	if months == 0 {
		return nil, FailureError{Analysis: electricalName, Reason: "no complete overlapping months between the scada and the meter records"}
	}
	if scadaTotal <= 0 {
		return nil, FailureError{Analysis: electricalName, Reason: "the turbine energy total isn't positive"}
	}

	rng := e.rng()
	dist := make([]float64, 0, cfg.NumSim)
	//the distribution must end up with one sample per requested simulation
	for attempts := 0; len(dist) < cfg.NumSim; attempts++ {
		if attempts >= 2*cfg.NumSim {
			return nil, FailureError{Analysis: electricalName, Reason: "the perturbed turbine energy keeps falling to zero"}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		st := scadaTotal * (1 + rng.NormFloat64()*cfg.UncertaintyScada)
		mt := meterTotal * (1 + rng.NormFloat64()*cfg.UncertaintyMeter)
		if st <= 0 {
			continue
		}
		dist = append(dist, (1-mt/st)*100)
	}

	mean, std := meanStd(dist)
	sorted := append([]float64(nil), dist...)
	sort.Float64s(sorted)
	res := &ElectricalResult{
		MeanLossesPct:   mean,
		MedianLossesPct: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdLossesPct:    std,
		Distribution:    dist,
	}
	plot, err := histogram("Electrical Losses", "%", dist, colorElectricalBars, colorElectricalBars)
	if err != nil {
		e.log.Warn("couldn't render the electrical losses plot", err)
	} else {
		res.Plot = plot
	}
	return res, nil
}

//distinctLabels returns the unique labels preserving their first seen order
func distinctLabels(labels []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range labels {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
