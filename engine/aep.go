// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/swaralipi04/openoa-Assignment/plant"
)

//AEPInput has the dataset tables consumed by the aep analysis
type AEPInput struct {
	//Meter is the revenue meter energy table
	Meter *plant.Table
	//Curtail is the curtailment and availability table and can be nil
	Curtail *plant.Table
	//Reanalysis is the long term reference weather table
	Reanalysis *plant.Table
}

//AEPConfig has the parameters of the aep analysis
type AEPConfig struct {
	//NumSim is the number of monte carlo iterations
	NumSim int
	//Resolution is the period length the records are aggregated at
	Resolution Resolution
	//RegModel is the regression model relating the reference wind to the plant energy
	RegModel string
	//RegTemperature includes the reference temperature as a regressor when true
	RegTemperature bool
	//RegWindDirection includes the reference wind direction as a regressor when true
	RegWindDirection bool
	//UncertaintyMeter is the relative uncertainty of the metered energy
	UncertaintyMeter float64
	//UncertaintyLosses is the relative uncertainty of the long term loss estimate
	UncertaintyLosses float64
	//OutlierDetection drops the gross regression outliers before the monte carlo loop when true
	OutlierDetection bool
}

//AEPResult has the outputs of the aep analysis
type AEPResult struct {
	//AEPGWh is the estimated long term annual energy production in GWh
	AEPGWh float64
	//UncertaintyPct is the relative uncertainty of the estimate in percent
	UncertaintyPct float64
	//AvailPct is the availability loss over the period of record in percent
	AvailPct float64
	//CurtailPct is the curtailment loss over the period of record in percent
	CurtailPct float64
	//Distribution has the simulated annual energy samples in GWh
	Distribution []float64
	//Plot is the png render of the distribution and can be nil
	Plot []byte
}

//aepName is the analysis name used in the failure reports
const aepName = "aep"

//MonteCarloAEP estimates the long term annual energy production of the plant.
//It regresses the metered energy on the reference weather, projects the fit over
//the full reference record and samples the uncertainties in a monte carlo loop
func (e *Engine) MonteCarloAEP(ctx context.Context, in AEPInput, cfg AEPConfig) (*AEPResult, error) {
	/*
	 * We will aggregate the metered energy at the analysis resolution
	 * Then aggregate the reference weather over the same periods
	 * Then assemble the regression samples out of the complete periods
	 * Then run the monte carlo loop over perturbed refits
	 * Finally we will summarize the simulated annual energy distribution
	 */
	meterTimes := in.Meter.Times()
	interval := sampleInterval(meterTimes)
	if interval <= 0 {
		return nil, FailureError{Analysis: aepName, Reason: "couldn't infer the meter sampling interval"}
	}
	meterAgg := aggregate(meterTimes, in.Meter.Numbers(plant.ColEnergyKWh), cfg.Resolution)

	features, err := aepFeatures(in.Reanalysis, cfg)
	if err != nil {
		return nil, err
	}

	X, y, err := aepSamples(meterAgg, features, interval, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.OutlierDetection {
		X, y, err = dropOutliers(X, y)
		if err != nil {
			return nil, err
		}
	}

	longTerm := features.rows()
	if len(longTerm) == 0 {
		return nil, FailureError{Analysis: aepName, Reason: "the reanalysis data has no usable periods"}
	}

	rng := e.rng()
	dist := make([]float64, 0, cfg.NumSim)
	perturbed := make([]float64, len(y))
	//the distribution must end up with one sample per requested simulation
	for attempts := 0; len(dist) < cfg.NumSim; attempts++ {
		if attempts >= 2*cfg.NumSim {
			return nil, FailureError{Analysis: aepName, Reason: "the regression fits keep failing"}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		/*
		 * Each iteration perturbs the metered energy within its uncertainty,
		 * bootstraps the regression samples and refits the model. The refit is
		 * projected over the full reference record to reach one annual sample
		 */
		for j := range y {
			perturbed[j] = y[j] * (1 + rng.NormFloat64()*cfg.UncertaintyMeter)
		}
		bx := make([][]float64, len(X))
		by := make([]float64, len(y))
		for j := range bx {
			k := rng.Intn(len(X))
			bx[j] = X[k]
			by[j] = perturbed[k]
		}
		model := newRegressor(cfg.RegModel, rng)
		if err := model.fit(bx, by); err != nil {
			//error while refitting the regression on the bootstrap sample
			e.log.Warn("retrying a simulation after a failed regression fit", err)
			continue
		}
		var total float64
		for _, x := range longTerm {
			p := model.predict(x)
			if p < 0 {
				p = 0
			}
			total += p
		}
		annual := total / float64(len(longTerm)) * cfg.Resolution.periodsPerYear()
		annual *= 1 + rng.NormFloat64()*cfg.UncertaintyLosses
		dist = append(dist, annual/1e6)
	}

	mean, std := meanStd(dist)
	availPct, curtailPct := porLosses(in.Meter, in.Curtail)
	res := &AEPResult{
		AEPGWh:         mean,
		UncertaintyPct: uncertaintyPct(mean, std),
		AvailPct:       availPct,
		CurtailPct:     curtailPct,
		Distribution:   dist,
	}
	plot, err := histogram("Annual Energy Production", "GWh", dist, colorAEPBars, colorAEPMean)
	if err != nil {
		//a failed render only costs the plot, the numbers still stand
		e.log.Warn("couldn't render the aep distribution plot", err)
	} else {
		res.Plot = plot
	}
	return res, nil
}

//aepFeatureSet has the aggregated reference weather regressors keyed by period
type aepFeatureSet struct {
	periods []time.Time
	ws      map[time.Time]*periodStats
	temp    map[time.Time]*periodStats
	sin     map[time.Time]*periodStats
	cos     map[time.Time]*periodStats
}

//aepFeatures aggregates the reference weather regressors the config asks for
func aepFeatures(rean *plant.Table, cfg AEPConfig) (*aepFeatureSet, error) {
	times := rean.Times()
	f := &aepFeatureSet{ws: aggregate(times, rean.Numbers(plant.ColWindSpeedMS), cfg.Resolution)}
	if cfg.RegTemperature {
		temp := rean.Numbers(plant.ColTemperatureK)
		if temp == nil {
			return nil, FailureError{Analysis: aepName, Reason: "the reanalysis data has no temperature column"}
		}
		f.temp = aggregate(times, temp, cfg.Resolution)
	}
	if cfg.RegWindDirection {
		wd := rean.Numbers(plant.ColWindDirDeg)
		if wd == nil {
			return nil, FailureError{Analysis: aepName, Reason: "the reanalysis data has no wind direction column"}
		}
		//the direction goes in as its sine and cosine so that north reads as one point
		sin := make([]float64, len(wd))
		cos := make([]float64, len(wd))
		for i, d := range wd {
			r := d * math.Pi / 180
			sin[i] = math.Sin(r)
			cos[i] = math.Cos(r)
		}
		f.sin = aggregate(times, sin, cfg.Resolution)
		f.cos = aggregate(times, cos, cfg.Resolution)
	}
	f.periods = sortedPeriods(f.ws)
	return f, nil
}

//count returns the number of features per regression sample
func (f *aepFeatureSet) count() int {
	n := 1
	if f.temp != nil {
		n++
	}
	if f.sin != nil {
		n += 2
	}
	return n
}

//at returns the feature row of one period and false when any regressor is missing
func (f *aepFeatureSet) at(period time.Time) ([]float64, bool) {
	ws, ok := f.ws[period]
	if !ok || ws.count == 0 {
		return nil, false
	}
	x := []float64{ws.mean()}
	if f.temp != nil {
		t, ok := f.temp[period]
		if !ok || t.count == 0 {
			return nil, false
		}
		x = append(x, t.mean())
	}
	if f.sin != nil {
		s, oks := f.sin[period]
		c, okc := f.cos[period]
		if !oks || !okc || s.count == 0 || c.count == 0 {
			return nil, false
		}
		x = append(x, s.mean(), c.mean())
	}
	return x, true
}

//rows returns the feature rows of every usable period in time order
func (f *aepFeatureSet) rows() [][]float64 {
	out := make([][]float64, 0, len(f.periods))
	for _, p := range f.periods {
		if x, ok := f.at(p); ok {
			out = append(out, x)
		}
	}
	return out
}

//aepSamples joins the complete meter periods with the reference features
func aepSamples(meterAgg map[time.Time]*periodStats, features *aepFeatureSet, interval time.Duration, cfg AEPConfig) ([][]float64, []float64, error) {
	var X [][]float64
	var y []float64
	for _, period := range sortedPeriods(meterAgg) {
		ms := meterAgg[period]
		if !completeEnough(ms.count, cfg.Resolution.hours(period)/interval.Hours()) {
			continue
		}
		x, ok := features.at(period)
		if !ok {
			continue
		}
		X = append(X, x)
		y = append(y, ms.sum)
	}
	min := features.count() + 2
	if min < 4 {
		min = 4
	}
	if len(y) < min {
		return nil, nil, FailureError{
			Analysis: aepName,
			Reason:   fmt.Sprintf("only %d complete periods to regress on, need at least %d", len(y), min),
		}
	}
	return X, y, nil
}

//dropOutliers removes the samples whose linear fit residual is beyond 2.5 sigma
func dropOutliers(X [][]float64, y []float64) ([][]float64, []float64, error) {
	var lin linRegressor
	if err := lin.fit(X, y); err != nil {
		//error while fitting the screening regression
		return nil, nil, FailureError{Analysis: aepName, Reason: "couldn't fit the outlier screening regression"}
	}
	resid := make([]float64, len(y))
	for i := range y {
		resid[i] = y[i] - lin.predict(X[i])
	}
	_, sigma := meanStd(resid)
	if sigma == 0 {
		return X, y, nil
	}
	var fx [][]float64
	var fy []float64
	for i := range y {
		if math.Abs(resid[i]) <= 2.5*sigma {
			fx = append(fx, X[i])
			fy = append(fy, y[i])
		}
	}
	min := len(X[0]) + 2
	if min < 4 {
		min = 4
	}
	if len(fy) < min {
		return nil, nil, FailureError{
			Analysis: aepName,
			Reason:   fmt.Sprintf("only %d regression samples remain after the outlier removal", len(fy)),
		}
	}
	return fx, fy, nil
}

//porLosses computes the availability and the curtailment losses over the period of record.
//Both read as percentages of the gross energy the plant would have produced
func porLosses(meter, curtail *plant.Table) (availPct, curtailPct float64) {
	if curtail == nil {
		return 0, 0
	}
	net := sumOf(meter.Numbers(plant.ColEnergyKWh))
	curt := sumOf(curtail.Numbers(plant.ColCurtailmentKWh))
	avail := sumOf(curtail.Numbers(plant.ColAvailabilityKWh))
	gross := net + curt + avail
	if gross <= 0 {
		return 0, 0
	}
	return avail / gross * 100, curt / gross * 100
}

//sumOf totals the values skipping the NaN ones
func sumOf(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		sum += x
	}
	return sum
}
