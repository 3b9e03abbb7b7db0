// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package analysis resolves the analysis requests and drives the engine over the datasets
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	"github.com/swaralipi04/openoa-Assignment/engine"
	"github.com/swaralipi04/openoa-Assignment/plant"
)

//Following constants have the supported analysis method names
const (
	//MethodAEP is the monte carlo annual energy production analysis
	MethodAEP = "aep"
	//MethodElectricalLosses is the electrical losses analysis
	MethodElectricalLosses = "electrical-losses"
	//MethodTurbineEnergy is the long term turbine gross energy analysis
	MethodTurbineEnergy = "turbine-energy"
	//MethodWakeLosses is the wake losses analysis
	MethodWakeLosses = "wake-losses"
)

//Engine is the analysis engine the dispatcher drives
type Engine interface {
	//Version returns the version of the engine
	Version() string
	//MonteCarloAEP estimates the long term annual energy production of the plant
	MonteCarloAEP(ctx context.Context, in engine.AEPInput, cfg engine.AEPConfig) (*engine.AEPResult, error)
	//ElectricalLosses estimates the energy lost between the turbines and the meter
	ElectricalLosses(ctx context.Context, in engine.ElectricalInput, cfg engine.ElectricalConfig) (*engine.ElectricalResult, error)
	//TurbineEnergy estimates the long term gross energy production per turbine
	TurbineEnergy(ctx context.Context, in engine.TurbineInput, cfg engine.TurbineConfig) (*engine.TurbineResult, error)
	//WakeLosses estimates the energy lost to the wakes between the turbines
	WakeLosses(ctx context.Context, in engine.WakeInput, cfg engine.WakeConfig) (*engine.WakeResult, error)
}

//method describes one entry of the analysis registry
type method struct {
	//label is the analysis label reported in the results
	label string
	//requires has the data categories the method needs
	requires []plant.Category
	//run decodes the parameters and drives the engine over the dataset
	run func(ctx context.Context, eng Engine, d *plant.Dataset, body []byte) (*Result, error)
}

//methods is the closed registry of the supported analyses
var methods = map[string]*method{
	MethodAEP: {
		label:    "MonteCarloAEP",
		requires: []plant.Category{plant.CategoryScada, plant.CategoryMeter, plant.CategoryReanalysis},
		run:      runAEP,
	},
	MethodElectricalLosses: {
		label:    "ElectricalLosses",
		requires: []plant.Category{plant.CategoryScada, plant.CategoryMeter},
		run:      runElectrical,
	},
	MethodTurbineEnergy: {
		label:    "TurbineLongTermGrossEnergy",
		requires: []plant.Category{plant.CategoryScada, plant.CategoryAsset, plant.CategoryReanalysis},
		run:      runTurbine,
	},
	MethodWakeLosses: {
		label:    "WakeLosses",
		requires: []plant.Category{plant.CategoryScada, plant.CategoryAsset},
		run:      runWake,
	},
}

//Methods returns the supported analysis method names sorted
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//Requires returns the data categories an analysis method needs
func Requires(methodName string) ([]plant.Category, bool) {
	m, ok := methods[methodName]
	if !ok {
		return nil, false
	}
	return append([]plant.Category(nil), m.requires...), true
}

//Dispatch resolves the requested method, loads the dataset and runs the analysis.
//The engine is only reached once the method, the dataset, the dataset contents
//and the parameters have all checked out
func Dispatch(ctx context.Context, eng Engine, store *plant.Store, methodName string, body []byte) (*Result, error) {
	/*
	 * We will resolve the method in the registry
	 * Then pull the dataset id out of the body and load the dataset
	 * Then verify the dataset carries the categories the method needs
	 * Finally we will hand over to the method which validates the parameters
	 */
	m, ok := methods[methodName]
	if !ok {
		return nil, UnknownMethodError{Method: methodName}
	}
	id, err := peekDatasetID(body)
	if err != nil {
		return nil, err
	}
	d, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	if missing := d.MissingCategories(m.requires); len(missing) > 0 {
		return nil, MissingCategoryError{Method: methodName, Missing: missing}
	}
	return m.run(ctx, eng, d, body)
}

//peekDatasetID pulls the dataset id out of the request body ahead of the strict decode
func peekDatasetID(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", InvalidParameterError{Param: "dataset_id", Reason: "required"}
	}
	var probe struct {
		DatasetID *string `json:"dataset_id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return "", InvalidParameterError{Param: "body", Reason: "malformed json"}
	}
	if probe.DatasetID == nil || *probe.DatasetID == "" {
		return "", InvalidParameterError{Param: "dataset_id", Reason: "required"}
	}
	return *probe.DatasetID, nil
}

//runAEP runs the monte carlo annual energy production analysis
func runAEP(ctx context.Context, eng Engine, d *plant.Dataset, body []byte) (*Result, error) {
	var p aepParams
	if err := decodeParams(body, &p); err != nil {
		return nil, err
	}
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	meter, _ := d.Table(plant.CategoryMeter)
	curtail, _ := d.Table(plant.CategoryCurtail)
	rean, _ := d.Table(plant.CategoryReanalysis)
	out, err := eng.MonteCarloAEP(ctx, engine.AEPInput{Meter: meter, Curtail: curtail, Reanalysis: rean}, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{
		DatasetID: d.ID(),
		Analysis:  methods[MethodAEP].label,
		NumSim:    cfg.NumSim,
		Scalars: map[string]float64{
			"aep_gwh":             out.AEPGWh,
			"aep_uncertainty_pct": out.UncertaintyPct,
			"avail_pct":           out.AvailPct,
			"curtail_pct":         out.CurtailPct,
		},
		Strings:           map[string]string{"time_resolution": string(cfg.Resolution)},
		DistributionField: "aep_distribution",
		Distribution:      out.Distribution,
		PlotBase64:        encodePlot(out.Plot),
	}, nil
}

//runElectrical runs the electrical losses analysis
func runElectrical(ctx context.Context, eng Engine, d *plant.Dataset, body []byte) (*Result, error) {
	var p electricalParams
	if err := decodeParams(body, &p); err != nil {
		return nil, err
	}
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	scada, _ := d.Table(plant.CategoryScada)
	meter, _ := d.Table(plant.CategoryMeter)
	out, err := eng.ElectricalLosses(ctx, engine.ElectricalInput{Scada: scada, Meter: meter}, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{
		DatasetID: d.ID(),
		Analysis:  methods[MethodElectricalLosses].label,
		NumSim:    cfg.NumSim,
		Scalars: map[string]float64{
			"mean_losses_pct":   out.MeanLossesPct,
			"median_losses_pct": out.MedianLossesPct,
			"std_losses_pct":    out.StdLossesPct,
		},
		DistributionField: "losses_distribution",
		Distribution:      out.Distribution,
		PlotBase64:        encodePlot(out.Plot),
	}, nil
}

//runTurbine runs the long term turbine gross energy analysis
func runTurbine(ctx context.Context, eng Engine, d *plant.Dataset, body []byte) (*Result, error) {
	var p turbineParams
	if err := decodeParams(body, &p); err != nil {
		return nil, err
	}
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	scada, _ := d.Table(plant.CategoryScada)
	asset, _ := d.Table(plant.CategoryAsset)
	rean, _ := d.Table(plant.CategoryReanalysis)
	out, err := eng.TurbineEnergy(ctx, engine.TurbineInput{Scada: scada, Asset: asset, Reanalysis: rean}, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{
		DatasetID: d.ID(),
		Analysis:  methods[MethodTurbineEnergy].label,
		NumSim:    cfg.NumSim,
		Scalars: map[string]float64{
			"tie_gwh":             out.TotalGWh,
			"tie_uncertainty_pct": out.UncertaintyPct,
		},
		TurbinesField: "turbine_results",
		Turbines:      out.Turbines,
		PlotBase64:    encodePlot(out.Plot),
	}, nil
}

//runWake runs the wake losses analysis
func runWake(ctx context.Context, eng Engine, d *plant.Dataset, body []byte) (*Result, error) {
	var p wakeParams
	if err := decodeParams(body, &p); err != nil {
		return nil, err
	}
	cfg, err := p.config()
	if err != nil {
		return nil, err
	}
	scada, _ := d.Table(plant.CategoryScada)
	asset, _ := d.Table(plant.CategoryAsset)
	out, err := eng.WakeLosses(ctx, engine.WakeInput{Scada: scada, Asset: asset}, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{
		DatasetID: d.ID(),
		Analysis:  methods[MethodWakeLosses].label,
		NumSim:    cfg.NumSim,
		Scalars: map[string]float64{
			"mean_wake_losses_pct": out.MeanLossesPct,
			"std_wake_losses_pct":  out.StdLossesPct,
		},
		TurbinesField: "turbine_wake_losses",
		Turbines:      out.Turbines,
		PlotBase64:    encodePlot(out.Plot),
	}, nil
}
