// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/swaralipi04/openoa-Assignment/engine"
	"github.com/swaralipi04/openoa-Assignment/plant"
)

//fakeEngine records the calls it receives and replies with canned results
type fakeEngine struct {
	calls   []string
	aepCfg  engine.AEPConfig
	elCfg   engine.ElectricalConfig
	teCfg   engine.TurbineConfig
	wakeCfg engine.WakeConfig
	fail    error
}

//Version implements Engine
func (f *fakeEngine) Version() string {
	return "test"
}

//MonteCarloAEP implements Engine
func (f *fakeEngine) MonteCarloAEP(ctx context.Context, in engine.AEPInput, cfg engine.AEPConfig) (*engine.AEPResult, error) {
	f.calls = append(f.calls, MethodAEP)
	f.aepCfg = cfg
	if f.fail != nil {
		return nil, f.fail
	}
	return &engine.AEPResult{
		AEPGWh:         21.5,
		UncertaintyPct: 4.2,
		AvailPct:       1.1,
		CurtailPct:     0.4,
		Distribution:   []float64{21, 22},
		Plot:           []byte("png"),
	}, nil
}

//ElectricalLosses implements Engine
func (f *fakeEngine) ElectricalLosses(ctx context.Context, in engine.ElectricalInput, cfg engine.ElectricalConfig) (*engine.ElectricalResult, error) {
	f.calls = append(f.calls, MethodElectricalLosses)
	f.elCfg = cfg
	if f.fail != nil {
		return nil, f.fail
	}
	return &engine.ElectricalResult{
		MeanLossesPct:   2.1,
		MedianLossesPct: 2.0,
		StdLossesPct:    0.3,
		Distribution:    []float64{1.9, 2.3},
	}, nil
}

//TurbineEnergy implements Engine
func (f *fakeEngine) TurbineEnergy(ctx context.Context, in engine.TurbineInput, cfg engine.TurbineConfig) (*engine.TurbineResult, error) {
	f.calls = append(f.calls, MethodTurbineEnergy)
	f.teCfg = cfg
	if f.fail != nil {
		return nil, f.fail
	}
	return &engine.TurbineResult{
		TotalGWh:       12.4,
		UncertaintyPct: 3.1,
		Turbines:       map[string]float64{"T1": 12.4},
	}, nil
}

//WakeLosses implements Engine
func (f *fakeEngine) WakeLosses(ctx context.Context, in engine.WakeInput, cfg engine.WakeConfig) (*engine.WakeResult, error) {
	f.calls = append(f.calls, MethodWakeLosses)
	f.wakeCfg = cfg
	if f.fail != nil {
		return nil, f.fail
	}
	return &engine.WakeResult{
		MeanLossesPct: 7.5,
		StdLossesPct:  1.2,
		Turbines:      map[string]float64{"T1": 7.5},
	}, nil
}

//tableFor builds the minimal valid table of a category
func tableFor(t testing.TB, cat plant.Category) *plant.Table {
	t.Helper()
	var header []string
	var rows [][]string
	switch cat {
	case plant.CategoryScada:
		header = []string{"time", "turbine", "power_kw"}
		rows = [][]string{
			{"2014-01-01 00:00:00", "T1", "100"},
			{"2014-01-01 01:00:00", "T1", "110"},
		}
	case plant.CategoryMeter:
		header = []string{"time", "energy_kwh"}
		rows = [][]string{
			{"2014-01-01 00:00:00", "95"},
			{"2014-01-01 01:00:00", "105"},
		}
	case plant.CategoryCurtail:
		header = []string{"time", "curtailment_kwh", "availability_kwh"}
		rows = [][]string{{"2014-01-01 00:00:00", "1", "2"}}
	case plant.CategoryAsset:
		header = []string{"turbine", "latitude", "longitude"}
		rows = [][]string{{"T1", "48.45", "5.58"}}
	case plant.CategoryReanalysis:
		header = []string{"time", "windspeed_ms"}
		rows = [][]string{
			{"2014-01-01 00:00:00", "7.1"},
			{"2014-01-01 01:00:00", "7.4"},
		}
	}
	tab, err := plant.NewTable(cat, header, rows)
	if err != nil {
		t.Fatal("couldn't build the", cat, "fixture", err)
	}
	return tab
}

//datasetWith registers a dataset carrying the given categories and returns its id
func datasetWith(t testing.TB, store *plant.Store, cats ...plant.Category) string {
	t.Helper()
	tables := map[plant.Category]*plant.Table{}
	for _, c := range cats {
		tables[c] = tableFor(t, c)
	}
	d, err := plant.NewDataset(plant.SourceUpload, tables)
	if err != nil {
		t.Fatal("couldn't assemble the dataset fixture", err)
	}
	return store.Register(d)
}

func TestDispatchUnknownMethod(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	_, err := Dispatch(context.Background(), fake, store, "frequency-response", []byte(`{"dataset_id":"x"}`))
	var u UnknownMethodError
	if !errors.As(err, &u) {
		t.Fatal("expected an unknown method error got", err)
	}
	if u.Method != "frequency-response" {
		t.Error("expected the error to carry the method name got", u.Method)
	}
	if len(fake.calls) != 0 {
		t.Error("expected the engine to stay untouched")
	}
}

func TestDispatchMissingDatasetID(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	for _, body := range []string{"", "{}", `{"dataset_id":""}`} {
		_, err := Dispatch(context.Background(), fake, store, MethodAEP, []byte(body))
		var p InvalidParameterError
		if !errors.As(err, &p) {
			t.Fatal("expected an invalid parameter error for body", body, "got", err)
		}
		if p.Param != "dataset_id" {
			t.Error("expected the error to name dataset_id got", p.Param)
		}
	}
	if len(fake.calls) != 0 {
		t.Error("expected the engine to stay untouched")
	}
}

func TestDispatchMalformedBody(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	_, err := Dispatch(context.Background(), fake, store, MethodAEP, []byte(`{"dataset_id":`))
	var p InvalidParameterError
	if !errors.As(err, &p) {
		t.Fatal("expected an invalid parameter error got", err)
	}
	if p.Param != "body" {
		t.Error("expected the error to name the body got", p.Param)
	}
}

func TestDispatchDatasetNotFound(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	_, err := Dispatch(context.Background(), fake, store, MethodAEP, []byte(`{"dataset_id":"upload-missing"}`))
	var nf *plant.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("expected a not found error got", err)
	}
	if len(fake.calls) != 0 {
		t.Error("expected the engine to stay untouched")
	}
}

func TestDispatchMissingCategories(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	id := datasetWith(t, store, plant.CategoryScada, plant.CategoryMeter)
	_, err := Dispatch(context.Background(), fake, store, MethodTurbineEnergy, []byte(`{"dataset_id":"`+id+`"}`))
	var m MissingCategoryError
	if !errors.As(err, &m) {
		t.Fatal("expected a missing category error got", err)
	}
	want := map[plant.Category]bool{plant.CategoryAsset: true, plant.CategoryReanalysis: true}
	if len(m.Missing) != 2 || !want[m.Missing[0]] || !want[m.Missing[1]] {
		t.Error("expected the asset and the reanalysis data to be reported missing got", m.Missing)
	}
	if len(fake.calls) != 0 {
		t.Error("expected the engine to stay untouched")
	}
}

func TestDispatchAEPDefaults(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	id := datasetWith(t, store, plant.CategoryScada, plant.CategoryMeter, plant.CategoryReanalysis)
	res, err := Dispatch(context.Background(), fake, store, MethodAEP, []byte(`{"dataset_id":"`+id+`"}`))
	if err != nil {
		t.Fatal("couldn't dispatch the aep analysis", err)
	}
	cfg := fake.aepCfg
	if cfg.NumSim != 10 {
		t.Error("expected the default of 10 simulations got", cfg.NumSim)
	}
	if cfg.Resolution != engine.ResolutionMonthStart {
		t.Error("expected the default monthly resolution got", cfg.Resolution)
	}
	if cfg.RegModel != engine.RegModelLin {
		t.Error("expected the default linear model got", cfg.RegModel)
	}
	if cfg.UncertaintyMeter != 0.005 || cfg.UncertaintyLosses != 0.05 {
		t.Error("unexpected default uncertainties", cfg.UncertaintyMeter, cfg.UncertaintyLosses)
	}
	if cfg.RegTemperature || cfg.RegWindDirection || cfg.OutlierDetection {
		t.Error("expected the optional regressors and the outlier screen off")
	}
	if res.DatasetID != id || res.Analysis != "MonteCarloAEP" || res.NumSim != 10 {
		t.Error("unexpected result envelope", res.DatasetID, res.Analysis, res.NumSim)
	}
}

func TestDispatchAEPExplicitParams(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	id := datasetWith(t, store, plant.CategoryScada, plant.CategoryMeter, plant.CategoryReanalysis)
	body := `{"dataset_id":"` + id + `","num_sim":500,"time_resolution":"D","reg_model":"gbm","reg_temperature":true,"reg_wind_direction":true,"uncertainty_meter":0.01,"uncertainty_losses":0.1,"outlier_detection":true}`
	if _, err := Dispatch(context.Background(), fake, store, MethodAEP, []byte(body)); err != nil {
		t.Fatal("couldn't dispatch the aep analysis", err)
	}
	cfg := fake.aepCfg
	if cfg.NumSim != 500 || cfg.Resolution != engine.ResolutionDay || cfg.RegModel != engine.RegModelGBM {
		t.Error("unexpected decoded config", cfg)
	}
	if !cfg.RegTemperature || !cfg.RegWindDirection || !cfg.OutlierDetection {
		t.Error("expected the toggles on")
	}
	if cfg.UncertaintyMeter != 0.01 || cfg.UncertaintyLosses != 0.1 {
		t.Error("unexpected decoded uncertainties", cfg.UncertaintyMeter, cfg.UncertaintyLosses)
	}
}

func TestDispatchRejectsBadParams(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	id := datasetWith(t, store,
		plant.CategoryScada, plant.CategoryMeter, plant.CategoryCurtail,
		plant.CategoryAsset, plant.CategoryReanalysis)

	tt := []struct {
		name   string
		method string
		body   string
		param  string
	}{
		{"zero simulations", MethodAEP, `{"dataset_id":"` + id + `","num_sim":0}`, "num_sim"},
		{"too many simulations", MethodAEP, `{"dataset_id":"` + id + `","num_sim":20001}`, "num_sim"},
		{"bad resolution", MethodAEP, `{"dataset_id":"` + id + `","time_resolution":"W"}`, "time_resolution"},
		{"bad model", MethodAEP, `{"dataset_id":"` + id + `","reg_model":"xgb"}`, "reg_model"},
		{"uncertainty too high", MethodAEP, `{"dataset_id":"` + id + `","uncertainty_meter":1}`, "uncertainty_meter"},
		{"negative uncertainty", MethodElectricalLosses, `{"dataset_id":"` + id + `","uncertainty_scada":-0.1}`, "uncertainty_scada"},
		{"unknown parameter", MethodAEP, `{"dataset_id":"` + id + `","bootstrap":true}`, "bootstrap"},
		{"wrong type", MethodAEP, `{"dataset_id":"` + id + `","num_sim":"ten"}`, "num_sim"},
		{"wake simulations over the cap", MethodWakeLosses, `{"dataset_id":"` + id + `","num_sim":101}`, "num_sim"},
		{"wake bin too narrow", MethodWakeLosses, `{"dataset_id":"` + id + `","wd_bin_width":0.5}`, "wd_bin_width"},
		{"wake bin too wide", MethodWakeLosses, `{"dataset_id":"` + id + `","wd_bin_width":31}`, "wd_bin_width"},
		{"wake direction source", MethodWakeLosses, `{"dataset_id":"` + id + `","wind_direction_data_type":"tower"}`, "wind_direction_data_type"},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			before := len(fake.calls)
			_, err := Dispatch(context.Background(), fake, store, tc.method, []byte(tc.body))
			var p InvalidParameterError
			if !errors.As(err, &p) {
				t.Fatal("expected an invalid parameter error got", err)
			}
			if p.Param != tc.param {
				t.Error("expected the error to name", tc.param, "got", p.Param)
			}
			if len(fake.calls) != before {
				t.Error("expected the engine to stay untouched")
			}
		})
	}
}

func TestDispatchWakeColumnCanonicalized(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	id := datasetWith(t, store, plant.CategoryScada, plant.CategoryAsset)
	body := `{"dataset_id":"` + id + `","wind_direction_col":"Wa_avg"}`
	if _, err := Dispatch(context.Background(), fake, store, MethodWakeLosses, []byte(body)); err != nil {
		t.Fatal("couldn't dispatch the wake analysis", err)
	}
	if fake.wakeCfg.DirectionColumn != plant.ColWindDirDeg {
		t.Error("expected the vendor header to canonicalize got", fake.wakeCfg.DirectionColumn)
	}
	if fake.wakeCfg.BinWidthDeg != 5 {
		t.Error("expected the default bin width of 5 got", fake.wakeCfg.BinWidthDeg)
	}
}

func TestDispatchEngineFailurePassesThrough(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{fail: engine.FailureError{Analysis: "aep", Reason: "no data"}}
	id := datasetWith(t, store, plant.CategoryScada, plant.CategoryMeter, plant.CategoryReanalysis)
	_, err := Dispatch(context.Background(), fake, store, MethodAEP, []byte(`{"dataset_id":"`+id+`"}`))
	var f engine.FailureError
	if !errors.As(err, &f) {
		t.Fatal("expected the engine failure to surface got", err)
	}
}

func TestResultJSON(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	id := datasetWith(t, store, plant.CategoryScada, plant.CategoryMeter, plant.CategoryReanalysis)
	res, err := Dispatch(context.Background(), fake, store, MethodAEP, []byte(`{"dataset_id":"`+id+`"}`))
	if err != nil {
		t.Fatal("couldn't dispatch the aep analysis", err)
	}
	buf, err := json.Marshal(res)
	if err != nil {
		t.Fatal("couldn't marshal the result", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(buf, &out); err != nil {
		t.Fatal("couldn't read the marshalled result back", err)
	}
	if out["analysis"] != "MonteCarloAEP" || out["dataset_id"] != id {
		t.Error("unexpected envelope fields", out["analysis"], out["dataset_id"])
	}
	if out["aep_gwh"] != 21.5 || out["aep_uncertainty_pct"] != 4.2 {
		t.Error("unexpected scalar fields", out["aep_gwh"], out["aep_uncertainty_pct"])
	}
	if out["time_resolution"] != "MS" {
		t.Error("expected the resolution in the response got", out["time_resolution"])
	}
	dist, ok := out["aep_distribution"].([]interface{})
	if !ok || len(dist) != 2 {
		t.Error("expected the distribution under aep_distribution got", out["aep_distribution"])
	}
	if out["plot_base64"] != "cG5n" {
		t.Error("expected the plot encoded as base64 got", out["plot_base64"])
	}
}

func TestResultJSONPerMethodFields(t *testing.T) {
	store := plant.NewStore()
	fake := &fakeEngine{}
	id := datasetWith(t, store,
		plant.CategoryScada, plant.CategoryMeter, plant.CategoryCurtail,
		plant.CategoryAsset, plant.CategoryReanalysis)

	tt := []struct {
		method string
		want   []string
		absent []string
	}{
		{MethodElectricalLosses,
			[]string{"mean_losses_pct", "median_losses_pct", "std_losses_pct", "losses_distribution"},
			[]string{"aep_gwh", "turbine_results", "plot_base64"}},
		{MethodTurbineEnergy,
			[]string{"tie_gwh", "tie_uncertainty_pct", "turbine_results"},
			[]string{"losses_distribution", "turbine_wake_losses"}},
		{MethodWakeLosses,
			[]string{"mean_wake_losses_pct", "std_wake_losses_pct", "turbine_wake_losses"},
			[]string{"tie_gwh", "aep_distribution"}},
	}
	for _, tc := range tt {
		res, err := Dispatch(context.Background(), fake, store, tc.method, []byte(`{"dataset_id":"`+id+`"}`))
		if err != nil {
			t.Fatal("couldn't dispatch", tc.method, err)
		}
		buf, err := json.Marshal(res)
		if err != nil {
			t.Fatal("couldn't marshal the", tc.method, "result", err)
		}
		var out map[string]interface{}
		json.Unmarshal(buf, &out)
		for _, field := range tc.want {
			if _, ok := out[field]; !ok {
				t.Error("expected the", tc.method, "response to carry", field)
			}
		}
		for _, field := range tc.absent {
			if _, ok := out[field]; ok {
				t.Error("expected the", tc.method, "response to omit", field)
			}
		}
	}
}

func TestMethods(t *testing.T) {
	names := Methods()
	want := []string{MethodAEP, MethodElectricalLosses, MethodTurbineEnergy, MethodWakeLosses}
	if len(names) != len(want) {
		t.Fatal("expected", want, "got", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatal("expected", want, "got", names)
		}
	}
}

func TestRequires(t *testing.T) {
	cats, ok := Requires(MethodElectricalLosses)
	if !ok || len(cats) != 2 {
		t.Fatal("expected the electrical losses requirements got", cats)
	}
	if _, ok := Requires("frequency-response"); ok {
		t.Error("expected an unknown method to have no requirements")
	}
}
