// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/swaralipi04/openoa-Assignment/plant"
)

//turbineFixture builds scada, asset and reanalysis tables with linear power curves.
//It returns the tables along with the true annual energy per turbine in GWh
func turbineFixture(t testing.TB, hours int) (*plant.Table, *plant.Table, *plant.Table, map[string]float64) {
	t.Helper()
	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	slopes := map[string]float64{"T1": 100, "T2": 120}
	var scadaRecords, reanRecords [][]string
	var wsSum float64
	for i := 0; i < hours; i++ {
		ts := stamp(start.Add(time.Duration(i) * time.Hour))
		ws := 4 + 6*float64(i%24)/23
		wsSum += ws
		wsStr := strconv.FormatFloat(ws, 'f', 3, 64)
		for _, name := range []string{"T1", "T2"} {
			p := slopes[name] * ws
			scadaRecords = append(scadaRecords, []string{ts, name, strconv.FormatFloat(p, 'f', 2, 64)})
		}
		reanRecords = append(reanRecords, []string{ts, wsStr})
	}
	scada := buildTable(t, plant.CategoryScada, []string{"time", "turbine", "power_kw"}, scadaRecords)
	rean := buildTable(t, plant.CategoryReanalysis, []string{"time", "windspeed_ms"}, reanRecords)
	asset := buildTable(t, plant.CategoryAsset, []string{"turbine", "latitude", "longitude"}, [][]string{
		{"T1", "48.45", "5.58"},
		{"T2", "48.46", "5.59"},
	})
	meanWs := wsSum / float64(hours)
	truth := map[string]float64{}
	for name, slope := range slopes {
		truth[name] = slope * meanWs * hoursPerYear / 1e6
	}
	return scada, asset, rean, truth
}

func TestTurbineEnergy(t *testing.T) {
	scada, asset, rean, truth := turbineFixture(t, 1440)
	e := New(WithSeed(13))
	res, err := e.TurbineEnergy(context.Background(), TurbineInput{Scada: scada, Asset: asset, Reanalysis: rean}, TurbineConfig{
		NumSim:           20,
		UncertaintyScada: 0.005,
	})
	if err != nil {
		t.Fatal("couldn't run the turbine energy analysis", err)
	}
	if len(res.Turbines) != 2 {
		t.Fatal("expected results for 2 turbines got", len(res.Turbines))
	}
	var total float64
	for name, want := range truth {
		got := res.Turbines[name]
		if rel := math.Abs(got-want) / want; rel > 0.07 {
			t.Error("expected", name, "near", want, "GWh got", got)
		}
		total += want
	}
	if rel := math.Abs(res.TotalGWh-total) / total; rel > 0.07 {
		t.Error("expected the plant total near", total, "GWh got", res.TotalGWh)
	}
	if res.UncertaintyPct <= 0 || res.UncertaintyPct > 10 {
		t.Error("unexpected uncertainty", res.UncertaintyPct)
	}
	if len(res.Plot) == 0 {
		t.Error("expected the per turbine plot to render")
	}
}

func TestTurbineEnergyMissingTurbine(t *testing.T) {
	scada, _, rean, _ := turbineFixture(t, 720)
	asset := buildTable(t, plant.CategoryAsset, []string{"turbine", "latitude", "longitude"}, [][]string{
		{"T1", "48.45", "5.58"},
		{"T2", "48.46", "5.59"},
		{"T3", "48.47", "5.60"},
	})
	e := New(WithSeed(1))
	_, err := e.TurbineEnergy(context.Background(), TurbineInput{Scada: scada, Asset: asset, Reanalysis: rean}, TurbineConfig{NumSim: 2})
	var f FailureError
	if !errors.As(err, &f) {
		t.Fatal("expected a failure error got", err)
	}
	if !strings.Contains(f.Reason, "T3") {
		t.Error("expected the failure to name the unmatched turbine got", f.Reason)
	}
}

func TestTurbineEnergyCanceled(t *testing.T) {
	scada, asset, rean, _ := turbineFixture(t, 720)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := New(WithSeed(1))
	_, err := e.TurbineEnergy(ctx, TurbineInput{Scada: scada, Asset: asset, Reanalysis: rean}, TurbineConfig{NumSim: 100})
	if !errors.Is(err, context.Canceled) {
		t.Error("expected the cancellation to surface got", err)
	}
}

func TestTurbineEnergyDeterminism(t *testing.T) {
	scada, asset, rean, _ := turbineFixture(t, 720)
	cfg := TurbineConfig{NumSim: 10, UncertaintyScada: 0.005}
	in := TurbineInput{Scada: scada, Asset: asset, Reanalysis: rean}
	a, err := New(WithSeed(41)).TurbineEnergy(context.Background(), in, cfg)
	if err != nil {
		t.Fatal("couldn't run the first pass", err)
	}
	b, err := New(WithSeed(41)).TurbineEnergy(context.Background(), in, cfg)
	if err != nil {
		t.Fatal("couldn't run the second pass", err)
	}
	if a.TotalGWh != b.TotalGWh {
		t.Error("expected identical seeds to give identical totals got", a.TotalGWh, "and", b.TotalGWh)
	}
	for name := range a.Turbines {
		if a.Turbines[name] != b.Turbines[name] {
			t.Error("expected identical per turbine energies for", name)
		}
	}
}

func TestFitPowerCurve(t *testing.T) {
	ws := []float64{5.1, 5.2, 5.3, 9.1, 9.2, 9.3}
	power := []float64{500, 500, 500, 900, 900, 900}
	curve, ok := fitPowerCurve(ws, power)
	if !ok {
		t.Fatal("expected the curve to bin")
	}
	if got := curve.eval(5.5); got != 500 {
		t.Error("expected 500 at the lower bin got", got)
	}
	if got := curve.eval(9.5); got != 900 {
		t.Error("expected 900 at the upper bin got", got)
	}
	if got := curve.eval(7.5); got != 700 {
		t.Error("expected 700 halfway up got", got)
	}
	if got := curve.eval(20); got != 900 {
		t.Error("expected the curve to clamp above the fitted range got", got)
	}
}

func TestFitPowerCurveTooSparse(t *testing.T) {
	if _, ok := fitPowerCurve([]float64{5.1, 5.2, 5.3}, []float64{500, 500, 500}); ok {
		t.Error("expected a single bin to be rejected")
	}
}
