// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/swaralipi04/openoa-Assignment/plant"
)

//electricalFixture builds scada and meter tables with a known two percent loss
func electricalFixture(t testing.TB, start time.Time, hours int) (*plant.Table, *plant.Table) {
	t.Helper()
	var scadaRecords, meterRecords [][]string
	for i := 0; i < hours; i++ {
		ts := stamp(start.Add(time.Duration(i) * time.Hour))
		scadaRecords = append(scadaRecords,
			[]string{ts, "T1", "1000"},
			[]string{ts, "T2", "1000"},
		)
		meterRecords = append(meterRecords, []string{ts, "1960"})
	}
	scada := buildTable(t, plant.CategoryScada, []string{"time", "turbine", "power_kw"}, scadaRecords)
	meter := buildTable(t, plant.CategoryMeter, []string{"time", "energy_kwh"}, meterRecords)
	return scada, meter
}

func TestElectricalLosses(t *testing.T) {
	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	scada, meter := electricalFixture(t, start, 3*730)
	e := New(WithSeed(23))
	res, err := e.ElectricalLosses(context.Background(), ElectricalInput{Scada: scada, Meter: meter}, ElectricalConfig{
		NumSim:           200,
		UncertaintyMeter: 0.005,
		UncertaintyScada: 0.005,
	})
	if err != nil {
		t.Fatal("couldn't run the electrical losses analysis", err)
	}
	if res.MeanLossesPct < 1.8 || res.MeanLossesPct > 2.2 {
		t.Error("expected the mean loss near 2 percent got", res.MeanLossesPct)
	}
	if res.MedianLossesPct < 1.8 || res.MedianLossesPct > 2.2 {
		t.Error("expected the median loss near 2 percent got", res.MedianLossesPct)
	}
	if res.StdLossesPct <= 0 || res.StdLossesPct > 1.5 {
		t.Error("unexpected loss spread", res.StdLossesPct)
	}
	if len(res.Distribution) != 200 {
		t.Error("expected 200 simulated samples got", len(res.Distribution))
	}
	if len(res.Plot) == 0 {
		t.Error("expected the distribution plot to render")
	}
}

func TestElectricalLossesNoOverlap(t *testing.T) {
	scada, _ := electricalFixture(t, time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), 744)
	_, meter := electricalFixture(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), 744)
	e := New(WithSeed(1))
	_, err := e.ElectricalLosses(context.Background(), ElectricalInput{Scada: scada, Meter: meter}, ElectricalConfig{NumSim: 2})
	var f FailureError
	if !errors.As(err, &f) {
		t.Fatal("expected a failure error got", err)
	}
	if !strings.Contains(f.Reason, "overlapping") {
		t.Error("expected the failure to name the missing overlap got", f.Reason)
	}
}

func TestElectricalLossesCanceled(t *testing.T) {
	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	scada, meter := electricalFixture(t, start, 744)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := New(WithSeed(1))
	_, err := e.ElectricalLosses(ctx, ElectricalInput{Scada: scada, Meter: meter}, ElectricalConfig{NumSim: 100})
	if !errors.Is(err, context.Canceled) {
		t.Error("expected the cancellation to surface got", err)
	}
}

func TestElectricalLossesDeterminism(t *testing.T) {
	start := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	scada, meter := electricalFixture(t, start, 744)
	cfg := ElectricalConfig{NumSim: 20, UncertaintyMeter: 0.005, UncertaintyScada: 0.005}
	a, err := New(WithSeed(31)).ElectricalLosses(context.Background(), ElectricalInput{Scada: scada, Meter: meter}, cfg)
	if err != nil {
		t.Fatal("couldn't run the first pass", err)
	}
	b, err := New(WithSeed(31)).ElectricalLosses(context.Background(), ElectricalInput{Scada: scada, Meter: meter}, cfg)
	if err != nil {
		t.Fatal("couldn't run the second pass", err)
	}
	if a.MeanLossesPct != b.MeanLossesPct || a.StdLossesPct != b.StdLossesPct {
		t.Error("expected identical seeds to give identical results")
	}
}

func TestDistinctLabels(t *testing.T) {
	got := distinctLabels([]string{"T2", "T1", "T2", "", "T3", "T1"})
	want := []string{"T2", "T1", "T3"}
	if len(got) != len(want) {
		t.Fatal("expected", want, "got", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatal("expected", want, "got", got)
		}
	}
}
