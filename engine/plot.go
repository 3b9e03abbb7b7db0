// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Following constants have the hex colors of the plot renders
const (
	colorAEPBars        = "2196F3"
	colorAEPMean        = "FF5722"
	colorElectricalBars = "4CAF50"
	colorTurbineBars    = "9C27B0"
	colorWakeBars       = "FF9800"
	colorWakeMean       = "F44336"
)

//histogramBins is the number of bars of a distribution render
const histogramBins = 15

//histogram renders the distribution of the samples as a png bar chart.
//The bar holding the mean is called out in the accent color
func histogram(title, unit string, samples []float64, barHex, accentHex string) ([]byte, error) {
	lo, hi := floats.Min(samples), floats.Max(samples)
	mean := stat.Mean(samples, nil)
	width := (hi - lo) / histogramBins
	counts := make([]float64, histogramBins)
	meanBin := 0
	if width > 0 {
		for _, s := range samples {
			b := int((s - lo) / width)
			if b >= histogramBins {
				b = histogramBins - 1
			}
			counts[b]++
		}
		meanBin = int((mean - lo) / width)
		if meanBin >= histogramBins {
			meanBin = histogramBins - 1
		}
	} else {
		counts[0] = float64(len(samples))
	}
	bars := make([]chart.Value, 0, histogramBins)
	for b := 0; b < histogramBins; b++ {
		hex := barHex
		if b == meanBin {
			hex = accentHex
		}
		var label string
		if b%3 == 0 {
			label = fmt.Sprintf("%.1f", lo+(float64(b)+0.5)*width)
		}
		bars = append(bars, chart.Value{Value: counts[b], Label: label, Style: barStyle(hex)})
	}
	return render(fmt.Sprintf("%s (mean %.2f %s)", title, mean, unit), bars)
}

//turbineBars renders one bar per turbine.
//The turbine with the largest value is called out in the accent color
func turbineBars(title, unit string, names []string, values map[string]float64, barHex, accentHex string) ([]byte, error) {
	largest := ""
	top := math.Inf(-1)
	for _, n := range names {
		if v := values[n]; v > top {
			top = v
			largest = n
		}
	}
	bars := make([]chart.Value, 0, len(names))
	for _, n := range names {
		hex := barHex
		if n == largest && accentHex != barHex {
			hex = accentHex
		}
		bars = append(bars, chart.Value{Value: values[n], Label: n, Style: barStyle(hex)})
	}
	return render(fmt.Sprintf("%s (%s)", title, unit), bars)
}

//render draws the bars into a png sized to fit them
func render(title string, bars []chart.Value) ([]byte, error) {
	const barWidth, barSpacing = 34, 14
	width := len(bars)*(barWidth+barSpacing) + 140
	if width < 560 {
		width = 560
	}
	ch := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     420,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 42}},
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//barStyle returns the fill and stroke style of one bar
func barStyle(hex string) chart.Style {
	c := drawing.ColorFromHex(hex)
	return chart.Style{FillColor: c, StrokeColor: c}
}
