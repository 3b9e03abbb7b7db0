// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package analysis

import (
	"encoding/base64"
	"encoding/json"
)

//Result is the normalized envelope every analysis replies with.
//The scalar, distribution and per turbine outputs carry their own api field
//names so that each analysis keeps its established response shape
type Result struct {
	//DatasetID is the dataset the analysis ran over
	DatasetID string
	//Analysis is the label of the analysis that produced the result
	Analysis string
	//NumSim is the number of monte carlo iterations that ran
	NumSim int
	//Scalars has the scalar outputs keyed by their api field name
	Scalars map[string]float64
	//Strings has the string outputs keyed by their api field name
	Strings map[string]string
	//DistributionField is the api field name of the sampled distribution
	DistributionField string
	//Distribution has the sampled outputs of the monte carlo loop
	Distribution []float64
	//TurbinesField is the api field name of the per turbine outputs
	TurbinesField string
	//Turbines has the per turbine outputs keyed by the turbine name
	Turbines map[string]float64
	//PlotBase64 is the png render of the result encoded as base64
	PlotBase64 string
}

//MarshalJSON flattens the result into its api field names
func (r Result) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"dataset_id": r.DatasetID,
		"analysis":   r.Analysis,
		"num_sim":    r.NumSim,
	}
	for k, v := range r.Scalars {
		out[k] = v
	}
	for k, v := range r.Strings {
		out[k] = v
	}
	if r.DistributionField != "" {
		out[r.DistributionField] = r.Distribution
	}
	if r.TurbinesField != "" {
		out[r.TurbinesField] = r.Turbines
	}
	if r.PlotBase64 != "" {
		out["plot_base64"] = r.PlotBase64
	}
	return json.Marshal(out)
}

//encodePlot encodes a png render for the json response
func encodePlot(png []byte) string {
	if len(png) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(png)
}
