// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/swaralipi04/openoa-Assignment/engine"
	"github.com/swaralipi04/openoa-Assignment/plant"
)

//Following constants bound the simulation counts
const (
	//defaultNumSim is the simulation count used when the request doesn't set one
	defaultNumSim = 10
	//maxNumSim is the ceiling of the simulation count for most analyses
	maxNumSim = 20000
	//maxNumSimWake is the tighter ceiling of the wake analysis
	maxNumSimWake = 100
)

//decodeParams decodes a request body strictly rejecting unknown fields
func decodeParams(body []byte, into interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return invalidDecode(err)
	}
	if dec.More() {
		return InvalidParameterError{Param: "body", Reason: "trailing content after the parameters"}
	}
	return nil
}

//invalidDecode maps a json decoding error to the parameter it concerns
func invalidDecode(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		param := typeErr.Field
		if param == "" {
			param = "body"
		}
		return InvalidParameterError{Param: param, Reason: fmt.Sprintf("must be of type %s", typeErr.Type)}
	}
	if name, ok := strings.CutPrefix(err.Error(), `json: unknown field "`); ok {
		return InvalidParameterError{Param: strings.TrimSuffix(name, `"`), Reason: "unknown parameter"}
	}
	return InvalidParameterError{Param: "body", Reason: "malformed json"}
}

//checkNumSim validates a simulation count against its ceiling
func checkNumSim(n, max int) error {
	if n < 1 || n > max {
		return InvalidParameterError{Param: "num_sim", Reason: fmt.Sprintf("must be between 1 and %d", max)}
	}
	return nil
}

//checkUncertainty validates a relative uncertainty
func checkUncertainty(param string, v float64) error {
	if v < 0 || v >= 1 {
		return InvalidParameterError{Param: param, Reason: "must be at least 0 and below 1"}
	}
	return nil
}

//aepParams is the decoded body of an aep request
type aepParams struct {
	DatasetID         string   `json:"dataset_id"`
	NumSim            *int     `json:"num_sim"`
	TimeResolution    *string  `json:"time_resolution"`
	RegModel          *string  `json:"reg_model"`
	RegTemperature    *bool    `json:"reg_temperature"`
	RegWindDirection  *bool    `json:"reg_wind_direction"`
	UncertaintyMeter  *float64 `json:"uncertainty_meter"`
	UncertaintyLosses *float64 `json:"uncertainty_losses"`
	OutlierDetection  *bool    `json:"outlier_detection"`
}

//config validates the decoded values and fills the defaults
func (p *aepParams) config() (engine.AEPConfig, error) {
	cfg := engine.AEPConfig{
		NumSim:            defaultNumSim,
		Resolution:        engine.ResolutionMonthStart,
		RegModel:          engine.RegModelLin,
		UncertaintyMeter:  0.005,
		UncertaintyLosses: 0.05,
	}
	if p.NumSim != nil {
		if err := checkNumSim(*p.NumSim, maxNumSim); err != nil {
			return cfg, err
		}
		cfg.NumSim = *p.NumSim
	}
	if p.TimeResolution != nil {
		r := engine.Resolution(*p.TimeResolution)
		if !r.IsValid() {
			return cfg, InvalidParameterError{Param: "time_resolution", Reason: "must be one of MS, ME, D or h"}
		}
		cfg.Resolution = r
	}
	if p.RegModel != nil {
		if !engine.IsRegModel(*p.RegModel) {
			return cfg, InvalidParameterError{Param: "reg_model", Reason: "must be one of lin, gam, gbm or etr"}
		}
		cfg.RegModel = *p.RegModel
	}
	if p.RegTemperature != nil {
		cfg.RegTemperature = *p.RegTemperature
	}
	if p.RegWindDirection != nil {
		cfg.RegWindDirection = *p.RegWindDirection
	}
	if p.UncertaintyMeter != nil {
		if err := checkUncertainty("uncertainty_meter", *p.UncertaintyMeter); err != nil {
			return cfg, err
		}
		cfg.UncertaintyMeter = *p.UncertaintyMeter
	}
	if p.UncertaintyLosses != nil {
		if err := checkUncertainty("uncertainty_losses", *p.UncertaintyLosses); err != nil {
			return cfg, err
		}
		cfg.UncertaintyLosses = *p.UncertaintyLosses
	}
	if p.OutlierDetection != nil {
		cfg.OutlierDetection = *p.OutlierDetection
	}
	return cfg, nil
}

//electricalParams is the decoded body of an electrical losses request
type electricalParams struct {
	DatasetID        string   `json:"dataset_id"`
	NumSim           *int     `json:"num_sim"`
	UncertaintyMeter *float64 `json:"uncertainty_meter"`
	UncertaintyScada *float64 `json:"uncertainty_scada"`
}

//config validates the decoded values and fills the defaults
func (p *electricalParams) config() (engine.ElectricalConfig, error) {
	cfg := engine.ElectricalConfig{
		NumSim:           defaultNumSim,
		UncertaintyMeter: 0.005,
		UncertaintyScada: 0.005,
	}
	if p.NumSim != nil {
		if err := checkNumSim(*p.NumSim, maxNumSim); err != nil {
			return cfg, err
		}
		cfg.NumSim = *p.NumSim
	}
	if p.UncertaintyMeter != nil {
		if err := checkUncertainty("uncertainty_meter", *p.UncertaintyMeter); err != nil {
			return cfg, err
		}
		cfg.UncertaintyMeter = *p.UncertaintyMeter
	}
	if p.UncertaintyScada != nil {
		if err := checkUncertainty("uncertainty_scada", *p.UncertaintyScada); err != nil {
			return cfg, err
		}
		cfg.UncertaintyScada = *p.UncertaintyScada
	}
	return cfg, nil
}

//turbineParams is the decoded body of a turbine energy request
type turbineParams struct {
	DatasetID        string   `json:"dataset_id"`
	NumSim           *int     `json:"num_sim"`
	UncertaintyScada *float64 `json:"uncertainty_scada"`
}

//config validates the decoded values and fills the defaults
func (p *turbineParams) config() (engine.TurbineConfig, error) {
	cfg := engine.TurbineConfig{
		NumSim:           defaultNumSim,
		UncertaintyScada: 0.005,
	}
	if p.NumSim != nil {
		if err := checkNumSim(*p.NumSim, maxNumSim); err != nil {
			return cfg, err
		}
		cfg.NumSim = *p.NumSim
	}
	if p.UncertaintyScada != nil {
		if err := checkUncertainty("uncertainty_scada", *p.UncertaintyScada); err != nil {
			return cfg, err
		}
		cfg.UncertaintyScada = *p.UncertaintyScada
	}
	return cfg, nil
}

//wakeParams is the decoded body of a wake losses request
type wakeParams struct {
	DatasetID             string   `json:"dataset_id"`
	NumSim                *int     `json:"num_sim"`
	WindDirectionCol      *string  `json:"wind_direction_col"`
	WindDirectionDataType *string  `json:"wind_direction_data_type"`
	WdBinWidth            *float64 `json:"wd_bin_width"`
}

//config validates the decoded values and fills the defaults
func (p *wakeParams) config() (engine.WakeConfig, error) {
	cfg := engine.WakeConfig{
		NumSim:          defaultNumSim,
		DirectionColumn: plant.ColWindDirDeg,
		BinWidthDeg:     5,
	}
	if p.NumSim != nil {
		if err := checkNumSim(*p.NumSim, maxNumSimWake); err != nil {
			return cfg, err
		}
		cfg.NumSim = *p.NumSim
	}
	if p.WindDirectionCol != nil {
		col := plant.CanonicalColumn(*p.WindDirectionCol)
		if col == "" {
			return cfg, InvalidParameterError{Param: "wind_direction_col", Reason: "must name a column"}
		}
		cfg.DirectionColumn = col
	}
	if p.WindDirectionDataType != nil && *p.WindDirectionDataType != "scada" {
		return cfg, InvalidParameterError{Param: "wind_direction_data_type", Reason: "must be scada"}
	}
	if p.WdBinWidth != nil {
		if *p.WdBinWidth < 1 || *p.WdBinWidth > 30 {
			return cfg, InvalidParameterError{Param: "wd_bin_width", Reason: "must be between 1 and 30 degrees"}
		}
		cfg.BinWidthDeg = *p.WdBinWidth
	}
	return cfg, nil
}
