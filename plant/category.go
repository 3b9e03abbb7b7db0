// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package plant

import "strings"

//Category is the kind of a data table within a dataset
type Category string

//Following constants have the list of data categories supported by the system
const (
	//CategoryScada is the turbine level operational time series
	CategoryScada Category = "scada"
	//CategoryMeter is the revenue meter energy time series
	CategoryMeter Category = "meter"
	//CategoryCurtail is the curtailment and availability losses time series
	CategoryCurtail Category = "curtail"
	//CategoryAsset is the turbine metadata like the location and the rated power
	CategoryAsset Category = "asset"
	//CategoryReanalysis is the long term reference weather time series
	CategoryReanalysis Category = "reanalysis"
)

//Categories has the supported data categories in their canonical order
var Categories = []Category{CategoryScada, CategoryMeter, CategoryCurtail, CategoryAsset, CategoryReanalysis}

//IsValid returns true if the category is one of the supported data categories
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

//Following constants have the canonical column names of the category tables
const (
	//ColTime is the timestamp column of the time indexed tables
	ColTime = "time"
	//ColTurbine is the turbine identifier column
	ColTurbine = "turbine"
	//ColPowerKW is the turbine active power column in kW
	ColPowerKW = "power_kw"
	//ColWindSpeedMS is the wind speed column in m/s
	ColWindSpeedMS = "windspeed_ms"
	//ColWindDirDeg is the wind direction column in degrees
	ColWindDirDeg = "winddir_deg"
	//ColTemperatureC is the ambient temperature column in deg C
	ColTemperatureC = "temperature_c"
	//ColEnergyKWh is the metered energy column in kWh
	ColEnergyKWh = "energy_kwh"
	//ColCurtailmentKWh is the energy lost to curtailment in kWh
	ColCurtailmentKWh = "curtailment_kwh"
	//ColAvailabilityKWh is the energy lost to downtime in kWh
	ColAvailabilityKWh = "availability_kwh"
	//ColLatitude is the turbine latitude column in degrees
	ColLatitude = "latitude"
	//ColLongitude is the turbine longitude column in degrees
	ColLongitude = "longitude"
	//ColRatedPowerKW is the turbine rated power column in kW
	ColRatedPowerKW = "rated_power_kw"
	//ColHubHeightM is the turbine hub height column in m
	ColHubHeightM = "hub_height_m"
	//ColRotorDiameterM is the turbine rotor diameter column in m
	ColRotorDiameterM = "rotor_diameter_m"
	//ColElevationM is the turbine base elevation column in m
	ColElevationM = "elevation_m"
	//ColTemperatureK is the reference air temperature column in K
	ColTemperatureK = "temperature_k"
	//ColDensityKgM3 is the reference air density column in kg/m3
	ColDensityKgM3 = "density_kgm3"
)

//Schema describes the columns expected in the table of a category
type Schema struct {
	//Required has the canonical columns that must be present in the table
	Required []string
	//Optional has the canonical numeric columns used by the analyses when present
	Optional []string
	//Labels has the canonical columns holding identifiers rather than numbers
	Labels []string
	//TimeIndexed denotes whether the table carries the time column
	TimeIndexed bool
}

//Schemas maps each data category to the schema its table is validated against
var Schemas = map[Category]Schema{
	CategoryScada: {
		Required:    []string{ColTime, ColTurbine, ColPowerKW},
		Optional:    []string{ColWindSpeedMS, ColWindDirDeg, ColTemperatureC},
		Labels:      []string{ColTurbine},
		TimeIndexed: true,
	},
	CategoryMeter: {
		Required:    []string{ColTime, ColEnergyKWh},
		TimeIndexed: true,
	},
	CategoryCurtail: {
		Required:    []string{ColTime, ColCurtailmentKWh, ColAvailabilityKWh},
		TimeIndexed: true,
	},
	CategoryAsset: {
		Required: []string{ColTurbine, ColLatitude, ColLongitude},
		Optional: []string{ColRatedPowerKW, ColHubHeightM, ColRotorDiameterM, ColElevationM},
		Labels:   []string{ColTurbine},
	},
	CategoryReanalysis: {
		Required:    []string{ColTime, ColWindSpeedMS},
		Optional:    []string{ColTemperatureK, ColDensityKgM3, ColWindDirDeg},
		TimeIndexed: true,
	},
}

//columnAliases maps the known vendor and historian column headers to the canonical ones.
//The keys are lower cased headers as they appear in the raw files
var columnAliases = map[string]string{
	//scada headers of the turbine historian exports
	"date_time":         ColTime,
	"wind_turbine_name": ColTurbine,
	"asset_id":          ColTurbine,
	"turbine_id":        ColTurbine,
	"p_avg":             ColPowerKW,
	"ws_avg":            ColWindSpeedMS,
	"wa_avg":            ColWindDirDeg,
	"ot_avg":            ColTemperatureC,
	"wtur_w":            ColPowerKW,
	"wmet_horwdspd":     ColWindSpeedMS,
	"wmet_horwddir":     ColWindDirDeg,
	"wmet_envtmp":       ColTemperatureC,
	//meter and curtailment headers of the plant data exports
	"time_utc":        ColTime,
	"net_energy_kwh":  ColEnergyKWh,
	"mmtr_supwh":      ColEnergyKWh,
	"iavl_extpwrdnwh": ColCurtailmentKWh,
	"iavl_dnwh":       ColAvailabilityKWh,
	//asset headers
	"rated_power": ColRatedPowerKW,
	"elevation":   ColElevationM,
	//reanalysis headers of the era5 and merra2 exports
	"datetime":          ColTime,
	"ws_100m":           ColWindSpeedMS,
	"ws_50m":            ColWindSpeedMS,
	"winddirection_deg": ColWindDirDeg,
	"wd_100m":           ColWindDirDeg,
	"dens_100m":         ColDensityKgM3,
	"dens_50m":          ColDensityKgM3,
	"wmetr_horwdspd":    ColWindSpeedMS,
	"wmetr_envtmp":      ColTemperatureK,
	"wmetr_airden":      ColDensityKgM3,
}

//CanonicalColumn returns the canonical name for a raw column header.
//Headers without a known alias pass through lower cased
func CanonicalColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if c, ok := columnAliases[h]; ok {
		return c
	}
	return h
}
