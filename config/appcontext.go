// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/swaralipi04/openoa-Assignment/analysis"
	"github.com/swaralipi04/openoa-Assignment/exampledata"
	"github.com/swaralipi04/openoa-Assignment/plant"
)

//AppContext holds the state shared with the api request handlers of the service
type AppContext struct {
	//Log is the logger for logging in the context of a request
	Log Logger
	//Store is the in-memory registry holding the datasets of the service
	Store *plant.Store
	//Engine runs the analyses offered by the service
	Engine analysis.Engine
	//Examples loads the bundled example dataset
	Examples *exampledata.Loader
}

//NewAppContext returns the app context built with the given state
func NewAppContext(l Logger, s *plant.Store, e analysis.Engine, ex *exampledata.Loader) *AppContext {
	return &AppContext{Log: l, Store: s, Engine: e, Examples: ex}
}
