// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package routes

/*
 * This file contains the analysis api
 */

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/swaralipi04/openoa-Assignment/analysis"
	"github.com/swaralipi04/openoa-Assignment/config"
	"github.com/swaralipi04/openoa-Assignment/routes/response"
)

//maxParamsBody is the size limit of an analysis parameter body
const maxParamsBody = 1 << 20

//Analyze runs the analysis named by the request path over the dataset
//named by the parameter body and writes the normalized result
func Analyze(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	/*
	 * We will get the app context
	 * Then we will parse the analysis method out of the request path
	 * Then we will read the parameter body
	 * Then we will hand the request over to the analysis dispatcher
	 */

	//getting the app context
	appCtx := ctx.Value(AppContextKey).(*config.AppContext)

	if r.Method != http.MethodPost {
		response.WriteError(w, response.Error{Err: "Method not allowed"}, http.StatusMethodNotAllowed)
		return
	}

	//parsing the analysis method out of the request path
	method := strings.Trim(strings.TrimPrefix(r.URL.Path, APIRoot+"/analysis/"), "/")
	appCtx.Log.Info("Got a request to run the", method, "analysis")
	if len(method) == 0 || strings.Contains(method, "/") {
		response.WriteError(w, response.Error{Err: "Not found"}, http.StatusNotFound)
		return
	}

	//reading the parameter body
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxParamsBody))
	if err != nil {
		//error while reading the parameter body
		appCtx.Log.Error("error while reading the parameters of the", method, "analysis", err.Error())
		response.WriteError(w, response.Error{Err: "Couldn't read the analysis parameters"}, http.StatusBadRequest)
		return
	}
	body = mergeDatasetID(body, r.URL.Query().Get("dataset_id"))

	//handing the request over to the dispatcher
	res, err := analysis.Dispatch(ctx, appCtx.Engine, appCtx.Store, method, body)
	if err != nil {
		//error while running the analysis
		appCtx.Log.Error("error while running the", method, "analysis", err.Error())
		response.WriteError(w, response.Error{Err: err.Error()}, response.StatusCode(err))
		return
	}

	appCtx.Log.Info("Successfully ran the", res.Analysis, "analysis over the dataset", res.DatasetID)
	response.Write(w, response.Message{Message: "Successfully ran the " + res.Analysis + " analysis", Data: res})
}

//mergeDatasetID injects the dataset id of the query string into the
//parameter body when the body itself doesn't name one
func mergeDatasetID(body []byte, id string) []byte {
	if len(id) == 0 {
		return body
	}
	params := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) != 0 {
		if err := json.Unmarshal(body, &params); err != nil {
			//a malformed body is reported by the dispatcher
			return body
		}
	}
	if _, ok := params["dataset_id"]; ok {
		return body
	}
	quoted, err := json.Marshal(id)
	if err != nil {
		return body
	}
	params["dataset_id"] = quoted
	merged, err := json.Marshal(params)
	if err != nil {
		return body
	}
	return merged
}

func init() {
	AddRoutes(
		Route{
			Version:     "v1",
			Pattern:     "/analysis/",
			HandlerFunc: Analyze,
			Timeout:     config.AnalysisTimeout,
		},
	)
}
