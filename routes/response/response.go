// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package response has the utilities to write the api responses of the
//service and the mapping from the application errors to the http statuses
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/swaralipi04/openoa-Assignment/analysis"
	"github.com/swaralipi04/openoa-Assignment/engine"
	"github.com/swaralipi04/openoa-Assignment/exampledata"
	"github.com/swaralipi04/openoa-Assignment/plant"
)

//Message is the structure of a success response of the api
type Message struct {
	//Message is the human readable description of the outcome
	Message string `json:"message"`
	//Data is the payload of the response
	Data interface{} `json:"data,omitempty"`
}

//Error is the structure of an error response of the api
type Error struct {
	//Err is the description of the failure
	Err string `json:"error"`
}

//Write writes a success response to the given writer
func Write(w http.ResponseWriter, m Message) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

//WriteError writes an error response with the given http status code
func WriteError(w http.ResponseWriter, e Error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(e)
}

//StatusCode maps an application error to the http status of its response.
//Client mistakes map to 400/404 and the faults of the service to 500
func StatusCode(err error) int {
	var validation *plant.ValidationError
	var notFound *plant.NotFoundError
	var unknownMethod analysis.UnknownMethodError
	var missingCategory analysis.MissingCategoryError
	var invalidParam analysis.InvalidParameterError
	var unavailable exampledata.UnavailableError
	var failure engine.FailureError
	switch {
	case errors.As(err, &validation), errors.As(err, &missingCategory), errors.As(err, &invalidParam):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &unknownMethod):
		return http.StatusNotFound
	case errors.As(err, &unavailable), errors.As(err, &failure):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
