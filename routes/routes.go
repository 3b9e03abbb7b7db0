// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package routes has the api routes of the service. Each route file
//registers its routes with the registry through an init function and the
//server mounts the registry under the api root on startup
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/swaralipi04/openoa-Assignment/config"
	"github.com/swaralipi04/openoa-Assignment/routes/response"
)

//APIRoot is the path under which every route of the service is mounted
const APIRoot = "/api"

//ContextKey is the type of the keys with which the values are injected
//into the context of an api request
type ContextKey string

//AppContextKey is the key with which the app context of the service is
//injected into the context of an api request
const AppContextKey = ContextKey("AppContext")

//HandlerFunc is the type of the api request handlers of the service
type HandlerFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request)

//Route is a single api route of the service
type Route struct {
	//Version is the version of the api the route belongs to
	Version string
	//Pattern is the url pattern of the route under the api root
	Pattern string
	//HandlerFunc is the handler serving the route
	HandlerFunc HandlerFunc
	//Timeout is the execution deadline of the route.
	//The default request timeout of the service applies when zero
	Timeout time.Duration
}

var routes = []Route{}

//AddRoutes registers the given routes with the registry of the service
func AddRoutes(r ...Route) {
	routes = append(routes, r...)
}

//InitRoutes mounts the registered routes on the given mux under the api root
func InitRoutes(mux *http.ServeMux, appCtx *config.AppContext) {
	for _, ro := range routes {
		appCtx.Log.Info("Mounting the", ro.Version, "api route", APIRoot+ro.Pattern)
		mux.HandleFunc(APIRoot+ro.Pattern, ro.serve(appCtx))
	}
}

//serve builds the http handler of the route. It injects the app context
//into the request context, enforces the timeout of the route and recovers
//the panics so that a misbehaving handler can't bring the service down
func (ro Route) serve(appCtx *config.AppContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timeout := ro.Timeout
		if timeout == 0 {
			timeout = config.RequestTimeout
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		ctx = context.WithValue(ctx, AppContextKey, appCtx)

		defer func() {
			if rec := recover(); rec != nil {
				//a handler panicked, reporting it instead of crashing
				appCtx.Log.Error("panic while serving", r.Method, r.URL.Path, rec)
				response.WriteError(w, response.Error{Err: "Something went wrong on our side"}, http.StatusInternalServerError)
			}
		}()

		ro.HandlerFunc(ctx, w, r)
	}
}

//CORS wraps the given handler permitting the cross origin requests from
//any origin and answers the preflight requests
func CORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
