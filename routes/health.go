// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package routes

/*
 * This file contains the health check api
 */

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/swaralipi04/openoa-Assignment/config"
)

//Health reports the liveness of the service along with the engine version
func Health(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	/*
	 * We will get the app context
	 * Then we will report the health along with the identity of the service
	 */

	//getting the app context
	appCtx := ctx.Value(AppContextKey).(*config.AppContext)
	appCtx.Log.Debug("Got a request to report the health of the service")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":         "healthy",
		"service":        config.ServiceName,
		"engine_version": appCtx.Engine.Version(),
	})
}

func init() {
	AddRoutes(
		Route{
			Version:     "v1",
			Pattern:     "/health",
			HandlerFunc: Health,
		},
	)
}
