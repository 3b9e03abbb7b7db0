// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//openoa-Assignment runs the wind plant analysis api service. The service
//keeps the uploaded and the bundled example datasets in an in-memory store
//and runs the monte carlo analyses of the engine over them on request
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/swaralipi04/openoa-Assignment/config"
	"github.com/swaralipi04/openoa-Assignment/discovery"
	"github.com/swaralipi04/openoa-Assignment/engine"
	"github.com/swaralipi04/openoa-Assignment/exampledata"
	"github.com/swaralipi04/openoa-Assignment/plant"
	"github.com/swaralipi04/openoa-Assignment/routes"
)

func main() {
	/*
	 * We will build the logger, the store, the engine and the example loader
	 * Then we will mount the api routes
	 * Then we will register with the discovery agent if enabled
	 * Then we will start the http server of the service
	 * Finally we will wait for a signal to shut the service down
	 */

	logger := config.NewLogger()
	logger.Info("Starting the", config.ServiceName, "service")

	store := plant.NewStore()
	eng := engine.New(engine.WithLogger(logger))
	appCtx := config.NewAppContext(logger, store, eng, exampledata.NewLoader())

	//mounting the api routes
	mux := http.NewServeMux()
	routes.InitRoutes(mux, appCtx)

	//registering with the discovery agent if enabled
	if config.EnableDiscovery {
		reg, err := discovery.Register(logger)
		if err != nil {
			//the service stays up without the discovery registration
			logger.Error("error while registering with the discovery agent", err.Error())
		} else {
			defer func() {
				if err := reg.Deregister(); err != nil {
					logger.Error("error while deregistering from the discovery agent", err.Error())
				}
			}()
		}
	}

	//starting the http server
	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           routes.CORS(mux),
		ReadHeaderTimeout: config.RequestTimeout,
		WriteTimeout:      config.ResponseTimeout,
	}
	go func() {
		logger.Info("The", config.ServiceName, "service is listening on the port", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("error while running the http server", err.Error())
		}
	}()

	//waiting for a signal to shut the service down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting the", config.ServiceName, "service down")

	ctx, cancel := context.WithTimeout(context.Background(), config.ResponseTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error while shutting the http server down", err.Error())
	}
}
