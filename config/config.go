// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package config has the configurations required by the service like
//the http port, timeouts, upload limits and the discovery agent address.
//It also has the app context passed to the api request handlers
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

//Following constants have the names of the environment variables configuring the service
const (
	//PortEnv is the env to set the port on which the service listens
	PortEnv = "PORT"
	//ServiceNameEnv is the env to set the name with which the service announces itself
	ServiceNameEnv = "SERVICE_NAME"
	//MaxUploadSizeEnv is the env to set the maximum upload request size in Mb
	MaxUploadSizeEnv = "MAX_UPLOAD_SIZE_MB"
	//RequestTimeoutEnv is the env to set the timeout of the data management api requests
	RequestTimeoutEnv = "REQUEST_TIMEOUT"
	//AnalysisTimeoutEnv is the env to set the timeout of the analysis api requests
	AnalysisTimeoutEnv = "ANALYSIS_TIMEOUT"
	//ResponseTimeoutEnv is the env to set the deadline for writing out an api response
	ResponseTimeoutEnv = "RESPONSE_TIMEOUT"
	//EnableDiscoveryEnv is the env to enable the registration with the discovery agent
	EnableDiscoveryEnv = "ENABLE_DISCOVERY"
	//DiscoveryURLEnv is the env to set the address of the discovery agent
	DiscoveryURLEnv = "DISCOVERY_URL"
	//DiscoveryTokenEnv is the env to set the access token for the discovery agent
	DiscoveryTokenEnv = "DISCOVERY_TOKEN"
)

var (
	//Port is the port on which the http server of the service listens
	Port = "8080"
	//ServiceName is the name with which the service announces itself
	ServiceName = "openoa-api"
	//MaxUploadSize is the maximum size in bytes of an upload request the service accepts
	MaxUploadSize = int64(64) << 20
	//RequestTimeout is the execution deadline for the data management api requests
	RequestTimeout = 20 * time.Second
	//AnalysisTimeout is the execution deadline for the analysis api requests
	AnalysisTimeout = 2 * time.Minute
	//ResponseTimeout is the deadline for writing out an api response.
	//It has to stay above AnalysisTimeout for the analysis responses to get out
	ResponseTimeout = 3 * time.Minute
	//EnableDiscovery indicates whether the service has to register itself with the discovery agent
	EnableDiscovery = false
	//DiscoveryURL is the address of the discovery agent with which the service registers itself
	DiscoveryURL = ""
	//DiscoveryToken is the access token for the discovery agent
	DiscoveryToken = ""
)

//LoadEnv loads the service configuration from the environment variables.
//Malformed values are reported and the defaults are kept
func LoadEnv() {
	if v := os.Getenv(PortEnv); len(v) != 0 {
		Port = v
	}
	if v := os.Getenv(ServiceNameEnv); len(v) != 0 {
		ServiceName = v
	}
	if v := os.Getenv(MaxUploadSizeEnv); len(v) != 0 {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil || mb <= 0 {
			//malformed upload size, keeping the default
			log.Println("invalid", MaxUploadSizeEnv, v, "keeping the default")
		} else {
			MaxUploadSize = mb << 20
		}
	}
	if v := os.Getenv(RequestTimeoutEnv); len(v) != 0 {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			//malformed timeout, keeping the default
			log.Println("invalid", RequestTimeoutEnv, v, "keeping the default")
		} else {
			RequestTimeout = d
		}
	}
	if v := os.Getenv(AnalysisTimeoutEnv); len(v) != 0 {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			//malformed timeout, keeping the default
			log.Println("invalid", AnalysisTimeoutEnv, v, "keeping the default")
		} else {
			AnalysisTimeout = d
		}
	}
	if v := os.Getenv(ResponseTimeoutEnv); len(v) != 0 {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			//malformed timeout, keeping the default
			log.Println("invalid", ResponseTimeoutEnv, v, "keeping the default")
		} else {
			ResponseTimeout = d
		}
	}
	if v := os.Getenv(EnableDiscoveryEnv); len(v) != 0 {
		EnableDiscovery = v == "true" || v == "1"
	}
	if v := os.Getenv(DiscoveryURLEnv); len(v) != 0 {
		DiscoveryURL = v
	}
	if v := os.Getenv(DiscoveryTokenEnv); len(v) != 0 {
		DiscoveryToken = v
	}
}

func init() {
	LoadEnv()
}
