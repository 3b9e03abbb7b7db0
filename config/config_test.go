// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"
	"time"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv(PortEnv, "9090")
	t.Setenv(ServiceNameEnv, "openoa-test")
	t.Setenv(MaxUploadSizeEnv, "8")
	t.Setenv(RequestTimeoutEnv, "5s")
	t.Setenv(AnalysisTimeoutEnv, "45s")
	t.Setenv(ResponseTimeoutEnv, "90s")
	t.Setenv(EnableDiscoveryEnv, "true")
	t.Setenv(DiscoveryURLEnv, "consul:8500")
	t.Setenv(DiscoveryTokenEnv, "secret")

	LoadEnv()
	defer resetDefaults()

	if Port != "9090" {
		t.Error("expected the port 9090 got", Port)
	}
	if ServiceName != "openoa-test" {
		t.Error("expected the service name openoa-test got", ServiceName)
	}
	if MaxUploadSize != int64(8)<<20 {
		t.Error("expected the upload size of 8Mb got", MaxUploadSize)
	}
	if RequestTimeout != 5*time.Second {
		t.Error("expected the request timeout of 5s got", RequestTimeout)
	}
	if AnalysisTimeout != 45*time.Second {
		t.Error("expected the analysis timeout of 45s got", AnalysisTimeout)
	}
	if ResponseTimeout != 90*time.Second {
		t.Error("expected the response timeout of 90s got", ResponseTimeout)
	}
	if !EnableDiscovery {
		t.Error("expected the discovery enabled")
	}
	if DiscoveryURL != "consul:8500" || DiscoveryToken != "secret" {
		t.Error("unexpected discovery agent config", DiscoveryURL, DiscoveryToken)
	}
}

func TestLoadEnvMalformed(t *testing.T) {
	t.Setenv(MaxUploadSizeEnv, "lots")
	t.Setenv(RequestTimeoutEnv, "-3s")
	t.Setenv(AnalysisTimeoutEnv, "soon")
	t.Setenv(ResponseTimeoutEnv, "later")

	LoadEnv()
	defer resetDefaults()

	if MaxUploadSize != int64(64)<<20 {
		t.Error("expected the default upload size kept got", MaxUploadSize)
	}
	if RequestTimeout != 20*time.Second {
		t.Error("expected the default request timeout kept got", RequestTimeout)
	}
	if AnalysisTimeout != 2*time.Minute {
		t.Error("expected the default analysis timeout kept got", AnalysisTimeout)
	}
	if ResponseTimeout != 3*time.Minute {
		t.Error("expected the default response timeout kept got", ResponseTimeout)
	}
}

//resetDefaults restores the configuration touched by a test
func resetDefaults() {
	Port = "8080"
	ServiceName = "openoa-api"
	MaxUploadSize = int64(64) << 20
	RequestTimeout = 20 * time.Second
	AnalysisTimeout = 2 * time.Minute
	ResponseTimeout = 3 * time.Minute
	EnableDiscovery = false
	DiscoveryURL = ""
	DiscoveryToken = ""
}
