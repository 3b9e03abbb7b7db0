// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//Package discovery has the registration of the service with the consul
//discovery agent. The registration is opt-in through the configuration
package discovery

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/consul/api"

	"github.com/swaralipi04/openoa-Assignment/config"
)

//healthEndpoint is the api polled by the discovery agent to check the service
const healthEndpoint = "/api/health"

//Registration is a live registration of the service with the discovery agent
type Registration struct {
	id     string
	client *api.Client
}

//Register announces the service to the discovery agent. The agent keeps
//polling the health api of the service to keep the registration alive
func Register(log config.Logger) (*Registration, error) {
	/*
	 * We will build the client for the discovery agent
	 * Then we will register the service along with its health check
	 */

	//building the client for the discovery agent
	cfg := api.DefaultConfig()
	if len(config.DiscoveryURL) != 0 {
		cfg.Address = config.DiscoveryURL
	}
	if len(config.DiscoveryToken) != 0 {
		cfg.Token = config.DiscoveryToken
	}
	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to the discovery agent: %w", err)
	}

	port, err := strconv.Atoi(config.Port)
	if err != nil {
		return nil, fmt.Errorf("couldn't register the non numeric port %q: %w", config.Port, err)
	}

	//registering the service along with its health check
	id := config.ServiceName + "-" + config.Port
	err = client.Agent().ServiceRegister(&api.AgentServiceRegistration{
		ID:   id,
		Name: config.ServiceName,
		Port: port,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://localhost:%s%s", config.Port, healthEndpoint),
			Interval: "30s",
			Timeout:  "5s",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't register with the discovery agent: %w", err)
	}

	log.Info("Registered the service with the discovery agent as", id)
	return &Registration{id: id, client: client}, nil
}

//Deregister removes the registration of the service from the discovery agent
func (r *Registration) Deregister() error {
	return r.client.Agent().ServiceDeregister(r.id)
}
