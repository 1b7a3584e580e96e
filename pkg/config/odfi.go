// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"fmt"

	"github.com/nexus/paymentrails/pkg/model"
)

type ODFI struct {
	RoutingNumber string `yaml:"routing_number" mapstructure:"routing_number"`
	Gateway       Gateway
}

func (cfg ODFI) Validate() error {
	if cfg.RoutingNumber != "" {
		if _, err := model.NewRoutingNumber(cfg.RoutingNumber); err != nil {
			return err
		}
	}
	if err := cfg.Gateway.Validate(); err != nil {
		return fmt.Errorf("gateway: %v", err)
	}
	return nil
}

// Gateway overrides the immediate origin and destination of generated files.
// Without an Origin the ODFI's routing number is used.
type Gateway struct {
	Origin          string `yaml:"origin" mapstructure:"origin"`
	OriginName      string `yaml:"origin_name" mapstructure:"origin_name"`
	Destination     string `yaml:"destination" mapstructure:"destination"`
	DestinationName string `yaml:"destination_name" mapstructure:"destination_name"`
}

func (cfg Gateway) Validate() error {
	if cfg.Origin != "" {
		if _, err := model.NewRoutingNumber(cfg.Origin); err != nil {
			return fmt.Errorf("origin: %v", err)
		}
	}
	if cfg.Destination != "" {
		if _, err := model.NewRoutingNumber(cfg.Destination); err != nil {
			return fmt.Errorf("destination: %v", err)
		}
	}
	return nil
}
