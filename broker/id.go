// Package broker implements the kafka broker lifecycle controller and
// the broker identity resolvers.
package broker

import (
	"fmt"
	"time"

	"github.com/mlogix/bubuku/cloud"
	"github.com/mlogix/bubuku/config"
)

// Registry answers whether a broker id currently holds a registration
// znode in the coordination tree.
type Registry interface {
	BrokerRegistered(id string) (bool, error)
}

// IdResolver yields the identity the supervised broker runs under.
// BrokerId returns "" when assignment is delegated to the kafka process
// itself.
type IdResolver interface {
	BrokerId() string
	IsRegistered() (bool, error)
}

// NewResolver builds the resolver for the configured id policy.
func NewResolver(policy string, reg Registry, props *config.KafkaProperties) (IdResolver, error) {
	switch policy {
	case "ip":
		ip, err := cloud.PrivateIPv4()
		if err != nil {
			return nil, err
		}
		return NewAddressId(reg, ip, props)

	case "auto":
		return NewAutoAssignId(reg, props), nil

	default:
		return nil, fmt.Errorf("unsupported broker id policy: %s", policy)
	}
}

// pollInterval is the cadence of all registration waits. A var so
// tests can tighten it.
var pollInterval = time.Second

// WaitForAbsence blocks until the resolver's id has left the cluster
// membership view. No upper bound: the caller decides how long a
// stopped broker may linger.
func WaitForAbsence(r IdResolver) error {
	for {
		registered, err := r.IsRegistered()
		if err != nil {
			return err
		}
		if !registered {
			return nil
		}

		time.Sleep(pollInterval)
	}
}

// WaitForPresence polls until the resolver's id registers, reporting
// false once timeout elapses without a sighting.
func WaitForPresence(r IdResolver, timeout time.Duration) (bool, error) {
	start := time.Now()
	for {
		registered, err := r.IsRegistered()
		if err != nil {
			return false, err
		}
		if registered {
			return true, nil
		}
		if time.Since(start) > timeout {
			return false, nil
		}

		time.Sleep(pollInterval)
	}
}
