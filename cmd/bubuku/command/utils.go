package command

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/mlogix/bubuku/broker"
	"github.com/mlogix/bubuku/config"
	"github.com/mlogix/bubuku/zk"
)

var errNoLocalId = errors.New("cannot determine local broker id under this policy, pass -broker")

func openEnsemble() *zk.Ensemble {
	return zk.New(zk.DefaultConfig(config.ZkAddrs(), config.ZkChroot()))
}

// localBrokerId derives the id of the broker running on this host,
// using a throwaway properties copy so the live settings file stays
// untouched.
func localBrokerId(ens *zk.Ensemble) (string, error) {
	props, err := config.NewKafkaProperties(config.SettingsTemplate(),
		filepath.Join(os.TempDir(), "bubuku.tmp.properties"))
	if err != nil {
		return "", err
	}

	resolver, err := broker.NewResolver(config.IdPolicy(), ens, props)
	if err != nil {
		return "", err
	}

	id := resolver.BrokerId()
	if id == "" {
		return "", errNoLocalId
	}
	return id, nil
}
