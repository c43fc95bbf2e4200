package zk

import (
	"sort"

	"github.com/samuel/go-zookeeper/zk"
)

// LiveBrokerIds lists the ids of brokers currently registered in the
// cluster, sorted for stable output.
func (this *Ensemble) LiveBrokerIds() ([]string, error) {
	ids, err := this.Children(this.rooted(BrokerIdsPath))
	if err != nil {
		return nil, err
	}

	sort.Strings(ids)
	return ids, nil
}

// BrokerRegistered probes the registration znode of a single broker id.
func (this *Ensemble) BrokerRegistered(id string) (bool, error) {
	return this.Exists(this.brokerPath(id))
}

// Broker reads the registration record of a live broker.
func (this *Ensemble) Broker(id string) (*BrokerZnode, error) {
	data, err := this.Get(this.brokerPath(id))
	if err != nil {
		return nil, err
	}

	b := newBrokerZnode(id)
	if err = b.from(data); err != nil {
		return nil, err
	}
	return b, nil
}

// BrokerList returns host:port of all live brokers, the shape kafka
// client libraries want.
func (this *Ensemble) BrokerList() ([]string, error) {
	ids, err := this.LiveBrokerIds()
	if err != nil {
		return nil, err
	}

	r := make([]string, 0, len(ids))
	for _, id := range ids {
		b, err := this.Broker(id)
		if err != nil {
			return nil, err
		}
		r = append(r, b.Addr())
	}
	return r, nil
}

func (this *Ensemble) Topics() ([]string, error) {
	topics, err := this.Children(this.rooted(BrokerTopicsPath))
	if err != nil {
		return nil, err
	}

	sort.Strings(topics)
	return topics, nil
}

func (this *Ensemble) Partitions(topic string) ([]string, error) {
	return this.Children(this.partitionsPath(topic))
}

// PartitionState reads the leader/isr record of one partition. A
// missing state znode yields nil: the partition is still initializing.
func (this *Ensemble) PartitionState(topic, partition string) (*PartitionState, error) {
	data, err := this.Get(this.partitionStatePath(topic, partition))
	if err == zk.ErrNoNode {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := new(PartitionState)
	if err = state.from(data); err != nil {
		return nil, err
	}
	return state, nil
}
