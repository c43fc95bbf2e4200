package zk

import (
	"testing"

	"github.com/funkygao/assert"
)

func TestRootedPaths(t *testing.T) {
	ens := New(DefaultConfig("localhost:2181", ""))
	assert.Equal(t, "/brokers/ids/1", ens.brokerPath("1"))
	assert.Equal(t, "/brokers/topics/foo/partitions", ens.partitionsPath("foo"))
	assert.Equal(t, "/brokers/topics/foo/partitions/0/state", ens.partitionStatePath("foo", "0"))
	assert.Equal(t, "/bubuku/actions/global", ens.actionQueuePath(ActionGlobalQueue))
}

func TestRootedPathsWithChroot(t *testing.T) {
	ens := New(DefaultConfig("localhost:2181", "/kafka-prod"))
	assert.Equal(t, "/kafka-prod/brokers/ids/16777217", ens.brokerPath("16777217"))
	assert.Equal(t, "/kafka-prod/brokers/topics/foo/partitions/2/state", ens.partitionStatePath("foo", "2"))
	assert.Equal(t, "/kafka-prod/bubuku/actions/16777217", ens.actionQueuePath("16777217"))
	assert.Equal(t, "/kafka-prod/bubuku/actions/global/action-0000000001", ens.actionPath(ActionGlobalQueue, "action-0000000001"))
}

func TestZkConnect(t *testing.T) {
	ens := New(DefaultConfig("zk1:2181,zk2:2181", "/kafka-prod"))
	assert.Equal(t, "zk1:2181,zk2:2181/kafka-prod", ens.ZkConnect())
	assert.Equal(t, 2, len(ens.ZkAddrList()))
}
