package zk

import (
	"fmt"
)

const (
	BrokerIdsPath    = "/brokers/ids"
	BrokerTopicsPath = "/brokers/topics"

	actionsRoot = "/bubuku/actions"

	// ActionGlobalQueue is the queue any free agent may consume from.
	ActionGlobalQueue = "global"
)

// rooted prefixes a kafka znode path with the cluster chroot.
func (this *Ensemble) rooted(path string) string {
	return this.conf.Chroot + path
}

func (this *Ensemble) brokerPath(id string) string {
	return fmt.Sprintf("%s/%s", this.rooted(BrokerIdsPath), id)
}

func (this *Ensemble) partitionsPath(topic string) string {
	return fmt.Sprintf("%s/%s/partitions", this.rooted(BrokerTopicsPath), topic)
}

func (this *Ensemble) partitionStatePath(topic, partition string) string {
	return fmt.Sprintf("%s/%s/state", this.partitionsPath(topic), partition)
}

// actionQueuePath locates the action queue of a single broker, or the
// global queue when queue is ActionGlobalQueue.
func (this *Ensemble) actionQueuePath(queue string) string {
	return fmt.Sprintf("%s%s/%s", this.conf.Chroot, actionsRoot, queue)
}

func (this *Ensemble) actionPath(queue, znode string) string {
	return fmt.Sprintf("%s/%s", this.actionQueuePath(queue), znode)
}
