package zk

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// BrokerZnode is the registration record a live kafka broker keeps
// under /brokers/ids. Created by the broker itself with ephemeral
// semantics; we only ever read it.
type BrokerZnode struct {
	Id        string   `json:"-"`
	JmxPort   int      `json:"jmx_port"`
	Timestamp string   `json:"timestamp"`
	Endpoints []string `json:"endpoints"`
	Host      string   `json:"host"`
	Port      int      `json:"port"`
	Version   int      `json:"version"`
}

func newBrokerZnode(id string) *BrokerZnode {
	return &BrokerZnode{Id: id}
}

func (b *BrokerZnode) from(zkData []byte) error {
	return json.Unmarshal(zkData, b)
}

func (b BrokerZnode) Addr() string {
	return fmt.Sprintf("%s:%d", b.Host, b.Port)
}

func (b BrokerZnode) String() string {
	return fmt.Sprintf("%s:%d ver:%d uptime:%s",
		b.Host, b.Port,
		b.Version,
		time.Since(TimestampToTime(b.Timestamp)))
}

// PartitionState mirrors the /brokers/topics/{t}/partitions/{p}/state
// znode: who leads the partition and which replicas are in sync.
type PartitionState struct {
	Leader int   `json:"leader"`
	Isr    []int `json:"isr"`
}

func (s *PartitionState) from(zkData []byte) error {
	return json.Unmarshal(zkData, s)
}

// LeaderId returns the leader as a broker id string, comparable with
// /brokers/ids child names.
func (s *PartitionState) LeaderId() string {
	return strconv.Itoa(s.Leader)
}

func (s *PartitionState) IsrIds() []string {
	r := make([]string, 0, len(s.Isr))
	for _, id := range s.Isr {
		r = append(r, strconv.Itoa(id))
	}
	return r
}

func (s PartitionState) String() string {
	b, _ := json.Marshal(s)
	return string(b)
}
