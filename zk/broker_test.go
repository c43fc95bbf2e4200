package zk

import (
	"testing"

	"github.com/funkygao/assert"
)

func TestPartitionStateFrom(t *testing.T) {
	state := new(PartitionState)
	err := state.from([]byte(`{"controller_epoch":12,"leader":5,"version":1,"leader_epoch":3,"isr":[5,16777217]}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, 5, state.Leader)
	assert.Equal(t, "5", state.LeaderId())
	assert.Equal(t, 2, len(state.Isr))
	assert.Equal(t, "16777217", state.IsrIds()[1])
}

func TestPartitionStateFromGarbage(t *testing.T) {
	state := new(PartitionState)
	err := state.from([]byte(`not json at all`))
	assert.Equal(t, true, err != nil)
}

func TestBrokerZnodeFrom(t *testing.T) {
	b := newBrokerZnode("16777217")
	err := b.from([]byte(`{"jmx_port":-1,"timestamp":"1449108222694","endpoints":["PLAINTEXT://10.0.0.1:9092"],"host":"10.0.0.1","port":9092,"version":2}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, "16777217", b.Id)
	assert.Equal(t, "10.0.0.1:9092", b.Addr())
	assert.Equal(t, 2, b.Version)
}
