package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funkygao/assert"
)

const propsTemplate = `# kafka broker settings
broker.id=0

log.dirs=/data/kafka
unclean.leader.election.enable=false
zookeeper.connect=localhost:2181
`

func newTestProperties(t *testing.T) *KafkaProperties {
	dir, err := ioutil.TempDir("", "bubuku")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	template := filepath.Join(dir, "server.properties.template")
	if err = ioutil.WriteFile(template, []byte(propsTemplate), 0644); err != nil {
		t.Fatal(err)
	}

	props, err := NewKafkaProperties(template, filepath.Join(dir, "server.properties"))
	if err != nil {
		t.Fatal(err)
	}
	return props
}

func TestKafkaPropertiesGetSetDelete(t *testing.T) {
	props := newTestProperties(t)

	assert.Equal(t, "0", props.GetProperty("broker.id"))
	assert.Equal(t, "false", props.GetProperty("unclean.leader.election.enable"))
	assert.Equal(t, "", props.GetProperty("reserved.broker.max.id"))

	props.SetProperty("broker.id", "16777217")
	assert.Equal(t, "16777217", props.GetProperty("broker.id"))

	props.SetProperty("reserved.broker.max.id", "50331649")
	assert.Equal(t, "50331649", props.GetProperty("reserved.broker.max.id"))

	props.DeleteProperty("broker.id")
	assert.Equal(t, "", props.GetProperty("broker.id"))

	// setting after delete resurrects the key
	props.SetProperty("broker.id", "5")
	assert.Equal(t, "5", props.GetProperty("broker.id"))
}

func TestKafkaPropertiesDump(t *testing.T) {
	props := newTestProperties(t)

	props.SetProperty("zookeeper.connect", "zk1:2181,zk2:2181/kafka-prod")
	props.DeleteProperty("broker.id")
	props.SetProperty("reserved.broker.max.id", "50331649")
	assert.Equal(t, nil, props.Dump())

	data, err := ioutil.ReadFile(props.SettingsFile())
	assert.Equal(t, nil, err)
	dumped := string(data)
	t.Logf("%s", dumped)

	assert.Equal(t, true, strings.HasPrefix(dumped, "# kafka broker settings\n"))
	assert.Equal(t, false, strings.Contains(dumped, "broker.id=0"))
	assert.Equal(t, true, strings.Contains(dumped, "zookeeper.connect=zk1:2181,zk2:2181/kafka-prod"))
	assert.Equal(t, true, strings.Contains(dumped, "reserved.broker.max.id=50331649"))

	// the dumped file must itself be loadable
	reread, err := NewKafkaProperties(props.SettingsFile(), props.SettingsFile())
	assert.Equal(t, nil, err)
	assert.Equal(t, "", reread.GetProperty("broker.id"))
	assert.Equal(t, "/data/kafka", reread.GetProperty("log.dirs"))
}
