package config

import (
	"testing"

	"github.com/funkygao/assert"
)

func TestLoadConfig(t *testing.T) {
	LoadConfig("../etc/bubuku.cf")
	t.Logf("%+v", conf)
	assert.Equal(t, "debug", LogLevel())
	assert.Equal(t, "/opt/kafka", KafkaHome())
	assert.Equal(t, "ip", IdPolicy())
	assert.Equal(t, "/kafka-prod", ZkChroot())
	assert.Equal(t, 8888, HealthPort())
	assert.Equal(t, "10.2.1.10:2181,10.2.1.11:2181,10.2.1.12:2181", ZkAddrs())
}
