package broker

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/funkygao/assert"

	"github.com/mlogix/bubuku/config"
)

type fakeRegistry struct {
	registered map[string]bool
	err        error
}

func (this *fakeRegistry) BrokerRegistered(id string) (bool, error) {
	return this.registered[id], this.err
}

func testProps(t *testing.T, template string) *config.KafkaProperties {
	dir, err := ioutil.TempDir("", "bubuku-broker")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	templateFile := filepath.Join(dir, "server.properties.template")
	if err = ioutil.WriteFile(templateFile, []byte(template), 0644); err != nil {
		t.Fatal(err)
	}

	props, err := config.NewKafkaProperties(templateFile, filepath.Join(dir, "server.properties"))
	if err != nil {
		t.Fatal(err)
	}
	return props
}

func TestDeriveBrokerId(t *testing.T) {
	fixtures := assert.Fixtures{
		assert.Fixture{Input: "10.0.0.1", Expected: "16777217"},
		assert.Fixture{Input: "10.255.255.255", Expected: "33554431"},
		assert.Fixture{Input: "192.168.1.1", Expected: "44564737"},
		assert.Fixture{Input: "172.16.0.1", Expected: "51380225"},
		assert.Fixture{Input: "172.31.255.255", Expected: "52428799"},
	}

	for _, f := range fixtures {
		id, err := deriveBrokerId(f.Input.(string))
		assert.Equal(t, nil, err)
		assert.Equal(t, f.Expected, id)

		// deterministic across calls
		again, _ := deriveBrokerId(f.Input.(string))
		assert.Equal(t, id, again)
	}
}

func TestDeriveBrokerIdDisjointRanges(t *testing.T) {
	seen := make(map[string]string)
	for _, ip := range []string{"10.16.0.1", "192.168.0.1", "172.16.0.1", "10.16.0.2"} {
		id, err := deriveBrokerId(ip)
		assert.Equal(t, nil, err)
		if prior, present := seen[id]; present {
			t.Fatalf("id %s derived for both %s and %s", id, prior, ip)
		}
		seen[id] = ip
	}
}

func TestDeriveBrokerIdRejectsNonPrivate(t *testing.T) {
	for _, ip := range []string{
		"8.8.8.8",
		"11.0.0.1",
		"172.32.0.1",
		"172.15.0.1",
		"192.167.1.1",
		"256.1.1.1",
		"10.0.0",
		"10.0.0.0.1",
		"not.an.ip.addr",
		"",
	} {
		_, err := deriveBrokerId(ip)
		assert.Equal(t, ErrNotPrivateAddress, err)
	}
}

func TestNewAddressId(t *testing.T) {
	props := testProps(t, "log.dirs=/data/kafka\n")
	reg := &fakeRegistry{registered: map[string]bool{"16777217": true}}

	resolver, err := NewAddressId(reg, "10.0.0.1", props)
	assert.Equal(t, nil, err)
	assert.Equal(t, "16777217", resolver.BrokerId())
	assert.Equal(t, "50331649", props.GetProperty("reserved.broker.max.id"))

	registered, err := resolver.IsRegistered()
	assert.Equal(t, nil, err)
	assert.Equal(t, true, registered)
}

func TestNewAddressIdFailureMutatesNothing(t *testing.T) {
	props := testProps(t, "log.dirs=/data/kafka\n")

	_, err := NewAddressId(&fakeRegistry{}, "8.8.8.8", props)
	assert.Equal(t, ErrNotPrivateAddress, err)
	assert.Equal(t, "", props.GetProperty("reserved.broker.max.id"))
}

func TestAutoAssignId(t *testing.T) {
	logDir, err := ioutil.TempDir("", "bubuku-logdir")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(logDir) })

	props := testProps(t, "log.dirs="+logDir+",/data/kafka2\n")
	reg := &fakeRegistry{registered: map[string]bool{"1001": true}}
	resolver := NewAutoAssignId(reg, props)

	assert.Equal(t, "", resolver.BrokerId())

	// kafka has not booted yet, no meta.properties
	registered, err := resolver.IsRegistered()
	assert.Equal(t, nil, err)
	assert.Equal(t, false, registered)

	// meta.properties present but no broker.id line yet
	metaFile := filepath.Join(logDir, "meta.properties")
	ioutil.WriteFile(metaFile, []byte("version=0\n"), 0644)
	registered, _ = resolver.IsRegistered()
	assert.Equal(t, false, registered)

	// broker self-assigned an id known to the coordination tree
	ioutil.WriteFile(metaFile, []byte("version=0\nbroker.id=1001\n"), 0644)
	registered, err = resolver.IsRegistered()
	assert.Equal(t, nil, err)
	assert.Equal(t, true, registered)

	// id present on disk but its registration znode is gone
	ioutil.WriteFile(metaFile, []byte("version=0\nbroker.id=1002\n"), 0644)
	registered, _ = resolver.IsRegistered()
	assert.Equal(t, false, registered)
}

type fakeResolver struct {
	id         string
	registered bool
	err        error
}

func (this *fakeResolver) BrokerId() string {
	return this.id
}

func (this *fakeResolver) IsRegistered() (bool, error) {
	return this.registered, this.err
}

func TestWaitForPresenceTimesOut(t *testing.T) {
	defer func(d time.Duration) { pollInterval = d }(pollInterval)
	pollInterval = time.Millisecond * 10

	r := &fakeResolver{id: "1", registered: false}
	start := time.Now()
	registered, err := WaitForPresence(r, time.Millisecond*100)
	elapsed := time.Since(start)

	assert.Equal(t, nil, err)
	assert.Equal(t, false, registered)
	if elapsed < time.Millisecond*100 || elapsed > time.Millisecond*500 {
		t.Fatalf("timeout not honored, elapsed %s", elapsed)
	}
}

// flipResolver flips its registration answer after a few polls.
type flipResolver struct {
	registered bool
	flipAfter  int
	polls      int
}

func (this *flipResolver) BrokerId() string {
	return "1"
}

func (this *flipResolver) IsRegistered() (bool, error) {
	this.polls++
	if this.polls > this.flipAfter {
		return !this.registered, nil
	}
	return this.registered, nil
}

func TestWaitForPresenceSeesRegistration(t *testing.T) {
	defer func(d time.Duration) { pollInterval = d }(pollInterval)
	pollInterval = time.Millisecond * 5

	r := &flipResolver{registered: false, flipAfter: 3}
	registered, err := WaitForPresence(r, time.Second*5)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, registered)
	assert.Equal(t, 4, r.polls)
}

func TestWaitForAbsence(t *testing.T) {
	defer func(d time.Duration) { pollInterval = d }(pollInterval)
	pollInterval = time.Millisecond * 5

	r := &flipResolver{registered: true, flipAfter: 3}
	assert.Equal(t, nil, WaitForAbsence(r))
	assert.Equal(t, 4, r.polls)
}
