package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path/filepath"

	jsconf "github.com/funkygao/jsconf"
)

var conf *config

type config struct {
	logLevel string

	kafkaHome        string
	settingsTemplate string
	settingsFile     string

	idPolicy string

	zkAddrs  string
	zkChroot string

	healthPort int
}

func ensureLoaded() {
	if conf == nil {
		panic("call LoadConfig before this")
	}
}

func LogLevel() string {
	ensureLoaded()
	return conf.logLevel
}

// KafkaHome is the kafka installation dir holding bin/ and config/.
func KafkaHome() string {
	ensureLoaded()
	return conf.kafkaHome
}

// SettingsTemplate is the pristine server.properties the agent rewrites
// on every start attempt.
func SettingsTemplate() string {
	ensureLoaded()
	return conf.settingsTemplate
}

// SettingsFile is the server.properties path the kafka binary consumes.
func SettingsFile() string {
	ensureLoaded()
	return conf.settingsFile
}

// IdPolicy selects how the broker gets its id: "ip" derives it from the
// host private address, "auto" lets kafka assign one itself.
func IdPolicy() string {
	ensureLoaded()
	return conf.idPolicy
}

func ZkAddrs() string {
	ensureLoaded()
	return conf.zkAddrs
}

func ZkChroot() string {
	ensureLoaded()
	return conf.zkChroot
}

// HealthPort is where the agent serves its HTTP api.
func HealthPort() int {
	ensureLoaded()
	return conf.healthPort
}

func LoadConfig(fn string) {
	cf, err := jsconf.Load(fn)
	if err != nil {
		panic(err)
	}

	conf = new(config)
	conf.logLevel = cf.String("loglevel", "info")
	conf.kafkaHome = cf.String("kafka_home", "/opt/kafka")
	conf.settingsTemplate = cf.String("settings_template",
		filepath.Join(conf.kafkaHome, "config", "server.properties.template"))
	conf.settingsFile = cf.String("settings_file",
		filepath.Join(conf.kafkaHome, "config", "server.properties"))
	conf.idPolicy = cf.String("id_policy", "ip")
	conf.zkAddrs = cf.String("zk", "localhost:2181")
	conf.zkChroot = cf.String("zk_chroot", "")
	conf.healthPort = cf.Int("health_port", 8888)
}

// LoadFromHome loads ~/.bubuku.cf, writing a default skeleton on first
// run so a fresh box is usable out of the box.
func LoadFromHome() {
	const defaultConfig = `
{
    loglevel: "info"
    kafka_home: "/opt/kafka"
    id_policy: "ip"
    zk: "localhost:2181"
    zk_chroot: ""
    health_port: 8888
}
`
	var configFile string
	if usr, err := user.Current(); err == nil {
		configFile = filepath.Join(usr.HomeDir, ".bubuku.cf")
	} else {
		panic(err)
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = ioutil.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
			panic(err)
		}
		fmt.Fprintf(os.Stderr, "%s created from defaults\n", configFile)
	}

	LoadConfig(configFile)
}
