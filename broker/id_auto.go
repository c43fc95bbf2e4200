package broker

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mlogix/bubuku/config"
)

var brokerIdLine = regexp.MustCompile(`broker\.id=(\d+)`)

// AutoAssignId delegates id assignment to the kafka process: on first
// boot kafka picks an id and persists it into meta.properties inside
// its log dir, where we discover it afterwards.
type AutoAssignId struct {
	reg   Registry
	props *config.KafkaProperties
}

func NewAutoAssignId(reg Registry, props *config.KafkaProperties) *AutoAssignId {
	return &AutoAssignId{reg: reg, props: props}
}

// BrokerId is never known in advance under this policy.
func (this *AutoAssignId) BrokerId() string {
	return ""
}

func (this *AutoAssignId) IsRegistered() (bool, error) {
	logDirs := this.props.GetProperty("log.dirs")
	if logDirs == "" {
		return false, nil
	}

	// kafka writes meta.properties into every log dir, the first is enough
	metaFile := filepath.Join(strings.Split(logDirs, ",")[0], "meta.properties")
	data, err := ioutil.ReadFile(metaFile)
	if err != nil {
		if os.IsNotExist(err) {
			// broker has not finished its first boot yet
			return false, nil
		}
		return false, err
	}

	m := brokerIdLine.FindSubmatch(data)
	if m == nil {
		return false, nil
	}

	return this.reg.BrokerRegistered(string(m[1]))
}
