// Package cloud discovers instance facts from the environment the
// agent runs in.
package cloud

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/funkygao/gorequest"
	log "github.com/funkygao/log4go"
)

// EC2 compatible metadata endpoint, also served by most private clouds.
const localIPv4URL = "http://169.254.169.254/latest/meta-data/local-ipv4"

var ErrNoPrivateAddress = errors.New("no private ipv4 address on this host")

// PrivateIPv4 returns this host's private address, asking the cloud
// metadata service first and falling back to an interface scan for
// bare metal boxes.
func PrivateIPv4() (string, error) {
	if ip, err := metadataIPv4(); err == nil {
		return ip, nil
	} else {
		log.Debug("metadata service: %v, falling back to interface scan", err)
	}

	return interfaceIPv4()
}

func metadataIPv4() (string, error) {
	request := gorequest.New().Timeout(time.Second * 2)
	resp, body, errs := request.Get(localIPv4URL).End()
	if len(errs) > 0 {
		return "", errs[0]
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("metadata service: " + resp.Status)
	}

	return strings.TrimSpace(body), nil
}

func interfaceIPv4() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok || !ipnet.IP.IsGlobalUnicast() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil && ip4.IsPrivate() {
			return ip4.String(), nil
		}
	}
	return "", ErrNoPrivateAddress
}
