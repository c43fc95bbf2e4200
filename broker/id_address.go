package broker

import (
	"errors"
	"strconv"
	"strings"

	log "github.com/funkygao/log4go"

	"github.com/mlogix/bubuku/config"
)

var ErrNotPrivateAddress = errors.New("broker id from address works only for rfc1918 private addresses")

// reservedMaxId caps kafka's own auto-assigned id range so it never
// collides with the address-derived space: three discriminator buckets
// of 2^24 addresses each.
const reservedMaxId = 3*256*256*256 + 1

// AddressId derives a stable broker id from the host's private ipv4
// address, so the same box always rejoins the cluster under the same
// identity with no allocation round trip.
type AddressId struct {
	reg Registry
	id  string
}

func NewAddressId(reg Registry, ip string, props *config.KafkaProperties) (*AddressId, error) {
	id, err := deriveBrokerId(ip)
	if err != nil {
		// leave the properties untouched on a failed derivation
		return nil, err
	}

	props.SetProperty("reserved.broker.max.id", strconv.Itoa(reservedMaxId))
	log.Info("built broker id %s from ip %s", id, ip)

	return &AddressId{reg: reg, id: id}, nil
}

func (this *AddressId) BrokerId() string {
	return this.id
}

func (this *AddressId) IsRegistered() (bool, error) {
	return this.reg.BrokerRegistered(this.id)
}

// deriveBrokerId folds a private ipv4 address into a positive int that
// survives restarts. The first octet is remapped to a small bucket
// discriminator, keeping the three rfc1918 blocks disjoint and the
// result clear of the 24-bit host space.
func deriveBrokerId(ip string) (string, error) {
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return "", ErrNotPrivateAddress
	}

	addr := make([]int, 4)
	for i, octet := range octets {
		n, err := strconv.Atoi(octet)
		if err != nil || n < 0 || n > 255 {
			return "", ErrNotPrivateAddress
		}
		addr[i] = n
	}

	switch {
	case addr[0] == 10:
		addr[0] = 1
	case addr[0] == 192 && addr[1] == 168:
		addr[0] = 2
	case addr[0] == 172 && addr[1]&0xf0 == 16:
		addr[0] = 3
	default:
		return "", ErrNotPrivateAddress
	}

	id := 0
	for _, octet := range addr {
		id = id*256 + octet
	}
	return strconv.Itoa(id), nil
}
