package zk

import (
	"path"
	"strings"
	"sync"
	"time"

	log "github.com/funkygao/log4go"
	"github.com/samuel/go-zookeeper/zk"
)

// Ensemble is a lazily connected client of the ZooKeeper ensemble that
// coordinates a single kafka cluster, rooted at the cluster chroot.
type Ensemble struct {
	conf *Config

	mu   sync.Mutex
	conn *zk.Conn
	evt  <-chan zk.Event
}

// New creates an Ensemble client. The connection is established on
// first use.
func New(config *Config) *Ensemble {
	return &Ensemble{conf: config}
}

func (this *Ensemble) ZkAddrs() string {
	return this.conf.ZkAddrs
}

func (this *Ensemble) ZkAddrList() []string {
	return strings.Split(this.conf.ZkAddrs, ",")
}

// ZkConnect renders the address kafka itself must be configured with:
// ensemble addresses plus the cluster chroot.
func (this *Ensemble) ZkConnect() string {
	return this.conf.ZkAddrs + this.conf.Chroot
}

func (this *Ensemble) Close() {
	this.mu.Lock()
	defer this.mu.Unlock()

	if this.conn != nil {
		this.conn.Close()
		this.conn = nil
	}
}

func (this *Ensemble) Connect() error {
	this.mu.Lock()
	defer this.mu.Unlock()

	if this.conn != nil {
		log.Warn("zk %s already connected", this.conf.ZkAddrs)
		return ErrDupConnect
	}

	return this.connectLocked()
}

func (this *Ensemble) connectLocked() (err error) {
	for i := 1; i <= 3; i++ {
		log.Debug("zk #%d try connecting %s", i, this.conf.ZkAddrs)
		this.conn, this.evt, err = zk.Connect(this.ZkAddrList(), this.conf.Timeout)
		if err == nil {
			return nil
		}

		backoff := time.Millisecond * 200 * time.Duration(i)
		log.Debug("zk #%d connect backoff %s", i, backoff)
		time.Sleep(backoff)
	}

	return err
}

// connectIfNeeded is safe for concurrent callers: the api handlers and
// the supervision loop share one ensemble client.
func (this *Ensemble) connectIfNeeded() error {
	this.mu.Lock()
	defer this.mu.Unlock()

	if this.conn != nil {
		return nil
	}
	return this.connectLocked()
}

// Children lists a znode's child names. A missing parent yields an
// empty list, never an error.
func (this *Ensemble) Children(path string) ([]string, error) {
	if err := this.connectIfNeeded(); err != nil {
		return nil, err
	}

	children, _, err := this.conn.Children(path)
	if err == zk.ErrNoNode {
		return nil, nil
	}
	return children, err
}

// Get reads a znode's value. Absence surfaces as zk.ErrNoNode.
func (this *Ensemble) Get(path string) ([]byte, error) {
	if err := this.connectIfNeeded(); err != nil {
		return nil, err
	}

	data, _, err := this.conn.Get(path)
	return data, err
}

// Exists probes a znode without reading it.
func (this *Ensemble) Exists(path string) (bool, error) {
	if err := this.connectIfNeeded(); err != nil {
		return false, err
	}

	present, _, err := this.conn.Exists(path)
	if err == zk.ErrNoNode {
		return false, nil
	}
	return present, err
}

func (this *Ensemble) createZnode(path string, data []byte) error {
	if err := this.connectIfNeeded(); err != nil {
		return err
	}

	acl := zk.WorldACL(zk.PermAll)
	_, err := this.conn.Create(path, data, 0, acl)
	return err
}

// createSequentialZnode creates path- suffixed with a monotonic
// sequence number, returning the actual znode path.
func (this *Ensemble) createSequentialZnode(path string, data []byte) (string, error) {
	if err := this.connectIfNeeded(); err != nil {
		return "", err
	}

	acl := zk.WorldACL(zk.PermAll)
	return this.conn.Create(path, data, zk.FlagSequence, acl)
}

func (this *Ensemble) deleteZnode(path string) error {
	if err := this.connectIfNeeded(); err != nil {
		return err
	}

	return this.conn.Delete(path, -1)
}

func (this *Ensemble) mkdirRecursive(node string) (err error) {
	parent := path.Dir(node)
	if parent != "/" {
		if err = this.mkdirRecursive(parent); err != nil {
			return
		}
	}

	err = this.createZnode(node, nil)
	if err == zk.ErrNodeExists {
		err = nil
	}
	return
}
