package broker

import (
	"errors"
	"path/filepath"
	"time"

	log "github.com/funkygao/log4go"

	"github.com/mlogix/bubuku/config"
	"github.com/mlogix/bubuku/zk"
)

var (
	// ErrElectionInProgress refuses a start while some other membership
	// change still has partition leadership in flight. Retryable.
	ErrElectionInProgress = errors.New("leader election in progress, start refused")

	// ErrStartTimeout reports that kafka spawned but never registered
	// within the wait budget. The process is left running for manual
	// inspection.
	ErrStartTimeout = errors.New("kafka started but did not register in time")
)

const (
	defaultStartTimeout = time.Minute * 5

	// added to the wait budget after every registration timeout, a slow
	// but healthy startup should not be killed harder next time
	startTimeoutBackoff = time.Minute
)

// Coordinator is the manager's view of the coordination tree.
// *zk.Ensemble satisfies it.
type Coordinator interface {
	Registry

	LiveBrokerIds() ([]string, error)
	Topics() ([]string, error)
	Partitions(topic string) ([]string, error)
	PartitionState(topic, partition string) (*zk.PartitionState, error)
}

// Manager owns the supervised kafka process and decides when it is
// safe to start or stop it. At most one live process per manager.
type Manager struct {
	kafkaHome string
	coord     Coordinator
	resolver  IdResolver
	props     *config.KafkaProperties
	launcher  Launcher

	process     Process
	waitTimeout time.Duration
}

func NewManager(kafkaHome string, coord Coordinator, resolver IdResolver,
	props *config.KafkaProperties, launcher Launcher) *Manager {
	return &Manager{
		kafkaHome:   kafkaHome,
		coord:       coord,
		resolver:    resolver,
		props:       props,
		launcher:    launcher,
		waitTimeout: defaultStartTimeout,
	}
}

// BrokerId is this broker's identity, "" when delegated and not yet
// discoverable.
func (this *Manager) BrokerId() string {
	return this.resolver.BrokerId()
}

// ZkConnect is the coordination address kafka was last configured with.
func (this *Manager) ZkConnect() string {
	return this.props.GetProperty("zookeeper.connect")
}

// IsRunning reports whether this manager holds a live process handle.
func (this *Manager) IsRunning() bool {
	return this.process != nil
}

func (this *Manager) IsRunningAndRegistered() bool {
	if this.process == nil {
		return false
	}

	registered, err := this.resolver.IsRegistered()
	if err != nil {
		log.Error("registration check: %v", err)
		return false
	}
	return registered
}

// Start boots kafka against the given coordination address. Calling it
// with a live process is a no-op. Fails with ErrElectionInProgress and
// no side effects while leadership still depends on brokers that are
// not active members.
func (this *Manager) Start(zkConnect string) error {
	if this.process != nil {
		return nil
	}

	active, err := this.coord.LiveBrokerIds()
	if err != nil {
		return err
	}
	transferred, err := this.leadershipTransferred(active, nil)
	if err != nil {
		return err
	}
	if !transferred {
		return ErrElectionInProgress
	}

	brokerId := this.resolver.BrokerId()
	log.Info("using broker.id %q for kafka", brokerId)
	if brokerId != "" {
		this.props.SetProperty("broker.id", brokerId)
	} else {
		// delegated policy: kafka assigns itself an id
		this.props.DeleteProperty("broker.id")
	}

	log.Info("using zk address: %s", zkConnect)
	this.props.SetProperty("zookeeper.connect", zkConnect)
	if err = this.props.Dump(); err != nil {
		return err
	}

	log.Info("starting kafka process")
	this.process, err = this.launcher.Spawn(
		filepath.Join(this.kafkaHome, "bin", "kafka-server-start.sh"),
		this.props.SettingsFile())
	if err != nil {
		return err
	}

	log.Info("waiting %s for kafka to register itself", this.waitTimeout)
	registered, err := WaitForPresence(this.resolver, this.waitTimeout)
	if err != nil {
		return err
	}
	if !registered {
		this.waitTimeout += startTimeoutBackoff
		log.Error("kafka did not register, next wait budget %s", this.waitTimeout)
		return ErrStartTimeout
	}

	return nil
}

// Stop terminates the supervised process and waits until its
// registration has left the membership view. Both steps are best
// effort: the handle is always cleared, an inconsistent coordination
// view self-heals on session expiry. No-op without a live process.
func (this *Manager) Stop() {
	if this.process == nil {
		return
	}

	this.terminate()
	if err := WaitForAbsence(this.resolver); err != nil {
		log.Error("failed to wait for broker id absence: %v", err)
	}
}

func (this *Manager) terminate() {
	err := this.process.Terminate()
	if err == nil {
		err = this.process.Wait()
	}
	if err != nil {
		log.Error("failed to wait for termination of kafka process: %v", err)
	}

	this.process = nil
}

// HasLeadership reports whether this broker still leads at least one
// partition and therefore must not be stopped yet.
func (this *Manager) HasLeadership() (bool, error) {
	brokerId := this.resolver.BrokerId()
	if brokerId == "" {
		return false, nil
	}

	transferred, err := this.leadershipTransferred(nil, []string{brokerId})
	if err != nil {
		return false, err
	}
	return !transferred, nil
}

func (this *Manager) cleanElection() bool {
	return this.props.GetProperty("unclean.leader.election.enable") == "false"
}

// leadershipTransferred decides whether a membership change is safe:
// active is the proposed set of live brokers, dead the brokers about
// to disappear. Only enforced under clean leader election; an unclean
// cluster already tolerates lossy elections, blocking would buy no
// safety there.
func (this *Manager) leadershipTransferred(active, dead []string) (bool, error) {
	log.Info("checking leadership transfer: active=%v, dead=%v", active, dead)
	if !this.cleanElection() {
		return true, nil
	}

	activeSet := idSet(active)
	deadSet := idSet(dead)

	topics, err := this.coord.Topics()
	if err != nil {
		return false, err
	}
	for _, topic := range topics {
		partitions, err := this.coord.Partitions(topic)
		if err != nil {
			return false, err
		}
		for _, partition := range partitions {
			state, err := this.coord.PartitionState(topic, partition)
			if err != nil {
				return false, err
			}
			if state == nil {
				// partition still initializing, nothing to protect yet
				continue
			}

			leader := state.LeaderId()
			if len(activeSet) > 0 && !activeSet[leader] {
				if anyIn(state.IsrIds(), activeSet) {
					log.Warn("leadership not transferred for %s/%s (%s, active: %v)",
						topic, partition, state, active)
					return false, nil
				}

				// no active isr member is left: this partition is already
				// beyond saving by waiting, scan on
				log.Warn("no single isr available for %s/%s, state: %s, skipping check for that",
					topic, partition, state)
			}

			if len(deadSet) > 0 && deadSet[leader] {
				log.Warn("leadership not transferred for %s/%s, %s (dead: %v)",
					topic, partition, state, dead)
				return false, nil
			}
		}
	}

	return true, nil
}

func idSet(ids []string) map[string]bool {
	r := make(map[string]bool, len(ids))
	for _, id := range ids {
		r[id] = true
	}
	return r
}

func anyIn(ids []string, set map[string]bool) bool {
	for _, id := range ids {
		if set[id] {
			return true
		}
	}
	return false
}
