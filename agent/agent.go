// Package agent runs the supervision loop around one kafka broker and
// serves the health/controller HTTP api.
package agent

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/funkygao/go-metrics"
	log "github.com/funkygao/log4go"
	"github.com/julienschmidt/httprouter"

	"github.com/mlogix/bubuku/broker"
	"github.com/mlogix/bubuku/zk"
)

// checkInterval is the cadence of the supervision loop.
const checkInterval = time.Second * 5

// Coordinator is the agent's view of the coordination tree: the action
// queues plus the address kafka itself connects with. *zk.Ensemble
// satisfies it.
type Coordinator interface {
	ZkConnect() string
	Actions(queue string) ([]zk.Action, error)
	DeleteAction(action zk.Action) error
}

// brokerState is what the api serves. Handlers read a snapshot
// published by Run's goroutine and never touch the manager: all
// lifecycle state lives on that single goroutine.
type brokerState struct {
	brokerId   string
	registered bool
	zkConnect  string
}

type Agent struct {
	coord   Coordinator
	manager *broker.Manager

	apiAddr   string
	router    *httprouter.Router
	startedAt time.Time
	quit      chan struct{}

	mu    sync.RWMutex
	state brokerState

	starts   metrics.Counter
	stops    metrics.Counter
	restarts metrics.Counter
	rejects  metrics.Counter
	running  metrics.Gauge
}

func New(coord Coordinator, manager *broker.Manager, healthPort int) *Agent {
	this := &Agent{
		coord:   coord,
		manager: manager,
		apiAddr: fmt.Sprintf(":%d", healthPort),
		quit:    make(chan struct{}),

		starts:   metrics.NewRegisteredCounter("agent.kafka.starts", nil),
		stops:    metrics.NewRegisteredCounter("agent.kafka.stops", nil),
		restarts: metrics.NewRegisteredCounter("agent.kafka.restarts", nil),
		rejects:  metrics.NewRegisteredCounter("agent.kafka.election_rejects", nil),
		running:  metrics.NewRegisteredGauge("agent.kafka.running", nil),
	}
	this.setupRoutes()
	return this
}

// Run starts kafka and supervises it until Stop is called. It is the
// single driving goroutine of the manager: all lifecycle transitions
// happen here, one at a time.
func (this *Agent) Run() {
	this.startedAt = time.Now()

	go func() {
		log.Info("api server ready on %s", this.apiAddr)
		if err := http.ListenAndServe(this.apiAddr, this.router); err != nil {
			log.Error("api server: %v", err)
		}
	}()

	this.startBroker()
	this.publishState()

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-this.quit:
			log.Info("agent quitting, stopping kafka")
			this.manager.Stop()
			this.stops.Inc(1)
			this.running.Update(0)
			this.publishState()
			return

		case <-ticker.C:
			if !this.manager.IsRunning() {
				this.startBroker()
			}
			this.drainActions()
			if this.manager.IsRunning() {
				this.running.Update(1)
			} else {
				this.running.Update(0)
			}
			this.publishState()
		}
	}
}

// Stop makes Run wind down; safe to call from a signal handler.
func (this *Agent) Stop() {
	close(this.quit)
}

// publishState snapshots the manager for the api handlers. Only Run's
// goroutine may call it.
func (this *Agent) publishState() {
	state := brokerState{
		brokerId:   this.manager.BrokerId(),
		registered: this.manager.IsRunningAndRegistered(),
		zkConnect:  this.manager.ZkConnect(),
	}

	this.mu.Lock()
	this.state = state
	this.mu.Unlock()
}

func (this *Agent) currentState() brokerState {
	this.mu.RLock()
	defer this.mu.RUnlock()
	return this.state
}

func (this *Agent) startBroker() {
	switch err := this.manager.Start(this.coord.ZkConnect()); err {
	case nil:
		this.starts.Inc(1)

	case broker.ErrElectionInProgress:
		this.rejects.Inc(1)
		log.Warn("%v, retrying in %s", err, checkInterval)

	case broker.ErrStartTimeout:
		// process intentionally left running, see Manager.Start
		log.Warn("%v", err)

	default:
		log.Error("kafka start: %v", err)
	}
}

func (this *Agent) queues() []string {
	queues := []string{zk.ActionGlobalQueue}
	if id := this.currentState().brokerId; id != "" {
		queues = append(queues, id)
	}
	return queues
}

func (this *Agent) drainActions() {
	for _, queue := range this.queues() {
		actions, err := this.coord.Actions(queue)
		if err != nil {
			log.Error("action queue %s: %v", queue, err)
			continue
		}

		for _, action := range actions {
			if !this.handleAction(action) {
				// postponed, keep it queued and retry next tick
				return
			}
		}
	}
}

// handleAction consumes one queue entry, reporting false when the
// action must stay queued for a later attempt.
func (this *Agent) handleAction(action zk.Action) bool {
	switch action.Name {
	case zk.ActionRestart:
		leading, err := this.manager.HasLeadership()
		if err != nil {
			log.Error("leadership check: %v", err)
			return false
		}
		if leading {
			log.Info("still leading partitions, restart %s/%s postponed",
				action.Queue, action.Znode)
			return false
		}

		log.Info("restarting kafka per action %s/%s", action.Queue, action.Znode)
		this.manager.Stop()
		this.startBroker()
		this.restarts.Inc(1)

	default:
		// rebalance and migration campaigns are planned elsewhere;
		// an agent that cannot serve them must not wedge its queue
		log.Warn("unsupported action %q from %s/%s, discarding",
			action.Name, action.Queue, action.Znode)
	}

	if err := this.coord.DeleteAction(action); err != nil {
		log.Error("delete action %s/%s: %v", action.Queue, action.Znode, err)
	}
	return true
}
