package agent

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/funkygao/go-metrics"
	"github.com/julienschmidt/httprouter"

	"github.com/mlogix/bubuku"
	"github.com/mlogix/bubuku/zk"
)

func (this *Agent) setupRoutes() {
	this.router = httprouter.New()
	this.router.GET("/ver", this.versionHandler)
	this.router.GET("/api/state", this.stateHandler)
	this.router.GET("/api/controller/queue", this.queueHandler)
	this.router.DELETE("/api/controller/queue/:queue/:znode", this.deleteActionHandler)
	this.router.GET("/api/metrics", this.metricsHandler)
}

// GET /ver
func (this *Agent) versionHandler(w http.ResponseWriter, r *http.Request,
	params httprouter.Params) {
	w.Write([]byte(bubuku.Version + "-" + bubuku.BuildId))
}

// GET /api/state
func (this *Agent) stateHandler(w http.ResponseWriter, r *http.Request,
	params httprouter.Params) {
	state := this.currentState()
	out := map[string]interface{}{
		"broker_id":              state.brokerId,
		"running_and_registered": state.registered,
		"zk_connect":             state.zkConnect,
		"uptime":                 time.Since(this.startedAt).String(),
	}
	this.writeJson(w, out)
}

// GET /api/controller/queue
func (this *Agent) queueHandler(w http.ResponseWriter, r *http.Request,
	params httprouter.Params) {
	out := make([]map[string]interface{}, 0)
	for _, queue := range this.queues() {
		actions, err := this.coord.Actions(queue)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(err.Error()))
			return
		}

		for _, action := range actions {
			out = append(out, map[string]interface{}{
				"queue":   action.Queue,
				"znode":   action.Znode,
				"name":    action.Name,
				"payload": action.Payload,
			})
		}
	}
	this.writeJson(w, out)
}

// DELETE /api/controller/queue/:queue/:znode
//
// The operator escape hatch: drops a queued action without executing
// it, e.g. a restart the agent keeps postponing while the broker still
// leads partitions.
func (this *Agent) deleteActionHandler(w http.ResponseWriter, r *http.Request,
	params httprouter.Params) {
	action := zk.Action{
		Queue: params.ByName("queue"),
		Znode: params.ByName("znode"),
	}
	if err := this.coord.DeleteAction(action); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}

	this.writeJson(w, map[string]interface{}{
		"deleted": action.Queue + "/" + action.Znode,
	})
}

// GET /api/metrics
func (this *Agent) metricsHandler(w http.ResponseWriter, r *http.Request,
	params httprouter.Params) {
	out := make(map[string]interface{}, 10)
	metrics.DefaultRegistry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case metrics.Counter:
			out[name] = m.Count()
		case metrics.Gauge:
			out[name] = m.Value()
		default:
			out[name] = i
		}
	})
	this.writeJson(w, out)
}

func (this *Agent) writeJson(w http.ResponseWriter, out interface{}) {
	b, err := json.Marshal(out)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}
