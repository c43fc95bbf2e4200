// Package bubuku is a supervisor agent that babysits a single kafka
// broker inside a ZooKeeper coordinated cluster.
package bubuku

var (
	// Version is the unified version of the whole bubuku project.
	// Each component shares the same version info.
	Version = "unknown"

	// BuildId is the SCM commit id.
	BuildId = "?"

	// BuiltAt is the time when build.sh was run.
	BuiltAt = "1970"
)
