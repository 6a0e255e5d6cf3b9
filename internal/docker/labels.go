package docker

// Label keys Holt stamps on every container it starts. Discovery reads them
// to map a workspace to its instance and the instance to its Redis port.
const (
	LabelProject       = "holt.project"
	LabelInstanceName  = "holt.instance.name"
	LabelWorkspacePath = "holt.workspace.path"
	LabelComponent     = "holt.component"
	LabelRedisPort     = "holt.redis.port"
)

// Component label values for the containers an instance cannot run without.
const (
	ComponentRedis        = "redis"
	ComponentOrchestrator = "orchestrator"
)

// LabelFilter formats a key=value label filter for the Docker API.
func LabelFilter(key, value string) string {
	return key + "=" + value
}
