package internal

// Stage is a bootstrap state. Stages are reached in declaration order;
// each one is a precondition for the next.
type Stage int

const (
	StageInit Stage = iota
	StageRequestBuilt
	StageResponseBuilt
	StagePoolReady
	StageRouterReady
	StageModulesInitialized
	StageRouted
	StageDispatched
	StageRendered
	StageEmitted
)

var stageNames = [...]string{
	StageInit:               "init",
	StageRequestBuilt:       "request_built",
	StageResponseBuilt:      "response_built",
	StagePoolReady:          "pool_ready",
	StageRouterReady:        "router_ready",
	StageModulesInitialized: "modules_initialized",
	StageRouted:             "routed",
	StageDispatched:         "dispatched",
	StageRendered:           "rendered",
	StageEmitted:            "emitted",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
