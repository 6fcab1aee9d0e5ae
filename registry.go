package boidswarm

// A Registry is the ordered list of the live agents of a simulation.
// It only holds references: agents belong to whoever spawned them.
type Registry struct {
	agents []*Agent
}

// NewRegistry returns an empty registry with room for n agents.
func NewRegistry(n int) *Registry {
	return &Registry{agents: make([]*Agent, 0, n)}
}

// Add appends a to the registry and returns its index.
func (r *Registry) Add(a *Agent) int {
	r.agents = append(r.agents, a)
	return len(r.agents) - 1
}

// Clear removes all agents but keeps the allocated capacity.
func (r *Registry) Clear() {
	for i := range r.agents {
		r.agents[i] = nil
	}
	r.agents = r.agents[:0]
}

// Len returns the number of agents.
func (r *Registry) Len() int {
	return len(r.agents)
}

// At returns the agent at index i.
func (r *Registry) At(i int) *Agent {
	return r.agents[i]
}

// Agents returns the agents in insertion order.
// The slice is owned by the registry and must not be modified.
func (r *Registry) Agents() []*Agent {
	return r.agents
}

// Index returns the index of a, or -1 if a is not registered.
func (r *Registry) Index(a *Agent) int {
	for i, b := range r.agents {
		if a == b {
			return i
		}
	}
	return -1
}
