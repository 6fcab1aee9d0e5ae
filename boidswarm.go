// Package boidswarm runs flocking simulations of boids.
//
// A population of agents moves in a 2D world following three local rules:
// separation, alignment and cohesion. Each agent only considers the agents
// inside its search radius and its forward vision cone.
// No agent controls the group; the flocking is emergent.
package boidswarm

import "fmt"

// An UpdateMode selects which state agents read while a step is in progress.
type UpdateMode int

const (
	// Snapshot reads the state every agent had at the start of the step.
	// All agents are then written at once.
	Snapshot UpdateMode = iota

	// Sequential writes each agent as soon as it is updated, so agents
	// updated later in the same step see the new state of earlier ones.
	Sequential
)

// ParseUpdateMode returns the UpdateMode named s.
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch s {
	case "snapshot", "":
		return Snapshot, nil
	case "sequential":
		return Sequential, nil
	}
	return 0, fmt.Errorf("bad update mode %q", s)
}

func (m UpdateMode) String() string {
	switch m {
	case Snapshot:
		return "snapshot"
	case Sequential:
		return "sequential"
	}
	return fmt.Sprintf("UpdateMode(%d)", int(m))
}

// An Environment contains all the parameters relative to the environment.
type Environment struct {
	// Move validates and canonicalizes a move by returning
	// the actual new state given a requested change in state.
	// It is used to enforce boundary conditions. A nil Move accepts every move.
	Move func(old, new State) State
}

// A Simulation contains all the state and parameters of a simulation.
type Simulation struct {
	Registry *Registry
	Env      Environment
	Query    NeighborQuery
	Mode     UpdateMode

	// buffers reused across steps
	cur  []State // state read by the neighbor query and the rules
	next []State // pending writes in Snapshot mode
	seen []State // neighbor states of the agent being updated
}

// NewSimulation returns a simulation of the agents of reg with brute force
// neighbor detection, snapshot updates and no boundary.
func NewSimulation(reg *Registry) *Simulation {
	return &Simulation{
		Registry: reg,
		Query:    BruteForce{},
	}
}

// Step runs a single simulation step of duration dt.
// Every agent is advanced exactly once, in registry order.
func (s *Simulation) Step(dt float64) {
	agents := s.Registry.Agents()

	s.cur = s.cur[:0]
	for _, a := range agents {
		s.cur = append(s.cur, a.State)
	}
	s.next = s.next[:0]

	for i, a := range agents {
		a.Neighbors = s.Query.Query(a.Neighbors[:0], i, s.cur, a.Params)
		s.seen = s.seen[:0]
		for _, j := range a.Neighbors {
			s.seen = append(s.seen, s.cur[j])
		}

		old := s.cur[i]
		st := Advance(old, s.seen, a.Params, dt)
		if s.Env.Move != nil {
			st = s.Env.Move(old, st)
		}
		st.Facing = TurnToward(old.Facing, st.Vel, a.TurnSpeed*dt)

		if s.Mode == Sequential {
			s.cur[i] = st
			a.State = st
			continue
		}
		s.next = append(s.next, st)
	}

	if s.Mode == Snapshot {
		for i, a := range agents {
			a.State = s.next[i]
		}
	}
}
