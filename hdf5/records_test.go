package hdf5

import (
	"math"
	"testing"

	"github.com/PrincetonUniversity/boidswarm"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

func TestNewRecord(t *testing.T) {
	st := boidswarm.State{
		Pos:    r3.Vector{X: 1, Y: 2, Z: 3},
		Vel:    r3.Vector{X: -1, Y: 0.5},
		Facing: s1.Angle(math.Pi / 4),
	}
	want := Record{Pos: Vec3{1, 2, 3}, Vel: Vec3{-1, 0.5, 0}, Facing: math.Pi / 4}
	if got := NewRecord(st); got != want {
		t.Errorf("NewRecord = %+v, want %+v", got, want)
	}
}

func TestDatasets(t *testing.T) {
	p := boidswarm.DefaultParams()
	reg := boidswarm.NewRegistry(2)
	for _, x := range []float64{0, 1} {
		a := &boidswarm.Agent{Params: p}
		a.Pos = r3.Vector{X: x}
		reg.Add(a)
	}
	s := boidswarm.NewSimulation(reg)
	s.Step(0.02)

	agents := AgentsDataset(2)
	if agents.Name != "agents" || len(agents.Dims) != 1 || agents.Dims[0] != 2 {
		t.Errorf("agents dataset %q dims %v", agents.Name, agents.Dims)
	}
	recs := *agents.Data(s).(*[]Record)
	for i, a := range reg.Agents() {
		if recs[i] != NewRecord(a.State) {
			t.Errorf("record %d = %+v, want state %v", i, recs[i], a.State)
		}
	}

	neighbors := NeighborsDataset(2)
	counts := *neighbors.Data(s).(*[]int32)
	for i, a := range reg.Agents() {
		if int(counts[i]) != len(a.Neighbors) {
			t.Errorf("agent %d: count %d, want %d", i, counts[i], len(a.Neighbors))
		}
	}
}
