package hdf5

import "github.com/PrincetonUniversity/boidswarm"

// A Record is what is recorded in the HDF5 file for each agent at each step.
// This structure is mapped to a compound datatype in HDF5 so member names are important.
type Record struct {
	Pos    Vec3    // position
	Vel    Vec3    // velocity
	Facing float64 // heading in radians
}

// Vec3 is the HDF5 layout of a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// NewRecord returns the record of an agent state.
func NewRecord(st boidswarm.State) Record {
	return Record{
		Pos:    Vec3{st.Pos.X, st.Pos.Y, st.Pos.Z},
		Vel:    Vec3{st.Vel.X, st.Vel.Y, st.Vel.Z},
		Facing: st.Facing.Radians(),
	}
}

// AgentsDataset returns a dataset holding the records of n agents per step.
func AgentsDataset(n int) *Dataset {
	buf := make([]Record, n)
	return &Dataset{
		Name: "agents",
		Val:  Record{},
		Dims: []int{n},
		Data: func(s *boidswarm.Simulation) interface{} {
			for i, a := range s.Registry.Agents() {
				buf[i] = NewRecord(a.State)
			}
			return &buf
		},
	}
}

// NeighborsDataset returns a dataset holding the number of neighbors each
// of n agents saw during the previous step.
func NeighborsDataset(n int) *Dataset {
	buf := make([]int32, n)
	return &Dataset{
		Name: "neighbors",
		Val:  int32(0),
		Dims: []int{n},
		Data: func(s *boidswarm.Simulation) interface{} {
			for i, a := range s.Registry.Agents() {
				buf[i] = int32(len(a.Neighbors))
			}
			return &buf
		},
	}
}
