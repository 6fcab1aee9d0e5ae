package hdf5

import (
	"fmt"

	"github.com/PrincetonUniversity/boidswarm"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/sbinet/go-hdf5"
)

// A Loader sequentially loads agent records from an HDF5 dataset.
type Loader struct {
	i uint // index of current slice
	n uint // total number of slices

	data []Record // data buffer

	file   *hdf5.File
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// NewLoader opens a dataset in an HDF5 file and returns an initialized loader.
func NewLoader(filepath, dataset string) (*Loader, error) {
	l := new(Loader)
	var err error
	l.file, err = hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	l.dset, err = l.file.OpenDataset(dataset)
	if err != nil {
		checkClose(&err, l.file)
		return nil, err
	}
	l.fspace = l.dset.Space()
	dims, _, err := l.fspace.SimpleExtentDims()
	if err != nil {
		l.close(&err)
		return nil, err
	}
	if len(dims) != 2 {
		err = fmt.Errorf("loader: expected 2 dimensions, got %d", len(dims))
		l.close(&err)
		return nil, err
	}
	if dims[0] == 0 {
		err = fmt.Errorf("loader: dataset %q of %s holds no step", dataset, filepath)
		l.close(&err)
		return nil, err
	}
	l.n = dims[0]

	l.mspace, err = hdf5.CreateSimpleDataspace(dims[1:], nil)
	if err != nil {
		l.close(&err)
		return nil, err
	}

	start := []uint{0, 0}
	count := []uint{1, dims[1]}
	if err := l.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		l.close(&err)
		return nil, err
	}

	l.data = make([]Record, dims[1])

	return l, nil
}

// Len returns the number of steps in the dataset.
func (l *Loader) Len() int {
	return int(l.n)
}

// Seek makes step i the next one to be loaded.
func (l *Loader) Seek(i int) error {
	if i < 0 || i >= l.Len() {
		return fmt.Errorf("loader: step %d out of range [0, %d)", i, l.n)
	}
	l.i = uint(i)
	return nil
}

// Load clears reg and fills it with the agents of the next step available,
// all sharing the parameters p. It cycles when every step has been loaded.
func (l *Loader) Load(reg *boidswarm.Registry, p *boidswarm.Params) error {
	start := []uint{l.i, 0}
	if err := l.fspace.SetOffset(start); err != nil {
		return err
	}
	l.i = (l.i + 1) % l.n

	if err := l.dset.ReadSubset(&l.data, l.mspace, l.fspace); err != nil {
		return err
	}

	reg.Clear()
	for _, r := range l.data {
		a := &boidswarm.Agent{Params: p, Style: boidswarm.DefaultStyle}
		a.Pos = r3.Vector{X: r.Pos.X, Y: r.Pos.Y, Z: r.Pos.Z}
		a.Vel = r3.Vector{X: r.Vel.X, Y: r.Vel.Y, Z: r.Vel.Z}
		a.Facing = s1.Angle(r.Facing)
		reg.Add(a)
	}
	return nil
}

// Close closes the underlying HDF5 objects.
func (l *Loader) Close() (err error) {
	l.close(&err)
	return err
}

// close closes whatever was opened, keeping the first error in err.
func (l *Loader) close(err *error) {
	if l.mspace != nil {
		checkClose(err, l.mspace)
	}
	if l.fspace != nil {
		checkClose(err, l.fspace)
	}
	if l.dset != nil {
		checkClose(err, l.dset)
	}
	if l.file != nil {
		checkClose(err, l.file)
	}
}
