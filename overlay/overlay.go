// Package overlay exports the debug overlay of a boidswarm simulation as GeoJSON.
//
// Each agent becomes a Point feature carrying its velocity, heading, search
// radius and neighbor count, and each neighbor relation seen during the last
// step becomes a LineString from the observer to the observed agent.
package overlay

import (
	"io"
	"os"
	"path/filepath"

	"github.com/PrincetonUniversity/boidswarm"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Collection returns the overlay of the agents of reg.
func Collection(reg *boidswarm.Registry) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, a := range reg.Agents() {
		f := geojson.NewFeature(orb.Point{a.Pos.X, a.Pos.Y})
		f.Properties["kind"] = "agent"
		f.Properties["index"] = i
		f.Properties["vx"] = a.Vel.X
		f.Properties["vy"] = a.Vel.Y
		f.Properties["facing"] = a.Facing.Radians()
		f.Properties["radius"] = a.Radius
		f.Properties["neighbors"] = len(a.Neighbors)
		fc.Append(f)
	}
	for i, a := range reg.Agents() {
		for _, j := range a.Neighbors {
			b := reg.At(j)
			f := geojson.NewFeature(orb.LineString{{a.Pos.X, a.Pos.Y}, {b.Pos.X, b.Pos.Y}})
			f.Properties["kind"] = "link"
			f.Properties["from"] = i
			f.Properties["to"] = j
			fc.Append(f)
		}
	}
	return fc
}

// Write writes the overlay of reg to w.
func Write(w io.Writer, reg *boidswarm.Registry) error {
	data, err := Collection(reg).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the overlay of reg to the file at path, creating
// parent directories as needed.
func WriteFile(path string, reg *boidswarm.Registry) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, reg)
}
