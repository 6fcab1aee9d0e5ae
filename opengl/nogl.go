//go:build nogl

package opengl

import (
	"fmt"
	"os"

	"github.com/PrincetonUniversity/boidswarm"
)

// Config holds the parameters of the OpenGL driver.
type Config struct {
	MaxSwarmSize int
	Clock        *boidswarm.Clock
	ForcePause   bool
	AgentSize    float64

	// bounds of default viewport
	Xmin float64
	Ymin float64
	Xmax float64
	Ymax float64
}

// Run returns an error explaining that OpenGL support is disabled.
func Run(s *boidswarm.Simulation, conf *Config) error {
	return fmt.Errorf("%s was built without OpenGL support", os.Args[0])
}
