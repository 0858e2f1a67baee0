// pattern: Functional Core

package discovery

import "errors"

// ErrNameCollision is returned when two source directories map to the same
// output name under the fail policy.
var ErrNameCollision = errors.New("output name collision")

// GameDir pairs a matched source directory with the name it is copied to.
type GameDir struct {
	Path string // Source directory, joined from the caller-supplied root
	Name string // Output directory name under the target root
}

// CollisionPolicy decides what happens when output names collide.
type CollisionPolicy string

const (
	CollisionFail   CollisionPolicy = "fail"
	CollisionSuffix CollisionPolicy = "suffix"
)
