// Package scene holds the placed instances of catalog assets: their
// transforms, visibility and selection, and a JSON snapshot of that state.
package scene

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/cityblocks/internal/assets"
	"github.com/Faultbox/cityblocks/internal/logger"
	"github.com/Faultbox/cityblocks/pkg/math"
)

var (
	ErrNoSelection     = errors.New("no instance selected")
	ErrIndexOutOfRange = errors.New("instance index out of range")
	ErrUnknownAsset    = errors.New("unknown asset")
	ErrSnapshotParse   = errors.New("snapshot parse failure")
)

// Catalog resolves asset names to loaded assets. *assets.Library
// implements it.
type Catalog interface {
	Get(name string) (*assets.Asset, bool)
}

// positionScale converts slider units into world units.
const positionScale = 0.1

// Transform is the user-controlled placement of an instance. Rotation is
// in multiples of π radians per axis.
type Transform struct {
	Position [3]float32
	Rotation [3]float32
	Scale    float32
}

// IdentityTransform returns the transform of a freshly added instance.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Instance is one placed occurrence of an asset. Asset is shared with
// every other instance of the same kind.
type Instance struct {
	Label      string
	Kind       string
	AssetIndex int
	Asset      *assets.Asset

	Visible  bool
	Selected bool

	Position [3]float32
	Rotation [3]float32
	Scale    float32

	Bounds assets.Bounds
	Offset [3]float32
}

// Transform returns the instance's current transform.
func (in *Instance) Transform() Transform {
	return Transform{Position: in.Position, Rotation: in.Rotation, Scale: in.Scale}
}

// WorldMatrix composes the centering offset, the position, the X, Y and Z
// rotations and the uniform scale, applied to vertices in reverse order.
func (in *Instance) WorldMatrix() math.Mat4 {
	m := math.Identity().
		Translated(math.V3(in.Offset)).
		Translated(math.V3(in.Position).Scale(positionScale)).
		RotatedXYZ(math.V3(in.Rotation).Scale(math32.Pi))
	if in.Scale != 1 {
		m = m.Scaled(in.Scale)
	}
	return m
}

// Registry is the ordered list of instances in the scene. It is not safe
// for concurrent use.
type Registry struct {
	catalog   Catalog
	instances []*Instance
	counters  map[string]int
	log       *zap.Logger
}

// NewRegistry creates an empty registry resolving names through catalog.
func NewRegistry(catalog Catalog) *Registry {
	return &Registry{
		catalog:  catalog,
		counters: make(map[string]int),
		log:      logger.Named("scene"),
	}
}

// Len returns the number of instances.
func (r *Registry) Len() int {
	return len(r.instances)
}

// Instances returns the instances in insertion order. The slice is a copy;
// the instances are not.
func (r *Registry) Instances() []*Instance {
	out := make([]*Instance, len(r.instances))
	copy(out, r.instances)
	return out
}

// At returns the instance at index i.
func (r *Registry) At(i int) (*Instance, error) {
	if i < 0 || i >= len(r.instances) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(r.instances))
	}
	return r.instances[i], nil
}

func (r *Registry) newInstance(name string) (*Instance, error) {
	asset, ok := r.catalog.Get(name)
	if !ok || asset == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	n := r.counters[name]
	r.counters[name] = n + 1

	return &Instance{
		Label:      name + "_" + strconv.Itoa(n),
		Kind:       name,
		AssetIndex: asset.Index,
		Asset:      asset,
		Visible:    true,
		Scale:      1,
		Bounds:     asset.Bounds,
		Offset:     asset.Offset,
	}, nil
}

// Add places a new instance of the named asset at the origin and makes it
// the only selected instance.
func (r *Registry) Add(name string) (*Instance, error) {
	in, err := r.newInstance(name)
	if err != nil {
		return nil, err
	}
	r.instances = append(r.instances, in)
	r.selectOnly(len(r.instances) - 1)

	r.log.Debug("instance added",
		zap.String("label", in.Label),
		zap.Int("count", len(r.instances)),
	)
	return in, nil
}

// Remove deletes the instance at index i. If instances remain, the first
// one becomes the selection.
func (r *Registry) Remove(i int) (*Instance, error) {
	in, err := r.At(i)
	if err != nil {
		return nil, err
	}
	r.instances = append(r.instances[:i], r.instances[i+1:]...)
	if len(r.instances) > 0 {
		r.selectOnly(0)
	}

	r.log.Debug("instance removed",
		zap.String("label", in.Label),
		zap.Int("count", len(r.instances)),
	)
	return in, nil
}

// RemoveSelected deletes the selected instance.
func (r *Registry) RemoveSelected() (*Instance, error) {
	_, i := r.Selected()
	if i < 0 {
		return nil, ErrNoSelection
	}
	return r.Remove(i)
}

// Selected returns the first selected instance and its index, or nil and
// -1 when nothing is selected.
func (r *Registry) Selected() (*Instance, int) {
	for i, in := range r.instances {
		if in.Selected {
			return in, i
		}
	}
	return nil, -1
}

// Select makes the instance at index i the only selected instance.
func (r *Registry) Select(i int) (*Instance, error) {
	if _, err := r.At(i); err != nil {
		return nil, err
	}
	r.selectOnly(i)
	return r.instances[i], nil
}

// SelectNext moves the selection by delta positions, wrapping around.
// With nothing selected it starts from the first instance.
func (r *Registry) SelectNext(delta int) (*Instance, error) {
	n := len(r.instances)
	if n == 0 {
		return nil, ErrNoSelection
	}
	_, cur := r.Selected()
	next := 0
	if cur >= 0 {
		next = ((cur+delta)%n + n) % n
	}
	r.selectOnly(next)
	return r.instances[next], nil
}

func (r *Registry) selectOnly(i int) {
	for j, in := range r.instances {
		in.Selected = j == i
	}
}

// SetTransform writes t to the selected instance.
func (r *Registry) SetTransform(t Transform) error {
	in, _ := r.Selected()
	if in == nil {
		return ErrNoSelection
	}
	in.Position = t.Position
	in.Rotation = t.Rotation
	in.Scale = t.Scale
	return nil
}

// ToggleVisible flips the visibility of the selected instance and returns
// the new state.
func (r *Registry) ToggleVisible() (bool, error) {
	in, _ := r.Selected()
	if in == nil {
		return false, ErrNoSelection
	}
	in.Visible = !in.Visible
	return in.Visible, nil
}

// Clear removes every instance and resets the label counters.
func (r *Registry) Clear() {
	r.instances = nil
	r.counters = make(map[string]int)
}
