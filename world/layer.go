package world

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/utils"
)

// Layer is the index of a collision layer, in the range [0, 32).
type Layer uint8

// LayerMask is a bit set of layers. Bit n set means Layer(n) is included.
type LayerMask uint32

const (
	// NoLayers is a mask that matches nothing.
	NoLayers LayerMask = 0
	// AllLayers is a mask that matches every layer.
	AllLayers LayerMask = ^LayerMask(0)

	maxLayers = 32
)

// Default layer names registered by DefaultLayers.
const (
	LayerDefault  = "Default"
	LayerGround   = "Ground"
	LayerObstacle = "Obstacle"
)

// MaskOf returns a mask including all layers passed.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Includes returns true if the layer is part of the mask.
func (m LayerMask) Includes(l Layer) bool {
	return m&(1<<l) != 0
}

// Layers is a registry of named collision layers. Layers keep the order they were registered in, so that
// the index assigned to a name is stable for a given registration order.
type Layers struct {
	names *orderedmap.OrderedMap[string, Layer]
}

// NewLayers returns an empty layer registry.
func NewLayers() *Layers {
	return &Layers{names: orderedmap.NewOrderedMap[string, Layer]()}
}

// DefaultLayers returns a registry holding the Default, Ground and Obstacle layers.
func DefaultLayers() *Layers {
	l := NewLayers()
	for _, name := range []string{LayerDefault, LayerGround, LayerObstacle} {
		// Registering three names on an empty registry cannot fail.
		_, _ = l.Register(name)
	}
	return l
}

// Register adds a layer with the name passed and returns its index. Registering a name twice returns the
// existing layer.
func (l *Layers) Register(name string) (Layer, error) {
	if layer, ok := l.names.Get(name); ok {
		return layer, nil
	}
	if l.names.Len() >= maxLayers {
		return 0, oerror.New("layers: cannot register %q, all %d layers are in use", name, maxLayers)
	}
	layer := Layer(l.names.Len())
	l.names.Set(name, layer)
	return layer, nil
}

// Layer returns the layer registered under the name passed.
func (l *Layers) Layer(name string) (Layer, bool) {
	return l.names.Get(name)
}

// Mask returns a mask including every named layer. An error is returned if any name is not registered.
func (l *Layers) Mask(names ...string) (LayerMask, error) {
	var m LayerMask
	for _, name := range names {
		layer, ok := l.names.Get(name)
		if !ok {
			return NoLayers, oerror.New("layers: unknown layer %q", name)
		}
		m |= MaskOf(layer)
	}
	return m, nil
}

// Names returns the registered layer names in registration order.
func (l *Layers) Names() []string {
	names := make([]string, 0, l.names.Len())
	for el := l.names.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// String returns the registered layers with their indices, in registration order.
func (l *Layers) String() string {
	return utils.OrderedMapToString(l.names)
}
