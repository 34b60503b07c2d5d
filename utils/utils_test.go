package utils

import (
	"slices"
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

func TestCircularQueueOverwritesOldest(t *testing.T) {
	q := NewCircularQueue[int](3)
	if _, ok := q.Last(); ok {
		t.Fatalf("expected an empty queue")
	}
	for i := 1; i <= 5; i++ {
		if err := q.Append(i); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []int{3, 4, 5}) {
		t.Fatalf("expected [3 4 5], got %v", got)
	}
	if last, ok := q.Last(); !ok || last != 5 {
		t.Fatalf("expected newest 5, got %v (ok=%v)", last, ok)
	}
	if q.Len() != 3 || q.Cap() != 3 {
		t.Fatalf("unexpected len %d / cap %d", q.Len(), q.Cap())
	}
	if err := NewCircularQueue[int](0).Append(1); err == nil {
		t.Fatalf("expected append on a zero-capacity queue to fail")
	}
}

func TestBBoxCache(t *testing.T) {
	c := NewBBoxCache(0.1, 2)
	boxes := []cube.BBox{cube.Box(0, 0, 0, 1, 1, 1)}
	if _, ok := c.Get(mgl32.Vec3{}, mgl32.Vec3{}, 0); ok {
		t.Fatalf("expected a miss on an empty cache")
	}
	c.Set(mgl32.Vec3{}, mgl32.Vec3{}, boxes, 0)
	boxes[0] = cube.Box(5, 5, 5, 6, 6, 6)

	got, ok := c.Get(mgl32.Vec3{0.05, 0, 0}, mgl32.Vec3{}, 2)
	if !ok || len(got) != 1 || got[0].Min() != (mgl32.Vec3{}) {
		t.Fatalf("expected a hit holding a copy of the stored boxes, got %v (ok=%v)", got, ok)
	}
	if _, ok := c.Get(mgl32.Vec3{}, mgl32.Vec3{}, 3); ok {
		t.Fatalf("expected entries older than the max age to miss")
	}
	if _, ok := c.Get(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{}, 1); ok {
		t.Fatalf("expected a moved position to miss")
	}
	if _, ok := c.Get(mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}, 1); ok {
		t.Fatalf("expected a changed velocity to miss")
	}
	c.Invalidate()
	if _, ok := c.Get(mgl32.Vec3{}, mgl32.Vec3{}, 0); ok {
		t.Fatalf("expected an invalidated cache to miss")
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 5 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestKeyValsToString(t *testing.T) {
	if got := KeyValsToString("foo", 1, "bar", true, "odd"); got != "[foo=1 bar=true]" {
		t.Fatalf("unexpected string %q", got)
	}
	if got := KeyValsToString(); got != "[]" {
		t.Fatalf("unexpected string %q", got)
	}

	m := orderedmap.NewOrderedMap[string, int]()
	m.Set("b", 2)
	m.Set("a", 1)
	if got := OrderedMapToString(m); got != "[b=2 a=1]" {
		t.Fatalf("expected insertion order, got %q", got)
	}
}
