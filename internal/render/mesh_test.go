package render

import (
	"testing"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
)

func TestBuildMesh(t *testing.T) {
	data := []float32{
		10, 20, 2, boid.Prey.Code(), 1, 0, 0,
		50, 60, 4, boid.Predator.Code(), 0, 1, 0,
		90, 90, 0, boid.Drifter.Code(), 0, 0, 1,
	}
	vs, is := buildMesh(data, 3, nil, nil)
	if len(vs) != 3+4+4 {
		t.Fatalf("vertices = %d; want 11", len(vs))
	}
	if len(is) != 3+6+6 {
		t.Fatalf("indices = %d; want 15", len(is))
	}

	// Prey tip sits one radius above the centre.
	if vs[0].DstX != 10 || vs[0].DstY != 18 {
		t.Errorf("prey tip = (%v, %v); want (10, 18)", vs[0].DstX, vs[0].DstY)
	}
	if vs[0].ColorR != 1 || vs[0].ColorG != 0 || vs[0].ColorA != 1 {
		t.Errorf("prey colour = %+v", vs[0])
	}
	if vs[3].ColorG != 1 || vs[7].ColorB != 1 {
		t.Error("group colours not carried to vertices")
	}
	// Size 0 still gets a visible square.
	if w := vs[8].DstX - vs[7].DstX; w <= 0 {
		t.Errorf("drifter square width = %v", w)
	}
	for _, i := range is {
		if int(i) >= len(vs) {
			t.Fatalf("index %d out of range", i)
		}
	}
	if is[3] != 3 || is[9] != 7 {
		t.Errorf("fans must start at each shape's first vertex, got %v", is)
	}

	// Reuse keeps capacity and honours a smaller amount.
	vs2, is2 := buildMesh(data, 1, vs, is)
	if len(vs2) != 3 || len(is2) != 3 || &vs2[0] != &vs[0] {
		t.Errorf("rebuild: %d vertices %d indices, reused=%v", len(vs2), len(is2), &vs2[0] == &vs[0])
	}

	if vs, is := buildMesh(nil, 0, nil, nil); len(vs) != 0 || len(is) != 0 {
		t.Error("empty buffer should build an empty mesh")
	}
}
