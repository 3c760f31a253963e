package cell

import (
	"testing"

	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

func TestCellEachSkipsDummies(t *testing.T) {
	c := New()
	a := particle.New(0, 0, geom.Vec3{0, 0, 0})
	b := particle.New(1, 0, geom.Vec3{1, 1, 1})
	c.Add(a)
	c.Add(b)
	c.MarkDummy(0)

	var seen []particle.ID
	c.Each(func(p *particle.Particle) { seen = append(seen, p.ID) })
	if len(seen) != 1 || seen[0] != b.ID {
		t.Errorf("Each() saw %v, want [%d]", seen, b.ID)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (MarkDummy does not shrink the slice)", c.Len())
	}
}

func TestCellCompactPreservesOrder(t *testing.T) {
	c := New()
	ids := []particle.ID{0, 1, 2, 3}
	for _, id := range ids {
		c.Add(particle.New(id, 0, geom.Vec3{}))
	}
	c.MarkDummy(1)
	c.Compact()

	if c.Len() != 3 {
		t.Fatalf("Len() after Compact = %d, want 3", c.Len())
	}
	want := []particle.ID{0, 2, 3}
	for i, id := range want {
		if c.At(i).ID != id {
			t.Errorf("At(%d).ID = %d, want %d", i, c.At(i).ID, id)
		}
	}
}

func TestCellClear(t *testing.T) {
	c := New()
	c.Add(particle.New(0, 0, geom.Vec3{}))
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestCellSoALifecycle(t *testing.T) {
	c := New()
	if c.SoA() != nil {
		t.Errorf("SoA() on a fresh cell = %v, want nil", c.SoA())
	}
	s := NewSoA(0, nil)
	c.SetSoA(s)
	if c.SoA() != s {
		t.Errorf("SoA() after SetSoA = %v, want %v", c.SoA(), s)
	}
	c.DropSoA()
	if c.SoA() != nil {
		t.Errorf("SoA() after DropSoA = %v, want nil", c.SoA())
	}
}
