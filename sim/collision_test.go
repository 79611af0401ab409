package sim

import "testing"

func TestCollideZ(t *testing.T) {
	// Passing straight through the slab from above.
	i := collideZ(200, -200, 100)
	if i.empty() {
		t.Fatal("expected overlap")
	}
	if i.begin != 256 || i.end != 768 {
		t.Errorf("interval = [%d, %d], want [256, 768]", i.begin, i.end)
	}

	// Entirely above.
	if i := collideZ(200, 150, 100); !i.empty() && i.begin >= 0 {
		t.Errorf("no contact expected, got [%d, %d]", i.begin, i.end)
	}

	// Not moving, inside.
	if i := collideZ(50, 50, 100); i.begin != 0 || i.end != collisionScale {
		t.Errorf("static inside = [%d, %d]", i.begin, i.end)
	}
}

func TestCollideCircleHeadOn(t *testing.T) {
	// Flying straight over the center of a radius-100 circle.
	i := collideCircle(-500, 0, 500, 0, 100)
	if i.empty() {
		t.Fatal("expected contact")
	}
	// Enters at x=-100 (40% of the way), leaves at x=+100 (60%).
	if i.begin != 409 || i.end != 614 {
		t.Errorf("interval = [%d, %d], want [409, 614]", i.begin, i.end)
	}
}

func TestCollideCircleMiss(t *testing.T) {
	i := collideCircle(-500, 200, 500, 200, 100)
	if !i.empty() && i.end >= 0 && i.begin <= collisionScale {
		t.Errorf("expected miss, got [%d, %d]", i.begin, i.end)
	}
}

func TestCollideShapeCylinder(t *testing.T) {
	obj := &GameObject{Radius: 100, Height: 100}

	// Level flight through the middle.
	ct := collideShape(Vector3{-500, 0, 50}, Vector3{500, 0, 50}, obj)
	if ct < 0 {
		t.Fatal("expected hit")
	}
	if ct < 300 || ct > 500 {
		t.Errorf("contact at %d, want near 409", ct)
	}

	// Level flight far above.
	if ct := collideShape(Vector3{-500, 0, 500}, Vector3{500, 0, 500}, obj); ct >= 0 {
		t.Errorf("expected miss above, got %d", ct)
	}

	// Starting inside hits immediately.
	if ct := collideShape(Vector3{0, 0, 0}, Vector3{500, 0, 0}, obj); ct != 0 {
		t.Errorf("inside start = %d, want 0", ct)
	}
}

func TestCollideShapeRectangular(t *testing.T) {
	obj := &GameObject{Rectangular: true, HalfSize: Vector2{100, 100}, Height: 200}

	ct := collideShape(Vector3{-400, 0, 100}, Vector3{400, 0, 100}, obj)
	if ct < 0 {
		t.Fatal("expected hit")
	}
	// Enters the box face at x=-100, 37.5% of the way.
	if ct != 384 {
		t.Errorf("contact at %d, want 384", ct)
	}

	if ct := collideShape(Vector3{-400, 300, 100}, Vector3{400, 300, 100}, obj); ct >= 0 {
		t.Errorf("expected miss beside, got %d", ct)
	}
}

func TestTerrainLineIntersect(t *testing.T) {
	terr := NewTerrain(16, 16, 0)

	// Level flight above flat ground never lands.
	from := Vector3{100, 100, 50}
	to := Vector3{1900, 100, 50}
	if got := terr.LineIntersect(from, to, 100); got != NoHit {
		t.Errorf("flat flight hit at %d", got)
	}

	// Descending flight crosses z=0 halfway through.
	to = Vector3{1900, 100, -50}
	got := terr.LineIntersect(from, to, 100)
	if got == NoHit {
		t.Fatal("expected ground hit")
	}
	if got < 30 || got > 70 {
		t.Errorf("hit at %d, want near 50", got)
	}

	// Starting underground reports an immediate hit.
	if got := terr.LineIntersect(Vector3{100, 100, -10}, to, 100); got != 0 {
		t.Errorf("buried start hit at %d", got)
	}
}
