package endpoint

import "testing"

func TestTargetsSameIgnoresOrder(t *testing.T) {
	a := Targets{"10.0.0.1", "10.0.0.2"}
	b := Targets{"10.0.0.2", "10.0.0.1"}
	if !a.Same(b) {
		t.Fatalf("expected %v and %v to be considered the same", a, b)
	}
}

func TestTargetsSameDetectsDifference(t *testing.T) {
	a := Targets{"10.0.0.1", "10.0.0.2"}
	b := Targets{"10.0.0.1", "10.0.0.3"}
	if a.Same(b) {
		t.Fatalf("expected %v and %v to differ", a, b)
	}
	c := Targets{"10.0.0.1"}
	if a.Same(c) {
		t.Fatalf("expected different-length targets to differ")
	}
}
