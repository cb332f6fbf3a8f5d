package model

import (
	"errors"
	"testing"
)

func sampleCollection() *Collection {
	c := NewCollection(nil)
	for _, name := range []string{"Run", "Read", "Meditate"} {
		h := NewHabit(name, "", TrackPeriodic)
		h.ID = name + "-id"
		c.Add(h)
	}
	return c
}

func names(c *Collection) []string {
	out := make([]string, 0, c.Len())
	for _, h := range c.Habits {
		out = append(out, h.Name)
	}
	return out
}

func TestMovePreservesOthers(t *testing.T) {
	c := sampleCollection()
	if !c.Move("Meditate-id", 0) {
		t.Fatal("Move returned false for known id")
	}
	got := names(c)
	want := []string{"Meditate", "Run", "Read"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	c.Move("Meditate-id", 99)
	if c.Habits[2].Name != "Meditate" {
		t.Fatalf("clamped move: order = %v", names(c))
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	c := sampleCollection()
	if c.Delete("missing") || c.ToggleVisibility("missing") || c.ToggleDate("missing", "2024-01-01") || c.Move("missing", 0) {
		t.Fatal("operations on unknown id should report false")
	}
	if c.Len() != 3 {
		t.Fatalf("len = %d, want 3", c.Len())
	}
}

func TestResolve(t *testing.T) {
	c := sampleCollection()
	h, err := c.Resolve("read")
	if err != nil || h.ID != "Read-id" {
		t.Fatalf("Resolve by name = %v, %v", h, err)
	}
	h, err = c.Resolve("Med")
	if err != nil || h.Name != "Meditate" {
		t.Fatalf("Resolve by id prefix = %v, %v", h, err)
	}
	if _, err := c.Resolve("R"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ambiguous prefix err = %v, want ErrNotFound", err)
	}
}

func TestVisibleKeepsOrder(t *testing.T) {
	c := sampleCollection()
	c.ToggleVisibility("Read-id")
	v := c.Visible()
	if len(v) != 2 || v[0].Name != "Run" || v[1].Name != "Meditate" {
		t.Fatalf("visible = %v", v)
	}
}
