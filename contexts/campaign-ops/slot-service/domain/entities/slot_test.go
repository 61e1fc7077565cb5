package entities

import "testing"

func TestBuildSlotsPadsAndGrows(t *testing.T) {
	active := []Assignment{
		{AssignmentID: "a-1", CreatorID: "cr-1", Status: AssignmentConfirmed},
	}

	slots := BuildSlots(3, active)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if !slots[0].Filled || slots[0].Assignment.CreatorID != "cr-1" {
		t.Fatalf("expected cr-1 in slot 0, got %+v", slots[0])
	}
	if slots[1].Filled || slots[2].Filled {
		t.Fatal("expected padding slots to be empty")
	}

	many := []Assignment{
		{AssignmentID: "a-1", CreatorID: "cr-1", Status: AssignmentConfirmed},
		{AssignmentID: "a-2", CreatorID: "cr-2", Status: AssignmentConfirmed},
		{AssignmentID: "a-3", CreatorID: "cr-3", Status: AssignmentConfirmed},
	}
	if got := len(BuildSlots(2, many)); got != 3 {
		t.Fatalf("expected the view to grow past contracted, got %d slots", got)
	}
}

func TestCountActiveIgnoresRemoved(t *testing.T) {
	items := []Assignment{
		{Status: AssignmentConfirmed},
		{Status: AssignmentInProduction},
		{Status: AssignmentRemoved},
	}
	if got := CountActive(items); got != 2 {
		t.Fatalf("expected 2 active assignments, got %d", got)
	}
}
