package entities

// Slot is a derived positional view of one unit of a campaign's contracted
// capacity. Slots are never persisted; they are recomputed from the active
// assignment set plus the contracted quantity on every read.
type Slot struct {
	Index      int
	Filled     bool
	Assignment *Assignment
}

// BuildSlots places the active assignments into the first positions and pads
// the remainder up to the contracted quantity. Capacity is advisory: when
// more assignments exist than contracted slots, every assignment is still
// returned and the list grows past the contracted quantity.
func BuildSlots(contracted int, active []Assignment) []Slot {
	if contracted < 0 {
		contracted = 0
	}
	size := contracted
	if len(active) > size {
		size = len(active)
	}

	slots := make([]Slot, size)
	for i := range slots {
		slots[i] = Slot{Index: i}
		if i < len(active) {
			assignment := active[i]
			slots[i].Filled = assignment.CreatorID != ""
			slots[i].Assignment = &assignment
		}
	}
	return slots
}
