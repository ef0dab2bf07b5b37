package clock

// Pin is the highlighted segment. The zero value has nothing pinned.
type Pin struct {
	segment int // index + 1, 0 means none
}

// PinSegment returns a Pin on segment i, or the zero Pin if i is out of
// range.
func PinSegment(i int) Pin {
	if i < 0 || i >= SegmentCount {
		return Pin{}
	}
	return Pin{segment: i + 1}
}

// Segment returns the pinned index and whether anything is pinned.
func (p Pin) Segment() (int, bool) {
	return p.segment - 1, p.segment > 0
}

// Toggle pins segment i, or unpins it when it is already pinned.
func (p Pin) Toggle(i int) Pin {
	if cur, ok := p.Segment(); ok && cur == i {
		return Pin{}
	}
	return PinSegment(i)
}

// Clear unpins.
func (p Pin) Clear() Pin {
	return Pin{}
}
