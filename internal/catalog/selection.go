package catalog

// Direction moves the active selection through the filtered set.
type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// resolveIndex decides the active index after the filtered set changes.
// Rules, in order: an empty set resets to 0 (callers treat "0 with empty
// set" as no selection); a changed filter spec resets to 0; an index
// still in bounds is kept (preserves the user's position across
// re-fetches with identical filters); otherwise the set shrank and the
// index clamps to the last entry.
func resolveIndex(prev int, specChanged bool, length int) int {
	if length == 0 {
		return 0
	}
	if specChanged {
		return 0
	}
	if prev >= 0 && prev < length {
		return prev
	}
	return length - 1
}

// moveIndex applies a relative navigation step, clamped to [0, length-1].
// A step below 1 counts as 1.
func moveIndex(current int, dir Direction, step, length int) int {
	if length == 0 {
		return 0
	}
	if step < 1 {
		step = 1
	}

	next := current
	switch dir {
	case DirectionPrev:
		next -= step
	case DirectionNext:
		next += step
	}

	if next < 0 {
		next = 0
	}
	if next > length-1 {
		next = length - 1
	}
	return next
}

// clampIndex bounds a directly-set index to the filtered set.
func clampIndex(i, length int) int {
	if length == 0 || i < 0 {
		return 0
	}
	if i > length-1 {
		return length - 1
	}
	return i
}
