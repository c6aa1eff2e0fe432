package keypad

// The toggled key's commands are laid out over the other 15 keys in index
// order, with a gap at the toggled key's own index. HighlightLimit and
// ResolveSlot must agree: an index is highlighted iff it resolves to a slot.

// HighlightLimit returns the exclusive upper bound of the indices highlighted
// for a key at index toggled with n commands. When n > toggled the gap falls
// inside the highlighted range, which then extends by one.
func HighlightLimit(n, toggled int) int {
	if n > toggled {
		return n + 1
	}
	return n
}

// SlotAvailable reports whether index is highlighted as a command slot.
func SlotAvailable(index, toggled, n int) bool {
	return index != toggled && index < HighlightLimit(n, toggled)
}

// ResolveSlot returns the command slot selected by pressing index while the
// key at toggled is selecting. ok is false when no command maps to index.
func ResolveSlot(index, toggled, n int) (slot int, ok bool) {
	if index == toggled {
		return -1, false
	}
	slot = index
	if slot > toggled {
		slot--
	}
	if slot < 0 || slot >= n {
		return slot, false
	}
	return slot, true
}
