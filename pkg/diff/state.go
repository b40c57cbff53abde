package diff

// State is the outcome of comparing one node of two object graphs.
type State int

const (
	// Unchanged means both sides are present (or both absent) and no difference was found.
	Unchanged State = iota
	// Added means the value exists only in the target.
	Added
	// Deleted means the value exists only in the original.
	Deleted
	// Modified means both sides are present and some contained value differs.
	Modified
)

func (s State) String() string {
	switch s {
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	case Modified:
		return "Modified"
	default:
		return "Unchanged"
	}
}

// Changed reports whether s is anything other than Unchanged.
func (s State) Changed() bool {
	return s != Unchanged
}

// reversed swaps Added and Deleted.
func (s State) reversed() State {
	switch s {
	case Added:
		return Deleted
	case Deleted:
		return Added
	default:
		return s
	}
}

// presence returns the state implied by which sides are present, and whether both are.
func presence(original, target any) (State, bool) {
	switch {
	case original == nil && target == nil:
		return Unchanged, false
	case original == nil:
		return Added, false
	case target == nil:
		return Deleted, false
	default:
		return Unchanged, true
	}
}
