// Package semver provides the version value types: an immutable semantic
// version, its calendar-aware builder and the compact build metadata token.
package semver

// TreeState reports whether the working tree had uncommitted changes.
type TreeState int

const (
	// TreeStateClean means no tracked file differs from HEAD.
	TreeStateClean TreeState = iota
	// TreeStateDirty means the working tree or index has uncommitted
	// changes, or the state is unknown.
	TreeStateDirty
)

func (s TreeState) String() string {
	switch s {
	case TreeStateClean:
		return "Clean"
	case TreeStateDirty:
		return "Dirty"
	default:
		return "Unknown"
	}
}

// IsDirty returns true for TreeStateDirty.
func (s TreeState) IsDirty() bool {
	return s == TreeStateDirty
}

// TreeStateOf maps a dirty flag to a TreeState.
func TreeStateOf(dirty bool) TreeState {
	if dirty {
		return TreeStateDirty
	}
	return TreeStateClean
}
