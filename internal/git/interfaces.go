package git

// Service provides the version-control facts needed to stamp a version.
// Every method reports absence with ok == false instead of an error: a
// missing repository, HEAD or tag must never stop version resolution.
type Service interface {
	// Describe finds the nearest tag matching the glob pattern reachable
	// from HEAD. A blank pattern matches every tag.
	Describe(pattern string) (DescribeResult, bool)

	// Head returns the HEAD commit.
	Head() (Commit, bool)

	// Branch returns the current branch name.
	Branch() (string, bool)

	// CommitDepth returns the number of commits reachable from HEAD.
	CommitDepth() (int64, bool)
}

// Compile-time check that NoRepository implements Service.
var _ Service = NoRepository{}

// NoRepository is the Service used outside of any repository. Every fact
// is absent.
type NoRepository struct{}

func (NoRepository) Describe(string) (DescribeResult, bool) { return DescribeResult{}, false }
func (NoRepository) Head() (Commit, bool)                   { return Commit{}, false }
func (NoRepository) Branch() (string, bool)                 { return "", false }
func (NoRepository) CommitDepth() (int64, bool)             { return 0, false }
