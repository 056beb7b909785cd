package git

// Compile-time check that MockService implements Service.
var _ Service = (*MockService)(nil)

// MockService is a configurable mock implementation of Service for testing.
// Each method is backed by a function field. If the function field is nil,
// the method reports absence.
type MockService struct {
	DescribeFunc    func(string) (DescribeResult, bool)
	HeadFunc        func() (Commit, bool)
	BranchFunc      func() (string, bool)
	CommitDepthFunc func() (int64, bool)

	// DescribePatterns records every pattern passed to Describe.
	DescribePatterns []string
}

func (m *MockService) Describe(pattern string) (DescribeResult, bool) {
	m.DescribePatterns = append(m.DescribePatterns, pattern)
	if m.DescribeFunc != nil {
		return m.DescribeFunc(pattern)
	}
	return DescribeResult{}, false
}

func (m *MockService) Head() (Commit, bool) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Commit{}, false
}

func (m *MockService) Branch() (string, bool) {
	if m.BranchFunc != nil {
		return m.BranchFunc()
	}
	return "", false
}

func (m *MockService) CommitDepth() (int64, bool) {
	if m.CommitDepthFunc != nil {
		return m.CommitDepthFunc()
	}
	return 0, false
}
