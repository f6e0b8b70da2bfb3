package ui

// MockTerminal records everything written to it. It is used in tests.
type MockTerminal struct {
	Output []string
	Errors []string
	Status []string
}

var _ Terminal = &MockTerminal{}

func (m *MockTerminal) Print(line string) {
	m.Output = append(m.Output, line)
}

func (m *MockTerminal) Error(line string) {
	m.Errors = append(m.Errors, line)
}

func (m *MockTerminal) SetStatus(lines []string) {
	m.Status = append([]string{}, lines...)
}

func (m *MockTerminal) CanUpdateStatus() bool {
	return true
}
