package testutil

import (
	"sync"

	"github.com/arthur-debert/stowsave/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockLinker is a testify mock of types.Linker.
type MockLinker struct {
	mock.Mock
}

// Invoke records the call and returns the configured result.
func (m *MockLinker) Invoke(workingDir string, args []string) (types.LinkerResult, error) {
	called := m.Called(workingDir, args)
	return called.Get(0).(types.LinkerResult), called.Error(1)
}

// LinkerCall is one invocation seen by a RecordingLinker.
type LinkerCall struct {
	WorkingDir string
	Args       []string
	// Paths is the filesystem listing at the time of the call.
	Paths []string
}

// RecordingLinker records each invocation together with a snapshot of the
// in-memory filesystem, so tests can assert what existed when the linker ran.
type RecordingLinker struct {
	FS     *MemoryFS
	Result types.LinkerResult
	Err    error

	// OnInvoke, when set, runs after the call is recorded.
	OnInvoke func(workingDir string, args []string)

	mu    sync.Mutex
	calls []LinkerCall
}

// Invoke implements types.Linker.
func (r *RecordingLinker) Invoke(workingDir string, args []string) (types.LinkerResult, error) {
	call := LinkerCall{
		WorkingDir: workingDir,
		Args:       append([]string(nil), args...),
	}
	if r.FS != nil {
		call.Paths = r.FS.Paths()
	}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()

	if r.OnInvoke != nil {
		r.OnInvoke(workingDir, args)
	}
	return r.Result, r.Err
}

// Calls returns the recorded invocations.
func (r *RecordingLinker) Calls() []LinkerCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LinkerCall(nil), r.calls...)
}
