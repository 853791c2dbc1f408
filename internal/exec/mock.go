package exec

import (
	"context"
	"fmt"
	"strings"
)

// MockCommander is a test double that records command calls and returns preset responses.
type MockCommander struct {
	// Responses maps command keys to their preset responses.
	// The key is formatted as: "command arg1 arg2 ..."
	Responses map[string]CommandResponse

	// Calls records all commands that were executed, in order.
	Calls []CommandCall
}

// CommandCall records details of a single command execution.
type CommandCall struct {
	Dir     string
	Command string
	Args    []string
	// StdoutOnly is set for calls made through Output.
	StdoutOnly bool
}

// Key returns the lookup key of the call.
func (c CommandCall) Key() string {
	return buildCommandKey(c.Command, c.Args)
}

// CommandResponse defines the response for a specific command.
type CommandResponse struct {
	Output []byte
	Err    error
}

// NewMockCommander creates a new MockCommander with empty responses and calls.
func NewMockCommander() *MockCommander {
	return &MockCommander{
		Responses: make(map[string]CommandResponse),
		Calls:     make([]CommandCall, 0),
	}
}

// Run records the command call and returns the preset response if one exists.
// If no response is found for the key, it returns nil, nil.
func (m *MockCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	return m.record(CommandCall{Dir: dir, Command: command, Args: args})
}

// Output records the call as stdout-only and answers it like Run.
func (m *MockCommander) Output(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	return m.record(CommandCall{Dir: dir, Command: command, Args: args, StdoutOnly: true})
}

func (m *MockCommander) record(call CommandCall) ([]byte, error) {
	m.Calls = append(m.Calls, call)

	if resp, ok := m.Responses[call.Key()]; ok {
		return resp.Output, resp.Err
	}
	return nil, nil
}

// SetResponse configures a preset response for a specific command.
func (m *MockCommander) SetResponse(command string, args []string, output []byte, err error) {
	m.Responses[buildCommandKey(command, args)] = CommandResponse{
		Output: output,
		Err:    err,
	}
}

// SetGitResponse is SetResponse for git with string output.
func (m *MockCommander) SetGitResponse(output string, err error, args ...string) {
	m.SetResponse("git", args, []byte(output), err)
}

// LastCall returns the most recent command call, or nil if none was made.
func (m *MockCommander) LastCall() *CommandCall {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

// CallCount returns the number of commands that have been executed.
func (m *MockCommander) CallCount() int {
	return len(m.Calls)
}

// WasCalled checks if a command with the given arguments was ever executed.
func (m *MockCommander) WasCalled(command string, args ...string) bool {
	key := buildCommandKey(command, args)
	for _, call := range m.Calls {
		if call.Key() == key {
			return true
		}
	}
	return false
}

// CallKeys returns the keys of all recorded calls in execution order.
func (m *MockCommander) CallKeys() []string {
	keys := make([]string, len(m.Calls))
	for i, call := range m.Calls {
		keys[i] = call.Key()
	}
	return keys
}

// Reset clears all recorded calls and responses.
func (m *MockCommander) Reset() {
	m.Calls = make([]CommandCall, 0)
	m.Responses = make(map[string]CommandResponse)
}

func buildCommandKey(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return fmt.Sprintf("%s %s", command, strings.Join(args, " "))
}
