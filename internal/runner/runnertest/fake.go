// Package runnertest provides a scripted Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []string
}

// Argv returns the call as a single space-joined string.
func (c Call) Argv() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Response is what a matching invocation returns.
type Response struct {
	Out []byte
	Err error
	// Do runs before returning, e.g. to write a screenshot file.
	Do func(args []string) error
}

// Fake matches invocations by argv prefix. Later registrations take
// precedence over earlier ones.
type Fake struct {
	mu        sync.Mutex
	responses []prefixResponse
	Calls     []Call
}

type prefixResponse struct {
	prefix string
	resp   Response
}

// On registers resp for any invocation whose argv starts with prefix.
func (f *Fake) On(prefix string, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, prefixResponse{prefix: prefix, resp: resp})
	return f
}

// OnOutput is shorthand for On with a plain stdout response.
func (f *Fake) OnOutput(prefix, out string) *Fake {
	return f.On(prefix, Response{Out: []byte(out)})
}

func (f *Fake) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	var matched *Response
	for i := len(f.responses) - 1; i >= 0; i-- {
		if strings.HasPrefix(call.Argv(), f.responses[i].prefix) {
			r := f.responses[i].resp
			matched = &r
			break
		}
	}
	f.mu.Unlock()

	if matched == nil {
		return nil, fmt.Errorf("runnertest: unexpected command %q", call.Argv())
	}
	if matched.Do != nil {
		if err := matched.Do(args); err != nil {
			return nil, err
		}
	}
	return matched.Out, matched.Err
}

// CallsWithPrefix returns recorded calls whose argv starts with prefix.
func (f *Fake) CallsWithPrefix(prefix string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.Calls {
		if strings.HasPrefix(c.Argv(), prefix) {
			out = append(out, c)
		}
	}
	return out
}
