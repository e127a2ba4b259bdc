package apifake

import (
	"context"
	"sync"

	"github.com/jrsteele09/quickserve-session/api"
)

var _ api.AuthAPI = (*FakeAuthAPI)(nil)

// Method names recorded by FakeAuthAPI.
const (
	MethodLogin   = "Login"
	MethodSignup  = "Signup"
	MethodLogout  = "Logout"
	MethodRefresh = "RefreshToken"
	MethodVerify  = "VerifyToken"
)

// Call is one recorded invocation. Arg is the credentials, form, email or
// refresh token the method was called with. Err is set when the call's
// context ended while it was held.
type Call struct {
	Method string
	Arg    any
	Err    error
}

type response struct {
	data *api.AuthData
	err  error
}

// FakeAuthAPI is a scripted api.AuthAPI. Unscripted methods succeed with no
// data (Login, Signup and RefreshToken then return nil, nil).
type FakeAuthAPI struct {
	responses map[string]response
	calls     []Call
	gate      chan struct{}
	lock      sync.Mutex
}

func New() *FakeAuthAPI {
	return &FakeAuthAPI{
		responses: make(map[string]response),
	}
}

// Respond scripts the result of method.
func (f *FakeAuthAPI) Respond(method string, data *api.AuthData, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.responses[method] = response{data: data, err: err}
}

// Hold makes every later call block until the returned release func is
// called or the call's context is done.
func (f *FakeAuthAPI) Hold() (release func()) {
	gate := make(chan struct{})
	f.lock.Lock()
	f.gate = gate
	f.lock.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.lock.Lock()
			if f.gate == gate {
				f.gate = nil
			}
			f.lock.Unlock()
			close(gate)
		})
	}
}

// Calls returns the recorded calls to method, or all calls when method is "".
func (f *FakeAuthAPI) Calls(method string) []Call {
	f.lock.Lock()
	defer f.lock.Unlock()

	var out []Call
	for _, c := range f.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeAuthAPI) Login(ctx context.Context, creds api.Credentials) (*api.AuthData, error) {
	return f.call(ctx, MethodLogin, creds)
}

func (f *FakeAuthAPI) Signup(ctx context.Context, form any) (*api.AuthData, error) {
	return f.call(ctx, MethodSignup, form)
}

func (f *FakeAuthAPI) Logout(ctx context.Context, email string) error {
	_, err := f.call(ctx, MethodLogout, email)
	return err
}

func (f *FakeAuthAPI) RefreshToken(ctx context.Context, refreshToken string) (*api.AuthData, error) {
	return f.call(ctx, MethodRefresh, refreshToken)
}

func (f *FakeAuthAPI) VerifyToken(ctx context.Context) error {
	_, err := f.call(ctx, MethodVerify, nil)
	return err
}

func (f *FakeAuthAPI) call(ctx context.Context, method string, arg any) (*api.AuthData, error) {
	f.lock.Lock()
	f.calls = append(f.calls, Call{Method: method, Arg: arg})
	idx := len(f.calls) - 1
	gate := f.gate
	f.lock.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			f.lock.Lock()
			f.calls[idx].Err = ctx.Err()
			f.lock.Unlock()
			return nil, ctx.Err()
		}
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	r := f.responses[method]
	return r.data, r.err
}
