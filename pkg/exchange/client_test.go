package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/betlink-go/pkg/rpc"
)

// fakeGateway is a scriptable Gateway for session manager tests.
type fakeGateway struct {
	mu sync.Mutex

	logins     int
	calls      int
	keepAlives int

	callTokens      []string
	keepAliveTokens []string

	// loginFn scripts the n-th login attempt (1-based). The default
	// issues "token-N".
	loginFn func(attempt int) (string, error)

	// callFn scripts the n-th business call (1-based). The default
	// returns an empty JSON object.
	callFn func(call int, token string, req *rpc.Request) (json.RawMessage, error)

	keepAliveErr error
}

func (g *fakeGateway) Call(_ context.Context, token string, req *rpc.Request) (json.RawMessage, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.callTokens = append(g.callTokens, token)
	fn := g.callFn
	g.mu.Unlock()

	if fn != nil {
		return fn(n, token, req)
	}
	return json.RawMessage(`{}`), nil
}

func (g *fakeGateway) Login(_ context.Context, _ *Credentials) (string, error) {
	g.mu.Lock()
	g.logins++
	n := g.logins
	fn := g.loginFn
	g.mu.Unlock()

	if fn != nil {
		return fn(n)
	}
	return fmt.Sprintf("token-%d", n), nil
}

func (g *fakeGateway) KeepAlive(_ context.Context, token string) error {
	g.mu.Lock()
	g.keepAlives++
	g.keepAliveTokens = append(g.keepAliveTokens, token)
	err := g.keepAliveErr
	g.mu.Unlock()
	return err
}

func (g *fakeGateway) counts() (logins, calls, keepAlives int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.logins, g.calls, g.keepAlives
}

func (g *fakeGateway) tokensSeen() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.callTokens...)
}

func testCredentials(t *testing.T) *Credentials {
	t.Helper()
	creds, err := NewCredentials("user", "pass", nil, "appkey")
	if err != nil {
		t.Fatalf("NewCredentials: %v", err)
	}
	return creds
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, gw Gateway, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{
		WithLogger(quietLogger()),
		WithLoginRetryDelay(time.Millisecond),
		// Keep-alive stays quiet unless a test shortens the interval.
		WithKeepAliveInterval(time.Hour),
	}, opts...)
	c := New(testCredentials(t), gw, opts...)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSessionToken_EmptyBeforeFirstCall(t *testing.T) {
	c := newTestClient(t, &fakeGateway{})
	if got := c.SessionToken(); got != "" {
		t.Errorf("SessionToken() = %q, want empty", got)
	}
}

func TestExecute_LogsInOnFirstCall(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestClient(t, gw)

	if err := c.Execute(context.Background(), "listEventTypes", nil, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	logins, calls, _ := gw.counts()
	if logins != 1 {
		t.Errorf("logins = %d, want 1", logins)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if got := c.SessionToken(); got != "token-1" {
		t.Errorf("SessionToken() = %q, want token-1", got)
	}
	// The request must never go out without a token.
	for _, tok := range gw.tokensSeen() {
		if tok == "" {
			t.Error("a business call was sent with an empty token")
		}
	}
}

func TestExecute_UnmarshalsResult(t *testing.T) {
	gw := &fakeGateway{
		callFn: func(_ int, _ string, _ *rpc.Request) (json.RawMessage, error) {
			return json.RawMessage(`["a","b"]`), nil
		},
	}
	c := newTestClient(t, gw)

	var got []string
	if err := c.Execute(context.Background(), "m", nil, &got); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("result = %v, want [a b]", got)
	}
}

func TestExecute_MalformedResultIsProtocolError(t *testing.T) {
	gw := &fakeGateway{
		callFn: func(_ int, _ string, _ *rpc.Request) (json.RawMessage, error) {
			return json.RawMessage(`{not json`), nil
		},
	}
	c := newTestClient(t, gw)

	var got []string
	err := c.Execute(context.Background(), "m", nil, &got)
	if !IsProtocolError(err) {
		t.Fatalf("Execute error = %v, want a protocol error", err)
	}
}

func TestExecute_RefreshesOnRejectedToken(t *testing.T) {
	gw := &fakeGateway{
		callFn: func(call int, token string, _ *rpc.Request) (json.RawMessage, error) {
			// The first token is accepted once, then rejected.
			if call == 2 && token == "token-1" {
				return nil, ErrSessionRejected
			}
			return json.RawMessage(`{}`), nil
		},
	}
	c := newTestClient(t, gw)

	ctx := context.Background()
	if err := c.Execute(ctx, "first", nil, nil); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if err := c.Execute(ctx, "second", nil, nil); err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	logins, calls, _ := gw.counts()
	if logins != 2 {
		t.Errorf("logins = %d, want 2", logins)
	}
	// first call + rejected call + retried call
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if got := c.SessionToken(); got != "token-2" {
		t.Errorf("SessionToken() = %q, want token-2", got)
	}
}

func TestExecute_NonAuthErrorsPropagate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"transport", ErrTransport, KindTransport},
		{"remote", &Error{Kind: KindRemote, Code: CodeTooMuchData, Message: "too much data"}, KindRemote},
		{"protocol", ErrProtocol, KindProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{
				callFn: func(_ int, _ string, _ *rpc.Request) (json.RawMessage, error) {
					return nil, tt.err
				},
			}
			c := newTestClient(t, gw)

			err := c.Execute(context.Background(), "m", nil, nil)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Execute error = %v, want %v", err, tt.err)
			}
			logins, calls, _ := gw.counts()
			if logins != 1 {
				t.Errorf("logins = %d, want 1 (no auth retry)", logins)
			}
			if calls != 1 {
				t.Errorf("calls = %d, want 1 (no auth retry)", calls)
			}
		})
	}
}

func TestExecute_ConcurrentCallersShareOneLogin(t *testing.T) {
	release := make(chan struct{})
	gw := &fakeGateway{
		loginFn: func(attempt int) (string, error) {
			<-release
			return fmt.Sprintf("token-%d", attempt), nil
		},
	}
	c := newTestClient(t, gw)

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Execute(context.Background(), "m", nil, nil)
		}(i)
	}

	// Let every caller observe the empty token before login completes.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}
	logins, _, _ := gw.counts()
	if logins != 1 {
		t.Errorf("logins = %d, want exactly 1 for one invalidation", logins)
	}
}

func TestExecute_LoginRetriesUntilSuccess(t *testing.T) {
	gw := &fakeGateway{
		loginFn: func(attempt int) (string, error) {
			if attempt < 3 {
				return "", ErrLoginRejected.WithDetails("loginStatus: INVALID_USERNAME_OR_PASSWORD")
			}
			return "token-ok", nil
		},
	}
	c := newTestClient(t, gw)

	if err := c.Execute(context.Background(), "m", nil, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	logins, _, _ := gw.counts()
	if logins != 3 {
		t.Errorf("logins = %d, want 3", logins)
	}
	if got := c.SessionToken(); got != "token-ok" {
		t.Errorf("SessionToken() = %q, want token-ok", got)
	}
}

func TestExecute_LoginRetriesArePaced(t *testing.T) {
	const retryDelay = 80 * time.Millisecond

	var mu sync.Mutex
	var attempts []time.Time

	gw := &fakeGateway{
		loginFn: func(attempt int) (string, error) {
			mu.Lock()
			attempts = append(attempts, time.Now())
			mu.Unlock()
			if attempt < 4 {
				return "", ErrLoginTransport.WithDetails("identity endpoint unreachable")
			}
			return "token-ok", nil
		},
	}
	c := newTestClient(t, gw, WithLoginRetryDelay(retryDelay))

	if err := c.Execute(context.Background(), "m", nil, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(attempts) != 4 {
		t.Fatalf("login attempts = %d, want 4", len(attempts))
	}
	// Failed attempts must not hot-loop the identity service: each
	// retry waits out the configured delay first.
	for i := 1; i < len(attempts); i++ {
		if gap := attempts[i].Sub(attempts[i-1]); gap < retryDelay {
			t.Errorf("gap between attempts %d and %d = %v, want >= %v", i, i+1, gap, retryDelay)
		}
	}
}

func TestExecute_TokenNeverRevertsAfterRefresh(t *testing.T) {
	gw := &fakeGateway{
		callFn: func(call int, token string, _ *rpc.Request) (json.RawMessage, error) {
			if call == 2 && token == "token-1" {
				return nil, ErrSessionRejected
			}
			return json.RawMessage(`{}`), nil
		},
	}
	c := newTestClient(t, gw)

	ctx := context.Background()
	if err := c.Execute(ctx, "first", nil, nil); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if err := c.Execute(ctx, "second", nil, nil); err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if got := c.SessionToken(); got != "token-2" {
		t.Fatalf("SessionToken() = %q, want token-2", got)
	}

	// Once the refreshed token has been observed, no later read may see
	// the replaced one again.
	var wg sync.WaitGroup
	reads := make([]string, 16)
	for i := range reads {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reads[i] = c.SessionToken()
			_ = c.Execute(ctx, "later", nil, nil)
		}(i)
	}
	wg.Wait()

	for i, tok := range reads {
		if tok != "token-2" {
			t.Errorf("concurrent read %d = %q, want token-2", i, tok)
		}
	}
	for i, tok := range gw.tokensSeen()[2:] {
		if tok != "token-2" {
			t.Errorf("call token %d = %q, want token-2", i+2, tok)
		}
	}
	if logins, _, _ := gw.counts(); logins != 2 {
		t.Errorf("logins = %d, want 2 (no extra refresh)", logins)
	}
}

func TestExecute_LoginAbortedByContext(t *testing.T) {
	gw := &fakeGateway{
		loginFn: func(int) (string, error) {
			return "", ErrLoginRejected
		},
	}
	c := newTestClient(t, gw, WithLoginRetryDelay(50*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.Execute(ctx, "m", nil, nil)
	if !errors.Is(err, ErrLoginAborted) {
		t.Fatalf("Execute error = %v, want ErrLoginAborted", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error chain %v does not carry the context cause", err)
	}
	if got := c.SessionToken(); got != "" {
		t.Errorf("SessionToken() = %q, want empty after aborted login", got)
	}
}

func TestKeepAliveLoop_PingsCurrentToken(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestClient(t, gw, WithKeepAliveInterval(5*time.Millisecond))

	if err := c.Execute(context.Background(), "m", nil, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for {
		_, _, keepAlives := gw.counts()
		if keepAlives >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("keep-alive loop never fired")
		}
		time.Sleep(time.Millisecond)
	}

	gw.mu.Lock()
	tokens := append([]string(nil), gw.keepAliveTokens...)
	gw.mu.Unlock()
	for _, tok := range tokens {
		if tok != "token-1" {
			t.Errorf("keep-alive used token %q, want token-1", tok)
		}
	}
}

func TestKeepAliveLoop_SkipsWithoutSession(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestClient(t, gw, WithKeepAliveInterval(2*time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	_ = c

	logins, _, keepAlives := gw.counts()
	if keepAlives != 0 {
		t.Errorf("keepAlives = %d, want 0 before any login", keepAlives)
	}
	if logins != 0 {
		t.Errorf("logins = %d, want 0: the loop must never log in", logins)
	}
}

func TestKeepAliveLoop_FailureDoesNotTouchToken(t *testing.T) {
	gw := &fakeGateway{keepAliveErr: ErrSessionRejected}
	c := newTestClient(t, gw, WithKeepAliveInterval(5*time.Millisecond))

	if err := c.Execute(context.Background(), "m", nil, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for {
		logins, _, keepAlives := gw.counts()
		if keepAlives >= 3 {
			if logins != 1 {
				t.Errorf("logins = %d, want 1: keep-alive failures must not re-login", logins)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("keep-alive loop never fired")
		}
		time.Sleep(time.Millisecond)
	}

	// The cell still holds the token; only the request path may replace it.
	if got := c.SessionToken(); got != "token-1" {
		t.Errorf("SessionToken() = %q, want token-1", got)
	}
}

func TestClose_Idempotent(t *testing.T) {
	gw := &fakeGateway{}
	c := New(testCredentials(t), gw, WithLogger(quietLogger()))

	if err := c.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestClose_StopsKeepAliveLoop(t *testing.T) {
	gw := &fakeGateway{}
	c := New(testCredentials(t), gw,
		WithLogger(quietLogger()),
		WithKeepAliveInterval(2*time.Millisecond))

	if err := c.Execute(context.Background(), "m", nil, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	_, _, before := gw.counts()
	time.Sleep(20 * time.Millisecond)
	_, _, after := gw.counts()
	if after != before {
		t.Errorf("keepAlives grew from %d to %d after Close", before, after)
	}
}
