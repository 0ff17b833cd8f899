package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp-console/internal/apiclient"
	"erp-console/internal/models"
)

type fakeAuth struct {
	mu         sync.Mutex
	loginFn    func(models.Credentials) (models.AuthResult, error)
	meFn       func(string) (models.User, error)
	logoutErr  error
	meCalls    int
	logoutToks []string
}

func (f *fakeAuth) Login(_ context.Context, c models.Credentials) (models.AuthResult, error) {
	return f.loginFn(c)
}

func (f *fakeAuth) Me(_ context.Context, token string) (models.User, error) {
	f.mu.Lock()
	f.meCalls++
	f.mu.Unlock()
	return f.meFn(token)
}

func (f *fakeAuth) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutToks = append(f.logoutToks, token)
	return f.logoutErr
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test"))
	require.NoError(t, err)
	return tok
}

var ada = models.User{ID: "u1", Name: "Ada", Email: "ada@erp.test", Role: models.RoleAdmin, Status: true}

func TestBootstrapWithoutTokenMakesNoCall(t *testing.T) {
	auth := &fakeAuth{meFn: func(string) (models.User, error) { return ada, nil }}
	s := NewStore(auth, NewMemoryTokens(""))

	_, ok := s.Bootstrap(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 0, auth.meCalls)

	snap := s.Snapshot()
	assert.True(t, snap.Resolved)
	assert.Nil(t, snap.Session)
}

func TestBootstrapRestoresSession(t *testing.T) {
	tok := signed(t, time.Now().Add(time.Hour))
	auth := &fakeAuth{meFn: func(got string) (models.User, error) {
		assert.Equal(t, tok, got)
		return ada, nil
	}}
	s := NewStore(auth, NewMemoryTokens(tok))

	sess, ok := s.Bootstrap(context.Background())
	require.True(t, ok)
	assert.Equal(t, "u1", sess.ID)
	assert.Equal(t, models.RoleAdmin, s.Snapshot().Role())
	assert.Equal(t, tok, sess.Token)
}

func TestBootstrapClearsRejectedToken(t *testing.T) {
	tokens := NewMemoryTokens("opaque-token")
	auth := &fakeAuth{meFn: func(string) (models.User, error) {
		return models.User{}, &apiclient.Error{Kind: apiclient.KindAuth, Status: 401}
	}}
	s := NewStore(auth, tokens)

	_, ok := s.Bootstrap(context.Background())
	assert.False(t, ok)
	_, has := tokens.Token()
	assert.False(t, has)

	// second bootstrap has nothing to send
	_, ok = s.Bootstrap(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 1, auth.meCalls)
}

func TestBootstrapSkipsExpiredJWT(t *testing.T) {
	tokens := NewMemoryTokens(signed(t, time.Now().Add(-time.Minute)))
	auth := &fakeAuth{meFn: func(string) (models.User, error) { return ada, nil }}
	s := NewStore(auth, tokens)

	_, ok := s.Bootstrap(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 0, auth.meCalls)
	_, has := tokens.Token()
	assert.False(t, has)
}

func TestLoginWrongPasswordLeavesNoSession(t *testing.T) {
	tokens := NewMemoryTokens("")
	auth := &fakeAuth{loginFn: func(models.Credentials) (models.AuthResult, error) {
		return models.AuthResult{}, &apiclient.Error{Kind: apiclient.KindAuth, Status: 401, Message: "Invalid credentials"}
	}}
	s := NewStore(auth, tokens)

	_, err := s.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidCredentials))
	assert.Nil(t, s.Snapshot().Session)
	_, has := tokens.Token()
	assert.False(t, has)
}

func TestLoginFailureKeepsPriorSession(t *testing.T) {
	tokens := NewMemoryTokens("")
	fail := false
	auth := &fakeAuth{loginFn: func(models.Credentials) (models.AuthResult, error) {
		if fail {
			return models.AuthResult{}, &apiclient.Error{Kind: apiclient.KindNetwork, Err: errors.New("dial")}
		}
		return models.AuthResult{Token: "t1", User: ada}, nil
	}}
	s := NewStore(auth, tokens)

	_, err := s.Login(context.Background(), models.Credentials{Email: "ada@erp.test", Password: "x"})
	require.NoError(t, err)

	fail = true
	_, err = s.Login(context.Background(), models.Credentials{Email: "ada@erp.test", Password: "x"})
	assert.True(t, IsKind(err, NetworkFailure))
	require.NotNil(t, s.Snapshot().Session)
	assert.Equal(t, "t1", s.Snapshot().Session.Token)
}

func TestLoginErrorKinds(t *testing.T) {
	cases := map[apiclient.Kind]AuthErrorKind{
		apiclient.KindAuth:       InvalidCredentials,
		apiclient.KindValidation: InvalidCredentials,
		apiclient.KindNetwork:    NetworkFailure,
		apiclient.KindServer:     ServerError,
	}
	for in, want := range cases {
		auth := &fakeAuth{loginFn: func(models.Credentials) (models.AuthResult, error) {
			return models.AuthResult{}, &apiclient.Error{Kind: in}
		}}
		_, err := NewStore(auth, NewMemoryTokens("")).Login(context.Background(), models.Credentials{})
		assert.True(t, IsKind(err, want), "kind %v", in)
	}
}

func TestObserversSeeEveryMutationInOrder(t *testing.T) {
	auth := &fakeAuth{
		loginFn: func(models.Credentials) (models.AuthResult, error) {
			return models.AuthResult{Token: "t1", User: ada}, nil
		},
		logoutErr: errors.New("offline"),
	}
	s := NewStore(auth, NewMemoryTokens(""))

	var order []string
	var events []Event
	s.Subscribe(func(Snapshot) { order = append(order, "first") })
	unsub := s.Subscribe(func(snap Snapshot) {
		order = append(order, "second")
		events = append(events, snap.Event)
	})

	_, err := s.Login(context.Background(), models.Credentials{})
	require.NoError(t, err)
	s.Logout(context.Background())

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	assert.Equal(t, []Event{EventLogin, EventLogout}, events)
	assert.Equal(t, []string{"t1"}, auth.logoutToks)

	unsub()
	s.Invalidate()
	assert.Len(t, order, 4)
}

func TestInvalidateClearsToken(t *testing.T) {
	tokens := NewMemoryTokens("")
	auth := &fakeAuth{loginFn: func(models.Credentials) (models.AuthResult, error) {
		return models.AuthResult{Token: "t1", User: ada}, nil
	}}
	s := NewStore(auth, tokens)
	_, err := s.Login(context.Background(), models.Credentials{})
	require.NoError(t, err)

	var seen Snapshot
	s.Subscribe(func(snap Snapshot) { seen = snap })
	s.Invalidate()

	assert.Nil(t, s.Snapshot().Session)
	assert.Equal(t, EventInvalidated, seen.Event)
	_, has := tokens.Token()
	assert.False(t, has)
	assert.Empty(t, auth.logoutToks)
}

func TestUnknownRoleKeptVerbatim(t *testing.T) {
	auth := &fakeAuth{meFn: func(string) (models.User, error) {
		return models.User{ID: "u9", Role: "AUDITOR"}, nil
	}}
	s := NewStore(auth, NewMemoryTokens("opaque"))
	sess, ok := s.Bootstrap(context.Background())
	require.True(t, ok)
	assert.Equal(t, models.UserRole("AUDITOR"), sess.Role)
	assert.False(t, sess.Role.Valid())
}

func TestConcurrentLoginsLeaveOneCoherentSession(t *testing.T) {
	tokens := NewMemoryTokens("")
	auth := &fakeAuth{loginFn: func(c models.Credentials) (models.AuthResult, error) {
		return models.AuthResult{Token: "tok-" + c.Email, User: models.User{ID: c.Email, Email: c.Email, Role: models.RoleEmployee}}, nil
	}}
	s := NewStore(auth, tokens)

	var wg sync.WaitGroup
	for _, email := range []string{"a", "b", "c", "d"} {
		email := email
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Login(context.Background(), models.Credentials{Email: email})
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	require.NotNil(t, snap.Session)
	assert.Equal(t, "tok-"+snap.Session.Email, snap.Session.Token)
}

func TestBootstrapYieldsToLogoutDuringIdentityFetch(t *testing.T) {
	tokens := NewMemoryTokens("tok-ada")
	auth := &fakeAuth{}
	s := NewStore(auth, tokens)
	auth.meFn = func(string) (models.User, error) {
		s.Logout(context.Background())
		return ada, nil
	}

	_, ok := s.Bootstrap(context.Background())
	assert.False(t, ok)

	_, has := tokens.Token()
	assert.False(t, has)
	snap := s.Snapshot()
	assert.True(t, snap.Resolved)
	assert.Nil(t, snap.Session)
}
