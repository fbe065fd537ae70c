package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwash-api/internal/client"
	"starwash-api/internal/core/domain"
	"starwash-api/internal/pkg/jwt"
)

const sessionTestSecret = "session-test-secret"

// apiStub is a minimal StarWash API: /me resolves tokens it issued,
// anything else is rejected.
type apiStub struct {
	mu      sync.Mutex
	users   map[string]client.User // token -> user
	meDelay chan struct{}          // when set, /me blocks until closed
	meCalls int
}

func newAPIStub() *apiStub {
	return &apiStub{users: map[string]client.User{}}
}

func (s *apiStub) issue(t *testing.T, user client.User) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(user.ID, user.Username, user.Role, sessionTestSecret, 1)
	require.NoError(t, err)
	s.mu.Lock()
	s.users[token] = user
	s.mu.Unlock()
	return token
}

func (s *apiStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.meCalls++
		delay := s.meDelay
		s.mu.Unlock()
		if delay != nil {
			<-delay
		}

		token := ""
		if auth := r.Header.Get("Authorization"); len(auth) > 7 {
			token = auth[7:]
		}
		s.mu.Lock()
		user, ok := s.users[token]
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"success":false,"error":"Invalid or expired token"}`)
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "User retrieved successfully",
			"data":    map[string]interface{}{"user": user, "role": user.Role},
		})
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"message":"Logged out successfully"}`)
	})
	return mux
}

func newSessionFixture(t *testing.T) (*apiStub, *client.Session, *client.MemoryStore) {
	t.Helper()
	stub := newAPIStub()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	creds := client.NewMemoryStore()
	api := client.New(srv.URL)
	return stub, client.NewSession(api, creds), creds
}

func TestSession_StartsLoading(t *testing.T) {
	_, sess, _ := newSessionFixture(t)

	st := sess.State()
	assert.True(t, st.Loading)
	assert.False(t, st.IsAuthenticated)
}

func TestSession_InitWithNoToken(t *testing.T) {
	_, sess, _ := newSessionFixture(t)

	require.NoError(t, sess.Init(context.Background()))

	st := sess.State()
	assert.False(t, st.Loading, "init always settles")
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
}

func TestSession_InitRestoresStoredToken(t *testing.T) {
	stub, sess, creds := newSessionFixture(t)
	token := stub.issue(t, client.User{ID: 1, Username: "maria", FullName: "Maria Santos", Role: "ADMIN"})
	require.NoError(t, creds.Save(token))

	require.NoError(t, sess.Init(context.Background()))

	st := sess.State()
	assert.False(t, st.Loading)
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, domain.RoleAdmin, st.Role)
	require.NotNil(t, st.User)
	assert.Equal(t, "maria", st.User.Username)
}

func TestSession_InitDropsExpiredTokenWithoutCallingAPI(t *testing.T) {
	stub, sess, creds := newSessionFixture(t)

	expired, err := jwt.GenerateAccessToken(1, "maria", "ADMIN", sessionTestSecret, -1)
	require.NoError(t, err)
	require.NoError(t, creds.Save(expired))

	require.NoError(t, sess.Init(context.Background()))

	st := sess.State()
	assert.False(t, st.Loading)
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, 0, stub.meCalls, "expired token is dropped locally")

	stored, _ := creds.Load()
	assert.Empty(t, stored, "stale credential is cleared")
}

func TestSession_InitDropsRejectedToken(t *testing.T) {
	_, sess, creds := newSessionFixture(t)
	require.NoError(t, creds.Save(unknownToken(t)))

	require.NoError(t, sess.Init(context.Background()))

	st := sess.State()
	assert.False(t, st.Loading)
	assert.False(t, st.IsAuthenticated)

	stored, _ := creds.Load()
	assert.Empty(t, stored)
}

func unknownToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(99, "ghost", "STAFF", sessionTestSecret, 1)
	require.NoError(t, err)
	return token
}

func TestSession_Login(t *testing.T) {
	stub, sess, creds := newSessionFixture(t)
	token := stub.issue(t, client.User{ID: 2, Username: "juan", Role: "STAFF"})

	require.NoError(t, sess.Login(context.Background(), token))

	st := sess.State()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, domain.RoleStaff, st.Role)

	stored, _ := creds.Load()
	assert.Equal(t, token, stored)
}

func TestSession_LoginRollbackOnRejectedToken(t *testing.T) {
	_, sess, creds := newSessionFixture(t)

	err := sess.Login(context.Background(), unknownToken(t))
	require.Error(t, err)

	st := sess.State()
	assert.False(t, st.Loading)
	assert.False(t, st.IsAuthenticated)

	stored, _ := creds.Load()
	assert.Empty(t, stored, "rejected token does not linger in the store")
}

func TestSession_Logout(t *testing.T) {
	stub, sess, creds := newSessionFixture(t)
	token := stub.issue(t, client.User{ID: 2, Username: "juan", Role: "STAFF"})
	require.NoError(t, sess.Login(context.Background(), token))

	sess.Logout()

	st := sess.State()
	assert.False(t, st.Loading)
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)

	stored, _ := creds.Load()
	assert.Empty(t, stored)
}

// A /me response that arrives after the operator logged out must not
// resurrect the session.
func TestSession_LateLookupDiscardedAfterLogout(t *testing.T) {
	stub, sess, creds := newSessionFixture(t)
	token := stub.issue(t, client.User{ID: 1, Username: "maria", Role: "ADMIN"})
	require.NoError(t, creds.Save(token))

	release := make(chan struct{})
	stub.mu.Lock()
	stub.meDelay = release
	stub.mu.Unlock()

	initDone := make(chan error, 1)
	go func() { initDone <- sess.Init(context.Background()) }()

	// Wait until the lookup is actually in flight
	require.Eventually(t, func() bool {
		stub.mu.Lock()
		defer stub.mu.Unlock()
		return stub.meCalls > 0
	}, time.Second, 5*time.Millisecond)

	sess.Logout()

	stub.mu.Lock()
	stub.meDelay = nil
	stub.mu.Unlock()
	close(release)

	require.NoError(t, <-initDone)

	st := sess.State()
	assert.False(t, st.IsAuthenticated, "late lookup is discarded")
	assert.False(t, st.Loading)
}

// A second login superseding a stalled first one keeps the second
// identity regardless of arrival order.
func TestSession_NewerLoginWins(t *testing.T) {
	stub, sess, _ := newSessionFixture(t)
	first := stub.issue(t, client.User{ID: 1, Username: "maria", Role: "ADMIN"})
	second := stub.issue(t, client.User{ID: 2, Username: "juan", Role: "STAFF"})

	release := make(chan struct{})
	stub.mu.Lock()
	stub.meDelay = release
	stub.mu.Unlock()

	firstDone := make(chan error, 1)
	go func() { firstDone <- sess.Login(context.Background(), first) }()

	require.Eventually(t, func() bool {
		stub.mu.Lock()
		defer stub.mu.Unlock()
		return stub.meCalls > 0
	}, time.Second, 5*time.Millisecond)

	stub.mu.Lock()
	stub.meDelay = nil
	stub.mu.Unlock()

	require.NoError(t, sess.Login(context.Background(), second))

	close(release)
	<-firstDone

	st := sess.State()
	require.NotNil(t, st.User)
	assert.Equal(t, "juan", st.User.Username, "stalled first login cannot overwrite the newer session")
	assert.Equal(t, domain.RoleStaff, st.Role)
}
