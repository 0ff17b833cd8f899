package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"erp-console/internal/apiclient"
	"erp-console/internal/session"
)

const (
	tokenKey = "token"

	storeCtxKey = "session.store"
	apiCtxKey   = "api.client"
)

// cookieTokens keeps the bearer token in the gin session.
type cookieTokens struct {
	s sessions.Session
}

func (t cookieTokens) Token() (string, bool) {
	tok, ok := t.s.Get(tokenKey).(string)
	return tok, ok && tok != ""
}

func (t cookieTokens) SetToken(token string) error {
	t.s.Set(tokenKey, token)
	return t.s.Save()
}

func (t cookieTokens) ClearToken() error {
	if t.s.Get(tokenKey) == nil {
		return nil
	}
	t.s.Delete(tokenKey)
	return t.s.Save()
}

type SessionConfig struct {
	API       *apiclient.Client
	Log       zerolog.Logger
	Observers []func(session.Snapshot)
}

// InjectSession bootstraps a session store for the request from the token in
// the session cookie and exposes it, plus an API client carrying that token,
// to the handlers down the chain.
func InjectSession(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := cfg.Log.With().Str("request_id", RequestIDFrom(c)).Logger()
		store := session.NewStore(cfg.API, cookieTokens{s: sessions.Default(c)}, session.WithLogger(log))
		for _, fn := range cfg.Observers {
			store.Subscribe(fn)
		}
		c.Set(storeCtxKey, store)

		sess, _ := store.Bootstrap(c.Request.Context())
		c.Set(apiCtxKey, cfg.API.WithToken(sess.Token).OnUnauthorized(store.Invalidate))

		c.Next()
	}
}

func Store(c *gin.Context) *session.Store {
	if v, ok := c.Get(storeCtxKey); ok {
		if s, ok := v.(*session.Store); ok {
			return s
		}
	}
	return nil
}

// CurrentSession returns the signed-in actor, if any.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	s := Store(c)
	if s == nil {
		return session.Session{}, false
	}
	snap := s.Snapshot()
	if snap.Session == nil {
		return session.Session{}, false
	}
	return *snap.Session, true
}

// API returns the request's ERP client. It carries the session token and
// drops the session when the API rejects it.
func API(c *gin.Context) *apiclient.Client {
	if v, ok := c.Get(apiCtxKey); ok {
		if api, ok := v.(*apiclient.Client); ok {
			return api
		}
	}
	return nil
}

// IsFetch reports whether the request came from the page script rather than
// a full navigation.
func IsFetch(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("X-Requested-With"), "fetch")
}
