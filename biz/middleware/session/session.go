package session

import (
	"context"
	"net/http"

	"our_culture/be/biz/config"
	"our_culture/be/biz/db/redis"
	"our_culture/be/biz/model/domain"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"github.com/rbcervilla/redisstore/v9"
)

const (
	keyUserID            = "user_id"
	keyRole              = "role"
	keyCredentialVersion = "credential_version"
)

func New() app.HandlerFunc {
	conf := config.GetSessionConf()

	store := NewRedisStore(conf.StorePrefix)
	store.Options(sessions.Options{
		Path:     defaultString(conf.Path, "/"),
		Domain:   conf.Domain,
		MaxAge:   defaultInt(conf.MaxAge, 7*24*3600),
		Secure:   conf.Secure,
		HttpOnly: conf.HTTPOnly,
		SameSite: parseSameSite(conf.SameSite),
	})

	return sessions.New(defaultString(conf.Name, "auth_session_id"), store)
}

// Identity is what a logged in session remembers: the claim and the
// credential version it was established under.
type Identity struct {
	Claim             domain.Claim
	CredentialVersion uint
}

// SaveIdentity binds the identity to the current session and persists it.
func SaveIdentity(c *app.RequestContext, id Identity) error {
	sess, ok := current(c)
	if !ok {
		return nil
	}
	sess.Set(keyUserID, id.Claim.ID)
	sess.Set(keyRole, string(id.Claim.Role))
	sess.Set(keyCredentialVersion, id.CredentialVersion)
	return sess.Save()
}

// GetIdentity returns the identity bound to the current session, if any.
func GetIdentity(c *app.RequestContext) (Identity, bool) {
	sess, ok := current(c)
	if !ok {
		return Identity{}, false
	}

	userID, _ := sess.Get(keyUserID).(string)
	role, _ := sess.Get(keyRole).(string)
	cv, ok := sess.Get(keyCredentialVersion).(uint)
	if !ok {
		return Identity{}, false
	}

	claim, err := domain.NewClaim(userID, domain.Role(role))
	if err != nil {
		return Identity{}, false
	}
	return Identity{Claim: claim, CredentialVersion: cv}, true
}

// ID returns the session id, or "" when no session middleware is installed.
func ID(c *app.RequestContext) string {
	sess, ok := current(c)
	if !ok {
		return ""
	}
	return sess.ID()
}

func Remove(c *app.RequestContext) error {
	sess, ok := current(c)
	if !ok {
		return nil
	}

	conf := config.GetSessionConf()
	sess.Clear()
	sess.Options(sessions.Options{
		Path:     defaultString(conf.Path, "/"),
		Domain:   conf.Domain,
		MaxAge:   -1,
		Secure:   conf.Secure,
		HttpOnly: conf.HTTPOnly,
		SameSite: parseSameSite(conf.SameSite),
	})
	return sess.Save()
}

func current(c *app.RequestContext) (sessions.Session, bool) {
	v, ok := c.Get(sessions.DefaultKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(sessions.Session)
	return sess, ok
}

type RedisStore struct {
	*redisstore.RedisStore
}

func (r *RedisStore) Options(opts sessions.Options) {
	r.RedisStore.Options(*opts.ToGorillaOptions())
}

func NewRedisStore(prefix string) *RedisStore {
	redisStore, err := redisstore.NewRedisStore(context.Background(), redis.GetRedisClient())
	if err != nil {
		panic(err)
	}
	if prefix == "" {
		prefix = "auth_session:"
	}
	redisStore.KeyPrefix(prefix)
	return &RedisStore{
		RedisStore: redisStore,
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func parseSameSite(v string) http.SameSite {
	switch v {
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	case "Strict":
		fallthrough
	default:
		return http.SameSiteStrictMode
	}
}
