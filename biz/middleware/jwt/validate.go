package jwt

import (
	"context"
	"errors"
	"strings"

	"our_culture/be/biz/config"
	"our_culture/be/biz/metrics"
	"our_culture/be/biz/middleware/security"
	"our_culture/be/biz/middleware/session"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/util/resp"
	"our_culture/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	SourceCookie  = "cookie"
	SourceHeader  = "header"
	SourceSession = "session"

	defaultCookieName   = "jwt"
	defaultHeaderScheme = "Bearer"
)

// Source says where a deployment reads the access token from. Exactly one
// kind is active.
type Source struct {
	Kind         string
	CookieName   string
	HeaderScheme string
}

func NewSource(conf config.AuthConf) Source {
	kind := conf.TokenSource
	switch kind {
	case SourceHeader, SourceSession:
	default:
		kind = SourceCookie
	}
	return Source{
		Kind:         kind,
		CookieName:   defaultString(conf.CookieName, defaultCookieName),
		HeaderScheme: defaultString(conf.HeaderScheme, defaultHeaderScheme),
	}
}

func NewDefaultSource() Source {
	return NewSource(config.GetAuthConf())
}

// Extract returns the raw token or "" when the request carries none.
func (s Source) Extract(c *app.RequestContext) string {
	switch s.Kind {
	case SourceCookie:
		return string(c.Cookie(s.CookieName))
	case SourceHeader:
		scheme, token, ok := strings.Cut(strings.TrimSpace(c.Request.Header.Get("Authorization")), " ")
		if !ok || !strings.EqualFold(scheme, s.HeaderScheme) {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return ""
}

type claimKey struct{}

// ValidateMW authenticates the request. A logged in session wins; otherwise
// the token from src must verify against iss. Rejected requests are aborted
// with 401 and never reach the handler.
func ValidateMW(iss *Issuer, src Source, versions security.CredentialVersioner) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if id, ok := session.GetIdentity(c); ok {
			if bizErr := security.CheckCredential(ctx, versions, id.Claim.ID, id.CredentialVersion); bizErr != nil {
				if errs.ErrorEqual(bizErr, errs.ServerError) {
					resp.AbortWithErr(c, bizErr)
					return
				}
				metrics.TokenRejected("session_expired")
				_ = session.Remove(c)
				resp.AbortWithErr(c, errs.Unauthorized)
				return
			}
			c.Next(WithClaim(ctx, id.Claim, nil))
			return
		}

		tokenStr := src.Extract(c)
		if tokenStr == "" {
			hlog.CtxInfof(ctx, "authorization failed, token is empty")
			metrics.TokenRejected("missing")
			resp.AbortWithErr(c, errs.Unauthorized)
			return
		}

		claims, err := iss.Verify(ctx, tokenStr)
		if err != nil {
			if reason := rejectReason(err); reason != "" {
				hlog.CtxInfof(ctx, "jwt rejected: %v", err)
				metrics.TokenRejected(reason)
				resp.AbortWithErr(c, errs.Unauthorized)
				return
			}
			hlog.CtxErrorf(ctx, "verify jwt err: %v", err)
			resp.AbortWithErr(c, errs.ServerError)
			return
		}

		claim, _ := claims.Claim()
		c.Next(WithClaim(ctx, claim, claims))
	}
}

type claimValue struct {
	claim  domain.Claim
	claims *Claims
}

// WithClaim stores the authenticated identity in ctx. claims is nil when the
// identity came from a session.
func WithClaim(ctx context.Context, claim domain.Claim, claims *Claims) context.Context {
	ctx = trace_info.WithUserId(ctx, claim.ID)
	return context.WithValue(ctx, claimKey{}, claimValue{claim: claim, claims: claims})
}

// GetClaim returns the identity set by ValidateMW, or the zero claim.
func GetClaim(ctx context.Context) domain.Claim {
	v, ok := ctx.Value(claimKey{}).(claimValue)
	if ok {
		return v.claim
	}
	return domain.Claim{}
}

// RemoveToken revokes the access token the request was authenticated with.
func RemoveToken(ctx context.Context, iss *Issuer) error {
	v, ok := ctx.Value(claimKey{}).(claimValue)
	if !ok || v.claims == nil {
		return nil
	}
	return iss.Revoke(ctx, v.claims)
}

// rejectReason classifies a verification error. "" means the error is not
// about the token itself.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrJwtExpired):
		return "expired"
	case errors.Is(err, ErrJwtRevoked):
		return "revoked"
	case errors.Is(err, ErrJwtInvalid), errors.Is(err, ErrUnexpectedJwtMethod):
		return "invalid"
	}
	return ""
}
