package jwt

import (
	"time"

	"our_culture/be/biz/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
)

const refreshTokenCookieName = "refresh_token"

func GetRefreshTokenFromCookie(c *app.RequestContext) string {
	return string(c.Cookie(refreshTokenCookieName))
}

func SetRefreshTokenCookie(c *app.RequestContext, refreshToken string, expireAt int64) {
	setCookie(c, refreshTokenCookieName, refreshToken, int(expireAt-time.Now().Unix()))
}

func ClearRefreshTokenCookie(c *app.RequestContext) {
	setCookie(c, refreshTokenCookieName, "", -1)
}

// SetTokenCookie writes the access token cookie when the deployment reads
// tokens from cookies.
func (s Source) SetTokenCookie(c *app.RequestContext, token string, expireAt int64) {
	if s.Kind != SourceCookie {
		return
	}
	setCookie(c, s.CookieName, token, int(expireAt-time.Now().Unix()))
}

func (s Source) ClearTokenCookie(c *app.RequestContext) {
	if s.Kind != SourceCookie {
		return
	}
	setCookie(c, s.CookieName, "", -1)
}

func setCookie(c *app.RequestContext, name, value string, maxAge int) {
	conf := config.GetSessionConf()
	c.SetCookie(
		name,
		value,
		maxAge,
		defaultString(conf.Path, "/"),
		conf.Domain,
		parseCookieSameSite(conf.SameSite),
		conf.Secure,
		true,
	)
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseCookieSameSite(v string) protocol.CookieSameSite {
	switch v {
	case "Lax":
		return protocol.CookieSameSiteLaxMode
	case "None":
		return protocol.CookieSameSiteNoneMode
	case "Strict":
		fallthrough
	default:
		return protocol.CookieSameSiteStrictMode
	}
}
