package be_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	be "our_culture/be"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/dto"
	"our_culture/be/biz/model/errs"
	usersvc "our_culture/be/biz/service/user"
	"our_culture/be/biz/util/testenv"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unlimitedPaths = `
rate_limit:
  - path: "/api/v1/auth/signup"
    window_seconds: 60
    limit: 1000
  - path: "/api/v1/auth/login"
    window_seconds: 60
    limit: 1000
  - path: "/api/v1/auth/refresh_token"
    window_seconds: 60
    limit: 1000
  - path: "/api/v1/auth/check"
    window_seconds: 60
    limit: 1000
  - path: "/api/v1/auth/logout"
    window_seconds: 60
    limit: 1000
  - path: "/api/v1/users/own"
    window_seconds: 60
    limit: 1000
  - path: "/api/v1/users/own/password"
    window_seconds: 60
    limit: 1000
  - path: "/api/v1/users/:id"
    window_seconds: 60
    limit: 1000
`

type testServer struct {
	h  *server.Hertz
	mr *miniredis.Miniredis
}

func newTestServer(t *testing.T, tokenSource string) *testServer {
	t.Helper()
	return newTestServerWithLoginLimit(t, tokenSource, 1000)
}

func newTestServerWithLoginLimit(t *testing.T, tokenSource string, loginLimit int) *testServer {
	t.Helper()
	extra := `
jwt:
  access_expiration: 3600
  refresh_expiration: 7200
  access_token_secret: "access-secret"
  refresh_token_secret: "refresh-secret"
  issuer: "our_culture"

auth:
  token_source: "` + tokenSource + `"

login_protection:
  window_seconds: 300
  limit: ` + strconv.Itoa(loginLimit) + `
` + unlimitedPaths
	mr := testenv.SetupWithDB(t, extra)
	return &testServer{h: be.NewEngine(), mr: mr}
}

func (s *testServer) do(method, url, body string, headers ...ut.Header) *ut.ResponseRecorder {
	var b *ut.Body
	if body != "" {
		b = &ut.Body{Body: bytes.NewBufferString(body), Len: len(body)}
	}
	all := append([]ut.Header{{Key: "Content-Type", Value: "application/json"}}, headers...)
	return ut.PerformRequest(s.h.Engine, method, url, b, all...)
}

// unblockSignup lifts the per-ip block register protection sets after a
// successful signup.
func (s *testServer) unblockSignup() {
	for _, k := range s.mr.Keys() {
		if strings.HasPrefix(k, "rate_limit:register_block:") {
			s.mr.Del(k)
		}
	}
}

func (s *testServer) signup(t *testing.T, email, password string) dto.RegisterResp {
	t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/signup", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s.unblockSignup()

	var data dto.RegisterResp
	decodeData(t, w, &data)
	return data
}

func (s *testServer) login(t *testing.T, email, password string) (*ut.ResponseRecorder, dto.LoginResp) {
	t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"`+email+`","password":"`+password+`"}`)
	var data dto.LoginResp
	if w.Code == http.StatusOK {
		decodeData(t, w, &data)
	}
	return w, data
}

func decodeResp(t *testing.T, w *ut.ResponseRecorder) dto.CommonResp {
	t.Helper()
	var r dto.CommonResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r), w.Body.String())
	return r
}

func decodeData(t *testing.T, w *ut.ResponseRecorder, data any) {
	t.Helper()
	r := decodeResp(t, w)
	require.True(t, r.Success, w.Body.String())
	raw, err := json.Marshal(r.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, data))
}

func assertErr(t *testing.T, w *ut.ResponseRecorder, want errs.Error) {
	t.Helper()
	assert.Equal(t, want.StatusCode(), w.Code, w.Body.String())
	r := decodeResp(t, w)
	assert.False(t, r.Success)
	assert.Equal(t, int(want.Code()), r.Code)
}

// cookieHeader turns the Set-Cookie headers of a response into a Cookie
// request header.
func cookieHeader(w *ut.ResponseRecorder) ut.Header {
	var parts []string
	w.Result().Header.VisitAllCookie(func(_, value []byte) {
		v := string(value)
		if i := strings.IndexByte(v, ';'); i >= 0 {
			v = v[:i]
		}
		if !strings.HasSuffix(v, "=") {
			parts = append(parts, v)
		}
	})
	return ut.Header{Key: "Cookie", Value: strings.Join(parts, "; ")}
}

func bearer(token string) ut.Header {
	return ut.Header{Key: "Authorization", Value: "Bearer " + token}
}

func TestPing(t *testing.T) {
	s := newTestServer(t, "cookie")
	w := s.do(http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
	assert.NotEmpty(t, w.Header().Get("X-Log-ID"))
}

func TestSignupLoginAndAccess(t *testing.T) {
	s := newTestServer(t, "cookie")

	reg := s.signup(t, "a@x.com", "secret123")
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, string(domain.RoleUser), reg.Role)

	w, login := s.login(t, "a@x.com", "secret123")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, reg.ID, login.ID)
	assert.Equal(t, string(domain.RoleUser), login.Role)
	assert.NotEmpty(t, login.AccessToken)
	cookies := cookieHeader(w)
	assert.Contains(t, cookies.Value, "jwt=")
	assert.Contains(t, cookies.Value, "refresh_token=")

	assertErr(t, s.do(http.MethodGet, "/api/v1/users/own", ""), errs.Unauthorized)

	w = s.do(http.MethodGet, "/api/v1/users/own", "", cookies)
	var info dto.GetUserInfoResp
	decodeData(t, w, &info)
	assert.Equal(t, reg.ID, info.ID)
	assert.Equal(t, "a@x.com", info.Email)

	w = s.do(http.MethodGet, "/api/v1/auth/check", "", cookies)
	var check dto.CheckResp
	decodeData(t, w, &check)
	assert.Equal(t, dto.CheckResp{ID: reg.ID, Role: string(domain.RoleUser)}, check)

	// cookie mode ignores the header
	assertErr(t, s.do(http.MethodGet, "/api/v1/auth/check", "", bearer(login.AccessToken)), errs.Unauthorized)
}

func TestSignup_Validation(t *testing.T) {
	s := newTestServer(t, "cookie")

	assertErr(t, s.do(http.MethodPost, "/api/v1/auth/signup", "{"), errs.ParamError)
	assertErr(t, s.do(http.MethodPost, "/api/v1/auth/signup", `{"email":"not-an-email","password":"secret123"}`), errs.ParamError)
	assertErr(t, s.do(http.MethodPost, "/api/v1/auth/signup", `{"email":"a@x.com","password":"123"}`), errs.ParamError)
	assertErr(t, s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"a@x.com"}`), errs.ParamError)
}

func TestSignup_Duplicate(t *testing.T) {
	s := newTestServer(t, "cookie")
	s.signup(t, "a@x.com", "secret123")

	w := s.do(http.MethodPost, "/api/v1/auth/signup", `{"email":"A@X.com","password":"other-pass"}`)
	assertErr(t, w, errs.EmailDuplicated)
	assert.Equal(t, "email already registered", decodeResp(t, w).Message)
}

func TestSignup_BlocksIPAfterSuccess(t *testing.T) {
	s := newTestServer(t, "cookie")
	w := s.do(http.MethodPost, "/api/v1/auth/signup", `{"email":"a@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/signup", `{"email":"b@x.com","password":"secret123"}`)
	assertErr(t, w, errs.RequestBlocked)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	s := newTestServer(t, "cookie")
	s.signup(t, "a@x.com", "secret123")

	wrongPwd, _ := s.login(t, "a@x.com", "wrong-pass")
	unknown, _ := s.login(t, "nobody@x.com", "secret123")

	assertErr(t, wrongPwd, errs.InvalidCredentials)
	assertErr(t, unknown, errs.InvalidCredentials)
	assert.Equal(t, "Invalid credentials", decodeResp(t, wrongPwd).Message)
	assert.Equal(t, wrongPwd.Body.String(), unknown.Body.String())
	assert.Empty(t, cookieHeader(wrongPwd).Value)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	s := newTestServer(t, "cookie")
	s.signup(t, "a@x.com", "secret123")

	w, _ := s.login(t, "  A@X.COM", "secret123")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestLogin_BlockedAfterRepeatedFailures(t *testing.T) {
	s := newTestServerWithLoginLimit(t, "cookie", 2)
	s.signup(t, "a@x.com", "secret123")

	for i := 0; i < 2; i++ {
		w, _ := s.login(t, "a@x.com", "wrong-pass")
		assertErr(t, w, errs.InvalidCredentials)
	}
	w, _ := s.login(t, "a@x.com", "secret123")
	assertErr(t, w, errs.RequestBlocked)
}

func TestUpdateOwn(t *testing.T) {
	s := newTestServer(t, "cookie")
	s.signup(t, "a@x.com", "secret123")
	w, _ := s.login(t, "a@x.com", "secret123")
	cookies := cookieHeader(w)

	body := `{"name":"  Alice ","addresses":[{"name":"home","street":"1 Main St","city":"Pune","pinCode":"411001"}]}`
	w = s.do(http.MethodPatch, "/api/v1/users/own", body, cookies)
	var info dto.GetUserInfoResp
	decodeData(t, w, &info)
	assert.Equal(t, "Alice", info.Name)
	require.Len(t, info.Addresses, 1)
	assert.Equal(t, "Pune", info.Addresses[0].City)

	w = s.do(http.MethodGet, "/api/v1/users/own", "", cookies)
	decodeData(t, w, &info)
	assert.Equal(t, "Alice", info.Name)
	assert.Len(t, info.Addresses, 1)

	assertErr(t, s.do(http.MethodPatch, "/api/v1/users/own", `{"addresses":[{"name":"x"}]}`, cookies), errs.ParamError)
}

func TestLogout_RevokesToken(t *testing.T) {
	s := newTestServer(t, "cookie")
	s.signup(t, "a@x.com", "secret123")
	w, _ := s.login(t, "a@x.com", "secret123")
	cookies := cookieHeader(w)

	w = s.do(http.MethodPost, "/api/v1/auth/logout", "{}", cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assertErr(t, s.do(http.MethodGet, "/api/v1/users/own", "", cookies), errs.Unauthorized)
	assertErr(t, s.do(http.MethodPost, "/api/v1/auth/refresh_token", "", cookies), errs.Unauthorized)
}

func TestUpdatePassword_RevokesEverything(t *testing.T) {
	s := newTestServer(t, "cookie")
	s.signup(t, "a@x.com", "secret123")
	w, _ := s.login(t, "a@x.com", "secret123")
	first := cookieHeader(w)
	w, _ = s.login(t, "a@x.com", "secret123")
	second := cookieHeader(w)

	w = s.do(http.MethodPost, "/api/v1/users/own/password", `{"old_password":"wrong","new_password":"n3w-secret"}`, first)
	assertErr(t, w, errs.OldPasswordWrong)

	w = s.do(http.MethodPost, "/api/v1/users/own/password", `{"old_password":"secret123","new_password":"n3w-secret"}`, first)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assertErr(t, s.do(http.MethodGet, "/api/v1/users/own", "", first), errs.Unauthorized)
	assertErr(t, s.do(http.MethodGet, "/api/v1/users/own", "", second), errs.Unauthorized)
	assertErr(t, s.do(http.MethodPost, "/api/v1/auth/refresh_token", "", second), errs.Unauthorized)

	w, _ = s.login(t, "a@x.com", "secret123")
	assertErr(t, w, errs.InvalidCredentials)
	w, _ = s.login(t, "a@x.com", "n3w-secret")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshToken_Rotation(t *testing.T) {
	s := newTestServer(t, "cookie")
	s.signup(t, "a@x.com", "secret123")
	w, _ := s.login(t, "a@x.com", "secret123")
	cookies := cookieHeader(w)

	assertErr(t, s.do(http.MethodPost, "/api/v1/auth/refresh_token", ""), errs.Unauthorized)

	w = s.do(http.MethodPost, "/api/v1/auth/refresh_token", "", cookies)
	var refreshed dto.RefreshTokenResp
	decodeData(t, w, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
	rotated := cookieHeader(w)

	w = s.do(http.MethodGet, "/api/v1/auth/check", "", rotated)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the old refresh token only survives the grace window
	s.mr.FastForward(2 * time.Minute)
	assertErr(t, s.do(http.MethodPost, "/api/v1/auth/refresh_token", "", cookies), errs.Unauthorized)
	w = s.do(http.MethodPost, "/api/v1/auth/refresh_token", "", rotated)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestGetByID_RequiresAdmin(t *testing.T) {
	s := newTestServer(t, "cookie")
	reg := s.signup(t, "a@x.com", "secret123")

	_, bizErr := usersvc.NewDefault().CreateUser(context.Background(), "root@x.com", "root", "adminpass", domain.RoleAdmin)
	require.Nil(t, bizErr)

	w, _ := s.login(t, "a@x.com", "secret123")
	assertErr(t, s.do(http.MethodGet, "/api/v1/users/"+reg.ID, "", cookieHeader(w)), errs.Forbidden)

	w, login := s.login(t, "root@x.com", "adminpass")
	assert.Equal(t, string(domain.RoleAdmin), login.Role)
	w = s.do(http.MethodGet, "/api/v1/users/"+reg.ID, "", cookieHeader(w))
	var info dto.GetUserInfoResp
	decodeData(t, w, &info)
	assert.Equal(t, "a@x.com", info.Email)
}

func TestHeaderMode(t *testing.T) {
	s := newTestServer(t, "header")
	s.signup(t, "a@x.com", "secret123")

	w, login := s.login(t, "a@x.com", "secret123")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, login.AccessToken)
	assert.NotContains(t, cookieHeader(w).Value, "jwt=")

	assertErr(t, s.do(http.MethodGet, "/api/v1/auth/check", ""), errs.Unauthorized)
	assertErr(t, s.do(http.MethodGet, "/api/v1/auth/check", "", bearer("garbage")), errs.Unauthorized)

	w = s.do(http.MethodGet, "/api/v1/auth/check", "", bearer(login.AccessToken))
	var check dto.CheckResp
	decodeData(t, w, &check)
	assert.Equal(t, login.ID, check.ID)

	w = s.do(http.MethodPost, "/api/v1/auth/logout", "{}", bearer(login.AccessToken))
	require.Equal(t, http.StatusOK, w.Code)
	assertErr(t, s.do(http.MethodGet, "/api/v1/auth/check", "", bearer(login.AccessToken)), errs.Unauthorized)
}

func TestSessionMode(t *testing.T) {
	s := newTestServer(t, "session")
	s.signup(t, "a@x.com", "secret123")

	w, login := s.login(t, "a@x.com", "secret123")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, login.AccessToken)
	cookies := cookieHeader(w)
	assert.Contains(t, cookies.Value, "auth_session_id=")

	assertErr(t, s.do(http.MethodGet, "/api/v1/auth/check", ""), errs.Unauthorized)

	w = s.do(http.MethodGet, "/api/v1/auth/check", "", cookies)
	var check dto.CheckResp
	decodeData(t, w, &check)
	assert.Equal(t, login.ID, check.ID)

	w = s.do(http.MethodPost, "/api/v1/auth/logout", "{}", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assertErr(t, s.do(http.MethodGet, "/api/v1/auth/check", "", cookies), errs.Unauthorized)
}
