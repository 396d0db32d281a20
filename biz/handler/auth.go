package handler

import (
	"context"
	"errors"

	"our_culture/be/biz/middleware/jwt"
	"our_culture/be/biz/middleware/session"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/dto"
	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/service/user"
	"our_culture/be/biz/util/bind"
	"our_culture/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Signup 用户注册接口
//
//	@Tags			auth
//	@Summary		用户注册接口
//	@Description	register with email and password, the new user has role "user"
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.RegisterReq	true	"register request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.RegisterResp}
//	@Failure		400	{object}	dto.CommonResp
//	@Failure		409	{object}	dto.CommonResp
//	@Router			/api/v1/auth/signup [POST]
func Signup(ctx context.Context, c *app.RequestContext) {
	var req dto.RegisterReq
	if err := bind.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()))
		return
	}

	u, bizErr := user.NewDefault().Register(ctx, req.Email, req.Name, req.Password)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.RegisterResp{ID: u.UserID, Role: string(u.Role)})
}

// Login 用户登录接口
//
//	@Tags			auth
//	@Summary		用户登录接口
//	@Description	verify email and password, then issue an access token (or bind the session in session mode)
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.LoginReq	true	"login request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.LoginResp}
//	@Failure		401	{object}	dto.CommonResp
//	@Header			200	{string}	set-cookie	"cookie"
//	@Router			/api/v1/auth/login [POST]
func Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginReq
	if err := bind.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()))
		return
	}

	svc := user.NewDefault()
	claim, bizErr := svc.Verify(ctx, req.Email, req.Password)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	src := jwt.NewDefaultSource()
	if src.Kind == jwt.SourceSession {
		cv, bizErr := svc.GetCredentialVersion(ctx, claim.ID)
		if bizErr != nil {
			resp.FailResp(c, bizErr)
			return
		}
		if err := session.SaveIdentity(c, session.Identity{Claim: claim, CredentialVersion: cv}); err != nil {
			hlog.CtxErrorf(ctx, "save session err: %v", err)
			resp.FailResp(c, errs.ServerError)
			return
		}
		resp.SuccessResp(c, dto.LoginResp{ID: claim.ID, Role: string(claim.Role)})
		return
	}

	accessToken, expAt, bizErr := issueTokens(ctx, c, src, claim)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.LoginResp{
		ID:          claim.ID,
		Role:        string(claim.Role),
		AccessToken: accessToken,
		ExpiresAt:   expAt,
	})
}

// RefreshToken 刷新token接口
//
//	@Tags			auth
//	@Summary		刷新token接口
//	@Description	rotate the refresh token cookie and issue a new access token
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	dto.CommonResp{data=dto.RefreshTokenResp}
//	@Failure		401	{object}	dto.CommonResp
//	@Header			200	{string}	set-cookie	"cookie"
//	@Router			/api/v1/auth/refresh_token [POST]
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	refreshToken := jwt.GetRefreshTokenFromCookie(c)
	if refreshToken == "" {
		hlog.CtxNoticef(ctx, "refresh token is empty")
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	refreshIss := jwt.NewDefaultRefreshIssuer()
	claims, err := refreshIss.Verify(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrJwtInvalid) || errors.Is(err, jwt.ErrJwtExpired) ||
			errors.Is(err, jwt.ErrJwtRevoked) || errors.Is(err, jwt.ErrUnexpectedJwtMethod) {
			hlog.CtxNoticef(ctx, "refresh token rejected: %v", err)
			jwt.ClearRefreshTokenCookie(c)
			resp.FailResp(c, errs.Unauthorized)
			return
		}
		hlog.CtxErrorf(ctx, "verify refresh token err: %v", err)
		resp.FailResp(c, errs.ServerError)
		return
	}

	// the role may have changed since the refresh token was issued
	u, bizErr := user.NewDefault().GetByUserID(ctx, claims.UserID)
	if bizErr != nil {
		if errs.ErrorEqual(bizErr, errs.UserNotExist) {
			resp.FailResp(c, errs.Unauthorized)
			return
		}
		resp.FailResp(c, bizErr)
		return
	}
	claim, err := u.Claim()
	if err != nil {
		hlog.CtxErrorf(ctx, "build claim err: %v", err)
		resp.FailResp(c, errs.ServerError)
		return
	}

	if err := refreshIss.Retire(ctx, claims); err != nil {
		hlog.CtxErrorf(ctx, "retire refresh token err: %v", err)
		resp.FailResp(c, errs.ServerError)
		return
	}

	src := jwt.NewDefaultSource()
	accessToken, expAt, bizErr := issueAccessToken(ctx, c, src, claim)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}
	newRefreshToken, refreshExpAt, bizErr := issueRefreshToken(ctx, c, claim)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.RefreshTokenResp{
		AccessToken:      accessToken,
		ExpiresAt:        expAt,
		RefreshToken:     newRefreshToken,
		RefreshExpiresAt: refreshExpAt,
	})
}

// Check 登录态校验接口
//
//	@Tags			auth
//	@Summary		登录态校验接口
//	@Description	return the identity of the authenticated caller
//	@Produce		json
//	@Param			Authorization	header		string	false	"Bearer jwt, header mode only"
//	@Success		200				{object}	dto.CommonResp{data=dto.CheckResp}
//	@Failure		401				{object}	dto.CommonResp
//	@Router			/api/v1/auth/check [GET]
func Check(ctx context.Context, c *app.RequestContext) {
	claim := jwt.GetClaim(ctx)
	if claim.ID == "" {
		resp.FailResp(c, errs.Unauthorized)
		return
	}
	resp.SuccessResp(c, dto.CheckResp{ID: claim.ID, Role: string(claim.Role)})
}

// Logout 用户登出接口
//
//	@Tags			auth
//	@Summary		用户登出接口
//	@Description	revoke the current tokens and clear cookies and session
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string	false	"Bearer jwt, header mode only"
//	@Success		200				{object}	dto.CommonResp{data=dto.LogoutResp}
//	@Header			200				{string}	set-cookie	"cookie"
//	@Router			/api/v1/auth/logout [POST]
func Logout(ctx context.Context, c *app.RequestContext) {
	if err := jwt.RemoveToken(ctx, jwt.NewDefaultIssuer()); err != nil {
		hlog.CtxErrorf(ctx, "RemoveToken err: %v", err)
	}
	if rt := jwt.GetRefreshTokenFromCookie(c); rt != "" {
		refreshIss := jwt.NewDefaultRefreshIssuer()
		if claims, err := refreshIss.Parse(rt); err == nil {
			if err := refreshIss.Revoke(ctx, claims); err != nil {
				hlog.CtxErrorf(ctx, "revoke refresh token err: %v", err)
			}
		}
	}
	clearCredentials(ctx, c)

	hlog.CtxInfof(ctx, "logout success")
	resp.SuccessResp(c, dto.LogoutResp{})
}

// issueTokens issues an access token and a refresh token and writes the
// cookies the token source needs.
func issueTokens(ctx context.Context, c *app.RequestContext, src jwt.Source, claim domain.Claim) (string, int64, errs.Error) {
	accessToken, expAt, bizErr := issueAccessToken(ctx, c, src, claim)
	if bizErr != nil {
		return "", 0, bizErr
	}
	if _, _, bizErr := issueRefreshToken(ctx, c, claim); bizErr != nil {
		return "", 0, bizErr
	}
	return accessToken, expAt, nil
}

func issueAccessToken(ctx context.Context, c *app.RequestContext, src jwt.Source, claim domain.Claim) (string, int64, errs.Error) {
	token, expAt, err := jwt.NewDefaultIssuer().Issue(ctx, claim)
	if err != nil {
		hlog.CtxErrorf(ctx, "issue access token err: %v", err)
		return "", 0, errs.ServerError
	}
	src.SetTokenCookie(c, token, expAt)
	return token, expAt, nil
}

func issueRefreshToken(ctx context.Context, c *app.RequestContext, claim domain.Claim) (string, int64, errs.Error) {
	token, expAt, err := jwt.NewDefaultRefreshIssuer().Issue(ctx, claim)
	if err != nil {
		hlog.CtxErrorf(ctx, "issue refresh token err: %v", err)
		return "", 0, errs.ServerError
	}
	jwt.SetRefreshTokenCookie(c, token, expAt)
	return token, expAt, nil
}

// clearCredentials drops every client side credential of the request.
func clearCredentials(ctx context.Context, c *app.RequestContext) {
	jwt.NewDefaultSource().ClearTokenCookie(c)
	jwt.ClearRefreshTokenCookie(c)
	if err := session.Remove(c); err != nil {
		hlog.CtxErrorf(ctx, "remove session err: %v", err)
	}
}
