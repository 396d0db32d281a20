package handler

import (
	"context"

	"our_culture/be/biz/dal/repo"
	"our_culture/be/biz/middleware/jwt"
	"our_culture/be/biz/model/convert"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/dto"
	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/service/user"
	"our_culture/be/biz/util/bind"
	"our_culture/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// GetOwn 获取用户信息接口
//
//	@Tags			user
//	@Summary		获取用户信息接口
//	@Produce		json
//	@Param			Authorization	header		string	false	"Bearer jwt, header mode only"
//	@Success		200				{object}	dto.CommonResp{data=dto.GetUserInfoResp}
//	@Failure		401				{object}	dto.CommonResp
//	@Router			/api/v1/users/own [GET]
func GetOwn(ctx context.Context, c *app.RequestContext) {
	claim := jwt.GetClaim(ctx)

	u, bizErr := user.NewDefault().GetByUserID(ctx, claim.ID)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, convert.UserDomainToInfoResp(u))
}

// UpdateOwn 更新用户信息接口
//
//	@Tags			user
//	@Summary		更新用户信息接口
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.UpdateInfoReq	true	"update info request body"
//	@Param			Authorization	header		string				false	"Bearer jwt, header mode only"
//	@Success		200				{object}	dto.CommonResp{data=dto.GetUserInfoResp}
//	@Failure		400				{object}	dto.CommonResp
//	@Router			/api/v1/users/own [PATCH]
func UpdateOwn(ctx context.Context, c *app.RequestContext) {
	var req dto.UpdateInfoReq
	if err := bind.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()))
		return
	}

	info := repo.UserInfo{Name: req.Name}
	if req.Addresses != nil {
		addresses := convert.AddressesDTOToDomain(*req.Addresses)
		info.Addresses = &addresses
	}

	u, bizErr := user.NewDefault().UpdateInfo(ctx, jwt.GetClaim(ctx).ID, info)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, convert.UserDomainToInfoResp(u))
}

// UpdatePassword 更新密码接口
//
//	@Tags			user
//	@Summary		更新密码接口
//	@Description	change the password; every token and session of the user is revoked, including the current one
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.UpdatePasswordReq	true	"update password request body"
//	@Param			Authorization	header		string					false	"Bearer jwt, header mode only"
//	@Success		200				{object}	dto.CommonResp{data=dto.UpdatePasswordResp}
//	@Failure		400				{object}	dto.CommonResp
//	@Router			/api/v1/users/own/password [POST]
func UpdatePassword(ctx context.Context, c *app.RequestContext) {
	var req dto.UpdatePasswordReq
	if err := bind.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()))
		return
	}

	userID := jwt.GetClaim(ctx).ID
	if _, bizErr := user.NewDefault().UpdatePassword(ctx, userID, req.OldPassword, req.NewPassword); bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	if err := jwt.RevokeUser(ctx, userID); err != nil {
		hlog.CtxErrorf(ctx, "revoke tokens of user %s err: %v", userID, err)
		resp.FailResp(c, errs.ServerError)
		return
	}
	clearCredentials(ctx, c)

	resp.SuccessResp(c, dto.UpdatePasswordResp{})
}

// GetByID 管理员查询用户接口
//
//	@Tags			user
//	@Summary		管理员查询用户接口
//	@Produce		json
//	@Param			id				path		string	true	"user id"
//	@Param			Authorization	header		string	false	"Bearer jwt, header mode only"
//	@Success		200				{object}	dto.CommonResp{data=dto.GetUserInfoResp}
//	@Failure		403				{object}	dto.CommonResp
//	@Failure		404				{object}	dto.CommonResp
//	@Router			/api/v1/users/{id} [GET]
func GetByID(ctx context.Context, c *app.RequestContext) {
	u, bizErr := user.NewDefault().GetByUserID(ctx, c.Param("id"))
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, convert.UserDomainToInfoResp(u))
}

// RequireRole guards admin-only routes. It must run after jwt.ValidateMW.
func RequireRole(role domain.Role) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if jwt.GetClaim(ctx).Role != role {
			hlog.CtxInfof(ctx, "role %s required", role)
			resp.AbortWithErr(c, errs.Forbidden)
			return
		}
		c.Next(ctx)
	}
}
