package handler

import (
	"context"

	"our_culture/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

// Ping 健康检查接口
//
//	@Tags		system
//	@Summary	健康检查接口
//	@Produce	json
//	@Success	200	{object}	dto.CommonResp
//	@Router		/ping [GET]
func Ping(ctx context.Context, c *app.RequestContext) {
	resp.SuccessResp(c, utils.H{"message": "pong"})
}
