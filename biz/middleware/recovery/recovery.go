package recovery

import (
	"context"

	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func New() app.HandlerFunc {
	return recovery.Recovery(recovery.WithRecoveryHandler(handlePanic))
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
	hlog.CtxErrorf(ctx, "[Recovery] panic recovered: %v\n%s", err, stack)
	resp.AbortWithErr(c, errs.ServerError)
}
