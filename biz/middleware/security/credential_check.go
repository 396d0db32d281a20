package security

import (
	"context"

	"our_culture/be/biz/model/errs"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type CredentialVersioner interface {
	GetCredentialVersion(ctx context.Context, userID string) (uint, errs.Error)
}

// CheckCredential reports whether a session established under version is
// still bound to the user's current credential. A password change bumps the
// stored version and so expires every older session.
func CheckCredential(ctx context.Context, v CredentialVersioner, userID string, version uint) errs.Error {
	current, bizErr := v.GetCredentialVersion(ctx, userID)
	if bizErr != nil {
		if errs.ErrorEqual(bizErr, errs.UserNotExist) {
			hlog.CtxInfof(ctx, "session user %s not found", userID)
			return errs.SessionExpired
		}
		hlog.CtxErrorf(ctx, "get credential version err: %v", bizErr)
		return errs.ServerError
	}

	if current != version {
		hlog.CtxInfof(ctx, "credential version mismatch: session=%d, db=%d, user_id=%s", version, current, userID)
		return errs.SessionExpired
	}
	return nil
}
