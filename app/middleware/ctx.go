package middleware

import (
	"context"

	jwtutil "kbase/app/jwt"
	"kbase/app/models"
)

func GetClaims(ctx context.Context) *jwtutil.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		if c, ok := v.(*jwtutil.Claims); ok {
			return c
		}
	}
	return nil
}

func GetUser(ctx context.Context) *models.User {
	if v := ctx.Value(UserKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(SessionKey); v != nil {
		if sid, ok := v.(string); ok {
			return sid
		}
	}
	return ""
}
