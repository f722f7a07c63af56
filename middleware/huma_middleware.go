package middleware

import (
	"dashboard/auth"
	"dashboard/model"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func HumaAuthMiddleware(api huma.API, isProduction bool) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := ""
		for part := range strings.SplitSeq(ctx.Header("Cookie"), ";") {
			part = strings.TrimSpace(part)
			if after, ok := strings.CutPrefix(part, auth.CookieName+"="); ok {
				token = after
				break
			}
		}
		if token == "" {
			token = bearerToken(ctx.Header("Authorization"))
		}

		if token == "" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "Invalid session")
			return
		}

		if time.Until(claims.ExpiresAt.Time) < refreshWindow {
			if newToken, err := auth.GenerateToken(claims.User); err == nil {
				ctx.SetHeader("Set-Cookie", SessionCookie(newToken, isProduction).String())
			}
		}

		ctx = huma.WithValue(ctx, "user", claims.User)
		next(ctx)
	}
}

func HumaAdminOnly(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		user, ok := ctx.Context().Value("user").(model.UserDto)
		if !ok || user.Role != model.RoleAdmin {
			huma.WriteErr(api, ctx, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}
		next(ctx)
	}
}
