package be

import (
	"our_culture/be/biz/handler"
	"our_culture/be/biz/middleware/jwt"
	"our_culture/be/biz/middleware/ratelimit"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/service/user"
	_ "our_culture/be/docs"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/swagger"
	swaggerFiles "github.com/swaggo/files"
)

func register(h *server.Hertz) {
	h.GET("/ping", handler.Ping)
	h.GET("/swagger/*any", swagger.WrapHandler(swaggerFiles.Handler, swagger.URL("/swagger/doc.json")))

	v1 := h.Group("/api/v1")

	authMW := jwt.ValidateMW(jwt.NewDefaultIssuer(), jwt.NewDefaultSource(), user.NewDefault())

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", ratelimit.NewRegisterProtection(), handler.Signup)
		auth.POST("/login", ratelimit.NewLoginProtection(), handler.Login)
		auth.POST("/refresh_token", handler.RefreshToken)
		auth.GET("/check", authMW, handler.Check)
		auth.POST("/logout", authMW, handler.Logout)
	}

	users := v1.Group("/users", authMW)
	{
		users.GET("/own", handler.GetOwn)
		users.PATCH("/own", handler.UpdateOwn)
		users.POST("/own/password", handler.UpdatePassword)
		users.GET("/:id", handler.RequireRole(domain.RoleAdmin), handler.GetByID)
	}
}
