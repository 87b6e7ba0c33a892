package handler

import "github.com/gin-gonic/gin"

type RouterDeps struct {
	Auth *AuthHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.GET("/auth/verify/:id/:token", deps.Auth.Verify)
	api.POST("/auth/signin", deps.Auth.SignIn)
}
