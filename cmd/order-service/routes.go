package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/foodorders/docs"
	"github.com/MikeMC777/foodorders/internal/auth"
	"github.com/MikeMC777/foodorders/internal/httpx"
	ord "github.com/MikeMC777/foodorders/internal/order"
	"github.com/MikeMC777/foodorders/internal/restaurant"
	"github.com/MikeMC777/foodorders/internal/user"
)

type deps struct {
	orders      *ord.Lifecycle
	restaurants restaurant.Repository
	users       *user.Service
	tokens      httpx.TokenParser
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/register", registerHandler(d.users))
	r.POST("/auth/login", loginHandler(d.users))

	api := r.Group("/", httpx.Auth(d.tokens))
	api.POST("/orders", createOrderHandler(d.orders))
	api.GET("/orders", listMyOrdersHandler(d.orders))
	api.GET("/orders/:id", getOrderHandler(d.orders))
	api.PATCH("/orders/:id/status", updateOrderStatusHandler(d.orders))
	api.PUT("/orders/:id/status", updateOrderStatusHandler(d.orders))
	api.GET("/restaurants/:id", getRestaurantHandler(d.restaurants))
	api.GET("/restaurants/:id/orders", listRestaurantOrdersHandler(d.orders))
	api.GET("/restaurant-orders", httpx.RequireRole(auth.RoleRestaurant, auth.RoleAdmin), listOwnerOrdersHandler(d.orders))

	api.GET("/notifications", inboxHandler(d.users))
	api.PATCH("/notifications/:id/read", markReadHandler(d.users))
	api.DELETE("/notifications", clearInboxHandler(d.users))
	api.POST("/push-tokens", registerPushTokenHandler(d.users))
	api.DELETE("/push-tokens", removePushTokenHandler(d.users))

	admin := api.Group("/", httpx.RequireRole(auth.RoleAdmin))
	admin.GET("/orders/all", listAllOrdersHandler(d.orders))
	admin.POST("/restaurants", createRestaurantHandler(d.restaurants))
	admin.POST("/users", createUserHandler(d.users))

	return r
}
