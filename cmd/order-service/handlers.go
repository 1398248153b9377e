package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/foodorders/internal/auth"
	"github.com/MikeMC777/foodorders/internal/httpx"
	ord "github.com/MikeMC777/foodorders/internal/order"
	"github.com/MikeMC777/foodorders/internal/restaurant"
	"github.com/MikeMC777/foodorders/internal/user"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case ord.IsValidation(err), errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ord.ErrForbidden), errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ord.ErrNotFound),
		errors.Is(err, ord.ErrRestaurantNotFound),
		errors.Is(err, restaurant.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, user.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, ord.ErrInvalidTransition),
		errors.Is(err, ord.ErrConflict),
		errors.Is(err, user.ErrAlreadyExist):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		rid, _ := c.Get("rid")
		slog.Error("request failed", "rid", rid, "path", c.FullPath(), "err", err)
		msg = "internal error"
	}
	c.JSON(code, gin.H{"error": msg})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// statusFilter reads ?status=; an empty value does not filter.
func statusFilter(c *gin.Context) (ord.Status, bool) {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return "", true
	}
	return ord.ParseStatus(raw)
}

func principal(c *gin.Context) auth.Principal {
	p, _ := httpx.Principal(c)
	return p
}

// ===== Orders =====

// @Summary  Place an order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    body body order.PlaceOrderRequest true "order"
// @Success  201 {object} order.Order
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Security Bearer
// @Router   /orders [post]
func createOrderHandler(lc *ord.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		o, err := lc.Place(c.Request.Context(), principal(c).UserID, req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// @Summary  List my orders
// @Tags     orders
// @Produce  json
// @Param    limit  query int false "limit"
// @Param    offset query int false "offset"
// @Success  200 {array} order.Order
// @Security Bearer
// @Router   /orders [get]
func listMyOrdersHandler(lc *ord.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		out, err := lc.ListForCustomer(c.Request.Context(), principal(c).UserID, limit, offset)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  List every order (admin)
// @Tags     orders
// @Produce  json
// @Param    status query string false "status filter"
// @Success  200 {array} order.Order
// @Security Bearer
// @Router   /orders/all [get]
func listAllOrdersHandler(lc *ord.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, ok := statusFilter(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		limit, offset := pagination(c)
		out, err := lc.ListAll(c.Request.Context(), principal(c), status, limit, offset)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Orders for the caller's restaurants
// @Tags     orders
// @Produce  json
// @Param    status query string false "status filter"
// @Success  200 {array} order.Order
// @Security Bearer
// @Router   /restaurant-orders [get]
func listOwnerOrdersHandler(lc *ord.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, ok := statusFilter(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		limit, offset := pagination(c)
		out, err := lc.ListForOwner(c.Request.Context(), principal(c).UserID, status, limit, offset)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get an order
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} order.Order
// @Failure  404 {object} map[string]string
// @Security Bearer
// @Router   /orders/{id} [get]
func getOrderHandler(lc *ord.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := lc.Get(c.Request.Context(), principal(c), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// @Summary  Change order status
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id   path string                    true "order id"
// @Param    body body order.UpdateStatusRequest true "new status"
// @Success  200 {object} order.Order
// @Failure  400 {object} map[string]string
// @Failure  403 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Security Bearer
// @Router   /orders/{id}/status [patch]
func updateOrderStatusHandler(lc *ord.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		o, err := lc.Transition(c.Request.Context(), ord.TransitionInput{
			OrderID:            c.Param("id"),
			Actor:              principal(c),
			Status:             req.Status,
			CancellationReason: req.CancellationReason,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": o})
	}
}

// @Summary  Orders of one restaurant
// @Tags     restaurants
// @Produce  json
// @Param    id path string true "restaurant id"
// @Success  200 {array} order.Order
// @Failure  403 {object} map[string]string
// @Security Bearer
// @Router   /restaurants/{id}/orders [get]
func listRestaurantOrdersHandler(lc *ord.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c)
		out, err := lc.ListForRestaurant(c.Request.Context(), principal(c), c.Param("id"), limit, offset)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// ===== Restaurants =====

// @Summary  Create a restaurant (admin)
// @Tags     restaurants
// @Accept   json
// @Produce  json
// @Param    body body restaurant.CreateRestaurantRequest true "restaurant"
// @Success  201 {object} restaurant.Restaurant
// @Security Bearer
// @Router   /restaurants [post]
func createRestaurantHandler(repo restaurant.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req restaurant.CreateRestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rs := &restaurant.Restaurant{
			ID:      uuid.NewString(),
			Name:    strings.TrimSpace(req.Name),
			Address: strings.TrimSpace(req.Address),
			OwnerID: strings.TrimSpace(req.OwnerID),
		}
		if err := repo.Create(c.Request.Context(), rs); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rs)
	}
}

// @Summary  Get a restaurant
// @Tags     restaurants
// @Produce  json
// @Param    id path string true "restaurant id"
// @Success  200 {object} restaurant.Restaurant
// @Failure  404 {object} map[string]string
// @Security Bearer
// @Router   /restaurants/{id} [get]
func getRestaurantHandler(repo restaurant.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		rs, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rs)
	}
}

// ===== Auth & users =====

// @Summary  Register a customer account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body user.RegisterRequest true "account"
// @Success  201 {object} user.User
// @Failure  409 {object} map[string]string
// @Router   /auth/register [post]
func registerHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		u, err := svc.Register(c.Request.Context(), req, auth.RoleUser)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// @Summary  Log in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body user.LoginRequest true "credentials"
// @Success  200 {object} map[string]interface{}
// @Failure  401 {object} map[string]string
// @Router   /auth/login [post]
func loginHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		tok, u, err := svc.Login(c.Request.Context(), strings.TrimSpace(req.MobileNumber), req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": tok, "user": u})
	}
}

// @Summary  Create an account with any role (admin)
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body body user.RegisterRequest true "account"
// @Success  201 {object} user.User
// @Security Bearer
// @Router   /users [post]
func createUserHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		role, ok := auth.ParseRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		u, err := svc.Register(c.Request.Context(), req, role)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// ===== Inbox =====

// @Summary  Notification inbox
// @Tags     notifications
// @Produce  json
// @Success  200 {object} user.Inbox
// @Security Bearer
// @Router   /notifications [get]
func inboxHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, err := svc.Inbox(c.Request.Context(), principal(c).UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, in)
	}
}

// @Summary  Mark a notification as read
// @Tags     notifications
// @Param    id path string true "notification id"
// @Success  204
// @Failure  404 {object} map[string]string
// @Security Bearer
// @Router   /notifications/{id}/read [patch]
func markReadHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkRead(c.Request.Context(), principal(c).UserID, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Clear the inbox
// @Tags     notifications
// @Success  204
// @Security Bearer
// @Router   /notifications [delete]
func clearInboxHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ClearInbox(c.Request.Context(), principal(c).UserID); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ===== Push tokens =====

// @Summary  Register a push token
// @Tags     notifications
// @Accept   json
// @Param    body body user.PushTokenRequest true "token"
// @Success  204
// @Security Bearer
// @Router   /push-tokens [post]
func registerPushTokenHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.PushTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := svc.RegisterPushToken(c.Request.Context(), principal(c).UserID, req.Token, req.Device); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Remove a push token
// @Tags     notifications
// @Accept   json
// @Param    body body user.PushTokenRequest true "token"
// @Success  204
// @Security Bearer
// @Router   /push-tokens [delete]
func removePushTokenHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.PushTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := svc.RemovePushToken(c.Request.Context(), principal(c).UserID, req.Token); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
