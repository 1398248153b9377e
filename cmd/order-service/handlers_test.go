package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/foodorders/internal/auth"
	"github.com/MikeMC777/foodorders/internal/notify"
	ord "github.com/MikeMC777/foodorders/internal/order"
	"github.com/MikeMC777/foodorders/internal/restaurant"
	"github.com/MikeMC777/foodorders/internal/user"
)

//
// ---------- STUBS & FAKES ----------
//

// stubRepo implements ord.Repository in memory.
type stubRepo struct {
	mu     sync.Mutex
	orders map[string]ord.Order
}

func newStubRepo() *stubRepo { return &stubRepo{orders: map[string]ord.Order{}} }

func (s *stubRepo) Create(ctx context.Context, o *ord.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.Version = 1
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	s.orders[o.ID] = *o
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*ord.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ord.ErrNotFound
	}
	return &o, nil
}

func (s *stubRepo) List(ctx context.Context, f ord.Filter) ([]ord.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []ord.Order{}
	for _, o := range s.orders {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.RestaurantIDs != nil {
			found := false
			for _, id := range f.RestaurantIDs {
				found = found || id == o.RestaurantID
			}
			if !found {
				continue
			}
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id string, version int, status ord.Status, reason string) (*ord.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ord.ErrNotFound
	}
	if o.Version != version {
		return nil, ord.ErrConflict
	}
	o.Status = status
	o.CancellationReason = reason
	o.Version++
	s.orders[id] = o
	return &o, nil
}

// stubRestaurants implements restaurant.Repository in memory.
type stubRestaurants struct {
	mu   sync.Mutex
	byID map[string]restaurant.Restaurant
}

func (s *stubRestaurants) Create(ctx context.Context, r *restaurant.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.IsActive = true
	s.byID[r.ID] = *r
	return nil
}

func (s *stubRestaurants) GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, restaurant.ErrNotFound
	}
	return &r, nil
}

func (s *stubRestaurants) ListByOwner(ctx context.Context, ownerID string) ([]restaurant.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []restaurant.Restaurant
	for _, r := range s.byID {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// recordingSender guarda cada push enviado.
type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (r *recordingSender) Send(ctx context.Context, m notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return nil
}

type env struct {
	r          *gin.Engine
	orders     *stubRepo
	rests      *stubRestaurants
	users      *user.MemoryRepo
	async      *notify.Async
	sender     *recordingSender
	issuer     *auth.Issuer
	customer   *user.User
	owner      *user.User
	other      *user.User
	admin      *user.User
	restaurant restaurant.Restaurant
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		orders: newStubRepo(),
		rests:  &stubRestaurants{byID: map[string]restaurant.Restaurant{}},
		users:  user.NewMemoryRepo(),
		sender: &recordingSender{},
		issuer: auth.NewIssuer("test-secret", time.Hour),
	}
	svc := user.NewService(e.users, e.issuer)
	mk := func(name, mobile string, role auth.Role) *user.User {
		u, err := svc.Register(context.Background(), user.RegisterRequest{
			Username: name, MobileNumber: mobile, Password: "secret123",
		}, role)
		if err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
		return u
	}
	e.customer = mk("ana", "+570001", auth.RoleUser)
	e.owner = mk("luis", "+570002", auth.RoleRestaurant)
	e.other = mk("marta", "+570003", auth.RoleRestaurant)
	e.admin = mk("root", "+570004", auth.RoleAdmin)

	e.restaurant = restaurant.Restaurant{ID: uuid.NewString(), Name: "La Pizzeria", OwnerID: e.owner.ID, IsActive: true}
	e.rests.byID[e.restaurant.ID] = e.restaurant

	d := notify.NewDispatcher(e.users, e.sender)
	e.async = notify.NewAsync(d, 5*time.Second)
	lc := ord.NewLifecycle(e.orders, e.rests, e.async, nil)

	e.r = newRouter(deps{orders: lc, restaurants: e.rests, users: svc, tokens: e.issuer})
	return e
}

func (e *env) token(t *testing.T, u *user.User) string {
	t.Helper()
	tok, err := e.issuer.Issue(u.ID, u.Role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func (e *env) do(t *testing.T, method, path string, as *user.User, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(t, as))
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func (e *env) inbox(t *testing.T, u *user.User) user.Inbox {
	t.Helper()
	e.async.Wait()
	w := e.do(t, http.MethodGet, "/notifications", u, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var in user.Inbox
	if err := json.Unmarshal(w.Body.Bytes(), &in); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	return in
}

func (e *env) placeOrder(t *testing.T) ord.Order {
	t.Helper()
	w := e.do(t, http.MethodPost, "/orders", e.customer, map[string]any{
		"restaurant":     e.restaurant.ID,
		"restaurantName": "La Pizzeria",
		"items": []map[string]any{
			{"menuItem": "m-1", "itemName": "Margherita", "quantity": 1},
			{"menuItem": "m-2", "itemName": "Cola", "quantity": 2, "size": "Large"},
		},
		"totalAmount": 250,
		"address":     "12 Lane",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var o ord.Order
	if err := json.Unmarshal(w.Body.Bytes(), &o); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	// las notificaciones de la creación quedan antes que las siguientes
	e.async.Wait()
	return o
}

func types(in user.Inbox) []string {
	var out []string
	for _, n := range in.Notifications {
		out = append(out, n.Type)
	}
	return out
}

//
// ---------- TESTS ----------
//

func TestCreateOrder_HappyPath(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	o := e.placeOrder(t)
	if o.Status != ord.StatusPlaced || len(o.Items) != 2 || o.Items[0].Size != "Regular" {
		t.Fatalf("orden inesperada: %+v", o)
	}
	if _, ok := e.orders.orders[o.ID]; !ok {
		t.Fatalf("no se persistió la orden")
	}

	cust := e.inbox(t, e.customer)
	if len(cust.Notifications) != 1 || cust.Notifications[0].Type != "ORDER_PLACED" || cust.UnreadCount != 1 {
		t.Fatalf("inbox cliente=%+v", cust)
	}
	if cust.Notifications[0].Data["orderId"] != o.ID {
		t.Fatalf("orderId esperado=%s, real=%s", o.ID, cust.Notifications[0].Data["orderId"])
	}
	own := e.inbox(t, e.owner)
	if len(own.Notifications) != 1 || own.Notifications[0].Type != "NEW_ORDER" {
		t.Fatalf("inbox dueño=%+v", own)
	}
	if own.Notifications[0].Message != "New order received for La Pizzeria" {
		t.Fatalf("mensaje=%q", own.Notifications[0].Message)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/orders", e.customer, map[string]any{
		"restaurant":     e.restaurant.ID,
		"restaurantName": "La Pizzeria",
		"items":          []map[string]any{{"menuItem": "m-1", "itemName": "X", "quantity": 1}},
		"totalAmount":    250,
		"address":        "   ",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Delivery address is required." {
		t.Fatalf("error=%q", body["error"])
	}
	if len(e.orders.orders) != 0 {
		t.Fatalf("no debía persistir nada")
	}
}

// montos con más de dos decimales no caben en la columna: 400, no 500
func TestCreateOrder_RejectsSubCentTotal(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	for _, amount := range []string{"0.004", "250.555"} {
		raw := `{"restaurant":"` + e.restaurant.ID + `","restaurantName":"La Pizzeria",` +
			`"items":[{"menuItem":"m-1","itemName":"X","quantity":1}],` +
			`"totalAmount":` + amount + `,"address":"12 Lane"}`
		w := e.do(t, http.MethodPost, "/orders", e.customer, json.RawMessage(raw))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("amount=%s status=%d body=%s (esperaba 400)", amount, w.Code, w.Body.String())
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["error"] != "Valid total amount is required." {
			t.Fatalf("amount=%s error=%q", amount, body["error"])
		}
	}
	if len(e.orders.orders) != 0 {
		t.Fatalf("no debía persistir nada")
	}
}

func TestCreateOrder_UnknownRestaurant(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/orders", e.customer, map[string]any{
		"restaurant":     uuid.NewString(),
		"restaurantName": "Ghost",
		"items":          []map[string]any{{"menuItem": "m-1", "itemName": "X", "quantity": 1}},
		"totalAmount":    10,
		"address":        "12 Lane",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (esperaba 404)", w.Code, w.Body.String())
	}
}

func TestCreateOrder_RequiresToken(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/orders", nil, map[string]any{})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s (esperaba 401)", w.Code, w.Body.String())
	}
}

// ===== PATCH /orders/:id/status =====
func TestUpdateOrderStatus_OwnerAccepts(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	o := e.placeOrder(t)

	w := e.do(t, http.MethodPatch, "/orders/"+o.ID+"/status", e.owner, map[string]string{"status": "Accepted"})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (esperaba 200)", w.Code, w.Body.String())
	}
	if got := e.orders.orders[o.ID].Status; got != ord.StatusAccepted {
		t.Fatalf("estado final=%s, esperado=Accepted", got)
	}

	in := e.inbox(t, e.customer)
	got := types(in)
	if len(got) != 2 || got[0] != "ORDER_CONFIRMED" {
		t.Fatalf("tipos=%v (más reciente primero)", got)
	}
}

func TestUpdateOrderStatus_NonOwnerForbidden(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	o := e.placeOrder(t)

	w := e.do(t, http.MethodPatch, "/orders/"+o.ID+"/status", e.other, map[string]string{"status": "Accepted"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d body=%s (esperaba 403)", w.Code, w.Body.String())
	}
	if got := e.orders.orders[o.ID].Status; got != ord.StatusPlaced {
		t.Fatalf("estado cambió: %s", got)
	}
	if in := e.inbox(t, e.customer); len(in.Notifications) != 1 {
		t.Fatalf("no debía notificar: %v", types(in))
	}
}

func TestUpdateOrderStatus_CancelWithReason(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	o := e.placeOrder(t)

	w := e.do(t, http.MethodPatch, "/orders/"+o.ID+"/status", e.owner, map[string]string{
		"status": "Cancelled", "cancellationReason": "Shop Closed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (esperaba 200)", w.Code, w.Body.String())
	}
	stored := e.orders.orders[o.ID]
	if stored.Status != ord.StatusCancelled || stored.CancellationReason != "Shop Closed" {
		t.Fatalf("orden=%+v", stored)
	}
	if in := e.inbox(t, e.customer); len(in.Notifications) != 1 {
		t.Fatalf("la cancelación no notifica: %v", types(in))
	}
}

func TestUpdateOrderStatus_CancelWithoutReason(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	o := e.placeOrder(t)

	w := e.do(t, http.MethodPatch, "/orders/"+o.ID+"/status", e.owner, map[string]string{"status": "Cancelled"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	o := e.placeOrder(t)

	w := e.do(t, http.MethodPatch, "/orders/"+o.ID+"/status", e.owner, map[string]string{"status": "wtf"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	o := e.placeOrder(t)

	w := e.do(t, http.MethodPatch, "/orders/"+o.ID+"/status", e.owner, map[string]string{"status": "Ready"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s (esperaba 409)", w.Code, w.Body.String())
	}
}

func TestUpdateOrderStatus_SameStatusIsIdempotent(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	o := e.placeOrder(t)

	for i := 0; i < 2; i++ {
		w := e.do(t, http.MethodPut, "/orders/"+o.ID+"/status", e.owner, map[string]string{"status": "Accepted"})
		if w.Code != http.StatusOK {
			t.Fatalf("intento %d: status=%d body=%s", i, w.Code, w.Body.String())
		}
	}
	if v := e.orders.orders[o.ID].Version; v != 2 {
		t.Fatalf("version=%d, esperaba 2 (una sola escritura)", v)
	}
	if got := types(e.inbox(t, e.customer)); len(got) != 2 {
		t.Fatalf("tipos=%v, esperaba una sola ORDER_CONFIRMED", got)
	}
}

// ===== GET =====
func TestGetOrder_NotFound(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/orders/"+uuid.NewString(), e.admin, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (esperaba 404)", w.Code, w.Body.String())
	}
}

func TestListOrders(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.placeOrder(t)

	cases := []struct {
		path string
		as   *user.User
		code int
		n    int
	}{
		{"/orders", e.customer, http.StatusOK, 1},
		{"/orders", e.owner, http.StatusOK, 0},
		{"/restaurants/" + e.restaurant.ID + "/orders", e.owner, http.StatusOK, 1},
		{"/restaurants/" + e.restaurant.ID + "/orders", e.other, http.StatusForbidden, -1},
		{"/restaurant-orders", e.owner, http.StatusOK, 1},
		{"/restaurant-orders", e.other, http.StatusOK, 0},
		{"/restaurant-orders", e.customer, http.StatusForbidden, -1},
		{"/orders/all?status=Placed", e.admin, http.StatusOK, 1},
		{"/orders/all?status=Delivered", e.admin, http.StatusOK, 0},
		{"/orders/all?status=nope", e.admin, http.StatusBadRequest, -1},
		{"/orders/all", e.customer, http.StatusForbidden, -1},
	}
	for _, tc := range cases {
		w := e.do(t, http.MethodGet, tc.path, tc.as, nil)
		if w.Code != tc.code {
			t.Fatalf("%s as %s: status=%d body=%s", tc.path, tc.as.Username, w.Code, w.Body.String())
		}
		if tc.n < 0 {
			continue
		}
		var arr []ord.Order
		if err := json.Unmarshal(w.Body.Bytes(), &arr); err != nil {
			t.Fatalf("%s: json inválido: %v", tc.path, err)
		}
		if len(arr) != tc.n {
			t.Fatalf("%s as %s: len=%d, esperaba %d", tc.path, tc.as.Username, len(arr), tc.n)
		}
	}
}

// ===== Auth, inbox, push tokens =====
func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/auth/register", nil, map[string]string{
		"username": "pepe", "mobileNumber": "+579999", "password": "pw123456", "role": "admin",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var u user.User
	_ = json.Unmarshal(w.Body.Bytes(), &u)
	if u.Role != auth.RoleUser {
		t.Fatalf("el registro público no debe elegir rol: %s", u.Role)
	}

	w = e.do(t, http.MethodPost, "/auth/register", nil, map[string]string{
		"username": "pepe2", "mobileNumber": "+579999", "password": "pw123456",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s (esperaba 409)", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodPost, "/auth/login", nil, map[string]string{"mobileNumber": "+579999", "password": "bad"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d body=%s (esperaba 401)", w.Code, w.Body.String())
	}
	w = e.do(t, http.MethodPost, "/auth/login", nil, map[string]string{"mobileNumber": "+579999", "password": "pw123456"})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if p, err := e.issuer.Parse(resp.Token); err != nil || p.UserID != u.ID {
		t.Fatalf("token inválido: %v %+v", err, p)
	}
}

func TestAdminCreatesRestaurantAndUser(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	body := map[string]string{"name": "Sushi", "address": "1 Road", "ownerId": e.other.ID}
	if w := e.do(t, http.MethodPost, "/restaurants", e.owner, body); w.Code != http.StatusForbidden {
		t.Fatalf("status=%d body=%s (esperaba 403)", w.Code, w.Body.String())
	}
	w := e.do(t, http.MethodPost, "/restaurants", e.admin, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var rs restaurant.Restaurant
	_ = json.Unmarshal(w.Body.Bytes(), &rs)
	if rs.OwnerID != e.other.ID || rs.ID == "" {
		t.Fatalf("restaurante=%+v", rs)
	}

	w = e.do(t, http.MethodPost, "/users", e.admin, map[string]string{
		"username": "chef", "mobileNumber": "+578888", "password": "pw123456", "role": "restaurant",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	w = e.do(t, http.MethodPost, "/users", e.admin, map[string]string{
		"username": "x", "mobileNumber": "+577777", "password": "pw123456", "role": "boss",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}
}

func TestInboxReadAndClear(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.placeOrder(t)

	in := e.inbox(t, e.customer)
	if in.UnreadCount != 1 {
		t.Fatalf("unread=%d", in.UnreadCount)
	}
	id := in.Notifications[0].ID
	if w := e.do(t, http.MethodPatch, "/notifications/"+id+"/read", e.customer, nil); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := e.do(t, http.MethodPatch, "/notifications/nope/read", e.customer, nil); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (esperaba 404)", w.Code, w.Body.String())
	}
	if in := e.inbox(t, e.customer); in.UnreadCount != 0 {
		t.Fatalf("unread=%d, esperaba 0", in.UnreadCount)
	}
	if w := e.do(t, http.MethodDelete, "/notifications", e.customer, nil); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if in := e.inbox(t, e.customer); len(in.Notifications) != 0 {
		t.Fatalf("inbox no vacío: %v", types(in))
	}
}

func TestPushTokensReceiveNotifications(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	if w := e.do(t, http.MethodPost, "/push-tokens", e.customer, map[string]string{"token": "tok-1"}); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := e.do(t, http.MethodPost, "/push-tokens", e.customer, map[string]string{"token": " "}); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (esperaba 400)", w.Code, w.Body.String())
	}

	e.placeOrder(t)
	e.async.Wait()

	e.sender.mu.Lock()
	sent := append([]notify.Message(nil), e.sender.sent...)
	e.sender.mu.Unlock()
	if len(sent) != 1 || sent[0].Token != "tok-1" || sent[0].Title != "Order Placed Successfully" {
		t.Fatalf("push enviados=%+v", sent)
	}

	if w := e.do(t, http.MethodDelete, "/push-tokens", e.customer, map[string]string{"token": "tok-1"}); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		ord.ErrNotFound:           http.StatusNotFound,
		ord.ErrForbidden:          http.StatusForbidden,
		ord.ErrConflict:           http.StatusConflict,
		ord.ErrInvalidTransition:  http.StatusConflict,
		ord.ErrRestaurantNotFound: http.StatusNotFound,
		user.ErrAlreadyExist:      http.StatusConflict,
		user.ErrInvalidInput:      http.StatusBadRequest,
		io.ErrUnexpectedEOF:       http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := statusFor(err); got != want {
			t.Fatalf("%v: status=%d, esperado=%d", err, got, want)
		}
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	if w := e.do(t, http.MethodGet, "/healthz", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
