package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/delivery/http/validator"
	deliverymiddleware "storefront/internal/delivery/middleware"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/auth"
	ucmocks "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success    bool               `json:"success"`
	Code       int                `json:"code"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *entity.Pagination `json:"pagination"`
	Error      *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type apiFixture struct {
	echo      *echo.Echo
	tokens    service.TokenService
	auth      *ucmocks.MockAuthUsecase
	products  *ucmocks.MockProductUsecase
	orders    *ucmocks.MockOrderUsecase
	reviews   *ucmocks.MockReviewUsecase
	users     *ucmocks.MockUserUsecase
	dashboard *ucmocks.MockDashboardUsecase
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.Secret = "router_test_session_secret_that_is_long_enough"
	cfg.Session.TTL = time.Hour
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &apiFixture{
		tokens:    tokens,
		auth:      ucmocks.NewMockAuthUsecase(t),
		products:  ucmocks.NewMockProductUsecase(t),
		orders:    ucmocks.NewMockOrderUsecase(t),
		reviews:   ucmocks.NewMockReviewUsecase(t),
		users:     ucmocks.NewMockUserUsecase(t),
		dashboard: ucmocks.NewMockDashboardUsecase(t),
	}

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Use(deliverymiddleware.NewRequestIDMiddleware(logger).Process)

	NewRouter(RouterParams{
		AuthHandler:      handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: f.auth, Logger: logger}),
		ProductHandler:   handler.NewProductHandler(handler.ProductHandlerParams{ProductUC: f.products, Logger: logger}),
		CategoryHandler:  handler.NewCategoryHandler(handler.CategoryHandlerParams{CategoryUC: ucmocks.NewMockCategoryUsecase(t), Logger: logger}),
		TeamHandler:      handler.NewTeamHandler(handler.TeamHandlerParams{TeamUC: ucmocks.NewMockTeamUsecase(t), Logger: logger}),
		OrderHandler:     handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: f.orders, Logger: logger}),
		ReviewHandler:    handler.NewReviewHandler(handler.ReviewHandlerParams{ReviewUC: f.reviews, Logger: logger}),
		UserHandler:      handler.NewUserHandler(handler.UserHandlerParams{UserUC: f.users, Logger: logger}),
		DashboardHandler: handler.NewDashboardHandler(handler.DashboardHandlerParams{DashboardUC: f.dashboard, Logger: logger}),
		AuthMiddleware:   middleware.NewAuthMiddleware(tokens),
	}).RegisterRoutes(e)
	f.echo = e

	return f
}

func (f *apiFixture) token(t *testing.T, userID uuid.UUID, role entity.Role) string {
	t.Helper()

	token, _, err := f.tokens.GenerateToken(userID, []string{role.String()})
	require.NoError(t, err)

	return token
}

func (f *apiFixture) do(t *testing.T, req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return rec, body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

type formFile struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.name)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())

	return req
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestHealthCheck(t *testing.T) {
	f := newAPIFixture(t)

	rec, body := f.do(t, httptest.NewRequest(http.MethodGet, "/health", nil), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Meta.RequestID)
	assert.Equal(t, body.Meta.RequestID, rec.Header().Get(echo.HeaderXRequestID))
}

func TestListProducts_FiltersAndPagination(t *testing.T) {
	f := newAPIFixture(t)
	categoryID := uuid.New()
	product := &entity.Product{ID: uuid.New(), Name: "Home Kit", Price: decimal.RequireFromString("79.90")}

	f.products.On("ListProducts", mock.Anything, mock.MatchedBy(func(filter entity.ProductFilter) bool {
		return filter.Keyword == "kit" &&
			filter.CategoryID != nil && *filter.CategoryID == categoryID &&
			filter.MinPrice != nil &&
			filter.MinPrice.Equal(decimal.NewFromInt(10)) &&
			filter.MaxPrice == nil &&
			filter.InStock &&
			filter.Sort == entity.ProductSortPriceAsc &&
			filter.Page == entity.PageRequest{Page: 2, Limit: 5}
	})).Return(usecase.NewPage([]*entity.Product{product}, entity.PageRequest{Page: 2, Limit: 5}, 6), nil)

	target := "/api/v1/products?keyword=kit&category=" + categoryID.String() + "&minPrice=10&inStock=true&sort=price_asc&page=2&limit=5"
	rec, body := f.do(t, httptest.NewRequest(http.MethodGet, target, nil), "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, entity.Pagination{Page: 2, Limit: 5, Total: 6, TotalPages: 2}, *body.Pagination)

	var products []entity.Product
	require.NoError(t, json.Unmarshal(body.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Home Kit", products[0].Name)
	assert.Contains(t, string(body.Data), `"price":"79.9"`)
}

func TestListProducts_RejectsBadSort(t *testing.T) {
	f := newAPIFixture(t)

	rec, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=cheapest", nil), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "sort")
}

func TestCreateProduct_RequiresAdmin(t *testing.T) {
	f := newAPIFixture(t)
	payload := `{"name":"Scarf","price":19.5,"stock":10}`

	rec, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/products", payload), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", body.Error.Code)

	rec, body = f.do(t, jsonRequest(http.MethodPost, "/api/v1/products", payload), "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", body.Error.Code)

	rec, body = f.do(t, jsonRequest(http.MethodPost, "/api/v1/products", payload), f.token(t, uuid.New(), entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, body.Success)
}

func TestCreateProduct_JSON(t *testing.T) {
	f := newAPIFixture(t)
	adminID := uuid.New()
	teamID := uuid.New()
	hosted := entity.Image{PublicID: "products/a.png", URL: "https://cdn.example.com/products/a.png"}

	f.products.On("CreateProduct", mock.Anything, adminID, mock.MatchedBy(func(in *usecase.CreateProductInput) bool {
		return in.Name == "Scarf" &&
			in.Price.Equal(decimal.RequireFromString("19.5")) &&
			in.Stock == 10 &&
			in.CategoryID == nil &&
			*in.TeamID == teamID &&
			len(in.Images) == 1 && *in.Images[0].Hosted == hosted
	})).Return(&entity.Product{ID: uuid.New(), Name: "Scarf"}, nil)

	payload := `{"name":"Scarf","price":"19.5","stock":10,"teamId":"` + teamID.String() + `",` +
		`"images":[{"publicId":"products/a.png","url":"https://cdn.example.com/products/a.png"}]}`
	rec, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/products", payload), f.token(t, adminID, entity.RoleAdmin))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "Product created successfully", body.Message)
}

func TestCreateProduct_MultipartUpload(t *testing.T) {
	f := newAPIFixture(t)
	adminID := uuid.New()

	f.products.On("CreateProduct", mock.Anything, adminID, mock.MatchedBy(func(in *usecase.CreateProductInput) bool {
		return in.Name == "Scarf" &&
			in.Price.Equal(decimal.RequireFromString("12.00")) &&
			in.Stock == 3 &&
			len(in.Images) == 1 &&
			in.Images[0].IsUpload() &&
			in.Images[0].Upload.Filename == "scarf.png" &&
			in.Images[0].Upload.ContentType == "image/png" &&
			bytes.Equal(in.Images[0].Upload.Data, pngHeader)
	})).Return(&entity.Product{ID: uuid.New(), Name: "Scarf"}, nil)

	req := multipartRequest(t, http.MethodPost, "/api/v1/products",
		map[string]string{"name": "Scarf", "price": "12.00", "stock": "3"},
		formFile{field: "images", name: "scarf.png", data: pngHeader},
	)
	rec, _ := f.do(t, req, f.token(t, adminID, entity.RoleAdmin))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateProduct_MissingFields(t *testing.T) {
	f := newAPIFixture(t)

	rec, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/products", `{"name":"Scarf"}`), f.token(t, uuid.New(), entity.RoleAdmin))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
}

func TestUpdateProduct_ClearsCategoryAndKeepsImages(t *testing.T) {
	f := newAPIFixture(t)
	productID := uuid.New()

	f.products.On("UpdateProduct", mock.Anything, productID, mock.MatchedBy(func(in *usecase.UpdateProductInput) bool {
		return in.Name == nil &&
			*in.Stock == 0 &&
			in.ClearCategory && in.CategoryID == nil &&
			!in.ClearTeam &&
			!in.ReplaceImages
	})).Return(&entity.Product{ID: productID}, nil)

	rec, _ := f.do(t, jsonRequest(http.MethodPut, "/api/v1/products/"+productID.String(), `{"stock":0,"categoryId":""}`),
		f.token(t, uuid.New(), entity.RoleAdmin))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProduct_InvalidAndMissing(t *testing.T) {
	f := newAPIFixture(t)
	missing := uuid.New()
	f.products.On("GetProduct", mock.Anything, missing).Return(nil, domainerrors.ErrProductNotFound.WrapMessage("lookup"))

	rec, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/products/not-an-id", nil), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id", body.Error.Details)

	rec, body = f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+missing.String(), nil), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body.Error.Code)
}

func TestCreateOrder(t *testing.T) {
	f := newAPIFixture(t)
	userID := uuid.New()
	productID := uuid.New()

	f.orders.On("CreateOrder", mock.Anything, userID, mock.MatchedBy(func(in *usecase.CreateOrderInput) bool {
		return len(in.Items) == 1 &&
			in.Items[0].ProductID == productID &&
			in.Items[0].Quantity == 2 &&
			in.ShippingInfo.City == "Manchester" &&
			in.PaymentInfo.Status == "succeeded"
	})).Return(&entity.Order{ID: uuid.New(), UserID: userID, Status: entity.OrderStatusProcessing}, nil)

	payload := `{
		"orderItems":[{"productId":"` + productID.String() + `","quantity":2}],
		"shippingInfo":{"address":"1 Sir Matt Busby Way","city":"Manchester","country":"UK","postalCode":"M16 0RA","phone":"0161"},
		"paymentInfo":{"id":"pi_1","status":"succeeded"}
	}`
	rec, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/orders", payload), f.token(t, userID, entity.RoleUser))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, string(body.Data), `"orderStatus":"Processing"`)
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newAPIFixture(t)
	token := f.token(t, uuid.New(), entity.RoleUser)

	rec, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/orders", `{"orderItems":[]}`), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body.Error.Details, "orderItems")

	payload := `{"orderItems":[{"productId":"` + uuid.NewString() + `","quantity":0}],` +
		`"shippingInfo":{"address":"a","city":"b","country":"c","postalCode":"d","phone":"e"}}`
	rec, body = f.do(t, jsonRequest(http.MethodPost, "/api/v1/orders", payload), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body.Error.Details, "quantity")
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	f := newAPIFixture(t)
	userID := uuid.New()

	f.orders.On("CreateOrder", mock.Anything, userID, mock.Anything).Return(nil,
		domainerrors.ErrInsufficientStock.WithMessage("Insufficient stock for Scarf: only 3 available").WrapMessage("stock check failed"))

	payload := `{"orderItems":[{"productId":"` + uuid.NewString() + `","quantity":5}],` +
		`"shippingInfo":{"address":"a","city":"b","country":"c","postalCode":"d","phone":"e"}}`
	rec, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/orders", payload), f.token(t, userID, entity.RoleUser))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Error.Code)
	assert.Equal(t, "Insufficient stock for Scarf: only 3 available", body.Message)
}

func TestCancelOrder_PassesActor(t *testing.T) {
	f := newAPIFixture(t)
	adminID := uuid.New()
	orderID := uuid.New()

	actor := usecase.Actor{UserID: adminID, Roles: entity.Roles{entity.RoleAdmin}}
	f.orders.On("CancelOrder", mock.Anything, actor, orderID).
		Return(&entity.Order{ID: orderID, Status: entity.OrderStatusCancelled}, nil)

	rec, _ := f.do(t, httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+orderID.String()+"/cancel", nil), f.token(t, adminID, entity.RoleAdmin))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newAPIFixture(t)
	orderID := uuid.New()
	token := f.token(t, uuid.New(), entity.RoleAdmin)

	rec, _ := f.do(t, jsonRequest(http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status", `{"status":"Lost"}`), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.orders.On("UpdateOrderStatus", mock.Anything, orderID, entity.OrderStatusShipped).
		Return(nil, domainerrors.ErrOrderFinalized.WrapMessage("update status"))

	rec, body := f.do(t, jsonRequest(http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status", `{"status":"Shipped"}`), token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ORDER_FINALIZED", body.Error.Code)
}

func TestAdminRoutes_ForbiddenForShoppers(t *testing.T) {
	f := newAPIFixture(t)
	token := f.token(t, uuid.New(), entity.RoleUser)

	for _, target := range []string{"/api/v1/admin/orders", "/api/v1/admin/users", "/api/v1/admin/dashboard/summary"} {
		rec, _ := f.do(t, httptest.NewRequest(http.MethodGet, target, nil), token)
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}
}

func TestDashboardSales_DateWindow(t *testing.T) {
	f := newAPIFixture(t)

	f.dashboard.On("Sales", mock.Anything, usecase.SalesByDay, mock.MatchedBy(func(window entity.DateRange) bool {
		return window.Start != nil && window.End != nil &&
			window.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			window.End.Equal(time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC))
	})).Return([]entity.SalesBucket{{Label: "2024-01-05", Sales: decimal.NewFromInt(71), Orders: 1}}, nil)

	rec, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard/sales?groupBy=day&startDate=2024-01-01&endDate=2024-01-31", nil),
		f.token(t, uuid.New(), entity.RoleAdmin))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body.Data), `"sales":"71"`)

	rec, _ = f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard/sales?startDate=January", nil),
		f.token(t, uuid.New(), entity.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnexpectedErrorIsHidden(t *testing.T) {
	f := newAPIFixture(t)
	f.dashboard.On("Summary", mock.Anything).Return(nil, errors.New("pq: connection refused to 10.0.0.5"))

	rec, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard/summary", nil), f.token(t, uuid.New(), entity.RoleAdmin))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestLogin_ProviderTokenFromHeader(t *testing.T) {
	f := newAPIFixture(t)
	user := &entity.User{ID: uuid.New(), Email: "fan@example.com", Role: entity.RoleUser}
	f.auth.On("Login", mock.Anything, "provider-id-token").
		Return(&usecase.AuthOutput{Token: "session", ExpiresAt: time.Now().Add(time.Hour), User: user}, nil)

	rec, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{}`), "provider-id-token")

	require.Equal(t, http.StatusOK, rec.Code)
	var out handler.AuthResponse
	require.NoError(t, json.Unmarshal(body.Data, &out))
	assert.Equal(t, "session", out.Token)
	assert.Equal(t, "fan@example.com", out.User.Email)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	f := newAPIFixture(t)
	f.auth.On("Login", mock.Anything, "tok").Return(nil, domainerrors.ErrAccountDeactivated.WrapMessage("login"))

	rec, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"idToken":"tok"}`), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", body.Error.Code)
}

func TestSocialLogin_RejectsUnknownProvider(t *testing.T) {
	f := newAPIFixture(t)

	rec, _ := f.do(t, jsonRequest(http.MethodPost, "/api/v1/auth/social", `{"idToken":"tok","provider":"myspace"}`), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfile_AvatarUpload(t *testing.T) {
	f := newAPIFixture(t)
	userID := uuid.New()

	f.users.On("UpdateProfile", mock.Anything, userID, mock.MatchedBy(func(in *usecase.UpdateProfileInput) bool {
		return *in.Name == "Fan" && in.Phone == nil && in.Avatar != nil && in.Avatar.Filename == "me.png"
	})).Return(&entity.User{ID: userID, Name: "Fan"}, nil)

	req := multipartRequest(t, http.MethodPut, "/api/v1/users/me", map[string]string{"name": "Fan"},
		formFile{field: "avatar", name: "me.png", data: pngHeader})
	rec, _ := f.do(t, req, f.token(t, userID, entity.RoleUser))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateReview_ReplacesImagesFromForm(t *testing.T) {
	f := newAPIFixture(t)
	userID := uuid.New()
	reviewID := uuid.New()

	f.reviews.On("UpdateReview", mock.Anything, usecase.Actor{UserID: userID, Roles: entity.Roles{entity.RoleUser}}, reviewID,
		mock.MatchedBy(func(in *usecase.UpdateReviewInput) bool {
			return *in.Rating == 4 &&
				in.ReplaceImages &&
				len(in.Images) == 2 &&
				in.Images[0].Hosted.PublicID == "reviews/old.png" &&
				in.Images[1].IsUpload()
		})).Return(&entity.Review{ID: reviewID, Rating: 4}, nil)

	req := multipartRequest(t, http.MethodPut, "/api/v1/reviews/"+reviewID.String(),
		map[string]string{
			"rating":         "4",
			"existingImages": `[{"publicId":"reviews/old.png","url":"https://cdn.example.com/reviews/old.png"}]`,
		},
		formFile{field: "images", name: "new.png", data: pngHeader},
	)
	rec, _ := f.do(t, req, f.token(t, userID, entity.RoleUser))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListProductReviews_Public(t *testing.T) {
	f := newAPIFixture(t)
	productID := uuid.New()

	f.reviews.On("ListReviews", mock.Anything, mock.MatchedBy(func(filter entity.ReviewFilter) bool {
		return *filter.ProductID == productID && filter.UserID == nil
	})).Return(usecase.NewPage([]*entity.Review{}, entity.PageRequest{Page: 1, Limit: 20}, 0), nil)

	rec, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String()+"/reviews", nil), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(body.Data))
	assert.Equal(t, int64(0), body.Pagination.Total)
}
