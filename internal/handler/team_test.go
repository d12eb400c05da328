package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cmlichen-UTT/UA-api/internal/auth"
	"github.com/cmlichen-UTT/UA-api/internal/config"
	"github.com/cmlichen-UTT/UA-api/internal/domain"
	"github.com/cmlichen-UTT/UA-api/internal/handler"
	"github.com/cmlichen-UTT/UA-api/internal/mocks"
	"github.com/cmlichen-UTT/UA-api/internal/usecase"
)

func testConfig() config.Config {
	return config.Config{
		CoachLimit:          2,
		DiscordLinkRequired: true,
		BcryptRounds:        4,
		JWTSecret:           "test-secret",
		JWTExpires:          time.Hour,
	}
}

func strPtr(s string) *string {
	return &s
}

type testServer struct {
	echo     *echo.Echo
	cfg      config.Config
	userRepo *mocks.UserRepository
	teamRepo *mocks.TeamRepository
	itemRepo *mocks.ItemRepository
	cartRepo *mocks.CartRepository
}

func newTestServer() *testServer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := testConfig()
	userRepo := &mocks.UserRepository{}
	teamRepo := &mocks.TeamRepository{}
	itemRepo := &mocks.ItemRepository{}
	cartRepo := &mocks.CartRepository{}

	authUC := usecase.NewAuthUseCase(userRepo, cfg, logger)
	userUC := usecase.NewUserUseCase(userRepo, cfg, logger)
	teamUC := usecase.NewTeamUseCase(teamRepo, userRepo, cfg, logger)
	itemUC := usecase.NewItemUseCase(itemRepo, logger)
	cartUC := usecase.NewCartUseCase(cartRepo, itemRepo, userRepo, logger)

	e := echo.New()
	apiHandler := handler.NewAPIHandler(authUC, userUC, teamUC, itemUC, cartUC, logger)
	apiHandler.RegisterRoutes(e, cfg, userRepo)

	return &testServer{
		echo:     e,
		cfg:      cfg,
		userRepo: userRepo,
		teamRepo: teamRepo,
		itemRepo: itemRepo,
		cartRepo: cartRepo,
	}
}

func (s *testServer) request(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) token(t *testing.T, user *domain.User) string {
	t.Helper()
	token, err := auth.GenerateToken(s.cfg, user)
	assert.NoError(t, err)
	return token
}

func linkedUser(id string) *domain.User {
	return &domain.User{
		ID:        id,
		Username:  "user-" + id,
		Email:     id + "@example.com",
		Type:      domain.UserPlayer,
		DiscordID: strPtr("discord-" + id),
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var resp domain.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestJoinRequest_RequiresToken(t *testing.T) {
	s := newTestServer()

	rec := s.request(t, http.MethodPost, "/teams/t1/join-requests", `{"userType":"player"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeError(t, rec).Error.Code)
}

func TestAuthMiddleware_StaleToken(t *testing.T) {
	s := newTestServer()
	user := linkedUser("u1")

	// The account behind a valid token is gone: stale credential, 401.
	s.userRepo.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrUserNotFound)

	rec := s.request(t, http.MethodGet, "/items", "", s.token(t, user))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeError(t, rec).Error.Code)
}

func TestAuthMiddleware_RepositoryFailure(t *testing.T) {
	s := newTestServer()
	user := linkedUser("u1")

	// An infrastructure failure while loading the user is not the caller's
	// fault and must not masquerade as a credential problem.
	s.userRepo.On("GetByID", mock.Anything, "u1").Return(nil, errors.New("connection refused"))

	rec := s.request(t, http.MethodGet, "/items", "", s.token(t, user))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Error.Code)
}

func TestJoinRequest_TeamNotFound(t *testing.T) {
	s := newTestServer()
	user := linkedUser("u1")

	s.userRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)
	s.teamRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrTeamNotFound)

	rec := s.request(t, http.MethodPost, "/teams/ghost/join-requests", `{"userType":"player"}`, s.token(t, user))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJoinRequest_InvalidUserType(t *testing.T) {
	s := newTestServer()
	user := linkedUser("u1")
	team := &domain.Team{ID: "t1", Name: "wolves", CaptainID: "cap"}

	s.userRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)
	s.teamRepo.On("GetByID", mock.Anything, "t1").Return(team, nil)

	rec := s.request(t, http.MethodPost, "/teams/t1/join-requests", `{"userType":"orga"}`, s.token(t, user))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_USER_TYPE", decodeError(t, rec).Error.Code)
}

func TestJoinRequest_LockedTeam(t *testing.T) {
	s := newTestServer()
	user := linkedUser("u1")
	team := &domain.Team{ID: "t1", Name: "wolves", CaptainID: "cap", Locked: true}

	s.userRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)
	s.teamRepo.On("GetByID", mock.Anything, "t1").Return(team, nil)

	rec := s.request(t, http.MethodPost, "/teams/t1/join-requests", `{"userType":"player"}`, s.token(t, user))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "TEAM_LOCKED", decodeError(t, rec).Error.Code)
}

func TestJoinRequest_CoachLimit(t *testing.T) {
	s := newTestServer()
	user := linkedUser("u1")
	team := &domain.Team{ID: "t1", Name: "wolves", CaptainID: "cap"}

	s.userRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)
	s.teamRepo.On("GetByID", mock.Anything, "t1").Return(team, nil)
	s.teamRepo.On("CountCoaches", mock.Anything, "t1").Return(2, nil)

	rec := s.request(t, http.MethodPost, "/teams/t1/join-requests", `{"userType":"coach"}`, s.token(t, user))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "TEAM_MAX_COACH_REACHED", decodeError(t, rec).Error.Code)
}

// TestJoinRequest_FullFlow drives ask, duplicate ask, withdraw, re-ask
// through the HTTP surface.
func TestJoinRequest_FullFlow(t *testing.T) {
	s := newTestServer()

	fresh := linkedUser("u1")
	asked := linkedUser("u1")
	asked.AskingTeamID = strPtr("t1")
	team := &domain.Team{ID: "t1", Name: "wolves", CaptainID: "cap"}
	token := s.token(t, fresh)

	s.teamRepo.On("GetByID", mock.Anything, "t1").Return(team, nil)

	// First ask succeeds: middleware and usecase both see the fresh user.
	s.userRepo.On("GetByID", mock.Anything, "u1").Return(fresh, nil).Times(2)
	s.userRepo.On("SetJoinRequest", mock.Anything, "u1", "t1", domain.UserPlayer).Return(asked, nil).Once()

	rec := s.request(t, http.MethodPost, "/teams/t1/join-requests", `{"userType":"player"}`, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "t1", body["askingTeamId"])
	// The response is filtered: no credentials, no internal fields.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "registerToken")
	assert.NotContains(t, body, "updatedAt")

	// The immediate repeat fails.
	s.userRepo.On("GetByID", mock.Anything, "u1").Return(asked, nil).Times(2)
	rec = s.request(t, http.MethodPost, "/teams/t1/join-requests", `{"userType":"player"}`, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ALREADY_ASKED_A_TEAM", decodeError(t, rec).Error.Code)

	// Withdraw the request.
	s.userRepo.On("GetByID", mock.Anything, "u1").Return(asked, nil).Once()
	s.userRepo.On("ClearJoinRequest", mock.Anything, "u1").Return(fresh, nil).Once()
	rec = s.request(t, http.MethodDelete, "/teams/current/join-requests", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Asking again works.
	s.userRepo.On("GetByID", mock.Anything, "u1").Return(fresh, nil).Times(2)
	s.userRepo.On("SetJoinRequest", mock.Anything, "u1", "t1", domain.UserPlayer).Return(asked, nil).Once()
	rec = s.request(t, http.MethodPost, "/teams/t1/join-requests", `{"userType":"player"}`, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_Endpoint(t *testing.T) {
	s := newTestServer()

	hash, err := auth.HashPassword("correct horse", 4)
	assert.NoError(t, err)
	user := &domain.User{
		ID:       "u1",
		Username: "teaMate",
		Email:    "teamate@example.com",
		Password: hash,
		Type:     domain.UserPlayer,
	}

	s.userRepo.On("GetByEmail", mock.Anything, "teamate@example.com").Return(user, nil)

	rec := s.request(t, http.MethodPost, "/login", `{"login":"teamate@example.com","password":"correct horse"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.User["id"])
	assert.NotContains(t, body.User, "password")
	assert.NotEmpty(t, body.Token)

	rec = s.request(t, http.MethodPost, "/login", `{"login":"teamate@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, rec).Error.Code)
}

func TestGetItems_Endpoint(t *testing.T) {
	s := newTestServer()
	user := linkedUser("u1")

	stock := 10
	s.userRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)
	s.itemRepo.On("GetAll", mock.Anything).Return([]*domain.Item{
		{ID: "tshirt-f-m", Name: "T-shirt femme", Category: "supplement", Stock: &stock},
		{ID: domain.DiscountSwitchSSBU, Name: "Réduction", Category: "supplement"},
	}, nil)
	s.itemRepo.On("ReservedQuantities", mock.Anything).Return(map[string]int{"tshirt-f-m": 4}, nil)

	rec := s.request(t, http.MethodGet, "/items", "", s.token(t, user))
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	// The caller has no team: the discount item is filtered out.
	assert.Len(t, items, 1)
	assert.Equal(t, "tshirt-f-m", items[0]["id"])
	assert.Equal(t, float64(6), items[0]["left"])
}

func TestGetCarts_Endpoint(t *testing.T) {
	s := newTestServer()
	user := linkedUser("u1")

	s.userRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)
	s.cartRepo.On("GetByUser", mock.Anything, "u1").Return([]*domain.Cart{
		{
			ID:               "c1",
			UserID:           "u1",
			TransactionState: domain.TransactionPending,
			Items:            []*domain.CartItem{{ID: "l1", ItemID: "ticket-player", CartID: "c1", Quantity: 1}},
		},
	}, nil)

	rec := s.request(t, http.MethodGet, "/carts", "", s.token(t, user))
	assert.Equal(t, http.StatusOK, rec.Code)

	var carts []map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &carts))
	assert.Len(t, carts, 1)
	assert.Equal(t, "pending", carts[0]["transactionState"])
}
