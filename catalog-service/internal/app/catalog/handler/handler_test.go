package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/service"
	"gamestore/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGameService мок для GameService в тестах handler
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) GetFilteredSortedPaginatedGames(ctx context.Context, q *entity.GameQuery) (*entity.GamePageResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GamePageResponse), args.Error(1)
}

func (m *MockGameService) GetGameByKey(ctx context.Context, key string) (*entity.GameResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameResponse), args.Error(1)
}

func (m *MockGameService) GetGameByID(ctx context.Context, id uuid.UUID) (*entity.GameResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameResponse), args.Error(1)
}

func (m *MockGameService) GameExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameService) AddGame(ctx context.Context, req *entity.GameRequest) (*entity.GameResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameResponse), args.Error(1)
}

func (m *MockGameService) UpdateGame(ctx context.Context, key string, req *entity.GameRequest) (*entity.GameResponse, error) {
	args := m.Called(ctx, key, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GameResponse), args.Error(1)
}

func (m *MockGameService) DeleteGame(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockGameService) GetGamesByGenre(ctx context.Context, genreID uuid.UUID) ([]entity.GameResponse, error) {
	args := m.Called(ctx, genreID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameResponse), args.Error(1)
}

func (m *MockGameService) GetGamesByPlatform(ctx context.Context, platformID uuid.UUID) ([]entity.GameResponse, error) {
	args := m.Called(ctx, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameResponse), args.Error(1)
}

func (m *MockGameService) GetGamesByPublisher(ctx context.Context, companyName string) ([]entity.GameResponse, error) {
	args := m.Called(ctx, companyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GameResponse), args.Error(1)
}

// MockGenreService мок для GenreService
type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) CreateGenre(ctx context.Context, req *entity.GenreRequest) (*entity.Genre, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Genre), args.Error(1)
}

func (m *MockGenreService) GetGenre(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Genre), args.Error(1)
}

func (m *MockGenreService) GetAllGenres(ctx context.Context) ([]entity.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Genre), args.Error(1)
}

func (m *MockGenreService) GetSubGenres(ctx context.Context, id uuid.UUID) ([]entity.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Genre), args.Error(1)
}

func (m *MockGenreService) UpdateGenre(ctx context.Context, id uuid.UUID, req *entity.GenreRequest) (*entity.Genre, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Genre), args.Error(1)
}

func (m *MockGenreService) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testSecret = "test-secret"

func setupTestRouter(games *MockGameService, genres *MockGenreService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRoutes(
		NewGameHandler(games),
		NewReferenceHandler(genres, nil, nil, games),
		auth.NewMiddleware(testSecret),
	)
}

func bearer(t *testing.T, permissions ...string) string {
	t.Helper()
	token, err := auth.NewMiddleware(testSecret).Sign(auth.JWTClaims{
		UserID:      uuid.NewString(),
		Name:        "manager",
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return "Bearer " + token
}

// ===================== GET /games =====================

func TestGetGames_ParsesQuery(t *testing.T) {
	// Arrange
	games := new(MockGameService)
	router := setupTestRouter(games, new(MockGenreService))
	genreA, genreB, platform := uuid.New(), uuid.New(), uuid.New()

	games.On("GetFilteredSortedPaginatedGames", mock.Anything, mock.MatchedBy(func(q *entity.GameQuery) bool {
		return len(q.GenreIDs) == 2 && q.GenreIDs[1] == genreB &&
			len(q.PlatformIDs) == 1 && q.PlatformIDs[0] == platform &&
			q.MinPrice != nil && *q.MinPrice == 5 && q.MaxPrice == nil &&
			q.Name == "wit" && q.SortBy == entity.SortPriceAsc &&
			q.PublishDate == entity.PublishDateLastYear &&
			q.Page == 1 && q.PageSize == entity.PageSize20
	})).Return(&entity.GamePageResponse{Games: []entity.GameResponse{}, TotalPages: 2, CurrentPage: 1}, nil)

	url := fmt.Sprintf("/games?genres=%s,%s&platforms=%s&minPrice=5&name=wit&sort=price-asc&publishDate=last-year&page=1&pageSize=20",
		genreA, genreB, platform)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var page entity.GamePageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	games.AssertExpectations(t)
}

func TestGetGames_BadParameters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"genre id", "genres=abc"},
		{"min price", "minPrice=cheap"},
		{"min price NaN", "minPrice=NaN"},
		{"max price infinite", "maxPrice=Inf"},
		{"negative page", "page=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := new(MockGameService)
			router := setupTestRouter(games, new(MockGenreService))
			req := httptest.NewRequest(http.MethodGet, "/games?"+tt.query, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			games.AssertNotCalled(t, "GetFilteredSortedPaginatedGames", mock.Anything, mock.Anything)
		})
	}
}

func TestGetGames_InvalidSortIsBadRequest(t *testing.T) {
	games := new(MockGameService)
	router := setupTestRouter(games, new(MockGenreService))
	games.On("GetFilteredSortedPaginatedGames", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown sort option", service.ErrInvalidQuery))

	req := httptest.NewRequest(http.MethodGet, "/games?sort=alphabetical", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== Single game =====================

func TestGetGame_NotFound(t *testing.T) {
	games := new(MockGameService)
	router := setupTestRouter(games, new(MockGenreService))
	games.On("GetGameByKey", mock.Anything, "ghost").Return(nil, service.ErrGameNotFound)

	req := httptest.NewRequest(http.MethodGet, "/games/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGameExists_Head(t *testing.T) {
	games := new(MockGameService)
	router := setupTestRouter(games, new(MockGenreService))
	games.On("GameExists", mock.Anything, "witcher-3").Return(true, nil)
	games.On("GameExists", mock.Anything, "ghost").Return(false, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/games/witcher-3", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/games/ghost", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	games.AssertNotCalled(t, "GetGameByKey", mock.Anything, mock.Anything)
}

func TestGetGameByID_InvalidID(t *testing.T) {
	router := setupTestRouter(new(MockGameService), new(MockGenreService))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/find/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== Mutations =====================

func TestCreateGame_RequiresPermission(t *testing.T) {
	games := new(MockGameService)
	router := setupTestRouter(games, new(MockGenreService))

	req := httptest.NewRequest(http.MethodPost, "/games", bytes.NewBufferString(`{}`))
	req.Header.Set("Authorization", bearer(t, auth.PermissionManageOrders))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	games.AssertNotCalled(t, "AddGame", mock.Anything, mock.Anything)
}

func TestCreateGame_Success(t *testing.T) {
	// Arrange
	games := new(MockGameService)
	router := setupTestRouter(games, new(MockGenreService))
	publisherID := uuid.New()
	body, _ := json.Marshal(entity.GameRequest{
		Key:           "witcher-3",
		Name:          "Witcher 3",
		Price:         19.99,
		UnitInStock:   5,
		PublisherID:   publisherID,
		PublishedDate: time.Date(2015, 5, 19, 0, 0, 0, 0, time.UTC),
	})
	games.On("AddGame", mock.Anything, mock.AnythingOfType("*entity.GameRequest")).
		Return(&entity.GameResponse{ID: uuid.New(), Key: "witcher-3"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/games", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, auth.PermissionManageGames))
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "witcher-3")
}

func TestCreateGame_ValidationError(t *testing.T) {
	games := new(MockGameService)
	router := setupTestRouter(games, new(MockGenreService))

	req := httptest.NewRequest(http.MethodPost, "/games", bytes.NewBufferString(`{"key":"witcher-3"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, auth.PermissionManageGames))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	games.AssertNotCalled(t, "AddGame", mock.Anything, mock.Anything)
}

func TestUpdateGame_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"missing genre", fmt.Errorf("%w: %s", service.ErrGenreNotFound, uuid.New()), http.StatusNotFound},
		{"duplicate key", service.ErrGameKeyExists, http.StatusConflict},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	body, _ := json.Marshal(entity.GameRequest{
		Key:           "witcher-3",
		Name:          "Witcher 3",
		PublisherID:   uuid.New(),
		PublishedDate: time.Date(2015, 5, 19, 0, 0, 0, 0, time.UTC),
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := new(MockGameService)
			router := setupTestRouter(games, new(MockGenreService))
			games.On("UpdateGame", mock.Anything, "witcher-3", mock.Anything).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPut, "/games/witcher-3", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", bearer(t, auth.PermissionManageGames))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

// ===================== Genres =====================

func TestUpdateGenre_CycleIsBadRequest(t *testing.T) {
	genres := new(MockGenreService)
	router := setupTestRouter(new(MockGameService), genres)
	id := uuid.New()
	genres.On("UpdateGenre", mock.Anything, id, mock.Anything).Return(nil, service.ErrGenreCycle)

	req := httptest.NewRequest(http.MethodPut, "/genres/"+id.String(), bytes.NewBufferString(`{"name":"RPG"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, auth.PermissionManageGenres))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllGenres(t *testing.T) {
	genres := new(MockGenreService)
	router := setupTestRouter(new(MockGameService), genres)
	genres.On("GetAllGenres", mock.Anything).Return([]entity.Genre{{ID: uuid.New(), Name: "RPG"}}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/genres", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp entity.GenreListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestGetGamesByGenre_NotFound(t *testing.T) {
	games := new(MockGameService)
	router := setupTestRouter(games, new(MockGenreService))
	id := uuid.New()
	games.On("GetGamesByGenre", mock.Anything, id).Return(nil, service.ErrGenreNotFound)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/genres/"+id.String()+"/games", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
