package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// GameHandler обрабатывает HTTP запросы каталога игр
type GameHandler struct {
	gameService service.GameServiceInterface
	validator   *validator.Validate
}

func NewGameHandler(gameService service.GameServiceInterface) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		validator:   validator.New(),
	}
}

// GetGames обрабатывает GET /games
// Параметры: genres, platforms, publishers (повторяемые или через запятую),
// minPrice, maxPrice, name, publishDate, sort, page, pageSize
func (h *GameHandler) GetGames(c *gin.Context) {
	q, err := parseGameQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.gameService.GetFilteredSortedPaginatedGames(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to get games")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetGame обрабатывает GET /games/:key
func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.gameService.GetGameByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err, "Failed to get game")
		return
	}

	c.JSON(http.StatusOK, game)
}

// GameExists обрабатывает HEAD /games/:key, просмотр не засчитывается
func (h *GameHandler) GameExists(c *gin.Context) {
	exists, err := h.gameService.GameExists(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// GetGameByID обрабатывает GET /games/find/:id
func (h *GameHandler) GetGameByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	game, err := h.gameService.GetGameByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get game")
		return
	}

	c.JSON(http.StatusOK, game)
}

// CreateGame обрабатывает POST /games
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req entity.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	game, err := h.gameService.AddGame(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create game")
		return
	}

	c.JSON(http.StatusCreated, game)
}

// UpdateGame обрабатывает PUT /games/:key
func (h *GameHandler) UpdateGame(c *gin.Context) {
	var req entity.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	game, err := h.gameService.UpdateGame(c.Request.Context(), c.Param("key"), &req)
	if err != nil {
		respondError(c, err, "Failed to update game")
		return
	}

	c.JSON(http.StatusOK, game)
}

// DeleteGame обрабатывает DELETE /games/:key
func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.gameService.DeleteGame(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, err, "Failed to delete game")
		return
	}

	c.Status(http.StatusNoContent)
}

func parseGameQuery(c *gin.Context) (*entity.GameQuery, error) {
	q := &entity.GameQuery{
		Name:        strings.TrimSpace(c.Query("name")),
		PublishDate: entity.PublishDateOption(c.Query("publishDate")),
		SortBy:      entity.SortOption(c.Query("sort")),
		PageSize:    entity.PageSizeOption(c.Query("pageSize")),
	}

	var err error
	if q.GenreIDs, err = queryIDs(c, "genres"); err != nil {
		return nil, err
	}
	if q.PlatformIDs, err = queryIDs(c, "platforms"); err != nil {
		return nil, err
	}
	if q.PublisherIDs, err = queryIDs(c, "publishers"); err != nil {
		return nil, err
	}
	if q.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return nil, err
	}
	if q.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return nil, err
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return nil, errInvalidParam("page")
		}
		q.Page = page
	}

	return q, nil
}

func queryIDs(c *gin.Context, name string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, errInvalidParam(name)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errInvalidParam(name)
	}
	return &v, nil
}

type errInvalidParam string

func (e errInvalidParam) Error() string {
	return "Invalid query parameter: " + string(e)
}
