package handler

import (
	"net/http"

	"gamestore/catalog-service/internal/app/catalog/entity"
	"gamestore/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ReferenceHandler справочники каталога: жанры, платформы, издатели
type ReferenceHandler struct {
	genreService     service.GenreServiceInterface
	platformService  service.PlatformServiceInterface
	publisherService service.PublisherServiceInterface
	gameService      service.GameServiceInterface
	validator        *validator.Validate
}

func NewReferenceHandler(
	genreService service.GenreServiceInterface,
	platformService service.PlatformServiceInterface,
	publisherService service.PublisherServiceInterface,
	gameService service.GameServiceInterface,
) *ReferenceHandler {
	return &ReferenceHandler{
		genreService:     genreService,
		platformService:  platformService,
		publisherService: publisherService,
		gameService:      gameService,
		validator:        validator.New(),
	}
}

// bind читает и валидирует тело запроса; при ошибке ответ уже отправлен
func (h *ReferenceHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return false
	}
	return true
}

func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}

// === ЖАНРЫ ===

func (h *ReferenceHandler) CreateGenre(c *gin.Context) {
	var req entity.GenreRequest
	if !h.bind(c, &req) {
		return
	}

	genre, err := h.genreService.CreateGenre(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create genre")
		return
	}
	c.JSON(http.StatusCreated, genre)
}

func (h *ReferenceHandler) GetAllGenres(c *gin.Context) {
	genres, err := h.genreService.GetAllGenres(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get genres")
		return
	}
	c.JSON(http.StatusOK, entity.GenreListResponse{Genres: genres, Total: len(genres)})
}

func (h *ReferenceHandler) GetGenre(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	genre, err := h.genreService.GetGenre(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get genre")
		return
	}
	c.JSON(http.StatusOK, genre)
}

// GetSubGenres обрабатывает GET /genres/:id/sub-genres
func (h *ReferenceHandler) GetSubGenres(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	genres, err := h.genreService.GetSubGenres(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get sub-genres")
		return
	}
	c.JSON(http.StatusOK, entity.GenreListResponse{Genres: genres, Total: len(genres)})
}

func (h *ReferenceHandler) UpdateGenre(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req entity.GenreRequest
	if !h.bind(c, &req) {
		return
	}

	genre, err := h.genreService.UpdateGenre(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update genre")
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (h *ReferenceHandler) DeleteGenre(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.genreService.DeleteGenre(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete genre")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReferenceHandler) GetGamesByGenre(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	games, err := h.gameService.GetGamesByGenre(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get games")
		return
	}
	c.JSON(http.StatusOK, entity.GameListResponse{Games: games, Total: len(games)})
}

// === ПЛАТФОРМЫ ===

func (h *ReferenceHandler) CreatePlatform(c *gin.Context) {
	var req entity.PlatformRequest
	if !h.bind(c, &req) {
		return
	}

	platform, err := h.platformService.CreatePlatform(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create platform")
		return
	}
	c.JSON(http.StatusCreated, platform)
}

func (h *ReferenceHandler) GetAllPlatforms(c *gin.Context) {
	platforms, err := h.platformService.GetAllPlatforms(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get platforms")
		return
	}
	c.JSON(http.StatusOK, entity.PlatformListResponse{Platforms: platforms, Total: len(platforms)})
}

func (h *ReferenceHandler) GetPlatform(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	platform, err := h.platformService.GetPlatform(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get platform")
		return
	}
	c.JSON(http.StatusOK, platform)
}

func (h *ReferenceHandler) UpdatePlatform(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req entity.PlatformRequest
	if !h.bind(c, &req) {
		return
	}

	platform, err := h.platformService.UpdatePlatform(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update platform")
		return
	}
	c.JSON(http.StatusOK, platform)
}

func (h *ReferenceHandler) DeletePlatform(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.platformService.DeletePlatform(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete platform")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReferenceHandler) GetGamesByPlatform(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	games, err := h.gameService.GetGamesByPlatform(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get games")
		return
	}
	c.JSON(http.StatusOK, entity.GameListResponse{Games: games, Total: len(games)})
}

// === ИЗДАТЕЛИ ===

func (h *ReferenceHandler) CreatePublisher(c *gin.Context) {
	var req entity.PublisherRequest
	if !h.bind(c, &req) {
		return
	}

	publisher, err := h.publisherService.CreatePublisher(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create publisher")
		return
	}
	c.JSON(http.StatusCreated, publisher)
}

func (h *ReferenceHandler) GetAllPublishers(c *gin.Context) {
	publishers, err := h.publisherService.GetAllPublishers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get publishers")
		return
	}
	c.JSON(http.StatusOK, entity.PublisherListResponse{Publishers: publishers, Total: len(publishers)})
}

// GetPublisher обрабатывает GET /publishers/:companyName
func (h *ReferenceHandler) GetPublisher(c *gin.Context) {
	publisher, err := h.publisherService.GetPublisher(c.Request.Context(), c.Param("companyName"))
	if err != nil {
		respondError(c, err, "Failed to get publisher")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

func (h *ReferenceHandler) UpdatePublisher(c *gin.Context) {
	var req entity.PublisherRequest
	if !h.bind(c, &req) {
		return
	}

	publisher, err := h.publisherService.UpdatePublisher(c.Request.Context(), c.Param("companyName"), &req)
	if err != nil {
		respondError(c, err, "Failed to update publisher")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

func (h *ReferenceHandler) DeletePublisher(c *gin.Context) {
	if err := h.publisherService.DeletePublisher(c.Request.Context(), c.Param("companyName")); err != nil {
		respondError(c, err, "Failed to delete publisher")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReferenceHandler) GetGamesByPublisher(c *gin.Context) {
	games, err := h.gameService.GetGamesByPublisher(c.Request.Context(), c.Param("companyName"))
	if err != nil {
		respondError(c, err, "Failed to get games")
		return
	}
	c.JSON(http.StatusOK, entity.GameListResponse{Games: games, Total: len(games)})
}
