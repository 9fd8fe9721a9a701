package entity

import (
	"time"

	"github.com/google/uuid"
)

// === GAMES ===

// GameRequest тело запроса на создание и полное обновление игры
type GameRequest struct {
	Key           string      `json:"key" validate:"required,min=2,max=255"`
	Name          string      `json:"name" validate:"required,min=1,max=255"`
	Description   string      `json:"description" validate:"max=5000"`
	Price         float64     `json:"price" validate:"gte=0"`
	UnitInStock   int         `json:"unit_in_stock" validate:"gte=0"`
	Discount      int         `json:"discount" validate:"gte=0,lte=100"`
	PublisherID   uuid.UUID   `json:"publisher_id" validate:"required"`
	GenreIDs      []uuid.UUID `json:"genre_ids"`
	PlatformIDs   []uuid.UUID `json:"platform_ids"`
	PublishedDate time.Time   `json:"published_date" validate:"required"`
}

type GameResponse struct {
	ID            uuid.UUID  `json:"id"`
	Key           string     `json:"key"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	UnitInStock   int        `json:"unit_in_stock"`
	Discount      int        `json:"discount"`
	PublishedDate time.Time  `json:"published_date"`
	ViewCount     int64      `json:"view_count"`
	CommentCount  int64      `json:"comment_count"`
	Publisher     *Publisher `json:"publisher,omitempty"`
	Genres        []Genre    `json:"genres"`
	Platforms     []Platform `json:"platforms"`
}

// GamePageResponse страница выдачи каталога
type GamePageResponse struct {
	Games       []GameResponse `json:"games"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
}

// NewGameResponse проецирует сущность в ответ API
func NewGameResponse(g *Game) GameResponse {
	resp := GameResponse{
		ID:            g.ID,
		Key:           g.Key,
		Name:          g.Name,
		Description:   g.Description,
		Price:         g.Price,
		UnitInStock:   g.UnitInStock,
		Discount:      g.Discount,
		PublishedDate: g.PublishedDate,
		ViewCount:     g.ViewCount,
		CommentCount:  g.CommentCount,
		Publisher:     g.Publisher,
		Genres:        g.Genres,
		Platforms:     g.Platforms,
	}
	if resp.Genres == nil {
		resp.Genres = []Genre{}
	}
	if resp.Platforms == nil {
		resp.Platforms = []Platform{}
	}
	return resp
}

// === GENRES / PLATFORMS / PUBLISHERS ===

type GenreRequest struct {
	Name          string     `json:"name" validate:"required,min=2,max=100"`
	ParentGenreID *uuid.UUID `json:"parent_genre_id"`
}

type PlatformRequest struct {
	Type string `json:"type" validate:"required,min=2,max=100"`
}

type PublisherRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=255"`
	HomePage    string `json:"home_page" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=5000"`
}

type GenreListResponse struct {
	Genres []Genre `json:"genres"`
	Total  int     `json:"total"`
}

type PlatformListResponse struct {
	Platforms []Platform `json:"platforms"`
	Total     int        `json:"total"`
}

type PublisherListResponse struct {
	Publishers []Publisher `json:"publishers"`
	Total      int         `json:"total"`
}

type GameListResponse struct {
	Games []GameResponse `json:"games"`
	Total int            `json:"total"`
}
