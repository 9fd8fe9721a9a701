package entity

import (
	"time"

	"github.com/google/uuid"
)

// Game игра в каталоге магазина
type Game struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Key           string     `gorm:"size:255;not null;uniqueIndex" json:"key"` // Внешний ключ игры, используется в URL
	Name          string     `gorm:"size:255;not null" json:"name"`
	Description   string     `gorm:"type:text" json:"description"`
	Price         float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	UnitInStock   int        `gorm:"not null;default:0" json:"unit_in_stock"`
	Discount      int        `gorm:"not null;default:0" json:"discount"` // Скидка в процентах
	PublisherID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"publisher_id"`
	Publisher     *Publisher `gorm:"foreignKey:PublisherID" json:"publisher,omitempty"`
	Genres        []Genre    `gorm:"many2many:game_genres;" json:"genres,omitempty"`
	Platforms     []Platform `gorm:"many2many:game_platforms;" json:"platforms,omitempty"`
	PublishedDate time.Time  `gorm:"not null;index" json:"published_date"`
	ViewCount     int64      `gorm:"not null;default:0" json:"view_count"`
	CommentCount  int64      `gorm:"not null;default:0" json:"comment_count"` // Поддерживается background-worker
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Genre жанр, жанры образуют дерево через ParentGenreID
type Genre struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null;uniqueIndex" json:"name"`
	ParentGenreID *uuid.UUID `gorm:"type:uuid;index" json:"parent_genre_id,omitempty"`
}

type Platform struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type string    `gorm:"size:100;not null;uniqueIndex" json:"type"`
}

type Publisher struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName string    `gorm:"size:255;not null;uniqueIndex" json:"company_name"`
	HomePage    string    `gorm:"size:500" json:"home_page"`
	Description string    `gorm:"type:text" json:"description"`
}
