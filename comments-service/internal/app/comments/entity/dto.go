package entity

import "time"

// AddCommentRequest - новый комментарий или ответ.
// Пустые Name и Body отклоняет сервис.
type AddCommentRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Body     string `json:"body" validate:"max=2000"`
	ParentID string `json:"parent_id,omitempty"`
	Action   string `json:"action,omitempty"`
}

type BanRequest struct {
	Name     string `json:"name" validate:"required"`
	Duration string `json:"duration" validate:"required"`
}

// CommentNode - комментарий с вложенными ответами
type CommentNode struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Body      string         `json:"body"`
	ParentID  string         `json:"parent_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Replies   []*CommentNode `json:"replies"`
}

func NewCommentNode(c *Comment) *CommentNode {
	node := &CommentNode{
		ID:        c.ID.Hex(),
		Name:      c.Name,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		Replies:   []*CommentNode{},
	}
	if c.ParentID != nil {
		node.ParentID = c.ParentID.Hex()
	}
	return node
}

type CommentListResponse struct {
	Comments []*CommentNode `json:"comments"`
	Total    int            `json:"total"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string `json:"message"`
}
