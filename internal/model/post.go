package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Id          uuid.UUID
	OwnerId     uuid.UUID
	Title       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PostCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type PostCreateResponse struct {
	Id     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Detail string    `json:"detail"`
}

// PostUpdateRequest is a partial update, nil fields are left untouched.
type PostUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r PostUpdateRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil
}

type PostResponse struct {
	Id          uuid.UUID    `json:"id"`
	OwnerId     uuid.UUID    `json:"ownerId"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Reactions   ReactionView `json:"reactions"`
}

type PostListItem struct {
	Id          uuid.UUID      `json:"id"`
	OwnerId     uuid.UUID      `json:"ownerId"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Reactions   ReactionCounts `json:"reactions"`
}

func NewPostResponse(post Post, reactions ReactionView) PostResponse {
	return PostResponse{
		Id:          post.Id,
		OwnerId:     post.OwnerId,
		Title:       post.Title,
		Description: post.Description,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
		Reactions:   reactions,
	}
}
