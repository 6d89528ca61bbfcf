package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velopool/bikeshare/internal/auth"
	"github.com/velopool/bikeshare/internal/domain"
	"github.com/velopool/bikeshare/internal/repository"
)

type PostHandler struct {
	posts repository.PostRepository
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func NewPostHandler(posts repository.PostRepository) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
}

func (h *PostHandler) RegisterAuthed(router *gin.RouterGroup) {
	router.POST("/", h.create)
}

func (h *PostHandler) list(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := auth.FromContext(c)
	post := &domain.Post{
		UserID:  claims.UserID,
		Title:   req.Title,
		Content: req.Content,
	}
	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}
