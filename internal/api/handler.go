package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arjun/news_aggregator/internal/auth"
	"github.com/arjun/news_aggregator/internal/db"
	"github.com/arjun/news_aggregator/internal/service"
	"github.com/arjun/news_aggregator/pkg/models"
)

type Handler struct {
	svc     *service.Service
	authSvc *auth.Service
}

func NewHandler(svc *service.Service, authSvc *auth.Service) *Handler {
	return &Handler{svc: svc, authSvc: authSvc}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		authed := api.Group("", AuthRequired(h.authSvc))
		{
			authed.POST("/logout", h.Logout)
			authed.GET("/articles", h.ListArticles)
			authed.GET("/articles/:id", h.GetArticle)
			authed.PUT("/preferences", h.UpdatePreferences)
			authed.GET("/preferences", h.GetPreferences)
		}
	}
}

// ListArticles: GET /api/articles?keyword=&date=&category=&source=&page=
func (h *Handler) ListArticles(c *gin.Context) {
	if !requirePermission(c, auth.PermArticlesView) {
		return
	}

	var filters models.ArticleFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		sendError(c, http.StatusUnprocessableEntity, "Validation error", gin.H{"query": err.Error()})
		return
	}

	page, err := h.svc.ListArticles(c.Request.Context(), filters)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, "Articles fetched successfully", page)
}

// GetArticle: GET /api/articles/:id
func (h *Handler) GetArticle(c *gin.Context) {
	if !requirePermission(c, auth.PermArticlesView) {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusUnprocessableEntity, "Validation error", gin.H{"id": "must be an integer"})
		return
	}

	article, err := h.svc.GetArticle(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, "Article fetched successfully", article)
}

type updatePreferencesRequest struct {
	PreferredCategories []int64 `json:"preferred_categories"`
	PreferredSources    []int64 `json:"preferred_sources"`
	PreferredAuthors    []int64 `json:"preferred_authors"`
}

// UpdatePreferences: PUT /api/preferences
func (h *Handler) UpdatePreferences(c *gin.Context) {
	if !requirePermission(c, auth.PermPreferencesCreate) {
		return
	}

	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusUnprocessableEntity, "Validation error", gin.H{"body": err.Error()})
		return
	}

	pref := models.UserPreference{
		UserID:              currentUser(c).ID,
		PreferredCategories: db.Int64Slice(req.PreferredCategories),
		PreferredSources:    db.Int64Slice(req.PreferredSources),
		PreferredAuthors:    db.Int64Slice(req.PreferredAuthors),
	}
	saved, err := h.svc.UpdatePreferences(c.Request.Context(), pref)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, "Preferences updated successfully", saved)
}

// GetPreferences: GET /api/preferences?page=
// Returns the personalized feed built from the user's saved preferences.
func (h *Handler) GetPreferences(c *gin.Context) {
	if !requirePermission(c, auth.PermPreferencesView) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	feed, err := h.svc.PersonalizedFeed(c.Request.Context(), currentUser(c).ID, page)
	if errors.Is(err, service.ErrNoPreferences) {
		sendSuccess(c, http.StatusOK, "No personalized preferences set", nil)
		return
	}
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, "Personalized news feed fetched successfully", feed)
}

// respondServiceError maps service errors onto the response taxonomy:
// validation failures list their fields, missing articles are distinct, and
// everything else is a generic server error with no internal detail.
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		sendError(c, http.StatusUnprocessableEntity, "Validation error", verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		sendError(c, http.StatusNotFound, "Article not found", nil)
	default:
		sendError(c, http.StatusInternalServerError, "Something went wrong", nil)
	}
}
