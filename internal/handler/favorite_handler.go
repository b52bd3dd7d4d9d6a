package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FavoriteStore interface {
	Add(ticker string) error
	List() ([]string, error)
	Remove(ticker string) error
}

type FavoriteHandler struct {
	store FavoriteStore
}

func NewFavoriteHandler(store FavoriteStore) *FavoriteHandler {
	return &FavoriteHandler{store: store}
}

func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	favorites, err := h.store.List()
	if err != nil {
		slog.Error("error fetching favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if favorites == nil {
		favorites = []string{}
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker is required"})
		return
	}

	if err := h.store.Add(req.Ticker); err != nil {
		slog.Error("error adding favorite", "error", err, "ticker", req.Ticker)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "added"})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	ticker := c.Param("ticker")

	if err := h.store.Remove(ticker); err != nil {
		slog.Error("error removing favorite", "error", err, "ticker", ticker)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "deleted"})
}
