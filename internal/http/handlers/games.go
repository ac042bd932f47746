package handlers

import (
	"net/http"

	"diplomacy_replay/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListGames возвращает краткий список игр архива
func (h *Handler) ListGames(c *gin.Context) {
	games, err := h.Archive.ListSummaries(c.Request.Context(), 200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// ImportGame принимает игровой JSON и кладет его в архив (оператор)
func (h *Handler) ImportGame(c *gin.Context) {
	var game domain.Game
	if err := c.BindJSON(&game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if game.Title == "" || len(game.Phases) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and phases required"})
		return
	}

	ctx := c.Request.Context()
	exists, err := h.Archive.ExistsByTitle(ctx, game.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "game already exists"})
		return
	}

	if err := h.Archive.Insert(ctx, &game); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	// показ мог стоять на пустом или исчерпанном архиве — подхватываем
	_ = h.Theater.TryResume()

	c.JSON(http.StatusCreated, gin.H{"id": game.ID, "title": game.Title, "phases": len(game.Phases)})
}
