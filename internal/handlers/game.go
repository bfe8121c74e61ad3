package handlers

import (
	"net/http"
	"strconv"

	"bigbrain-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService    *services.GameService
	sessionService *services.SessionService
}

func NewGameHandler(gameService *services.GameService, sessionService *services.SessionService) *GameHandler {
	return &GameHandler{gameService: gameService, sessionService: sessionService}
}

type PutGamesRequest struct {
	Games []services.GameInput `json:"games" binding:"required"`
}

// ListGames godoc
// @Summary      List games
// @Description  Get all games owned by the authenticated admin
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Game
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/admin/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	games, err := h.gameService.GamesForOwner(adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

// PutGames godoc
// @Summary      Replace the game list
// @Description  Reconcile the submitted full game list against storage for this admin
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PutGamesRequest true "Full game list"
// @Success      200 {array} Game
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/games [put]
func (h *GameHandler) PutGames(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	var req PutGamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	games, err := h.gameService.BulkUpsert(adminID, req.Games)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

// GameSessions godoc
// @Summary      Session history for a game
// @Description  Get the active session id and all ended session ids for a game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        gameid path int true "Game ID"
// @Success      200 {object} services.GameSessions
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/game/{gameid}/sessions [get]
func (h *GameHandler) GameSessions(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	gameID, err := strconv.ParseUint(c.Param("gameid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid game id"})
		return
	}

	sessions, err := h.sessionService.SessionsForGame(adminID, uint(gameID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}
