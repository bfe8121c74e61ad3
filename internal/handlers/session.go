package handlers

import (
	"net/http"
	"strconv"

	"bigbrain-backend/internal/services"
	"bigbrain-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
	hub            *ws.Hub
}

func NewSessionHandler(sessionService *services.SessionService, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, hub: hub}
}

type MutateRequest struct {
	MutationType string `json:"mutation_type" binding:"required" example:"START"`
}

// Mutate godoc
// @Summary      Mutate a game session
// @Description  Start, advance or end the game's live session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gameid path int true "Game ID"
// @Param        request body MutateRequest true "Mutation"
// @Success      200 {object} services.MutationResult
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/game/{gameid}/mutate [post]
func (h *SessionHandler) Mutate(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	gameID, err := strconv.ParseUint(c.Param("gameid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid game id"})
		return
	}

	var req MutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	kind, err := services.ParseMutationKind(req.MutationType)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.sessionService.Mutate(adminID, uint(gameID), kind)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.SessionID != nil {
		switch kind {
		case services.MutationStart:
			h.hub.Broadcast(*result.SessionID, ws.Message{Type: ws.EventSessionStarted, Data: result})
		case services.MutationAdvance:
			h.hub.Broadcast(*result.SessionID, ws.Message{Type: ws.EventPositionChanged, Data: result})
		case services.MutationEnd:
			h.hub.Broadcast(*result.SessionID, ws.Message{Type: ws.EventSessionEnded, Data: result})
		}
	}

	c.JSON(http.StatusOK, result)
}

// Status godoc
// @Summary      Session status
// @Description  Get the admin projection of a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        sessionid path int true "Session ID"
// @Success      200 {object} store.SessionStatus
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/session/{sessionid}/status [get]
func (h *SessionHandler) Status(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	sessionID, err := strconv.Atoi(c.Param("sessionid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	status, err := h.sessionService.Status(adminID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": status})
}

// Results godoc
// @Summary      Session results
// @Description  Get every player's answer records for an ended session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        sessionid path int true "Session ID"
// @Success      200 {array} store.PlayerResult
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/session/{sessionid}/results [get]
func (h *SessionHandler) Results(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	sessionID, err := strconv.Atoi(c.Param("sessionid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	results, err := h.sessionService.Results(adminID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
