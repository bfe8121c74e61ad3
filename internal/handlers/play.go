package handlers

import (
	"net/http"
	"strconv"

	"bigbrain-backend/internal/services"
	"bigbrain-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type PlayHandler struct {
	playerService *services.PlayerService
	hub           *ws.Hub
}

func NewPlayHandler(playerService *services.PlayerService, hub *ws.Hub) *PlayHandler {
	return &PlayHandler{playerService: playerService, hub: hub}
}

type JoinRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100" example:"Alice"`
}

type SubmitAnswersRequest struct {
	AnswerIDs []uint `json:"answer_ids" binding:"required" example:"7"`
}

// Join godoc
// @Summary      Join a session
// @Description  Join a session that is still in its lobby
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        sessionid path int true "Session ID"
// @Param        request body JoinRequest true "Player name"
// @Success      200 {object} map[string]int
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/play/join/{sessionid} [post]
func (h *PlayHandler) Join(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("sessionid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
		return
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	playerID, err := h.playerService.Join(sessionID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(sessionID, ws.Message{
		Type: ws.EventPlayerJoined,
		Data: gin.H{"name": req.Name},
	})

	c.JSON(http.StatusOK, gin.H{"player_id": playerID})
}

// Status godoc
// @Summary      Lobby status
// @Description  Whether the player's session has started yet
// @Tags         play
// @Produce      json
// @Param        playerid path int true "Player ID"
// @Success      200 {object} map[string]bool
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/play/{playerid}/status [get]
func (h *PlayHandler) Status(c *gin.Context) {
	playerID, err := strconv.Atoi(c.Param("playerid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	started, err := h.playerService.HasStarted(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"started": started})
}

// Question godoc
// @Summary      Current question
// @Description  The in-play question with correct answers stripped
// @Tags         play
// @Produce      json
// @Param        playerid path int true "Player ID"
// @Success      200 {object} store.QuestionView
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/play/{playerid}/question [get]
func (h *PlayHandler) Question(c *gin.Context) {
	playerID, err := strconv.Atoi(c.Param("playerid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	question, err := h.playerService.Question(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

// Answers godoc
// @Summary      Revealed answers
// @Description  The current question's correct option ids, once revealed
// @Tags         play
// @Produce      json
// @Param        playerid path int true "Player ID"
// @Success      200 {object} map[string][]uint
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/play/{playerid}/answer [get]
func (h *PlayHandler) Answers(c *gin.Context) {
	playerID, err := strconv.Atoi(c.Param("playerid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	answerIDs, err := h.playerService.RevealedAnswers(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer_ids": answerIDs})
}

// Submit godoc
// @Summary      Submit answers
// @Description  Submit (or re-submit) answers to the current question
// @Tags         play
// @Accept       json
// @Produce      json
// @Param        playerid path int true "Player ID"
// @Param        request body SubmitAnswersRequest true "Chosen option ids"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/play/{playerid}/answer [put]
func (h *PlayHandler) Submit(c *gin.Context) {
	playerID, err := strconv.Atoi(c.Param("playerid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	var req SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.playerService.Submit(playerID, req.AnswerIDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "answers submitted"})
}

// Results godoc
// @Summary      Player results
// @Description  The player's full answer ledger once the session ends
// @Tags         play
// @Produce      json
// @Param        playerid path int true "Player ID"
// @Success      200 {array} store.AnswerRecord
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/play/{playerid}/results [get]
func (h *PlayHandler) Results(c *gin.Context) {
	playerID, err := strconv.Atoi(c.Param("playerid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	results, err := h.playerService.Results(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
