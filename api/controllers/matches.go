package controllers

import (
	"errors"
	"net/http"

	"github.com/Pato1236897/Golf/api/models"
	"github.com/Pato1236897/Golf/logging"
	"github.com/Pato1236897/Golf/scoring"
	"github.com/Pato1236897/Golf/service"
	"github.com/gin-gonic/gin"
)

type MatchController struct {
	service *service.MatchService
}

func NewMatchController(s *service.MatchService) *MatchController {
	return &MatchController{service: s}
}

func (c *MatchController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api")

	group.GET("/", c.root)
	group.POST("/matches", c.create)
	group.GET("/matches", c.getAll)
	group.GET("/matches/:id", c.get)
	group.POST("/matches/:id/start", c.start)
	group.POST("/matches/:id/scores", c.submitScore)
	group.GET("/matches/:id/scores", c.getScores)
	group.GET("/matches/:id/leaderboard", c.getLeaderboard)
	group.POST("/matches/:id/complete", c.complete)
}

// @Summary API banner
// @Tags matches
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /api/ [get]
func (c *MatchController) root(g *gin.Context) {
	g.JSON(http.StatusOK, models.MessageResponse{Message: "Golf Scorekeeping API"})
}

// create godoc
// @Summary Create a match
// @Description Creates a match with its teams and players. Ids are assigned by the server and the first player of each team becomes captain.
// @Tags matches
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match definition"
// @Success 200 {object} models.MatchResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/matches [post]
func (c *MatchController) create(g *gin.Context) {
	var req models.CreateMatchRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("MATCH: invalid create match request: %v", err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	match, err := c.service.Create(g.Request.Context(), models.TransformMatchToStorage(&req))
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformMatchFromStorage(match))
}

// @Summary List matches
// @Tags matches
// @Produce json
// @Success 200 {array} models.MatchResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/matches [get]
func (c *MatchController) getAll(g *gin.Context) {
	matches, err := c.service.List(g.Request.Context())
	if err != nil {
		writeError(g, err)
		return
	}

	responses := make([]models.MatchResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, models.TransformMatchFromStorage(m))
	}
	g.JSON(http.StatusOK, responses)
}

// @Summary Get a match by ID
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} models.MatchResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/matches/{id} [get]
func (c *MatchController) get(g *gin.Context) {
	match, err := c.service.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformMatchFromStorage(match))
}

// @Summary Start a match
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Match is not in setup"
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/matches/{id}/start [post]
func (c *MatchController) start(g *gin.Context) {
	if err := c.service.Start(g.Request.Context(), g.Param("id")); err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "Match started"})
}

// submitScore godoc
// @Summary Submit a score for a hole
// @Description Appends a score to the match ledger and pushes it to the scorer's team only
// @Tags scores
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param score body models.SubmitScoreRequest true "Hole score"
// @Success 200 {object} models.ScoreSubmittedResponse
// @Failure 400 {object} models.ErrorResponse "Invalid score or match not in progress"
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/matches/{id}/scores [post]
func (c *MatchController) submitScore(g *gin.Context) {
	var req models.SubmitScoreRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("SCORE: invalid submit score request: %v", err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	score, err := c.service.SubmitScore(g.Request.Context(), g.Param("id"), models.TransformScoreToStorage(&req))
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.ScoreSubmittedResponse{
		Message: "Score submitted successfully",
		Score:   models.TransformScoreFromStorage(score),
	})
}

// getScores godoc
// @Summary Get the scores a viewer may see
// @Description Before completion only the rows of the given team are returned; without team_id the list is empty.
// @Tags scores
// @Produce json
// @Param id path string true "Match ID"
// @Param team_id query string false "Requesting team"
// @Success 200 {array} models.ScoreResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/matches/{id}/scores [get]
func (c *MatchController) getScores(g *gin.Context) {
	scores, err := c.service.Scores(g.Request.Context(), g.Param("id"), g.Query("team_id"))
	if err != nil {
		writeError(g, err)
		return
	}

	responses := make([]models.ScoreResponse, 0, len(scores))
	for _, s := range scores {
		responses = append(responses, models.TransformScoreFromStorage(s))
	}
	g.JSON(http.StatusOK, responses)
}

// getLeaderboard godoc
// @Summary Get the leaderboard
// @Description Totals of players outside the requesting team are shown as "???" until the match completes.
// @Tags scores
// @Produce json
// @Param id path string true "Match ID"
// @Param team_id query string false "Requesting team"
// @Success 200 {array} scoring.LeaderboardEntry
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/matches/{id}/leaderboard [get]
func (c *MatchController) getLeaderboard(g *gin.Context) {
	board, err := c.service.Leaderboard(g.Request.Context(), g.Param("id"), g.Query("team_id"))
	if err != nil {
		writeError(g, err)
		return
	}
	if board == nil {
		board = []scoring.LeaderboardEntry{}
	}
	g.JSON(http.StatusOK, board)
}

// @Summary Complete a match and compute its awards
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} models.CompleteMatchResponse
// @Failure 400 {object} models.ErrorResponse "Match is not in progress"
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/matches/{id}/complete [post]
func (c *MatchController) complete(g *gin.Context) {
	awards, err := c.service.Complete(g.Request.Context(), g.Param("id"))
	if err != nil {
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.CompleteMatchResponse{
		Message:     "Match completed",
		BestShots:   awards.BestShots,
		BestPlayers: awards.BestPlayers,
	})
}

func writeError(g *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidMatch):
		logging.Log.Warnf("MATCH: rejected %s %s: %v", g.Request.Method, g.Request.URL.Path, err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUnavailable):
		logging.Log.Errorf("MATCH: %s %s failed: %v", g.Request.Method, g.Request.URL.Path, err)
		g.JSON(http.StatusServiceUnavailable, &models.ErrorResponse{Error: "storage unavailable"})
	default:
		logging.Log.Errorf("MATCH: %s %s failed: %v", g.Request.Method, g.Request.URL.Path, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
	}
}
