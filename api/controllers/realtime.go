package controllers

import (
	"time"

	"github.com/Pato1236897/Golf/realtime"
	"github.com/Pato1236897/Golf/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/websocket"
)

type RealtimeController struct {
	service      *service.MatchService
	hub          *realtime.Hub
	writeTimeout time.Duration
}

func NewRealtimeController(s *service.MatchService, hub *realtime.Hub, writeTimeout time.Duration) *RealtimeController {
	return &RealtimeController{service: s, hub: hub, writeTimeout: writeTimeout}
}

func (c *RealtimeController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/ws/:matchId/:userId", c.connect)
}

// connect godoc
// @Summary Subscribe to match events
// @Description Upgrades to a websocket. The server pushes match_started, score_update and match_completed envelopes.
// @Tags realtime
// @Param matchId path string true "Match ID"
// @Param userId path string true "Player ID of the connecting user"
// @Success 101
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ws/{matchId}/{userId} [get]
func (c *RealtimeController) connect(g *gin.Context) {
	matchID, userID := g.Param("matchId"), g.Param("userId")
	if err := c.service.Connect(g.Request.Context(), matchID, userID); err != nil {
		writeError(g, err)
		return
	}

	server := websocket.Server{
		Handler: func(conn *websocket.Conn) {
			c.hub.ServeConn(conn, matchID, userID, c.writeTimeout)
		},
	}
	server.ServeHTTP(g.Writer, g.Request)
}
