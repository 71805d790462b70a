package controllers

import (
	"net/http"

	"github.com/Zalotleh/wellness-hub-sub004/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	Hub *services.ScoreHub
}

func NewRealtimeController(hub *services.ScoreHub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

// Connect upgrades to a websocket that receives score.updated and
// recommendation.created events for the authenticated user.
func (h *RealtimeController) Connect(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &services.WSClient{UserID: userID, Conn: conn}
	h.Hub.Register(client)

	// reader loop exists only to notice the close
	go func() {
		defer h.Hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
