package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/service"
	"github.com/lumenhq/lumen-backend/internal/ws"
	"github.com/lumenhq/lumen-backend/pkg/jwt"
	"github.com/lumenhq/lumen-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the middleware layer
	},
}

// ChatHandler handles the chat websocket and message history
type ChatHandler struct {
	service    *service.ChatService
	hub        *ws.Hub
	jwtManager *jwt.Manager
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service *service.ChatService, hub *ws.Hub, jwtManager *jwt.Manager) *ChatHandler {
	return &ChatHandler{service: service, hub: hub, jwtManager: jwtManager}
}

// Connect upgrades to a websocket connection. Browsers cannot set an
// Authorization header on the upgrade request, so the token arrives as
// a query parameter.
func (h *ChatHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		common.ErrorResponse(c, 401, "Missing token", nil)
		return
	}

	claims, err := h.jwtManager.VerifyToken(token)
	if err != nil {
		common.ErrorResponse(c, 401, "Invalid token", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, claims.UserID, claims.Username, h.service.PostMessage)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// Messages returns recent chat history in chronological order
func (h *ChatHandler) Messages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, err := h.service.Recent(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"messages": msgs})
}
