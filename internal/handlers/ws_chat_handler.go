package handlers

import (
	"net/http"
	"sync"

	"github.com/askarbek-a/linkup/internal/services"
	jwtutil "github.com/askarbek-a/linkup/pkg/jwt"
	"github.com/askarbek-a/linkup/pkg/logger"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WSMessage is the frame exchanged over the chat socket.
type WSMessage struct {
	Type       string `json:"type"` // "text", "status", "typing", "error"
	ReceiverID string `json:"receiver_id,omitempty"`
	SenderID   string `json:"sender_id,omitempty"`
	Content    string `json:"content,omitempty"`
	Typing     bool   `json:"typing,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	ID         string `json:"id,omitempty"`
	Error      string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatGateway delivers messages live to connected clients and broadcasts
// presence. Messages still go through MessageService, so connection and
// content rules apply on this path too.
type ChatGateway struct {
	Service   *services.MessageService
	JWTSecret string

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

func NewChatGateway(service *services.MessageService, jwtSecret string) *ChatGateway {
	return &ChatGateway{
		Service:   service,
		JWTSecret: jwtSecret,
		clients:   make(map[string]*websocket.Conn),
	}
}

func (g *ChatGateway) broadcastStatus(userID, status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, conn := range g.clients {
		conn.WriteJSON(map[string]interface{}{
			"type":    "status",
			"user_id": userID,
			"status":  status, // "online" or "offline"
		})
	}
}

// ChatWebSocketHandler upgrades the connection and pumps chat frames.
func (g *ChatGateway) ChatWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, g.JWTSecret)
	if err != nil {
		logger.Log.Warnf("WebSocket auth failed: %v", err)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnf("WebSocket upgrade failed: %v", err)
		return
	}

	logger.Log.Infof("WebSocket connected: %s", userID)

	g.mu.Lock()
	g.clients[userID] = conn
	g.mu.Unlock()
	g.broadcastStatus(userID, "online")

	defer func() {
		g.mu.Lock()
		delete(g.clients, userID)
		g.mu.Unlock()
		g.broadcastStatus(userID, "offline")
		conn.Close()
		logger.Log.Infof("WebSocket disconnected: %s", userID)
	}()

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break // client went away
		}

		if msg.Type == "typing" {
			g.mu.Lock()
			if receiverConn, ok := g.clients[msg.ReceiverID]; ok {
				receiverConn.WriteJSON(WSMessage{
					Type:     "typing",
					SenderID: userID,
					Typing:   msg.Typing,
				})
			}
			g.mu.Unlock()
			continue
		}

		if msg.Type == "" || msg.Type == "text" {
			senderID, _ := primitive.ObjectIDFromHex(userID)
			receiverID, err := primitive.ObjectIDFromHex(msg.ReceiverID)
			if err != nil {
				_ = conn.WriteJSON(WSMessage{Type: "error", Error: "invalid receiver id"})
				continue
			}

			saved, err := g.Service.SendMessage(r.Context(), senderID, receiverID, msg.Content)
			if err != nil {
				_ = conn.WriteJSON(WSMessage{Type: "error", Error: err.Error()})
				continue
			}

			frame := WSMessage{
				Type:       "text",
				ID:         saved.ID.Hex(),
				SenderID:   userID,
				ReceiverID: msg.ReceiverID,
				Content:    saved.Content,
				CreatedAt:  saved.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}

			g.mu.Lock()
			if receiverConn, ok := g.clients[msg.ReceiverID]; ok {
				_ = receiverConn.WriteJSON(frame)
			}
			_ = conn.WriteJSON(frame)
			g.mu.Unlock()
		}
	}
}
