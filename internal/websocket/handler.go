package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an author's connection for tip notifications. The route
// sits behind the JWT middleware, which injects "address"; an explicit
// ?author= query overrides it for authors with a separate pen-name id.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorID := c.Query("author")
		if authorID == "" {
			authorID = c.GetString("address")
		}
		if authorID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing author id"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &Client{
			AuthorID: authorID,
			Conn:     conn,
			Send:     make(chan OutgoingMessage, 32),
			Hub:      hub,
		}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
