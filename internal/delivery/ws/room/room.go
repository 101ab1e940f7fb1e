package ws_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/meteocheck/core/internal/delivery/http/common"
	"github.com/meteocheck/core/internal/model"
	usecase_room "github.com/meteocheck/core/internal/usecase/room"
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	roomID model.RoomID
	token  string
}

type Controller struct {
	hub     *Hub
	usecase *usecase_room.Usecase
	logger  *slog.Logger

	upgrader websocket.Upgrader
}

func NewController(hub *Hub, usecase *usecase_room.Usecase) *Controller {
	return &Controller{
		hub:     hub,
		usecase: usecase,
		logger:  slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/rooms/:room_id", c.serve)
}

// serve upgrades the connection and streams ROOM_STATE events. The
// hub seeds the client with the room's state at registration, which
// doubles as the re-fetch a reconnecting client is owed.
func (c *Controller) serve(ctx *gin.Context) {
	roomID := model.RoomID(ctx.Param("room_id"))

	if _, err := c.usecase.State(ctx, roomID); err != nil {
		if errors.Is(err, usecase_room.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
			return
		}
		c.logger.Error("failed to load room state", "error", err, "room", roomID)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("ws upgrade failed", "error", err, "room", roomID)
		return
	}

	client := &Client{
		hub:    c.hub,
		conn:   conn,
		send:   make(chan Event, c.hub.sendBuffer),
		roomID: roomID,
		token:  ctx.Query("token"),
	}
	c.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (cl *Client) readPump() {
	defer func() {
		cl.hub.unregister <- cl
		cl.conn.Close()
	}()

	// Mutations travel over HTTP; the socket is push-only. Reading
	// until error is how we learn the peer went away.
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (cl *Client) writePump() {
	defer cl.conn.Close()

	for event := range cl.send {
		if err := cl.conn.WriteJSON(event); err != nil {
			break
		}
	}
}
