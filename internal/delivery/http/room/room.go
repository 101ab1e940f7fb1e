package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/meteocheck/core/internal/delivery/http/common"
	"github.com/meteocheck/core/internal/model"
	usecase_room "github.com/meteocheck/core/internal/usecase/room"
)

const tokenHeader = "X-Client-Token"

// StateNotifier receives the fresh snapshot after every successful
// mutation. The ws hub implements it; polling clients read the same
// store through the state endpoint instead.
type StateNotifier interface {
	BroadcastState(roomID model.RoomID, snap model.Snapshot)
}

type Controller struct {
	usecase  *usecase_room.Usecase
	notifier StateNotifier
	logger   *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(usecase *usecase_room.Usecase, notifier StateNotifier, opts ...ControllerOption) *Controller {
	c := &Controller{
		usecase:  usecase,
		notifier: notifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/:room_id/state", c.state)
		rooms.POST("/:room_id/participants", c.join)
		rooms.DELETE("/:room_id/participants", c.leave)
		rooms.PUT("/:room_id/selection", c.selectSymbol)
		rooms.POST("/:room_id/end", c.end)
		rooms.PUT("/:room_id/anonymous", c.anonymous)
	}
}

type CreateRequestDTO struct {
	RoomID string `json:"room_id"`
}

func (c *Controller) create(ctx *gin.Context) {
	var req CreateRequestDTO
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid request format",
			})
			return
		}
	}

	id, snap, err := c.usecase.Create(ctx, model.RoomID(req.RoomID))
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		if errors.Is(err, usecase_room.ErrRoomsUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
				Message: "unavailable",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	c.notifier.BroadcastState(id, snap)
	ctx.JSON(http.StatusCreated, snap)
}

type JoinRequestDTO struct {
	Name string `json:"name"`
}

func (c *Controller) join(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	token, snap, err := c.usecase.Join(ctx, id, ctx.GetHeader(tokenHeader), req.Name)
	if err != nil {
		c.respondError(ctx, "failed to join room", err)
		return
	}

	ctx.Header(tokenHeader, string(token))
	c.notifier.BroadcastState(id, snap)
	ctx.JSON(http.StatusCreated, snap)
}

type SelectRequestDTO struct {
	Symbol string `json:"symbol"`
}

func (c *Controller) selectSymbol(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	var req SelectRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	snap, err := c.usecase.Select(ctx, id, ctx.GetHeader(tokenHeader), model.Symbol(req.Symbol))
	if err != nil {
		// The end-vs-select race is expected; the closed round's state
		// is the answer, not an error.
		if errors.Is(err, usecase_room.ErrRoundEnded) {
			current, stateErr := c.usecase.State(ctx, id)
			if stateErr != nil {
				c.respondError(ctx, "failed to load room state", stateErr)
				return
			}
			ctx.JSON(http.StatusOK, current)
			return
		}
		if errors.Is(err, usecase_room.ErrUnknownSymbol) {
			ctx.JSON(http.StatusUnprocessableEntity, http_common.ErrorResponse{
				Message: "unknown symbol",
			})
			return
		}
		c.respondError(ctx, "failed to select symbol", err)
		return
	}

	c.notifier.BroadcastState(id, snap)
	ctx.JSON(http.StatusOK, snap)
}

func (c *Controller) end(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	snap, err := c.usecase.End(ctx, id)
	if err != nil {
		c.respondError(ctx, "failed to end round", err)
		return
	}

	c.notifier.BroadcastState(id, snap)
	ctx.JSON(http.StatusOK, snap)
}

type AnonymousRequestDTO struct {
	Anonymous *bool `json:"anonymous" binding:"required"`
}

func (c *Controller) anonymous(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	var req AnonymousRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	snap, err := c.usecase.SetAnonymous(ctx, id, *req.Anonymous)
	if err != nil {
		c.respondError(ctx, "failed to set anonymous flag", err)
		return
	}

	c.notifier.BroadcastState(id, snap)
	ctx.JSON(http.StatusOK, snap)
}

func (c *Controller) leave(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	snap, err := c.usecase.Leave(ctx, id, ctx.GetHeader(tokenHeader))
	if err != nil {
		c.respondError(ctx, "failed to leave room", err)
		return
	}

	c.notifier.BroadcastState(id, snap)
	ctx.JSON(http.StatusOK, snap)
}

// state is the poll read: idempotent, side-effect-free, never creates.
func (c *Controller) state(ctx *gin.Context) {
	id := model.RoomID(ctx.Param("room_id"))

	snap, err := c.usecase.State(ctx, id)
	if err != nil {
		c.respondError(ctx, "failed to get room state", err)
		return
	}

	ctx.JSON(http.StatusOK, snap)
}

func (c *Controller) respondError(ctx *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, usecase_room.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_room.ErrInvalidToken):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid client token",
		})
	default:
		c.logger.Error(msg, slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}
