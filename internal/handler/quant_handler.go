package handler

import (
	"context"
	"net/http"

	"github.com/arbitrum1984/Arbitron-Systems/internal/occupancy"
	"github.com/arbitrum1984/Arbitron-Systems/internal/quant"

	"github.com/gin-gonic/gin"
)

type SurfaceBuilder interface {
	Build(ctx context.Context, ticker string) *quant.Surface
}

type QuantHandler struct {
	engine SurfaceBuilder
}

func NewQuantHandler(engine SurfaceBuilder) *QuantHandler {
	return &QuantHandler{engine: engine}
}

func (h *QuantHandler) GetSurface(c *gin.Context) {
	ticker := c.DefaultQuery("ticker", "AAPL")
	c.JSON(http.StatusOK, h.engine.Build(c.Request.Context(), ticker))
}

type OccupancyIndex interface {
	CheckIndex() []occupancy.Reading
}

type OccupancyHandler struct {
	engine OccupancyIndex
}

func NewOccupancyHandler(engine OccupancyIndex) *OccupancyHandler {
	return &OccupancyHandler{engine: engine}
}

func (h *OccupancyHandler) GetIndex(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.CheckIndex())
}
