package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler serves the read-only price check endpoint.
// Responses are cached per (tenant, tipo, item) — price edits are rare and a
// slightly stale price never reaches a settlement, which always re-resolves.
type ConsultaPreciosHandler struct {
	svc service.PrecioService
	rdb *redis.Client
}

func NewConsultaPreciosHandler(svc service.PrecioService, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc, rdb: rdb}
}

// GetPrecio godoc
// @Summary      Consulta de precio vigente
// @Description  Precio autoritativo de un servicio o producto, con promoción aplicada cuando es menor. Cacheado en Redis.
// @Tags         precios
// @Produce      json
// @Security     BearerAuth
// @Param        tipo path string true "servicio | producto"
// @Param        id   path string true "UUID del item"
// @Success      200  {object} dto.ConsultaPrecioResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/precios/{tipo}/{id} [get]
func (h *ConsultaPreciosHandler) GetPrecio(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	tipo := c.Param("tipo")
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	ctx := c.Request.Context()
	cacheKey := "precio:" + tenantID.String() + ":" + tipo + ":" + itemID.String()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — resolve from the catalog
	resuelto, err := h.svc.Resolver(ctx, tenantID, itemID, tipo, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ConsultaPrecioResponse{
		Tipo:            tipo,
		ItemID:          itemID.String(),
		Nombre:          resuelto.Nombre,
		Precio:          resuelto.Precio,
		StockDisponible: resuelto.Stock,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
