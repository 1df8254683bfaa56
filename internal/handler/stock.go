package handler

import (
	"net/http"
	"strconv"
	"time"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/model"
	"barberpos/internal/repository"
	"barberpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// RegistrarEntrada godoc
// @Summary      Registrar entrada de stock
// @Description  Incrementa el stock de un producto (reposición) dejando el movimiento auditado.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EntradaStockRequest true "Producto, cantidad y motivo"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/stock/entrada [post]
func (h *StockHandler) RegistrarEntrada(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var req dto.EntradaStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de producto invalido"))
		return
	}

	if err := h.svc.RegistrarEntrada(c.Request.Context(), tenantID, productoID, req.Cantidad, req.Motivo); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarMovimientos godoc
// @Summary      Listar movimientos de stock
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        producto_id query string false "UUID del producto"
// @Param        tipo        query string false "salida | entrada | ajuste"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.MovimientoStockListResponse
// @Router       /v1/stock/movimientos [get]
func (h *StockHandler) ListarMovimientos(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}

	filter := repository.MovimientoStockFilter{Tipo: c.Query("tipo")}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if raw := c.Query("producto_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("ID de producto invalido"))
			return
		}
		filter.ProductoID = &id
	}

	movs, total, err := h.svc.ListMovimientos(c.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.MovimientoStockListResponse{
		Data:  make([]dto.MovimientoStockResponse, 0, len(movs)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range movs {
		resp.Data = append(resp.Data, movimientoStockToResponse(&movs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func movimientoStockToResponse(m *model.MovimientoStock) dto.MovimientoStockResponse {
	out := dto.MovimientoStockResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.VentaID != nil {
		s := m.VentaID.String()
		out.VentaID = &s
	}
	return out
}
