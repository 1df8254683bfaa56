package handler

import (
	"net/http"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComisionesHandler struct{ svc service.ComisionService }

func NewComisionesHandler(svc service.ComisionService) *ComisionesHandler {
	return &ComisionesHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar comisiones
// @Description  Lista paginada de comisiones del tenant, filtrable por barbero y estado.
// @Tags         comisiones
// @Produce      json
// @Security     BearerAuth
// @Param        barbero_id query string false "UUID del barbero"
// @Param        estado     query string false "pendiente | aprobada | pagada"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.ComisionListResponse
// @Router       /v1/comisiones [get]
func (h *ComisionesHandler) Listar(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var filter dto.ComisionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	resp, err := h.svc.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Balance godoc
// @Summary      Balance de comisiones de un barbero
// @Description  Suma de comisiones del barbero, opcionalmente restringida a un estado.
// @Tags         comisiones
// @Produce      json
// @Security     BearerAuth
// @Param        barberoId path  string true  "UUID del barbero"
// @Param        estado    query string false "pendiente | aprobada | pagada"
// @Success      200 {object} dto.BalanceComisionResponse
// @Router       /v1/comisiones/balance/{barberoId} [get]
func (h *ComisionesHandler) Balance(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	barberoID, err := uuid.Parse(c.Param("barberoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	resp, err := h.svc.Balance(c.Request.Context(), tenantID, barberoID, c.Query("estado"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Aprobar godoc
// @Summary      Aprobar una comisión pendiente
// @Tags         comisiones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la comisión"
// @Success      200 {object} dto.ComisionResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/comisiones/{id}/aprobar [post]
func (h *ComisionesHandler) Aprobar(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	resp, err := h.svc.Aprobar(c.Request.Context(), tenantID, id, actorFromClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pagar godoc
// @Summary      Marcar una comisión aprobada como pagada
// @Description  Pagada es terminal: la comisión no admite más transiciones ni ajustes.
// @Tags         comisiones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "UUID de la comisión"
// @Param        body body dto.PagarComisionRequest true "Método de pago"
// @Success      200  {object} dto.ComisionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/comisiones/{id}/pagar [post]
func (h *ComisionesHandler) Pagar(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.PagarComisionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Pagar(c.Request.Context(), tenantID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ajustar godoc
// @Summary      Ajustar los montos de una comisión
// @Description  Corrige el reparto de una comisión no pagada. Cada ajuste exige motivo y queda en el historial.
// @Tags         comisiones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                     true "UUID de la comisión"
// @Param        body body dto.AjustarComisionRequest true "Nuevos montos y motivo"
// @Success      200  {object} dto.ComisionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/comisiones/{id}/ajustar [post]
func (h *ComisionesHandler) Ajustar(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjustarComisionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Ajustar(c.Request.Context(), tenantID, id, actorFromClaims(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
