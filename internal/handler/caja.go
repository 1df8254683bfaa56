package handler

import (
	"net/http"
	"strconv"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary      Abrir caja
// @Description  Abre la caja del tenant con el fondo inicial. Solo puede existir una caja abierta por tenant.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AbrirCajaRequest true "Fondo de apertura"
// @Success      201  {object} dto.CajaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Abrir(c.Request.Context(), tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Ingreso godoc
// @Summary      Registrar ingreso manual de caja
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.IngresoCajaRequest true "Detalle del ingreso"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/ingreso [post]
func (h *CajaHandler) Ingreso(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var req dto.IngresoCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.RegistrarIngreso(c.Request.Context(), tenantID, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Egreso godoc
// @Summary      Registrar egreso de caja
// @Description  Registra una salida de efectivo. Requiere el nombre del autorizador.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EgresoCajaRequest true "Detalle del egreso"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/egreso [post]
func (h *CajaHandler) Egreso(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var req dto.EgresoCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.RegistrarEgreso(c.Request.Context(), tenantID, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cerrar godoc
// @Summary      Cerrar caja
// @Description  Cierra la caja abierta comparando el efectivo contado contra el esperado y clasifica el descuadre (ninguno, menor, alto).
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CerrarCajaRequest true "Arqueo de cierre"
// @Success      200  {object} dto.CajaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Cerrar(c.Request.Context(), tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Activa godoc
// @Summary      Caja abierta actual
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caja/activa [get]
func (h *CajaHandler) Activa(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Activa(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reporte godoc
// @Summary      Reporte de una caja
// @Description  Detalle completo de una caja (abierta o cerrada) con sus movimientos.
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la caja"
// @Success      200 {object} dto.CajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caja/{id}/reporte [get]
func (h *CajaHandler) Reporte(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	resp, err := h.svc.Reporte(c.Request.Context(), tenantID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial godoc
// @Summary      Historial de cajas cerradas
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Página (default 1)"
// @Param        limit query int false "Registros por página (default 20)"
// @Success      200 {object} dto.CajaListResponse
// @Router       /v1/caja/historial [get]
func (h *CajaHandler) Historial(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.svc.Historial(c.Request.Context(), tenantID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
