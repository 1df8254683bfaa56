package handler

import (
	"net/http"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RepartoHandler struct{ svc service.RepartoService }

func NewRepartoHandler(svc service.RepartoService) *RepartoHandler {
	return &RepartoHandler{svc: svc}
}

// Obtener godoc
// @Summary      Configuración de reparto del tenant
// @Description  Porcentajes barbero/negocio vigentes, impuesto y overrides activos.
// @Tags         reparto
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ConfigRepartoResponse
// @Router       /v1/reparto [get]
func (h *RepartoHandler) Obtener(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar configuración de reparto
// @Description  Los porcentajes deben sumar 100. Solo afecta comisiones futuras.
// @Tags         reparto
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ActualizarRepartoRequest true "Nueva configuración"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reparto [put]
func (h *RepartoHandler) Actualizar(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var req dto.ActualizarRepartoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.Actualizar(c.Request.Context(), tenantID, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CrearOverride godoc
// @Summary      Crear override de reparto
// @Description  Define porcentajes específicos para un barbero o servicio. El override por barbero tiene precedencia sobre el de servicio.
// @Tags         reparto
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearOverrideRequest true "Override"
// @Success      201  {object} dto.OverrideResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reparto/overrides [post]
func (h *RepartoHandler) CrearOverride(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var req dto.CrearOverrideRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CrearOverride(c.Request.Context(), tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DesactivarOverride godoc
// @Summary      Desactivar override de reparto
// @Tags         reparto
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del override"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reparto/overrides/{id} [delete]
func (h *RepartoHandler) DesactivarOverride(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	if err := h.svc.DesactivarOverride(c.Request.Context(), tenantID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
