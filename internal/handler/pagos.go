package handler

import (
	"net/http"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// RegistrarPago godoc
// @Summary      Liquidar el pago de una reserva
// @Description  Cobra una reserva con uno o más medios de pago. La suma de los medios debe igualar el precio de la reserva. Descuenta tarifas de procesador, calcula impuesto sobre el neto y devenga la comisión del barbero.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarPagoRequest true "Reserva y medios de pago"
// @Success      201  {object} dto.PagoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/pagos [post]
func (h *PagosHandler) RegistrarPago(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.RegistrarPago(c.Request.Context(), tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerPago godoc
// @Summary      Obtener pago por ID
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del pago"
// @Success      200 {object} dto.PagoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pagos/{id} [get]
func (h *PagosHandler) ObtenerPago(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}

	resp, err := h.svc.ObtenerPago(c.Request.Context(), tenantID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
