package handler

import (
	"net/http"
	"strconv"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Resumen godoc
// @Summary      Resumen de ingresos del período
// @Description  Totales de ventas, pagos e impuestos con variación porcentual contra el período anterior de igual duración. Sin fechas se usa el mes calendario en curso.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD inclusive"
// @Param        hasta query string false "Fecha YYYY-MM-DD inclusive"
// @Success      200   {object} dto.ResumenPeriodoResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/reportes/resumen [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var filter dto.PeriodoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	resp, err := h.svc.ResumenPeriodo(c.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ranking godoc
// @Summary      Ranking de barberos por ingresos
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD inclusive"
// @Param        hasta query string false "Fecha YYYY-MM-DD inclusive"
// @Param        limit query int    false "Máximo de posiciones (default 10)"
// @Success      200   {array} dto.RankingBarberoResponse
// @Router       /v1/reportes/ranking [get]
func (h *ReportesHandler) Ranking(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var filter dto.PeriodoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := h.svc.RankingBarberos(c.Request.Context(), tenantID, filter, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MediosPago godoc
// @Summary      Desglose de ingresos por medio de pago
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD inclusive"
// @Param        hasta query string false "Fecha YYYY-MM-DD inclusive"
// @Success      200   {array} dto.MedioPagoDesgloseResponse
// @Router       /v1/reportes/medios-pago [get]
func (h *ReportesHandler) MediosPago(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var filter dto.PeriodoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	resp, err := h.svc.DesgloseMedios(c.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SerieDiaria godoc
// @Summary      Serie diaria de ingresos
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD inclusive"
// @Param        hasta query string false "Fecha YYYY-MM-DD inclusive"
// @Success      200   {array} dto.SerieDiariaPunto
// @Router       /v1/reportes/serie-diaria [get]
func (h *ReportesHandler) SerieDiaria(c *gin.Context) {
	tenantID, ok := tenantFromClaims(c)
	if !ok {
		return
	}
	var filter dto.PeriodoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	resp, err := h.svc.SerieDiaria(c.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
