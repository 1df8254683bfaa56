package service

import (
	"context"
	"testing"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type comisionFixture struct {
	svc      ComisionService
	repo     *fakeComisionRepo
	tenantID uuid.UUID
	barbero  uuid.UUID
	servicio uuid.UUID
}

func newComisionFixture(t *testing.T) *comisionFixture {
	t.Helper()
	f := &comisionFixture{
		repo:     &fakeComisionRepo{},
		tenantID: uuid.New(),
		barbero:  uuid.New(),
		servicio: uuid.New(),
	}
	f.svc = NewComisionService(f.repo, NewRepartoService(newFakeConfigRepartoRepo()))
	return f
}

func (f *comisionFixture) crearPendiente(t *testing.T, bruto int64) uuid.UUID {
	t.Helper()
	err := f.svc.CrearDesdeVenta(context.Background(), f.tenantID, f.barbero, f.servicio, uuid.New(), bruto)
	require.NoError(t, err)
	return f.repo.comisiones[len(f.repo.comisiones)-1].ID
}

func TestCrearDesdeVenta_RepartoPorDefecto(t *testing.T) {
	f := newComisionFixture(t)

	f.crearPendiente(t, 15000)

	require.Len(t, f.repo.comisiones, 1)
	c := f.repo.comisiones[0]
	assert.Equal(t, int64(15000), c.MontoBruto)
	assert.Equal(t, int64(7500), c.MontoBarbero)
	assert.Equal(t, int64(7500), c.MontoNegocio)
	assert.Equal(t, model.FuenteTenant, c.Fuente)
	assert.Equal(t, model.ComisionPendiente, c.Estado)
	require.NotNil(t, c.VentaID)
	assert.Nil(t, c.ReservaID)
}

func TestCrearDesdeReserva_GuardaLaReferencia(t *testing.T) {
	f := newComisionFixture(t)
	reservaID := uuid.New()

	err := f.svc.CrearDesdeReserva(context.Background(), f.tenantID, f.barbero, f.servicio, reservaID, 30000)
	require.NoError(t, err)

	require.Len(t, f.repo.comisiones, 1)
	c := f.repo.comisiones[0]
	require.NotNil(t, c.ReservaID)
	assert.Equal(t, reservaID, *c.ReservaID)
	assert.Nil(t, c.VentaID)
}

func TestCicloDeVida_PendienteAprobadaPagada(t *testing.T) {
	f := newComisionFixture(t)
	id := f.crearPendiente(t, 10000)

	aprobada, err := f.svc.Aprobar(context.Background(), f.tenantID, id, "admin@tenant")
	require.NoError(t, err)
	assert.Equal(t, model.ComisionAprobada, aprobada.Estado)
	require.NotNil(t, aprobada.AprobadaPor)
	assert.Equal(t, "admin@tenant", *aprobada.AprobadaPor)

	pagada, err := f.svc.Pagar(context.Background(), f.tenantID, id, dto.PagarComisionRequest{
		MetodoPago: model.MetodoTransferencia,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComisionPagada, pagada.Estado)
	require.NotNil(t, pagada.MetodoPago)
	assert.Equal(t, model.MetodoTransferencia, *pagada.MetodoPago)
	require.NotNil(t, pagada.PagadaAt)
}

func TestPagar_RequiereAprobacionPrevia(t *testing.T) {
	f := newComisionFixture(t)
	id := f.crearPendiente(t, 10000)

	_, err := f.svc.Pagar(context.Background(), f.tenantID, id, dto.PagarComisionRequest{
		MetodoPago: model.MetodoEfectivo,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalidState, apierror.KindOf(err))
}

func TestPagar_DosVecesEsConflicto(t *testing.T) {
	f := newComisionFixture(t)
	id := f.crearPendiente(t, 10000)

	_, err := f.svc.Aprobar(context.Background(), f.tenantID, id, "admin")
	require.NoError(t, err)
	_, err = f.svc.Pagar(context.Background(), f.tenantID, id, dto.PagarComisionRequest{MetodoPago: model.MetodoEfectivo})
	require.NoError(t, err)

	_, err = f.svc.Pagar(context.Background(), f.tenantID, id, dto.PagarComisionRequest{MetodoPago: model.MetodoEfectivo})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestAprobar_SoloDesdePendiente(t *testing.T) {
	f := newComisionFixture(t)
	id := f.crearPendiente(t, 10000)

	_, err := f.svc.Aprobar(context.Background(), f.tenantID, id, "admin")
	require.NoError(t, err)

	_, err = f.svc.Aprobar(context.Background(), f.tenantID, id, "admin")
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalidState, apierror.KindOf(err))
}

func TestAjustar_ExigeMotivo(t *testing.T) {
	f := newComisionFixture(t)
	id := f.crearPendiente(t, 10000)

	_, err := f.svc.Ajustar(context.Background(), f.tenantID, id, "admin", dto.AjustarComisionRequest{
		MontoBarbero: 6000, MontoNegocio: 4000, Motivo: "   ",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
}

func TestAjustar_SobrescribeMontosYGuardaHistorial(t *testing.T) {
	f := newComisionFixture(t)
	id := f.crearPendiente(t, 10000)

	resp, err := f.svc.Ajustar(context.Background(), f.tenantID, id, "admin", dto.AjustarComisionRequest{
		MontoBarbero: 6000, MontoNegocio: 4000, Motivo: "acuerdo especial del mes",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6000), resp.MontoBarbero)
	assert.Equal(t, int64(4000), resp.MontoNegocio)
	require.Len(t, resp.Ajustes, 1)
	assert.Equal(t, "acuerdo especial del mes", resp.Ajustes[0].Motivo)
	assert.Equal(t, "admin", resp.Ajustes[0].Actor)

	// Segundo ajuste: el historial crece, los montos se vuelven a sobrescribir.
	resp, err = f.svc.Ajustar(context.Background(), f.tenantID, id, "admin", dto.AjustarComisionRequest{
		MontoBarbero: 5500, MontoNegocio: 4500, Motivo: "corrección del acuerdo",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5500), resp.MontoBarbero)
	require.Len(t, f.repo.comisiones[0].Ajustes, 2)
}

func TestAjustar_PagadaEsTerminal(t *testing.T) {
	f := newComisionFixture(t)
	id := f.crearPendiente(t, 10000)

	_, err := f.svc.Aprobar(context.Background(), f.tenantID, id, "admin")
	require.NoError(t, err)
	_, err = f.svc.Pagar(context.Background(), f.tenantID, id, dto.PagarComisionRequest{MetodoPago: model.MetodoEfectivo})
	require.NoError(t, err)

	_, err = f.svc.Ajustar(context.Background(), f.tenantID, id, "admin", dto.AjustarComisionRequest{
		MontoBarbero: 1, MontoNegocio: 9999, Motivo: "intento tardío",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalidState, apierror.KindOf(err))
}

func TestBalance_FiltraPorEstado(t *testing.T) {
	f := newComisionFixture(t)
	id := f.crearPendiente(t, 10000)
	f.crearPendiente(t, 6000)

	_, err := f.svc.Aprobar(context.Background(), f.tenantID, id, "admin")
	require.NoError(t, err)

	balance, err := f.svc.Balance(context.Background(), f.tenantID, f.barbero, model.ComisionPendiente)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), balance.Total)
	assert.Equal(t, int64(1), balance.Entradas)

	todo, err := f.svc.Balance(context.Background(), f.tenantID, f.barbero, "")
	require.NoError(t, err)
	assert.Equal(t, int64(8000), todo.Total)
	assert.Equal(t, int64(2), todo.Entradas)
}

func TestComisiones_NoExiste(t *testing.T) {
	f := newComisionFixture(t)

	_, err := f.svc.Aprobar(context.Background(), f.tenantID, uuid.New(), "admin")
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
