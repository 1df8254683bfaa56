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

type pagoFixture struct {
	svc       PagoService
	pagos     *fakePagoRepo
	reservas  *fakeReservaRepo
	cajas     *fakeCajaRepo
	ledger    *fakeComisionRepo
	jobs      *fakeEncolador
	tenantID  uuid.UUID
	barberoID uuid.UUID
	reservaID uuid.UUID
}

// newPagoFixture arma el pipeline de pagos con una reserva de 30.000 sin pagar
// y un tenant con impuesto del 19%.
func newPagoFixture(t *testing.T) *pagoFixture {
	t.Helper()
	f := &pagoFixture{
		pagos:     &fakePagoRepo{},
		reservas:  newFakeReservaRepo(),
		cajas:     &fakeCajaRepo{},
		ledger:    &fakeComisionRepo{},
		jobs:      &fakeEncolador{},
		tenantID:  uuid.New(),
		barberoID: uuid.New(),
		reservaID: uuid.New(),
	}
	f.reservas.reservas[f.reservaID] = &model.Reserva{
		ID: f.reservaID, TenantID: f.tenantID, BarberoID: f.barberoID,
		ServicioID: uuid.New(), Precio: 30000,
	}

	reparto := NewRepartoService(newFakeConfigRepartoRepo())
	require.NoError(t, reparto.Actualizar(context.Background(), f.tenantID, dto.ActualizarRepartoRequest{
		BarberoPct: 50, NegocioPct: 50, ImpuestoHabilitado: true, TasaImpuesto: 19,
	}))

	caja := NewCajaService(f.cajas)
	ledger := NewComisionService(f.ledger, reparto)
	f.svc = NewPagoService(f.pagos, f.reservas, reparto, caja, ledger, nil, f.jobs)
	return f
}

func TestRegistrarPago_MixtoConComisionDeProcesador(t *testing.T) {
	f := newPagoFixture(t)
	caja := NewCajaService(f.cajas)
	_, err := caja.Abrir(context.Background(), f.tenantID, dto.AbrirCajaRequest{
		MontoApertura: 10000, Responsable: "Carlos",
	})
	require.NoError(t, err)

	resp, err := f.svc.RegistrarPago(context.Background(), f.tenantID, dto.RegistrarPagoRequest{
		ReservaID: f.reservaID.String(),
		Medios: []dto.MedioPagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: 20000},
			{Metodo: model.MetodoCredito, Monto: 10000},
		},
	})
	require.NoError(t, err)

	// crédito: fee 2,5% de 10.000 = 250, neto 9.750
	// neto total 29.750; impuesto 19% = 5.652 (redondeo a par)
	assert.Equal(t, int64(30000), resp.Total)
	assert.Equal(t, int64(29750), resp.TotalNeto)
	assert.Equal(t, int64(5652), resp.Impuesto)
	require.Len(t, resp.Medios, 2)
	assert.Equal(t, int64(0), resp.Medios[0].ComisionProcesador)
	assert.Equal(t, int64(20000), resp.Medios[0].MontoNeto)
	assert.Equal(t, int64(250), resp.Medios[1].ComisionProcesador)
	assert.Equal(t, int64(9750), resp.Medios[1].MontoNeto)

	// La reserva quedó pagada.
	assert.True(t, f.reservas.reservas[f.reservaID].Pagada)

	// Solo la porción en efectivo entra a la caja.
	require.Len(t, f.cajas.cajas[0].Movimientos, 1)
	assert.Equal(t, int64(20000), f.cajas.cajas[0].Movimientos[0].Monto)
	require.NotNil(t, f.cajas.cajas[0].Movimientos[0].PagoID)

	// Comisión sobre el precio bruto de la reserva.
	require.Len(t, f.ledger.comisiones, 1)
	assert.Equal(t, int64(30000), f.ledger.comisiones[0].MontoBruto)
	assert.Equal(t, int64(15000), f.ledger.comisiones[0].MontoBarbero)

	// Notificación encolada.
	assert.Equal(t, []string{"pago_confirmado"}, f.jobs.tipos)
}

func TestRegistrarPago_ReservaNoExiste(t *testing.T) {
	f := newPagoFixture(t)

	_, err := f.svc.RegistrarPago(context.Background(), f.tenantID, dto.RegistrarPagoRequest{
		ReservaID: uuid.New().String(),
		Medios:    []dto.MedioPagoRequest{{Metodo: model.MetodoEfectivo, Monto: 30000}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestRegistrarPago_ReservaYaPagada(t *testing.T) {
	f := newPagoFixture(t)
	f.reservas.reservas[f.reservaID].Pagada = true

	_, err := f.svc.RegistrarPago(context.Background(), f.tenantID, dto.RegistrarPagoRequest{
		ReservaID: f.reservaID.String(),
		Medios:    []dto.MedioPagoRequest{{Metodo: model.MetodoEfectivo, Monto: 30000}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Empty(t, f.pagos.pagos)
}

func TestRegistrarPago_MontosNoCuadran(t *testing.T) {
	f := newPagoFixture(t)

	_, err := f.svc.RegistrarPago(context.Background(), f.tenantID, dto.RegistrarPagoRequest{
		ReservaID: f.reservaID.String(),
		Medios: []dto.MedioPagoRequest{
			{Metodo: model.MetodoEfectivo, Monto: 20000},
			{Metodo: model.MetodoDebito, Monto: 5000},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindAmountMismatch, apierror.KindOf(err))
	assert.Empty(t, f.pagos.pagos)
	assert.False(t, f.reservas.reservas[f.reservaID].Pagada)
}

func TestRegistrarPago_SinCajaAbiertaIgualSeRegistra(t *testing.T) {
	f := newPagoFixture(t)

	resp, err := f.svc.RegistrarPago(context.Background(), f.tenantID, dto.RegistrarPagoRequest{
		ReservaID: f.reservaID.String(),
		Medios:    []dto.MedioPagoRequest{{Metodo: model.MetodoEfectivo, Monto: 30000}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.True(t, f.reservas.reservas[f.reservaID].Pagada)
	assert.Empty(t, f.cajas.cajas)
}

func TestRegistrarPago_ImpuestoSobreElNeto(t *testing.T) {
	f := newPagoFixture(t)

	// Todo con crédito: neto = 30.000 − 750 = 29.250; impuesto = 5.558
	resp, err := f.svc.RegistrarPago(context.Background(), f.tenantID, dto.RegistrarPagoRequest{
		ReservaID: f.reservaID.String(),
		Medios:    []dto.MedioPagoRequest{{Metodo: model.MetodoCredito, Monto: 30000}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(29250), resp.TotalNeto)
	assert.Equal(t, int64(5558), resp.Impuesto)
}

func TestObtenerPago_NoExiste(t *testing.T) {
	f := newPagoFixture(t)

	_, err := f.svc.ObtenerPago(context.Background(), f.tenantID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
