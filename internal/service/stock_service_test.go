package service

import (
	"context"
	"testing"

	"barberpos/internal/model"
	"barberpos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStock_SalidaYEntrada(t *testing.T) {
	catalogo := newFakeCatalogoRepo()
	movimientos := &fakeMovimientoStockRepo{}
	tenantID := uuid.New()
	productoID := uuid.New()
	catalogo.productos[productoID] = &model.Producto{
		ID: productoID, TenantID: tenantID, Nombre: "Shampoo", Precio: 8000, StockActual: 5,
	}
	svc := NewStockService(catalogo, movimientos)

	ventaID := uuid.New()
	require.NoError(t, svc.RegistrarSalida(context.Background(), tenantID, productoID, 2, "Venta", ventaID))
	assert.Equal(t, 3, catalogo.productos[productoID].StockActual)

	require.NoError(t, svc.RegistrarEntrada(context.Background(), tenantID, productoID, 10, "Reposición"))
	assert.Equal(t, 13, catalogo.productos[productoID].StockActual)

	listado, total, err := svc.ListMovimientos(context.Background(), tenantID, repository.MovimientoStockFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, listado, 2)

	salida := listado[0]
	assert.Equal(t, model.StockSalida, salida.Tipo)
	assert.Equal(t, -2, salida.Cantidad)
	assert.Equal(t, 5, salida.StockAnterior)
	assert.Equal(t, 3, salida.StockNuevo)
	require.NotNil(t, salida.VentaID)
	assert.Equal(t, ventaID, *salida.VentaID)

	entrada := listado[1]
	assert.Equal(t, model.StockEntrada, entrada.Tipo)
	assert.Equal(t, 10, entrada.Cantidad)
	assert.Equal(t, 3, entrada.StockAnterior)
	assert.Equal(t, 13, entrada.StockNuevo)
	assert.Nil(t, entrada.VentaID)
}

func TestStock_ListFiltraPorTipo(t *testing.T) {
	catalogo := newFakeCatalogoRepo()
	movimientos := &fakeMovimientoStockRepo{}
	tenantID := uuid.New()
	productoID := uuid.New()
	catalogo.productos[productoID] = &model.Producto{
		ID: productoID, TenantID: tenantID, Nombre: "Shampoo", Precio: 8000, StockActual: 10,
	}
	svc := NewStockService(catalogo, movimientos)

	require.NoError(t, svc.RegistrarSalida(context.Background(), tenantID, productoID, 1, "Venta", uuid.New()))
	require.NoError(t, svc.RegistrarEntrada(context.Background(), tenantID, productoID, 4, "Reposición"))

	soloSalidas, total, err := svc.ListMovimientos(context.Background(), tenantID, repository.MovimientoStockFilter{
		Tipo: model.StockSalida,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, soloSalidas, 1)
	assert.Equal(t, model.StockSalida, soloSalidas[0].Tipo)
}
