package service

import (
	"context"
	"testing"

	"barberpos/internal/apierror"
	"barberpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ServicioConPromo(t *testing.T) {
	catalogo := newFakeCatalogoRepo()
	tenantID := uuid.New()
	servicioID := uuid.New()
	promo := int64(12000)
	catalogo.servicios[servicioID] = &model.Servicio{
		ID: servicioID, TenantID: tenantID, Nombre: "Corte", Precio: 15000, PrecioPromo: &promo,
	}
	svc := NewPrecioService(catalogo)

	r, err := svc.Resolver(context.Background(), tenantID, servicioID, model.ItemServicio, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), r.Precio)
	assert.Nil(t, r.Stock)
}

func TestResolver_PromoMasCaraSeIgnora(t *testing.T) {
	catalogo := newFakeCatalogoRepo()
	tenantID := uuid.New()
	servicioID := uuid.New()
	promo := int64(18000)
	catalogo.servicios[servicioID] = &model.Servicio{
		ID: servicioID, TenantID: tenantID, Nombre: "Corte", Precio: 15000, PrecioPromo: &promo,
	}
	svc := NewPrecioService(catalogo)

	r, err := svc.Resolver(context.Background(), tenantID, servicioID, model.ItemServicio, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), r.Precio)
}

func TestResolver_ProductoIncluyeStock(t *testing.T) {
	catalogo := newFakeCatalogoRepo()
	tenantID := uuid.New()
	productoID := uuid.New()
	catalogo.productos[productoID] = &model.Producto{
		ID: productoID, TenantID: tenantID, Nombre: "Cera", Precio: 5000, StockActual: 7,
	}
	svc := NewPrecioService(catalogo)

	r, err := svc.Resolver(context.Background(), tenantID, productoID, model.ItemProducto, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), r.Precio)
	require.NotNil(t, r.Stock)
	assert.Equal(t, 7, *r.Stock)
}

func TestResolver_PrecioClienteDistintoNoAltera(t *testing.T) {
	catalogo := newFakeCatalogoRepo()
	tenantID := uuid.New()
	servicioID := uuid.New()
	catalogo.servicios[servicioID] = &model.Servicio{
		ID: servicioID, TenantID: tenantID, Nombre: "Corte", Precio: 15000,
	}
	svc := NewPrecioService(catalogo)

	sugerido := int64(9000)
	r, err := svc.Resolver(context.Background(), tenantID, servicioID, model.ItemServicio, &sugerido)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), r.Precio)
}

func TestResolver_Errores(t *testing.T) {
	svc := NewPrecioService(newFakeCatalogoRepo())
	tenantID := uuid.New()

	_, err := svc.Resolver(context.Background(), tenantID, uuid.New(), model.ItemServicio, nil)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))

	_, err = svc.Resolver(context.Background(), tenantID, uuid.New(), "membresia", nil)
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalidInput, apierror.KindOf(err))
}
