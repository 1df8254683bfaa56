package service

import (
	"context"

	"barberpos/internal/apierror"
	"barberpos/internal/model"
	"barberpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PrecioResuelto is the authoritative price of a catalog item at sale time.
type PrecioResuelto struct {
	Nombre string
	Precio int64
	// Stock is set only for productos.
	Stock *int
}

// PrecioService resolves the authoritative price for a (tenant, item, kind).
// The client-supplied price is never used for monetary computation: a
// mismatch is logged at warn level and the server price wins.
type PrecioService interface {
	Resolver(ctx context.Context, tenantID, itemID uuid.UUID, tipo string, precioCliente *int64) (*PrecioResuelto, error)
}

type precioService struct {
	catalogo repository.CatalogoRepository
}

func NewPrecioService(catalogo repository.CatalogoRepository) PrecioService {
	return &precioService{catalogo: catalogo}
}

func (s *precioService) Resolver(ctx context.Context, tenantID, itemID uuid.UUID, tipo string, precioCliente *int64) (*PrecioResuelto, error) {
	var resuelto *PrecioResuelto

	switch tipo {
	case model.ItemServicio:
		svc, err := s.catalogo.FindServicio(ctx, tenantID, itemID)
		if err != nil {
			return nil, apierror.NotFound("servicio no encontrado")
		}
		resuelto = &PrecioResuelto{
			Nombre: svc.Nombre,
			Precio: precioVigente(svc.Precio, svc.PrecioPromo),
		}
	case model.ItemProducto:
		prod, err := s.catalogo.FindProducto(ctx, tenantID, itemID)
		if err != nil {
			return nil, apierror.NotFound("producto no encontrado")
		}
		stock := prod.StockActual
		resuelto = &PrecioResuelto{
			Nombre: prod.Nombre,
			Precio: precioVigente(prod.Precio, prod.PrecioPromo),
			Stock:  &stock,
		}
	default:
		return nil, apierror.Invalid("tipo de item desconocido: " + tipo)
	}

	if precioCliente != nil && *precioCliente != resuelto.Precio {
		log.Warn().
			Str("tenant_id", tenantID.String()).
			Str("item_id", itemID.String()).
			Str("tipo", tipo).
			Int64("precio_cliente", *precioCliente).
			Int64("precio_servidor", resuelto.Precio).
			Msg("precio del cliente descartado: no coincide con el autoritativo")
	}

	return resuelto, nil
}

// precioVigente applies the promo price only when one is configured and it is
// lower than the list price.
func precioVigente(lista int64, promo *int64) int64 {
	if promo != nil && *promo < lista {
		return *promo
	}
	return lista
}
