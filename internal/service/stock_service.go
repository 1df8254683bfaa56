package service

import (
	"context"

	"barberpos/internal/model"
	"barberpos/internal/repository"

	"github.com/google/uuid"
)

// StockService is the append-only stock ledger. Every quantity change goes
// through here so the movement history can reconstruct any product's stock.
type StockService interface {
	// RegistrarSalida decrements stock for a sold product and records the
	// movement with the originating sale.
	RegistrarSalida(ctx context.Context, tenantID, productoID uuid.UUID, cantidad int, motivo string, ventaID uuid.UUID) error
	// RegistrarEntrada increments stock (restock, sale reversal).
	RegistrarEntrada(ctx context.Context, tenantID, productoID uuid.UUID, cantidad int, motivo string) error
	ListMovimientos(ctx context.Context, tenantID uuid.UUID, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error)
}

type stockService struct {
	catalogo    repository.CatalogoRepository
	movimientos repository.MovimientoStockRepository
}

func NewStockService(catalogo repository.CatalogoRepository, movimientos repository.MovimientoStockRepository) StockService {
	return &stockService{catalogo: catalogo, movimientos: movimientos}
}

func (s *stockService) RegistrarSalida(ctx context.Context, tenantID, productoID uuid.UUID, cantidad int, motivo string, ventaID uuid.UUID) error {
	antes, err := s.catalogo.AjustarStock(ctx, tenantID, productoID, -cantidad)
	if err != nil {
		return err
	}
	ref := ventaID
	return s.movimientos.Create(ctx, &model.MovimientoStock{
		TenantID:      tenantID,
		ProductoID:    productoID,
		Tipo:          model.StockSalida,
		Cantidad:      -cantidad,
		StockAnterior: antes,
		StockNuevo:    antes - cantidad,
		Motivo:        motivo,
		VentaID:       &ref,
	})
}

func (s *stockService) RegistrarEntrada(ctx context.Context, tenantID, productoID uuid.UUID, cantidad int, motivo string) error {
	antes, err := s.catalogo.AjustarStock(ctx, tenantID, productoID, cantidad)
	if err != nil {
		return err
	}
	return s.movimientos.Create(ctx, &model.MovimientoStock{
		TenantID:      tenantID,
		ProductoID:    productoID,
		Tipo:          model.StockEntrada,
		Cantidad:      cantidad,
		StockAnterior: antes,
		StockNuevo:    antes + cantidad,
		Motivo:        motivo,
	})
}

func (s *stockService) ListMovimientos(ctx context.Context, tenantID uuid.UUID, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	return s.movimientos.List(ctx, tenantID, filter)
}
