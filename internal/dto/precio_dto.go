package dto

// ConsultaPrecioResponse is the cached payload of the price-check endpoint.
type ConsultaPrecioResponse struct {
	Tipo   string `json:"tipo"`
	ItemID string `json:"item_id"`
	Nombre string `json:"nombre"`
	// Precio is the authoritative current price (promo applied when lower).
	Precio          int64 `json:"precio"`
	StockDisponible *int  `json:"stock_disponible,omitempty"`
}
