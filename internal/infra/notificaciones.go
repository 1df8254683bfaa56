package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NotificacionPayload is sent by the worker pool to the notification sidecar,
// which owns the actual delivery channels (WhatsApp, email, push).
type NotificacionPayload struct {
	TenantID string         `json:"tenant_id"`
	Tipo     string         `json:"tipo"` // venta_registrada | pago_confirmado
	Datos    map[string]any `json:"datos"`
}

// NotificacionResult is the sidecar's acknowledgment.
type NotificacionResult struct {
	Entregada bool   `json:"entregada"`
	Canal     string `json:"canal"`
	Detalle   string `json:"detalle"`
}

// NotificadorClient delegates notification delivery to the sidecar over HTTP.
// Delivery failures never touch the settlement path; callers go through the
// worker pool and the circuit breaker.
type NotificadorClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewNotificadorClient(sidecarURL string) *NotificadorClient {
	return &NotificadorClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enviar posts one notification to the sidecar.
func (c *NotificadorClient) Enviar(ctx context.Context, payload NotificacionPayload) (*NotificacionResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("notificaciones: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+"/notificar", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("notificaciones: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notificaciones: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("notificaciones: sidecar returned %d", resp.StatusCode)
	}

	var result NotificacionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("notificaciones: decode response: %w", err)
	}
	return &result, nil
}
