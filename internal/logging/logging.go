// Package logging emits structured JSON events for the payment
// reconciliation path, where plain request logs are not enough to find
// orphaned verifications afterwards.
package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Event struct {
	Component      string `json:"component"`
	OrderID        string `json:"order_id,omitempty"`
	GatewayOrderID string `json:"gateway_order_id,omitempty"`
	PaymentID      string `json:"payment_id,omitempty"`
	Status         string `json:"status,omitempty"`
	Message        string `json:"message,omitempty"`
}

func Log(ev Event) {
	payload := map[string]any{
		"component":        ev.Component,
		"order_id":         ev.OrderID,
		"gateway_order_id": ev.GatewayOrderID,
		"payment_id":       ev.PaymentID,
		"status":           ev.Status,
		"message":          ev.Message,
		"timestamp":        time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"component\":%q,\"status\":\"log_error\",\"error\":%q}", ev.Component, err.Error())
		return
	}
	log.Print(string(data))
}
