package eventbus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/infrastructure/eventbus"
)

// Un suscriptor del bus recibe el payload tipado tal cual se publicó.
func TestNotify_EntregaAlSuscriptor(t *testing.T) {
	n := eventbus.New()

	var got []ports.NewOrderPayload
	err := n.Bus().Subscribe(ports.EventNewOrder, func(payload any) {
		got = append(got, payload.(ports.NewOrderPayload))
	})
	require.NoError(t, err)

	n.Notify(ports.EventNewOrder, ports.NewOrderPayload{
		UserID:     "u1",
		OrderID:    7,
		ClientName: "Ana",
	})

	require.Len(t, got, 1)
	assert.Equal(t, uint64(7), got[0].OrderID)
	assert.Equal(t, "Ana", got[0].ClientName)
}

// Publicar sin suscriptores no falla: la entrega es best-effort.
func TestNotify_SinSuscriptores(t *testing.T) {
	n := eventbus.New()
	n.Notify(ports.EventLowStock, ports.LowStockPayload{ProductID: 1})
}
