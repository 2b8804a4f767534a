package eventbus

import (
	"github.com/asaskevich/EventBus"

	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/pkg/logger"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier publica los eventos del núcleo en un bus en proceso. Los
// suscriptores (UI, notificaciones del sistema) se cuelgan del mismo bus;
// la publicación es best-effort y nunca falla hacia el emisor.
type Notifier struct {
	bus EventBus.Bus
}

// New construye el notificador con su bus propio.
func New() *Notifier {
	return &Notifier{bus: EventBus.New()}
}

// Bus expone el bus para registrar suscriptores.
func (n *Notifier) Bus() EventBus.Bus { return n.bus }

// Notify publica el evento. La entrega es síncrona dentro del proceso; un
// suscriptor lento no bloquea al emisor si se registra con SubscribeAsync.
func (n *Notifier) Notify(kind string, payload any) {
	n.bus.Publish(kind, payload)
}

// AttachLogSink registra un suscriptor que deja traza de todos los eventos
// conocidos. Es el colaborador de notificaciones por defecto cuando no hay
// una UI escuchando.
func AttachLogSink(n *Notifier, log *logger.Logger) {
	sink := func(kind string) func(payload any) {
		return func(payload any) {
			log.Info().Str("event", kind).Interface("payload", payload).Msg("evento de negocio")
		}
	}
	for _, kind := range []string{
		ports.EventLowStock,
		ports.EventStockDesync,
		ports.EventNewOrder,
		ports.EventDeliveryDue,
	} {
		// SubscribeAsync: el sink jamás retrasa una mutación.
		_ = n.bus.SubscribeAsync(kind, sink(kind), false)
	}
}
