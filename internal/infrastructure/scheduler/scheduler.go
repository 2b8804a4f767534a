package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jortega/aquagest/internal/application/ports"
	"github.com/jortega/aquagest/internal/domain/entity"
	"github.com/jortega/aquagest/internal/domain/repository"
	"github.com/jortega/aquagest/pkg/logger"
)

// Config del planificador de barridos.
type Config struct {
	Spec      string        // expresión cron, p. ej. "@every 15m"
	Lookahead time.Duration // ventana para avisar entregas próximas
}

// Scheduler recorre periódicamente los espacios de todos los usuarios y emite
// recordatorios de entregas próximas y alertas de stock bajo. Solo lee; las
// mutaciones siguen siendo asunto de los servicios.
type Scheduler struct {
	cron     *cron.Cron
	users    repository.UserRepository
	stores   repository.StoreProvider
	notifier ports.Notifier
	log      *logger.Logger
	cfg      Config
}

// New construye el planificador sin arrancarlo.
func New(users repository.UserRepository, stores repository.StoreProvider, notifier ports.Notifier, log *logger.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		users:    users,
		stores:   stores,
		notifier: notifier,
		log:      log,
		cfg:      cfg,
	}
}

// Start registra el job con la expresión configurada y arranca el cron.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Spec, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.cfg.Spec).Msg("planificador de barridos arrancado")
	return nil
}

// Stop detiene el cron y espera a que terminen los jobs en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep ejecuta un barrido completo: todos los usuarios registrados.
func (s *Scheduler) Sweep() {
	users, err := s.users.List()
	if err != nil {
		s.log.Error().Err(err).Msg("barrido: listar cuentas")
		return
	}
	now := time.Now()
	for _, u := range users {
		s.sweepUser(u.ID, now)
	}
}

func (s *Scheduler) sweepUser(userID string, now time.Time) {
	store, err := s.stores.ForUser(userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("barrido: abrir espacio de usuario")
		return
	}

	orders, err := store.Orders().GetAll()
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("barrido: leer pedidos")
	} else {
		horizon := now.Add(s.cfg.Lookahead)
		for _, o := range orders {
			if o.Status != entity.OrderPending {
				continue
			}
			if o.DeliveryAt.After(horizon) {
				continue
			}
			s.notifier.Notify(ports.EventDeliveryDue, ports.DeliveryDuePayload{
				UserID:        userID,
				OrderID:       o.ID,
				ClientName:    o.ClientName,
				ClientAddress: o.ClientAddress,
				DeliveryAt:    o.DeliveryAt,
			})
		}
	}

	products, err := store.Products().GetAll()
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("barrido: leer productos")
		return
	}
	for _, p := range products {
		if status := p.StockStatus(); status != entity.StockAvailable {
			s.notifier.Notify(ports.EventLowStock, ports.LowStockPayload{
				UserID:      userID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    p.Quantity,
				MinStock:    p.MinStock,
				Status:      status,
			})
		}
	}
}
