package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jortega/aquagest/internal/application/analytics"
	"github.com/jortega/aquagest/internal/application/auth"
	"github.com/jortega/aquagest/internal/application/inventory"
	"github.com/jortega/aquagest/internal/application/usecase"
	"github.com/jortega/aquagest/internal/infrastructure/bolt"
	"github.com/jortega/aquagest/internal/infrastructure/eventbus"
	"github.com/jortega/aquagest/internal/infrastructure/scheduler"
	httpRouter "github.com/jortega/aquagest/internal/interfaces/http"
	"github.com/jortega/aquagest/pkg/config"
	"github.com/jortega/aquagest/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Path).
		Msg("iniciando aplicación")

	// Almacén local: un archivo, migración explícita al arranque.
	db, err := bolt.Open(bolt.Config{Path: cfg.Store.Path})
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén local")
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migrar esquema")
	}

	notifier := eventbus.New()
	eventbus.AttachLogSink(notifier, log)

	userRepo := bolt.NewUserRepository(db)
	adjuster := inventory.NewAdjuster(db, log, notifier)

	authUC := auth.NewAuthUseCase(userRepo, db, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(db)
	clientUC := usecase.NewClientUseCase(db)
	expenseUC := usecase.NewExpenseUseCase(db)
	orderUC := usecase.NewOrderUseCase(db, notifier)
	purchaseUC := inventory.NewPurchaseUseCase(db, adjuster)
	saleUC := inventory.NewSaleUseCase(db, adjuster, notifier)
	dashboardUC := analytics.NewDashboardUseCase(db)

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(userRepo, db, notifier, log, scheduler.Config{
			Spec:      cfg.Scheduler.Spec,
			Lookahead: time.Duration(cfg.Scheduler.LookaheadMins) * time.Minute,
		})
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("arrancar planificador")
		}
		defer sched.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		ClientUC:    clientUC,
		ExpenseUC:   expenseUC,
		OrderUC:     orderUC,
		PurchaseUC:  purchaseUC,
		SaleUC:      saleUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	// Apagado ordenado: cerrar HTTP antes que el archivo del almacén.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("apagando")
		_ = app.Shutdown()
	}()

	// Solo loopback por defecto: la API sirve a la UI local, no a la red.
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}
