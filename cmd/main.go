package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/kappsme/appo/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/kappsme/appo/internal/api/handlers/create_appointment"
	createAvailabilityHandler "github.com/kappsme/appo/internal/api/handlers/create_availability"
	createServiceHandler "github.com/kappsme/appo/internal/api/handlers/create_service"
	deleteAvailabilityHandler "github.com/kappsme/appo/internal/api/handlers/delete_availability"
	deleteServiceHandler "github.com/kappsme/appo/internal/api/handlers/delete_service"
	getAppointmentHandler "github.com/kappsme/appo/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/kappsme/appo/internal/api/handlers/get_appointments"
	getAvailableSlotsHandler "github.com/kappsme/appo/internal/api/handlers/get_available_slots"
	listAvailabilityHandler "github.com/kappsme/appo/internal/api/handlers/list_availability"
	listServicesHandler "github.com/kappsme/appo/internal/api/handlers/list_services"
	updateAppointmentHandler "github.com/kappsme/appo/internal/api/handlers/update_appointment"
	updateAvailabilityHandler "github.com/kappsme/appo/internal/api/handlers/update_availability"
	updateServiceHandler "github.com/kappsme/appo/internal/api/handlers/update_service"
	"github.com/kappsme/appo/internal/api/middleware"
	"github.com/kappsme/appo/internal/config"
	slotsCache "github.com/kappsme/appo/internal/infra/cache/slots"
	appointmentRepo "github.com/kappsme/appo/internal/infra/storage/appointment"
	availabilityRepo "github.com/kappsme/appo/internal/infra/storage/availability"
	catalogRepo "github.com/kappsme/appo/internal/infra/storage/catalog"
	"github.com/kappsme/appo/internal/notify"
	appointmentsService "github.com/kappsme/appo/internal/service/appointments"
	availabilityService "github.com/kappsme/appo/internal/service/availability"
	catalogService "github.com/kappsme/appo/internal/service/catalog"
	createAppointmentUC "github.com/kappsme/appo/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/kappsme/appo/internal/usecase/get_available_slots"
	"github.com/kappsme/appo/pkg/dbmetrics"
	"github.com/kappsme/appo/pkg/logger"
	"github.com/kappsme/appo/pkg/metrics"
	"github.com/kappsme/appo/pkg/simpletxmanager"
	"github.com/kappsme/appo/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting APPO backend...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем кеш слотов (если включен)
	var slotsCacheClient *slotsCache.Cache
	if cfg.Redis.Enabled {
		redisClient, err := slotsCache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		slotsCacheClient = slotsCache.New(redisClient, time.Duration(cfg.Redis.SlotsTTL)*time.Second)
		log.Info("Slots cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotsTTL)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		catalogRepository      *catalogRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	// Интерфейс менеджера транзакций (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем мейлер уведомлений
	mailer := notify.New(cfg.Mail, log)
	if cfg.Mail.Enabled {
		log.Info("Mail notifications enabled (smtp=%s:%d, to=%s)", cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.To)
	} else {
		log.Info("Mail notifications in log-only mode")
	}

	// Кеш передается через интерфейсы, nil означает выключенный кеш
	var (
		ucSlotsCache   getAvailableSlotsUC.SlotsCache
		ucInvalidator  createAppointmentUC.SlotsInvalidator
		svcInvalidator appointmentsService.SlotsInvalidator
	)
	if slotsCacheClient != nil {
		ucSlotsCache = slotsCacheClient
		ucInvalidator = slotsCacheClient
		svcInvalidator = slotsCacheClient
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		svcInvalidator,
		mailer,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		txMgr,
		ucInvalidator,
		mailer,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		ucSlotsCache,
		cfg.Slots.StrictOverlap,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// --- Слоты ---
	api.HandleFunc("/available-slots/{date}", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// --- Услуги ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{id}", updateService.Handle).Methods(http.MethodPut)
	api.HandleFunc("/services/{id}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Окна доступности ---
	api.HandleFunc("/availability", listAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/{id}", updateAvailability.Handle).Methods(http.MethodPut)
	api.HandleFunc("/availability/{id}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
