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

	approveBookingHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/create_booking"
	createFacilityHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/create_facility"
	deleteFacilityHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/delete_facility"
	getAvailableSlotsHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/get_booking"
	getFacilityHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/get_facility"
	getFacilityBookingsHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/get_facility_bookings"
	getPendingBookingsHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/get_pending_bookings"
	getUserBookingsHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/get_user_bookings"
	listFacilitiesHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/list_facilities"
	rejectBookingHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/reject_booking"
	updateBookingStatusHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/update_booking_status"
	updateFacilityHandler "github.com/m04kA/PMS-FacilityService/internal/api/handlers/update_facility"
	"github.com/m04kA/PMS-FacilityService/internal/api/middleware"
	"github.com/m04kA/PMS-FacilityService/internal/config"
	"github.com/m04kA/PMS-FacilityService/internal/infra/storage/booking"
	"github.com/m04kA/PMS-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/PMS-FacilityService/internal/integrations/buildingservice"
	bookingsService "github.com/m04kA/PMS-FacilityService/internal/service/bookings"
	facilitiesService "github.com/m04kA/PMS-FacilityService/internal/service/facilities"
	createBookingUC "github.com/m04kA/PMS-FacilityService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/PMS-FacilityService/internal/usecase/get_available_slots"
	transitionBookingUC "github.com/m04kA/PMS-FacilityService/internal/usecase/transition_booking"
	"github.com/m04kA/PMS-FacilityService/internal/worker"
	"github.com/m04kA/PMS-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/PMS-FacilityService/pkg/logger"
	"github.com/m04kA/PMS-FacilityService/pkg/metrics"
	"github.com/m04kA/PMS-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/PMS-FacilityService/pkg/txmanager"
)

func main() {
	// 1. Загрузка конфигурации
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализация логгера
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PMS-FacilityService")

	// 3. Инициализация метрик (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled: service=%s path=%s", cfg.Metrics.ServiceName, cfg.Metrics.Path)
	}

	// 4. Подключение к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database connection: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database: host=%s port=%d name=%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// 5. Клиент сервиса зданий
	buildingClient := buildingservice.NewClient(
		cfg.BuildingService.URL,
		time.Duration(cfg.BuildingService.Timeout)*time.Second,
		log,
	)

	// 6. Репозитории и менеджер транзакций
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var facilityRepository *facility.Repository
	var bookingRepository *booking.Repository
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		facilityRepository = facility.NewRepository(wrappedDB)
		bookingRepository = booking.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		facilityRepository = facility.NewRepository(db)
		bookingRepository = booking.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// 7. Сервисы
	facilityService := facilitiesService.NewService(facilityRepository, buildingClient, log)
	bookingService := bookingsService.NewService(bookingRepository, facilityRepository, buildingClient, log)

	// 8. Юзкейсы
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, facilityRepository, buildingClient, txMgr, metricsCollector, log)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(bookingRepository, facilityRepository, buildingClient, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, facilityRepository, log)

	// 9. Обработчики
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingService, log)
	approveBooking := approveBookingHandler.NewHandler(transitionBookingUseCase, log)
	rejectBooking := rejectBookingHandler.NewHandler(transitionBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(transitionBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(transitionBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingService, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingService, log)
	getPendingBookings := getPendingBookingsHandler.NewHandler(bookingService, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createFacility := createFacilityHandler.NewHandler(facilityService, log)
	updateFacility := updateFacilityHandler.NewHandler(facilityService, log)
	getFacility := getFacilityHandler.NewHandler(facilityService, log)
	listFacilities := listFacilitiesHandler.NewHandler(facilityService, log)
	deleteFacility := deleteFacilityHandler.NewHandler(facilityService, log)

	// 10. Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint registered: %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты площадки на дату
	api.HandleFunc("/facilities/{facilityId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Карточка площадки
	api.HandleFunc("/buildings/{buildingId}/facilities/{facilityId}", getFacility.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуется X-User-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)                             // Создание бронирования
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)                     // Карточка бронирования
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPost)        // Подтверждение менеджером
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPost)          // Отклонение менеджером
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)          // Отмена автором
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)   // Переход статуса
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)             // Бронирования пользователя
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet) // Бронирования площадки
	protected.HandleFunc("/buildings/{buildingId}/bookings/pending", getPendingBookings.Handle).Methods(http.MethodGet) // Очередь на подтверждение

	// Площадки
	protected.HandleFunc("/buildings/{buildingId}/facilities", createFacility.Handle).Methods(http.MethodPost)   // Создание площадки
	protected.HandleFunc("/buildings/{buildingId}/facilities", listFacilities.Handle).Methods(http.MethodGet)    // Список площадок здания
	protected.HandleFunc("/buildings/{buildingId}/facilities/{facilityId}", updateFacility.Handle).Methods(http.MethodPut)    // Обновление площадки
	protected.HandleFunc("/buildings/{buildingId}/facilities/{facilityId}", deleteFacility.Handle).Methods(http.MethodDelete) // Деактивация площадки

	// 11. Фоновый воркер автозавершения
	var sweeper *worker.Sweeper
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if cfg.Worker.Enabled {
		sweeper = worker.NewSweeper(
			bookingRepository,
			metricsCollector,
			log,
			time.Duration(cfg.Worker.IntervalSeconds)*time.Second,
		)
		go sweeper.Start(workerCtx)
	}

	// 12. HTTP-сервер
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on port %d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: %v", err)
		}
	}()

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if sweeper != nil {
		sweeper.Stop()
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
