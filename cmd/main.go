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

	cancelEditorHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_editor"
	createCalendarViewHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_calendar_view"
	exportCalendarHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/export_calendar"
	getCalendarViewHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_calendar_view"
	getDateOverrideHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_date_override"
	getWeeklyPatternHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_weekly_pattern"
	openEditorHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/open_editor"
	replaceWeeklyPatternHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/replace_weekly_pattern"
	saveEditorHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/save_editor"
	setDateOverrideHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/set_date_override"
	updateEditorHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_editor"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	availabilityServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/availabilityservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	scheduleService "github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/views"
	editAvailabilityUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/edit_availability"
	exportCalendarUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/export_calendar"
	getCalendarUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

// availabilityBackend хранилище недельного расписания и переопределений дат
// Реализуется локальным сервисом или HTTP клиентом удалённого экземпляра
type availabilityBackend interface {
	GetWeeklyPattern(ctx context.Context) ([]domain.WeeklyRule, error)
	ReplaceWeeklyPattern(ctx context.Context, weekday domain.Weekday, ranges []domain.TimeRange) ([]domain.WeeklyRule, error)
	GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error)
	SetDateOverride(ctx context.Context, date time.Time, ranges []domain.TimeRange) error
}

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

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	location, _ := cfg.Calendar.Location()
	defaultRange, _ := cfg.Calendar.DefaultRange()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Бэкенд доступности: удалённый экземпляр или собственное хранилище
	var (
		backend  availabilityBackend
		localSvc *scheduleService.Service
	)

	if cfg.AvailabilityService.Remote() {
		backend = availabilityServiceClient.NewClient(
			cfg.AvailabilityService.URL,
			time.Duration(cfg.AvailabilityService.Timeout)*time.Second,
			cfg.AvailabilityService.RPS,
			cfg.AvailabilityService.Burst,
			cfg.AvailabilityService.OperatorID,
			log,
		)
		log.Info("Remote availability backend initialized (url=%s timeout=%ds rps=%.1f)",
			cfg.AvailabilityService.URL, cfg.AvailabilityService.Timeout, cfg.AvailabilityService.RPS)
	} else {
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

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		localSvc = scheduleService.NewService(
			scheduleRepo.NewRepository(wrappedDB),
			txmanager.NewTransactionManager(wrappedDB),
			log,
		)
		backend = localSvc
	}

	// Ядро календаря
	prefetcher := availability.NewPrefetcher(backend, cfg.Calendar.PrefetchConcurrency, metricsCollector, log)
	registry := views.NewRegistry(time.Duration(cfg.Calendar.ViewTTL)*time.Second, metricsCollector, log)
	if err := registry.Start(cfg.Calendar.JanitorCron); err != nil {
		log.Fatal("Failed to start view janitor: %v", err)
	}
	log.Info("Calendar views janitor started (cron=%q, ttl=%ds)", cfg.Calendar.JanitorCron, cfg.Calendar.ViewTTL)

	// Инициализируем use cases
	getCalendarUseCase := getCalendarUC.NewUseCase(
		backend,
		prefetcher,
		registry,
		location,
		cfg.Calendar.MaxMonths,
		log,
	)
	editAvailabilityUseCase := editAvailabilityUC.NewUseCase(
		backend,
		registry,
		defaultRange,
		log,
	)
	exportCalendarUseCase := exportCalendarUC.NewUseCase(
		backend,
		prefetcher,
		location,
		log,
	)

	// Инициализируем handlers
	createCalendarView := createCalendarViewHandler.NewHandler(getCalendarUseCase, log)
	getCalendarView := getCalendarViewHandler.NewHandler(getCalendarUseCase, log)
	openEditor := openEditorHandler.NewHandler(editAvailabilityUseCase, log)
	updateEditor := updateEditorHandler.NewHandler(editAvailabilityUseCase, log)
	saveEditor := saveEditorHandler.NewHandler(editAvailabilityUseCase, log)
	cancelEditor := cancelEditorHandler.NewHandler(editAvailabilityUseCase, log)
	exportCalendar := exportCalendarHandler.NewHandler(exportCalendarUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Выгрузка рабочих часов в iCalendar
	api.HandleFunc("/calendar/export.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Хранилище доступности (только для собственного хранилища) ---
	if localSvc != nil {
		getWeeklyPattern := getWeeklyPatternHandler.NewHandler(localSvc, log)
		replaceWeeklyPattern := replaceWeeklyPatternHandler.NewHandler(localSvc, log)
		getDateOverride := getDateOverrideHandler.NewHandler(localSvc, log)
		setDateOverride := setDateOverrideHandler.NewHandler(localSvc, log)

		api.HandleFunc("/availability/weekly", getWeeklyPattern.Handle).Methods(http.MethodGet)
		api.HandleFunc("/availability/overrides/{date}", getDateOverride.Handle).Methods(http.MethodGet)

		protected.HandleFunc("/availability/weekly/{weekday}", replaceWeeklyPattern.Handle).Methods(http.MethodPut)
		protected.HandleFunc("/availability/overrides/{date}", setDateOverride.Handle).Methods(http.MethodPut)
	}

	// --- Представления календаря ---
	protected.HandleFunc("/calendar/views", createCalendarView.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendar/views/{viewId}", getCalendarView.Handle).Methods(http.MethodGet)

	// --- Редактор рабочих часов ---
	protected.HandleFunc("/calendar/views/{viewId}/editor", openEditor.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendar/views/{viewId}/editor/{sessionId}", updateEditor.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/calendar/views/{viewId}/editor/{sessionId}/save", saveEditor.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendar/views/{viewId}/editor/{sessionId}", cancelEditor.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	registry.Stop()
	log.Info("Calendar views janitor stopped")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
