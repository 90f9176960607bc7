package main

import (
	"context"

	config "hotel-management-backend/config"
	"hotel-management-backend/db"
	"hotel-management-backend/middleware"
	"hotel-management-backend/notifications"
	"hotel-management-backend/scheduler"
	"hotel-management-backend/token"
	"hotel-management-backend/utils"
	"hotel-management-backend/websocket"

	// Repositories
	history_repositories "hotel-management-backend/history/repositories"
	reservations_repositories "hotel-management-backend/reservations/repositories"
	resources_repositories "hotel-management-backend/resources/repositories"
	staff_repositories "hotel-management-backend/staff/repositories"

	// Services
	reservations_services "hotel-management-backend/reservations/services"

	// Routes
	history_routes "hotel-management-backend/history/routes"
	reservation_routes "hotel-management-backend/reservations/routes"
	resource_routes "hotel-management-backend/resources/routes"
	staff_routes "hotel-management-backend/staff/routes"

	// bleve
	bleveControllers "hotel-management-backend/bleve/controllers"
	bleveRepositories "hotel-management-backend/bleve/repositories"
	bleveRoutes "hotel-management-backend/bleve/routes"
	bleveServices "hotel-management-backend/bleve/services"

	"encoding/gob"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Fatal("Error loading .env file", zap.Error(err))
	}
	gob.Register(uuid.UUID{})

	app := fiber.New()

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	database := config.ConfigureDatabase()
	port := config.GetEnv("PORT")
	ctx := context.Background()

	// Redis client for the query cache and refresh-token store
	redisClient := config.InitRedisServer(ctx)

	// Note: asynq.RedisClientOpt uses its own Redis client internally.
	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     config.GetEnvDefault("REDIS_ADDRESS", "localhost:6379"),
		Password: config.GetEnv("REDIS_PASSWORD"),
		DB:       0,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	tokenKey := config.GetEnv("TOKEN_SYMMETRIC_KEY")
	tokenMaker, err := token.NewPasetoMaker(tokenKey)
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	indexPath := config.GetEnvDefault("BLEVE_INDEX_PATH", "./bleve_data")

	// Initialize the mailer for booking confirmations
	notifications.InitializeMailer()

	// Notification worker consumes queued confirmation tasks
	go notifications.StartWorker(asynqRedisOpt)

	// ------ WebSocket Hub for the live reservation dashboard ------
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	bleveServiceRepo, bleveInterfaceRepo := bleveRepositories.NewSearchRepository(bleveIndexingService)
	reservationRepo := reservations_repositories.NewReservationRepository(database)
	occupantRepo := reservations_repositories.NewOccupantRepository(database)
	slotRepo := reservations_repositories.NewSlotRepository(database)
	resourceRepo := resources_repositories.NewResourceRepository(database)
	historyRepo := history_repositories.NewHistoryRepository(database)
	staffRepo := staff_repositories.NewStaffRepository(database)

	// Services
	policy := config.LoadBookingPolicy()
	txRunner := db.NewGormTxRunner(database, policy.TxAcquireWait, policy.TxMaxDuration)
	notifier := notifications.NewAsynqNotifier(asynqClient)
	queryCache := utils.NewQueryCache(redisClient)

	bookingService := reservations_services.NewBookingService(
		txRunner,
		reservationRepo,
		occupantRepo,
		slotRepo,
		resourceRepo,
		historyRepo,
		notifier,
		wsHub,
		queryCache,
		policy,
	)

	// Routes
	appCtx := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}
	staffGuard := middleware.ProtectedRoute(appCtx)
	publicLimiter := middleware.PublicRateLimiter()
	reservation_routes.ReservationInitRoutes(app, bookingService, reservationRepo, bleveInterfaceRepo, redisClient, database, staffGuard, publicLimiter)
	resource_routes.ResourceInitRoutes(app, resourceRepo, database, staffGuard)
	history_routes.HistoryInitRoutes(app, historyRepo, staffGuard)
	staff_routes.StaffInitRoutes(app, staffRepo, appCtx, staffGuard)

	// Bleve Routes
	bleveController := bleveControllers.NewSearchController(bleveServiceRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController, staffGuard)

	// ------ WebSocket Route for the live dashboard ------
	wsHandler := websocket.NewWsHandler(wsHub, tokenMaker)
	app.Get("/ws", wsHandler.HandleWebSocket)
	config.Logger.Info("WebSocket endpoint registered at /ws")

	// Recurring jobs: due check-in activation and overdue checkout scan
	bookingScheduler := scheduler.NewScheduler(bookingService, reservationRepo)
	if err := bookingScheduler.Start(); err != nil {
		config.Logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
