package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"ineed/cmd"
	httpadapter "ineed/internal/adapters/in/http"
	"ineed/internal/adapters/out/postgres/conversationrepo"
	"ineed/internal/adapters/out/postgres/notificationrepo"
	"ineed/internal/adapters/out/postgres/offerrepo"
	"ineed/internal/adapters/out/postgres/orderrepo"
	"ineed/internal/adapters/out/postgres/requestrepo"
	"ineed/internal/adapters/out/postgres/reviewrepo"
	"ineed/internal/adapters/out/postgres/userrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db := connectDB(configs)
	migrateDB(db)

	root := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := root.JobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		TxTimeout:  txTimeout(),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// txTimeout reads TX_TIMEOUT_SECONDS, defaulting to 5 seconds.
func txTimeout() time.Duration {
	raw := goDotEnvVariable("TX_TIMEOUT_SECONDS")
	if raw == "" {
		return 5 * time.Second
	}

	var seconds int
	if _, err := fmt.Sscanf(raw, "%d", &seconds); err != nil || seconds <= 0 {
		log.Fatalf("Invalid TX_TIMEOUT_SECONDS: %q", raw)
	}
	return time.Duration(seconds) * time.Second
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns the unique index violation on reviews into
	// gorm.ErrDuplicatedKey, which the review repository relies on.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func migrateDB(db *gorm.DB) {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
		log.Fatalf("Failed to enable postgis: %v", err)
	}

	// requests carries a geography column AutoMigrate cannot create.
	if err := db.Exec(requestrepo.Schema).Error; err != nil {
		log.Fatalf("Failed to migrate requests table: %v", err)
	}

	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&offerrepo.OfferDTO{},
		&conversationrepo.ConversationDTO{},
		&conversationrepo.ParticipantDTO{},
		&conversationrepo.MessageDTO{},
		&reviewrepo.ReviewDTO{},
		&userrepo.UserDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	server := httpadapter.NewServer(
		root.CreateCreateRequestCommandHandler(),
		root.CreateUpdateRequestCommandHandler(),
		root.CreateDeactivateRequestCommandHandler(),
		root.CreateMakeOfferCommandHandler(),
		root.CreateAcceptOfferCommandHandler(),
		root.CreateCompleteOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateSubmitReviewCommandHandler(),
		root.CreatePostMessageCommandHandler(),
		root.CreateMarkNotificationReadCommandHandler(),
		root.CreateListRequestsQueryHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateListNotificationsQueryHandler(),
		root.CreateListMessagesQueryHandler(),
	)
	server.RegisterRoutes(e)
	e.GET("/ws", root.WSHandler().Serve)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
