package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"nexus/cmd"
	httpadapter "nexus/internal/adapters/in/http"
	"nexus/internal/adapters/out/postgres/driverrepo"
	"nexus/internal/adapters/out/postgres/productrepo"
	"nexus/internal/adapters/out/postgres/shipmentrepo"
	"nexus/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db := connectDB(configs)

	app := cmd.NewCompositionRoot(configs, db)

	jobManager := jobs.NewJobManager(
		app.CreateAssignShipmentsCommandHandler(),
		configs.DispatchSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:        goDotEnvVariable("KAFKA_HOST"),
		KafkaMapTopic:    goDotEnvVariable("KAFKA_MAP_TOPIC"),
		OsrmBaseURL:      goDotEnvVariable("OSRM_BASE_URL"),
		ClosenessKm:      floatEnvVariable("DISPATCH_CLOSENESS_KM", 5.0),
		StrategyTimeout:  durationEnvVariable("DISPATCH_STRATEGY_TIMEOUT", 2*time.Second),
		DispatchSchedule: defaultEnvVariable("DISPATCH_SCHEDULE", "*/5 * * * * *"),
		WarehouseAddress: defaultEnvVariable("WAREHOUSE_ADDRESS", "Gudang Pusat (Nexus One)"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func defaultEnvVariable(key, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func floatEnvVariable(key string, fallback float64) float64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&productrepo.ProductDTO{},
		&driverrepo.DriverDTO{},
		&shipmentrepo.ShipmentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateReceiveStockCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateAssignShipmentsCommandHandler(),
		app.CreateStartTransitCommandHandler(),
		app.CreateCompleteDeliveryCommandHandler(),
		app.CreateRegisterDriverCommandHandler(),
		app.CreateSetDriverOfflineCommandHandler(),
		app.CreateResetOperationsCommandHandler(),
		app.CreateGetInventoryQueryHandler(),
		app.CreateGetFleetQueryHandler(),
		app.CreateGetActiveShipmentsQueryHandler(),
		app.CreateGetDriverRouteQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
