package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"cargolink/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		RedisAddr: goDotEnvVariable("REDIS_ADDR"),

		RatesBaseURL:    goDotEnvVariable("RATES_BASE_URL"),
		RatesAPIKey:     goDotEnvVariable("RATES_API_KEY"),
		DistanceBaseURL: goDotEnvVariable("DISTANCE_BASE_URL"),
		DistanceAPIKey:  goDotEnvVariable("DISTANCE_API_KEY"),
		PaymentBaseURL:  goDotEnvVariable("PAYMENT_BASE_URL"),
		PaymentAPIKey:   goDotEnvVariable("PAYMENT_API_KEY"),
		DocStoreBaseURL: goDotEnvVariable("DOCSTORE_BASE_URL"),
		DocStoreAPIKey:  goDotEnvVariable("DOCSTORE_API_KEY"),

		StorageFreeDays:  goDotEnvInt("STORAGE_FREE_DAYS"),
		StorageDailyRate: goDotEnvFloat("STORAGE_DAILY_RATE"),

		HouseCarrierCode:   goDotEnvVariable("HOUSE_CARRIER_CODE"),
		HouseCarrierName:   goDotEnvVariable("HOUSE_CARRIER_NAME"),
		HouseServiceLevel:  goDotEnvVariable("HOUSE_SERVICE_LEVEL"),
		HousePerPoundRate:  goDotEnvFloat("HOUSE_PER_POUND_RATE"),
		HouseMinimumCharge: goDotEnvFloat("HOUSE_MINIMUM_CHARGE"),
		HouseEstimatedDays: goDotEnvInt("HOUSE_ESTIMATED_DAYS"),

		ProcessorPercent: goDotEnvFloat("PROCESSOR_PERCENT"),
		ProcessorFixed:   goDotEnvFloat("PROCESSOR_FIXED"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt(key string) int {
	v, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s as int: %v", key, err)
	}
	return v
}

func goDotEnvFloat(key string) float64 {
	v, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Error parsing %s as float: %v", key, err)
	}
	return v
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
