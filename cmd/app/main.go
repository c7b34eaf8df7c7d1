package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/promotionrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/adapters/out/postgres/voucherrepo"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	bandTable := mustLoadBandTable(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, bandTable, logger)

	jobManager := jobs.NewJobManager(app.CreateAutoAssignShipperCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		OrderAutoComplete: goDotEnvVariable("ORDER_AUTO_COMPLETE") == "true",
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// mustConnectDB opens the database and runs migrations. TranslateError is
// required: the repositories map gorm.ErrDuplicatedKey onto domain
// conflicts, which only works with the translating driver.
func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&promotionrepo.PromotionDTO{},
		&promotionrepo.TargetDTO{},
		&promotionrepo.UsageDTO{},
		&voucherrepo.VoucherDTO{},
		&voucherrepo.IssueDTO{},
		&voucherrepo.UsageDTO{},
		&deliveryrepo.AssignmentDTO{},
		&deliveryrepo.ShipperDTO{},
		&customerrepo.CustomerDTO{},
		&customerrepo.BandDTO{},
		&stockrepo.VariantDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return gormDB
}

// mustLoadBandTable reads the ranking reference data once at startup. An
// empty or inconsistent band table is a configuration fault, not a runtime
// condition, so it is fatal.
func mustLoadBandTable(gormDB *gorm.DB) customer.Table {
	bands, err := customerrepo.NewGormRankingRepository(gormDB).GetAllBands(context.Background())
	if err != nil {
		log.Fatalf("Failed to load ranking bands: %v", err)
	}

	table, err := customer.NewTable(bands)
	if err != nil {
		log.Fatalf("Invalid ranking band table: %v", err)
	}
	return table
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateAssignShipperCommandHandler(),
		app.CreateStartDeliveryCommandHandler(),
		app.CreateCompleteDeliveryCommandHandler(),
		app.CreateFailDeliveryCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateResolvePricesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
