package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/adapters/out/postgres/discountrepo"
	"dispatch/internal/adapters/out/postgres/missionrepo"
	"dispatch/internal/adapters/out/postgres/requestrepo"
	"dispatch/internal/adapters/out/postgres/schedulerepo"
	"dispatch/internal/adapters/out/postgres/vehiclerepo"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)

	mq, err := rabbitmq.Connect(context.Background(), configs.RabbitMQURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mq.Close()

	publisher, err := rabbitmq.NewEventPublisher(mq, logger)
	if err != nil {
		log.Fatalf("Failed to create event publisher: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateSweepPendingCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:    goDotEnvVariable("HTTP_PORT"),
		DBHost:      goDotEnvVariable("DB_HOST"),
		DBPort:      goDotEnvVariable("DB_PORT"),
		DBUser:      goDotEnvVariable("DB_USER"),
		DBPassword:  goDotEnvVariable("DB_PASSWORD"),
		DBName:      goDotEnvVariable("DB_NAME"),
		DBSslMode:   goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL: goDotEnvVariable("RABBITMQ_URL"),
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

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&requestrepo.RequestDTO{},
		&missionrepo.MissionDTO{},
		&vehiclerepo.VehicleDTO{},
		&schedulerepo.WeeklyWindowDTO{},
		&schedulerepo.DayOverrideDTO{},
		&schedulerepo.RangeOverrideDTO{},
		&discountrepo.DiscountDTO{},
		&geo.CourierLocationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateAssignRequestCommandHandler(),
		app.CreateSweepPendingCommandHandler(),
		app.CreateStartMissionCommandHandler(),
		app.CreateCompleteMissionCommandHandler(),
		app.CreateCancelMissionCommandHandler(),
		app.CreateAddMissionNotesCommandHandler(),
		app.CreateQuotePriceQueryHandler(),
		app.CreateCheckCourierAvailabilityQueryHandler(),
		app.CreateFindAvailableCouriersQueryHandler(),
		app.CreateGetUnfinishedRequestsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
