package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	handlerHttp "github.com/tomokihara/snapfeed/internal/handler/http"
	redisclient "github.com/tomokihara/snapfeed/internal/infrastructure/cache"
	"github.com/tomokihara/snapfeed/internal/infrastructure/config"
	database "github.com/tomokihara/snapfeed/internal/infrastructure/database"
	"github.com/tomokihara/snapfeed/internal/infrastructure/jwt"
	"github.com/tomokihara/snapfeed/internal/infrastructure/logger"
	passwordservice "github.com/tomokihara/snapfeed/internal/infrastructure/password_service"
	randomgenerator "github.com/tomokihara/snapfeed/internal/infrastructure/random_generator"
	"github.com/tomokihara/snapfeed/internal/infrastructure/repository/mongodb"
	"github.com/tomokihara/snapfeed/internal/infrastructure/storage"
	"github.com/tomokihara/snapfeed/internal/infrastructure/store"
	"github.com/tomokihara/snapfeed/internal/infrastructure/uuidgen"
	"github.com/tomokihara/snapfeed/internal/infrastructure/validator"
	"github.com/tomokihara/snapfeed/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		log.Fatal("MONGODB_DB_NAME environment variable not set")
	}

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	// Initialize Gin router
	router := gin.Default()

	// Dependency Injection: Repositories
	db := mongoClient.Client.Database(dbName)
	userRepo := mongodb.NewUserRepository(db.Collection("users"))
	tokenRepo := mongodb.NewTokenRepository(db.Collection("tokens"))
	postRepo := mongodb.NewPostRepository(db)
	interactionRepo := mongodb.NewInteractionRepository(db)

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	appConfig := config.NewConfig()
	jwtManager := jwt.NewJWTManager(jwtSecret, appConfig.GetAccessTokenExpiry(), appConfig.GetRefreshTokenExpiry())
	jwtService := jwt.NewJWTService(jwtManager)
	appLogger := logger.NewStdLogger()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	randomGenerator := randomgenerator.NewRandomGenerator()

	// Object storage for post images
	imageStore, err := storage.NewImageStore(
		context.Background(),
		os.Getenv("S3_ENDPOINT"),
		os.Getenv("S3_ACCESS_KEY"),
		os.Getenv("S3_SECRET_KEY"),
		os.Getenv("S3_BUCKET"),
		os.Getenv("S3_PUBLIC_BASE_URL"),
		appConfig.GetUploadURLExpiry(),
		randomGenerator,
	)
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Dependency Injection: Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, tokenRepo, hasher, jwtService, appLogger, appConfig, appValidator, uuidGenerator)
	postUsecase := usecase.NewPostUsecase(postRepo, userRepo, interactionRepo, imageStore, uuidGenerator, appLogger)
	interactionUsecase := usecase.NewInteractionUsecase(interactionRepo, postRepo, userRepo, uuidGenerator, appLogger)

	// Optional Dependency Injection: Redis cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		rdb := redisclient.NewRedisFromURL(context.Background(), redisURL)
		defer redisclient.Close(rdb)
		feedCache := store.NewFeedCacheStore(rdb)
		postUsecase.SetFeedCache(feedCache)
	}

	// Setup API routes
	appRouter := handlerHttp.NewRouter(userUsecase, postUsecase, interactionUsecase)
	appRouter.SetupRoutes(router)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
