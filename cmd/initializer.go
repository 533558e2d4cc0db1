package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"gruzBack/internal/config"
	"gruzBack/internal/handlers"
	"gruzBack/internal/repositories"
	services "gruzBack/internal/services"
	"gruzBack/utils"
)

type application struct {
	errorLog         *log.Logger
	infoLog          *log.Logger
	signingKey       string
	userHandler      *handlers.UserHandler
	userRepo         *repositories.UserRepository
	orderHandler     *handlers.OrderHandler
	orderRepo        *repositories.OrderRepository
	offerHandler     *handlers.OfferHandler
	offerRepo        *repositories.OfferRepository
	equipmentHandler *handlers.EquipmentHandler
	equipmentRepo    *repositories.EquipmentRepository
	reviewHandler    *handlers.ReviewHandler
	reviewRepo       *repositories.ReviewRepository
	categoryHandler  *handlers.CategoryHandler
	categoryRepo     *repositories.CategoryRepository
	locationHandler  *handlers.LocationHandler
	locationRepo     *repositories.LocationRepository
	fcmHandler       *handlers.FCMHandler
	wsManager        *WebSocketManager
	db               *sql.DB
}

func initializeApp(db *sql.DB, cfg config.Config, redisClient *redis.Client, fcmClient *messaging.Client, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	orderRepo := repositories.OrderRepository{DB: db}
	offerRepo := repositories.OfferRepository{DB: db}
	equipmentRepo := repositories.EquipmentRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}
	categoryRepo := repositories.CategoryRepository{DB: db}
	locationRepo := repositories.LocationRepository{DB: db}

	if err := categoryRepo.SeedDefaultCategories(context.Background()); err != nil {
		errorLog.Printf("category seed failed: %v", err)
	}

	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	wsManager := NewWebSocketManager()
	fcmHandler := handlers.NewFCMHandler(fcmClient, db)
	notifier := &offerNotifier{ws: wsManager, fcm: fcmHandler, infoLog: infoLog}

	// Services
	userService := &services.UserService{UserRepo: &userRepo, TokenManager: tokenManager}
	orderService := &services.OrderService{OrderRepo: &orderRepo, UserRepo: &userRepo}
	offerService := &services.OfferService{
		OfferRepo:    &offerRepo,
		OrderRepo:    &orderRepo,
		UserRepo:     &userRepo,
		LocationRepo: &locationRepo,
		Notifier:     notifier,
	}
	equipmentService := &services.EquipmentService{EquipmentRepo: &equipmentRepo, UserRepo: &userRepo}
	reviewService := &services.ReviewService{ReviewRepo: &reviewRepo, OrderRepo: &orderRepo, UserRepo: &userRepo}
	categoryService := &services.CategoryService{CategoryRepo: &categoryRepo, Cache: redisClient}
	locationService := &services.LocationService{LocationRepo: &locationRepo}

	storage := utils.NewS3Storage(utils.S3Config{
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
	})

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	orderHandler := &handlers.OrderHandler{Service: orderService}
	offerHandler := &handlers.OfferHandler{Service: offerService}
	equipmentHandler := &handlers.EquipmentHandler{Service: equipmentService, Storage: storage}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService}
	categoryHandler := &handlers.CategoryHandler{Service: categoryService}
	locationHandler := &handlers.LocationHandler{Service: locationService}

	return &application{
		errorLog:         errorLog,
		infoLog:          infoLog,
		signingKey:       cfg.JWT.SigningKey,
		userHandler:      userHandler,
		userRepo:         &userRepo,
		orderHandler:     orderHandler,
		orderRepo:        &orderRepo,
		offerHandler:     offerHandler,
		offerRepo:        &offerRepo,
		equipmentHandler: equipmentHandler,
		equipmentRepo:    &equipmentRepo,
		reviewHandler:    reviewHandler,
		reviewRepo:       &reviewRepo,
		categoryHandler:  categoryHandler,
		categoryRepo:     &categoryRepo,
		locationHandler:  locationHandler,
		locationRepo:     &locationRepo,
		fcmHandler:       fcmHandler,
		wsManager:        wsManager,
		db:               db,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
