package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/config"
	"github.com/Adilet2201/Wellness_Tracker/internal/database"
	"github.com/Adilet2201/Wellness_Tracker/internal/handlers"
	"github.com/Adilet2201/Wellness_Tracker/internal/jobs"
	"github.com/Adilet2201/Wellness_Tracker/internal/repository"
	cronjobs "github.com/Adilet2201/Wellness_Tracker/internal/scheduler"
	"github.com/Adilet2201/Wellness_Tracker/internal/services"
	"github.com/Adilet2201/Wellness_Tracker/pkg/logger"
	"github.com/Adilet2201/Wellness_Tracker/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Index creation error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)

	// --- Services ---
	pointsService := services.NewPointsService(userRepo)
	userService := services.NewUserService(userRepo, pointsService)
	habitService := services.NewHabitService(habitRepo, pointsService)
	workoutService := services.NewWorkoutService(workoutRepo, pointsService)
	challengeService := services.NewChallengeService(challengeRepo, pointsService)
	leaderboardService := services.NewLeaderboardService(userRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	habitHandler := handlers.NewHabitHandler(habitService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	// Public auth routes
	api.HandleFunc("/auth/signup", userHandler.SignupHandler).Methods("POST")
	api.HandleFunc("/auth/login", userHandler.LoginHandler).Methods("POST")

	// Protected auth routes
	protectedAuth := api.PathPrefix("/auth").Subrouter()
	protectedAuth.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAuth.HandleFunc("/profile", userHandler.GetProfileHandler).Methods("GET")
	protectedAuth.HandleFunc("/profile", userHandler.UpdateProfileHandler).Methods("PUT")
	protectedAuth.HandleFunc("/reset-points", userHandler.ResetPointsHandler).Methods("POST")

	// Habit routes
	habitRoutes := api.PathPrefix("/habits").Subrouter()
	habitRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	habitRoutes.HandleFunc("", habitHandler.GetHabitsHandler).Methods("GET")
	habitRoutes.HandleFunc("", habitHandler.CreateHabitHandler).Methods("POST")
	habitRoutes.HandleFunc("/streak", habitHandler.GetLongestStreakHandler).Methods("GET")
	habitRoutes.HandleFunc("/logs", habitHandler.GetLogsHandler).Methods("GET")
	habitRoutes.HandleFunc("/{id}", habitHandler.UpdateHabitHandler).Methods("PUT")
	habitRoutes.HandleFunc("/{id}", habitHandler.DeleteHabitHandler).Methods("DELETE")
	habitRoutes.HandleFunc("/{id}/log", habitHandler.ToggleCompletionHandler).Methods("POST")

	// Workout routes
	workoutRoutes := api.PathPrefix("/workouts").Subrouter()
	workoutRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	workoutRoutes.HandleFunc("", workoutHandler.GetWorkoutsHandler).Methods("GET")
	workoutRoutes.HandleFunc("", workoutHandler.CreateWorkoutHandler).Methods("POST")
	workoutRoutes.HandleFunc("/log", workoutHandler.LogWorkoutHandler).Methods("POST")
	workoutRoutes.HandleFunc("/logs", workoutHandler.GetWorkoutLogsHandler).Methods("GET")

	// Challenge routes
	challengeRoutes := api.PathPrefix("/challenges").Subrouter()
	challengeRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	challengeRoutes.HandleFunc("", challengeHandler.GetChallengesHandler).Methods("GET")
	challengeRoutes.HandleFunc("", challengeHandler.CreateChallengeHandler).Methods("POST")
	challengeRoutes.HandleFunc("/my", challengeHandler.GetMyChallengesHandler).Methods("GET")
	challengeRoutes.HandleFunc("/{id}/join", challengeHandler.JoinChallengeHandler).Methods("POST")
	challengeRoutes.HandleFunc("/{id}/progress", challengeHandler.UpdateProgressHandler).Methods("PUT")

	// Leaderboard routes
	leaderboardRoutes := api.PathPrefix("/leaderboard").Subrouter()
	leaderboardRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	leaderboardRoutes.HandleFunc("", leaderboardHandler.GetLeaderboardHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background sweep for expired challenges
	sweeper := jobs.NewChallengeExpirySweeper(challengeService)
	cronjobs.StartChallengeCronJobs(sweeper)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
