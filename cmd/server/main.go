package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	handler "github.com/classpulse/api/internal/adapters/handler/http"
	"github.com/classpulse/api/internal/adapters/notifier/memory"
	redisbus "github.com/classpulse/api/internal/adapters/notifier/redis"
	"github.com/classpulse/api/internal/adapters/oauth/google"
	repo "github.com/classpulse/api/internal/adapters/repository/postgres"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/classpulse/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	bus := newEventBus()

	questionRepo := repo.NewQuestionRepository(db)
	responseRepo := repo.NewResponseRepository(db)
	studentRepo := repo.NewStudentRepository(db)
	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)

	resolver := services.NewIdentityResolver(studentRepo)
	questionSvc := services.NewQuestionService(questionRepo, bus)
	responseSvc := services.NewResponseService(questionRepo, responseRepo, resolver, bus)
	studentSvc := services.NewStudentService(studentRepo)
	exportSvc := services.NewExportService(questionRepo, responseRepo, studentRepo)
	authSvc := services.NewAuthService(userRepo, authRepo, google.NewVerifier())
	userSvc := services.NewUserService(userRepo)

	questionHandler := handler.NewQuestionHandler(questionSvc, exportSvc)
	responseHandler := handler.NewResponseHandler(responseSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	eventsHandler := handler.NewEventsHandler(bus)
	authHandler := handler.NewAuthHandler(authSvc, os.Getenv("AUTH_REDIRECT_URL"), os.Getenv("COOKIE_DOMAIN"), stdhttp.SameSiteLaxMode)
	userHandler := handler.NewUserHandler(userSvc)

	router := handler.NewHandler(questionHandler, responseHandler, studentHandler, eventsHandler, authHandler, userHandler)
	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

// newEventBus picks the Redis bus when REDIS_URI is set, otherwise the
// in-process bus. Redis is required for multi-instance fan-out; a single
// node works fine without it.
func newEventBus() ports.EventBus {
	redisURI := os.Getenv("REDIS_URI")
	if redisURI == "" {
		log.Println("REDIS_URI not set, using in-process event bus")
		return memory.NewBus()
	}

	client := goredis.NewClient(&goredis.Options{Addr: redisURI})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	return redisbus.NewBus(client)
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
