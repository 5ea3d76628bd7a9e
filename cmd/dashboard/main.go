package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	redisbus "github.com/classpulse/api/internal/adapters/notifier/redis"
	repo "github.com/classpulse/api/internal/adapters/repository/postgres"
	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/classpulse/api/internal/core/services"
	"github.com/google/uuid"
)

// Terminal dashboard watcher: bootstraps a session from the current
// snapshot, then merges live events from the bus and prints tallies.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_PORT"), os.Getenv("POSTGRES_DB"))
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	redisURI := os.Getenv("REDIS_URI")
	if redisURI == "" {
		log.Fatal("REDIS_URI is required for the dashboard watcher")
	}
	client := goredis.NewClient(&goredis.Options{Addr: redisURI})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	bus := redisbus.NewBus(client)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := services.NewDashboardSession()

	// Subscribe before the snapshot fetch: the id-keyed merge makes any
	// event that races the snapshot a harmless no-op.
	questionEvents, cancelQuestions, err := bus.Subscribe(ctx, ports.TopicQuestions)
	if err != nil {
		log.Fatalf("Failed to subscribe to questions: %v", err)
	}
	defer cancelQuestions()

	questionRepo := repo.NewQuestionRepository(db)
	snapshot, err := questionRepo.GetAll(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch snapshot: %v", err)
	}
	session.Bootstrap(snapshot)

	responseEvents := make(chan ports.Event)
	for _, question := range snapshot {
		watchResponses(ctx, bus, question.ID, responseEvents)
	}

	log.Printf("Watching %d questions", len(snapshot))
	printTallies(session)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-questionEvents:
			if !ok {
				return
			}
			var question domain.Question
			if err := json.Unmarshal(event.Payload, &question); err != nil {
				log.Printf("Bad question payload: %v", err)
				continue
			}
			if session.ApplyQuestion(question) {
				watchResponses(ctx, bus, question.ID, responseEvents)
				log.Printf("New question: %s", question.Text)
				printTallies(session)
			}
		case event := <-responseEvents:
			var response domain.Response
			if err := json.Unmarshal(event.Payload, &response); err != nil {
				log.Printf("Bad response payload: %v", err)
				continue
			}
			if session.ApplyResponse(response) {
				printTallies(session)
			}
		}
	}
}

func watchResponses(ctx context.Context, bus ports.EventBus, questionID uuid.UUID, out chan<- ports.Event) {
	events, _, err := bus.Subscribe(ctx, ports.ResponseTopic(questionID))
	if err != nil {
		log.Printf("Failed to subscribe to responses for %s: %v", questionID, err)
		return
	}
	go func() {
		for event := range events {
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
}

func printTallies(session *services.DashboardSession) {
	for _, question := range session.Questions() {
		tally, ok := session.Tally(question.ID)
		if !ok {
			continue
		}
		if question.Type == domain.QuestionTypeYesNo {
			fmt.Printf("  %-50.50s  %d Yes, %d No\n", question.Text, tally.Yes, tally.No)
		} else {
			fmt.Printf("  %-50.50s  %d responses\n", question.Text, tally.Total)
		}
	}
}
