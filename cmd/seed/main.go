package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	repo "github.com/classpulse/api/internal/adapters/repository/postgres"
	"github.com/classpulse/api/internal/core/domain"
	"github.com/google/uuid"
)

var rosterNames = []string{
	"Aarav Kumar", "Vivaan Sharma", "Aditya Patel", "Vihaan Singh",
	"Arjun Reddy", "Sai Verma", "Ayaan Khan", "Krishna Rao",
	"Ishaan Nair", "Shaurya Gupta", "Atharv Joshi", "Advik Desai",
	"Reyansh Mehta", "Aadhya Iyer", "Ananya Menon", "Diya Malhotra",
	"Ira Kapoor", "Saanvi Agarwal", "Navya Chopra", "Pari Jain",
	"Kavya Bhat", "Myra Shah", "Aanya Pandey", "Sara Kulkarni",
	"Kiara Shetty", "Riya Deshpande", "Anvi Pillai", "Aarohi Saxena",
	"Ishita Varma", "Advika Rajan", "Priya Subramanian", "Neha Krishnan",
	"Rohan Mishra", "Karan Thakur", "Arnav Banerjee", "Dhruv Ghosh",
	"Kabir Sen", "Yash Bose", "Vedant Chatterjee", "Aryan Das",
	"Sahil Mukherjee", "Harsh Roy", "Dev Bhattacharya", "Tanvi Jha",
	"Shreya Yadav", "Pooja Singh", "Simran Kaur", "Anjali Rajput",
	"Meera Chaudhary", "Ritu Bhardwaj",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbHost := os.Getenv("POSTGRES_HOST")
	dbPort := os.Getenv("POSTGRES_PORT")
	dbUser := os.Getenv("POSTGRES_USER")
	dbPass := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	studentRepo := repo.NewStudentRepository(db)
	questionRepo := repo.NewQuestionRepository(db)
	responseRepo := repo.NewResponseRepository(db)

	log.Println("Seeding roster...")
	students := make([]*domain.Student, 0, len(rosterNames))
	for i, name := range rosterNames {
		student := &domain.Student{
			ID:      uuid.New(),
			Name:    name,
			USN:     fmt.Sprintf("BT2024%03d", i+1),
			Section: "A",
		}
		if err := studentRepo.Create(ctx, student); err != nil {
			log.Fatalf("Failed to create student %s: %v", name, err)
		}
		students = append(students, student)
	}
	log.Printf("Created %d students", len(students))

	log.Println("Seeding demo questions...")
	questions := []*domain.Question{
		{
			ID:       uuid.New(),
			Text:     "Have you completed registration?",
			Type:     domain.QuestionTypeYesNo,
			Audience: domain.AudienceAll,
		},
		{
			ID:             uuid.New(),
			Text:           "Do you need help with the assignment?",
			Type:           domain.QuestionTypeYesNo,
			Audience:       domain.AudienceAll,
			AllowAnonymous: true,
		},
		{
			ID:       uuid.New(),
			Text:     "What topics would you like to cover in the next session?",
			Type:     domain.QuestionTypeShortAnswer,
			Audience: domain.AudienceRoster,
		},
	}
	for _, question := range questions {
		question.CreatedAt = time.Now()
		if err := questionRepo.Save(ctx, question); err != nil {
			log.Fatalf("Failed to create question: %v", err)
		}
	}

	log.Println("Seeding demo responses...")
	demoResponses := []*domain.Response{
		rosterResponse(questions[0].ID, "Yes", students[0]),
		rosterResponse(questions[0].ID, "Yes", students[1]),
		rosterResponse(questions[0].ID, "No", students[2]),
		{ID: uuid.New(), QuestionID: questions[1].ID, Answer: "Yes"},
		{ID: uuid.New(), QuestionID: questions[1].ID, Answer: "No"},
		rosterResponse(questions[2].ID, "Machine Learning and AI fundamentals", students[5]),
	}
	for _, response := range demoResponses {
		if err := responseRepo.Save(ctx, response); err != nil {
			log.Fatalf("Failed to create response: %v", err)
		}
	}

	log.Printf("Seed completed: %d students, %d questions, %d responses",
		len(students), len(questions), len(demoResponses))
}

func rosterResponse(questionID uuid.UUID, answer string, student *domain.Student) *domain.Response {
	key := student.ID.String()
	return &domain.Response{
		ID:           uuid.New(),
		QuestionID:   questionID,
		Answer:       answer,
		SubmitterKey: &key,
		DisplayName:  student.Name,
	}
}
