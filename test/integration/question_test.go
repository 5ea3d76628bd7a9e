package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	handler "github.com/classpulse/api/internal/adapters/handler/http"
	"github.com/classpulse/api/internal/adapters/notifier/memory"
	repo "github.com/classpulse/api/internal/adapters/repository/postgres"
	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Bus         *memory.Bus
	Token       string
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("ALLOWED_EMAIL_DOMAIN", "bmsce.ac.in")
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	bus := memory.NewBus()

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
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, authRepo, fakeVerifier{})

	questionHandler := handler.NewQuestionHandler(questionSvc, exportSvc)
	responseHandler := handler.NewResponseHandler(responseSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	eventsHandler := handler.NewEventsHandler(bus)
	userHandler := handler.NewUserHandler(userSvc)
	authHandler := handler.NewAuthHandler(authSvc, "/", "", http.SameSiteLaxMode)

	router := handler.NewHandler(questionHandler, responseHandler, studentHandler, eventsHandler, authHandler, userHandler)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Bus:         bus,
		Token:       createUserAndToken(t, db),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.Bus.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) postQuestion(t *testing.T, payload map[string]interface{}) *http.Response {
	t.Helper()

	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, app.Server.URL+"/api/questions", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: app.Token})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) createQuestion(t *testing.T, payload map[string]interface{}) domain.Question {
	t.Helper()

	resp := app.postQuestion(t, payload)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var question domain.Question
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&question))
	return question
}

// TestQuestionFlow tests the basic lifecycle: Create Question -> Get Question -> List Questions
func TestQuestionFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	question := app.createQuestion(t, map[string]interface{}{
		"text":     "Have you completed registration?",
		"type":     "yes-no",
		"audience": "all",
	})
	assert.Equal(t, domain.QuestionTypeYesNo, question.Type)
	assert.Equal(t, domain.AudienceAll, question.Audience)
	assert.False(t, question.AllowAnonymous)

	// Fetch by id, as the /q/{id} share link does.
	resp, err := app.Client.Get(fmt.Sprintf("%s/api/questions/%s", app.Server.URL, question.ID))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched domain.Question
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, question.ID, fetched.ID)
	assert.Equal(t, question.Text, fetched.Text)
	assert.Empty(t, fetched.Responses)

	// Listing returns the snapshot, newest first.
	second := app.createQuestion(t, map[string]interface{}{
		"text":     "Do you need help with the assignment?",
		"type":     "yes-no",
		"audience": "all",
	})

	resp, err = app.Client.Get(app.Server.URL + "/api/questions")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []domain.Question
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, question.ID, listed[1].ID)
}

func TestCreateQuestionValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	cases := []map[string]interface{}{
		{"type": "yes-no", "audience": "all"},                        // missing text
		{"text": "Q", "type": "multiple-choice", "audience": "all"},  // unknown type
		{"text": "Q", "type": "yes-no", "audience": "teachers-only"}, // unknown audience
		{"text": "Q", "type": "yes-no"},                              // missing audience
	}

	for _, payload := range cases {
		resp := app.postQuestion(t, payload)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %v", payload)
	}
}

func TestCreateQuestionRequiresAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	body, _ := json.Marshal(map[string]interface{}{
		"text":     "Have you completed registration?",
		"type":     "yes-no",
		"audience": "all",
	})
	resp, err := app.Client.Post(app.Server.URL+"/api/questions", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetUnknownQuestion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/api/questions/1b671a64-40d5-491e-99b0-da01ff1f3341")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Client.Get(app.Server.URL + "/api/questions/not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportCSV(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	question := app.createQuestion(t, map[string]interface{}{
		"text":     "Have you completed registration?",
		"type":     "yes-no",
		"audience": "all",
	})

	submitBody, _ := json.Marshal(map[string]interface{}{
		"answer": "Yes",
		"email":  "aarav@bmsce.ac.in",
		"name":   "Aarav Kumar",
	})
	resp, err := app.Client.Post(
		fmt.Sprintf("%s/api/questions/%s/responses", app.Server.URL, question.ID),
		"application/json", bytes.NewReader(submitBody))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Client.Get(fmt.Sprintf("%s/api/questions/%s/export", app.Server.URL, question.ID))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	csv := buf.String()
	assert.Contains(t, csv, "Name,USN,Answer,Submitted At")
	assert.Contains(t, csv, "Aarav Kumar")
	assert.Contains(t, csv, "Yes")
}
