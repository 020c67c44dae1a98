package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/classtrack-dev/classtrack/backend/internal/config"
	"github.com/classtrack-dev/classtrack/backend/internal/domain"
	"github.com/classtrack-dev/classtrack/backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// memStore is an in-memory repository.Store used by the handler tests in
// place of PostgreSQL. Reads hand out copies so a handler mutating a
// record without calling Update cannot leak into the "stored" state.
type memStore struct {
	mu               sync.Mutex
	users            map[int64]*domain.User
	assignments      map[int64]*domain.Assignment
	nextUserID       int64
	nextAssignmentID int64
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[int64]*domain.User),
		assignments: make(map[int64]*domain.Assignment),
	}
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func copyAssignment(a *domain.Assignment) *domain.Assignment {
	c := *a
	if a.MarksObtained != nil {
		marks := *a.MarksObtained
		c.MarksObtained = &marks
	}
	return &c
}

func (s *memStore) CreateUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now()
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *memStore) GetUserByID(id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return copyUser(user), nil
}

func (s *memStore) GetUserByUsername(username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memStore) GetAllUsers() ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, copyUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *memStore) UpdateUserPassword(id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (s *memStore) CreateAssignment(assignment *domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAssignmentID++
	assignment.ID = s.nextAssignmentID
	assignment.CreatedAt = time.Now()
	s.assignments[assignment.ID] = copyAssignment(assignment)
	return nil
}

func (s *memStore) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignment, ok := s.assignments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return copyAssignment(assignment), nil
}

func (s *memStore) GetAllAssignments(orderColumn string, desc bool) ([]*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignments := make([]*domain.Assignment, 0, len(s.assignments))
	for _, assignment := range s.assignments {
		assignments = append(assignments, copyAssignment(assignment))
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })

	switch orderColumn {
	case "due_date":
		sort.SliceStable(assignments, func(i, j int) bool {
			if desc {
				return assignments[i].DueDate.After(assignments[j].DueDate)
			}
			return assignments[i].DueDate.Before(assignments[j].DueDate)
		})
	case "total_score":
		sort.SliceStable(assignments, func(i, j int) bool {
			if desc {
				return assignments[i].TotalScore > assignments[j].TotalScore
			}
			return assignments[i].TotalScore < assignments[j].TotalScore
		})
	}

	return assignments, nil
}

func (s *memStore) GetAssignmentsByUserID(userID int64) ([]*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignments := make([]*domain.Assignment, 0)
	for _, assignment := range s.assignments {
		if assignment.UserID == userID {
			assignments = append(assignments, copyAssignment(assignment))
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (s *memStore) UpdateAssignment(assignment *domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assignments[assignment.ID]; ok {
		s.assignments[assignment.ID] = copyAssignment(assignment)
	}
	return nil
}

func (s *memStore) DeleteAssignment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.assignments, id)
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	messages []domain.MailMessage
}

func (m *fakeMailer) Publish(_ context.Context, msg domain.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

type fakeOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]string)}
}

func (s *fakeOTPStore) Set(_ context.Context, key string, otp string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[key] = otp
	return nil
}

func (s *fakeOTPStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	otp, ok := s.codes[key]
	if !ok {
		return "", sql.ErrNoRows
	}
	return otp, nil
}

func (s *fakeOTPStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, key)
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *memStore, *fakeMailer, *fakeOTPStore) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.RabbitMQ.PublishTimeout = 1
	cfg.Redis.OperationTimeout = 1
	cfg.OTP.Expiration = 900

	store := newMemStore()
	mailer := &fakeMailer{}
	otps := newFakeOTPStore()

	h, err := NewHandler(cfg, store, mailer, otps)
	if err != nil {
		t.Fatalf("newTestHandler() failed: %v", err)
	}
	h.RegisterRoutes()

	return h, store, mailer, otps
}

func createUser(t *testing.T, store *memStore, username, password string, role domain.Role, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username: username,
		Role:     role,
		Email:    email,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return user
}

func createAssignment(t *testing.T, store *memStore, title, subject string, totalScore float64, dueDate time.Time, userID int64) *domain.Assignment {
	t.Helper()

	assignment := &domain.Assignment{
		Title:      title,
		Subject:    subject,
		TotalScore: totalScore,
		DueDate:    dueDate,
		UserID:     userID,
	}
	if err := store.CreateAssignment(assignment); err != nil {
		t.Fatalf("createAssignment() failed: %v", err)
	}
	return assignment
}

func getToken(t *testing.T, h *Handler, user *domain.User) string {
	t.Helper()

	token, err := h.issueToken(user)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func getTokenWithSecret(t *testing.T, userID int64, secret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	ss, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("getTokenWithSecret() failed: %v", err)
	}
	return ss
}

func getExpiredToken(t *testing.T, h *Handler, user *domain.User) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		t.Fatalf("getExpiredToken() failed: %v", err)
	}
	return ss
}

func doRequest(t *testing.T, h *Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("doRequest() failed: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decodeBody() failed: %v", err)
	}
	return body
}
