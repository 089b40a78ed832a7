package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gorilla/mux"

	"github.com/tair/inventory-ledger/internal/user/domain"
)

type mockUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*domain.User), nextID: 1}
}

func (m *mockUserRepo) Create(user *domain.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(id uint) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("record not found")
}

// Shared across tests: NewUserHandler registers prometheus collectors,
// which must happen at most once per process.
var (
	testRepo    = newMockUserRepo()
	testHandler = NewUserHandler(testRepo)
)

func TestRegisterRoutes_ServedSurface(t *testing.T) {
	router := mux.NewRouter()
	testHandler.RegisterRoutes(router)

	var got []string
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if path, err := route.GetPathTemplate(); err == nil {
			got = append(got, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	sort.Strings(got)
	want := []string{"/api/users/me", "/auth/login", "/auth/register"}
	if len(got) != len(want) {
		t.Fatalf("routes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("routes = %v, want %v", got, want)
		}
	}
}

func TestRegisterAndLogin(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	testHandler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	var registered struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &registered); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if registered.Token == "" {
		t.Fatal("expected a token on registration")
	}
	if registered.User.Role != "staff" {
		t.Fatalf("role = %q, want staff by default", registered.User.Role)
	}

	// Wrong password is rejected
	body, _ = json.Marshal(map[string]string{"email": "ada@example.com", "password": "wrong"})
	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	testHandler.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("login with wrong password status = %d", rec.Code)
	}

	// Correct password succeeds
	body, _ = json.Marshal(map[string]string{"email": "ada@example.com", "password": "secret123"})
	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	testHandler.Login(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestGetProfile(t *testing.T) {
	user := &domain.User{Name: "Grace", Email: "grace@example.com", Password: "x", Role: "manager"}
	if err := testRepo.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, user.ID))
	rec := httptest.NewRecorder()
	testHandler.GetProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if got.Email != "grace@example.com" {
		t.Fatalf("email = %q", got.Email)
	}

	// Missing principal in context is unauthorized
	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec = httptest.NewRecorder()
	testHandler.GetProfile(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("profile without identity status = %d", rec.Code)
	}
}
