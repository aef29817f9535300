package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"userhub/internal/config"
	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/internal/token"
	"userhub/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserRepo is an in-memory UserRepository with the same soft-delete
// visibility rules as the GORM implementation.
type fakeUserRepo struct {
	users []*models.User
	clock time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeUserRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if !u.DeletedAt.Valid && strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := f.tick()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	// Same rule as the GORM repository: a live row wins over any
	// soft-deleted row sharing the email.
	var deleted *models.User
	for _, u := range f.users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if !u.DeletedAt.Valid {
			copied := *u
			return &copied, nil
		}
		if deleted == nil {
			deleted = u
		}
	}
	if deleted != nil {
		copied := *deleted
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id && !u.DeletedAt.Valid {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	for _, u := range f.users {
		if u.ID != id || u.DeletedAt.Valid {
			continue
		}
		if v, ok := fields["full_name"].(string); ok {
			u.FullName = v
		}
		if v, ok := fields["password"].(string); ok {
			u.Password = v
		}
		if v, ok := fields["is_active"].(bool); ok {
			u.IsActive = v
		}
		u.UpdatedAt = f.tick()
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	for _, u := range f.users {
		if u.ID == id && !u.DeletedAt.Valid {
			u.DeletedAt = gorm.DeletedAt{Time: f.tick(), Valid: true}
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context, filter repositories.ListFilter, page, limit int) ([]models.User, int64, error) {
	var matched []*models.User
	needle := strings.ToLower(filter.Search)
	for _, u := range f.users {
		if u.DeletedAt.Valid {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.FullName), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]models.User, 0, end-start)
	for _, u := range matched[start:end] {
		out = append(out, *u)
	}
	return out, total, nil
}

type testEnv struct {
	router *gin.Engine
	repo   *fakeUserRepo
	tokens *token.Service
	hasher *utils.Hasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{Env: config.EnvDevelopment, JWTSecret: "test-secret", JWTTTL: time.Hour}
	repo := newFakeUserRepo()
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTTTL)
	hasher := utils.NewHasher(bcrypt.MinCost)
	router := NewRouter(cfg, repo, tokens, hasher, nil)
	return &testEnv{router: router, repo: repo, tokens: tokens, hasher: hasher}
}

// addUser inserts a user directly into the fake store and returns it.
func (e *testEnv) addUser(t *testing.T, fullName, email, password string, role models.Role, active bool) *models.User {
	t.Helper()
	hash, err := e.hasher.Hash(password)
	require.NoError(t, err)
	user := &models.User{FullName: fullName, Email: strings.ToLower(email), Password: hash, Role: role, IsActive: active}
	require.NoError(t, e.repo.Create(context.Background(), user))
	return user
}

func (e *testEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := e.tokens.Issue(userID)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
