package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vitorsz/shop-users-api/internal/db"
)

// --- helpers ---

type fakeStore struct {
	user      *db.User // the single record the fake knows about
	getErr    error
	updateErr error
	deleteErr error

	updatedID     string
	updatedFields UpdateFields
	deletedID     string
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*db.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.user != nil && f.user.ID.Hex() == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, name, email, passwordHash string) (*db.User, error) {
	return nil, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, fields UpdateFields) (*db.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedID = id
	f.updatedFields = fields
	if f.user == nil || f.user.ID.Hex() != id {
		return nil, nil
	}
	if fields.Name != nil {
		f.user.Name = *fields.Name
	}
	if fields.Email != nil {
		f.user.Email = *fields.Email
	}
	if fields.ShoppingCart != nil {
		f.user.ShoppingCart = *fields.ShoppingCart
	}
	return f.user, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

func newTestRouter(store Store) http.Handler {
	h := NewHandler(store)
	r := chi.NewRouter()
	r.Get("/users", h.Welcome)
	r.Get("/users/{id}", h.GetUser)
	r.Put("/users/{id}", h.UpdateUser)
	r.Delete("/users/{id}", h.DeleteUser)
	r.Get("/users/{id}/cart", h.GetCart)
	return r
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func testUser() *db.User {
	return &db.User{
		ID:           primitive.NewObjectID(),
		Name:         "A",
		Email:        "a@x.com",
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhash",
		ShoppingCart: []any{"apple", "pear"},
	}
}

// --- tests ---

func TestWelcome(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	rec := do(router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"welcome to the users endpoint"}`, rec.Body.String())
}

func TestGetUser_Found(t *testing.T) {
	u := testUser()
	router := newTestRouter(&fakeStore{user: u})

	rec := do(router, http.MethodGet, "/users/"+u.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"a@x.com"`)
	// the hash must never appear in a response
	assert.NotContains(t, rec.Body.String(), u.PasswordHash)
}

func TestGetUser_AbsentIsNull(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	rec := do(router, http.MethodGet, "/users/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestGetUser_StoreFault(t *testing.T) {
	router := newTestRouter(&fakeStore{getErr: assert.AnError})

	rec := do(router, http.MethodGet, "/users/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestUpdateUser_AllowListedFields(t *testing.T) {
	u := testUser()
	store := &fakeStore{user: u}
	router := newTestRouter(store)

	rec := do(router, http.MethodPut, "/users/"+u.ID.Hex(),
		`{"name":"B","password":"sneaky","isAdmin":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, store.updatedFields.Name)
	assert.Equal(t, "B", *store.updatedFields.Name)
	assert.Nil(t, store.updatedFields.Email)
	assert.Nil(t, store.updatedFields.ShoppingCart)
	assert.Contains(t, rec.Body.String(), `"B"`)
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	u := testUser()
	router := newTestRouter(&fakeStore{user: u, updateErr: ErrDuplicateEmail})

	rec := do(router, http.MethodPut, "/users/"+u.ID.Hex(), `{"email":"taken@x.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"msg":"email exists already"}`, rec.Body.String())
}

func TestUpdateUser_AbsentIsNull(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	rec := do(router, http.MethodPut, "/users/"+primitive.NewObjectID().Hex(), `{"name":"B"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestDeleteUser(t *testing.T) {
	u := testUser()
	store := &fakeStore{user: u}
	router := newTestRouter(store)

	rec := do(router, http.MethodDelete, "/users/"+u.ID.Hex(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, u.ID.Hex(), store.deletedID)
}

func TestDeleteUser_AbsentStillSucceeds(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	rec := do(router, http.MethodDelete, "/users/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetCart(t *testing.T) {
	u := testUser()
	router := newTestRouter(&fakeStore{user: u})

	rec := do(router, http.MethodGet, "/users/"+u.ID.Hex()+"/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["apple","pear"]`, rec.Body.String())
}

func TestGetCart_NilCartIsEmptyArray(t *testing.T) {
	u := testUser()
	u.ShoppingCart = nil
	router := newTestRouter(&fakeStore{user: u})

	rec := do(router, http.MethodGet, "/users/"+u.ID.Hex()+"/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetCart_AbsentUser(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	rec := do(router, http.MethodGet, "/users/"+primitive.NewObjectID().Hex()+"/cart", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"user not found"}`, rec.Body.String())
}

func TestGetCart_StoreFault(t *testing.T) {
	router := newTestRouter(&fakeStore{getErr: assert.AnError})

	rec := do(router, http.MethodGet, "/users/"+primitive.NewObjectID().Hex()+"/cart", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}
