package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "plantonize/internal/errors"
	"plantonize/internal/models"
	"plantonize/internal/pagination"
	"plantonize/internal/services"
)

func setupUserRouter(handler *UserHandler, userID string, role models.Role) *gin.Engine {
	r := gin.New()
	auth := injectRequester(userID, role)
	r.GET("/usuarios", auth, handler.ListUsers)
	r.PATCH("/usuarios/:id", auth, handler.UpdateRole)
	r.GET("/usuario", auth, handler.GetCurrentUser)
	r.GET("/anonymous/usuario", handler.GetCurrentUser)
	return r
}

func sampleUsers() []models.User {
	return []models.User{
		{Base: models.Base{ID: adminID}, Username: "ana", Role: models.RoleAdmin},
		{Base: models.Base{ID: collaboratorID}, Username: "bruno", Role: models.RoleCollaborator},
	}
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("returns bare array without paging", func(t *testing.T) {
		userSvc := &mockUserService{
			listUsersFn: func(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
				resp := pagination.NewPageResponse(sampleUsers(), page, 2)
				return &resp, nil
			},
		}
		r := setupUserRouter(NewUserHandler(userSvc), collaboratorID, models.RoleCollaborator)

		rec := doRequest(r, "GET", "/usuarios", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		users := parseJSONArray(t, rec)
		if len(users) != 2 {
			t.Fatalf("expected 2 users, got %d", len(users))
		}
		first := users[0].(map[string]interface{})
		if first["username"] != "ana" || first["tipo_usuario"] != "admin" {
			t.Errorf("unexpected first user: %v", first)
		}
		if _, ok := first["password"]; ok {
			t.Error("password must not be exposed")
		}
	})

	t.Run("returns envelope with paging", func(t *testing.T) {
		var captured pagination.PageRequest
		userSvc := &mockUserService{
			listUsersFn: func(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
				captured = page
				resp := pagination.NewPageResponse(sampleUsers()[:1], page, 2)
				return &resp, nil
			},
		}
		r := setupUserRouter(NewUserHandler(userSvc), adminID, models.RoleAdmin)

		rec := doRequest(r, "GET", "/usuarios?page=1&page_size=1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured.Page != 1 || captured.PageSize != 1 {
			t.Errorf("expected page=1 page_size=1, got %+v", captured)
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 2 {
			t.Errorf("expected total_items=2, got %v", result["total_items"])
		}
		if result["total_pages"].(float64) != 2 {
			t.Errorf("expected total_pages=2, got %v", result["total_pages"])
		}
	})

	t.Run("returns 400 on invalid page size", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}), adminID, models.RoleAdmin)

		rec := doRequest(r, "GET", "/usuarios?page_size=1000", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorDetail(t, parseJSON(t, rec), "page_size")
	})
}

func TestUserHandler_GetCurrentUser(t *testing.T) {
	t.Run("returns 200 with the caller", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, Username: "bruno", Role: models.RoleCollaborator}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(userSvc), collaboratorID, models.RoleCollaborator)

		rec := doRequest(r, "GET", "/usuario", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["id"] != collaboratorID {
			t.Errorf("expected id %s, got %v", collaboratorID, result["id"])
		}
		if result["tipo_usuario"] != "colaborador" {
			t.Errorf("expected tipo_usuario colaborador, got %v", result["tipo_usuario"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}), collaboratorID, models.RoleCollaborator)

		rec := doRequest(r, "GET", "/anonymous/usuario", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})

	t.Run("returns 404 when user was removed", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupUserRouter(NewUserHandler(userSvc), collaboratorID, models.RoleCollaborator)

		rec := doRequest(r, "GET", "/usuario", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestUserHandler_UpdateRole(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotRequester services.Requester
		userSvc := &mockUserService{
			updateUserRoleFn: func(requester services.Requester, userID string, role models.Role) (*models.User, error) {
				gotRequester = requester
				return &models.User{Base: models.Base{ID: userID}, Username: "bruno", Role: role}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(userSvc), adminID, models.RoleAdmin)

		rec := doRequest(r, "PATCH", "/usuarios/"+collaboratorID, `{"tipo_usuario":"admin"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotRequester.ID != adminID || gotRequester.Role != models.RoleAdmin {
			t.Errorf("expected requester to be the admin, got %+v", gotRequester)
		}
		if parseJSON(t, rec)["tipo_usuario"] != "admin" {
			t.Error("expected updated role in response")
		}
	})

	t.Run("returns 403 for collaborator", func(t *testing.T) {
		userSvc := &mockUserService{
			updateUserRoleFn: func(_ services.Requester, _ string, _ models.Role) (*models.User, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		r := setupUserRouter(NewUserHandler(userSvc), collaboratorID, models.RoleCollaborator)

		rec := doRequest(r, "PATCH", "/usuarios/"+adminID, `{"tipo_usuario":"colaborador"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FORBIDDEN")
	})

	t.Run("returns 400 on unknown role", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}), adminID, models.RoleAdmin)

		rec := doRequest(r, "PATCH", "/usuarios/"+collaboratorID, `{"tipo_usuario":"root"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorDetail(t, parseJSON(t, rec), "tipo_usuario")
	})

	t.Run("returns 404 on malformed id", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}), adminID, models.RoleAdmin)

		rec := doRequest(r, "PATCH", "/usuarios/42", `{"tipo_usuario":"admin"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})
}
