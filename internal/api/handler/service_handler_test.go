package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/service-catalog/internal/core/service"
	"github.com/99minutos/service-catalog/internal/infrastructure/db/memory"
)

func newServiceEcho(repo *memory.ServiceRepository) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewServiceHandler(service.NewCatalogService(repo, zerolog.Nop()), zerolog.Nop())
	e.GET("/services", h.List)
	e.GET("/services/:id", h.Get)
	e.POST("/services", h.Create)
	e.PUT("/services/:id", h.Update)
	e.DELETE("/services/:id", h.Delete)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

func createService(t *testing.T, e *echo.Echo, body string) serviceResponse {
	t.Helper()
	rec := do(e, http.MethodPost, "/services", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decode[mutateServiceResponse](t, rec).Service
}

func TestServiceHandler_Create(t *testing.T) {
	repo := memory.NewServiceRepository()
	e := newServiceEcho(repo)

	rec := do(e, http.MethodPost, "/services", `{"name":"Haircut","description":"Basic cut","price":25,"duration":30,"category":"hair"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode[mutateServiceResponse](t, rec)
	if !resp.Success || resp.Message != msgServiceCreated {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Service.ID == "" || !resp.Service.IsActive {
		t.Fatalf("expected active service with id, got %+v", resp.Service)
	}
	if resp.Service.Duration == nil || *resp.Service.Duration != 30 || resp.Service.Category != "hair" {
		t.Fatalf("optional fields not stored: %+v", resp.Service)
	}
}

func TestServiceHandler_Create_MissingField(t *testing.T) {
	cases := map[string]string{
		"no name":        `{"description":"d","price":10}`,
		"no description": `{"name":"n","price":10}`,
		"no price":       `{"name":"n","description":"d"}`,
		"zero price":     `{"name":"n","description":"d","price":0}`,
		"empty name":     `{"name":"","description":"d","price":10}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			repo := memory.NewServiceRepository()
			e := newServiceEcho(repo)

			rec := do(e, http.MethodPost, "/services", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			resp := decode[errorResponse](t, rec)
			if resp.Success || resp.Message != msgRequiredFields {
				t.Fatalf("unexpected envelope: %+v", resp)
			}
			if repo.Count() != 0 {
				t.Fatalf("nothing should be stored, got %d", repo.Count())
			}
		})
	}
}

func TestServiceHandler_Create_MalformedJSON(t *testing.T) {
	repo := memory.NewServiceRepository()
	rec := do(newServiceEcho(repo), http.MethodPost, "/services", `{"name":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestServiceHandler_List(t *testing.T) {
	repo := memory.NewServiceRepository()
	e := newServiceEcho(repo)

	createService(t, e, `{"name":"Massage","description":"Relaxing","price":60,"category":"spa"}`)
	createService(t, e, `{"name":"Haircut","description":"Basic cut","price":25,"category":"hair"}`)
	hidden := createService(t, e, `{"name":"Beard trim","description":"Shape up","price":15,"category":"hair"}`)
	if rec := do(e, http.MethodDelete, "/services/"+hidden.ID, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}

	resp := decode[listServicesResponse](t, do(e, http.MethodGet, "/services", ""))
	if !resp.Success || resp.Count != 2 || len(resp.Services) != 2 {
		t.Fatalf("unexpected list: %+v", resp)
	}
	if resp.Services[0].Name != "Haircut" || resp.Services[1].Name != "Massage" {
		t.Fatalf("expected name ascending, got %s, %s", resp.Services[0].Name, resp.Services[1].Name)
	}

	resp = decode[listServicesResponse](t, do(e, http.MethodGet, "/services?sortBy=price&sortOrder=desc", ""))
	if resp.Services[0].Name != "Massage" {
		t.Fatalf("expected price descending, got %s first", resp.Services[0].Name)
	}

	resp = decode[listServicesResponse](t, do(e, http.MethodGet, "/services?category=hair", ""))
	if resp.Count != 1 || resp.Services[0].Name != "Haircut" {
		t.Fatalf("category filter: %+v", resp)
	}

	resp = decode[listServicesResponse](t, do(e, http.MethodGet, "/services?category=all&search=RELAX", ""))
	if resp.Count != 1 || resp.Services[0].Name != "Massage" {
		t.Fatalf("search filter: %+v", resp)
	}
}

func TestServiceHandler_List_Empty(t *testing.T) {
	rec := do(newServiceEcho(memory.NewServiceRepository()), http.MethodGet, "/services", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"services":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestServiceHandler_NotFound(t *testing.T) {
	e := newServiceEcho(memory.NewServiceRepository())

	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"x"}`},
		{http.MethodDelete, ""},
	} {
		rec := do(e, tc.method, "/services/missing", tc.body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", tc.method, rec.Code)
		}
		if resp := decode[errorResponse](t, rec); resp.Message != msgServiceNotFound {
			t.Fatalf("%s: unexpected message %q", tc.method, resp.Message)
		}
	}
}

func TestServiceHandler_Update_Partial(t *testing.T) {
	e := newServiceEcho(memory.NewServiceRepository())
	created := createService(t, e, `{"name":"Haircut","description":"Basic cut","price":25}`)

	rec := do(e, http.MethodPut, "/services/"+created.ID, `{"name":"","price":30,"isActive":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	got := decode[mutateServiceResponse](t, rec).Service
	if got.Name != "Haircut" {
		t.Fatalf("empty name must be ignored, got %q", got.Name)
	}
	if got.Price != 30 {
		t.Fatalf("expected price 30, got %v", got.Price)
	}
	if got.IsActive {
		t.Fatalf("isActive=false must be applied")
	}
	if got.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updatedAt moved backwards")
	}

	// Inactive services are still retrievable by id.
	if rec := do(e, http.MethodGet, "/services/"+created.ID, ""); rec.Code != http.StatusOK {
		t.Fatalf("get inactive: expected 200, got %d", rec.Code)
	}
}

func TestServiceHandler_Delete_Idempotent(t *testing.T) {
	e := newServiceEcho(memory.NewServiceRepository())
	created := createService(t, e, `{"name":"Haircut","description":"Basic cut","price":25}`)

	for i := 0; i < 2; i++ {
		rec := do(e, http.MethodDelete, "/services/"+created.ID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("delete #%d: expected 200, got %d", i+1, rec.Code)
		}
		if resp := decode[messageResponse](t, rec); resp.Message != msgServiceDeleted {
			t.Fatalf("unexpected message %q", resp.Message)
		}
	}

	got := decode[getServiceResponse](t, do(e, http.MethodGet, "/services/"+created.ID, "")).Service
	if got.IsActive {
		t.Fatalf("expected inactive after delete")
	}
	list := decode[listServicesResponse](t, do(e, http.MethodGet, "/services", ""))
	if list.Count != 0 {
		t.Fatalf("deleted service must not be listed, got %d", list.Count)
	}
}

func TestServiceHandler_StoreFailure(t *testing.T) {
	repo := memory.NewServiceRepository()
	e := newServiceEcho(repo)
	repo.Err = errors.New("connection reset")

	cases := []struct {
		method, path, body, msg string
	}{
		{http.MethodGet, "/services", "", msgListFailed},
		{http.MethodGet, "/services/svc_000001", "", msgGetFailed},
		{http.MethodPost, "/services", `{"name":"n","description":"d","price":1}`, msgCreateFailed},
		{http.MethodPut, "/services/svc_000001", `{"name":"n"}`, msgUpdateFailed},
		{http.MethodDelete, "/services/svc_000001", "", msgDeleteFailed},
	}
	for _, tc := range cases {
		rec := do(e, tc.method, tc.path, tc.body)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s %s: expected 500, got %d", tc.method, tc.path, rec.Code)
		}
		resp := decode[errorResponse](t, rec)
		if resp.Message != tc.msg || strings.Contains(rec.Body.String(), "connection reset") {
			t.Fatalf("%s %s: unexpected body %s", tc.method, tc.path, rec.Body.String())
		}
	}
}
