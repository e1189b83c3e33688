package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"immolist/internal/config"
	"immolist/internal/domain"
	"immolist/internal/http/handlers"
	"immolist/internal/services"
	"immolist/internal/store"
)

// newTestApp wires the same routes as the serve command against a
// throwaway data file.
func newTestApp(t *testing.T) (*fiber.App, *services.PropertyService) {
	t.Helper()
	cfg := config.Config{
		DataFile: filepath.Join(t.TempDir(), "properties.json"),
		MediaDir: t.TempDir(),
	}
	svc := services.NewPropertyService(store.New(cfg.DataFile))

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Server().MaxRequestBodySize = 5 << 20
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(svc, cfg)
	app.Get("/", deps.Pages.List)
	app.Get("/property/new", deps.Pages.NewForm)
	app.Post("/property/new", deps.Pages.Create)
	app.Get("/property/:id", deps.Pages.Detail)
	app.Get("/property/:id/edit", deps.Pages.EditForm)
	app.Post("/property/:id/edit", deps.Pages.Update)
	app.Get("/property/:id/delete", deps.Pages.ConfirmDelete)
	app.Post("/property/:id/delete", deps.Pages.Delete)

	api := app.Group("/api/v1")
	api.Get("/items", deps.API.List)
	api.Get("/items/:id", deps.API.Detail)
	api.Post("/items", deps.API.Create)
	api.Put("/items/:id", deps.API.Update)
	api.Delete("/items/:id", deps.API.Delete)
	api.Post("/upload", deps.Upload.Upload)

	return app, svc
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeProperty(t *testing.T, resp *http.Response) domain.Property {
	t.Helper()
	var p domain.Property
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode property: %v", err)
	}
	return p
}

func TestAPICreateAndFetch(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/v1/items",
		`{"title":"Appartement moderne","city":"Paris","price":450000,"surface":65,"type":"sale","category":"apartment"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expected 201, got %d", resp.StatusCode)
	}
	created := decodeProperty(t, resp)
	if created.ID == "" {
		t.Fatal("created property has no id")
	}
	if created.Status != domain.StatusAvailable {
		t.Fatalf("expected available status, got %s", created.Status)
	}

	resp2, err := app.Test(httptest.NewRequest("GET", "/api/v1/items/"+created.ID, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("fetch expected 200, got %d", resp2.StatusCode)
	}
	got := decodeProperty(t, resp2)
	if got.Title != "Appartement moderne" || got.City != "Paris" {
		t.Fatalf("fetched wrong record: %+v", got)
	}
}

func TestAPIDuplicateTitleConflict(t *testing.T) {
	app, _ := newTestApp(t)

	body := `{"title":"Studio lumineux","city":"Marseille","price":180000,"surface":35,"type":"sale","category":"studio"}`
	if resp, _ := app.Test(jsonReq("POST", "/api/v1/items", body)); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create expected 201, got %d", resp.StatusCode)
	}

	// Same title, different case: still a conflict.
	dup := `{"title":"STUDIO LUMINEUX","city":"Lyon","price":200000,"surface":40,"type":"sale","category":"studio"}`
	resp, err := app.Test(jsonReq("POST", "/api/v1/items", dup))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate expected 409, got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "STUDIO LUMINEUX") {
		t.Fatalf("conflict body should name the title; body=%s", b)
	}

	listResp, _ := app.Test(httptest.NewRequest("GET", "/api/v1/items", nil))
	var all []domain.Property
	if err := json.NewDecoder(listResp.Body).Decode(&all); err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("catalog should still hold 1 record, got %d", len(all))
	}
}

func TestAPIValidation(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []string{
		`{"title":"","city":"Paris","price":1,"surface":1,"type":"sale","category":"house"}`,
		`{"title":"X","city":"Paris","price":-5,"surface":1,"type":"sale","category":"house"}`,
		`{"title":"X","city":"Paris","price":1,"surface":1,"type":"barter","category":"house"}`,
		`not json at all`,
	}
	for _, body := range cases {
		resp, err := app.Test(jsonReq("POST", "/api/v1/items", body))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestAPIUpdate(t *testing.T) {
	app, svc := newTestApp(t)

	p, err := svc.Create(domain.CreateProperty{
		Title: "Maison avec jardin", City: "Lyon", Price: 320000, Surface: 120,
		Type: domain.TypeSale, Category: domain.CategoryHouse,
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(jsonReq("PUT", "/api/v1/items/"+p.ID, `{"price":340000,"status":"sold"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update expected 200, got %d", resp.StatusCode)
	}
	got := decodeProperty(t, resp)
	if got.Price != 340000 || got.Status != domain.StatusSold {
		t.Fatalf("merge failed: %+v", got)
	}
	if got.Title != p.Title || got.Surface != p.Surface {
		t.Fatalf("unrelated fields changed: %+v", got)
	}

	// Unknown id is 404, not an error payload.
	resp2, _ := app.Test(jsonReq("PUT", "/api/v1/items/does-not-exist", `{"price":1000}`))
	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id expected 404, got %d", resp2.StatusCode)
	}
}

func TestAPIDelete(t *testing.T) {
	app, svc := newTestApp(t)

	p, err := svc.Create(domain.CreateProperty{
		Title: "Villa avec piscine", City: "Nice", Price: 900000, Surface: 240,
		Type: domain.TypeSale, Category: domain.CategoryVilla,
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/items/"+p.ID, nil))
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", resp.StatusCode)
	}
	resp2, _ := app.Test(httptest.NewRequest("GET", "/api/v1/items/"+p.ID, nil))
	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted id expected 404, got %d", resp2.StatusCode)
	}
	resp3, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/items/"+p.ID, nil))
	if resp3.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete expected 404, got %d", resp3.StatusCode)
	}
}
