package poi

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Software-Engineerin-I2-Team-9/mapquester/internal/apperr"
	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newTestApp(mock pgxmock.PgxPoolIface, store ContentStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	passThrough := func(c *fiber.Ctx) error { return c.Next() }
	RegisterRoutes(app.Group("/pois"), NewService(mock, store), passThrough)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestCreateHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	expectUserExists(mock, "11111111-1111-4111-8111-111111111111", true)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO pois`).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	app := newTestApp(mock, &fakeContentStore{})
	resp := doJSON(t, app, http.MethodPost, "/pois/create", fiber.Map{
		"userId":      "11111111-1111-4111-8111-111111111111",
		"latitude":    40.7128,
		"longitude":   -74.006,
		"title":       "Best Bagels",
		"tag":         "food",
		"description": "try the lox",
		"content": []fiber.Map{
			{"filename": "menu.jpg", "data": base64.StdEncoding.EncodeToString([]byte("jpeg"))},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		PoiID       string   `json:"poiId"`
		ContentURLs []string `json:"contentUrls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.PoiID == "" || len(body.ContentURLs) != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestCreateHandlerMissingField(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := newTestApp(mock, &fakeContentStore{})
	resp := doJSON(t, app, http.MethodPost, "/pois/create", fiber.Map{"userId": "11111111-1111-4111-8111-111111111111"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE pois SET`).
		WithArgs("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa", (*bool)(nil), ptr(1)).
		WillReturnRows(pgxmock.NewRows([]string{"is_public", "reactions"}).AddRow(true, 4))

	app := newTestApp(mock, &fakeContentStore{})
	resp := doJSON(t, app, http.MethodPatch, "/pois/update/aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa", fiber.Map{"reactionsChange": 1})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res UpdateResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Reactions != 4 {
		t.Fatalf("expected 4 reactions, got %d", res.Reactions)
	}
}

func TestUpdateHandlerNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE pois SET`).
		WithArgs("ffffffff-ffff-4fff-8fff-ffffffffffff", (*bool)(nil), (*int)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"is_public", "reactions"}))

	app := newTestApp(mock, &fakeContentStore{})
	resp := doJSON(t, app, http.MethodPatch, "/pois/update/ffffffff-ffff-4fff-8fff-ffffffffffff", fiber.Map{})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteAndRecoverHandlers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`UPDATE pois SET is_deleted = true`).
		WithArgs("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE pois SET is_deleted = false`).
		WithArgs("aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := newTestApp(mock, &fakeContentStore{})

	resp := doJSON(t, app, http.MethodPatch, "/pois/delete/aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodPatch, "/pois/recover/aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("recover: expected 200, got %d", resp.StatusCode)
	}
}

func TestGetHandlerListView(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pois`).
		WithArgs("11111111-1111-4111-8111-111111111111").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, user_id, latitude, longitude`).
		WithArgs("11111111-1111-4111-8111-111111111111", 10, 0).
		WillReturnRows(poiRows())

	app := newTestApp(mock, &fakeContentStore{})
	req := httptest.NewRequest(http.MethodGet, "/pois/get/11111111-1111-4111-8111-111111111111?view=list&page=1", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Pois       []POI `json:"pois"`
		Pagination *struct {
			TotalCount int `json:"totalCount"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Pois) != 1 || body.Pagination == nil || body.Pagination.TotalCount != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetHandlerMapView(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, latitude, longitude`).
		WithArgs("11111111-1111-4111-8111-111111111111", 39.0, 41.0, -75.0, -73.0, []string{"food"}).
		WillReturnRows(poiRows())

	app := newTestApp(mock, &fakeContentStore{})
	req := httptest.NewRequest(http.MethodGet,
		"/pois/get/11111111-1111-4111-8111-111111111111?view=map&minLat=39.0&maxLat=41.0&minLon=-75.0&maxLon=-73.0&tags=food", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["pagination"]; ok {
		t.Fatalf("map view must not include pagination: %s", raw)
	}
}

func TestGetHandlerInvalidView(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := newTestApp(mock, &fakeContentStore{})
	req := httptest.NewRequest(http.MethodGet, "/pois/get/11111111-1111-4111-8111-111111111111?view=globe", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSplitTags(t *testing.T) {
	if got := splitTags("food, art ,"); len(got) != 2 || got[0] != "food" || got[1] != "art" {
		t.Fatalf("unexpected tags: %v", got)
	}
	if got := splitTags(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
