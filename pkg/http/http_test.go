package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Share int    `json:"share" validate:"gte=0,lte=100"`
	Kind  string `json:"kind" default:"full" validate:"oneof=full partial"`
}

func TestValidateRequest(t *testing.T) {
	req := &sampleRequest{Share: 120}
	verrs := ValidateRequest(context.Background(), req)
	if len(verrs) != 2 {
		t.Fatalf("expected 2 validation errors, got %+v", verrs)
	}
	if verrs[0].Field != "name" || verrs[0].Code != "ERR_REQUIRED" {
		t.Fatalf("unexpected first error %+v", verrs[0])
	}
	if verrs[1].Field != "share" || verrs[1].Params["max"] != "100" {
		t.Fatalf("unexpected second error %+v", verrs[1])
	}
	if req.Kind != "full" {
		t.Fatalf("default not applied: %q", req.Kind)
	}

	if verrs := ValidateRequest(context.Background(), &sampleRequest{Name: "acme", Share: 10}); verrs != nil {
		t.Fatalf("expected valid request, got %+v", verrs)
	}
}

func TestReadAndValidateRequestBadJSON(t *testing.T) {
	e := echo.New()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(r, httptest.NewRecorder())

	verrs := ReadAndValidateRequest(c, &sampleRequest{})
	if len(verrs) != 1 || verrs[0].Code != "ERR_UNKNOWN" {
		t.Fatalf("expected bind error, got %+v", verrs)
	}
}

func TestServerEnvelope(t *testing.T) {
	s := NewServer(nil, nil, WithMetricsPath(""))
	s.Echo().GET("/boom", func(c echo.Context) error {
		return AppErrorResponse(c, InternalError("db exploded"))
	})
	s.Echo().GET("/missing", func(c echo.Context) error {
		return NotFoundError("competitor not found")
	})

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "exploded") {
		t.Fatalf("internal details leaked: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/", nil))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "ERR_NOT_FOUND") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"status":404`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestDomainErrorConstructors(t *testing.T) {
	cause := errors.New("not a uuid")
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{InvalidIDError("invalid competitor id"), CodeInvalidID, http.StatusBadRequest},
		{NotFoundError("competitor not found"), CodeNotFound, http.StatusNotFound},
		{DegenerateInputError("empty corpus"), CodeDegenerateInput, http.StatusBadRequest},
		{ValidationFailedError("market_share out of range"), CodeValidation, http.StatusBadRequest},
		{InternalError("internal error"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.Code != tc.code || tc.err.Status != tc.status {
			t.Fatalf("%s: got code=%s status=%d", tc.code, tc.err.Code, tc.err.Status)
		}
		if !errors.Is(tc.err.WithError(cause), cause) {
			t.Fatalf("%s: cause not unwrapped", tc.code)
		}
	}
	if InvalidIDError("x").Field != "id" {
		t.Fatalf("invalid id error should point at the id field")
	}
}
