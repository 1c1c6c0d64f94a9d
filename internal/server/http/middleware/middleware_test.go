package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	pkgAuth "github.com/polkiloo/expensetracker/internal/pkg/auth"
	testhelpers "github.com/polkiloo/expensetracker/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func resolverReturning(user *model.User, err error) testhelpers.AuthFacadeStub {
	return testhelpers.AuthFacadeStub{ResolveFn: func(context.Context, string) (*model.User, error) {
		return user, err
	}}
}

func TestAuthRequiredRejections(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	for _, err := range []error{
		domainErrors.ErrMissingCredential,
		fmt.Errorf("%w: %w", domainErrors.ErrInvalidCredential, pkgAuth.ErrTokenExpired),
		fmt.Errorf("%w: %w", domainErrors.ErrInvalidCredential, pkgAuth.ErrInvalidToken),
		domainErrors.ErrUnknownUser,
	} {
		called := false
		router := gin.New()
		router.Use(AuthRequired(resolverReturning(nil, err), logger))
		router.GET("/", func(c *gin.Context) { called = true })

		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", err, resp.Code)
		}
		if called {
			t.Fatalf("%v: handler must not run", err)
		}

		var body map[string]string
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil || body["message"] != "Unauthorized" {
			t.Fatalf("unexpected body %q", resp.Body.String())
		}
	}
}

func TestAuthRequiredStorageFailure(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(resolverReturning(nil, context.DeadlineExceeded), nil))
	router.GET("/", func(c *gin.Context) {})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestAuthRequiredStoresUser(t *testing.T) {
	var (
		stored     *model.User
		seenHeader string
	)
	resolver := testhelpers.AuthFacadeStub{ResolveFn: func(_ context.Context, header string) (*model.User, error) {
		seenHeader = header
		return &model.User{ID: 42, Email: "a@example.com"}, nil
	}}

	router := gin.New()
	router.Use(AuthRequired(resolver, nil))
	router.GET("/", func(c *gin.Context) {
		if v, ok := c.Get(UserContextKey); ok {
			stored = v.(*model.User)
		}
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if seenHeader != "Bearer token" {
		t.Fatalf("resolver received %q", seenHeader)
	}
	if stored == nil || stored.ID != 42 {
		t.Fatalf("expected user 42, got %+v", stored)
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("payload"))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest(0))
	var body string
	router.POST("/", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader(buf.Bytes())))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != "payload" {
		t.Fatalf("expected decompressed payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", io.NopCloser(bytes.NewReader([]byte("plain"))))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != "plain" {
		t.Fatalf("expected plain payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for corrupt gzip, got %d", resp.Code)
	}
}

func TestDecompressRequestLimit(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write(bytes.Repeat([]byte("a"), 1024))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest(16))
	var readErr error
	router.POST("/", func(c *gin.Context) {
		_, readErr = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Encoding", "gzip")
	router.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Fatalf("expected max bytes error, got %v", readErr)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ok", nil))
	generated := resp.Header().Get(RequestIDHeader)
	if generated == "" {
		t.Fatal("expected generated request id")
	}
	if !strings.Contains(buf.String(), `"request_id":"`+generated+`"`) || !strings.Contains(buf.String(), `"status":204`) {
		t.Fatalf("unexpected log output %q", buf.String())
	}

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", resp.Header().Get(RequestIDHeader))
	}
	if !strings.Contains(buf.String(), `"level":"ERROR"`) || !strings.Contains(buf.String(), `"request_id":"abc-123"`) {
		t.Fatalf("expected error level log, got %q", buf.String())
	}
}
