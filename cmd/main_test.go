package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/trazo-ml/trazo/internal/adapters/http/api"
	service "github.com/trazo-ml/trazo/internal/app"
	"github.com/trazo-ml/trazo/internal/config"
	"github.com/trazo-ml/trazo/internal/domain/pixel"
	"github.com/trazo-ml/trazo/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			// Test with environment variables
			_ = os.Setenv("TRAZO_ADDR", ":8080")
			_ = os.Setenv("TRAZO_POOL_MAX_CONNS", "6")
			_ = os.Setenv("TRAZO_DB_USER", "scorer")
			defer func() {
				_ = os.Unsetenv("TRAZO_ADDR")
				_ = os.Unsetenv("TRAZO_POOL_MAX_CONNS")
				_ = os.Unsetenv("TRAZO_DB_USER")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PoolMaxConns, convey.ShouldEqual, 6)
				convey.So(cfg.DBUser, convey.ShouldEqual, "scorer")
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithModelFunction("models.digit_score"),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When registering routes the way run does", func() {
			svc := service.New()
			mux := http.NewServeMux()
			api.NewServer(svc).Register(context.Background(), mux)

			convey.Convey("Then the canvas page should be served from the root", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "<canvas")
			})

			convey.Convey("And the stylesheet should route through dispatch", func() {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Header().Get("Content-Type"), convey.ShouldContainSubstring, "text/css")
			})

			convey.Convey("And a pixel payload against an unstarted service should fail loudly", func() {
				payload := strings.TrimSuffix(strings.Repeat("0,", pixel.VectorLen), ",")
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+payload, nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusInternalServerError)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "not started")
			})
		})
	})
}
