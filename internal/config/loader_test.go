package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	config "github.com/trazo-ml/trazo/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

// clearEnv unsets every TRAZO_ variable the tests touch.
func clearEnv() {
	for _, k := range []string{
		"TRAZO_CONFIG", "TRAZO_ADDR", "TRAZO_LOG_LEVEL",
		"TRAZO_DB_USER", "TRAZO_DB_PASSWORD", "TRAZO_DB_URL",
		"TRAZO_POOL_MIN_CONNS", "TRAZO_POOL_MAX_CONNS",
		"TRAZO_ACQUIRE_TIMEOUT_MS", "TRAZO_SHUTDOWN_GRACE_MS",
	} {
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		clearEnv()
		Reset(clearEnv)

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8087")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.ModelFunction, ShouldEqual, "mnist_predict")
				So(cfg.PoolMinConns, ShouldEqual, 1)
				So(cfg.PoolMaxConns, ShouldEqual, 4)
				So(cfg.DBUser, ShouldEqual, "")
			})
		})

		Convey("When the environment provides credentials and sizes", func() {
			os.Setenv("TRAZO_DB_USER", "scorer")
			os.Setenv("TRAZO_DB_PASSWORD", "hunter2")
			os.Setenv("TRAZO_DB_URL", "postgres://db:5432/mnist")
			os.Setenv("TRAZO_POOL_MAX_CONNS", "16")

			cfg, err := config.Load(context.Background())

			Convey("Then env should override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.DBUser, ShouldEqual, "scorer")
				So(cfg.DBPassword, ShouldEqual, "hunter2")
				So(cfg.DBURL, ShouldEqual, "postgres://db:5432/mnist")
				So(cfg.PoolMaxConns, ShouldEqual, 16)
				So(cfg.PoolMinConns, ShouldEqual, 1)
			})
		})

		Convey("When a YAML file is layered under env", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "trazo.yaml")
			yaml := "addr: \":9999\"\npool_max_conns: 8\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
			os.Setenv("TRAZO_CONFIG", path)
			os.Setenv("TRAZO_POOL_MAX_CONNS", "12")

			cfg, err := config.Load(context.Background())

			Convey("Then env should win over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.PoolMaxConns, ShouldEqual, 12)
			})
		})

		Convey("When the pool bounds are inverted", func() {
			os.Setenv("TRAZO_POOL_MIN_CONNS", "8")
			os.Setenv("TRAZO_POOL_MAX_CONNS", "2")

			_, err := config.Load(context.Background())

			Convey("Then validation should reject the config", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the listen address is emptied", func() {
			os.Setenv("TRAZO_ADDR", "")

			_, err := config.Load(context.Background())

			Convey("Then validation should reject the config", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the config file does not exist", func() {
			os.Setenv("TRAZO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(context.Background())

			Convey("Then loading should fail", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}
