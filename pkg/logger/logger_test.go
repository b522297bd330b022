package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInit(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then Get should return it", func() {
			So(Get(), ShouldNotBeNil)
		})

		Convey("And logging through it should not panic", func() {
			log := Get()
			ctx := context.Background()
			So(func() {
				log.Debug(ctx, "debug line")
				log.Info(ctx, "info line", String("k", "v"))
				log.Warn(ctx, "warn line", Int("n", 3))
				log.Error(ctx, "error line", Error(errors.New("boom")))
			}, ShouldNotPanic)
		})

		Convey("And Named should return a scoped logger", func() {
			So(Named("pool"), ShouldNotBeNil)
		})

		Convey("And Sync should be a no-op", func() {
			So(Sync(), ShouldBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the level parser", t, func() {
		Convey("Then known levels should parse", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", " INFO "} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("And unknown levels should be rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}

func TestFields(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		Convey("Then they should carry key and value", func() {
			So(String("a", "b"), ShouldResemble, Field{Key: "a", Value: "b"})
			So(Int("n", 7).Value, ShouldEqual, 7)
			So(Float64("f", 1.5).Value, ShouldEqual, 1.5)
			So(Duration("d", 2*time.Second).Value, ShouldEqual, "2s")
			So(Any("x", []int{1}).Key, ShouldEqual, "x")
			So(Error(errors.New("boom")).Key, ShouldEqual, "error")
		})
	})
}
