package inference_test

import (
	"fmt"
	"strings"
	"testing"

	inference "github.com/trazo-ml/trazo/internal/domain/inference"
	pixel "github.com/trazo-ml/trazo/internal/domain/pixel"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewQuery(t *testing.T) {
	Convey("Given the default query", t, func() {
		q := inference.NewQuery()

		Convey("When inspecting the SQL text", func() {
			sql := q.SQL()

			Convey("Then it should invoke the default scoring function", func() {
				So(sql, ShouldStartWith, "SELECT * FROM mnist_predict(")
			})

			Convey("And it should carry all 784 named slots in order", func() {
				So(sql, ShouldContainSubstring, "@PX1,")
				So(sql, ShouldContainSubstring, "@PX42,")
				So(sql, ShouldContainSubstring, "@PX784)")
				So(strings.Count(sql, "@PX"), ShouldEqual, pixel.VectorLen)
			})

			Convey("And the text should be identical across instances", func() {
				So(inference.NewQuery().SQL(), ShouldEqual, sql)
			})
		})
	})

	Convey("Given a query with a schema-qualified function", t, func() {
		q := inference.NewQuery(inference.WithFunction("models.mnist_predict"))

		Convey("Then the SQL should target that function", func() {
			So(q.SQL(), ShouldStartWith, "SELECT * FROM models.mnist_predict(")
		})
	})
}

func TestQuery_Bind(t *testing.T) {
	Convey("Given a vector with distinct values per index", t, func() {
		v := make(pixel.Vector, pixel.VectorLen)
		for i := range v {
			v[i] = float64(i) * 0.25
		}
		q := inference.NewQuery()

		Convey("When binding", func() {
			args := q.Bind(v)

			Convey("Then every slot i should carry pixel index i-1", func() {
				So(len(args), ShouldEqual, pixel.VectorLen)
				for i := 1; i <= pixel.VectorLen; i++ {
					slot := fmt.Sprintf("PX%d", i)
					So(args[slot], ShouldEqual, v[i-1])
				}
			})
		})
	})

	Convey("Given an all-zero vector", t, func() {
		v := make(pixel.Vector, pixel.VectorLen)
		args := inference.NewQuery().Bind(v)

		Convey("Then the boundary slots should both be zero", func() {
			So(args["PX1"], ShouldEqual, 0.0)
			So(args["PX784"], ShouldEqual, 0.0)
		})
	})
}
