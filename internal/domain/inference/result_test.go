package inference_test

import (
	"testing"

	inference "github.com/trazo-ml/trazo/internal/domain/inference"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEncode(t *testing.T) {
	Convey("Given a single-row single-column result", t, func() {
		res := inference.Result{Rows: [][]any{{7}}}

		Convey("Then it should encode exactly one fragment", func() {
			So(inference.Encode(res), ShouldEqual, "<resultado>7</resultado>")
		})
	})

	Convey("Given a multi-row multi-column result", t, func() {
		res := inference.Result{Rows: [][]any{
			{3, 0.92},
			{8, 0.05},
		}}

		Convey("Then scalars should concatenate row-major", func() {
			So(inference.Encode(res), ShouldEqual,
				"<resultado>3</resultado><resultado>0.92</resultado>"+
					"<resultado>8</resultado><resultado>0.05</resultado>")
		})
	})

	Convey("Given an empty result", t, func() {
		Convey("Then it should encode to the empty string", func() {
			So(inference.Encode(inference.Result{}), ShouldEqual, "")
		})
	})

	Convey("Given non-numeric scalars", t, func() {
		res := inference.Result{Rows: [][]any{{"cinco"}}}

		Convey("Then they should be stringified as-is", func() {
			So(inference.Encode(res), ShouldEqual, "<resultado>cinco</resultado>")
		})
	})
}
