package pixel_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	pixel "github.com/trazo-ml/trazo/internal/domain/pixel"
	. "github.com/smartystreets/goconvey/convey"
)

// payload builds a comma-separated string of n copies of tok.
func payload(n int, tok string) string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = tok
	}
	return strings.Join(tokens, ",")
}

func TestParse(t *testing.T) {
	Convey("Given a payload with exactly 784 zero tokens", t, func() {
		raw := payload(pixel.VectorLen, "0")

		Convey("When parsing", func() {
			v, err := pixel.Parse(raw)

			Convey("Then it should yield a full vector of zeros", func() {
				So(err, ShouldBeNil)
				So(len(v), ShouldEqual, pixel.VectorLen)
				So(v[0], ShouldEqual, 0)
				So(v[pixel.VectorLen-1], ShouldEqual, 0)
			})
		})
	})

	Convey("Given a payload with mixed well-formed values", t, func() {
		tokens := make([]string, pixel.VectorLen)
		for i := range tokens {
			tokens[i] = "0"
		}
		tokens[0] = "255"
		tokens[41] = "0.5"
		tokens[783] = "-3"

		Convey("When parsing", func() {
			v, err := pixel.Parse(strings.Join(tokens, ","))

			Convey("Then values should land at their token index", func() {
				So(err, ShouldBeNil)
				So(v[0], ShouldEqual, 255)
				So(v[41], ShouldEqual, 0.5)
				So(v[783], ShouldEqual, -3)
			})

			Convey("And out-of-range values should pass through untouched", func() {
				So(err, ShouldBeNil)
				So(v[783], ShouldBeLessThan, 0)
			})
		})
	})

	Convey("Given payloads with the wrong token count", t, func() {
		for _, n := range []int{1, 2, 100, 783, 785, 10000} {
			Convey("When parsing a payload of "+strconv.Itoa(n)+" tokens", func() {
				v, err := pixel.Parse(payload(n, "0"))

				Convey("Then it should classify as not an image", func() {
					So(v, ShouldBeNil)
					So(errors.Is(err, pixel.ErrNotAnImage), ShouldBeTrue)
				})
			})
		}

		Convey("When parsing the empty string", func() {
			v, err := pixel.Parse("")

			Convey("Then it should classify as not an image", func() {
				So(v, ShouldBeNil)
				So(errors.Is(err, pixel.ErrNotAnImage), ShouldBeTrue)
			})
		})
	})

	Convey("Given a payload with a non-numeric token", t, func() {
		tokens := make([]string, pixel.VectorLen)
		for i := range tokens {
			tokens[i] = "0"
		}
		tokens[123] = "abc"

		Convey("When parsing", func() {
			v, err := pixel.Parse(strings.Join(tokens, ","))

			Convey("Then it should fail with a malformed pixel condition", func() {
				So(v, ShouldBeNil)
				So(errors.Is(err, pixel.ErrMalformedPixel), ShouldBeTrue)
				So(errors.Is(err, pixel.ErrNotAnImage), ShouldBeFalse)
				So(err.Error(), ShouldContainSubstring, "123")
			})
		})
	})

	Convey("Given a payload with an empty token among 784", t, func() {
		tokens := make([]string, pixel.VectorLen)
		for i := range tokens {
			tokens[i] = "1"
		}
		tokens[500] = ""

		Convey("When parsing", func() {
			_, err := pixel.Parse(strings.Join(tokens, ","))

			Convey("Then it should fail as malformed, not coerce to zero", func() {
				So(errors.Is(err, pixel.ErrMalformedPixel), ShouldBeTrue)
			})
		})
	})
}
