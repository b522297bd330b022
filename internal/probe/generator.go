package probe

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/trazo-ml/trazo/internal/domain/pixel"
	"github.com/trazo-ml/trazo/pkg/logger"
)

// Drawing geometry constants.
const (
	gridSide    = 28
	strokeWidth = 3
	inkValue    = 255
	marginRows  = 4
)

// randomFloat divisor for crypto/rand sampling.
const randomFloatDivisor = 1000000

// Drawing is one synthetic digit with a trace id for log correlation.
type Drawing struct {
	TraceID string
	Vector  pixel.Vector
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateDrawings synthesizes crude vertical strokes: not real digits,
// but realistic payload shapes the model will happily score.
func generateDrawings(ctx context.Context, cfg *Config) []Drawing {
	logger.Get().Info(ctx, "generating synthetic drawings", logger.Int("requests", cfg.Requests))

	drawings := make([]Drawing, cfg.Requests)
	for i := range drawings {
		drawings[i] = Drawing{
			TraceID: uuid.NewString(),
			Vector:  strokeVector(),
		}
	}
	return drawings
}

// strokeVector paints a jittered vertical stroke onto a blank grid.
func strokeVector() pixel.Vector {
	v := make(pixel.Vector, pixel.VectorLen)
	col := marginRows + int(getRandomFloat()*float64(gridSide-2*marginRows))
	for row := marginRows; row < gridSide-marginRows; row++ {
		jitter := int(getRandomFloat() * 2)
		for w := 0; w < strokeWidth; w++ {
			x := col + jitter + w
			if x < 0 || x >= gridSide {
				continue
			}
			v[row*gridSide+x] = inkValue
		}
	}
	return v
}
