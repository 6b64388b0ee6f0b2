package fingerprint

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

const gridSize = 8

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces the perceptual fingerprint and the exact content
// digest for one image. The perceptual hash is a coarse luminance
// structure: the image is downsampled to an 8x8 grayscale grid and each
// cell emits one bit depending on whether it is brighter than the grid
// mean, packed into 16 hex characters. The content hash is SHA-256 over
// the raw byte stream.
func (g *Generator) Generate(raw []byte) (domain.Fingerprint, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return domain.Fingerprint{}, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	bounds := img.Bounds()
	grid := image.NewGray(image.Rect(0, 0, gridSize, gridSize))
	draw.ApproxBiLinear.Scale(grid, grid.Bounds(), img, bounds, draw.Src, nil)

	var sum int
	for _, lum := range grid.Pix {
		sum += int(lum)
	}
	mean := sum / (gridSize * gridSize)

	var bits uint64
	for _, lum := range grid.Pix {
		bits <<= 1
		if int(lum) > mean {
			bits |= 1
		}
	}

	digest := sha256.Sum256(raw)
	return domain.Fingerprint{
		PerceptualHash: fmt.Sprintf("%016x", bits),
		ContentHash:    hex.EncodeToString(digest[:]),
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		FileSize:       int64(len(raw)),
	}, nil
}
