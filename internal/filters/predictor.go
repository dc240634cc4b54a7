package filters

import (
	"io"
	"strconv"

	"github.com/tsawler/tinypng/core"
)

// Filter types, as per the PNG spec.
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
	nFilter   = 5
)

// PaethMode selects how the Paeth predictor forms its linear estimate.
type PaethMode int

const (
	// PaethWrapping computes p = a + b - c in 8-bit arithmetic, wrapping
	// modulo 256, and compares absolute differences of those bytes.
	PaethWrapping PaethMode = iota
	// PaethExact computes p = a + b - c without truncation, as the PNG
	// specification's reference code does. Decoders such as image/png use
	// this form.
	PaethExact
)

// String returns the mode name.
func (m PaethMode) String() string {
	if m == PaethExact {
		return "exact"
	}
	return "wrapping"
}

// Defilter reconstructs height rows of stride bytes from filtered
// scanlines. Each scanline in data is one filter-type byte followed by
// stride filtered bytes; bytesPerPixel is the distance to the "left"
// neighbour. The returned buffer holds height*stride reconstructed bytes.
//
// A filter type outside 0..4 fails with InvalidFilterType before any byte
// of that row is written. Data that ends before the last row is an Io error
// wrapping io.ErrUnexpectedEOF. Only the rows present in data are
// allocated, whatever height claims.
func Defilter(data []byte, height, stride, bytesPerPixel int, mode PaethMode) ([]byte, error) {
	rows := min(height, len(data)/(1+stride))
	recon := make([]byte, rows*stride)

	pos := 0
	for row := 0; row < height; row++ {
		if pos >= len(data) {
			return nil, truncated(row)
		}
		filterType := data[pos]
		pos++
		if filterType >= nFilter {
			return nil, core.Errorf(core.InvalidFilterType, "row %d: filter type %d", row, filterType)
		}
		if len(data)-pos < stride {
			return nil, truncated(row)
		}

		cur := recon[row*stride : (row+1)*stride]
		var prev []byte
		if row > 0 {
			prev = recon[(row-1)*stride : row*stride]
		}
		decodeRow(cur, data[pos:pos+stride], prev, filterType, bytesPerPixel, mode)
		pos += stride
	}

	return recon, nil
}

// decodeRow reconstructs one row into cur. prev is the previous
// reconstructed row, or nil for the first row. cur and prev never overlap.
func decodeRow(cur, filtered, prev []byte, filterType byte, bytesPerPixel int, mode PaethMode) {
	switch filterType {
	case ftNone:
		copy(cur, filtered)

	case ftSub:
		for i, x := range filtered {
			cur[i] = x + left(cur, i, bytesPerPixel)
		}

	case ftUp:
		for i, x := range filtered {
			cur[i] = x + up(prev, i)
		}

	case ftAverage:
		for i, x := range filtered {
			cur[i] = x + uint8((int(left(cur, i, bytesPerPixel))+int(up(prev, i)))/2)
		}

	case ftPaeth:
		predict := paethPredictor
		if mode == PaethExact {
			predict = paethPredictorExact
		}
		for i, x := range filtered {
			cur[i] = x + predict(left(cur, i, bytesPerPixel), up(prev, i), upLeft(prev, i, bytesPerPixel))
		}
	}
}

// left is the reconstructed byte one pixel to the left, or 0 in the first
// pixel of a row.
func left(cur []byte, i, bytesPerPixel int) uint8 {
	if i >= bytesPerPixel {
		return cur[i-bytesPerPixel]
	}
	return 0
}

// up is the reconstructed byte directly above, or 0 in the first row.
func up(prev []byte, i int) uint8 {
	if prev != nil {
		return prev[i]
	}
	return 0
}

// upLeft is the reconstructed byte above and one pixel left, or 0 when
// either neighbour is missing.
func upLeft(prev []byte, i, bytesPerPixel int) uint8 {
	if prev != nil && i >= bytesPerPixel {
		return prev[i-bytesPerPixel]
	}
	return 0
}

// paethPredictor selects whichever of a (left), b (above) and c (upper
// left) is closest to p = a + b - c, with p computed modulo 256. Ties go to
// a, then b.
func paethPredictor(a, b, c uint8) uint8 {
	p := a + b - c
	pa := absDiff(p, a)
	pb := absDiff(p, b)
	pc := absDiff(p, c)

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

// paethPredictorExact is paethPredictor with p computed in int.
func paethPredictorExact(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func absDiff(x, y uint8) uint8 {
	if x > y {
		return x - y
	}
	return y - x
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func truncated(row int) error {
	return &core.Error{
		Kind:   core.Io,
		Detail: "image data ends in row " + strconv.Itoa(row),
		Err:    io.ErrUnexpectedEOF,
	}
}
