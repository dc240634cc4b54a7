// Package filters provides the decompression and scanline reconstruction
// stages of PNG decoding.
//
// # Inflate
//
// The concatenated IDAT payload is a single zlib stream:
//
//	raw, err := filters.Inflate(compressed, height*(1+stride))
//
// The limit is both a capacity hint and an upper bound; the decoder never
// needs more than one filter byte plus stride bytes per row.
//
// # Defilter
//
// Each scanline starts with a filter-type byte that selects a predictor:
//   - 0: None
//   - 1: Sub (left neighbour)
//   - 2: Up (neighbour above)
//   - 3: Average (floor of the mean of left and above)
//   - 4: Paeth (closest of left, above, upper-left to left+above-upperLeft)
//
// Reconstruction adds the predictor to the filtered byte modulo 256:
//
//	pix, err := filters.Defilter(raw, height, stride, bytesPerPixel, filters.PaethWrapping)
package filters
