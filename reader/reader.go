package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/tsawler/tinypng/core"
	"github.com/tsawler/tinypng/internal/filters"
	"github.com/tsawler/tinypng/model"
)

// State is the position of a Reader in the decode pipeline.
type State int

const (
	// AwaitingSignature is the initial state: nothing has been read.
	AwaitingSignature State = iota
	// ReadingChunks means the signature matched and chunks are being framed.
	ReadingChunks
	// Assembling means IEND was seen and the image is being reconstructed.
	Assembling
	// Done means Decode returned an image.
	Done
	// Failed means Decode returned an error; Err reports it.
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case AwaitingSignature:
		return "AwaitingSignature"
	case ReadingChunks:
		return "ReadingChunks"
	case Assembling:
		return "Assembling"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PaethMode selects Paeth predictor arithmetic.
type PaethMode = filters.PaethMode

// Paeth predictor modes.
const (
	// PaethWrapping computes the Paeth estimate modulo 256 (the default).
	PaethWrapping = filters.PaethWrapping
	// PaethExact computes it in full precision, matching image/png.
	PaethExact = filters.PaethExact
)

// ErrAlreadyDecoded is returned by Decode when called a second time.
var ErrAlreadyDecoded = errors.New("reader: Decode already called")

// Options configures a Reader. The zero value decodes with the default
// limits and logs nothing.
type Options struct {
	// Logger receives trace and debug events. Nil disables logging.
	Logger *zerolog.Logger

	// MaxPixels rejects images with more than this many pixels before any
	// pixel memory is allocated. Zero means no limit.
	MaxPixels uint64

	// MaxChunkLength rejects chunks declaring a longer payload. Zero means
	// the PNG maximum of 2^31-1.
	MaxChunkLength uint32

	// PaethMode selects Paeth predictor arithmetic.
	PaethMode PaethMode
}

// Reader decodes one PNG stream.
type Reader struct {
	r     io.Reader
	file  *os.File // set when the Reader opened the file itself
	opts  Options
	log   zerolog.Logger
	state State
	err   error

	header  *core.Header
	palette *core.Palette
}

// NewReader creates a Reader over r. Nothing is read until Decode.
func NewReader(r io.Reader, opts Options) *Reader {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Reader{
		r:    bufio.NewReader(r),
		opts: opts,
		log:  log,
	}
}

// Open opens a PNG file for decoding. The Reader must be closed.
func Open(filename string, opts Options) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader := NewReader(file, opts)
	reader.file = file
	reader.log = reader.log.With().Str("file", filename).Logger()
	return reader, nil
}

// Decode reads a complete PNG stream from r and returns its image.
func Decode(r io.Reader, opts Options) (*model.Image, error) {
	return NewReader(r, opts).Decode()
}

// ReadHeader reads only as far as the first interpreted chunk and returns
// it if it is a valid IHDR. Ancillary chunks before it are skipped. No
// pixel data is read.
func ReadHeader(r io.Reader, opts Options) (*core.Header, error) {
	br := bufio.NewReader(r)
	if err := core.ReadSignature(br); err != nil {
		return nil, err
	}

	cr := core.NewChunkReader(br)
	cr.SetMaxLength(opts.MaxChunkLength)
	for {
		chunk, err := cr.ReadChunk()
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			continue
		}
		header, ok := chunk.(*core.Header)
		if !ok {
			return nil, core.Errorf(core.InvalidStartingChunk, "first chunk is %s", chunk.Type())
		}
		return header, nil
	}
}

// Close closes the file opened by Open. It is a no-op for readers created
// with NewReader.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// State returns the current pipeline state.
func (r *Reader) State() State {
	return r.state
}

// Err returns the error that moved the Reader to Failed, or nil.
func (r *Reader) Err() error {
	return r.err
}

// Header returns the IHDR chunk once it has been accepted during assembly,
// or nil.
func (r *Reader) Header() *core.Header {
	return r.header
}

// Palette returns the PLTE chunk that followed IHDR, if any. It is
// validated but never used for colour lookup.
func (r *Reader) Palette() *core.Palette {
	return r.palette
}

// Decode runs the whole pipeline: signature, chunk loop up to IEND, then
// assembly. The first failure aborts decoding and is returned as a
// *core.Error; no partial image is produced.
func (r *Reader) Decode() (*model.Image, error) {
	if r.state != AwaitingSignature {
		return nil, ErrAlreadyDecoded
	}

	if err := core.ReadSignature(r.r); err != nil {
		return nil, r.fail(err)
	}
	r.transition(ReadingChunks)

	chunks, err := r.readChunks()
	if err != nil {
		return nil, r.fail(err)
	}
	r.transition(Assembling)

	img, err := r.assemble(chunks)
	if err != nil {
		return nil, r.fail(err)
	}
	r.transition(Done)

	return img, nil
}

// readChunks frames chunks until IEND. Ignored ancillary chunks are not
// returned; the IEND marker is the last element.
func (r *Reader) readChunks() ([]core.Chunk, error) {
	cr := core.NewChunkReader(r.r)
	cr.SetMaxLength(r.opts.MaxChunkLength)

	var chunks []core.Chunk
	for {
		raw, err := cr.ReadRaw()
		if err != nil {
			return nil, err
		}
		r.log.Trace().
			Str("type", raw.Type).
			Int("length", len(raw.Data)).
			Msg("framed chunk")

		if err := raw.Verify(); err != nil {
			return nil, err
		}
		chunk, err := raw.Interpret()
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			r.log.Debug().Str("type", raw.Type).Msg("skipping ancillary chunk")
			continue
		}

		chunks = append(chunks, chunk)
		if _, ok := chunk.(core.End); ok {
			return chunks, nil
		}
	}
}

// assemble validates the collected chunks and reconstructs the image.
func (r *Reader) assemble(chunks []core.Chunk) (*model.Image, error) {
	header, ok := chunks[0].(*core.Header)
	if !ok {
		return nil, core.Errorf(core.InvalidStartingChunk, "first chunk is %s", chunks[0].Type())
	}
	rest := chunks[1:]

	if plte, ok := rest[0].(core.Palette); ok {
		r.palette = &plte
		r.log.Debug().Int("entries", len(plte.Entries)).Msg("palette present, not used for truecolor")
		rest = rest[1:]
	}

	compressed := aggregate(rest)

	pixelType, err := header.PixelType()
	if err != nil {
		return nil, err
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}
	if header.CompressionMethod != core.CompressionZlib {
		return nil, core.Errorf(core.UnsupportedCompressionMethod, "method %d", header.CompressionMethod)
	}
	if r.opts.MaxPixels > 0 && header.Pixels() > r.opts.MaxPixels {
		return nil, core.Errorf(core.Unimplemented, "%dx%d image exceeds limit of %d pixels", header.Width, header.Height, r.opts.MaxPixels)
	}
	size, ok := header.InflatedSize(pixelType)
	if !ok {
		return nil, core.Errorf(core.Unimplemented, "dimension overflow %dx%d", header.Width, header.Height)
	}
	r.header = header

	r.log.Debug().
		Uint32("width", header.Width).
		Uint32("height", header.Height).
		Stringer("pixel_type", pixelType).
		Int("compressed", len(compressed)).
		Int("expected", size).
		Msg("assembling image")

	raw, err := filters.Inflate(compressed, size)
	if err != nil {
		return nil, err
	}

	bpp := pixelType.BytesPerPixel()
	stride := int(header.Width) * bpp
	recon, err := filters.Defilter(raw, int(header.Height), stride, bpp, r.opts.PaethMode)
	if err != nil {
		return nil, err
	}

	return model.NewImage(header.Width, header.Height, pixelType, recon)
}

// aggregate concatenates IDAT payloads in stream order.
func aggregate(chunks []core.Chunk) []byte {
	n := 0
	for _, c := range chunks {
		if data, ok := c.(core.ImageData); ok {
			n += len(data)
		}
	}

	compressed := make([]byte, 0, n)
	for _, c := range chunks {
		if data, ok := c.(core.ImageData); ok {
			compressed = append(compressed, data...)
		}
	}
	return compressed
}

func (r *Reader) transition(s State) {
	r.log.Debug().Stringer("from", r.state).Stringer("to", s).Msg("decode state")
	r.state = s
}

func (r *Reader) fail(err error) error {
	if kind, ok := core.KindOf(err); ok {
		r.log.Debug().Err(err).Stringer("kind", kind).Stringer("state", r.state).Msg("decode failed")
	}
	r.state = Failed
	r.err = err
	return err
}
