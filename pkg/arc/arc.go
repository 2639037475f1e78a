package arc

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// Arc is the parsed index of one archive: the top-level header, the node
// section header, and the resolved table layout. It is a read-only view
// over the node section buffer captured during Parse.
type Arc struct {
	Header     ArcHeader
	NodeHeader NodeHeader
	Layout     *Layout

	nodeData []byte
}

// NodeData returns the raw node section payload the layout was resolved
// over (the bytes following the node header).
func (a *Arc) NodeData() []byte {
	return a.nodeData
}

// parseConfig holds parse options.
type parseConfig struct {
	decompressNode bool
}

// ParseOption configures parse behavior.
type ParseOption func(*parseConfig)

// WithNodeDecompression enables zstd decoding of a compressed node section.
// Without it a compressed node section fails with an
// UnsupportedFeatureError.
func WithNodeDecompression(enable bool) ParseOption {
	return func(c *parseConfig) {
		c.decompressNode = enable
	}
}

// Parse reads an archive from r, which must be positioned at offset 0.
//
// A stream that does not begin with the magic signature fails with
// ErrNotArcFormat and nothing past the signature is read; the caller may
// then try a different format parser. Once the magic has matched, every
// failure is an internal error (CorruptHeaderError, TruncatedDataError,
// UnsupportedFeatureError, or a wrapped I/O error) and indicates a corrupt
// or unsupported file rather than a foreign format.
func Parse(r io.ReadSeeker, opts ...ParseOption) (*Arc, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var magicBuf [MagicSize]byte
	if _, err := io.ReadFull(r, magicBuf[:]); err != nil {
		return nil, ErrNotArcFormat
	}
	if binary.LittleEndian.Uint64(magicBuf[:]) != Magic {
		return nil, ErrNotArcFormat
	}

	a := &Arc{}

	headerBuf := make([]byte, ArcHeaderSize)
	if _, err := io.ReadFull(r, headerBuf); err != nil {
		return nil, fmt.Errorf("read arc header: %w", err)
	}
	if err := a.Header.UnmarshalBinary(headerBuf); err != nil {
		return nil, fmt.Errorf("parse arc header: %w", err)
	}

	if _, err := r.Seek(int64(a.Header.NodeSectionOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek node section: %w", err)
	}

	probeBuf := make([]byte, CompressedNodeHeaderSize)
	if _, err := io.ReadFull(r, probeBuf); err != nil {
		return nil, fmt.Errorf("read node section probe: %w", err)
	}
	var probe CompressedNodeHeader
	if err := probe.UnmarshalBinary(probeBuf); err != nil {
		return nil, fmt.Errorf("parse node section probe: %w", err)
	}

	var node []byte
	if probe.Compressed() {
		if !cfg.decompressNode {
			return nil, &UnsupportedFeatureError{Feature: "compressed node section"}
		}
		decompressed, err := readCompressedNode(r, a.Header.NodeSectionOffset, &probe)
		if err != nil {
			return nil, err
		}
		node = decompressed
	} else {
		raw, err := readRawNode(r, a.Header.NodeSectionOffset, &a.NodeHeader)
		if err != nil {
			return nil, err
		}
		a.nodeData = raw
	}

	if node != nil {
		if err := a.NodeHeader.UnmarshalBinary(node); err != nil {
			return nil, fmt.Errorf("parse decompressed node header: %w", err)
		}
		if len(node) < int(a.NodeHeader.FileSize) {
			return nil, &TruncatedDataError{
				Section:   "node section",
				Needed:    int(a.NodeHeader.FileSize),
				Available: len(node),
			}
		}
		a.nodeData = node[NodeHeaderSize:a.NodeHeader.FileSize]
	}

	layout, err := Resolve(a.nodeData, &a.NodeHeader)
	if err != nil {
		return nil, err
	}
	a.Layout = layout

	return a, nil
}

// readRawNode re-reads the node section header at offset and the payload
// that follows it. The header is decoded into h.
func readRawNode(r io.ReadSeeker, offset uint64, h *NodeHeader) ([]byte, error) {
	if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek node header: %w", err)
	}

	headerBuf := make([]byte, NodeHeaderSize)
	if _, err := io.ReadFull(r, headerBuf); err != nil {
		return nil, fmt.Errorf("read node header: %w", err)
	}
	if err := h.UnmarshalBinary(headerBuf); err != nil {
		return nil, fmt.Errorf("parse node header: %w", err)
	}

	payload := make([]byte, h.PayloadSize())
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read node section: %w", err)
	}
	return payload, nil
}

// readCompressedNode reads the zstd stream a compressed node header points
// at and decompresses it. The result holds a raw node header followed by
// its payload, exactly as an uncompressed node section would.
func readCompressedNode(r io.ReadSeeker, offset uint64, h *CompressedNodeHeader) ([]byte, error) {
	if _, err := r.Seek(int64(offset)+int64(h.DataStart), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek compressed node data: %w", err)
	}

	compressed := make([]byte, h.ZstdCompSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("read compressed node data: %w", err)
	}

	decompressed, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress node section: %w", err)
	}
	if len(decompressed) != int(h.DecompSize) {
		return nil, &CorruptHeaderError{
			Field:  "decomp_size",
			Reason: fmt.Sprintf("declares %d bytes, stream decompressed to %d", h.DecompSize, len(decompressed)),
		}
	}
	return decompressed, nil
}
