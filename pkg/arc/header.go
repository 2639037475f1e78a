// Package arc parses the index structures of data.arc asset containers:
// the fixed archive header, the node section header, and the thirteen
// count-driven lookup tables packed back-to-back inside the node section.
package arc

import (
	"encoding/binary"
)

// Magic is the little-endian 64-bit signature at the start of every
// data.arc file.
const Magic uint64 = 0xabcdef9876543210

// MagicSize is the byte length of the magic signature.
const MagicSize = 8

// ArcHeaderSize is the fixed binary size of an archive header.
const ArcHeaderSize = 40 // five 8-byte section offsets

// ArcHeader holds the top-level section offsets of an archive. It sits
// immediately after the magic signature, at file offset 8.
type ArcHeader struct {
	MusicFileSectionOffset uint64
	FileSectionOffset      uint64
	MusicSectionOffset     uint64
	NodeSectionOffset      uint64
	UnkSectionOffset       uint64
}

// DecodeFrom reads the header from the given buffer.
// The buffer must be at least ArcHeaderSize bytes.
func (h *ArcHeader) DecodeFrom(data []byte) {
	h.MusicFileSectionOffset = binary.LittleEndian.Uint64(data[0:8])
	h.FileSectionOffset = binary.LittleEndian.Uint64(data[8:16])
	h.MusicSectionOffset = binary.LittleEndian.Uint64(data[16:24])
	h.NodeSectionOffset = binary.LittleEndian.Uint64(data[24:32])
	h.UnkSectionOffset = binary.LittleEndian.Uint64(data[32:40])
}

// UnmarshalBinary decodes the header from binary format.
func (h *ArcHeader) UnmarshalBinary(data []byte) error {
	if len(data) < ArcHeaderSize {
		return &TruncatedDataError{Section: "arc header", Needed: ArcHeaderSize, Available: len(data)}
	}
	h.DecodeFrom(data)
	return nil
}

// CompressedNodeHeaderSize is the size of the probe read at the node
// section offset to decide between the raw and compressed layouts.
const CompressedNodeHeaderSize = 16

// CompressedNodeHeader is the 16-byte probe at the node section offset.
// A DataStart below 0x100 identifies a zstd-compressed node section; any
// larger value means the same bytes are the front of a raw NodeHeader.
type CompressedNodeHeader struct {
	DataStart    uint32
	DecompSize   uint32
	CompSize     uint32
	ZstdCompSize uint32
}

// DecodeFrom reads the probe from the given buffer.
// The buffer must be at least CompressedNodeHeaderSize bytes.
func (h *CompressedNodeHeader) DecodeFrom(data []byte) {
	h.DataStart = binary.LittleEndian.Uint32(data[0:4])
	h.DecompSize = binary.LittleEndian.Uint32(data[4:8])
	h.CompSize = binary.LittleEndian.Uint32(data[8:12])
	h.ZstdCompSize = binary.LittleEndian.Uint32(data[12:16])
}

// UnmarshalBinary decodes the probe from binary format.
func (h *CompressedNodeHeader) UnmarshalBinary(data []byte) error {
	if len(data) < CompressedNodeHeaderSize {
		return &TruncatedDataError{Section: "compressed node header", Needed: CompressedNodeHeaderSize, Available: len(data)}
	}
	h.DecodeFrom(data)
	return nil
}

// Compressed reports whether the probe identifies a zstd-compressed
// node section.
func (h *CompressedNodeHeader) Compressed() bool {
	return h.DataStart < 0x100
}

// NodeHeaderSize is the fixed binary size of a raw node section header.
const NodeHeaderSize = 68

// NodeHeader is the raw node section header. Its count fields determine the
// length of every table that follows in the node section; FileSize covers
// the header itself plus the table payload.
type NodeHeader struct {
	FileSize    uint32
	FolderCount uint32
	FileCount1  uint32
	TreeCount   uint32

	SubFiles1Count       uint32
	FileLookupCount      uint32
	HashFolderCount      uint32
	FileInformationCount uint32

	FileCount2     uint32
	SubFiles2Count uint32
	Unk1           uint32
	Unk2           uint32

	AnotherHashTableSize uint8
	Unk3                 uint8
	Unk4                 uint16

	MovieCount     uint32
	Part1Count     uint32
	Part2Count     uint32
	MusicFileCount uint32
}

// DecodeFrom reads the header from the given buffer.
// The buffer must be at least NodeHeaderSize bytes.
func (h *NodeHeader) DecodeFrom(data []byte) {
	h.FileSize = binary.LittleEndian.Uint32(data[0:4])
	h.FolderCount = binary.LittleEndian.Uint32(data[4:8])
	h.FileCount1 = binary.LittleEndian.Uint32(data[8:12])
	h.TreeCount = binary.LittleEndian.Uint32(data[12:16])
	h.SubFiles1Count = binary.LittleEndian.Uint32(data[16:20])
	h.FileLookupCount = binary.LittleEndian.Uint32(data[20:24])
	h.HashFolderCount = binary.LittleEndian.Uint32(data[24:28])
	h.FileInformationCount = binary.LittleEndian.Uint32(data[28:32])
	h.FileCount2 = binary.LittleEndian.Uint32(data[32:36])
	h.SubFiles2Count = binary.LittleEndian.Uint32(data[36:40])
	h.Unk1 = binary.LittleEndian.Uint32(data[40:44])
	h.Unk2 = binary.LittleEndian.Uint32(data[44:48])
	h.AnotherHashTableSize = data[48]
	h.Unk3 = data[49]
	h.Unk4 = binary.LittleEndian.Uint16(data[50:52])
	h.MovieCount = binary.LittleEndian.Uint32(data[52:56])
	h.Part1Count = binary.LittleEndian.Uint32(data[56:60])
	h.Part2Count = binary.LittleEndian.Uint32(data[60:64])
	h.MusicFileCount = binary.LittleEndian.Uint32(data[64:68])
}

// Validate checks the header for validity.
func (h *NodeHeader) Validate() error {
	if h.FileSize < NodeHeaderSize {
		return &CorruptHeaderError{
			Field:  "file_size",
			Reason: "smaller than the node header itself",
		}
	}
	return nil
}

// UnmarshalBinary decodes the header from binary format and validates it.
func (h *NodeHeader) UnmarshalBinary(data []byte) error {
	if len(data) < NodeHeaderSize {
		return &TruncatedDataError{Section: "node header", Needed: NodeHeaderSize, Available: len(data)}
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// PayloadSize returns the byte length of the table payload that follows
// the node header.
func (h *NodeHeader) PayloadSize() int {
	return int(h.FileSize) - NodeHeaderSize
}
