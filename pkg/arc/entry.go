package arc

import (
	"encoding/binary"
)

// PairSize is the fixed binary size of a Pair entry.
const PairSize = 8

// Pair packs a 40-bit hash with 24 bits of metadata into 8 bytes. The hash
// occupies the low five bytes and the metadata the next three; both are
// reassembled byte-by-byte and zero-extended because neither field is
// aligned to a native integer width.
type Pair struct {
	Hash uint64 // 40 bits
	Meta uint32 // 24 bits
}

// DecodeFrom reads the entry from the given buffer.
// The buffer must be at least PairSize bytes.
func (p *Pair) DecodeFrom(data []byte) {
	p.Hash = uint64(data[0]) | uint64(data[1])<<8 | uint64(data[2])<<16 |
		uint64(data[3])<<24 | uint64(data[4])<<32
	p.Meta = uint32(data[5]) | uint32(data[6])<<8 | uint32(data[7])<<16
}

// UnmarshalBinary decodes the entry from binary format.
func (p *Pair) UnmarshalBinary(data []byte) error {
	if len(data) < PairSize {
		return &TruncatedDataError{Section: "pair entry", Needed: PairSize, Available: len(data)}
	}
	p.DecodeFrom(data)
	return nil
}

// TripletSize is the fixed binary size of a Triplet entry.
const TripletSize = 12

// Triplet is a Pair followed by a third 32-bit metadata field.
type Triplet struct {
	Hash  uint64 // 40 bits
	Meta  uint32 // 24 bits
	Meta2 uint32
}

// DecodeFrom reads the entry from the given buffer.
// The buffer must be at least TripletSize bytes.
func (t *Triplet) DecodeFrom(data []byte) {
	var p Pair
	p.DecodeFrom(data)
	t.Hash = p.Hash
	t.Meta = p.Meta
	t.Meta2 = binary.LittleEndian.Uint32(data[8:12])
}

// UnmarshalBinary decodes the entry from binary format.
func (t *Triplet) UnmarshalBinary(data []byte) error {
	if len(data) < TripletSize {
		return &TruncatedDataError{Section: "triplet entry", Needed: TripletSize, Available: len(data)}
	}
	t.DecodeFrom(data)
	return nil
}

// FilePairSize is the fixed binary size of a FilePair entry.
const FilePairSize = 16

// FilePair records the size and offset of a referenced payload.
type FilePair struct {
	Size   uint64
	Offset uint64
}

// DecodeFrom reads the entry from the given buffer.
// The buffer must be at least FilePairSize bytes.
func (f *FilePair) DecodeFrom(data []byte) {
	f.Size = binary.LittleEndian.Uint64(data[0:8])
	f.Offset = binary.LittleEndian.Uint64(data[8:16])
}

// UnmarshalBinary decodes the entry from binary format.
func (f *FilePair) UnmarshalBinary(data []byte) error {
	if len(data) < FilePairSize {
		return &TruncatedDataError{Section: "file pair entry", Needed: FilePairSize, Available: len(data)}
	}
	f.DecodeFrom(data)
	return nil
}

// BigHashEntrySize is the fixed binary size of a BigHashEntry.
const BigHashEntrySize = 52

// BigHashEntry describes a folder: four hash pairs followed by its
// suboffset range and flags.
type BigHashEntry struct {
	Path           Pair
	Folder         Pair
	Parent         Pair
	Hash4          Pair
	SuboffsetStart uint32
	NumFiles       uint32
	Unk3           uint32
	Unk4           uint16
	Unk5           uint16
	Unk6           uint8
	Unk7           uint8
	Unk8           uint8
	Unk9           uint8
}

// DecodeFrom reads the entry from the given buffer.
// The buffer must be at least BigHashEntrySize bytes.
func (e *BigHashEntry) DecodeFrom(data []byte) {
	e.Path.DecodeFrom(data[0:])
	e.Folder.DecodeFrom(data[8:])
	e.Parent.DecodeFrom(data[16:])
	e.Hash4.DecodeFrom(data[24:])
	e.SuboffsetStart = binary.LittleEndian.Uint32(data[32:36])
	e.NumFiles = binary.LittleEndian.Uint32(data[36:40])
	e.Unk3 = binary.LittleEndian.Uint32(data[40:44])
	e.Unk4 = binary.LittleEndian.Uint16(data[44:46])
	e.Unk5 = binary.LittleEndian.Uint16(data[46:48])
	e.Unk6 = data[48]
	e.Unk7 = data[49]
	e.Unk8 = data[50]
	e.Unk9 = data[51]
}

// UnmarshalBinary decodes the entry from binary format.
func (e *BigHashEntry) UnmarshalBinary(data []byte) error {
	if len(data) < BigHashEntrySize {
		return &TruncatedDataError{Section: "big hash entry", Needed: BigHashEntrySize, Available: len(data)}
	}
	e.DecodeFrom(data)
	return nil
}

// TreeEntrySize is the fixed binary size of a TreeEntry.
const TreeEntrySize = 40

// TreeEntry links a path to its extension, folder and file hashes.
type TreeEntry struct {
	Path           Pair
	Ext            Pair
	Folder         Pair
	File           Pair
	SuboffsetIndex uint32
	Flags          uint32
}

// DecodeFrom reads the entry from the given buffer.
// The buffer must be at least TreeEntrySize bytes.
func (e *TreeEntry) DecodeFrom(data []byte) {
	e.Path.DecodeFrom(data[0:])
	e.Ext.DecodeFrom(data[8:])
	e.Folder.DecodeFrom(data[16:])
	e.File.DecodeFrom(data[24:])
	e.SuboffsetIndex = binary.LittleEndian.Uint32(data[32:36])
	e.Flags = binary.LittleEndian.Uint32(data[36:40])
}

// UnmarshalBinary decodes the entry from binary format.
func (e *TreeEntry) UnmarshalBinary(data []byte) error {
	if len(data) < TreeEntrySize {
		return &TruncatedDataError{Section: "tree entry", Needed: TreeEntrySize, Available: len(data)}
	}
	e.DecodeFrom(data)
	return nil
}

// BigFileEntrySize is the fixed binary size of a BigFileEntry.
const BigFileEntrySize = 28

// BigFileEntry describes a compressed group payload.
type BigFileEntry struct {
	Offset         uint64
	DecompSize     uint32
	CompSize       uint32
	SuboffsetIndex uint32
	Files          uint32
	Unk3           uint32
}

// DecodeFrom reads the entry from the given buffer.
// The buffer must be at least BigFileEntrySize bytes.
func (e *BigFileEntry) DecodeFrom(data []byte) {
	e.Offset = binary.LittleEndian.Uint64(data[0:8])
	e.DecompSize = binary.LittleEndian.Uint32(data[8:12])
	e.CompSize = binary.LittleEndian.Uint32(data[12:16])
	e.SuboffsetIndex = binary.LittleEndian.Uint32(data[16:20])
	e.Files = binary.LittleEndian.Uint32(data[20:24])
	e.Unk3 = binary.LittleEndian.Uint32(data[24:28])
}

// UnmarshalBinary decodes the entry from binary format.
func (e *BigFileEntry) UnmarshalBinary(data []byte) error {
	if len(data) < BigFileEntrySize {
		return &TruncatedDataError{Section: "big file entry", Needed: BigFileEntrySize, Available: len(data)}
	}
	e.DecodeFrom(data)
	return nil
}

// FileEntrySize is the fixed binary size of a FileEntry.
const FileEntrySize = 16

// FileEntry describes a single sub-file payload.
type FileEntry struct {
	Offset     uint32
	CompSize   uint32
	DecompSize uint32
	Flags      uint32
}

// DecodeFrom reads the entry from the given buffer.
// The buffer must be at least FileEntrySize bytes.
func (e *FileEntry) DecodeFrom(data []byte) {
	e.Offset = binary.LittleEndian.Uint32(data[0:4])
	e.CompSize = binary.LittleEndian.Uint32(data[4:8])
	e.DecompSize = binary.LittleEndian.Uint32(data[8:12])
	e.Flags = binary.LittleEndian.Uint32(data[12:16])
}

// UnmarshalBinary decodes the entry from binary format.
func (e *FileEntry) UnmarshalBinary(data []byte) error {
	if len(data) < FileEntrySize {
		return &TruncatedDataError{Section: "file entry", Needed: FileEntrySize, Available: len(data)}
	}
	e.DecodeFrom(data)
	return nil
}

// HashBucketSize is the fixed binary size of a HashBucket.
const HashBucketSize = 8

// HashBucket heads the file lookup bucket table; NumEntries sizes the table
// that follows it.
type HashBucket struct {
	Index      uint32
	NumEntries uint32
}

// DecodeFrom reads the entry from the given buffer.
// The buffer must be at least HashBucketSize bytes.
func (b *HashBucket) DecodeFrom(data []byte) {
	b.Index = binary.LittleEndian.Uint32(data[0:4])
	b.NumEntries = binary.LittleEndian.Uint32(data[4:8])
}

// UnmarshalBinary decodes the entry from binary format.
func (b *HashBucket) UnmarshalBinary(data []byte) error {
	if len(data) < HashBucketSize {
		return &TruncatedDataError{Section: "hash bucket", Needed: HashBucketSize, Available: len(data)}
	}
	b.DecodeFrom(data)
	return nil
}
