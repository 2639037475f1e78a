package arc

import (
	"encoding/binary"
	"fmt"
)

// Section indices into Layout.Sections, in the fixed file order the node
// section stores its tables.
const (
	SectionBulkfileCategoryInfo = iota
	SectionBulkfileHashLookup
	SectionBulkfilesByName
	SectionBulkfileLookupToFileIdx
	SectionFilePairs
	SectionAnotherHashTable
	SectionBigHashes
	SectionBigFiles
	SectionFolderHashLookup
	SectionTrees
	SectionSubFiles1
	SectionSubFiles2
	SectionFolderToBigHash
	SectionFileLookupBuckets
	SectionFileLookup
	SectionNumbers

	SectionCount
)

var sectionNames = [SectionCount]string{
	"bulkfile_category_info",
	"bulkfile_hash_lookup",
	"bulkfiles_by_name",
	"bulkfile_lookup_to_fileidx",
	"file_pairs",
	"another_hash_table",
	"big_hashes",
	"big_files",
	"folder_hash_lookup",
	"trees",
	"sub_files1",
	"sub_files2",
	"folder_to_big_hash",
	"file_lookup_buckets",
	"file_lookup",
	"numbers",
}

// SectionName returns the file-defined name of a section index.
func SectionName(section int) string {
	if section < 0 || section >= SectionCount {
		return fmt.Sprintf("section %d", section)
	}
	return sectionNames[section]
}

// SectionView is one contiguous typed sub-range of the node section buffer.
// Views never copy: they alias the buffer passed to Resolve.
type SectionView struct {
	Name      string
	EntrySize int
	Count     int
	offset    int
	data      []byte
}

// Bytes returns the raw bytes of the section.
func (s *SectionView) Bytes() []byte {
	return s.data
}

// Offset returns the section's byte offset within the node section payload.
func (s *SectionView) Offset() int {
	return s.offset
}

// Len returns the section's byte length.
func (s *SectionView) Len() int {
	return len(s.data)
}

// EntryBytes returns the raw bytes of entry i.
func (s *SectionView) EntryBytes(i int) ([]byte, error) {
	if i < 0 || i >= s.Count {
		return nil, fmt.Errorf("%s: entry %d out of range (%d entries)", s.Name, i, s.Count)
	}
	start := i * s.EntrySize
	return s.data[start : start+s.EntrySize], nil
}

// Layout holds the resolved section boundaries of one node section, plus
// the bucket header that sized the file lookup bucket table.
type Layout struct {
	Sections [SectionCount]SectionView
	Buckets  HashBucket
}

// Section returns the view for the given section index.
func (l *Layout) Section(section int) *SectionView {
	return &l.Sections[section]
}

// Resolve slices the node section payload into its tables. The file stores
// no explicit table offsets: every boundary is reconstructed from the node
// header counts, so the walk is a single forward pass and a bad count
// invalidates every boundary after it. Resolution fails with a
// TruncatedDataError naming the first section that overflows the buffer.
func Resolve(buf []byte, h *NodeHeader) (*Layout, error) {
	l := &Layout{}
	cursor := 0

	take := func(section, entrySize, count int) error {
		length := entrySize * count
		if length > len(buf)-cursor {
			return &TruncatedDataError{
				Section:   sectionNames[section],
				Needed:    length,
				Available: len(buf) - cursor,
			}
		}
		l.Sections[section] = SectionView{
			Name:      sectionNames[section],
			EntrySize: entrySize,
			Count:     count,
			offset:    cursor,
			data:      buf[cursor : cursor+length],
		}
		cursor += length
		return nil
	}

	headerDriven := []struct {
		section   int
		entrySize int
		count     int
	}{
		{SectionBulkfileCategoryInfo, TripletSize, int(h.MovieCount)},
		{SectionBulkfileHashLookup, PairSize, int(h.Part1Count)},
		{SectionBulkfilesByName, TripletSize, int(h.Part1Count)},
		{SectionBulkfileLookupToFileIdx, 4, int(h.Part2Count)},
		{SectionFilePairs, FilePairSize, int(h.MusicFileCount)},
		{SectionAnotherHashTable, TripletSize, int(h.AnotherHashTableSize)},
		{SectionBigHashes, BigHashEntrySize, int(h.FolderCount)},
		{SectionBigFiles, BigFileEntrySize, int(h.FileCount1) + int(h.FileCount2)},
		{SectionFolderHashLookup, PairSize, int(h.HashFolderCount)},
		{SectionTrees, TreeEntrySize, int(h.TreeCount)},
		{SectionSubFiles1, FileEntrySize, int(h.SubFiles1Count)},
		{SectionSubFiles2, FileEntrySize, int(h.SubFiles2Count)},
		{SectionFolderToBigHash, PairSize, int(h.FolderCount)},
	}
	for _, step := range headerDriven {
		if err := take(step.section, step.entrySize, step.count); err != nil {
			return nil, err
		}
	}

	// The bucket table is the one boundary not derived from the node
	// header: its bucket header is read in place at the cursor and sizes
	// the table that contains it. An empty remainder means the node
	// section carries no bucket table at all.
	switch remaining := len(buf) - cursor; {
	case remaining == 0:
		if err := take(SectionFileLookupBuckets, HashBucketSize, 0); err != nil {
			return nil, err
		}
	case remaining < HashBucketSize:
		return nil, &TruncatedDataError{
			Section:   sectionNames[SectionFileLookupBuckets],
			Needed:    HashBucketSize,
			Available: remaining,
		}
	default:
		l.Buckets.DecodeFrom(buf[cursor:])
		if err := take(SectionFileLookupBuckets, HashBucketSize, int(l.Buckets.NumEntries)+1); err != nil {
			return nil, err
		}
	}

	if err := take(SectionFileLookup, PairSize, int(h.FileLookupCount)); err != nil {
		return nil, err
	}

	// Trailing numbers region: whatever remains, Pair-encoded.
	rest := buf[cursor:]
	l.Sections[SectionNumbers] = SectionView{
		Name:      sectionNames[SectionNumbers],
		EntrySize: PairSize,
		Count:     len(rest) / PairSize,
		offset:    cursor,
		data:      rest,
	}

	return l, nil
}

// Pairs decodes every entry of a Pair-encoded section.
func Pairs(s *SectionView) ([]Pair, error) {
	if s.EntrySize != PairSize {
		return nil, fmt.Errorf("%s: %d-byte entries, not pairs", s.Name, s.EntrySize)
	}
	out := make([]Pair, s.Count)
	for i := range out {
		out[i].DecodeFrom(s.data[i*PairSize:])
	}
	return out, nil
}

// Triplets decodes every entry of a Triplet-encoded section.
func Triplets(s *SectionView) ([]Triplet, error) {
	if s.EntrySize != TripletSize {
		return nil, fmt.Errorf("%s: %d-byte entries, not triplets", s.Name, s.EntrySize)
	}
	out := make([]Triplet, s.Count)
	for i := range out {
		out[i].DecodeFrom(s.data[i*TripletSize:])
	}
	return out, nil
}

// FileIndices decodes the bulkfile_lookup_to_fileidx section, whose entries
// are bare 32-bit file indices.
func FileIndices(s *SectionView) ([]uint32, error) {
	if s.EntrySize != 4 {
		return nil, fmt.Errorf("%s: %d-byte entries, not file indices", s.Name, s.EntrySize)
	}
	out := make([]uint32, s.Count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(s.data[i*4:])
	}
	return out, nil
}

// FilePairs decodes every entry of the file_pairs section.
func FilePairs(s *SectionView) ([]FilePair, error) {
	if s.EntrySize != FilePairSize {
		return nil, fmt.Errorf("%s: %d-byte entries, not file pairs", s.Name, s.EntrySize)
	}
	out := make([]FilePair, s.Count)
	for i := range out {
		out[i].DecodeFrom(s.data[i*FilePairSize:])
	}
	return out, nil
}

// BigHashEntries decodes every entry of the big_hashes section.
func BigHashEntries(s *SectionView) ([]BigHashEntry, error) {
	if s.EntrySize != BigHashEntrySize {
		return nil, fmt.Errorf("%s: %d-byte entries, not big hash entries", s.Name, s.EntrySize)
	}
	out := make([]BigHashEntry, s.Count)
	for i := range out {
		out[i].DecodeFrom(s.data[i*BigHashEntrySize:])
	}
	return out, nil
}

// BigFileEntries decodes every entry of the big_files section.
func BigFileEntries(s *SectionView) ([]BigFileEntry, error) {
	if s.EntrySize != BigFileEntrySize {
		return nil, fmt.Errorf("%s: %d-byte entries, not big file entries", s.Name, s.EntrySize)
	}
	out := make([]BigFileEntry, s.Count)
	for i := range out {
		out[i].DecodeFrom(s.data[i*BigFileEntrySize:])
	}
	return out, nil
}

// TreeEntries decodes every entry of the trees section.
func TreeEntries(s *SectionView) ([]TreeEntry, error) {
	if s.EntrySize != TreeEntrySize {
		return nil, fmt.Errorf("%s: %d-byte entries, not tree entries", s.Name, s.EntrySize)
	}
	out := make([]TreeEntry, s.Count)
	for i := range out {
		out[i].DecodeFrom(s.data[i*TreeEntrySize:])
	}
	return out, nil
}

// FileEntries decodes every entry of a FileEntry-encoded section.
func FileEntries(s *SectionView) ([]FileEntry, error) {
	if s.EntrySize != FileEntrySize {
		return nil, fmt.Errorf("%s: %d-byte entries, not file entries", s.Name, s.EntrySize)
	}
	out := make([]FileEntry, s.Count)
	for i := range out {
		out[i].DecodeFrom(s.data[i*FileEntrySize:])
	}
	return out, nil
}

// HashBuckets decodes every entry of the file_lookup_buckets section,
// including the bucket header row.
func HashBuckets(s *SectionView) ([]HashBucket, error) {
	if s.EntrySize != HashBucketSize {
		return nil, fmt.Errorf("%s: %d-byte entries, not hash buckets", s.Name, s.EntrySize)
	}
	out := make([]HashBucket, s.Count)
	for i := range out {
		out[i].DecodeFrom(s.data[i*HashBucketSize:])
	}
	return out, nil
}
