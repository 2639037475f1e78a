package arc

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Run("ZeroCounts", func(t *testing.T) {
		h := &NodeHeader{FileSize: NodeHeaderSize}

		l, err := Resolve([]byte{}, h)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}

		for i := 0; i < SectionCount; i++ {
			s := l.Section(i)
			if s.Len() != 0 {
				t.Errorf("%s: got %d bytes, want 0", SectionName(i), s.Len())
			}
			if s.Offset() != 0 {
				t.Errorf("%s: got offset %d, want 0", SectionName(i), s.Offset())
			}
		}
	})

	t.Run("ExactPartition", func(t *testing.T) {
		h := &NodeHeader{
			FolderCount:          2,
			FileCount1:           1,
			TreeCount:            1,
			SubFiles1Count:       2,
			FileLookupCount:      2,
			HashFolderCount:      2,
			FileCount2:           1,
			SubFiles2Count:       1,
			AnotherHashTableSize: 1,
			MovieCount:           2,
			Part1Count:           1,
			Part2Count:           3,
			MusicFileCount:       1,
		}

		// Byte lengths of the header-driven sections, in file order.
		headerDriven := []int{
			TripletSize * 2,      // bulkfile_category_info
			PairSize * 1,         // bulkfile_hash_lookup
			TripletSize * 1,      // bulkfiles_by_name
			4 * 3,                // bulkfile_lookup_to_fileidx
			FilePairSize * 1,     // file_pairs
			TripletSize * 1,      // another_hash_table
			BigHashEntrySize * 2, // big_hashes
			BigFileEntrySize * 2, // big_files (file_count1 + file_count2)
			PairSize * 2,         // folder_hash_lookup
			TreeEntrySize * 1,    // trees
			FileEntrySize * 2,    // sub_files1
			FileEntrySize * 1,    // sub_files2
			PairSize * 2,         // folder_to_big_hash
		}

		bucketOffset := 0
		for _, n := range headerDriven {
			bucketOffset += n
		}

		// Bucket header with one entry: table spans two bucket rows.
		total := bucketOffset + HashBucketSize*2 + PairSize*int(h.FileLookupCount)
		buf := make([]byte, total)
		binary.LittleEndian.PutUint32(buf[bucketOffset:], 7)   // bucket index
		binary.LittleEndian.PutUint32(buf[bucketOffset+4:], 1) // num_entries

		l, err := Resolve(buf, h)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}

		offset := 0
		for i, n := range headerDriven {
			s := l.Section(i)
			if s.Offset() != offset || s.Len() != n {
				t.Errorf("%s: got offset=%d len=%d, want offset=%d len=%d",
					SectionName(i), s.Offset(), s.Len(), offset, n)
			}
			offset += n
		}

		buckets := l.Section(SectionFileLookupBuckets)
		if buckets.Offset() != bucketOffset || buckets.Len() != HashBucketSize*2 {
			t.Errorf("buckets: got offset=%d len=%d, want offset=%d len=%d",
				buckets.Offset(), buckets.Len(), bucketOffset, HashBucketSize*2)
		}
		if l.Buckets.Index != 7 || l.Buckets.NumEntries != 1 {
			t.Errorf("bucket header: got %+v", l.Buckets)
		}

		lookup := l.Section(SectionFileLookup)
		if lookup.Offset() != bucketOffset+HashBucketSize*2 || lookup.Count != 2 {
			t.Errorf("file_lookup: got offset=%d count=%d", lookup.Offset(), lookup.Count)
		}

		numbers := l.Section(SectionNumbers)
		if numbers.Len() != 0 {
			t.Errorf("numbers: got %d trailing bytes, want 0", numbers.Len())
		}

		// The sections partition the buffer: no gaps, no overlaps.
		consumed := 0
		for i := 0; i < SectionCount; i++ {
			s := l.Section(i)
			if s.Offset() != consumed {
				t.Errorf("%s: starts at %d, previous section ended at %d", SectionName(i), s.Offset(), consumed)
			}
			consumed += s.Len()
		}
		if consumed != len(buf) {
			t.Errorf("consumed %d of %d bytes", consumed, len(buf))
		}
	})

	t.Run("TruncatedFirstSection", func(t *testing.T) {
		h := &NodeHeader{MovieCount: 2}

		_, err := Resolve(make([]byte, 10), h)
		var truncated *TruncatedDataError
		if !errors.As(err, &truncated) {
			t.Fatalf("expected TruncatedDataError, got %v", err)
		}
		if truncated.Section != "bulkfile_category_info" {
			t.Errorf("wrong section: %q", truncated.Section)
		}
		if truncated.Needed != TripletSize*2 || truncated.Available != 10 {
			t.Errorf("wrong sizes: %+v", truncated)
		}
	})

	t.Run("TruncatedMidWalk", func(t *testing.T) {
		// movie_count fits, folder_count does not: the error must name
		// the first section that overflows, not an earlier or later one.
		h := &NodeHeader{MovieCount: 1, FolderCount: 3}

		_, err := Resolve(make([]byte, TripletSize+BigHashEntrySize), h)
		var truncated *TruncatedDataError
		if !errors.As(err, &truncated) {
			t.Fatalf("expected TruncatedDataError, got %v", err)
		}
		if truncated.Section != "big_hashes" {
			t.Errorf("wrong section: %q", truncated.Section)
		}
	})

	t.Run("TruncatedBucketHeader", func(t *testing.T) {
		// A non-empty remainder shorter than a bucket header cannot size
		// the bucket table.
		h := &NodeHeader{}

		_, err := Resolve(make([]byte, HashBucketSize-1), h)
		var truncated *TruncatedDataError
		if !errors.As(err, &truncated) {
			t.Fatalf("expected TruncatedDataError, got %v", err)
		}
		if truncated.Section != "file_lookup_buckets" {
			t.Errorf("wrong section: %q", truncated.Section)
		}
	})

	t.Run("TruncatedBucketTable", func(t *testing.T) {
		// The bucket header itself declares more rows than the buffer holds.
		buf := make([]byte, HashBucketSize)
		binary.LittleEndian.PutUint32(buf[4:], 5) // num_entries

		_, err := Resolve(buf, &NodeHeader{})
		var truncated *TruncatedDataError
		if !errors.As(err, &truncated) {
			t.Fatalf("expected TruncatedDataError, got %v", err)
		}
		if truncated.Section != "file_lookup_buckets" {
			t.Errorf("wrong section: %q", truncated.Section)
		}
	})

	t.Run("TrailingNumbers", func(t *testing.T) {
		// Bucket table with zero extra rows, no file lookup, then 20
		// trailing bytes: two whole pairs and a ragged tail.
		buf := make([]byte, HashBucketSize+20)

		l, err := Resolve(buf, &NodeHeader{})
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}

		numbers := l.Section(SectionNumbers)
		if numbers.Len() != 20 {
			t.Errorf("numbers: got %d bytes, want 20", numbers.Len())
		}
		if numbers.Count != 2 {
			t.Errorf("numbers: got %d entries, want 2", numbers.Count)
		}
	})
}

func TestSectionView(t *testing.T) {
	h := &NodeHeader{MovieCount: 2}
	buf := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0xaa, 0xbb, 0xcc, 0x78, 0x56, 0x34, 0x12,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x1a, 0x1b, 0x1c, 0x21, 0x22, 0x23, 0x24,
	}

	l, err := Resolve(buf, h)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	s := l.Section(SectionBulkfileCategoryInfo)

	t.Run("EntryBytes", func(t *testing.T) {
		entry, err := s.EntryBytes(1)
		if err != nil {
			t.Fatalf("entry bytes: %v", err)
		}
		if entry[0] != 0x11 || len(entry) != TripletSize {
			t.Errorf("wrong entry window: % x", entry)
		}

		if _, err := s.EntryBytes(2); err == nil {
			t.Error("expected error for out-of-range entry")
		}
		if _, err := s.EntryBytes(-1); err == nil {
			t.Error("expected error for negative entry")
		}
	})

	t.Run("Triplets", func(t *testing.T) {
		triplets, err := Triplets(s)
		if err != nil {
			t.Fatalf("triplets: %v", err)
		}
		if len(triplets) != 2 {
			t.Fatalf("got %d triplets, want 2", len(triplets))
		}
		if triplets[0].Hash != 0x0504030201 || triplets[0].Meta != 0xccbbaa || triplets[0].Meta2 != 0x12345678 {
			t.Errorf("first triplet: got %+v", triplets[0])
		}
		if triplets[1].Hash != 0x1514131211 {
			t.Errorf("second triplet: got %+v", triplets[1])
		}
	})

	t.Run("WrongEntryKind", func(t *testing.T) {
		if _, err := Pairs(s); err == nil {
			t.Error("expected error decoding a triplet section as pairs")
		}
	})
}
