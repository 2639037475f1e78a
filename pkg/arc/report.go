package arc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteReport writes a hex-oriented summary of the parsed index to w: the
// section offsets, the node header counts, and the first decoded entry of
// every resolved section. The sink is caller-supplied so library users can
// capture the report instead of having it forced onto a console.
func (a *Arc) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "arc header: %x\n", a.Header); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "node header: %x\n", a.NodeHeader); err != nil {
		return err
	}

	for i := 0; i < SectionCount; i++ {
		s := a.Layout.Section(i)
		line, err := firstEntryLine(i, s)
		if err != nil {
			return fmt.Errorf("report %s: %w", s.Name, err)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", s.Name, line); err != nil {
			return err
		}
	}
	return nil
}

// firstEntryLine renders the first entry of a section, or a placeholder
// when the section is empty.
func firstEntryLine(section int, s *SectionView) (string, error) {
	if s.Count == 0 {
		return "(empty)", nil
	}
	data, err := s.EntryBytes(0)
	if err != nil {
		return "", err
	}

	switch section {
	case SectionBulkfileCategoryInfo, SectionBulkfilesByName, SectionAnotherHashTable:
		var t Triplet
		if err := t.UnmarshalBinary(data); err != nil {
			return "", err
		}
		return fmt.Sprintf("hash=%010x meta=%06x meta2=%08x", t.Hash, t.Meta, t.Meta2), nil
	case SectionBulkfileHashLookup, SectionFolderHashLookup, SectionFolderToBigHash,
		SectionFileLookup, SectionNumbers:
		var p Pair
		if err := p.UnmarshalBinary(data); err != nil {
			return "", err
		}
		return fmt.Sprintf("hash=%010x meta=%06x", p.Hash, p.Meta), nil
	case SectionBulkfileLookupToFileIdx:
		return fmt.Sprintf("fileidx=%x", binary.LittleEndian.Uint32(data)), nil
	case SectionFilePairs:
		var f FilePair
		if err := f.UnmarshalBinary(data); err != nil {
			return "", err
		}
		return fmt.Sprintf("size=%x offset=%x", f.Size, f.Offset), nil
	case SectionBigHashes:
		var e BigHashEntry
		if err := e.UnmarshalBinary(data); err != nil {
			return "", err
		}
		return fmt.Sprintf("path=%010x folder=%010x parent=%010x suboffset=%x files=%x",
			e.Path.Hash, e.Folder.Hash, e.Parent.Hash, e.SuboffsetStart, e.NumFiles), nil
	case SectionBigFiles:
		var e BigFileEntry
		if err := e.UnmarshalBinary(data); err != nil {
			return "", err
		}
		return fmt.Sprintf("offset=%x decomp=%x comp=%x suboffset=%x files=%x",
			e.Offset, e.DecompSize, e.CompSize, e.SuboffsetIndex, e.Files), nil
	case SectionTrees:
		var e TreeEntry
		if err := e.UnmarshalBinary(data); err != nil {
			return "", err
		}
		return fmt.Sprintf("path=%010x ext=%010x folder=%010x file=%010x suboffset=%x flags=%x",
			e.Path.Hash, e.Ext.Hash, e.Folder.Hash, e.File.Hash, e.SuboffsetIndex, e.Flags), nil
	case SectionSubFiles1, SectionSubFiles2:
		var e FileEntry
		if err := e.UnmarshalBinary(data); err != nil {
			return "", err
		}
		return fmt.Sprintf("offset=%x comp=%x decomp=%x flags=%x",
			e.Offset, e.CompSize, e.DecompSize, e.Flags), nil
	case SectionFileLookupBuckets:
		var b HashBucket
		if err := b.UnmarshalBinary(data); err != nil {
			return "", err
		}
		return fmt.Sprintf("index=%x num_entries=%x", b.Index, b.NumEntries), nil
	default:
		return fmt.Sprintf("% x", data), nil
	}
}
