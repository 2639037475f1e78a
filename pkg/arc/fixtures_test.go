package arc

import (
	"encoding/binary"
)

// encodeArcHeader builds the 40-byte wire form of an arc header.
func encodeArcHeader(h *ArcHeader) []byte {
	buf := make([]byte, ArcHeaderSize)
	binary.LittleEndian.PutUint64(buf[0:8], h.MusicFileSectionOffset)
	binary.LittleEndian.PutUint64(buf[8:16], h.FileSectionOffset)
	binary.LittleEndian.PutUint64(buf[16:24], h.MusicSectionOffset)
	binary.LittleEndian.PutUint64(buf[24:32], h.NodeSectionOffset)
	binary.LittleEndian.PutUint64(buf[32:40], h.UnkSectionOffset)
	return buf
}

// encodeNodeHeader builds the 68-byte wire form of a node header.
func encodeNodeHeader(h *NodeHeader) []byte {
	buf := make([]byte, NodeHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.FileSize)
	binary.LittleEndian.PutUint32(buf[4:8], h.FolderCount)
	binary.LittleEndian.PutUint32(buf[8:12], h.FileCount1)
	binary.LittleEndian.PutUint32(buf[12:16], h.TreeCount)
	binary.LittleEndian.PutUint32(buf[16:20], h.SubFiles1Count)
	binary.LittleEndian.PutUint32(buf[20:24], h.FileLookupCount)
	binary.LittleEndian.PutUint32(buf[24:28], h.HashFolderCount)
	binary.LittleEndian.PutUint32(buf[28:32], h.FileInformationCount)
	binary.LittleEndian.PutUint32(buf[32:36], h.FileCount2)
	binary.LittleEndian.PutUint32(buf[36:40], h.SubFiles2Count)
	binary.LittleEndian.PutUint32(buf[40:44], h.Unk1)
	binary.LittleEndian.PutUint32(buf[44:48], h.Unk2)
	buf[48] = h.AnotherHashTableSize
	buf[49] = h.Unk3
	binary.LittleEndian.PutUint16(buf[50:52], h.Unk4)
	binary.LittleEndian.PutUint32(buf[52:56], h.MovieCount)
	binary.LittleEndian.PutUint32(buf[56:60], h.Part1Count)
	binary.LittleEndian.PutUint32(buf[60:64], h.Part2Count)
	binary.LittleEndian.PutUint32(buf[64:68], h.MusicFileCount)
	return buf
}

// buildRawNode builds a complete raw node section: header plus payload,
// with FileSize filled in from the payload length. FileSize doubles as the
// probe's data_start, so the payload is padded until FileSize reaches
// 0x100; anything smaller would identify a compressed node section. The
// resolver sees the padding as the trailing numbers region.
func buildRawNode(h NodeHeader, payload []byte) []byte {
	if NodeHeaderSize+len(payload) < 0x100 {
		padded := make([]byte, 0x100-NodeHeaderSize)
		copy(padded, payload)
		payload = padded
	}
	h.FileSize = uint32(NodeHeaderSize + len(payload))
	return append(encodeNodeHeader(&h), payload...)
}

// buildArchive wraps a node section blob into a minimal archive image:
// magic, arc header pointing at the node section, node bytes.
func buildArchive(node []byte) []byte {
	buf := make([]byte, 0, MagicSize+ArcHeaderSize+len(node))
	buf = binary.LittleEndian.AppendUint64(buf, Magic)
	buf = append(buf, encodeArcHeader(&ArcHeader{
		NodeSectionOffset: MagicSize + ArcHeaderSize,
	})...)
	return append(buf, node...)
}
