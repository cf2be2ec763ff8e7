package icons

import (
	"encoding/binary"
	"fmt"
)

// Entry is one PNG image inside an ICO container.
type Entry struct {
	Size int
	PNG  []byte
}

// ICO wraps PNG payloads in an ICO container (PNG entries are valid since
// Windows Vista and in every browser).
func ICO(entries ...Entry) []byte {
	const headerLen, dirLen = 6, 16

	total := headerLen + dirLen*len(entries)
	for _, e := range entries {
		total += len(e.PNG)
	}
	ico := make([]byte, total)

	binary.LittleEndian.PutUint16(ico[0:], 0) // reserved
	binary.LittleEndian.PutUint16(ico[2:], 1) // type: 1 = ICO
	binary.LittleEndian.PutUint16(ico[4:], uint16(len(entries)))

	offset := headerLen + dirLen*len(entries)
	for i, e := range entries {
		d := ico[headerLen+dirLen*i:]
		d[0] = dimension(e.Size)
		d[1] = dimension(e.Size)
		d[2] = 0 // palette
		d[3] = 0 // reserved
		binary.LittleEndian.PutUint16(d[4:], 1)  // color planes
		binary.LittleEndian.PutUint16(d[6:], 32) // bits per pixel
		binary.LittleEndian.PutUint32(d[8:], uint32(len(e.PNG)))
		binary.LittleEndian.PutUint32(d[12:], uint32(offset))

		copy(ico[offset:], e.PNG)
		offset += len(e.PNG)
	}
	return ico
}

// 256 and above map to 0.
func dimension(size int) byte {
	if size >= 256 || size <= 0 {
		return 0
	}
	return byte(size)
}

// Favicon renders a multi-size favicon.ico.
func Favicon(sizes ...int) ([]byte, error) {
	if len(sizes) == 0 {
		sizes = []int{32, 48}
	}
	entries := make([]Entry, 0, len(sizes))
	for _, s := range sizes {
		data, err := EncodePNG(s)
		if err != nil {
			return nil, fmt.Errorf("icons: favicon: %w", err)
		}
		entries = append(entries, Entry{Size: s, PNG: data})
	}
	return ICO(entries...), nil
}
