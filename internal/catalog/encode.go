package catalog

import (
	"bytes"
	"encoding/binary"
	"time"
)

// key = sortingKey + 0x00 + id
func makeTitleKey(sortingKey, id string) []byte {
	buf := make([]byte, 0, len(sortingKey)+1+len(id))
	buf = append(buf, sortingKey...)
	buf = append(buf, 0x00)
	buf = append(buf, id...)
	return buf
}

func idFromTitleKey(k []byte) string {
	i := bytes.IndexByte(k, 0x00)
	if i < 0 || i+1 >= len(k) {
		return ""
	}
	return string(k[i+1:])
}

// key = days since epoch(8) + 0x00 + id
func makeDayKey(day time.Time, id string) []byte {
	buf := make([]byte, 0, 8+1+len(id))
	buf = binary.BigEndian.AppendUint64(buf, dayNumber(day))
	buf = append(buf, 0x00)
	buf = append(buf, id...)
	return buf
}

func dayPrefix(day time.Time) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 9), dayNumber(day))
}

func idFromDayKey(k []byte) string {
	if len(k) < 8+2 {
		return ""
	}
	return string(k[9:])
}

// dayNumber offsets the Unix day so dates before 1970 still sort first.
func dayNumber(t time.Time) uint64 {
	const offset = 1 << 32
	days := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
	return uint64(days + offset)
}
