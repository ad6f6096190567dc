package itch

import (
	"encoding/binary"
	"fmt"
	"time"
)

func readByte(data []byte) (byte, []byte) {
	return data[0], data[1:]
}

func readBytes4(data []byte) ([4]byte, []byte) {
	return [4]byte{data[0], data[1], data[2], data[3]}, data[4:]
}

func readBytes8(data []byte) ([8]byte, []byte) {
	return [8]byte{data[0], data[1], data[2], data[3], data[4], data[5], data[6], data[7]}, data[8:]
}

func readUint16(data []byte) (uint16, []byte) {
	return binary.BigEndian.Uint16(data), data[2:]
}

func readUint32(data []byte) (uint32, []byte) {
	return binary.BigEndian.Uint32(data), data[4:]
}

func readUint64(data []byte) (uint64, []byte) {
	return binary.BigEndian.Uint64(data), data[8:]
}

// readTimestamp reads 6 bytes of nanoseconds since midnight.
func readTimestamp(data []byte) (time.Duration, []byte) {
	ns := uint64(data[0])<<40 | uint64(data[1])<<32 | uint64(data[2])<<24 |
		uint64(data[3])<<16 | uint64(data[4])<<8 | uint64(data[5])
	return time.Duration(ns), data[6:]
}

func readHeader(data []byte) (h Header, rest []byte) {
	h.Type, data = readByte(data)
	h.StockLocate, data = readUint16(data)
	h.TrackingNumber, data = readUint16(data)
	h.Timestamp, rest = readTimestamp(data)
	return
}

func checkSize(data []byte, size int) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty message", ErrInvalidMessageSize)
	}
	if len(data) != size {
		return fmt.Errorf("%w: type '%c' expects %d bytes, got %d", ErrInvalidMessageSize, data[0], size, len(data))
	}
	return nil
}
