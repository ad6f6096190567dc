package udp

import (
	"encoding/binary"
)

func readUint32(data []byte) (uint32, []byte) {
	return binary.BigEndian.Uint32(data), data[4:]
}

func readByte(data []byte) (byte, []byte) {
	return data[0], data[1:]
}

func writeUint32(data []byte, v uint32) []byte {
	binary.BigEndian.PutUint32(data, v)
	return data[4:]
}
