package util

import (
	"hash/crc32"
)

var crcTable = crc32.MakeTable(crc32.Castagnoli)

func ChecksumExtend(crc uint32, data []byte) uint32 {
	return crc32.Update(crc, crcTable, data)
}

func ChecksumValue(data []byte) uint32 {
	return ChecksumExtend(0, data)
}
