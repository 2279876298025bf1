package fdc

// CRCReset is the initial value of the CRC-CCITT accumulator (§4.2 CRC).
const CRCReset uint16 = 0xFFFF

// updateCRC folds one byte into a running CRC-CCITT (polynomial 0x1021),
// the same accumulator used for both address-field and data-field CRCs.
func updateCRC(crc uint16, b byte) uint16 {
	crc ^= uint16(b) << 8
	for i := 0; i < 8; i++ {
		if crc&0x8000 != 0 {
			crc = (crc << 1) ^ 0x1021
		} else {
			crc <<= 1
		}
	}
	return crc
}

// crcResetA1A1A1 is the running CRC after feeding three 0xA1 sync bytes
// through updateCRC starting from CRCReset — the double-density preload
// value (§4.2 CRC: "pre-initialized to the value obtained by processing
// three 0xA1 sync bytes").
var crcResetA1A1A1 = func() uint16 {
	crc := CRCReset
	crc = updateCRC(crc, 0xA1)
	crc = updateCRC(crc, 0xA1)
	crc = updateCRC(crc, 0xA1)
	return crc
}()

// markerResetsCRC reports whether b is one of the single-density marker
// bytes that reset the running CRC to CRCReset (§4.2 WriteTrack SD rule).
func markerResetsCRC(b byte) bool {
	switch b {
	case 0xF8, 0xF9, 0xFA, 0xFB, 0xFD, 0xFE:
		return true
	default:
		return false
	}
}
