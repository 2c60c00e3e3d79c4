package modes

// crcGenerator is the Mode S parity polynomial without its leading term.
const crcGenerator = 0xFFF409

const crcBits = 24

// checksum computes the 24-bit parity over everything but the trailing parity field.
func checksum(frame []byte) uint32 {
	var crc uint32

	for _, b := range frame[:len(frame)-3] {
		crc ^= uint32(b) << (crcBits - 8)
		for range 8 {
			if crc&0x800000 != 0 {
				crc = (crc << 1) ^ crcGenerator
			} else {
				crc <<= 1
			}
		}
		crc &= 0xFFFFFF
	}

	return crc
}

// parity is the transmitted 24-bit parity field.
func parity(frame []byte) uint32 {
	n := len(frame)

	return uint32(frame[n-3])<<16 | uint32(frame[n-2])<<8 | uint32(frame[n-1])
}

// validParity reports whether an extended squitter carries an uncorrupted payload. For DF17/18
// the parity field is not overlaid with an address, so it must match the checksum exactly.
func validParity(frame []byte) bool {
	return checksum(frame) == parity(frame)
}
