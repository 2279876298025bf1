package cassette

// headerLockThreshold is the number of consecutive header bytes required
// to lock the baud format during a read (§4.1 Cursor discipline, §8
// boundary behavior: "fires at exactly the 21st consecutive byte").
const headerLockThreshold = 21

// onByteBoundaryRead feeds a just-completed byte to the header detector.
// A run of 0x55/0xAA locks High speed; a run of 0x00 locks Low speed; any
// other byte value resets both counters.
func (c *Cassette) onByteBoundaryRead() {
	b := c.data[c.byteCursor]

	switch b {
	case 0x55, 0xAA:
		c.consecutiveFiftyFives++
		c.consecutiveZeros = 0
		if c.consecutiveFiftyFives >= headerLockThreshold {
			c.speed = SpeedHigh
		}
	case 0x00:
		c.consecutiveZeros++
		c.consecutiveFiftyFives = 0
		if c.consecutiveZeros >= headerLockThreshold {
			c.speed = SpeedLow
		}
	default:
		c.consecutiveFiftyFives = 0
		c.consecutiveZeros = 0
	}
}
