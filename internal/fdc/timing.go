package fdc

import (
	"trs80m3-periph/internal/clock"
	"trs80m3-periph/internal/debug"
)

// ticksPerRev is the number of ticks for one full disk rotation at the
// spec's 300 RPM (§4.2 Rotating-media timing model).
func ticksPerRev() uint64 {
	return clock.TicksPerSecond / (DiskRPM / 60)
}

// diskAngle returns the current rotational position in millionths of a
// revolution.
func (c *Controller) diskAngle() uint64 {
	rev := ticksPerRev()
	return (c.clk.TickCount % rev) * 1_000_000 / rev
}

// indexDetect reports whether the simulated index hole is under the head
// right now: true while the motor is on and the angle is within the
// leading 1% of the revolution (a short pulse, not a continuous signal).
func (c *Controller) indexDetect() bool {
	return c.motorOnFlag && c.diskAngle() < 10_000
}

// indexesFound counts full revolutions elapsed since indexCheckStartTick.
func (c *Controller) indexesFound() uint64 {
	if c.clk.TickCount < c.indexCheckStartTick {
		return 0
	}
	return (c.clk.TickCount - c.indexCheckStartTick) / ticksPerRev()
}

// resetIndexCount aligns indexCheckStartTick to the current revolution
// boundary, with a 10-tick margin so a boundary crossed this instant isn't
// immediately double-counted.
func (c *Controller) resetIndexCount() {
	rev := ticksPerRev()
	boundary := c.clk.TickCount - (c.clk.TickCount % rev)
	c.indexCheckStartTick = boundary + 10
}

// trackLength returns the active track's byte length for the current
// density, preferring the mounted image's reported length.
func (c *Controller) trackLength() int {
	if d := c.ActiveDrive(); d != nil && d.Image != nil {
		return d.Image.TrackLength(c.doubleDensity)
	}
	if c.doubleDensity {
		return 12500
	}
	return 6250
}

// trackDataIndex returns the byte offset under the head right now.
func (c *Controller) trackDataIndex() int {
	l := c.trackLength()
	if l == 0 {
		return 0
	}
	return int(c.diskAngle()) * l / 1_000_000
}

// alignIfSingleDensity rounds a target byte index down to even when in
// single density, since SD cells are stored doubled on-media (§4.2 Track
// addressing).
func (c *Controller) alignIfSingleDensity(index int) int {
	if c.doubleDensity {
		return index
	}
	return index &^ 1
}

// schedulePoll arms a byte-based delay: fire callback after N bytes have
// passed under the head (§4.2 Byte-based scheduling). At single density N
// is doubled and the target index aligned to even; the pulse is armed
// 10,000 ticks past the target's arrival time.
func (c *Controller) schedulePoll(n int, callback func()) {
	l := c.trackLength()
	if l == 0 {
		l = 1
	}
	if !c.doubleDensity {
		n *= 2
	}

	target := (c.trackDataIndex() + n) % l
	target = c.alignIfSingleDensity(target)

	c.targetDataIndex = target
	c.pollDone = callback
	c.isPolling = true

	delay := ticksUntilIndex(c.diskAngle(), target, l, ticksPerRev()) + 10_000
	c.commandPulseReq = c.sched.Register(clock.BasisTicks, delay, c.poll)
}

// ticksUntilIndex returns the number of ticks until the head reaches byte
// index target, given the current angle (millionths of a rev), the track
// length, and the tick count of a full revolution.
func ticksUntilIndex(angleMillionths uint64, target, length int, rev uint64) uint64 {
	if length == 0 {
		return 0
	}
	targetAngle := uint64(target) * 1_000_000 / uint64(length)
	if targetAngle < angleMillionths {
		targetAngle += 1_000_000
	}
	return (targetAngle - angleMillionths) * rev / 1_000_000
}

// poll is the scheduler callback for a byte-based wait. Per §4.2, a missed
// target is a recoverable sync fault: the pending callback still runs.
func (c *Controller) poll() {
	c.isPolling = false
	if c.trackDataIndex() != c.targetDataIndex {
		c.logf(debug.LogLevelWarning, "poll missed target index %d (now at %d)", c.targetDataIndex, c.trackDataIndex())
	}
	done := c.pollDone
	c.pollDone = nil
	if done != nil {
		done()
	}
}

// scheduleDelay arms a CPU-clock-domain (time-based) wait, used for step
// rates, head-load, the NMI delay, and motor on/off timers.
func (c *Controller) scheduleDelay(basis clock.PulseBasis, amount uint64, callback func()) *clock.PulseReq {
	return c.sched.Register(basis, amount, callback)
}
