package fdc

import "trs80m3-periph/internal/floppy"

// stepUp advances the selected drive's physical track, rebinds the active
// track, and emits a sound.track_step() event (§4.2 Step). Stepping up
// past MaxTracks clamps.
func (c *Controller) stepUp(d *floppy.Drive) {
	if d == nil {
		return
	}
	if d.StepUp() {
		c.onTrackChanged(d)
	}
}

// stepDown retreats the selected drive's physical track. Stepping down at
// track 0 is a no-op (§8 Boundary behaviors).
func (c *Controller) stepDown(d *floppy.Drive) {
	if d == nil {
		return
	}
	if d.StepDown() {
		c.onTrackChanged(d)
	}
}

func (c *Controller) onTrackChanged(d *floppy.Drive) {
	if c.sound != nil {
		c.sound.TrackStep()
	}
	if d.PhysicalTrack == 0 {
		c.TrackReg = 0
	}
}
