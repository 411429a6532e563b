package kettle

import (
	"fmt"
	"time"

	"controlling_kettle"
)

// Config holds the fixed physical parameters of a kettle. It is supplied
// at construction and never changes afterwards. The loader is responsible
// for cross-field validation (min <= max and so on).
type Config struct {
	MinVolume        float64       // liters, minimum to switch on
	MaxVolume        float64       // liters, vessel capacity
	StartTemperature float64       // °C, cold water temperature
	MaxTemperature   float64       // °C, reached when boiling completes
	BoilingTime      time.Duration // time to go from start to max temperature
}

// Kettle models a real world kettle: a water vessel with an on/off switch
// and a temperature that ramps up while heating.
//
// Temperature only advances when CheckCondition is called; there is no
// background timer. A single controller is expected to own the instance —
// none of the methods are safe for concurrent use.
type Kettle struct {
	cfg Config

	volume      float64
	temperature float64
	status      controlling_kettle.KettleStatus
	startTime   time.Time

	now func() time.Time
}

// New returns a switched-off, empty kettle holding water at the configured
// start temperature.
func New(cfg Config) *Kettle {
	return &Kettle{
		cfg:         cfg,
		temperature: cfg.StartTemperature,
		status:      controlling_kettle.StatusOff,
		now:         time.Now,
	}
}

// MaxVolume reports the vessel capacity in liters.
func (k *Kettle) MaxVolume() float64 { return k.cfg.MaxVolume }

// Volume reports the water currently held, in liters.
func (k *Kettle) Volume() float64 { return k.volume }

// Fill puts volume liters of water into the kettle, replacing whatever was
// held before (refilling does not accumulate). Status and temperature are
// left untouched. Fails with a FillingError when the volume is negative or
// exceeds capacity, leaving the kettle unchanged.
func (k *Kettle) Fill(volume float64) error {
	if volume < 0 {
		return &FillingError{Reason: "water volume can't be negative"}
	}
	if volume > k.cfg.MaxVolume {
		return &FillingError{Reason: fmt.Sprintf("max volume %g exceeded", k.cfg.MaxVolume)}
	}
	k.volume = volume
	return nil
}

// PourOut empties the kettle and returns the volume that was poured.
// Pouring resets the status to off regardless of what it was, so a new
// fill/switch cycle can begin; the temperature is left as is. Fails with a
// PouringError while the kettle is heating.
func (k *Kettle) PourOut() (float64, error) {
	if k.status == controlling_kettle.StatusOn {
		return 0, &PouringError{Reason: "can't pour out from a working kettle, stop it first"}
	}
	volume := k.volume
	k.volume = 0
	k.status = controlling_kettle.StatusOff
	return volume, nil
}

// TogglePower advances the power state by one user action:
//
//	off     -> on       (requires at least MinVolume of water)
//	on      -> stopped
//	ready   -> error    (pour out and refill first)
//	stopped -> error    (pour out and refill first)
//
// There are no other transitions. A rejected toggle is reported as a
// SwitchError and leaves the kettle unchanged.
func (k *Kettle) TogglePower() error {
	switch k.status {
	case controlling_kettle.StatusOff:
		return k.start()
	case controlling_kettle.StatusOn:
		k.stop()
		return nil
	default:
		return &SwitchError{Reason: "pour out old water and fill in new before switching"}
	}
}

func (k *Kettle) start() error {
	if k.volume < k.cfg.MinVolume {
		return &SwitchError{Reason: "can't start kettle: water level too low"}
	}
	k.startTime = k.now()
	k.status = controlling_kettle.StatusOn
	return nil
}

func (k *Kettle) stop() {
	k.startTime = time.Time{}
	k.status = controlling_kettle.StatusStopped
}

// CheckCondition advances the time-dependent state and reports a snapshot.
// While heating, the temperature ramps linearly from the start to the max
// temperature over the boiling time; once the boiling time has elapsed the
// kettle holds max temperature and becomes ready, which is terminal for the
// heating cycle. In every other status the snapshot is returned unchanged.
func (k *Kettle) CheckCondition() controlling_kettle.KettleCondition {
	k.updateTemperature()
	return controlling_kettle.KettleCondition{
		Status:      k.status,
		Temperature: k.temperature,
	}
}

func (k *Kettle) updateTemperature() {
	if k.status != controlling_kettle.StatusOn {
		return
	}
	elapsed := k.now().Sub(k.startTime)
	if elapsed >= k.cfg.BoilingTime {
		k.temperature = k.cfg.MaxTemperature
		k.status = controlling_kettle.StatusReady
		return
	}
	ramp := k.cfg.MaxTemperature - k.cfg.StartTemperature
	k.temperature = k.cfg.StartTemperature + ramp*(elapsed.Seconds()/k.cfg.BoilingTime.Seconds())
}
