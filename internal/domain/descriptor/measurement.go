package descriptor

// Measurement holds the mutable, post-probe annotations attached to a
// Descriptor (spec §3). Country is either "UN" or a 2-letter uppercase
// ISO code; Speed is clamped to [0.0, 3000.0] Mbps.
type Measurement struct {
	LatencyMS int
	SpeedMbps float64
	Country   string
	Alive     bool
}

// Survivor pairs a Descriptor with the Measurement recorded for it. The
// core never mutates a Descriptor in place (spec §3 "Lifecycle") — every
// annotation produces a new Survivor value.
type Survivor struct {
	Descriptor Descriptor
	Measurement
}

// Annotate returns a new Survivor copying d and attaching m. The
// Descriptor itself is deep-copied so later mutation of the original
// cannot leak into the survivor set.
func Annotate(d Descriptor, m Measurement) Survivor {
	return Survivor{
		Descriptor:  d.Clone(),
		Measurement: m,
	}
}

const (
	// UnknownCountry is the sentinel country code used when geo lookup
	// fails or has not yet been attempted (spec §4.5 "Geo lookup").
	UnknownCountry = "UN"

	// MaxSpeedMbps is the upper clamp for measured throughput (spec §3).
	MaxSpeedMbps = 3000.0
)

// ClampSpeed bounds v to [0, MaxSpeedMbps].
func ClampSpeed(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxSpeedMbps {
		return MaxSpeedMbps
	}
	return v
}
