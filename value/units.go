package value

// unitSet names the mutually disjoint families of convertible units. Two
// dimensions combine under +/- only when they share a unitSet.
type unitSet int

const (
	setNone unitSet = iota // unrecognized unit: never convertible, not even to itself
	setLength
	setAngle
	setTime
	setFrequency
	setResolution
	setEm
	setEx
	setCh
	setRem
	setVW
	setVH
	setVMin
	setVMax
)

type unitInfo struct {
	set    unitSet
	factor float64 // multiply by factor to reach the set's canonical base unit
}

// units maps a lowercase CSS unit identifier to its set and conversion
// factor. Canonical bases: length=px, angle=rad, time=s, frequency=Hz,
// resolution=dppx. Font/viewport-relative units are singleton sets that
// only combine with themselves.
var units = map[string]unitInfo{
	"px": {setLength, 1},
	"in": {setLength, 96},
	"cm": {setLength, 96 / 2.54},
	"mm": {setLength, 96 / 25.4},
	"pt": {setLength, 96.0 / 72.0},
	"pc": {setLength, 16},
	"q":  {setLength, 96 / 101.6},

	"deg":  {setAngle, 3.14159265358979323846 / 180},
	"rad":  {setAngle, 1},
	"grad": {setAngle, 3.14159265358979323846 / 200},
	"turn": {setAngle, 2 * 3.14159265358979323846},

	"s":  {setTime, 1},
	"ms": {setTime, 0.001},

	"hz":  {setFrequency, 1},
	"khz": {setFrequency, 1000},

	"dppx": {setResolution, 1},
	"dpi":  {setResolution, 1.0 / 96.0},
	"dpcm": {setResolution, 2.54 / 96.0},

	"em":   {setEm, 1},
	"ex":   {setEx, 1},
	"ch":   {setCh, 1},
	"rem":  {setRem, 1},
	"vw":   {setVW, 1},
	"vh":   {setVH, 1},
	"vmin": {setVMin, 1},
	"vmax": {setVMax, 1},
}

func unitOf(name string) (unitInfo, bool) {
	info, ok := units[name]
	return info, ok
}

// convertible reports whether two unit strings belong to the same unit
// set (and are therefore arithmetically compatible under +/-).
func convertible(a, b string) bool {
	ia, ok1 := unitOf(a)
	ib, ok2 := unitOf(b)
	if !ok1 || !ok2 {
		return false
	}
	return ia.set == ib.set
}

// toBase converts n (in unit `from`) to the unit set's canonical base.
func toBase(n float64, from string) (float64, bool) {
	info, ok := unitOf(from)
	if !ok {
		return 0, false
	}
	return n * info.factor, true
}

// fromBase converts a canonical-base value back into unit `to`.
func fromBase(n float64, to string) (float64, bool) {
	info, ok := unitOf(to)
	if !ok {
		return 0, false
	}
	return n / info.factor, true
}

// Convert re-expresses d in the target unit. Returns ok=false when the
// units are not in the same unit set.
func Convert(d Dimension, targetUnit string) (Dimension, bool) {
	if d.Unit == targetUnit {
		return d, true
	}
	if !convertible(d.Unit, targetUnit) {
		return Dimension{}, false
	}
	base, ok := toBase(d.N, d.Unit)
	if !ok {
		return Dimension{}, false
	}
	n, ok := fromBase(base, targetUnit)
	if !ok {
		return Dimension{}, false
	}
	return Dimension{N: n, Unit: targetUnit}, true
}
