package codes

// GPSUsability says whether a benchmark can be surveyed by GNSS
// (rn_gps_eploit_code).
type GPSUsability int

const (
	GPSDirect GPSUsability = iota + 1
	GPSOffsetStation
	GPSUnusable
	// GPSUndocumented covers "N". The public schema only lists E, I and R,
	// but N is common in real payloads and carries no usability information.
	GPSUndocumented
)

var gpsUsabilityTable = newTable("rn_gps_eploit_code", false, false, []entry[GPSUsability]{
	{GPSDirect, "Directly usable by GNSS", w("E")},
	{GPSOffsetStation, "Usable by GNSS from an offset station", w("R")},
	{GPSUnusable, "Not usable by GNSS", w("I")},
	{GPSUndocumented, "GNSS usability unknown", w("N")},
})

// ParseGPSUsability decodes an rn_gps_eploit_code wire value.
func ParseGPSUsability(wire string) (GPSUsability, error) { return gpsUsabilityTable.Decode(wire) }

func (g GPSUsability) Code() string  { return gpsUsabilityTable.Wire(g) }
func (g GPSUsability) Label() string { return gpsUsabilityTable.Label(g) }
func (g GPSUsability) String() string {
	return g.Label()
}

// Known reports whether the value carries usability information.
func (g GPSUsability) Known() bool {
	return g == GPSDirect || g == GPSOffsetStation || g == GPSUnusable
}

func (g GPSUsability) MarshalJSON() ([]byte, error) { return gpsUsabilityTable.marshalJSON(g) }

func (g GPSUsability) MarshalText() ([]byte, error) { return []byte(g.Code()), nil }

func (g *GPSUsability) UnmarshalJSON(data []byte) error {
	v, err := gpsUsabilityTable.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*g = v
	return nil
}
