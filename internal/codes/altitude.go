package codes

// AltitudeType is the kind of height published for a benchmark (h_type_code).
// Upstream uses many raw codes per kind; each one observed in production is
// listed explicitly.
type AltitudeType int

const (
	AltitudeNormal AltitudeType = iota + 1
	AltitudeOrthometric
	AltitudeProvisional
)

var altitudeTypeTable = newTable("h_type_code", true, false, []entry[AltitudeType]{
	{AltitudeNormal, "Normal altitude", w("2", "3")},
	{AltitudeOrthometric, "Orthometric altitude", w(
		"10", "11", "13", "14", "15", "16", "17", "18",
		"21", "23", "26", "29", "35", "37", "41", "44",
	)},
	{AltitudeProvisional, "Provisional altitude", w("169")},
})

// ParseAltitudeType decodes an h_type_code wire value.
func ParseAltitudeType(wire string) (AltitudeType, error) { return altitudeTypeTable.Decode(wire) }

// Code returns the canonical wire value. Several raw codes map to one kind, so
// this is not necessarily the value that was decoded.
func (a AltitudeType) Code() string  { return altitudeTypeTable.Wire(a) }
func (a AltitudeType) Label() string { return altitudeTypeTable.Label(a) }
func (a AltitudeType) String() string {
	return a.Label()
}

func (a AltitudeType) MarshalJSON() ([]byte, error) { return altitudeTypeTable.marshalJSON(a) }

func (a AltitudeType) MarshalText() ([]byte, error) { return []byte(a.Code()), nil }

func (a *AltitudeType) UnmarshalJSON(data []byte) error {
	v, err := altitudeTypeTable.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// AltitudeCode is a decoded h_type_code that keeps the raw upstream value,
// which Code cannot give back since several raw codes share one kind.
type AltitudeCode struct {
	Type AltitudeType
	Raw  string
}

func (c *AltitudeCode) UnmarshalJSON(data []byte) error {
	v, wire, err := altitudeTypeTable.unmarshalWire(data)
	if err != nil {
		return err
	}
	*c = AltitudeCode{Type: v, Raw: wire}
	return nil
}

// AltitudeSystem is the leveling realisation the altitude refers to
// (nivf_rea_code).
type AltitudeSystem int

const (
	SystemNGFIGN1969 AltitudeSystem = iota + 1
	SystemNGFIGN1978
)

var altitudeSystemTable = newTable("nivf_rea_code", true, false, []entry[AltitudeSystem]{
	{SystemNGFIGN1969, "NGF-IGN 1969", w("2")},
	{SystemNGFIGN1978, "NGF-IGN 1978", w("3")},
})

// ParseAltitudeSystem decodes a nivf_rea_code wire value.
func ParseAltitudeSystem(wire string) (AltitudeSystem, error) {
	return altitudeSystemTable.Decode(wire)
}

func (s AltitudeSystem) Code() string  { return altitudeSystemTable.Wire(s) }
func (s AltitudeSystem) Label() string { return altitudeSystemTable.Label(s) }
func (s AltitudeSystem) String() string {
	return s.Label()
}

func (s AltitudeSystem) MarshalJSON() ([]byte, error) { return altitudeSystemTable.marshalJSON(s) }

func (s AltitudeSystem) MarshalText() ([]byte, error) { return []byte(s.Code()), nil }

func (s *AltitudeSystem) UnmarshalJSON(data []byte) error {
	v, err := altitudeSystemTable.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
