package codes

// RoadSide is the side of the followed route a benchmark stands on (voie_cote,
// rn_voie_cote_code). The zero value means no side was given.
type RoadSide int

const (
	SideUnset RoadSide = iota
	SideRight
	SideLeft
	SideMiddle
)

var roadSideTable = newTable("voie_cote", false, true, []entry[RoadSide]{
	{SideRight, "Right", w("D")},
	{SideLeft, "Left", w("G")},
	{SideMiddle, "Middle", w("M")},
})

// ParseRoadSide decodes a voie_cote wire value. "" decodes to SideUnset.
func ParseRoadSide(wire string) (RoadSide, error) { return roadSideTable.Decode(wire) }

func (s RoadSide) Code() string  { return roadSideTable.Wire(s) }
func (s RoadSide) Label() string { return roadSideTable.Label(s) }
func (s RoadSide) String() string {
	return s.Label()
}

// Set reports whether a side was given.
func (s RoadSide) Set() bool { return s != SideUnset }

func (s RoadSide) MarshalJSON() ([]byte, error) { return roadSideTable.marshalJSON(s) }

func (s RoadSide) MarshalText() ([]byte, error) { return []byte(s.Code()), nil }

func (s *RoadSide) UnmarshalJSON(data []byte) error {
	v, err := roadSideTable.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// SketchLetter is the letter of the benchmark on the site sketch
// (ptg_croquis_lettre). The zero value means no letter.
type SketchLetter int

const (
	SketchNone SketchLetter = iota
	SketchB
	SketchE
)

var sketchLetterTable = newTable("ptg_croquis_lettre", false, true, []entry[SketchLetter]{
	{SketchB, "B", w("B")},
	{SketchE, "E", w("E")},
})

// ParseSketchLetter decodes a ptg_croquis_lettre wire value.
func ParseSketchLetter(wire string) (SketchLetter, error) { return sketchLetterTable.Decode(wire) }

func (l SketchLetter) Code() string  { return sketchLetterTable.Wire(l) }
func (l SketchLetter) Label() string { return sketchLetterTable.Label(l) }
func (l SketchLetter) String() string {
	return l.Label()
}

func (l SketchLetter) MarshalJSON() ([]byte, error) { return sketchLetterTable.marshalJSON(l) }

func (l SketchLetter) MarshalText() ([]byte, error) { return []byte(l.Code()), nil }

func (l *SketchLetter) UnmarshalJSON(data []byte) error {
	v, err := sketchLetterTable.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*l = v
	return nil
}
