package codes

// BenchmarkType is the physical kind of a benchmark (rn_type_code). Wire
// values are zero-padded three digit strings.
type BenchmarkType int

const (
	TypeUnknown BenchmarkType = iota + 1
	TypeConsole
	TypeRivet
	TypeBourdaloue
	TypePLM
	TypeMRU
	TypePontsEtChaussees
	TypeNavigation
	TypeVilleDeParis
	TypeCylindrical
	TypeLocal
	TypeHexagonal
	TypeLocalSystem
	TypeHydrometricScale
	TypeBall
	TypeItalian
	TypeFlood
	TypeOctagonal
	TypeReconstruction
	TypeEDF
	TypeSNCF
	TypeCadastre
	TypeGerman
	TypeBelgian
	TypeLuxembourgish
	TypeSwiss
	TypeSpanish
	TypeVilleDeMarseille
	TypeFloodMark
	TypeBoundaryMarker
	TypeSHOM
	TypeFundamental
	TypeTube
	TypeIPG
	TypeConical
	TypeTriangularCastIron
)

// Codes 002 to 006 do not exist upstream.
var benchmarkTypeTable = newTable("rn_type_code", false, false, []entry[BenchmarkType]{
	{TypeUnknown, "Unknown", w("000")},
	{TypeConsole, "Console benchmark", w("001")},
	{TypeRivet, "Rivet", w("007")},
	{TypeBourdaloue, "Bourdalouë benchmark", w("008")},
	{TypePLM, "PLM benchmark (Paris-Lyon-Méditerranée railway)", w("009")},
	{TypeMRU, "MRU benchmark (Ministry of Reconstruction and Urbanism)", w("010")},
	{TypePontsEtChaussees, "Ponts et Chaussées benchmark", w("011")},
	{TypeNavigation, "Navigation benchmark", w("012")},
	{TypeVilleDeParis, "City of Paris benchmark", w("013")},
	{TypeCylindrical, "Cylindrical benchmark of the Nivellement Général", w("014")},
	{TypeLocal, "Local benchmark", w("015")},
	{TypeHexagonal, "Hexagonal benchmark", w("016")},
	{TypeLocalSystem, "Local benchmark, in a local system", w("017")},
	{TypeHydrometricScale, "Hydrometric scale", w("018")},
	{TypeBall, "Ball benchmark", w("019")},
	{TypeItalian, "Italian benchmark", w("020")},
	{TypeFlood, "Flood benchmark", w("021")},
	{TypeOctagonal, "Octagonal benchmark", w("022")},
	{TypeReconstruction, "Reconstruction benchmark", w("023")},
	{TypeEDF, "EDF benchmark", w("024")},
	{TypeSNCF, "SNCF benchmark", w("025")},
	{TypeCadastre, "Cadastre benchmark", w("026")},
	{TypeGerman, "German benchmark", w("027")},
	{TypeBelgian, "Belgian benchmark", w("028")},
	{TypeLuxembourgish, "Luxembourgish benchmark", w("029")},
	{TypeSwiss, "Swiss benchmark", w("030")},
	{TypeSpanish, "Spanish benchmark", w("031")},
	{TypeVilleDeMarseille, "City of Marseille benchmark", w("032")},
	{TypeFloodMark, "Flood mark", w("033")},
	{TypeBoundaryMarker, "Boundary marker", w("034")},
	{TypeSHOM, "SHOM benchmark (Naval Hydrographic and Oceanographic Service)", w("035")},
	{TypeFundamental, "Fundamental benchmark", w("036")},
	{TypeTube, "Tube", w("037")},
	{TypeIPG, "IPG benchmark (Institut de Physique du Globe)", w("038")},
	{TypeConical, "Conical benchmark", w("039")},
	{TypeTriangularCastIron, "Triangular cast-iron benchmark", w("040")},
})

// ParseBenchmarkType decodes an rn_type_code wire value.
func ParseBenchmarkType(wire string) (BenchmarkType, error) {
	return benchmarkTypeTable.Decode(wire)
}

// Code returns the zero-padded wire value.
func (t BenchmarkType) Code() string { return benchmarkTypeTable.Wire(t) }

// Label returns the display label.
func (t BenchmarkType) Label() string { return benchmarkTypeTable.Label(t) }

func (t BenchmarkType) String() string { return t.Label() }

func (t BenchmarkType) MarshalJSON() ([]byte, error) { return benchmarkTypeTable.marshalJSON(t) }

func (t BenchmarkType) MarshalText() ([]byte, error) { return []byte(t.Code()), nil }

func (t *BenchmarkType) UnmarshalJSON(data []byte) error {
	v, err := benchmarkTypeTable.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
