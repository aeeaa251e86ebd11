package model

import (
	"strconv"

	"github.com/jd-develop/geodesie-de-bureau/internal/codes"
)

// Network names used in object identifiers.
const (
	NetworkIGNLeveling = "ign-nivf"
)

// Identified is implemented by every object that can be saved. ObjectID must
// name the network and carry a matricule or an identifier of that network.
type Identified interface {
	ObjectID() string
}

// Benchmark is a leveling benchmark of the IGN network, built once from a
// bounding-box feature and never modified afterwards. Optional text fields
// are empty when upstream gives nothing.
type Benchmark struct {
	Matricule      string               `json:"matricule" yaml:"matricule"`
	CID            int64                `json:"cid" yaml:"cid"`
	SheetURL       string               `json:"fiche_url" yaml:"fiche_url"`
	AltitudeSystem codes.AltitudeSystem `json:"systeme_altimetrique" yaml:"systeme_altimetrique"`
	Altitude       string               `json:"altitude" yaml:"altitude"`
	AltitudeExtra  string               `json:"altitude_complementaire,omitempty" yaml:"altitude_complementaire,omitempty"`
	AltitudeType   codes.AltitudeType   `json:"altitude_type" yaml:"altitude_type"`

	// AltitudeTypeCode is the h_type_code as published, one of several raw
	// codes AltitudeType may stand for.
	AltitudeTypeCode string `json:"h_type_code,omitempty" yaml:"h_type_code,omitempty"`

	LastObservation string      `json:"derniere_observation" yaml:"derniere_observation"`
	Recalculated    string      `json:"nouveau_calcul" yaml:"nouveau_calcul"`
	LastVisit       string      `json:"derniere_visite" yaml:"derniere_visite"`
	State           codes.State `json:"etat" yaml:"etat"`

	Type                    codes.BenchmarkType `json:"rn_type" yaml:"rn_type"`
	TypeComplement          string              `json:"type_complement,omitempty" yaml:"type_complement,omitempty"`
	CanexInfo               string              `json:"canex_info,omitempty" yaml:"canex_info,omitempty"`
	TypeComplementWithCanex string              `json:"type_complement_avec_canex,omitempty" yaml:"type_complement_avec_canex,omitempty"`

	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	E         string  `json:"e" yaml:"e"`
	N         string  `json:"n" yaml:"n"`
	LambdaDMS string  `json:"lambda_dms" yaml:"lambda_dms"`
	PhiDMS    string  `json:"phi_dms" yaml:"phi_dms"`

	Department   string         `json:"departement" yaml:"departement"`
	INSEE        string         `json:"insee" yaml:"insee"`
	Municipality string         `json:"commune" yaml:"commune"`
	Route        string         `json:"voie_suivie" yaml:"voie_suivie"`
	RouteFrom    string         `json:"voie_de,omitempty" yaml:"voie_de,omitempty"`
	RouteTo      string         `json:"voie_vers,omitempty" yaml:"voie_vers,omitempty"`
	RouteSide    codes.RoadSide `json:"voie_cote,omitempty" yaml:"voie_cote,omitempty"`
	RouteKP      string         `json:"voie_pk,omitempty" yaml:"voie_pk,omitempty"`
	Distance     string         `json:"distance,omitempty" yaml:"distance,omitempty"`
	FromMark     string         `json:"du_repere,omitempty" yaml:"du_repere,omitempty"`
	Location     string         `json:"localisation,omitempty" yaml:"localisation,omitempty"`

	Support        string `json:"support" yaml:"support"`
	SupportPart    string `json:"partie_support,omitempty" yaml:"partie_support,omitempty"`
	HorizontalMark string `json:"reperement_horizontal,omitempty" yaml:"reperement_horizontal,omitempty"`
	VerticalMark   string `json:"reperement_vertical,omitempty" yaml:"reperement_vertical,omitempty"`

	OutsideIGN   string             `json:"hors_ign,omitempty" yaml:"hors_ign,omitempty"`
	Remarks      string             `json:"remarques,omitempty" yaml:"remarques,omitempty"`
	GPSUsability codes.GPSUsability `json:"exploitabilite_gps" yaml:"exploitabilite_gps"`
}

// ObjectID identifies the benchmark as "ign-nivf/<cid>".
func (b Benchmark) ObjectID() string {
	return NetworkIGNLeveling + "/" + strconv.FormatInt(b.CID, 10)
}

// outsideIGNNone lists the hors_ign values that carry no notice.
var outsideIGNNone = map[string]bool{
	"":       true,
	"100001": true,
	"100063": true,
}

// OutsideIGNNotice returns the hors_ign value when it is a real notice about
// a benchmark maintained outside IGN, or "" for the placeholder values.
func (b Benchmark) OutsideIGNNotice() string {
	if outsideIGNNone[b.OutsideIGN] {
		return ""
	}
	return b.OutsideIGN
}
