// Package feature decodes the feature collections returned by the IGN
// leveling bounding-box endpoint
// (https://geodesie.ign.fr/ripgeo/fr/api/nivrn/bbox/{lon}/{lat}/json/).
package feature

import (
	"github.com/jd-develop/geodesie-de-bureau/internal/codes"
)

// Feature is one benchmark of a bounding-box response. Longitude and Latitude
// come from the GeoJSON point, in upstream order (longitude first).
type Feature struct {
	Longitude  float64
	Latitude   float64
	Properties Properties
}

// Properties mirrors the attribute object of a benchmark feature. Pointer
// fields are documented as nullable upstream.
type Properties struct {
	ImageName       string               `json:"image_name"`
	TypeCode        codes.BenchmarkType  `json:"rn_type_code"`
	RefEnCode       int64                `json:"nivf_ref_en_code"`
	AltitudeSystem  codes.AltitudeSystem `json:"nivf_rea_code"`
	RefLpCode       int64                `json:"nivf_ref_lp_code"`
	AltitudeType    codes.AltitudeCode   `json:"h_type_code"`
	State           codes.State          `json:"rn_etat_code"`
	Action          codes.Action         `json:"rn_action_code"`
	SideCode        codes.RoadSide       `json:"rn_voie_cote_code"`
	GPSUsability    codes.GPSUsability   `json:"rn_gps_eploit_code"`
	OutsideIGN      string               `json:"hors_ign"`
	Department      string               `json:"departement_code"`
	CID             int64                `json:"rn_cid"`
	Name            string               `json:"rn_nom"`
	TypeComplement  *string              `json:"rn_type_compl"`
	INSEE           string               `json:"insee"`
	Municipality    string               `json:"commune_nom"`
	Location        *string              `json:"localisation"`
	MapNumber       string               `json:"carte_no"`
	Route           string               `json:"voie_suivie"`
	RouteFrom       *string              `json:"voie_de"`
	RouteTo         *string              `json:"voie_vers"`
	RouteSide       codes.RoadSide       `json:"voie_cote"`
	RouteKP         *string              `json:"voie_pk"`
	Distance        *string              `json:"distance"`
	NearestName     string               `json:"rn_proche_nom"`
	E               string               `json:"e"`
	N               string               `json:"n"`
	LambdaDMS       string               `json:"lambda_dms"`
	PhiDMS          string               `json:"phi_dms"`
	Support         string               `json:"support"`
	SupportPart     string               `json:"support_partie"`
	HorizontalMark  *string              `json:"reper_horiz"`
	VerticalMark    *string              `json:"reper_vertical"`
	Altitude        string               `json:"altitude"`
	AltitudeExtra   string               `json:"altitude_complementaire"`
	RecalcYear      string               `json:"trg_annee"`
	ObservationDate string               `json:"rn_obs_date"`
	VisitDate       string               `json:"rn_vis_date"`
	Remark          string               `json:"remarque"`
	TripletCID      *string              `json:"triplet_cid"`
	GeodInfo        string               `json:"geod_info"`
	CanexInfo       string               `json:"canex_info"`
	PrimordialCID   *int64               `json:"rn_primordial_cid"`
	SiteNumber      *string              `json:"sit_no"`
	SketchLetter    codes.SketchLetter   `json:"ptg_croquis_lettre"`
	SiteInfo        string               `json:"sit_info"`
}

// missingCode returns the wire name of the first required code left at its
// zero value, which only happens when the key is absent from the payload.
func (p Properties) missingCode() string {
	switch {
	case p.TypeCode == 0:
		return "rn_type_code"
	case p.AltitudeSystem == 0:
		return "nivf_rea_code"
	case p.AltitudeType.Type == 0:
		return "h_type_code"
	case p.State == 0:
		return "rn_etat_code"
	case p.Action == 0:
		return "rn_action_code"
	case p.GPSUsability == 0:
		return "rn_gps_eploit_code"
	}
	return ""
}
