package reconcile

import (
	"fmt"

	"github.com/jd-develop/geodesie-de-bureau/internal/feature"
	"github.com/jd-develop/geodesie-de-bureau/internal/model"
)

const sheetURLFormat = "https://geodesie.ign.fr/fiches/index.php?module=e&action=fichepdf&source=gp&rn_cid=%d&geo_cid=0"

// SheetURL returns the address of the PDF record sheet of a benchmark.
func SheetURL(cid int64) string {
	return fmt.Sprintf(sheetURLFormat, cid)
}

// TypeWithCanex merges the type complement with the canex annotation.
func TypeWithCanex(complement, canex string) string {
	switch {
	case complement == "":
		return canex
	case canex == "":
		return complement
	default:
		return complement + ", " + canex
	}
}

// Build maps a feature into a Benchmark. Coordinates keep the GeoJSON order.
func Build(f feature.Feature) model.Benchmark {
	p := f.Properties
	complement := deref(p.TypeComplement)

	return model.Benchmark{
		Matricule:      p.Name,
		CID:            p.CID,
		SheetURL:       SheetURL(p.CID),
		AltitudeSystem: p.AltitudeSystem,
		Altitude:       p.Altitude,
		AltitudeExtra:  p.AltitudeExtra,
		AltitudeType:   p.AltitudeType.Type,

		AltitudeTypeCode: p.AltitudeType.Raw,

		LastObservation: p.ObservationDate,
		Recalculated:    p.RecalcYear,
		LastVisit:       p.VisitDate,
		State:           p.State,

		Type:                    p.TypeCode,
		TypeComplement:          complement,
		CanexInfo:               p.CanexInfo,
		TypeComplementWithCanex: TypeWithCanex(complement, p.CanexInfo),

		Longitude: f.Longitude,
		Latitude:  f.Latitude,
		E:         p.E,
		N:         p.N,
		LambdaDMS: p.LambdaDMS,
		PhiDMS:    p.PhiDMS,

		Department:   p.Department,
		INSEE:        p.INSEE,
		Municipality: p.Municipality,
		Route:        p.Route,
		RouteFrom:    deref(p.RouteFrom),
		RouteTo:      deref(p.RouteTo),
		RouteSide:    p.RouteSide,
		RouteKP:      deref(p.RouteKP),
		Distance:     deref(p.Distance),
		FromMark:     p.NearestName,
		Location:     deref(p.Location),

		Support:        p.Support,
		SupportPart:    p.SupportPart,
		HorizontalMark: deref(p.HorizontalMark),
		VerticalMark:   deref(p.VerticalMark),

		OutsideIGN:   p.OutsideIGN,
		Remarks:      p.Remark,
		GPSUsability: p.GPSUsability,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
