package render

import (
	"strconv"
	"strings"

	"github.com/jd-develop/geodesie-de-bureau/internal/model"
)

// Text renders the record sheet of a benchmark. Sections always come in the
// same order; optional fields without a value produce no line at all.
func Text(b model.Benchmark, st Style) string {
	s := sheet{st: st}

	s.raw(st.Heading("=============== Repère de nivellement ==============="))
	s.blank()
	s.field("Fiche en ligne", b.SheetURL)
	s.blank()
	s.field("Matricule", b.Matricule)
	s.field("Système altimétrique", b.AltitudeSystem.Label())
	s.field("Altitude", b.Altitude+" m ("+b.AltitudeType.Label()+")")
	if b.AltitudeExtra != "" {
		s.field("Altitude", b.AltitudeExtra+" m (Altitude complémentaire)")
	}

	s.section("Dernière visite et observation")
	s.field("Année de dernière observation", b.LastObservation)
	s.field("Année de nouveau calcul", b.Recalculated)
	s.field("Dernière visite", b.LastVisit)
	state := st.Bad(b.State.Label())
	if b.State.Good() {
		state = st.Good(b.State.Label())
	}
	s.field("État", state)

	s.section("Type")
	s.field("Type", b.Type.Label())
	s.optional("Complément", b.TypeComplementWithCanex)

	s.section("Coordonnées géographiques")
	s.field("Longitude", coord(b.Longitude, b.LambdaDMS))
	s.field("Latitude", coord(b.Latitude, b.PhiDMS))
	s.section("Coordonnées en mètres")
	s.field("E (m)", b.E)
	s.field("N (m)", b.N)

	s.section("Localisation")
	s.field("Département", b.Department)
	s.field("Numéro INSEE", b.INSEE)
	s.field("Commune", b.Municipality)
	s.field("Voie suivie", b.Route)
	s.sub("de", b.RouteFrom)
	s.sub("à", b.RouteTo)
	s.sub("côté", b.RouteSide.Label())
	if b.RouteKP != "" {
		s.sub("PK", b.RouteKP+" km")
	}
	if b.Distance != "" {
		s.field("Distance", b.Distance+" km")
		s.sub("du repère", b.FromMark)
	}
	s.optional("Localisation", b.Location)

	s.section("Support")
	s.field("Support", b.Support)
	s.optional("Partie du support", b.SupportPart)
	if b.HorizontalMark != "" || b.VerticalMark != "" {
		s.raw(st.Label("Repèrements") + " :")
		s.sub("horizontal", b.HorizontalMark)
		s.sub("vertical", b.VerticalMark)
	}

	gps := ""
	if b.GPSUsability.Known() {
		gps = b.GPSUsability.Label()
	}
	if b.Remarks != "" || gps != "" {
		s.section("Remarques")
		s.optional("Remarques", b.Remarks)
		s.optional("Exploitabilité GNSS", gps)
	}

	if notice := b.OutsideIGNNotice(); notice != "" {
		s.blank()
		s.raw(st.Warn(notice))
	}
	return s.String()
}

func coord(v float64, dms string) string {
	dec := strconv.FormatFloat(v, 'f', -1, 64)
	if dms == "" {
		return dec
	}
	return dec + " (" + dms + ")"
}

type sheet struct {
	b  strings.Builder
	st Style
}

func (s *sheet) raw(line string) {
	s.b.WriteString(line)
	s.b.WriteByte('\n')
}

func (s *sheet) blank() { s.b.WriteByte('\n') }

func (s *sheet) section(title string) {
	s.blank()
	s.raw(s.st.Heading("=== " + title + " ==="))
}

func (s *sheet) field(label, value string) {
	s.raw(s.st.Label(label) + " : " + value)
}

func (s *sheet) optional(label, value string) {
	if value != "" {
		s.field(label, value)
	}
}

// sub writes an indented detail line of the preceding field, or nothing when
// value is empty.
func (s *sheet) sub(label, value string) {
	if value == "" {
		return
	}
	s.raw("|- " + s.st.Label(label) + " : " + value)
}

func (s *sheet) String() string { return s.b.String() }
