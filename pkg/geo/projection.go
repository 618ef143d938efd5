package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// The process-wide default UTM zone and latitude band. Every converter built
// without an explicit Projection uses this pair.
const (
	DefaultZone = 33
	DefaultBand = 'W'
)

// Projection fixes the UTM zone and latitude band used for every transform.
//
// The zone is forced: points are projected into this zone even when their
// longitude belongs to a neighbouring one, so that a whole model domain shares
// one Cartesian frame.
type Projection struct {
	Zone int  // 1..60
	Band byte // C..X, excluding I and O
}

// DefaultProjection returns the projection built from DefaultZone and DefaultBand.
func DefaultProjection() Projection {
	return Projection{Zone: DefaultZone, Band: DefaultBand}
}

// ParseProjection parses a zone/band designator such as "33W" or "33 W".
func ParseProjection(s string) (Projection, error) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if len(s) < 2 {
		return Projection{}, fmt.Errorf("invalid UTM designator %q", s)
	}
	digits := s[:len(s)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Projection{}, fmt.Errorf("invalid UTM zone in %q: want digits followed by a band letter", s)
		}
	}
	zone, err := strconv.Atoi(digits)
	if err != nil {
		return Projection{}, fmt.Errorf("invalid UTM zone in %q: %w", s, err)
	}
	p := Projection{Zone: zone, Band: s[len(s)-1]}
	if err := p.Validate(); err != nil {
		return Projection{}, err
	}
	return p, nil
}

// Validate checks that the zone and band are legal UTM designators.
func (p Projection) Validate() error {
	if p.Zone < 1 || p.Zone > 60 {
		return fmt.Errorf("invalid UTM zone %d: must be 1..60", p.Zone)
	}
	if p.Band < 'C' || p.Band > 'X' || p.Band == 'I' || p.Band == 'O' {
		return fmt.Errorf("invalid UTM band %q: must be C..X excluding I and O", p.Band)
	}
	return nil
}

// Southern reports whether the band lies in the southern hemisphere.
func (p Projection) Southern() bool {
	return p.Band < 'N'
}

// CentralMeridian returns the central meridian of the zone in degrees.
func (p Projection) CentralMeridian() float64 {
	return float64(6*p.Zone - 183)
}

// Proj4 returns the proj4 definition of the projected spatial reference.
func (p Projection) Proj4() string {
	def := fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", p.Zone)
	if p.Southern() {
		def += " +south"
	}
	return def
}

// String returns the zone/band designator, e.g. "33W".
func (p Projection) String() string {
	return fmt.Sprintf("%d%c", p.Zone, p.Band)
}
