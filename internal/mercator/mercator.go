// Package mercator implements forward and inverse Spherical Web-Mercator
// (EPSG:3857) projection, on both the sphere and the WGS84 ellipsoid.
//
// All public coordinates use github.com/paulmach/orb so the projection
// kernel composes directly with the rest of the toolchain and with any
// other orb-based tool in the surrounding ecosystem.
package mercator

import (
	"math"

	"github.com/paulmach/orb"
)

// WGS84Eccentricity is the eccentricity of the WGS84 ellipsoid, e ≈ 0.0818192.
const WGS84Eccentricity = 0.0818191908426215

// SphericalMaxLatitude is the latitude whose spherical (e=0) Mercator y
// maps to exactly ±1 in normalized coordinates: atan(sinh(pi))·180/pi.
const SphericalMaxLatitude = 85.05112877980659

// EllipsoidalMaxLatitude is the latitude whose WGS84-ellipsoidal
// Mercator y maps to exactly ±1 in normalized coordinates. It differs
// from SphericalMaxLatitude because the ellipsoidal forward projection
// is scaled by the eccentricity term (1-e·sin)/(1+e·sin))^(e/2), not
// just e=0's plain Gudermannian.
const EllipsoidalMaxLatitude = 85.0840590501

// EllipsoidIterations is the number of fixed-point iterations used to
// invert the ellipsoidal forward projection; the source is not a closed
// form and converges well within this bound for |lat| < EllipsoidalMaxLatitude.
const EllipsoidIterations = 10

// Mode selects spherical (e=0) or WGS84-ellipsoidal Mercator.
type Mode int

const (
	Spherical Mode = iota
	Ellipsoidal
)

// clampLatitude clips lat to ±maxLat, the image of normalized y=±1 for
// the calling mode's projection.
func clampLatitude(lat, maxLat float64) float64 {
	if lat > maxLat {
		return maxLat
	}
	if lat < -maxLat {
		return -maxLat
	}
	return lat
}

// normalizeLongitude wraps lng into [-180, 180].
func normalizeLongitude(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

// Forward projects (lng, lat) in degrees to normalized Mercator (x, y) in
// [-1, 1]^2, using the given projection mode.
func Forward(lng, lat float64, mode Mode) orb.Point {
	if mode == Ellipsoidal {
		return ForwardEllipsoidal(lng, lat)
	}
	return ForwardSpherical(lng, lat)
}

// ForwardSpherical projects (lng, lat) on the sphere to normalized
// Mercator (x, y) in [-1, 1]^2. x = lng/180. y is the standard Mercator
// y, divided by pi so the whole Earth spans ±1.
func ForwardSpherical(lng, lat float64) orb.Point {
	lat = clampLatitude(lat, SphericalMaxLatitude)
	x := lng / 180.0
	latRad := lat * math.Pi / 180.0
	y := math.Log(math.Tan(math.Pi/4.0+latRad/2.0)) / math.Pi
	return orb.Point{x, y}
}

// ForwardEllipsoidal projects (lng, lat) on the WGS84 ellipsoid to
// normalized Mercator (x, y) in [-1, 1]^2.
func ForwardEllipsoidal(lng, lat float64) orb.Point {
	lat = clampLatitude(lat, EllipsoidalMaxLatitude)
	e := WGS84Eccentricity
	x := lng / 180.0
	latRad := lat * math.Pi / 180.0
	sinLat := math.Sin(latRad)
	esinLat := e * sinLat
	ts := math.Tan(math.Pi/4.0+latRad/2.0) * math.Pow((1-esinLat)/(1+esinLat), e/2.0)
	y := math.Log(ts) / math.Pi
	return orb.Point{x, y}
}

// Reverse inverts Forward, returning (lng, lat) in degrees.
func Reverse(p orb.Point, mode Mode) (lng, lat float64) {
	if mode == Ellipsoidal {
		return ReverseEllipsoidal(p)
	}
	return ReverseSpherical(p)
}

// ReverseSpherical inverts ForwardSpherical via the closed-form Gudermannian.
func ReverseSpherical(p orb.Point) (lng, lat float64) {
	lng = normalizeLongitude(p[0] * 180.0)
	latRad := 2.0*math.Atan(math.Exp(p[1]*math.Pi)) - math.Pi/2.0
	lat = clampLatitude(latRad*180.0/math.Pi, SphericalMaxLatitude)
	return lng, lat
}

// ReverseEllipsoidal inverts ForwardEllipsoidal by fixed-point iteration
// (EllipsoidIterations steps), since the ellipsoidal Mercator has no
// closed-form inverse.
func ReverseEllipsoidal(p orb.Point) (lng, lat float64) {
	lng = normalizeLongitude(p[0] * 180.0)
	e := WGS84Eccentricity
	ts := math.Exp(-p[1] * math.Pi)
	phi := math.Pi/2.0 - 2.0*math.Atan(ts)
	for i := 0; i < EllipsoidIterations; i++ {
		esinPhi := e * math.Sin(phi)
		phi = math.Pi/2.0 - 2.0*math.Atan(ts*math.Pow((1-esinPhi)/(1+esinPhi), e/2.0))
	}
	lat = clampLatitude(phi*180.0/math.Pi, EllipsoidalMaxLatitude)
	return lng, lat
}
