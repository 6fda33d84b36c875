package geo

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ParsedLink is what can be read straight out of a Google Maps URL.
type ParsedLink struct {
	Point
	Name string `json:"name,omitempty"`
}

var (
	queryPattern  = regexp.MustCompile(`[?&]q=([^&]+)`)
	atPattern     = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	placeNamed    = regexp.MustCompile(`/place/([^/]+)/@(-?\d+\.\d+),(-?\d+\.\d+)`)
	placeCoords   = regexp.MustCompile(`/place/(-?\d+\.\d+),(-?\d+\.\d+)`)
	dataPattern   = regexp.MustCompile(`!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`)
	mapsHost      = regexp.MustCompile(`(?i)^https?://(www\.)?(google\.(com|co\.\w+)|maps\.app\.goo\.gl|goo\.gl)/maps`)
	mapsSubdomain = regexp.MustCompile(`(?i)^https?://maps\.google`)
)

// IsGoogleMapsLink reports whether text looks like a Google Maps URL.
func IsGoogleMapsLink(text string) bool {
	return mapsHost.MatchString(text) || mapsSubdomain.MatchString(text)
}

// ParseGoogleMapsLink extracts coordinates (and a name when present) from
// the URL shapes Maps shares. ok is false when nothing usable is found.
func ParseGoogleMapsLink(link string) (ParsedLink, bool) {
	if m := queryPattern.FindStringSubmatch(link); m != nil {
		q, err := url.QueryUnescape(m[1])
		if err != nil {
			q = m[1]
		}
		coords := strings.Split(q, ",")
		if len(coords) >= 2 {
			lat, errLat := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
			lng, errLng := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
			if errLat == nil && errLng == nil {
				return ParsedLink{Point: Point{Lat: lat, Lng: lng}}, true
			}
		}
	}

	// the named form carries an @ as well, so it has to win over the bare @ form
	if m := placeNamed.FindStringSubmatch(link); m != nil {
		name, err := url.QueryUnescape(m[1])
		if err != nil {
			name = strings.ReplaceAll(m[1], "+", " ")
		}
		return ParsedLink{Point: mustPoint(m[2], m[3]), Name: name}, true
	}

	if m := atPattern.FindStringSubmatch(link); m != nil {
		return ParsedLink{Point: mustPoint(m[1], m[2])}, true
	}

	if m := placeCoords.FindStringSubmatch(link); m != nil {
		return ParsedLink{Point: mustPoint(m[1], m[2])}, true
	}

	if m := dataPattern.FindStringSubmatch(link); m != nil {
		return ParsedLink{Point: mustPoint(m[1], m[2])}, true
	}

	return ParsedLink{}, false
}

// mustPoint parses regexp captures that are already known to be numbers.
func mustPoint(lat, lng string) Point {
	la, _ := strconv.ParseFloat(lat, 64)
	ln, _ := strconv.ParseFloat(lng, 64)
	return Point{Lat: la, Lng: ln}
}
