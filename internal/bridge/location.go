package bridge

import (
	"math"
	"sort"

	"github.com/janani-ai/janani-server/internal/domain"
)

const earthRadiusKM = 6371

// HaversineKM returns the great-circle distance between two coordinates in
// kilometers, rounded to two decimals.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1 = lat1 * math.Pi / 180
	lon1 = lon1 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))

	return math.Round(c*earthRadiusKM*100) / 100
}

// RankedHospital pairs a directory entry with its distance from the patient.
type RankedHospital struct {
	domain.Hospital
	DistanceKM float64
}

// NearestHospitals ranks the directory by distance from the given point.
// With no usable location the directory order is kept and distances stay
// zero, matching the directory's own priority ordering.
func NearestHospitals(loc *domain.GeoPoint, hospitals []domain.Hospital, limit int) []RankedHospital {
	if limit <= 0 || len(hospitals) == 0 {
		return nil
	}

	ranked := make([]RankedHospital, 0, len(hospitals))
	for _, h := range hospitals {
		entry := RankedHospital{Hospital: h}
		if loc != nil {
			entry.DistanceKM = HaversineKM(loc.Latitude, loc.Longitude, h.Latitude, h.Longitude)
		}
		ranked = append(ranked, entry)
	}

	if loc != nil {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].DistanceKM < ranked[j].DistanceKM
		})
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// NearestVolunteers ranks the volunteer directory by distance from the
// given point.
func NearestVolunteers(loc *domain.GeoPoint, volunteers []domain.Volunteer, limit int) []domain.Volunteer {
	if limit <= 0 || len(volunteers) == 0 {
		return nil
	}
	if loc == nil {
		if len(volunteers) > limit {
			return volunteers[:limit]
		}
		return volunteers
	}

	type ranked struct {
		v    domain.Volunteer
		dist float64
	}
	entries := make([]ranked, 0, len(volunteers))
	for _, v := range volunteers {
		entries = append(entries, ranked{
			v:    v,
			dist: HaversineKM(loc.Latitude, loc.Longitude, v.Latitude, v.Longitude),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].dist < entries[j].dist
	})

	out := make([]domain.Volunteer, 0, limit)
	for i, e := range entries {
		if i == limit {
			break
		}
		out = append(out, e.v)
	}
	return out
}
