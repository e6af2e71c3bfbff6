package domain

// GeoCoord is a latitude/longitude pair as returned by the provider.
type GeoCoord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// valid reports whether the pair is usable. The provider marks missing
// coordinates either by omitting geo_coord or by zeroing both fields.
func (g *GeoCoord) valid() bool {
	return g != nil && g.Lat != 0 && g.Lng != 0
}

// AdmLevel is one tier of the provider's location hierarchy,
// numbered 1 (broadest) to 5 (narrowest).
type AdmLevel struct {
	ID       int64     `json:"id"`
	Level    int       `json:"level"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	GeoCoord *GeoCoord `json:"geo_coord,omitempty"`
}

// Location is a resolved address candidate from the location search endpoint.
type Location struct {
	AdmLevelCur *AdmLevel `json:"adm_level_cur"`
	AdmLevel1   *AdmLevel `json:"adm_level_1,omitempty"`
	AdmLevel2   *AdmLevel `json:"adm_level_2,omitempty"`
	AdmLevel3   *AdmLevel `json:"adm_level_3,omitempty"`
	AdmLevel4   *AdmLevel `json:"adm_level_4,omitempty"`
	AdmLevel5   *AdmLevel `json:"adm_level_5,omitempty"`
	DisplayTxt  string    `json:"display_txt"`
	Postcodes   []string  `json:"postcodes,omitempty"`
}

// ResolveCoordinates picks the coordinate pair to ship with: the current
// administrative level first, then levels 5 down to 1. The second return
// value is false when no level carries a usable pair, in which case the
// location cannot be used for rate quoting or order creation.
func (l Location) ResolveCoordinates() (GeoCoord, bool) {
	if l.AdmLevelCur != nil && l.AdmLevelCur.GeoCoord.valid() {
		return *l.AdmLevelCur.GeoCoord, true
	}
	for _, lvl := range [...]*AdmLevel{l.AdmLevel5, l.AdmLevel4, l.AdmLevel3, l.AdmLevel2, l.AdmLevel1} {
		if lvl != nil && lvl.GeoCoord.valid() {
			return *lvl.GeoCoord, true
		}
	}
	return GeoCoord{}, false
}

// AreaID returns the provider area id required by order creation.
func (l Location) AreaID() (int64, bool) {
	if l.AdmLevelCur == nil {
		return 0, false
	}
	return l.AdmLevelCur.ID, true
}
