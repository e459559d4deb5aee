package domain

// Conversion constants for analysis-service descriptors. The service reports
// normalized [0,1] values; these affine transforms map them onto the
// streaming provider's native ranges. The factors were supplied by the
// service operator and are fixed configuration, not derivable from its docs.
const (
	analysisAcousticnessScale = 0.005
	analysisDanceabilityScale = 2.25
	analysisEnergyScale       = 0.03
	analysisLoudnessRangeDB   = 14.0
)

// ConvertAnalysisUnits converts an analysis-service bundle to canonical
// units. Only the four fields with diverging scales are touched; nil fields
// stay nil and every other field passes through unchanged.
func ConvertAnalysisUnits(d Descriptors) Descriptors {
	out := d
	if d.Acousticness != nil {
		out.Acousticness = Float(*d.Acousticness * analysisAcousticnessScale)
	}
	if d.Danceability != nil {
		out.Danceability = Float(*d.Danceability * analysisDanceabilityScale)
	}
	if d.Energy != nil {
		out.Energy = Float(*d.Energy * analysisEnergyScale)
	}
	if d.Loudness != nil {
		out.Loudness = Float(-(1 - *d.Loudness) * analysisLoudnessRangeDB)
	}
	return out
}
