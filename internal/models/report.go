package models

// InstitutionStats is the principal-level aggregate the gateway computes
// across all faculties.
type InstitutionStats struct {
	TotalLecturers      int     `json:"totalLecturers"`
	TotalFaculties      int     `json:"totalFaculties"`
	OverallAttendance   float64 `json:"overallAttendance"`
	CompletionRate      float64 `json:"completionRate"`
	AverageClassSize    float64 `json:"averageClassSize"`
	StudentTeacherRatio float64 `json:"studentTeacherRatio"`
}

// PrincipalReport wraps the gateway's institution report payload.
type PrincipalReport struct {
	InstitutionStats InstitutionStats `json:"institutionStats"`
}
