package domain

// DefaultBusinessName is shown on tickets until a profile is configured.
const DefaultBusinessName = "SOWIN"

// BusinessProfile is the header printed on tickets and reports.
type BusinessProfile struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
}
