package responses

type UserAccount struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	ClinicID  string `json:"clinicId"`
	RowIndex  int    `json:"rowIndex"`
}
