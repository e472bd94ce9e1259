package models

type ClinicCredits struct {
	ClinicID     string
	ClinicName   string
	TotalCredits int
	UsedCredits  int
}

func (c *ClinicCredits) RemainingCredits() int {
	return c.TotalCredits - c.UsedCredits
}

func (c *ClinicCredits) HasCredits() bool {
	return c.RemainingCredits() > 0
}
