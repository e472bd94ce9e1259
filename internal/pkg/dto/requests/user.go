package requests

type CreateUser struct {
	Login     string `json:"login" validate:"required,max=64,login"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Name      string `json:"name" validate:"required,max=128"`
	Specialty string `json:"specialty" validate:"max=128"`
	Role      string `json:"role" validate:"oneof=doctor admin"`
	ClinicID  string `json:"clinicId" validate:"max=128"`
}
