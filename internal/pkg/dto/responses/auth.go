package responses

type Login struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UserProfile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Role      string `json:"role"`
}

type Session struct {
	Login string `json:"login"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}
