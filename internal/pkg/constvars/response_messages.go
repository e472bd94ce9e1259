package constvars

const (
	ResponseUnknown = "unknown"

	LoginSuccessMessage            = "login successfully"
	GetSessionSuccessMessage       = "get session successfully"
	GetUsersSuccessMessage         = "get users successfully"
	CreateUserSuccessMessage       = "user created successfully"
	DeactivateUserSuccessMessage   = "user deactivated successfully"
	GetCreditsSuccessMessage       = "get credits successfully"
	SaveConsultationSuccessMessage = "consultation saved successfully"
	GetPatientsSuccessMessage      = "get patients successfully"
	DeletePatientSuccessMessage    = "consultation deleted successfully"
	AnalyzeAudioSuccessMessage     = "audio analyzed successfully"
)
