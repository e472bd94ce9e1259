package responses

type Credits struct {
	ClinicName       string `json:"clinicName"`
	TotalCredits     int    `json:"totalCredits"`
	UsedCredits      int    `json:"usedCredits"`
	RemainingCredits int    `json:"remainingCredits"`
	Unlimited        bool   `json:"unlimited"`
}

type SaveConsultation struct {
	RemainingCredits int  `json:"remainingCredits"`
	Unlimited        bool `json:"unlimited"`
}

type Patient struct {
	ID              int    `json:"id"`
	PatientName     string `json:"patientName"`
	Dob             string `json:"dob"`
	VisitDate       string `json:"visitDate"`
	Complaints      string `json:"complaints"`
	Anamnesis       string `json:"anamnesis"`
	Diagnosis       string `json:"diagnosis"`
	Treatment       string `json:"treatment"`
	Recommendations string `json:"recommendations"`
	DoctorName      string `json:"doctorName"`
	DoctorSpecialty string `json:"doctorSpecialty"`
	SavedAt         string `json:"savedAt"`
	RowIndex        int    `json:"rowIndex"`
}

type AnalyzeAudio struct {
	Text     string      `json:"text"`
	Analysis interface{} `json:"analysis"`
}
