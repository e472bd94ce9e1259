package requests

type SaveConsultation struct {
	PatientName     string `json:"patientName" validate:"required"`
	Dob             string `json:"dob"`
	VisitDate       string `json:"visitDate"`
	Complaints      string `json:"complaints"`
	Anamnesis       string `json:"anamnesis"`
	Diagnosis       string `json:"diagnosis"`
	Treatment       string `json:"treatment"`
	Recommendations string `json:"recommendations"`
	DoctorSpecialty string `json:"doctorSpecialty"`
}

type AnalyzeAudio struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}
