package utils

import (
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/dto/requests"
	"strings"
)

// NormalizeLogin is the canonical form used to compare and store logins.
func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

// SanitizeLoginRequest trims the username only.
func SanitizeLoginRequest(input *requests.Login) {
	input.Username = strings.TrimSpace(input.Username)
}

func SanitizeCreateUserRequest(input *requests.CreateUser) {
	input.Login = NormalizeLogin(input.Login)
	input.Name = strings.TrimSpace(input.Name)
	input.Specialty = strings.TrimSpace(input.Specialty)
	input.ClinicID = strings.TrimSpace(input.ClinicID)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
	if input.Role == "" {
		input.Role = constvars.RoleDoctor
	}
}

func SanitizeSaveConsultationRequest(input *requests.SaveConsultation) {
	input.PatientName = strings.TrimSpace(input.PatientName)
	input.Dob = strings.TrimSpace(input.Dob)
	input.VisitDate = strings.TrimSpace(input.VisitDate)
	input.Complaints = strings.TrimSpace(input.Complaints)
	input.Anamnesis = strings.TrimSpace(input.Anamnesis)
	input.Diagnosis = strings.TrimSpace(input.Diagnosis)
	input.Treatment = strings.TrimSpace(input.Treatment)
	input.Recommendations = strings.TrimSpace(input.Recommendations)
	input.DoctorSpecialty = strings.TrimSpace(input.DoctorSpecialty)
}
