package models

import "time"

type Consultation struct {
	PatientName     string
	Dob             string
	VisitDate       string
	Complaints      string
	Anamnesis       string
	Diagnosis       string
	Treatment       string
	Recommendations string
	DoctorName      string
	DoctorSpecialty string
	SavedAt         time.Time
}

func (c *Consultation) ToRow() []string {
	return []string{
		c.PatientName,
		c.Dob,
		c.VisitDate,
		c.Complaints,
		c.Anamnesis,
		c.Diagnosis,
		c.Treatment,
		c.Recommendations,
		c.DoctorName,
		c.DoctorSpecialty,
		c.SavedAt.Format(time.RFC3339),
	}
}

// ConsultationRecord is a stored consultation as read back from the sheet.
// SavedAt stays a string since rows written by hand may hold any format.
type ConsultationRecord struct {
	RowIndex        int
	PatientName     string
	Dob             string
	VisitDate       string
	Complaints      string
	Anamnesis       string
	Diagnosis       string
	Treatment       string
	Recommendations string
	DoctorName      string
	DoctorSpecialty string
	SavedAt         string
}

func ConsultationRecordFromRow(row []string, rowIndex int) *ConsultationRecord {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	return &ConsultationRecord{
		RowIndex:        rowIndex,
		PatientName:     cell(0),
		Dob:             cell(1),
		VisitDate:       cell(2),
		Complaints:      cell(3),
		Anamnesis:       cell(4),
		Diagnosis:       cell(5),
		Treatment:       cell(6),
		Recommendations: cell(7),
		DoctorName:      cell(8),
		DoctorSpecialty: cell(9),
		SavedAt:         cell(10),
	}
}

// SaveOutcome reports the credits left after a save. Remaining is -1 for
// accounts without a clinic.
type SaveOutcome struct {
	ClinicID  string
	Remaining int
	Unlimited bool
}
