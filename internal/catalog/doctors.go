package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lib/pq"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

// DoctorRecord is the roster file format.
type DoctorRecord struct {
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Rating          float64  `json:"rating"`
	Experience      string   `json:"experience"`
	Image           string   `json:"image"`
	Available       *bool    `json:"available"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Bio             string   `json:"bio"`
	ConsultationFee float64  `json:"consultationFee"`
	Languages       []string `json:"languages"`
}

func (r DoctorRecord) Model() (models.Doctor, error) {
	d := models.Doctor{
		Name:            strings.TrimSpace(r.Name),
		Specialty:       strings.TrimSpace(r.Specialty),
		Rating:          r.Rating,
		Experience:      strings.TrimSpace(r.Experience),
		ImageURL:        strings.TrimSpace(r.Image),
		Available:       true,
		Email:           validators.NormalizeEmail(r.Email),
		Phone:           strings.TrimSpace(r.Phone),
		Bio:             strings.TrimSpace(r.Bio),
		ConsultationFee: r.ConsultationFee,
		Languages:       pq.StringArray(r.Languages),
	}
	if r.Available != nil {
		d.Available = *r.Available
	}
	if d.Rating == 0 {
		d.Rating = 4.5
	}
	if d.ConsultationFee == 0 {
		d.ConsultationFee = 500
	}

	switch {
	case d.Name == "" || d.Specialty == "" || d.Experience == "" || d.Phone == "":
		return d, fmt.Errorf("doctor %q: name, specialty, experience and phone are required", r.Email)
	case !validators.IsEmailValid(d.Email):
		return d, fmt.Errorf("doctor %q: invalid email", r.Email)
	case d.Rating < 0 || d.Rating > 5:
		return d, fmt.Errorf("doctor %q: rating must be between 0 and 5", r.Email)
	case d.ConsultationFee < 0:
		return d, fmt.Errorf("doctor %q: consultation fee must not be negative", r.Email)
	}
	return d, nil
}

// ReadDoctors parses a JSON array of roster records.
func ReadDoctors(r io.Reader) ([]models.Doctor, error) {
	var recs []DoctorRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return toModels(recs)
}

// SampleDoctors is the roster used when no file is given.
func SampleDoctors() []models.Doctor {
	no := false
	recs := []DoctorRecord{
		{
			Name: "Dr. Priya Sharma", Specialty: "General Physician", Rating: 4.8,
			Experience: "12 years", Email: "priya.sharma@healthcare.com", Phone: "+91 98765 43210",
			Bio:             "Experienced general physician focused on preventive care and chronic disease management.",
			ConsultationFee: 500, Languages: []string{"English", "Hindi"},
		},
		{
			Name: "Dr. Rajesh Kumar", Specialty: "Cardiologist", Rating: 4.9,
			Experience: "18 years", Email: "rajesh.kumar@healthcare.com", Phone: "+91 98765 43211",
			Bio:             "Interventional cardiologist treating heart disease and hypertension.",
			ConsultationFee: 1200, Languages: []string{"English", "Hindi", "Punjabi"},
		},
		{
			Name: "Dr. Anita Patel", Specialty: "Pediatrician", Rating: 4.7,
			Experience: "10 years", Email: "anita.patel@healthcare.com", Phone: "+91 98765 43212",
			Bio:             "Pediatrician caring for newborns, children and adolescents.",
			ConsultationFee: 700, Languages: []string{"English", "Hindi", "Gujarati"},
		},
		{
			Name: "Dr. Suresh Menon", Specialty: "Dermatologist", Rating: 4.6,
			Experience: "9 years", Email: "suresh.menon@healthcare.com", Phone: "+91 98765 43213",
			Bio:             "Dermatologist treating skin, hair and nail conditions.",
			ConsultationFee: 800, Languages: []string{"English", "Malayalam"},
		},
		{
			Name: "Dr. Kavitha Reddy", Specialty: "Gynecologist", Rating: 4.9,
			Experience: "15 years", Email: "kavitha.reddy@healthcare.com", Phone: "+91 98765 43214",
			Bio:             "Gynecologist specialising in women's health and prenatal care.",
			ConsultationFee: 1000, Languages: []string{"English", "Telugu", "Hindi"},
		},
		{
			Name: "Dr. Arun Nair", Specialty: "Orthopedic Surgeon", Rating: 4.8,
			Experience: "14 years", Email: "arun.nair@healthcare.com", Phone: "+91 98765 43215",
			Bio:             "Orthopedic surgeon treating joint, bone and sports injuries.",
			ConsultationFee: 1100, Languages: []string{"English", "Malayalam", "Tamil"},
			Available: &no,
		},
	}
	out, err := toModels(recs)
	if err != nil {
		panic(err)
	}
	return out
}

func toModels(recs []DoctorRecord) ([]models.Doctor, error) {
	out := make([]models.Doctor, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for _, r := range recs {
		d, err := r.Model()
		if err != nil {
			return nil, err
		}
		if seen[d.Email] {
			return nil, fmt.Errorf("doctor %q listed twice", d.Email)
		}
		seen[d.Email] = true
		out = append(out, d)
	}
	return out, nil
}
