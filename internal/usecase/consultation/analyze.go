package consultation

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/care-scheduler/internal/analysis"
	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

type Analyzer interface {
	Analyze(ctx context.Context, symptoms string) analysis.Result
}

type AnalyzeOutput struct {
	ID                  uuid.UUID             `json:"id"`
	Symptoms            string                `json:"symptoms"`
	AIAnalysis          string                `json:"aiAnalysis"`
	Severity            string                `json:"severity"`
	SeekEmergencyCare   bool                  `json:"seekEmergencyCare"`
	AyurvedicMedicines  []models.MedicineDose `json:"ayurvedicMedicines"`
	AllopathicMedicines []models.MedicineDose `json:"allopathicMedicines"`
	CreatedAt           time.Time             `json:"createdAt"`
	Disclaimer          string                `json:"disclaimer"`
}

type Analyze struct {
	analyzer Analyzer
	repo     domain.Repository
	audit    audit.Auditor
}

func NewAnalyze(
	analyzer Analyzer,
	repo domain.Repository,
	auditor audit.Auditor,
) *Analyze {
	return &Analyze{
		analyzer: analyzer,
		repo:     repo,
		audit:    auditor,
	}
}

// Execute analyses symptoms and records the consultation. userID is nil for
// guests.
func (uc *Analyze) Execute(
	ctx context.Context,
	userID *uuid.UUID,
	symptoms string,
) (*AnalyzeOutput, error) {

	symptoms = strings.TrimSpace(symptoms)
	if utf8.RuneCountInString(symptoms) < domain.MinSymptomsChars {
		return nil, domain.ErrSymptomsTooShort
	}

	res := uc.analyzer.Analyze(ctx, symptoms)

	c := &models.Consultation{
		UserID:              userID,
		Symptoms:            symptoms,
		AyurvedicMedicines:  res.AyurvedicMedicines,
		AllopathicMedicines: res.AllopathicMedicines,
		AIAnalysis:          res.AIAnalysis,
		Severity:            res.Severity,
		SeekEmergencyCare:   res.SeekEmergencyCare,
		IsGuest:             userID == nil,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "consultation_recorded",
		Entity:   "consultation",
		EntityID: &c.ID,
		Metadata: map[string]any{"severity": c.Severity, "guest": c.IsGuest},
	})

	return &AnalyzeOutput{
		ID:                  c.ID,
		Symptoms:            c.Symptoms,
		AIAnalysis:          c.AIAnalysis,
		Severity:            c.Severity,
		SeekEmergencyCare:   c.SeekEmergencyCare,
		AyurvedicMedicines:  c.AyurvedicMedicines,
		AllopathicMedicines: c.AllopathicMedicines,
		CreatedAt:           c.CreatedAt,
		Disclaimer:          analysis.Disclaimer,
	}, nil
}
