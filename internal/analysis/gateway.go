package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/llm"
	"github.com/BruksfildServices01/care-scheduler/internal/metrics"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Result is the structured suggestion produced for a set of symptoms.
type Result struct {
	AIAnalysis          string                `json:"aiAnalysis"`
	Severity            string                `json:"severity"`
	SeekEmergencyCare   bool                  `json:"seekEmergencyCare"`
	AyurvedicMedicines  []models.MedicineDose `json:"ayurvedicMedicines"`
	AllopathicMedicines []models.MedicineDose `json:"allopathicMedicines"`
}

// Fallback is returned whenever the model cannot produce a usable answer.
func Fallback() Result {
	return Result{
		AIAnalysis:        "Unable to analyze symptoms at this time. Please consult a healthcare professional for proper diagnosis.",
		Severity:          SeverityModerate,
		SeekEmergencyCare: false,
		AyurvedicMedicines: []models.MedicineDose{
			{Name: "Tulsi (Holy Basil) Tea", Dosage: "1 cup", Timing: "Morning and evening", Duration: "3-5 days"},
			{Name: "Ginger and Honey", Dosage: "1 teaspoon", Timing: "After meals", Duration: "5 days"},
		},
		AllopathicMedicines: []models.MedicineDose{
			{Name: "Consult a Doctor", Dosage: "N/A", Timing: "As soon as possible", Duration: "As prescribed"},
		},
	}
}

type Gateway struct {
	gen llm.Generator
	log *zap.Logger
}

func NewGateway(gen llm.Generator, log *zap.Logger) *Gateway {
	return &Gateway{gen: gen, log: log}
}

// Analyze never fails: any upstream or parse problem yields Fallback.
func (g *Gateway) Analyze(ctx context.Context, symptoms string) Result {
	text, err := g.gen.Generate(ctx, buildPrompt(symptoms))
	if err != nil {
		reason := "upstream"
		if errors.Is(err, llm.ErrNotConfigured) {
			reason = "not_configured"
		}
		return g.fallback(reason, err)
	}

	res, err := Parse(text)
	if err != nil {
		return g.fallback("parse", err)
	}
	return res
}

// Ping reports whether the model answers at all.
func (g *Gateway) Ping(ctx context.Context) bool {
	if _, err := g.gen.Generate(ctx, pingPrompt); err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			g.log.Warn("ai connection test failed", zap.Error(err))
		}
		return false
	}
	return true
}

func (g *Gateway) fallback(reason string, err error) Result {
	metrics.AnalysisFallbacks.WithLabelValues(reason).Inc()
	g.log.Warn("symptom analysis fell back",
		zap.String("reason", reason),
		zap.Error(err),
	)
	return Fallback()
}

// Parse decodes model text, tolerating a markdown fence around the JSON.
func Parse(text string) (Result, error) {
	var res Result
	if err := json.Unmarshal([]byte(StripFences(text)), &res); err != nil {
		return Result{}, fmt.Errorf("decode analysis: %w", err)
	}

	res.Severity = strings.ToLower(strings.TrimSpace(res.Severity))
	switch res.Severity {
	case SeverityMild, SeverityModerate, SeveritySevere:
	default:
		return Result{}, fmt.Errorf("unknown severity %q", res.Severity)
	}
	if strings.TrimSpace(res.AIAnalysis) == "" {
		return Result{}, errors.New("empty analysis")
	}

	res.AyurvedicMedicines = capDoses(res.AyurvedicMedicines)
	res.AllopathicMedicines = capDoses(res.AllopathicMedicines)
	return res, nil
}

// MaxSuggestions caps each medicine list taken from the model.
const MaxSuggestions = 4

func capDoses(d []models.MedicineDose) []models.MedicineDose {
	if d == nil {
		return []models.MedicineDose{}
	}
	if len(d) > MaxSuggestions {
		return d[:MaxSuggestions]
	}
	return d
}
