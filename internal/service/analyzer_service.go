package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"teampulse/internal/analysis"
	"teampulse/internal/config"
	"teampulse/internal/metrics"
	"teampulse/internal/model"
)

// AnalyzerService derives a SignalAnalysis from raw answers. When the
// inference API is configured it asks the model first and falls back to the
// heuristic analyzer on any failure; callers never see inference errors, only
// the provenance tag on the result.
type AnalyzerService struct {
	config *config.AIConfig
	client *http.Client
	log    *zap.Logger
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(cfg *config.AIConfig, log *zap.Logger) *AnalyzerService {
	return &AnalyzerService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		log: log,
	}
}

// Analyze runs the inference path when enabled, the heuristic path otherwise
// or on any inference failure. Total for well-formed input: it always returns
// a result.
func (s *AnalyzerService) Analyze(ctx context.Context, kind model.SourceKind, answers []model.RawAnswer) model.AnalyzerResult {
	if !s.config.IsEnabled() {
		return s.deterministic(answers)
	}

	modelName := s.config.Models.Analysis
	if kind == model.SourceMeeting {
		modelName = s.config.Models.Meeting
	}

	prompt := s.buildAnalysisPrompt(answers)
	start := time.Now()
	response, err := s.callGemini(ctx, modelName, prompt)
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Warn("inference call failed, falling back to heuristic analyzer", zap.Error(err))
		metrics.InferenceFallbacks.Inc()
		return s.deterministic(answers)
	}

	var inferred model.InferredAnalysis
	if err := json.Unmarshal([]byte(response), &inferred); err != nil {
		s.log.Warn("inference returned unparseable JSON, falling back", zap.Error(err))
		metrics.InferenceFallbacks.Inc()
		return s.deterministic(answers)
	}

	result, ok := mapInferred(inferred)
	if !ok {
		s.log.Warn("inference response missing required fields, falling back")
		metrics.InferenceFallbacks.Inc()
		return s.deterministic(answers)
	}

	metrics.AnalysesTotal.WithLabelValues(string(model.ProvenanceInferred), string(result.Color)).Inc()
	return model.AnalyzerResult{Analysis: result, Provenance: model.ProvenanceInferred}
}

func (s *AnalyzerService) deterministic(answers []model.RawAnswer) model.AnalyzerResult {
	result := analysis.Analyze(answers)
	metrics.AnalysesTotal.WithLabelValues(string(model.ProvenanceDeterministic), string(result.Color)).Inc()
	return model.AnalyzerResult{Analysis: result, Provenance: model.ProvenanceDeterministic}
}

// mapInferred converts the model's JSON object to a SignalAnalysis. The
// bounded signal comes from round(clamp(satisfaction_score * multiplier,
// 1, 10)) with a sentiment-dependent multiplier. A missing score or summary
// invalidates the response.
func mapInferred(in model.InferredAnalysis) (model.SignalAnalysis, bool) {
	if in.SatisfactionScore <= 0 || in.Summary == "" {
		return model.SignalAnalysis{}, false
	}

	sentiment := strings.ToLower(in.OverallSentiment)
	multiplier := 1.0
	color := model.ColorYellow
	severity := model.SeverityMedium
	switch sentiment {
	case "positive":
		multiplier = 1.1
		color = model.ColorGreen
		severity = model.SeverityLow
	case "negative":
		multiplier = 0.9
		color = model.ColorRed
		severity = model.SeverityHigh
	}

	score := int(math.Round(clamp(in.SatisfactionScore*multiplier, 1, 10)))

	actionItems := in.Recommendations
	if len(actionItems) == 0 {
		actionItems = analysis.DefaultActionItems(color)
	}

	return model.SignalAnalysis{
		Color:       color,
		Severity:    severity,
		Score:       score,
		Summary:     in.Summary,
		KeyThemes:   in.KeyThemes,
		ActionItems: actionItems,
	}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// callGemini makes a request to the Gemini API
func (s *AnalyzerService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func (s *AnalyzerService) buildAnalysisPrompt(answers []model.RawAnswer) string {
	var b strings.Builder
	b.WriteString(`You are analyzing a team member's survey responses. Return ONLY valid JSON matching this schema:
{
  "satisfaction_score": 1.0 to 10.0,
  "overall_sentiment": "positive" or "negative" or "neutral",
  "key_themes": ["theme1", "theme2"],
  "recommendations": ["action item 1", "action item 2"],
  "summary": "one or two sentence summary"
}

Responses:
`)

	for i, a := range answers {
		fmt.Fprintf(&b, "%d. [%s] %s: %s\n", i+1, a.Type, a.QuestionID, formatAnswerValue(a))
	}

	b.WriteString("\nAssess overall satisfaction and wellbeing, extract key themes, and recommend concrete follow-up actions.")
	return b.String()
}

func formatAnswerValue(a model.RawAnswer) string {
	switch a.Type {
	case model.AnswerTypeText:
		return a.Value.Text
	case model.AnswerTypeRating:
		return fmt.Sprintf("%d/10", a.Value.Rating)
	case model.AnswerTypeChoice:
		return a.Value.Choice
	case model.AnswerTypeBoolean:
		return a.Value.YesNo
	default:
		return ""
	}
}
