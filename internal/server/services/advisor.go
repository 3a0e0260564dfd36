package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

// NoResponseText is returned when the generator answers with no text.
const NoResponseText = "No response generated."

const (
	rationaleDetailed = "Also, analyze each of these conditions, and provide a detailed rationale."
	rationaleBrief    = "Analyze each of these conditions briefly, no rationale."
)

// Generator produces a reply to a role-tagged conversation.
type Generator interface {
	Generate(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// AdvisorService turns pond readings into a prompt and asks the generator.
type AdvisorService struct {
	prefs     *PreferenceService
	generator Generator
	logger    logging.Logger
}

// NewAdvisorService constructs an AdvisorService. generator may be nil when
// no API key is configured; Chat then fails with ErrGeneratorUnavailable.
func NewAdvisorService(prefs *PreferenceService, generator Generator, logger logging.Logger) *AdvisorService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &AdvisorService{prefs: prefs, generator: generator, logger: logger.With("module", "advisor")}
}

// Chat sends history, followed by a prompt built from data when data is
// not nil, to the generator and returns its text.
func (s *AdvisorService) Chat(ctx context.Context, history []models.ChatMessage, data *models.FarmingData) (string, error) {
	messages := make([]models.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)

	if data != nil {
		prefs, err := s.prefs.Get(ctx)
		if err != nil {
			return "", err
		}
		messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: BuildPrompt(data, prefs)})
	}

	if len(messages) == 0 {
		return "", common.ErrEmptyConversation
	}
	if s.generator == nil {
		return "", common.ErrGeneratorUnavailable
	}

	text, err := s.generator.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	s.logger.Debug(ctx, "advisor answered", "messages", len(messages), "chars", len(text))

	if strings.TrimSpace(text) == "" {
		return NoResponseText, nil
	}
	return text, nil
}

// BuildPrompt renders the readings and the region/rationale preferences
// into the instruction sent to the generator.
func BuildPrompt(data *models.FarmingData, prefs *models.Preferences) string {
	rationale := rationaleBrief
	if prefs.IncludeRationale {
		rationale = rationaleDetailed
	}

	var b strings.Builder
	b.WriteString("The following are fish pond water conditions:\n")
	fmt.Fprintf(&b, "pH: %s, Dissolved oxygen: %s mg/L,\n", num(data.PH), num(data.DissolvedOxygen))
	fmt.Fprintf(&b, "Salinity: %s ppt, Algae: %s cells/L,\n", num(data.Salinity), num(data.Algae))
	fmt.Fprintf(&b, "Bacterial load: %s CFU/mL,\n", num(data.BacterialLoad))
	fmt.Fprintf(&b, "Environmental conditions: %s.\n", data.EnvironmentalCondition)
	fmt.Fprintf(&b, "Tailor your response for %s. %s", prefs.GeographicRegion, rationale)
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
