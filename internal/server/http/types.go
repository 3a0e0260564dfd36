package http

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fishfarmer/internal/server/models"
)

// RegisterRequest is the request body for POST /register.
type RegisterRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// LoginRequest is the request body for POST /login. Username holds either
// a username or an email address.
type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// ChatMessageRequest is one entry of ChatRequest.Messages.
type ChatMessageRequest struct {
	Role    *string `json:"role"`
	Content *string `json:"content"`
}

// FarmingDataRequest carries pond readings; every field is required.
type FarmingDataRequest struct {
	PhValue                *float64 `json:"phValue"`
	Salinity               *float64 `json:"salinity"`
	Algae                  *float64 `json:"algae"`
	DissolvedOxygen        *float64 `json:"dissolvedOxygen"`
	BacterialLoad          *float64 `json:"bacterialLoad"`
	EnvironmentalCondition *string  `json:"environmentalCondition"`
}

// ChatRequest is the request body for POST /geminiCall.
type ChatRequest struct {
	Messages    []ChatMessageRequest `json:"messages"`
	FarmingData *FarmingDataRequest  `json:"farmingData"`
}

// StatusResponse is returned by /register and POST /options.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LoginResponse is the response body for a successful POST /login.
type LoginResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// ChatResponse is the response body for /geminiCall and /analyzeData.
type ChatResponse struct {
	Response string `json:"response"`
}

// AdvisorErrorResponse is returned when the text generator fails.
type AdvisorErrorResponse struct {
	Error string `json:"error"`
}

// ErrorResponse is the body of every other error.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// missing returns the names of the nil fields, in the order given.
func missing(fields ...any) []string {
	var out []string
	for i := 0; i+1 < len(fields); i += 2 {
		name := fields[i].(string)
		switch v := fields[i+1].(type) {
		case *string:
			if v == nil {
				out = append(out, name)
			}
		case *float64:
			if v == nil {
				out = append(out, name)
			}
		}
	}
	return out
}

func missingError(prefix string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	for i, n := range names {
		names[i] = prefix + n
	}
	return fmt.Errorf("field required: %s", strings.Join(names, ", "))
}

func (r *RegisterRequest) validate() error {
	return missingError("", missing("username", r.Username, "email", r.Email, "password", r.Password))
}

func (r *LoginRequest) validate() error {
	return missingError("", missing("username", r.Username, "password", r.Password))
}

func (r *FarmingDataRequest) validate(prefix string) error {
	return missingError(prefix, missing(
		"phValue", r.PhValue,
		"salinity", r.Salinity,
		"algae", r.Algae,
		"dissolvedOxygen", r.DissolvedOxygen,
		"bacterialLoad", r.BacterialLoad,
		"environmentalCondition", r.EnvironmentalCondition,
	))
}

func (r *FarmingDataRequest) model() *models.FarmingData {
	return &models.FarmingData{
		PH:                     *r.PhValue,
		Salinity:               *r.Salinity,
		Algae:                  *r.Algae,
		DissolvedOxygen:        *r.DissolvedOxygen,
		BacterialLoad:          *r.BacterialLoad,
		EnvironmentalCondition: *r.EnvironmentalCondition,
	}
}

// validate checks required fields and roles, and converts the request.
func (r *ChatRequest) validate() ([]models.ChatMessage, *models.FarmingData, error) {
	history := make([]models.ChatMessage, 0, len(r.Messages))
	for i, m := range r.Messages {
		if err := missingError(fmt.Sprintf("messages.%d.", i), missing("role", m.Role, "content", m.Content)); err != nil {
			return nil, nil, err
		}
		if *m.Role != models.RoleUser && *m.Role != models.RoleModel {
			return nil, nil, fmt.Errorf("messages.%d.role: must be %q or %q", i, models.RoleUser, models.RoleModel)
		}
		history = append(history, models.ChatMessage{Role: *m.Role, Content: *m.Content})
	}

	if r.FarmingData == nil {
		return history, nil, nil
	}
	if err := r.FarmingData.validate("farmingData."); err != nil {
		return nil, nil, err
	}
	return history, r.FarmingData.model(), nil
}
