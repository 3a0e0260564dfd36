package models

// Chat roles understood by the generator.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of an advisor conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FarmingData is a set of pond water readings.
type FarmingData struct {
	PH                     float64 `json:"phValue"`
	Salinity               float64 `json:"salinity"`               // ppt
	Algae                  float64 `json:"algae"`                  // cells/L
	DissolvedOxygen        float64 `json:"dissolvedOxygen"`        // mg/L
	BacterialLoad          float64 `json:"bacterialLoad"`          // CFU/mL
	EnvironmentalCondition string  `json:"environmentalCondition"` // location, aerators, filters...
}
