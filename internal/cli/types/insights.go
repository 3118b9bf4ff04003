package types

// ChatInsights is the aggregated analytics payload for an agent's dashboard.
type ChatInsights struct {
	TopQuestions       []QuestionCount `json:"top_questions"`
	PeakHours          []HourCount     `json:"peak_hours"`
	PopularProperties  []PropertyCount `json:"popular_properties"`
	GPTRecommendations []string        `json:"gpt_recommendations"`
}

// QuestionCount pairs a frequently asked question with its count
type QuestionCount struct {
	Question string `json:"question"`
	Count    int    `json:"count"`
}

// HourCount pairs an hour of day with chat volume
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// PropertyCount pairs a property with how often it appeared in results
type PropertyCount struct {
	PropertyID string `json:"property_id"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Count      int    `json:"count"`
}
