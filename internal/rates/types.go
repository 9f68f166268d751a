package rates

// API response types. Unknown fields are ignored.

type latestResponse struct {
	Rates  map[string]float64 `json:"rates"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Amount float64            `json:"amount"`
}

type historicalResponse struct {
	Rates     map[string]map[string]float64 `json:"rates"`
	Base      string                        `json:"base"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Amount    float64                       `json:"amount"`
}
