package models

import "time"

type ClientStatus string

const (
	StatusTodo      ClientStatus = "Fazer"
	StatusScheduled ClientStatus = "Agendado"
	StatusDone      ClientStatus = "Retirado"

	// StatusAny is the list filter value that matches every status.
	StatusAny = "Todos"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusScheduled, StatusDone:
		return true
	}
	return false
}

// Rank orders statuses for listing: pending work first.
func (s ClientStatus) Rank() int {
	switch s {
	case StatusTodo:
		return 3
	case StatusScheduled:
		return 2
	default:
		return 1
	}
}

// ParsedClient is the best-effort record suggested by the text extractor.
// Empty fields were not found.
type ParsedClient struct {
	Name          string       `json:"name,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	CPF           string       `json:"cpf,omitempty"`
	TrackerNumber string       `json:"tracker_number,omitempty"`
	TrackerModel  string       `json:"tracker_model,omitempty"`
	Vehicle       string       `json:"vehicle,omitempty"`
	Plate         string       `json:"plate,omitempty"`
	Address       string       `json:"address,omitempty"`
	Status        ClientStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

type Client struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Phone         string       `json:"phone"`
	CPF           string       `json:"cpf"`
	Address       string       `json:"address"`
	Vehicle       string       `json:"vehicle"`
	Plate         string       `json:"plate"`
	TrackerNumber string       `json:"tracker_number"`
	TrackerModel  string       `json:"tracker_model"`
	Observations  string       `json:"observations"`
	ScheduledDate string       `json:"scheduled_date"`
	ScheduledTime string       `json:"scheduled_time"`
	Status        ClientStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type ClientFilter struct {
	Query  string
	Status string
}

type Stats struct {
	Total     int `json:"total"`
	Todo      int `json:"todo"`
	Scheduled int `json:"scheduled"`
	Done      int `json:"done"`
}

type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ImportSummary struct {
	Rows    int      `json:"rows"`
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}
