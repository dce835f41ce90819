package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	JobLog     bool      `json:"job_log"`
	JobLogSize int       `json:"job_log_size"`
	LastCheck  time.Time `json:"last_check"`
}
