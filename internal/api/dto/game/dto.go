package game

type StartRunRequest struct {
	Seed       *int64 `json:"seed,omitempty"`        // Явное зерно
	SeedPhrase string `json:"seed_phrase,omitempty"` // Фраза, из которой выводится зерно
}

type AdvanceRequest struct {
	Choice string `json:"choice,omitempty"` // SPIN, NO_SPIN, CONTINUE, QUIT или пусто
}

type RunResponse struct {
	ID          string           `json:"id"`
	Seed        int64            `json:"seed"`
	Attempt     int              `json:"attempt"`
	Token       string           `json:"token,omitempty"` // Только при создании
	Title       string           `json:"title"`
	Stage       string           `json:"stage"` // TUTORIAL, PLAYING, ENDING
	Ending      string           `json:"ending,omitempty"`
	EndingTitle string           `json:"ending_title,omitempty"`
	Epitaph     string           `json:"epitaph,omitempty"`
	Steps       int              `json:"steps"` // Записей в журнале
	State       *StateResponse   `json:"state,omitempty"`
	Metrics     *MetricsResponse `json:"metrics,omitempty"`
}

// StateResponse - состояние без позиции пули
type StateResponse struct {
	Round               int     `json:"round"`
	Phase               string  `json:"phase"`
	QueueLength         int     `json:"queue_length"`
	Toxicity            float64 `json:"toxicity"`
	Lambda              float64 `json:"lambda"`
	Mu                  float64 `json:"mu"`
	SurvivalProbability float64 `json:"survival_probability"`
	ChamberPointer      int     `json:"chamber_pointer"`
	Alive               bool    `json:"alive"`
}

type MetricsResponse struct {
	Rho                 float64  `json:"rho"`
	ExpectedQueueLength *float64 `json:"expected_queue_length"` // null при rho >= 1
	Stability           string   `json:"stability"`
}

type OutcomeResponse struct {
	Phase   string         `json:"phase"`
	Ignored bool           `json:"ignored"`
	Ending  string         `json:"ending,omitempty"`
	Facts   map[string]any `json:"facts"`
}

type AdvanceResponse struct {
	Run     RunResponse     `json:"run"`
	Outcome OutcomeResponse `json:"outcome"`
}

type EndingStatResponse struct {
	Ending    string  `json:"ending"`
	Title     string  `json:"title"`
	Count     int     `json:"count"`
	AvgRounds float64 `json:"avg_rounds"`
}

type RunRecordResponse struct {
	ID                  string  `json:"id"`
	Attempt             int     `json:"attempt"`
	Seed                int64   `json:"seed"`
	Ending              string  `json:"ending"`
	Rounds              int     `json:"rounds"`
	SurvivalProbability float64 `json:"survival_probability"`
	Toxicity            float64 `json:"toxicity"`
	FinishedAt          string  `json:"finished_at"` // RFC3339
}

type StatsResponse struct {
	TotalRuns int                  `json:"total_runs"`
	Endings   []EndingStatResponse `json:"endings"`
	Recent    []RunRecordResponse  `json:"recent"`
}
