package model

type Response struct {
	Msg string `json:"msg"`
}

type ThreatResponse struct {
	Msg  string  `json:"msg,omitempty"`
	Data *Threat `json:"data"`
}

type ThreatListResponse struct {
	Msg   string    `json:"msg,omitempty"`
	Data  []*Threat `json:"data"`
	Total int       `json:"total,omitempty"`
}

type DiscoveryResponse struct {
	Msg    string `json:"msg"`
	Stored int    `json:"stored"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Scheduler string `json:"scheduler"`
	NextRun   string `json:"next_run,omitempty"`
}

type ScheduledJob struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Queue       string `json:"queue"`
	NextRunTime string `json:"next_run_time"`
}

type SchedulerStatusResponse struct {
	Status string         `json:"status"`
	Jobs   []ScheduledJob `json:"jobs"`
}
