package scheduletest

import "time"

// Config holds configuration for the schedule round-trip test.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumBlocks  int           // Number of course blocks to generate
	PoolSize   int           // Number of distinct invigilator codes to draw from
	Workers    int           // Number of concurrent lookup workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for the generated schedule
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// searchRequest mirrors the /search request body.
type searchRequest struct {
	ScheduleText    string `json:"schedule_text"`
	InvigilatorCode string `json:"invigilator_code"`
}

// searchResponse mirrors the /search response body.
type searchResponse struct {
	Success     bool   `json:"success"`
	Invigilator string `json:"invigilator"`
	TotalDuties int    `json:"total_duties"`
}

// debugRequest mirrors the /debug request body.
type debugRequest struct {
	ScheduleText string `json:"schedule_text"`
}

// debugResponse mirrors the /debug response body.
type debugResponse struct {
	TotalDuties      int      `json:"total_duties"`
	AllInvigilators  []string `json:"all_invigilators"`
	InvigilatorCount int      `json:"invigilator_count"`
}

// Stats holds test statistics.
type Stats struct {
	BlocksGenerated int
	DutiesExpected  int
	DutiesParsed    int
	LookupsIssued   int
	LookupsMatched  int
	LookupsMismatch int
	LookupsFailed   int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
