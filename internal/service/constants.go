package service

const (
	// Time windows
	LoadChartDays  = 90
	PowerCurveDays = 90

	// Pagination limits
	RecentActivitiesLimit = 10

	// plannedForecastSeconds is the session length the dashboard planner
	// card projects TSS and calories for
	plannedForecastSeconds = 3600

	// dateFormat is the canonical day key used throughout the store
	dateFormat = "2006-01-02"
)
