package cmd

import "time"

// Config carries the runtime configuration loaded from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost     string
	KafkaMapTopic string

	OsrmBaseURL string

	// ClosenessKm bounds how far apart stops in one multi-stop run may be.
	ClosenessKm float64
	// StrategyTimeout bounds one assignment strategy invocation.
	StrategyTimeout time.Duration
	// DispatchSchedule is the cron expression (with seconds) for the dispatch cycle.
	DispatchSchedule string
	// WarehouseAddress is the origin label printed on every shipment.
	WarehouseAddress string
}
