package config

const (
	envDataDir      = "BGLIST_DATA_DIR"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envMetricsOn    = "METRICS_ENABLED"
	envMetricsFile  = "METRICS_TEXTFILE"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envProgramData  = "ProgramData"

	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultServiceName = "bglist"

	// Fallbacks mirror the common application-data folder each OS reports.
	defaultUnixDataDir    = "/usr/share"
	defaultWindowsDataDir = `C:\ProgramData`
)
