package constants

import (
	"os"
	"strconv"
	"time"

	"github.com/jsphweid/chordflow/util"
)

func getEnv(name string, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// GetStoreKind is "sqlite" or "dynamodb".
func GetStoreKind() string {
	return getEnv("CHORDFLOW_STORE", "sqlite")
}

func GetDBPath() string {
	return getEnv("CHORDFLOW_DB", "./chordflow.db")
}

func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMODB_ENDPOINT")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMODB_REGION", "us-east-1")
}

func GetDynamoTable() string {
	return getEnv("DYNAMODB_TABLE", "chordflow-songs")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("CHORDFLOW_PORT"))
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}

// GetAllowedOrigins returns nil when every origin is allowed.
func GetAllowedOrigins() []string {
	origins := util.SplitList(os.Getenv("CHORDFLOW_ALLOWED_ORIGINS"))
	if len(origins) == 1 && origins[0] == "*" {
		return nil
	}
	return origins
}

// GetSuggestURL is empty when no arrangement suggester is configured.
func GetSuggestURL() string {
	return os.Getenv("SUGGEST_URL")
}

func GetSuggestTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("SUGGEST_TIMEOUT"))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

func GetLogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

func GetLogFormat() string {
	return getEnv("LOG_FORMAT", "json")
}

const MaxRequestBytes = 1 << 20

const (
	RenderCacheTTL  = 10 * time.Minute
	RenderCacheSize = 512
)

const DefaultTempo = 120

const LiveDebounce = 150 * time.Millisecond

// MidiOctave is where chord roots are voiced on export (C4 = 60).
const MidiOctave = 4
