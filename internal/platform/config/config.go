// Package config builds process configuration from environment variables so
// main stays lean. Every policy tunable the verification engine consumes is
// an explicit field here; defaults match the values the system shipped with.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "github.com/rortizs/biometria-Sasvin/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	DeviceTokenKey  string
	ShutdownTimeout time.Duration
	PostgresURL     string
	ScoringURL      string
	Redis           RedisConfig
	Kafka           KafkaConfig
	Verification    Verification
}

// RedisConfig holds connection tuning for the optional Redis-backed
// employee lock. An empty URL disables Redis and the in-process lock is
// used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the optional audit-trace publisher settings. Empty
// brokers disable Kafka publishing; traces still land in the audit store.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Verification carries the policy thresholds for the decision engine.
// These are deployment-tunable; the compiled code never hardcodes them.
type Verification struct {
	// LivenessThreshold is the maximum acceptable spoof probability.
	LivenessThreshold float64
	// LivenessMinFrames is the minimum probe frames per attempt.
	LivenessMinFrames int
	// MatchThreshold is the minimum face-match confidence.
	MatchThreshold float64
	// MatchMargin is the required gap between best and second-best
	// candidate confidence; ties within the margin resolve to no match.
	MatchMargin float64
	// GeofenceRequired rejects out-of-range attempts when true. Sites can
	// override per deployment via their own policy flag.
	GeofenceRequired bool
	// MaxTravelSpeedKmh is the fastest plausible travel between two
	// location-attributed events.
	MaxTravelSpeedKmh float64
	// TravelLookback bounds how far back the impossible-travel rule
	// compares against prior events.
	TravelLookback time.Duration
	// BlockingSpeedRatio is the implied-speed multiple of
	// MaxTravelSpeedKmh at which an impossible-travel flag becomes
	// blocking rather than advisory.
	BlockingSpeedRatio float64
	// BlockConcurrentSession escalates the concurrent-session flag from
	// advisory to blocking.
	BlockConcurrentSession bool
	// DeviceHistoryMin is how many prior records an employee needs
	// before an unseen device raises a flag.
	DeviceHistoryMin int
	// ScorerTimeout bounds each external scoring call.
	ScorerTimeout time.Duration
	// LockWait bounds how long an attempt waits for the employee lock.
	LockWait time.Duration
	// LockTTL bounds how long a Redis lock survives a crashed holder.
	LockTTL time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:            envString("ATTENDANCE_ADDR", ":8080"),
		DeviceTokenKey:  envString("DEVICE_TOKEN_KEY", ""),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		PostgresURL:     envString("DATABASE_URL", ""),
		ScoringURL:      envString("SCORING_URL", "http://localhost:9100"),
		Redis: RedisConfig{
			URL:          envString("REDIS_URL", ""),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: pstrings.DedupeAndTrim(strings.Split(os.Getenv("KAFKA_BROKERS"), ",")),
			Topic:   envString("KAFKA_AUDIT_TOPIC", "attendance.audit-traces"),
		},
		Verification: DefaultVerification(),
	}
}

// DefaultVerification returns the shipped policy defaults, overridable from
// the environment.
func DefaultVerification() Verification {
	return Verification{
		LivenessThreshold:      envFloat("LIVENESS_THRESHOLD", 0.5),
		LivenessMinFrames:      envInt("LIVENESS_MIN_FRAMES", 3),
		MatchThreshold:         envFloat("FACE_MATCH_THRESHOLD", 0.6),
		MatchMargin:            envFloat("FACE_MATCH_MARGIN", 0.05),
		GeofenceRequired:       os.Getenv("GEOFENCE_REQUIRED") == "true",
		MaxTravelSpeedKmh:      envFloat("MAX_TRAVEL_SPEED_KMH", 80),
		TravelLookback:         envDuration("TRAVEL_LOOKBACK", time.Hour),
		BlockingSpeedRatio:     envFloat("BLOCKING_SPEED_RATIO", 2.0),
		BlockConcurrentSession: os.Getenv("BLOCK_CONCURRENT_SESSION") != "false",
		DeviceHistoryMin:       envInt("DEVICE_HISTORY_MIN", 3),
		ScorerTimeout:          envDuration("SCORER_TIMEOUT", 5*time.Second),
		LockWait:               envDuration("EMPLOYEE_LOCK_WAIT", 3*time.Second),
		LockTTL:                envDuration("EMPLOYEE_LOCK_TTL", 15*time.Second),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
