package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Reminder policy: instants are ReminderHour:00 in ReminderTZ.
	ReminderTZ   string
	ReminderHour int
	// How far past a due date PAST_DUE rows are materialized, in days.
	ScheduleHorizonDays int

	SweepIntervalSecs int
	SweepBatchSize    int

	// Whether a DUE_DATE_CHANGE proposal may move the due date backwards.
	AllowDueDateBackdating bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "hedniya"),
		MySQLUser: getenv("MYSQL_USER", "hedniya"),
		MySQLPass: getenv("MYSQL_PASS", "hedniya"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		ReminderTZ:          getenv("REMINDER_TZ", "Africa/Casablanca"),
		ReminderHour:        getenvInt("REMINDER_HOUR", 9),
		ScheduleHorizonDays: getenvInt("SCHEDULE_HORIZON_DAYS", 90),

		SweepIntervalSecs: getenvInt("SWEEP_INTERVAL_SECONDS", 60),
		SweepBatchSize:    getenvInt("SWEEP_BATCH_SIZE", 100),

		AllowDueDateBackdating: os.Getenv("ALLOW_DUE_DATE_BACKDATING") == "true",
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.ReminderHour < 0 || c.ReminderHour > 23 {
		return fmt.Errorf("invalid REMINDER_HOUR %d", c.ReminderHour)
	}
	if _, err := time.LoadLocation(c.ReminderTZ); err != nil {
		return fmt.Errorf("invalid REMINDER_TZ %q: %w", c.ReminderTZ, err)
	}
	if c.SweepIntervalSecs <= 0 {
		return errors.New("SWEEP_INTERVAL_SECONDS must be positive")
	}
	return nil
}

// ReminderLocation resolves ReminderTZ; call Validate first.
func (c *Config) ReminderLocation() *time.Location {
	loc, err := time.LoadLocation(c.ReminderTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
