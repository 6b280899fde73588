package cmd

import "time"

// Config carries everything the process reads from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	TxTimeout  time.Duration
}
