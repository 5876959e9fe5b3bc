// Package hello is a small greeting service that reads one user name from
// Postgres at start-up and serves it on GET /.
package hello

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// ErrNoUsers is returned when the users table is empty
var ErrNoUsers = errors.New("users table is empty")

// Config holds the greeting service settings
type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
}

// LoadConfig reads the settings from the environment
func LoadConfig() Config {
	v := viper.New()
	v.SetDefault("port", "5000")
	v.SetDefault("db_host", "postgres")
	v.SetDefault("db_port", "5432")
	v.AutomaticEnv()

	return Config{
		Port:       v.GetString("port"),
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetString("db_port"),
		DBName:     v.GetString("postgres_db"),
		DBUser:     v.GetString("postgres_user"),
		DBPassword: v.GetString("postgres_password"),
	}
}

// DSN returns a lib/pq connection URL
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// LoadName returns the first user's name
func LoadName(ctx context.Context, db *sql.DB) (string, error) {
	var name string
	err := db.QueryRowContext(ctx, "SELECT name FROM users LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoUsers
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user name: %w", err)
	}
	return name, nil
}

// NewRouter serves the greeting for name
func NewRouter(name string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "hello world, %s", name)
	})
	return router
}
