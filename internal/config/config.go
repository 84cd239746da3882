package config // package config loads application configuration from environment variables

import (
    "time"

    "github.com/sirupsen/logrus"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs, time.Durations for the simulator timeline.
type Config struct {
    Env            string        // application environment (e.g. "dev", "prod")
    Port           string        // HTTP port to listen on
    DBUser         string        // database username
    DBPass         string        // database password (optional)
    DBHost         string        // database host address
    DBPort         string        // database port number
    DBName         string        // database name
    JWTSecret      string        // secret used to sign JWTs
    AccessTTLMin   int           // access token time‑to‑live in minutes
    RefreshTTLDays int           // refresh token time‑to‑live in days
    BcryptCost     int           // bcrypt cost for password hashing
    RabbitURL      string        // AMQP broker URL (optional, defaults to localhost)
    SelectionTTL   time.Duration // how long an idle seat selection survives in Redis
    PaymentTick    time.Duration // payment simulator status-text cycle interval
    PaymentTotal   time.Duration // payment simulator total processing time
    OffersLimit    int           // how many available offers the checkout lists
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),                   // environment (dev/test/prod)
        Port:           must("APP_PORT"),                  // port to bind the HTTP server
        DBUser:         must("DB_USER"),                   // database user
        DBPass:         getenv("DB_PASS", ""),             // database password (empty allowed)
        DBHost:         must("DB_HOST"),                   // database host
        DBPort:         must("DB_PORT"),                   // database port
        DBName:         must("DB_NAME"),                   // database name
        JWTSecret:      must("JWT_SECRET"),                // secret used for signing JWTs
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
        BcryptCost:     mustInt("BCRYPT_COST"),            // bcrypt cost factor
        RabbitURL:      getenv("RABBITMQ_URL", ""),        // empty -> local default broker
        SelectionTTL:   parseDur(getenv("SELECTION_TTL", "30m")),
        PaymentTick:    parseDur(getenv("PAYMENT_STATUS_TICK", "600ms")),
        PaymentTotal:   parseDur(getenv("PAYMENT_DURATION", "3.5s")),
        OffersLimit:    atoi(getenv("CHECKOUT_OFFERS_LIMIT", "5")),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v := getenv(key, "")
    if v == "" {
        logrus.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n := atoi(s)
    if n == 0 && s != "0" {
        logrus.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
