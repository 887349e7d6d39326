package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-driver storage driver (memory, sqlite, postgres, redis)
//	-d database DSN
//	-redis-address redis address in format host:port
//	-redis-password redis password
//	-redis-db redis database index
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-session-timeout session restore timeout (e.g., "5s")
//	-server API base URL used by the client
//	-log-level log level
//	-log-file client log file
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var driver, databaseDSN string
	var redisAddress, redisPassword string
	var redisDB int
	var jsonConfigPath string
	var requestTimeout, sessionTimeout time.Duration
	var apiURL string
	var logLevel, logFile string

	fs := flag.NewFlagSet("energy-keeper", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&driver, "driver", "", "Storage driver: memory, sqlite, postgres, redis")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&redisAddress, "redis-address", "", "Redis address host:port")
	fs.StringVar(&redisPassword, "redis-password", "", "Redis password")
	fs.IntVar(&redisDB, "redis-db", 0, "Redis database index")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&sessionTimeout, "session-timeout", 0, "Session restore timeout (e.g., 5s)")
	fs.StringVar(&apiURL, "server", "", "API base URL used by the client")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			SessionRestoreTimeout: sessionTimeout,
		},
		Storage: Storage{
			Driver: driver,
			DB: DB{
				DSN: databaseDSN,
			},
			Redis: Redis{
				Address:  redisAddress,
				Password: redisPassword,
				DB:       redisDB,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    apiURL,
			RequestTimeout: requestTimeout,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		JSONFilePath: jsonConfigPath,
		args:         fs.Args(),
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
