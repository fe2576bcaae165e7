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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN of the metadata store
//	-export-root destination directory for per-album exports
//	-library-root mounted upstream library root
//	-user optional owner filter (user ID or e-mail)
//	-min-found-abs deletion guard absolute threshold
//	-min-found-fraction deletion guard relative threshold
//	-progress-interval minimum delay between progress writes (e.g., "1m")
//	-sync-interval delay between scheduled runs; 0 disables the schedule
//	-webhook-url progress webhook endpoint
//	-webhook-token progress webhook bearer token
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var exportRoot string
	var libraryRoot string
	var userFilter string
	var minFoundAbs int
	var minFoundFraction float64
	var progressInterval time.Duration
	var syncInterval time.Duration
	var webhookURL string
	var webhookToken string
	var requestTimeout time.Duration
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&exportRoot, "export-root", "", "Export root directory")
	flag.StringVar(&libraryRoot, "library-root", "", "Mounted library root")
	flag.StringVar(&userFilter, "user", "", "Owner filter (user ID or e-mail)")
	flag.IntVar(&minFoundAbs, "min-found-abs", 0, "Deletion guard absolute threshold")
	flag.Float64Var(&minFoundFraction, "min-found-fraction", 0, "Deletion guard relative threshold")
	flag.DurationVar(&progressInterval, "progress-interval", 0, "Progress write interval (e.g., 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Scheduled run interval; 0 disables")
	flag.StringVar(&webhookURL, "webhook-url", "", "Progress webhook URL")
	flag.StringVar(&webhookToken, "webhook-token", "", "Progress webhook bearer token")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Sync: Sync{
			ExportRoot:       exportRoot,
			LibraryRoot:      libraryRoot,
			UserFilter:       userFilter,
			MinFoundAbs:      minFoundAbs,
			MinFoundFraction: minFoundFraction,
			ProgressInterval: progressInterval,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			WebhookURL:   webhookURL,
			WebhookToken: webhookToken,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
