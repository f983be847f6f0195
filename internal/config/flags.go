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

// parseFlags parses the client command line.
//
// Flags:
//
//	-a alert listener address in format [host]:[port]
//	-d database file path
//	-c/-config json file path with configs
//	-source sync source name
//	-uri remote store uri
//	-cache-size enumerator batch size
//	-max-items address book capacity (0 = unlimited)
//	-conflict-policy conflict policy id
//	-server-id alert server id
//	-password alert server password
//	-nonce initial alert nonce
//	-schedule cron spec for periodic sync
//	-request-timeout alert handling timeout (e.g., "30s")
//	-log-file log file path
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("pimsync", flag.ContinueOnError)

	var listenAddress NetAddress
	var cfg StructuredConfig
	var requestTimeout time.Duration

	fs.Var(&listenAddress, "a", "Alert listener address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database file path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.SourceName, "source", "", "Sync source name")
	fs.StringVar(&cfg.App.StoreURI, "uri", "", "Remote store URI")
	fs.IntVar(&cfg.App.CacheSize, "cache-size", 0, "Enumerator batch size")
	fs.IntVar(&cfg.App.MaxItems, "max-items", 0, "Address book capacity")
	fs.IntVar(&cfg.App.ConflictPolicy, "conflict-policy", 0, "Conflict policy id")
	fs.StringVar(&cfg.Alert.ServerID, "server-id", "", "Alert server id")
	fs.StringVar(&cfg.Alert.Password, "password", "", "Alert server password")
	fs.StringVar(&cfg.Alert.Nonce, "nonce", "", "Initial alert nonce")
	fs.StringVar(&cfg.Workers.SyncSchedule, "schedule", "", "Cron spec for periodic sync")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Alert handling timeout (e.g., 30s)")
	fs.StringVar(&cfg.Log.FilePath, "log-file", "", "Log file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server = Server{
		HTTPAddress:    listenAddress.String(),
		RequestTimeout: requestTimeout,
	}

	return &cfg, nil
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
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
