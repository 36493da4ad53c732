package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "tracking_db",
}

var defaultBroadcast = Broadcast{
	SnapshotInterval: 10 * time.Second,
	Buffer:           16,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultBroadcast returns the default broadcast settings.
func DefaultBroadcast() Broadcast {
	return defaultBroadcast
}
