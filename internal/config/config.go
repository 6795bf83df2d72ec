package config

import "os"

// App holds everything the server reads from the environment.
type App struct {
	Addr         string // SERVER_ADDR, listen address
	UsersCSV     string // USERS_CSV, user directory seed + append log
	BooksCSV     string // BOOKS_CSV, catalog seed
	SnapshotPath string // SNAPSHOT_PATH, optional ledger snapshot; empty disables it
}

func Load() App {
	return App{
		Addr:         getenv("SERVER_ADDR", ":8080"),
		UsersCSV:     getenv("USERS_CSV", "users.csv"),
		BooksCSV:     getenv("BOOKS_CSV", "books.csv"),
		SnapshotPath: os.Getenv("SNAPSHOT_PATH"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
