// Package storage holds the file collaborators of the service: the CSV seed
// files, the append-only user log, and the optional ledger snapshot. All file
// I/O happens at startup, shutdown, or after an in-memory mutation has
// already succeeded — never inside a reservation critical section.
package storage

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"bookreserve/internal/models"
)

// LoadUsers reads a headerless CSV of `id,password,name` rows. Malformed
// rows are skipped with a warning. A missing file is not an error to the
// caller; the server starts with an empty directory.
func LoadUsers(path string) ([]models.User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var users []models.User
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			log.Printf("[WARN] LoadUsers: skipping malformed row %q", line)
			continue
		}
		users = append(users, models.User{
			ID:       fields[0],
			Password: fields[1],
			Name:     fields[2],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// LoadBooks reads a CSV of `id,title,author,genre,isAvailable` rows, the
// first line being a header. Rows with a non-numeric id or too few fields
// are skipped with a warning.
func LoadBooks(path string) ([]models.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var books []models.Book
	sc := bufio.NewScanner(f)
	header := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 5 {
			log.Printf("[WARN] LoadBooks: skipping malformed row %q", line)
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			log.Printf("[WARN] LoadBooks: skipping row with bad id %q", fields[0])
			continue
		}
		books = append(books, models.Book{
			ID:          id,
			Title:       fields[1],
			Author:      fields[2],
			Genre:       fields[3],
			IsAvailable: strings.EqualFold(fields[4], "true"),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UserLog appends registered users to the users CSV, one row per
// registration. It implements stores.Journal.
type UserLog struct {
	path string
}

func NewUserLog(path string) *UserLog {
	return &UserLog{path: path}
}

// Append writes one `id,password,name` row. The file handle is opened and
// closed per call so every row is flushed before Register returns.
func (l *UserLog) Append(user models.User) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s,%s,%s\n", user.ID, user.Password, user.Name); err != nil {
		return err
	}
	return f.Sync()
}
