package utils

import "strings"

// MysqlDSN builds the go-sql-driver dsn gorm's mysql dialector expects.
func MysqlDSN(username, password, addr, database, charset string) string {
	if charset == "" {
		charset = "utf8mb4"
	}
	return strings.Join([]string{username, ":", password, "@tcp(", addr, ")/",
		database, "?charset=" + charset + "&parseTime=True&loc=Local"}, "") //nolint:lll
}
