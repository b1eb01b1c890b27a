// Package query is generated by sqlc from internal/infra/db/queries against
// the migration schema. Edit the .sql files and regenerate.
package query

//go:generate sqlc generate -f ../../../sqlc.yaml
