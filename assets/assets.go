// Package assets embeds the SQL migrations and the default status seed file.
package assets

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed seed/task_statuses.yaml
var DefaultStatuses []byte
