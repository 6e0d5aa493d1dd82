// Package migrations 内嵌 goose SQL 迁移脚本，按方言分目录。
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
