package migrations

import "embed"

//go:embed jobportal/*.sql
var JobPortal embed.FS

//go:embed marketplace/*.sql
var Marketplace embed.FS
