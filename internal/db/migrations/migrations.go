package migrations

import _ "embed"

//go:embed 001_portfolio.sql
var Portfolio string
