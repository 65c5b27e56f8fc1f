// Command sqlscore scores SQL scripts for migration complexity.
package main

import (
	"github.com/eri-adepoju/sqlscore/internal/cli"

	// Register the built-in dialect profiles.
	_ "github.com/eri-adepoju/sqlscore/pkg/dialects/ansi"
	_ "github.com/eri-adepoju/sqlscore/pkg/dialects/oracle"
	_ "github.com/eri-adepoju/sqlscore/pkg/dialects/snowflake"
	_ "github.com/eri-adepoju/sqlscore/pkg/dialects/tsql"
)

func main() {
	cli.Execute()
}
