package scorecardmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the saved_games schema migrations.
var Migrations = migrate.NewMigrations()

func init() {
	// Pick up .sql migration files in this package's directory.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
