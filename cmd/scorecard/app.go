package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	authdomain "github.com/Black-And-White-Club/three-under/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/three-under/app/modules/auth/infrastructure/jwt"
	coursecatalog "github.com/Black-And-White-Club/three-under/app/modules/course/infrastructure/catalog"
	scorecardservice "github.com/Black-And-White-Club/three-under/app/modules/scorecard/application"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/three-under/internal/observability"
	scorecardmetrics "github.com/Black-And-White-Club/three-under/internal/observability/metrics/scorecard"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

// env is what every command needs, opened lazily so `help` works without a database.
type env struct {
	catalog *coursecatalog.Catalog
	service *scorecardservice.ScorecardService
	db      *bun.DB
}

func openEnv(c *cli.Context) (*env, error) {
	var (
		catalog *coursecatalog.Catalog
		err     error
	)
	if path := c.String("catalog"); path != "" {
		catalog, err = coursecatalog.LoadFile(path)
	} else {
		catalog, err = coursecatalog.Default()
	}
	if err != nil {
		return nil, err
	}

	db, err := scorecarddb.OpenSQLite(c.Context, c.String("db"))
	if err != nil {
		return nil, err
	}
	if err := scorecarddb.Migrate(c.Context, db); err != nil {
		db.Close()
		return nil, err
	}

	obs := observability.NewNoop()
	if c.Bool("verbose") {
		obs.Provider.Logger = observability.NewLogger(observability.Config{
			Environment: "development",
			LogLevel:    "debug",
			Output:      c.App.ErrWriter,
		})
	}

	repo := scorecarddb.NewRoundRepository(scorecarddb.NewBunStore(db))
	service := scorecardservice.NewScorecardService(repo, catalog, nil, obs.Provider.Logger, scorecardmetrics.NewNoop(), obs.Registry.Tracer)
	return &env{catalog: catalog, service: service, db: db}, nil
}

// withEnv opens the environment for one command and closes it afterwards.
func withEnv(fn func(c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := openEnv(c)
		if err != nil {
			return err
		}
		defer e.db.Close()
		return fn(c, e)
	}
}

// indexArg parses a 1-based command line index into a 0-based one.
func indexArg(c *cli.Context, pos int, name string) (int, error) {
	raw := c.Args().Get(pos)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a number starting at 1, got %q", name, raw)
	}
	return n - 1, nil
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		return fmt.Errorf("%s needs %d argument(s): %s", c.Command.Name, n, c.Command.ArgsUsage)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "scorecard",
		Usage: "keep golf scorecards in a local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Value:   "three-under.db",
				Usage:   "SQLite database file",
				EnvVars: []string{"SQLITE_PATH"},
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "course catalog YAML file (defaults to the built-in courses)",
				EnvVars: []string{"COURSE_CATALOG_PATH"},
			},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of tables"},
			&cli.BoolFlag{Name: "verbose", Usage: "log service activity to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:   "courses",
				Usage:  "list the course catalog",
				Action: withEnv(coursesAction),
			},
			{
				Name:      "slots",
				Usage:     "show both save slots of a course",
				ArgsUsage: "<course>",
				Action:    withEnv(slotsAction),
			},
			{
				Name:      "new",
				Usage:     "start a round in the first free slot",
				ArgsUsage: "--player NAME... <course>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "player", Aliases: []string{"p"}, Usage: "player name (up to 4)"},
				},
				Action: withEnv(newAction),
			},
			{
				Name:      "show",
				Usage:     "print a saved round",
				ArgsUsage: "<slotKey>",
				Action:    withEnv(showAction),
			},
			{
				Name:      "score",
				Usage:     "enter strokes for a player on a hole (player and hole start at 1)",
				ArgsUsage: "<slotKey> <player> <hole> <value>",
				Action:    withEnv(scoreAction),
			},
			{
				Name:      "rename",
				Usage:     "rename a player (player starts at 1)",
				ArgsUsage: "<slotKey> <player> <name>",
				Action:    withEnv(renameAction),
			},
			{
				Name:      "delete",
				Usage:     "clear a save slot",
				ArgsUsage: "--yes <slotKey>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm the deletion"},
				},
				Action: withEnv(deleteAction),
			},
			{
				Name:  "token",
				Usage: "issue a bearer token for the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "secret", EnvVars: []string{"JWT_SECRET"}, Required: true},
					&cli.StringFlag{Name: "issuer", Value: "three-under", EnvVars: []string{"JWT_ISSUER"}},
					&cli.StringFlag{Name: "subject", Value: "scorecard-cli"},
					&cli.StringFlag{Name: "role", Value: string(authdomain.RoleScorer)},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
				},
				Action: tokenAction,
			},
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}
}

func coursesAction(c *cli.Context, e *env) error {
	courses := e.catalog.List()
	if c.Bool("json") {
		return writeJSON(c, courses)
	}
	return renderCourses(c.App.Writer, courses)
}

func slotsAction(c *cli.Context, e *env) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	slots, err := e.service.ListSlots(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(c, slots)
	}
	return renderSlots(c.App.Writer, slots)
}

func newAction(c *cli.Context, e *env) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	card, err := e.service.StartNewRound(c.Context, c.Args().First(), c.StringSlice("player"))
	if err != nil {
		return err
	}
	return printCard(c, card)
}

func showAction(c *cli.Context, e *env) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	card, err := e.service.ContinueRound(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return printCard(c, card)
}

func scoreAction(c *cli.Context, e *env) error {
	if err := requireArgs(c, 4); err != nil {
		return err
	}
	player, err := indexArg(c, 1, "player")
	if err != nil {
		return err
	}
	hole, err := indexArg(c, 2, "hole")
	if err != nil {
		return err
	}
	card, err := e.service.SetScore(c.Context, c.Args().First(), player, hole, c.Args().Get(3))
	if err != nil {
		return err
	}
	return printCard(c, card)
}

func renameAction(c *cli.Context, e *env) error {
	if err := requireArgs(c, 3); err != nil {
		return err
	}
	player, err := indexArg(c, 1, "player")
	if err != nil {
		return err
	}
	card, err := e.service.RenamePlayer(c.Context, c.Args().First(), player, c.Args().Get(2))
	if err != nil {
		return err
	}
	return printCard(c, card)
}

func deleteAction(c *cli.Context, e *env) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	key := c.Args().First()
	err := e.service.DeleteRound(c.Context, key, c.Bool("yes"))
	if errors.Is(err, scorecarddomain.ErrConfirmationRequired) {
		return fmt.Errorf("%w: pass --yes to clear %s", err, key)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Deleted %s\n", key)
	return nil
}

func tokenAction(c *cli.Context) error {
	provider := authjwt.NewProvider(c.String("secret"), c.String("issuer"))
	token, err := provider.GenerateToken(c.String("subject"), authdomain.Role(c.String("role")), c.Duration("ttl"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
