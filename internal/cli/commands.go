// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/janderssonse/storefront/internal/adapters/mockapi"
	"github.com/janderssonse/storefront/internal/application"
	"github.com/janderssonse/storefront/internal/config"
	"github.com/janderssonse/storefront/internal/domain"
	"github.com/janderssonse/storefront/internal/tui/models"
	"github.com/urfave/cli/v3"
)

// DefaultMockAddr is where mock-api listens unless --addr is given.
const DefaultMockAddr = ":8089"

func categoryFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "category: all, men's clothing, women's clothing, jewelry, electronics",
	}
}

func sortFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "sort order: default, price-asc, price-desc, rating, name",
	}
}

// selections parses --category and --sort, defaulting to the configured values.
func (app *CLI) selections(cmd *cli.Command) (models.ProductsOptions, error) {
	rawCategory := app.cfg.DefaultCategory
	if cmd.IsSet("category") {
		rawCategory = cmd.String("category")
	}

	rawSort := app.cfg.DefaultSort
	if cmd.IsSet("sort") {
		rawSort = cmd.String("sort")
	}

	category, err := domain.ParseCategory(rawCategory)
	if err != nil {
		return models.ProductsOptions{}, domain.NewExitError(domain.ExitUsageError, err.Error(), err)
	}

	sortOption, err := domain.ParseSortOption(rawSort)
	if err != nil {
		return models.ProductsOptions{}, domain.NewExitError(domain.ExitUsageError, err.Error(), err)
	}

	return models.ProductsOptions{Category: category, Sort: sortOption}, nil
}

func (app *CLI) createTUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive storefront",
		Description: `Start the interactive storefront. Signed-out users see the login screen;
signed-in users and guests go straight to the catalog.

Navigation:
- c opens the category menu, s the sort options
- j/k or arrow keys move, Enter opens a product
- o logs out (or back to login for guests)
- ? shows all keys, q or Ctrl+C quits`,
		Flags: []cli.Flag{categoryFlag(), sortFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			selections, err := app.selections(cmd)
			if err != nil {
				return err
			}

			return app.runTUI(ctx, selections)
		},
	}
}

func (app *CLI) createProductsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "List and inspect products",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the catalog, filtered by category and sorted",
				Description: `Fetch the catalog, apply the category and then the sort, the same way the
interactive list does. A category with no products falls back to the whole
catalog unless --strict is given.

Examples:
  storefront products list --category jewelry --sort price-desc
  storefront products list --sort rating --json`,
				Flags: []cli.Flag{
					categoryFlag(),
					sortFlag(),
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "print nothing rather than the whole catalog when a category is empty",
					},
				},
				Action: app.runProductsList,
			},
			{
				Name:      "show",
				Usage:     "Show one product",
				ArgsUsage: "<id>",
				Action:    app.runProductsShow,
			},
		},
	}
}

func (app *CLI) runProductsList(ctx context.Context, cmd *cli.Command) error {
	selections, err := app.selections(cmd)
	if err != nil {
		return err
	}

	handler, err := app.catalogHandler()
	if err != nil {
		return err
	}

	return handler.List(ctx, application.ListQuery{
		Category: selections.Category,
		Sort:     selections.Sort,
		Strict:   cmd.Bool("strict"),
	})
}

func (app *CLI) runProductsShow(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return domain.NewExitError(domain.ExitUsageError, "usage: storefront products show <id>", nil)
	}

	id, err := domain.ParseProductID(cmd.Args().First())
	if err != nil {
		return domain.NewExitError(domain.ExitUsageError, err.Error(), err)
	}

	handler, err := app.catalogHandler()
	if err != nil {
		return err
	}

	return handler.Show(ctx, id)
}

func (app *CLI) createCategoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List the categories accepted by --category",
		Action: func(_ context.Context, _ *cli.Command) error {
			handler, err := app.catalogHandler()
			if err != nil {
				return err
			}

			return handler.Categories()
		},
	}
}

func (app *CLI) createLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and remember the session",
		Description: `Sign in with a store account. Missing values are asked for when a
terminal is attached.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "account name"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "account password"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			creds := domain.Credentials{Username: cmd.String("username"), Password: cmd.String("password")}

			if creds.Blank() {
				if err := app.promptLogin(&creds); err != nil {
					return err
				}
			}

			handler, done, err := app.sessionHandler(ctx)
			if err != nil {
				return err
			}
			defer done()

			return handler.Login(ctx, creds)
		},
	}
}

func (app *CLI) createRegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create a store account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "account name"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "email address"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "account password"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg := domain.Registration{
				Username: cmd.String("username"),
				Email:    cmd.String("email"),
				Password: cmd.String("password"),
			}

			if reg.Username == "" || reg.Email == "" || reg.Password == "" {
				if err := app.promptRegister(&reg); err != nil {
					return err
				}
			}

			handler, done, err := app.sessionHandler(ctx)
			if err != nil {
				return err
			}
			defer done()

			return handler.Register(ctx, reg)
		},
	}
}

func (app *CLI) createLogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the stored session",
		Action: func(ctx context.Context, _ *cli.Command) error {
			handler, done, err := app.sessionHandler(ctx)
			if err != nil {
				return err
			}
			defer done()

			return handler.Logout(ctx)
		},
	}
}

func (app *CLI) createGuestCommand() *cli.Command {
	return &cli.Command{
		Name:  "guest",
		Usage: "Browse without an account",
		Action: func(ctx context.Context, _ *cli.Command) error {
			handler, done, err := app.sessionHandler(ctx)
			if err != nil {
				return err
			}
			defer done()

			return handler.Guest(ctx)
		},
	}
}

func (app *CLI) createWhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the stored session",
		Action: func(ctx context.Context, _ *cli.Command) error {
			handler, done, err := app.sessionHandler(ctx)
			if err != nil {
				return err
			}
			defer done()

			return handler.Whoami()
		},
	}
}

func (app *CLI) createMockAPICommand() *cli.Command {
	return &cli.Command{
		Name:  "mock-api",
		Usage: "Serve a local stand-in for the store API",
		Description: `Serve the catalog and the auth endpoints from memory, for offline use and
demos. The demo account johnd is available. Stop with Ctrl+C.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address",
				Value: DefaultMockAddr,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runMockAPI(ctx, cmd.String("addr"))
		},
	}
}

func (app *CLI) runMockAPI(ctx context.Context, addr string) error {
	var opts []mockapi.Option
	if app.verbose {
		opts = append(opts, mockapi.WithRequestLogging())
	}

	server, err := mockapi.New(opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.ListenAndServe(ctx, addr, func(bound net.Addr) {
		app.out.Successf("Mock API listening on http://%s", bound)
		app.out.Progressf("Demo login: %s / %s", mockapi.DemoUsername, mockapi.DemoPassword)
	})
	if err != nil {
		return domain.NewExitError(domain.ExitNetworkError, err.Error(), err)
	}

	return nil
}

func (app *CLI) createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the effective configuration",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the configuration after env and flag overrides",
				Action: func(_ context.Context, _ *cli.Command) error {
					if app.json {
						return app.base().Output.Success("", app.cfg)
					}

					data, err := app.cfg.Encode()
					if err != nil {
						return err
					}

					_, _ = app.stdout.Write(data)

					return nil
				},
			},
			{
				Name:  "path",
				Usage: "Print the config file and session directory locations",
				Action: func(_ context.Context, _ *cli.Command) error {
					configFile := app.configFile
					if configFile == "" {
						configFile = config.DefaultConfigFile()
					}

					if app.json {
						app.out.JSONResult("success", map[string]any{
							"config_file": configFile,
							"state_dir":   app.cfg.StateDir(),
						})

						return nil
					}

					app.out.PlainKeyValue("config_file", configFile)
					app.out.PlainKeyValue("state_dir", app.cfg.StateDir())

					return nil
				},
			},
		},
	}
}

func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			if app.json {
				app.out.JSONResult("success", map[string]any{"version": Version})

				return nil
			}

			_, _ = fmt.Fprintln(app.stdout, "storefront "+Version)

			return nil
		},
	}
}
