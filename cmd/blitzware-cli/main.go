package main

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/LanderDK/blitzware-client/internal/api"
	"github.com/LanderDK/blitzware-client/internal/cache"
	"github.com/LanderDK/blitzware-client/internal/config"
	"github.com/LanderDK/blitzware-client/internal/logger"
	"github.com/LanderDK/blitzware-client/internal/models"
	"github.com/LanderDK/blitzware-client/internal/session"
)

var (
	version   string
	buildDate string
)

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// repl runs the interactive shell loop, dispatching commands against
// the session layer.
func repl(sync *session.Sync, client *api.Client) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("blitzware> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <user> <pass>, account, refresh, apps, select <id>, app, refresh-app, deselect, licenses, users, logs, logout, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <user> <pass>")
				continue
			}
			acct, err := sync.Login(ctx, args[1], args[2])
			if err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Printf("Logged in as %s (%s)\n", acct.Username, acct.PrimaryRole())
		case "account":
			acct, err := sync.CurrentAccount(ctx)
			if err != nil {
				fmt.Println("no session:", err)
				continue
			}
			printJSON(api.NewAccountData(acct))
		case "refresh":
			acct, err := sync.RefreshAccount(ctx)
			if err != nil {
				fmt.Println("refresh failed:", err)
				continue
			}
			printJSON(api.NewAccountData(acct))
		case "apps":
			acct, err := sync.CurrentAccount(ctx)
			if err != nil {
				fmt.Println("no session:", err)
				continue
			}
			apps, err := client.Applications(ctx, acct.Token, acct.ID)
			if err != nil {
				fmt.Println("list failed:", err)
				continue
			}
			for _, a := range apps {
				fmt.Printf("%s  %s (v%s)\n", a.ID, a.Name, a.Version)
			}
		case "select":
			if len(args) < 2 {
				fmt.Println("Usage: select <id>")
				continue
			}
			acct, err := sync.CurrentAccount(ctx)
			if err != nil {
				fmt.Println("no session:", err)
				continue
			}
			app, err := client.ApplicationByID(ctx, acct.Token, args[1])
			if err != nil {
				fmt.Println("fetch failed:", err)
				continue
			}
			if err := sync.SelectApplication(ctx, app); err != nil {
				fmt.Println("select failed:", err)
				continue
			}
			fmt.Printf("Selected %s\n", app.Name)
		case "app":
			app, err := sync.CurrentApplication(ctx)
			if err != nil {
				fmt.Println("no selection:", err)
				continue
			}
			printJSON(api.NewApplicationData(app))
		case "refresh-app":
			app, err := sync.RefreshApplication(ctx)
			if err != nil {
				fmt.Println("refresh failed:", err)
				continue
			}
			printJSON(api.NewApplicationData(app))
		case "deselect":
			if err := sync.ClearSelection(ctx); err != nil {
				fmt.Println("deselect failed:", err)
				continue
			}
			fmt.Println("Selection cleared")
		case "licenses":
			acct, app, err := selection(ctx, sync)
			if err != nil {
				fmt.Println(err)
				continue
			}
			out, err := client.Licenses(ctx, acct.Token, app.ID)
			if err != nil {
				fmt.Println("list failed:", err)
				continue
			}
			printJSON(out)
		case "users":
			acct, app, err := selection(ctx, sync)
			if err != nil {
				fmt.Println(err)
				continue
			}
			out, err := client.AppUsers(ctx, acct.Token, app.ID)
			if err != nil {
				fmt.Println("list failed:", err)
				continue
			}
			printJSON(out)
		case "logs":
			acct, err := sync.CurrentAccount(ctx)
			if err != nil {
				fmt.Println("no session:", err)
				continue
			}
			out, err := client.Logs(ctx, acct.Token, acct.ID)
			if err != nil {
				fmt.Println("list failed:", err)
				continue
			}
			printJSON(out)
		case "logout":
			if err := sync.Logout(ctx); err != nil {
				fmt.Println("logout failed:", err)
				continue
			}
			fmt.Println("Logged out")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// selection hydrates the account and the selected application, the
// precondition for every application-scoped command.
func selection(ctx context.Context, sync *session.Sync) (models.Account, models.Application, error) {
	acct, err := sync.CurrentAccount(ctx)
	if err != nil {
		return models.Account{}, models.Application{}, fmt.Errorf("no session: %w", err)
	}
	app, err := sync.CurrentApplication(ctx)
	if err != nil {
		return models.Account{}, models.Application{}, fmt.Errorf("no selection: %w", err)
	}
	return acct, app, nil
}

func main() {
	options := config.Parse()

	fmt.Printf("BlitzWare CLI\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	db, err := cache.Open(options.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open cache: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	client := api.New(options.ServerURL, nil)
	sync := session.NewSync(
		cache.NewAccountCache(db),
		cache.NewApplicationCache(db),
		client,
		client,
		log.Log,
	)

	repl(sync, client)
}
