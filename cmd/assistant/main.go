package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"marketplace-client/internal/bootstrap"
	"marketplace-client/internal/config"
	"marketplace-client/internal/dto"
	"marketplace-client/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	home, _ := os.UserHomeDir()
	container := bootstrap.NewContainer(cfg, filepath.Join(home, ".marketplace", "tokens.json"))
	defer container.Logger.Sync()

	// 3. Run the interactive loop
	run(container)
}

func run(c *bootstrap.Container) {
	bot := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	price := color.New(color.FgGreen)

	bot.Println("Marketplace assistant. Ask about services, or use /login, /google, /search, /wishlist, /quit.")

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return

		case strings.HasPrefix(line, "/login "):
			fields := strings.Fields(line)
			if len(fields) != 3 {
				dim.Println("usage: /login <username> <password>")
				continue
			}
			_, err := c.AuthService.Login(ctx, &dto.LoginRequest{Username: fields[1], Password: fields[2]})
			if err != nil {
				color.Red("login failed: %v", err)
				continue
			}
			bot.Println("Logged in.")

		case line == "/logout":
			c.AuthService.Logout(ctx)
			bot.Println("Logged out.")

		case line == "/google":
			loginURL, _, err := c.GoogleSignIn.LoginURL()
			if err != nil {
				color.Red("google sign-in unavailable: %v", err)
				continue
			}
			fmt.Println("Open this URL in a browser and authorize:")
			dim.Println("  " + loginURL)
			fmt.Print("Paste the authorization code: ")
			if !scanner.Scan() {
				return
			}
			code := strings.TrimSpace(scanner.Text())
			if code == "" {
				continue
			}
			idToken, err := c.GoogleSignIn.ExchangeIDToken(ctx, code)
			if err != nil {
				color.Red("google sign-in failed: %v", err)
				continue
			}
			if _, err := c.AuthService.GoogleLogin(ctx, idToken); err != nil {
				color.Red("google login failed: %v", err)
				continue
			}
			bot.Println("Logged in with Google.")

		case strings.HasPrefix(line, "/search "):
			query := strings.TrimPrefix(line, "/search ")
			page, err := c.ProductService.Search(ctx, query, 10)
			if err != nil {
				color.Red("search failed: %v", err)
				continue
			}
			for _, p := range page.Results {
				fmt.Printf("  %s  ", p.Title)
				price.Printf("%s\n", p.Price)
			}
			dim.Printf("  %d total\n", page.Count)

		case line == "/wishlist":
			items, err := c.WishlistService.List(ctx)
			if err != nil {
				color.Red("wishlist failed: %v", err)
				continue
			}
			for _, item := range items {
				if item.Product != nil {
					fmt.Printf("  %s\n", item.Product.Title)
				}
			}

		default:
			reply := c.AssistantService.Ask(ctx, line)
			bot.Println(reply.Text)
			for _, item := range reply.Results {
				fmt.Printf("  - %s  ", item.Title)
				price.Printf("%s\n", item.Price)
			}
		}
	}
}
