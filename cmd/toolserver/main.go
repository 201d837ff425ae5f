// Command toolserver exposes the built-in tools over MCP stdio. The
// chat client spawns it as a subprocess; it can also be run with
// -authorize to link a Google Calendar before serving.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"smartchat/config"
	"smartchat/tools"
)

const serverVersion = "0.1.0"

func main() {
	authorize := flag.Bool("authorize", false, "Run the Google Calendar authorization flow and exit")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	calendarTool := tools.NewCalendarTool(
		cfg.GoogleClientID,
		cfg.GoogleSecret,
		cfg.GoogleRedirectURL,
		cfg.GoogleTokenFile,
	)

	if *authorize {
		if err := runAuthorize(ctx, calendarTool); err != nil {
			log.Fatal(err)
		}
		return
	}

	if authURL, err := calendarTool.Init(ctx); err != nil {
		log.Printf("[toolserver] calendar warning: %v", err)
	} else if authURL != "" {
		log.Printf("[toolserver] calendar not linked; run `toolserver -authorize`")
	}

	registry := tools.NewRegistry()
	registry.Register(&tools.TimeTool{})
	registry.Register(&tools.SumTool{})
	registry.Register(&tools.DateTool{})
	registry.Register(&tools.MultiplyTool{})
	registry.Register(tools.NewNotesTool(cfg.NotesFile))
	registry.Register(tools.NewSearchTool(cfg.SearchMaxResults))
	registry.Register(tools.NewScrapeTool(cfg.OllamaURL, cfg.OllamaModel))
	registry.Register(calendarTool)

	server := mcp.NewServer(&mcp.Implementation{Name: "smartchat-tools", Version: serverVersion}, nil)
	for _, t := range registry.All() {
		addTool(server, t)
	}

	log.Printf("[toolserver] serving %d tools over stdio", len(registry.All()))
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}

// addTool bridges one registry tool to MCP: the declared parameter
// schema becomes the input schema, and execution errors come back as
// IsError results so the model sees the failure text.
func addTool(server *mcp.Server, t tools.Tool) {
	tool := &mcp.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: t.Parameters(),
	}
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		output, err := t.Execute(ctx, args)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: output}},
		}, nil, nil
	})
}

// runAuthorize walks the out-of-band OAuth exchange on the terminal
// and saves the token for serving runs.
func runAuthorize(ctx context.Context, cal *tools.CalendarTool) error {
	authURL, err := cal.Init(ctx)
	if err != nil {
		return err
	}
	if authURL == "" {
		fmt.Println("Google Calendar is already connected.")
		return nil
	}

	fmt.Println("To connect Google Calendar:")
	fmt.Println("1. Open this link:")
	fmt.Println("   " + authURL)
	fmt.Println("2. Sign in and authorize access")
	fmt.Print("3. Paste the code you receive: ")

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading code: %w", err)
	}
	if err := cal.CompleteAuth(ctx, strings.TrimSpace(code)); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Println("Google Calendar connected.")
	return nil
}
