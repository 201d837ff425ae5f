package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"smartchat/agent"
	"smartchat/config"
	"smartchat/provider"
)

func main() {
	cfg := config.Load()

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	// Spawn the tool server and fetch its catalog once per session.
	parts := strings.Fields(cfg.ToolServerCmd)
	if len(parts) == 0 {
		log.Fatal("TOOL_SERVER_CMD must name the tool server command")
	}
	toolProvider, err := provider.Connect(ctx, parts[0], parts[1:]...)
	if err != nil {
		log.Fatalf("Tool provider: %v", err)
	}
	defer toolProvider.Close()

	registry, err := provider.LoadRegistry(ctx, toolProvider)
	if err != nil {
		log.Fatalf("Tool registry: %v", err)
	}
	log.Printf("Loaded %d tools from the tool server", registry.Len())

	gateway := agent.NewOllamaGateway(cfg.OllamaURL, cfg.OllamaModel)
	chatAgent := agent.New(gateway, registry, toolProvider, agent.Options{
		MaxIterations: cfg.MaxIterations,
		ContextTurns:  cfg.ContextTurns,
		TurnTruncate:  cfg.TurnTruncate,
	})

	if cfg.TelegramToken != "" {
		runTelegram(ctx, cfg, chatAgent)
		return
	}
	runREPL(ctx, cfg, chatAgent)
}

// runREPL is the interactive terminal front end: one request at a
// time, 'exit' quits.
func runREPL(ctx context.Context, cfg *config.Config, chatAgent *agent.Agent) {
	fmt.Printf("Chat client ready (model %s). Type 'exit' to quit.\n", cfg.OllamaModel)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Println("Please type something.")
			continue
		}
		if strings.EqualFold(input, "exit") {
			fmt.Println("Goodbye!")
			return
		}

		response, err := chatAgent.Chat(ctx, input)
		if err != nil {
			// Gateway failures end the request, not the session.
			log.Printf("Agent error: %v", err)
			fmt.Println("Sorry, I couldn't process that. Make sure Ollama is running.")
			continue
		}

		fmt.Println("\nAssistant:")
		fmt.Println(response)
	}
}

// runTelegram is the Telegram front end, enabled when a bot token is
// configured.
func runTelegram(ctx context.Context, cfg *config.Config, chatAgent *agent.Agent) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Println("Bot stopped")
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			go handleMessage(ctx, bot, chatAgent, cfg, update.Message)
		}
	}
}

func handleMessage(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	chatAgent *agent.Agent,
	cfg *config.Config,
	message *tgbotapi.Message,
) {
	log.Printf("[%s] %s", message.From.UserName, message.Text)

	var reply string

	switch message.Command() {
	case "start":
		reply = "Hello! I'm an AI assistant powered by " + cfg.OllamaModel + ".\n\n" +
			"I can tell you the time and date, do arithmetic, read your notes, " +
			"search the web, check your calendar, and summarize web pages. Just ask."

	case "help":
		reply = "Available commands:\n" +
			"/start - Start the bot\n" +
			"/help - Show this help message\n\n" +
			"Or just ask me things like:\n" +
			"• \"What time is it?\"\n" +
			"• \"What is 2 + 3?\"\n" +
			"• \"Search for the weather in Kyiv\"\n" +
			"• \"Summarize https://example.com\""

	case "":
		// Not a command, send to the agent.
		response, err := chatAgent.Chat(ctx, message.Text)
		if err != nil {
			log.Printf("Agent error: %v", err)
			reply = "Sorry, I couldn't process that. Make sure Ollama is running."
		} else {
			reply = response
		}

	default:
		reply = "Unknown command. Try /help"
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, reply)
	msg.ReplyToMessageID = message.MessageID

	if _, err := bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
