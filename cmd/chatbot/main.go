package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/moodlens/internal/bot"
	"github.com/pscheid92/moodlens/internal/config"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/pscheid92/moodlens/internal/export"
	"github.com/pscheid92/moodlens/internal/history"
	"github.com/pscheid92/moodlens/internal/logging"
	"github.com/pscheid92/moodlens/internal/sentiment"
	"github.com/pscheid92/moodlens/internal/stats"
	"github.com/pscheid92/moodlens/internal/version"
)

const divider = "============================================================"

func printBanner() {
	fmt.Println("\n" + divider)
	fmt.Println("  MOODLENS - CHAT WITH SENTIMENT ANALYSIS")
	fmt.Println(divider)
	fmt.Println("\nType 'help' for available commands, 'quit' to exit.")
	fmt.Println()
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  quit, exit  - End conversation and show final summary")
	fmt.Println("  summary     - Show current conversation summary")
	fmt.Println("  stats       - Show conversation statistics")
	fmt.Println("  export      - Write the conversation to a file (json, csv or text)")
	fmt.Println("  clear       - Clear conversation history and start fresh")
	fmt.Println("  help        - Show this help message")
	fmt.Println()
}

func printSummary(ctx context.Context, b *bot.Bot) {
	messages, err := b.Messages(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	summary, err := b.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Println("\n" + divider)
	fmt.Println("CONVERSATION SUMMARY")
	fmt.Println(divider)
	fmt.Println("\nConversation History:")
	fmt.Println(strings.Repeat("-", 40))
	for _, msg := range messages {
		if msg.Role == domain.RoleUser {
			fmt.Printf("User: %q\n", msg.Content)
			if msg.Score != nil {
				fmt.Printf("  -> Sentiment: %s\n", msg.Score.Label)
			}
		} else {
			fmt.Printf("Chatbot: %q\n", msg.Content)
		}
	}
	fmt.Println("\n" + strings.Repeat("-", 40))
	fmt.Println("Sentiment Statistics:")
	fmt.Printf("  Positive messages: %d\n", summary.Counts.Positive)
	fmt.Printf("  Negative messages: %d\n", summary.Counts.Negative)
	fmt.Printf("  Neutral messages: %d\n", summary.Counts.Neutral)
	fmt.Printf("  Average sentiment score: %.2f\n", summary.AverageCompound)
	fmt.Printf("\nMood Trend: %s\n", summary.MoodTrend)
	fmt.Println("\n" + divider)
	fmt.Printf("Overall: %s (%d messages)\n", summary.OverallLabel, summary.Counts.Total())
	fmt.Println(divider)
}

func printStats(ctx context.Context, b *bot.Bot) {
	messages, err := b.Messages(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	st := stats.Compute(messages)

	fmt.Println("\nConversation Statistics:")
	fmt.Printf("  Messages: %d total (%d user, %d bot)\n", st.TotalMessages, st.UserMessages, st.BotMessages)
	fmt.Printf("  Words: %d, characters: %d\n", st.TotalWords, st.TotalCharacters)
	fmt.Printf("  Average message length: %.1f characters\n", st.AverageMessageLength)
	fmt.Printf("  Messages per minute: %.1f\n", st.MessagesPerMinute)
	fmt.Printf("  Average sentiment: %.2f (variance %.2f)\n", st.AverageSentiment, st.SentimentVariance)
	if st.MostPositiveMessage != "" {
		fmt.Printf("  Most positive: %q\n", st.MostPositiveMessage)
	}
	if st.MostNegativeMessage != "" {
		fmt.Printf("  Most negative: %q\n", st.MostNegativeMessage)
	}
	fmt.Println()
}

func exportConversation(ctx context.Context, b *bot.Bot, format export.Format, dir string) {
	messages, err := b.Messages(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	summary, err := b.Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	now := time.Now()
	path := filepath.Join(dir, export.Filename("conversation", format, now))
	file, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	defer file.Close()

	conv := export.Conversation{ExportedAt: now, Messages: messages, Summary: summary}
	if err := export.Write(file, format, conv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("\nConversation exported to %s\n\n", path)
}

func isEmpty(ctx context.Context, b *bot.Bot) bool {
	messages, err := b.Messages(ctx)
	return err != nil || len(messages) == 0
}

func runInteractive(cfg *config.Config, b *bot.Bot) {
	printBanner()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			// EOF (Ctrl-D) ends the chat with a summary
			fmt.Println()
			if !isEmpty(ctx, b) {
				printSummary(ctx, b)
			}
			fmt.Println("Chat ended. Goodbye!")
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch command := strings.ToLower(input); command {
		case "quit", "exit":
			if !isEmpty(ctx, b) {
				printSummary(ctx, b)
			}
			fmt.Println("\nThank you for chatting! Goodbye.")
			return

		case "summary":
			if isEmpty(ctx, b) {
				fmt.Println("\nNo messages yet. Start chatting to see the summary.")
				fmt.Println()
			} else {
				printSummary(ctx, b)
			}
			continue

		case "stats":
			if isEmpty(ctx, b) {
				fmt.Println("\nNo messages yet.")
				fmt.Println()
			} else {
				printStats(ctx, b)
			}
			continue

		case "clear":
			if err := b.Reset(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Println("\nConversation cleared. Starting fresh!")
			fmt.Println()
			continue

		case "help":
			printHelp()
			continue
		}

		if cmd, rest, found := strings.Cut(strings.ToLower(input), " "); found && cmd == "export" {
			format, err := export.ParseFormat(strings.TrimSpace(rest))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			exportConversation(ctx, b, format, cfg.ExportDir)
			continue
		} else if strings.ToLower(input) == "export" {
			exportConversation(ctx, b, export.FormatJSON, cfg.ExportDir)
			continue
		}

		response, score, err := b.ProcessMessage(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Printf("  -> Sentiment: %s (%.2f)\n", score.Label, score.Compound)
		fmt.Printf("Bot: %s\n\n", response)
	}
}

func runDemo(b *bot.Bot) {
	fmt.Println("\n" + divider)
	fmt.Println("  MOODLENS DEMO - Sentiment Analysis Demonstration")
	fmt.Printf("%s\n\n", divider)

	demoMessages := []string{
		"Your service disappoints me",
		"Last experience was better",
		"I hope things improve",
		"Thank you for listening to my concerns",
	}

	ctx := context.Background()
	fmt.Println("Demo conversation:")
	fmt.Println()

	for _, message := range demoMessages {
		fmt.Printf("User: %q\n", message)
		response, score, err := b.ProcessMessage(ctx, message)
		if err != nil {
			log.Fatalf("demo failed: %v", err)
		}
		fmt.Printf("  -> Sentiment: %s\n", score.Label)
		fmt.Printf("Chatbot: %q\n\n", response)
	}

	printSummary(ctx, b)
}

func main() {
	demo := flag.Bool("demo", false, "run demonstration mode with a sample conversation")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		info := version.Get()
		fmt.Printf("moodlens %s (%s, built %s)\n", info.Version, info.Commit, info.BuildTime)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.InitLogger("error", cfg.LogFormat)

	clock := clockwork.NewRealClock()
	scorer := sentiment.NewDefaultScorer()
	cached := sentiment.NewCachedScorer(scorer, cfg.CacheTTL, clock)
	aggregator := sentiment.NewAggregator(cached, domain.DefaultThresholds())
	responder := bot.NewResponder(rand.New(rand.NewSource(time.Now().UnixNano())))
	store := history.NewMemoryStore()

	b := bot.New(cached, aggregator, responder, store, clock)

	if *demo {
		runDemo(b)
		return
	}
	runInteractive(cfg, b)
}
