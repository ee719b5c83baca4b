package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pscheid92/moodlens/internal/analysis"
	"github.com/pscheid92/moodlens/internal/domain"
	"github.com/pscheid92/moodlens/internal/export"
	"github.com/pscheid92/moodlens/internal/sentiment"
)

// result is the JSON document emitted by -json mode.
type result struct {
	Summary       domain.Summary          `json:"summary"`
	Insights      analysis.Insights       `json:"insights"`
	TurningPoints []analysis.TurningPoint `json:"turning_points"`
	Trend         *analysis.Trend         `json:"trend,omitempty"`
}

func readMessages(r io.Reader) ([]string, error) {
	var messages []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		messages = append(messages, line)
	}
	return messages, scanner.Err()
}

func printHuman(res result) {
	fmt.Printf("Messages analyzed: %d\n\n", len(res.Summary.PerMessage))

	for i, msg := range res.Summary.PerMessage {
		fmt.Printf("%3d. [%s %+.3f] %s\n", i+1, msg.Score.Label, msg.Score.Compound, msg.Text)
	}

	fmt.Println()
	fmt.Printf("Overall: %s (average %.3f)\n", res.Summary.OverallLabel, res.Summary.AverageCompound)
	fmt.Printf("Counts: %d positive, %d negative, %d neutral\n",
		res.Summary.Counts.Positive, res.Summary.Counts.Negative, res.Summary.Counts.Neutral)
	fmt.Printf("Mood trend: %s\n", res.Summary.MoodTrend)

	if res.Trend != nil {
		fmt.Printf("Direction: %s (change %+.3f, volatility %.3f)\n",
			res.Trend.Direction, res.Trend.Change, res.Trend.Volatility)
	}

	fmt.Printf("Engagement score: %.1f\n", res.Insights.EngagementScore)

	if len(res.TurningPoints) > 0 {
		fmt.Println("\nTurning points:")
		for _, tp := range res.TurningPoints {
			fmt.Printf("  message %d: %+.3f (delta %+.3f)  %q\n", tp.Index+1, tp.Compound, tp.Delta, tp.Excerpt)
		}
	}
}

func writeExport(path string, summary domain.Summary) error {
	name := strings.TrimPrefix(strings.ToLower(pathExt(path)), ".")
	if name == "txt" {
		name = string(export.FormatText)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	now := time.Now()
	messages := make([]domain.Message, len(summary.PerMessage))
	for i, m := range summary.PerMessage {
		score := m.Score
		messages[i] = domain.Message{Role: domain.RoleUser, Content: m.Text, Timestamp: now, Score: &score}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	conv := export.Conversation{ExportedAt: now, Messages: messages, Summary: summary}
	return export.Write(file, format, conv)
}

func pathExt(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

func main() {
	jsonOut := flag.Bool("json", false, "emit the full analysis as JSON")
	outPath := flag.String("o", "", "also write the conversation to a file; format from extension (.json, .csv, .txt)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-json] [file]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Analyzes one message per line from file (or stdin) and prints a")
		fmt.Fprintln(os.Stderr, "conversation-level sentiment report.")
		flag.PrintDefaults()
	}
	flag.Parse()

	input := os.Stdin
	if flag.NArg() > 0 {
		file, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("Failed to open input: %v", err)
		}
		defer file.Close()
		input = file
	}

	messages, err := readMessages(input)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	scorer := sentiment.NewDefaultScorer()
	aggregator := sentiment.NewAggregator(scorer, domain.DefaultThresholds())
	analyzer := analysis.NewAnalyzer(scorer)

	summary := aggregator.AnalyzeConversation(messages)
	res := result{
		Summary:       summary,
		Insights:      analyzer.Insights(messages),
		TurningPoints: analyzer.TurningPoints(messages, analysis.DefaultTurningPointThreshold),
	}

	compounds := make([]float64, len(summary.PerMessage))
	for i, m := range summary.PerMessage {
		compounds[i] = m.Score.Compound
	}
	trendAnalyzer := analysis.NewTrendAnalyzer(0.1)
	if trend, ok := trendAnalyzer.Analyze(compounds); ok {
		res.Trend = &trend
	}

	if *outPath != "" {
		if err := writeExport(*outPath, summary); err != nil {
			log.Fatalf("Failed to write export: %v", err)
		}
	}

	if *jsonOut {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(res); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		return
	}
	printHuman(res)
}
