package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/logging"
	"go.uber.org/zap"
)

var (
	// Rule flags
	knownSenders = flag.String("known", "", "Comma-separated list of trusted addresses or domains (overrides config)")

	// Input flags
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.NewFromFile(*configFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = config.NewFromViper(config.NewEmptyViper())
	}

	rules := cfg.GetRules()
	if *knownSenders != "" {
		rules.KnownSenders = splitList(*knownSenders)
		logger.Info("Using known senders from flags", zap.Strings("entries", rules.KnownSenders))
	}

	classifier := core.NewClassifier(core.Rules{
		KnownSenders:      rules.KnownSenders,
		ImportantKeywords: rules.ImportantKeywords,
		SpamTLDs:          rules.SpamTLDs,
		ShortenerDomains:  rules.ShortenerDomains,
		PhishingPhrases:   rules.PhishingPhrases,
	})

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}

	message := &core.Message{
		From:        msg.Header.Get("From"),
		ReplyTo:     msg.Header.Get("Reply-To"),
		Subject:     msg.Header.Get("Subject"),
		Body:        string(bodyBytes),
		AuthResults: msg.Header.Get("Authentication-Results"),
		Headers:     make(map[string][]string),
	}
	for k, v := range msg.Header {
		message.Headers[k] = v
	}

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", message.From)
	fmt.Printf("Reply-To: %s\n", message.ReplyTo)
	fmt.Printf("Subject: %s\n", message.Subject)
	fmt.Printf("Body length: %d bytes\n", len(message.Body))
	fmt.Printf("\n")

	// Print extracted signals
	signals := core.ExtractSignals(message)
	fmt.Printf("=== Signals ===\n")
	fmt.Printf("Sender domain: %s\n", signals.SenderDomain)
	fmt.Printf("Reply-to domain: %s\n", signals.ReplyToDomain)
	fmt.Printf("URLs: %d\n", len(signals.URLs))
	if *verbose {
		for _, u := range signals.URLs {
			fmt.Printf("  %s\n", u)
		}
	}
	fmt.Printf("SPF pass: %t\n", signals.SPFPass)
	fmt.Printf("DKIM pass: %t\n", signals.DKIMPass)

	// Classify
	verdict := classifier.Classify(message)

	fmt.Printf("\n=== Verdict ===\n")
	fmt.Printf("Important: %t\n", verdict.Important)
	fmt.Printf("Suspicious: %t\n", verdict.Suspicious)
	fmt.Printf("Spam: %t\n", verdict.Spam)
}

// splitList splits a comma-separated flag value into trimmed entries
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
