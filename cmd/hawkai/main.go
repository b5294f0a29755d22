package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"hawkai/internal/auditor"
	"hawkai/internal/chunker"
	"hawkai/internal/compliance"
	"hawkai/internal/config"
	"hawkai/internal/domain"
	"hawkai/internal/emails"
	embollama "hawkai/internal/embedding/ollama"
	"hawkai/internal/embedding/openai"
	"hawkai/internal/index"
	llmollama "hawkai/internal/llm/ollama"
	"hawkai/internal/logger"
	"hawkai/internal/retriever"
	"hawkai/internal/router"
	"hawkai/internal/service"
	"hawkai/internal/summarizer"
	"hawkai/internal/transactions"
	"hawkai/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		verbose bool
		oneShot string
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/hawkai/config.yaml if not provided)")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.StringVar(&oneShot, "ask", "", "Answer a single question and exit instead of starting the TUI")
	flag.Parse()

	logger.SetVerbose(verbose)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	emb := buildEmbedder(cfg)
	gen := llmollama.NewClient(llmollama.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})

	store := index.NewStore(cfg.Data.CacheDir)
	store.SetProgress(progressReporter())

	ctx := context.Background()

	policyRaw, err := os.ReadFile(cfg.Data.PolicyFile)
	if err != nil {
		log.Fatalf("failed to read policy file: %v", err)
	}
	sectioner := chunker.NewSectionChunker(cfg.Chunker.MaxLen)
	policyIdx, err := store.GetOrBuild(ctx, "compliance", policyRaw, sectioner.Chunk, emb.Embed)
	if err != nil {
		log.Fatalf("failed to build policy index: %v", err)
	}

	emailsRaw, err := os.ReadFile(cfg.Data.EmailsFile)
	if err != nil {
		log.Fatalf("failed to read emails file: %v", err)
	}
	emailsIdx, err := store.GetOrBuild(ctx, "emails", emailsRaw, emails.ChunkFunc(cfg.Chunker.MaxLen), emb.Embed)
	if err != nil {
		log.Fatalf("failed to build emails index: %v", err)
	}

	ledgerFile, err := os.Open(cfg.Data.TransactionsFile)
	if err != nil {
		log.Fatalf("failed to open transactions file: %v", err)
	}
	ledger, err := transactions.ParseCSV(ledgerFile)
	ledgerFile.Close()
	if err != nil {
		log.Fatalf("failed to parse transactions: %v", err)
	}
	logger.Info("loaded %d transactions", len(ledger))

	backend := buildBackend(cfg)
	complianceSub := compliance.New(policyIdx, emb, backend, cfg.Retriever.ComplianceTopK)
	emailsSub := emails.New(emailsIdx, emb, backend, cfg.Retriever.EmailsTopK)
	aud := auditor.New(complianceSub, emailsSub, ledger)

	svc := service.New(router.New(cfg.Roster), complianceSub, emailsSub, aud, ledger, gen)

	if oneShot != "" {
		ans, err := svc.Ask(ctx, oneShot, time.Now())
		if err != nil {
			log.Fatalf("ask failed: %v", err)
		}
		fmt.Println(ans.Text)
		return
	}

	sum := summarizer.NewFrequencySummarizer()
	banner, err := sum.Summarize(string(policyRaw), cfg.Summarizer.MaxSentences)
	if err != nil {
		banner = ""
	}

	m := tui.New(svc, banner)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func buildEmbedder(cfg *config.AppConfig) domain.Embedder {
	switch cfg.Embedder.Type {
	case "ollama", "":
		var oc config.OllamaEmbedderConfig
		if cfg.Embedder.Ollama != nil {
			oc = *cfg.Embedder.Ollama
		}
		return embollama.NewClient(embollama.Config{
			BaseURL: oc.BaseURL,
			Model:   oc.Model,
			Timeout: time.Duration(oc.TimeoutSecs) * time.Second,
		})
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		return client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
		return nil
	}
}

func buildBackend(cfg *config.AppConfig) retriever.Backend {
	switch cfg.Retriever.Backend {
	case "exact", "":
		return retriever.NewExact()
	case "parallel":
		return retriever.NewParallel(cfg.Retriever.Workers)
	default:
		log.Fatalf("unknown retriever backend: %s", cfg.Retriever.Backend)
		return nil
	}
}

// progressReporter shows one bar per corpus rebuild. Cache hits never reach
// it, so a silent startup means every index came from disk.
func progressReporter() index.ProgressFunc {
	bars := make(map[string]*progressbar.ProgressBar)
	return func(corpusID string, done, total int) {
		bar, ok := bars[corpusID]
		if !ok {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("indexing "+corpusID),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			bars[corpusID] = bar
		}
		_ = bar.Set(done)
	}
}
