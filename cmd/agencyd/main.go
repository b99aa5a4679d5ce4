// Command agencyd runs the agency backbone: the campaign lifecycle service
// and the reputation engine, with durable state and a periodic sweep that
// delivers scheduled bonus events.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	campaignservice "adworks/internal/campaign/service"
	"adworks/internal/genai"
	"adworks/internal/platform/config"
	"adworks/internal/platform/id"
	reputationdomain "adworks/internal/reputation/domain"
	reputationservice "adworks/internal/reputation/service"
	ledgersqlite "adworks/internal/reputation/storage/sqlite"
	storebbolt "adworks/internal/storage/bbolt"
)

type appConfig struct {
	StatePath  string `env:"ADWORKS_STATE_PATH" envDefault:"adworks.db"`
	LedgerPath string `env:"ADWORKS_LEDGER_PATH" envDefault:"adworks-ledger.db"`

	OpenAIAPIKey string `env:"ADWORKS_OPENAI_API_KEY"`
	TextModel    string `env:"ADWORKS_TEXT_MODEL" envDefault:"gpt-4.1-mini"`
	ImageModel   string `env:"ADWORKS_IMAGE_MODEL" envDefault:"gpt-image-1"`
	ResponsesURL string `env:"ADWORKS_RESPONSES_URL"`
	ImagesURL    string `env:"ADWORKS_IMAGES_URL"`

	SweepInterval  time.Duration `env:"ADWORKS_SWEEP_INTERVAL" envDefault:"30s"`
	EventDelayUnit time.Duration `env:"ADWORKS_EVENT_DELAY_UNIT" envDefault:"1m"`
	RetryBackoff   time.Duration `env:"ADWORKS_RETRY_BACKOFF" envDefault:"2s"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("agencyd: %v", err)
	}

	store, err := storebbolt.Open(cfg.StatePath)
	if err != nil {
		config.Exitf("agencyd: open state store: %v", err)
	}
	defer store.Close()

	ledger, err := ledgersqlite.Open(ctx, cfg.LedgerPath)
	if err != nil {
		config.Exitf("agencyd: open delivery ledger: %v", err)
	}
	defer ledger.Close()

	text := genai.NewTextClient(genai.TextClientConfig{
		ResponsesURL: cfg.ResponsesURL,
		APIKey:       cfg.OpenAIAPIKey,
		Model:        cfg.TextModel,
	})
	image := genai.NewImageClient(genai.ImageClientConfig{
		ImagesURL: cfg.ImagesURL,
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.ImageModel,
	})
	concepts, err := genai.NewConceptGenerator(text, id.NewID)
	if err != nil {
		config.Exitf("agencyd: build concept generator: %v", err)
	}
	deliverables, err := genai.NewDeliverableGenerator(text, image, cfg.RetryBackoff, time.Now)
	if err != nil {
		config.Exitf("agencyd: build deliverable generator: %v", err)
	}

	campaigns, err := campaignservice.New(ctx, store, concepts, deliverables)
	if err != nil {
		config.Exitf("agencyd: load campaign state: %v", err)
	}

	reputation, err := reputationservice.New(ctx, store,
		reputationservice.WithDelayUnit(cfg.EventDelayUnit),
		reputationservice.WithDeliveryLedger(ledger),
	)
	if err != nil {
		config.Exitf("agencyd: load reputation state: %v", err)
	}
	defer reputation.Close()

	reputation.OnEvent = func(event reputationdomain.BonusEvent) {
		log.Printf("consequence: %s %q for campaign %s (%+d reputation, now %d)",
			event.Kind, event.Title, event.CampaignID, event.ReputationDelta, reputation.Reputation())
	}

	log.Printf("agencyd started: %d campaigns, reputation %d (%s), sweep every %s",
		len(campaigns.Campaigns()), reputation.Reputation(), reputation.Tier(), cfg.SweepInterval)

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Print("agencyd shutting down")
			return
		case <-ticker.C:
			reputation.ProcessPendingEvents(ctx)
			if tier, ok := reputation.ConsumeLevelUp(); ok {
				log.Printf("agency standing is now %s (reputation %d)", tier, reputation.Reputation())
			}
		}
	}
}
