package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ersonp/liferpg-core/internal/application/handlers"
	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/services"
	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
	"github.com/ersonp/liferpg-core/internal/infrastructure/content"
	embedder "github.com/ersonp/liferpg-core/internal/infrastructure/embedder/openai"
	llm "github.com/ersonp/liferpg-core/internal/infrastructure/llm/openai"
	"github.com/ersonp/liferpg-core/internal/infrastructure/logging"
	"github.com/ersonp/liferpg-core/internal/infrastructure/random"
	"github.com/ersonp/liferpg-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/liferpg-core/internal/infrastructure/tracing"
	"github.com/ersonp/liferpg-core/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	SaveName      string
	Save          *config.SaveEntry
	Content       *content.Definitions
	Logger        *slog.Logger
	Characters    *handlers.CharacterHandler
	Relationships *handlers.RelationshipHandler
	Dialogue      *handlers.DialogueHandler
	Export        *handlers.ExportHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	rng *random.Source
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) (err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if globalSeed != 0 {
		cfg.Random.Seed = globalSeed
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	shutdown, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			logger.Warn("flushing traces", "error", serr)
		}
	}()

	saves, err := config.LoadSaves(cwd)
	if err != nil {
		return fmt.Errorf("loading saves: %w", err)
	}
	if globalSave == "" {
		return errors.New("save is required (use --save flag)")
	}
	save, err := saves.Get(globalSave)
	if err != nil {
		return err
	}

	defs, err := content.Load(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	if err := os.MkdirAll(config.SaveDir(cwd, globalSave), 0755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: config.SQLitePathForSave(cwd, globalSave)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	if err := relationalDB.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	rng, err := random.FromSeed(cfg.Random.Seed)
	if err != nil {
		return fmt.Errorf("seeding random source: %w", err)
	}
	logger.Info("random source", "seed", rng.Seed())

	settings, err := socialSettings(cfg.Social)
	if err != nil {
		return err
	}

	now := func() time.Time { return time.Now().UTC() }

	special := services.NewDefaultSpecialConditions(now)
	actions := services.NewActionDispatcher()
	services.RegisterDefaultActions(actions, now)
	if err := defs.CheckSpecials(special.Labels(), actions.Labels()); err != nil {
		return fmt.Errorf("checking content: %w", err)
	}

	characterService := services.NewCharacterService(relationalDB, rng, logger)
	socialService := services.NewSocialGraphService(relationalDB, rng, settings, logger)
	gameService := services.NewGameService(relationalDB, actions, logger)
	engine := services.NewDialogueEngine(services.NewConditionEvaluator(special))

	deps := &internalDeps{
		Deps: Deps{
			Config:        cfg,
			SaveName:      globalSave,
			Save:          save,
			Content:       defs,
			Logger:        logger,
			Characters:    handlers.NewCharacterHandler(characterService, defs, now),
			Relationships: handlers.NewRelationshipHandler(socialService, characterService, now),
			Dialogue:      handlers.NewDialogueHandler(characterService, engine, gameService, defs, now),
			Export:        handlers.NewExportHandler(relationalDB),
		},
		rng: rng,
	}

	return fn(deps)
}

// withFactsHandler provides the fact catalog, which needs Qdrant and an embedder.
func withFactsHandler(ctx context.Context, fn func(*handlers.FactsHandler) error) error {
	return withDeps(ctx, func(d *Deps) error {
		qdrantCfg := d.Config.Qdrant
		qdrantCfg.Collection = d.Save.Collection

		repo, err := qdrant.NewRepository(qdrantCfg)
		if err != nil {
			return fmt.Errorf("creating qdrant repository: %w", err)
		}
		defer repo.Close()

		emb, err := embedder.NewEmbedder(d.Config.Embedder)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		catalog := services.NewFactCatalogService(emb, repo)
		return fn(handlers.NewFactsHandler(catalog, repo, d.Content))
	})
}

// withDraftHandler provides fact drafting. It needs no save.
func withDraftHandler(ctx context.Context, fn func(*handlers.DraftHandler) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	shutdown, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			logger.Warn("flushing traces", "error", serr)
		}
	}()

	defs, err := content.Load(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return fmt.Errorf("creating llm client: %w", err)
	}

	return fn(handlers.NewDraftHandler(client, defs))
}

// socialSettings converts configured weights to relation types.
// Without configured weights the defaults apply.
func socialSettings(cfg config.SocialConfig) (services.SocialSettings, error) {
	settings := services.DefaultSocialSettings()
	if cfg.RelationshipChance < 0 || cfg.RelationshipChance > 1 {
		return settings, fmt.Errorf("social.relationship_chance must be within [0, 1], got %g", cfg.RelationshipChance)
	}
	settings.RelationshipChance = cfg.RelationshipChance

	if len(cfg.TypeWeights) == 0 {
		return settings, nil
	}

	weights := make(map[entities.RelationType]int, len(cfg.TypeWeights))
	for name, w := range cfg.TypeWeights {
		rt, err := entities.ParseRelationType(name)
		if err != nil {
			return settings, fmt.Errorf("social.type_weights: %w", err)
		}
		if rt.IsKinship() {
			return settings, fmt.Errorf("social.type_weights: kinship type %q cannot be generated", name)
		}
		if w < 0 {
			return settings, fmt.Errorf("social.type_weights: negative weight for %q", name)
		}
		weights[rt] = w
	}
	settings.TypeWeights = weights
	return settings, nil
}
