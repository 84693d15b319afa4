// Package main implements the draftforge CLI, a thin wrapper around the
// generation service for running article generation from a terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/draftforge/draftforge-api/internal/cache"
	"github.com/draftforge/draftforge-api/internal/config"
	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/platform/gemini"
	"github.com/draftforge/draftforge-api/internal/platform/logger"
	"github.com/draftforge/draftforge-api/internal/platform/openai"
	"github.com/draftforge/draftforge-api/internal/platform/pexels"
	"github.com/draftforge/draftforge-api/internal/platform/unsplash"
	"github.com/draftforge/draftforge-api/internal/prompt"
	"github.com/draftforge/draftforge-api/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "draftforge",
		Short: "draftforge generates SEO articles through LLM providers",
		Long: "draftforge runs the generate-validate-regenerate loop against the\n" +
			"configured LLM and image providers and prints the result as JSON.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newProvidersCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// generateFlags collects request fields settable from the command line.
type generateFlags struct {
	file string

	focusKeyword    string
	relatedKeywords []string
	searchIntent    string
	contentType     string
	localeCode      string
	authorName      string
	wordCountMin    int
	wordCountMax    int
	minFAQCount     int
	contactURL      string
	aiProvider      string
	imageProvider   string
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one article and print the response as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(flags)
			if err != nil {
				return err
			}

			env, err := buildEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := env.service.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read the full GenerationRequest from a JSON file")
	cmd.Flags().StringVar(&flags.focusKeyword, "focus-keyword", "", "Primary keyword the article targets")
	cmd.Flags().StringSliceVar(&flags.relatedKeywords, "related-keyword", nil, "Secondary keyword (repeatable)")
	cmd.Flags().StringVar(&flags.searchIntent, "intent", "informational", "Search intent: informational, navigational, transactional, commercial")
	cmd.Flags().StringVar(&flags.contentType, "content-type", "concept", "Content type: how-to, concept, news")
	cmd.Flags().StringVar(&flags.localeCode, "locale", "en_US", "Locale code for the article")
	cmd.Flags().StringVar(&flags.authorName, "author", "", "Author persona name")
	cmd.Flags().IntVar(&flags.wordCountMin, "min-words", 800, "Minimum article word count")
	cmd.Flags().IntVar(&flags.wordCountMax, "max-words", 1500, "Maximum article word count")
	cmd.Flags().IntVar(&flags.minFAQCount, "min-faqs", 3, "Minimum number of FAQ entries")
	cmd.Flags().StringVar(&flags.contactURL, "contact-url", "", "Contact page URL the article must link to")
	cmd.Flags().StringVar(&flags.aiProvider, "ai-provider", "", "Override the text provider for this request")
	cmd.Flags().StringVar(&flags.imageProvider, "image-provider", "", "Override the image provider for this request")

	return cmd
}

func newProvidersCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List registered providers and their availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "text providers:")
			for _, name := range env.registry.TextNames() {
				provider, _ := env.registry.Text(name)
				line := fmt.Sprintf("  %-12s available=%v", name, provider.Available())
				if check && provider.Available() {
					if err := provider.ValidateCredentials(cmd.Context()); err != nil {
						line += fmt.Sprintf(" credentials=invalid (%v)", err)
					} else {
						line += " credentials=ok"
					}
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, "image providers:")
			for _, name := range env.registry.ImageNames() {
				provider, _ := env.registry.Image(name)
				fmt.Fprintf(out, "  %-12s available=%v\n", name, provider.Available())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Validate credentials of available text providers (makes one network call each)")
	return cmd
}

// buildRequest assembles the GenerationRequest from a JSON file or flags.
// Flag values fill gaps the file leaves empty; validation happens inside
// the service.
func buildRequest(flags generateFlags) (*domain.GenerationRequest, error) {
	req := &domain.GenerationRequest{}

	if flags.file != "" {
		blob, err := os.ReadFile(flags.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read request file: %w", err)
		}
		if err := json.Unmarshal(blob, req); err != nil {
			return nil, fmt.Errorf("failed to parse request file: %w", err)
		}
	}

	if req.FocusKeyword == "" {
		req.FocusKeyword = flags.focusKeyword
	}
	if len(req.RelatedKeywords) == 0 {
		req.RelatedKeywords = flags.relatedKeywords
	}
	if req.SearchIntent == "" {
		req.SearchIntent = domain.SearchIntent(flags.searchIntent)
	}
	if req.ContentType == "" {
		req.ContentType = domain.ContentType(flags.contentType)
	}
	if req.Locale.Code == "" {
		req.Locale.Code = flags.localeCode
	}
	if req.Author.Name == "" {
		req.Author.Name = flags.authorName
	}
	if req.WordCountMin == 0 {
		req.WordCountMin = flags.wordCountMin
	}
	if req.WordCountMax == 0 {
		req.WordCountMax = flags.wordCountMax
	}
	if req.MinFAQCount == 0 {
		req.MinFAQCount = flags.minFAQCount
	}
	if req.ContactURL == "" {
		req.ContactURL = flags.contactURL
	}
	if req.AIProvider == "" {
		req.AIProvider = flags.aiProvider
	}
	if req.ImageProvider == "" {
		req.ImageProvider = flags.imageProvider
	}

	return req, nil
}

// environment bundles the wired service and registry for a CLI run.
type environment struct {
	service  *service.GenerationService
	registry *generation.Registry
}

// buildEnvironment wires the generation service exactly like the server
// does, minus the HTTP layer.
func buildEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	registry := generation.NewRegistry()

	geminiGen, err := gemini.NewGenerator(ctx, appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	registry.RegisterText(geminiGen)

	openaiGen, err := openai.NewGenerator(appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	registry.RegisterText(openaiGen)

	registry.RegisterImage(pexels.NewClient(appLogger, cfg.Image.PexelsAPIKey))
	registry.RegisterImage(unsplash.NewClient(appLogger, cfg.Image.UnsplashAccessKey))

	selector := generation.NewSelector(registry, generation.SelectorConfig{
		DefaultText:    cfg.LLM.DefaultProvider,
		TextFallbacks:  cfg.LLM.FallbackOrder,
		DefaultImage:   cfg.Image.DefaultProvider,
		ImageFallbacks: cfg.Image.FallbackOrder,
	}, appLogger)

	invoker := generation.NewInvoker(generation.InvokerConfig{
		MaxAttempts: cfg.Generation.MaxRetries,
		BaseDelay:   cfg.Generation.RetryBaseDelay,
		MaxDelay:    cfg.Generation.RetryMaxDelay,
	}, appLogger)

	prompts, err := prompt.NewTemplateBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt templates: %w", err)
	}

	svc, err := service.NewGenerationService(service.Deps{
		Selector:    selector,
		Invoker:     invoker,
		ResultCache: cache.NewResultCache(cfg.Cache.TTL, cfg.Cache.Enabled),
		ImageCache:  cache.NewImageCache(cfg.Cache.TTL, cfg.Cache.Enabled),
		Prompts:     prompts,
		Logger:      appLogger,
		Generation:  cfg.Generation,
		Validation:  cfg.Validation,
		ImageLimit:  cfg.Image.SearchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	return &environment{service: svc, registry: registry}, nil
}
