package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/generation"
	"github.com/draftforge/draftforge-api/internal/metrics"
	"github.com/draftforge/draftforge-api/internal/validation"
)

// documentChecker is the aggregation key for failures that precede the
// validation pipeline: unparseable provider output and FAQ shortfalls.
const documentChecker = "document"

// evaluateAttempt turns one raw provider output into either a finished
// response or the attempt's validation error set. Malformed output counts
// against the regeneration budget exactly like a failed checker.
func (s *GenerationService) evaluateAttempt(
	ctx context.Context,
	log *slog.Logger,
	raw string,
	req *domain.GenerationRequest,
	imageOverride string,
) (*domain.GenerationResponse, domain.ValidationErrors) {
	doc, err := parseDocument(raw)
	if err != nil {
		log.WarnContext(ctx, "provider output unparseable", "error", err)
		errs := domain.ValidationErrors{}
		errs.Add(documentChecker, err.Error())
		return nil, errs
	}

	images := s.fetchImages(ctx, log, req, imageOverride)

	pipeline := validation.NewPipeline(s.valCfg.EnabledCheckers, s.logger)
	errs := pipeline.Run(doc.Content, req)

	if req.MinFAQCount > 0 && len(doc.FAQs) < req.MinFAQCount {
		errs.Add(documentChecker, fmt.Sprintf(
			"document carries %d FAQ entries, fewer than the required %d",
			len(doc.FAQs), req.MinFAQCount))
	}

	if !errs.Valid() {
		return nil, errs
	}

	wordCount := validation.WordCount(doc.Content)
	return domain.NewGenerationResponse(doc, images, req, wordCount), errs
}

// fetchImages queries the selected image provider through the image
// cache. Every failure degrades to an empty list; image search is never
// fatal for the request.
func (s *GenerationService) fetchImages(
	ctx context.Context,
	log *slog.Logger,
	req *domain.GenerationRequest,
	imageOverride string,
) []domain.ImageResult {
	provider, err := s.selector.SelectImage(imageOverride, req.ImageProvider)
	if err != nil {
		if errors.Is(err, generation.ErrNoProvider) {
			log.InfoContext(ctx, "no image provider available, continuing without images")
		} else {
			log.WarnContext(ctx, "image provider selection failed", "error", err)
		}
		return nil
	}

	if cached, ok := s.imageCache.Get(req.FocusKeyword, provider.Name()); ok {
		metrics.CacheHitsTotal.WithLabelValues("image", "hit").Inc()
		return cached
	}
	metrics.CacheHitsTotal.WithLabelValues("image", "miss").Inc()

	images, err := provider.Search(ctx, req.FocusKeyword, s.imageLimit)
	if err != nil {
		log.WarnContext(ctx, "image search failed, continuing without images",
			"provider", provider.Name(),
			"error", err)
		return nil
	}

	domain.SortImagesByRelevance(images)
	s.imageCache.Put(req.FocusKeyword, provider.Name(), images)

	log.DebugContext(ctx, "image search complete",
		"provider", provider.Name(),
		"results", len(images))

	return images
}
