package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/queue"
	"github.com/visapath/content-service/internal/repository"
)

type articleStore interface {
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, a *model.Article) error
	Update(ctx context.Context, a *model.Article) error
	Delete(ctx context.Context, id string) error
}

type publishedPublisher interface {
	PublishArticlePublished(ctx context.Context, ev queue.ArticlePublishedEvent) error
}

// Articles orchestrates the multi-step article save and delete flows:
// slug uniqueness, the row write, the category set replace and the
// published event.  Each step is an independent store call; the category
// replace can partially fail and is surfaced as such rather than rolled
// back.
type Articles struct {
	articles   articleStore
	categories *CategoryAssignments
	events     publishedPublisher // nil disables event publishing
}

func NewArticles(articles articleStore, categories *CategoryAssignments, events publishedPublisher) *Articles {
	return &Articles{articles: articles, categories: categories, events: events}
}

// Save persists the article and replaces its category assignments.  isNew
// selects insert vs update; wasPublished is the published flag before this
// save, used to publish the transition event exactly when the flag turns
// on.  Slug conflicts are detected proactively here and reactively by the
// unique index; both surface as repository.ErrSlugExists.
func (s *Articles) Save(ctx context.Context, a *model.Article, categoryIDs []string, isNew, wasPublished bool) error {
	taken, err := s.articles.SlugTaken(ctx, a.Slug, a.ID)
	if err != nil {
		return fmt.Errorf("check slug uniqueness: %w", err)
	}
	if taken {
		return repository.ErrSlugExists
	}

	if isNew {
		err = s.articles.Create(ctx, a)
	} else {
		err = s.articles.Update(ctx, a)
	}
	if err != nil {
		return err
	}

	// The row is saved; a category failure from here on is partial.
	if err := s.categories.Replace(ctx, a.ID, categoryIDs); err != nil {
		if _, ok := err.(*PartialFailureError); ok {
			return err
		}
		return &PartialFailureError{
			Op:   "save article",
			Step: "replace category assignments after row write",
			Err:  err,
		}
	}

	if s.events != nil && a.Published && (isNew || !wasPublished) {
		ev := queue.ArticlePublishedEvent{
			ArticleID:   a.ID,
			Slug:        a.Slug,
			Title:       a.Title,
			IsGlobal:    a.IsGlobal,
			VisaTypes:   a.VisaTypes,
			AccessTier:  string(a.AccessTier),
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if a.DestinationCountryCode != nil {
			ev.DestinationCode = *a.DestinationCountryCode
		}
		if a.OriginCountryCode != nil {
			ev.OriginCode = *a.OriginCountryCode
		}
		// Best-effort: the article is saved either way.
		if err := s.events.PublishArticlePublished(ctx, ev); err != nil {
			log.Printf("articles: publish event for %s failed: %v", a.Slug, err)
		}
	}
	return nil
}

// Delete removes the article's category rows first (application-enforced
// cascade), then the article itself.  If the second step fails the mappings
// are already gone; that state is reported as partial and resolved by
// deleting again.
func (s *Articles) Delete(ctx context.Context, id string) error {
	if err := s.categories.Replace(ctx, id, nil); err != nil {
		return fmt.Errorf("delete category assignments: %w", err)
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		if err == repository.ErrArticleNotFound {
			return err
		}
		return &PartialFailureError{
			Op:   "delete article",
			Step: "delete article row after removing category assignments",
			Err:  err,
		}
	}
	return nil
}
