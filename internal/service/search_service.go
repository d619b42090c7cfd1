package service

import (
	"context"
	"strings"

	"markit-notes-be/internal/dto"
	"markit-notes-be/internal/pkg/apperror"
	"markit-notes-be/internal/pkg/logger"
	"markit-notes-be/internal/repository/specification"
	"markit-notes-be/internal/repository/unitofwork"
	"markit-notes-be/pkg/frontmatter"
	"markit-notes-be/pkg/preview"
)

type ISearchService interface {
	SearchNotes(ctx context.Context, userId uint, query, searchType string) ([]dto.SearchResult, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// NormalizeSearchType maps anything unrecognised to "all".
func NormalizeSearchType(searchType string) string {
	switch searchType {
	case dto.SearchTypeTitle, dto.SearchTypeContent, dto.SearchTypeTags:
		return searchType
	}
	return dto.SearchTypeAll
}

func (s *searchService) SearchNotes(ctx context.Context, userId uint, query, searchType string) ([]dto.SearchResult, error) {
	query = strings.TrimSpace(query)
	results := make([]dto.SearchResult, 0)
	if query == "" {
		return results, nil
	}
	searchType = NormalizeSearchType(searchType)

	specs := []specification.Specification{specification.NoteOwnedByUser{UserID: userId}}
	switch searchType {
	case dto.SearchTypeTitle:
		specs = append(specs, specification.NoteSearchQuery{Query: query, Fields: []string{"title"}})
	case dto.SearchTypeContent:
		specs = append(specs, specification.NoteSearchQuery{Query: query, Fields: []string{"content"}})
	case dto.SearchTypeTags:
		tag := frontmatter.SanitizeTag(query)
		if !frontmatter.ValidTag(tag) {
			return results, nil
		}
		specs = append(specs, specification.HasTag{Tag: tag})
	default:
		specs = append(specs, specification.NoteSearchQuery{Query: query, Fields: []string{"title", "content", "tags"}})
	}
	specs = append(specs,
		specification.OrderBy{Field: "notes.updated_at", Desc: true},
		specification.OrderBy{Field: "notes.noteid", Desc: true},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		s.logger.Error("SEARCH", "search failed", map[string]interface{}{"user_id": userId, "type": searchType, "error": err})
		return nil, apperror.Storage("search notes", err)
	}
	if len(notes) == 0 {
		return results, nil
	}

	ids := make([]uint, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.Id)
	}
	tagsByNote, err := uow.TagRepository().DistinctByNotes(ctx, ids)
	if err != nil {
		return nil, apperror.Storage("load tags", err)
	}

	for _, n := range notes {
		tags := tagsByNote[n.Id]
		if tags == nil {
			tags = []string{}
		}
		snippet := preview.Head(n.Content)
		if searchType == dto.SearchTypeContent {
			snippet = preview.Snippet(n.Content, query)
		}
		results = append(results, dto.SearchResult{
			NoteId:    n.Id,
			Title:     n.Title,
			Content:   n.Content,
			UpdatedAt: n.UpdatedAt,
			Tags:      tags,
			Preview:   snippet,
		})
	}
	return results, nil
}
