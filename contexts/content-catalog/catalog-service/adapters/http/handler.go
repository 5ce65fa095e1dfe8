package httpadapter

import (
	"context"
	"log/slog"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	"ratehub/contexts/content-catalog/catalog-service/application"
	"ratehub/contexts/content-catalog/catalog-service/ports"
	httptransport "ratehub/contexts/content-catalog/catalog-service/transport/http"
)

// Handler maps HTTP DTOs to the catalog application service.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListCategoriesHandler(ctx context.Context) (httptransport.ListCategoriesResponse, error) {
	categories, err := h.Service.ListCategories(ctx)
	if err != nil {
		return httptransport.ListCategoriesResponse{}, err
	}
	out := make([]httptransport.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		out = append(out, httptransport.CategoryDTO{Name: category.Name, Slug: category.Slug})
	}
	return httptransport.ListCategoriesResponse{Categories: out}, nil
}

func (h Handler) CreateCategoryHandler(
	ctx context.Context,
	requester authzentities.Requester,
	request httptransport.CreateCategoryRequest,
) (httptransport.CategoryDTO, error) {
	category, err := h.Service.CreateCategory(ctx, requester, ports.Category{
		Name: request.Name,
		Slug: request.Slug,
	})
	if err != nil {
		return httptransport.CategoryDTO{}, err
	}
	return httptransport.CategoryDTO{Name: category.Name, Slug: category.Slug}, nil
}

func (h Handler) DeleteCategoryHandler(ctx context.Context, requester authzentities.Requester, slug string) error {
	return h.Service.DeleteCategory(ctx, requester, slug)
}

func (h Handler) ListGenresHandler(ctx context.Context) (httptransport.ListGenresResponse, error) {
	genres, err := h.Service.ListGenres(ctx)
	if err != nil {
		return httptransport.ListGenresResponse{}, err
	}
	out := make([]httptransport.GenreDTO, 0, len(genres))
	for _, genre := range genres {
		out = append(out, httptransport.GenreDTO{Name: genre.Name, Slug: genre.Slug})
	}
	return httptransport.ListGenresResponse{Genres: out}, nil
}

func (h Handler) CreateGenreHandler(
	ctx context.Context,
	requester authzentities.Requester,
	request httptransport.CreateGenreRequest,
) (httptransport.GenreDTO, error) {
	genre, err := h.Service.CreateGenre(ctx, requester, ports.Genre{
		Name: request.Name,
		Slug: request.Slug,
	})
	if err != nil {
		return httptransport.GenreDTO{}, err
	}
	return httptransport.GenreDTO{Name: genre.Name, Slug: genre.Slug}, nil
}

func (h Handler) DeleteGenreHandler(ctx context.Context, requester authzentities.Requester, slug string) error {
	return h.Service.DeleteGenre(ctx, requester, slug)
}

func (h Handler) ListTitlesHandler(ctx context.Context, query httptransport.TitleListQuery) (httptransport.ListTitlesResponse, error) {
	titles, err := h.Service.ListTitles(ctx, ports.TitleFilter{
		CategorySlug: query.Category,
		GenreSlug:    query.Genre,
		Name:         query.Name,
		Year:         query.Year,
	})
	if err != nil {
		return httptransport.ListTitlesResponse{}, err
	}
	out := make([]httptransport.TitleDTO, 0, len(titles))
	for _, title := range titles {
		out = append(out, toTitleDTO(title))
	}
	return httptransport.ListTitlesResponse{Titles: out}, nil
}

func (h Handler) GetTitleHandler(ctx context.Context, titleID string) (httptransport.TitleDTO, error) {
	title, err := h.Service.GetTitle(ctx, titleID)
	if err != nil {
		return httptransport.TitleDTO{}, err
	}
	return toTitleDTO(title), nil
}

func (h Handler) CreateTitleHandler(
	ctx context.Context,
	requester authzentities.Requester,
	request httptransport.CreateTitleRequest,
) (httptransport.TitleDTO, error) {
	title, err := h.Service.CreateTitle(ctx, requester, ports.NewTitle{
		Name:         request.Name,
		Year:         request.Year,
		Description:  request.Description,
		CategorySlug: request.Category,
		GenreSlugs:   request.Genre,
	})
	if err != nil {
		return httptransport.TitleDTO{}, err
	}
	return toTitleDTO(title), nil
}

func (h Handler) PatchTitleHandler(
	ctx context.Context,
	requester authzentities.Requester,
	titleID string,
	request httptransport.PatchTitleRequest,
) (httptransport.TitleDTO, error) {
	title, err := h.Service.UpdateTitle(ctx, requester, titleID, ports.TitlePatch{
		Name:         request.Name,
		Year:         request.Year,
		Description:  request.Description,
		CategorySlug: request.Category,
		GenreSlugs:   request.Genre,
	})
	if err != nil {
		return httptransport.TitleDTO{}, err
	}
	return toTitleDTO(title), nil
}

func (h Handler) DeleteTitleHandler(ctx context.Context, requester authzentities.Requester, titleID string) error {
	return h.Service.DeleteTitle(ctx, requester, titleID)
}

func toTitleDTO(title ports.Title) httptransport.TitleDTO {
	dto := httptransport.TitleDTO{
		ID:          title.TitleID,
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Rating:      title.Rating,
	}
	if title.Category != nil {
		dto.Category = &httptransport.CategoryDTO{Name: title.Category.Name, Slug: title.Category.Slug}
	}
	for _, genre := range title.Genres {
		dto.Genres = append(dto.Genres, httptransport.GenreDTO{Name: genre.Name, Slug: genre.Slug})
	}
	return dto
}
