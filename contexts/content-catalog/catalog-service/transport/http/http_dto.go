package httptransport

type CategoryDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type GenreDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TitleDTO carries the derived rating; it is null until the title has at
// least one review.
type TitleDTO struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Year        int          `json:"year"`
	Description string       `json:"description,omitempty"`
	Category    *CategoryDTO `json:"category"`
	Genres      []GenreDTO   `json:"genre"`
	Rating      *float64     `json:"rating"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateGenreRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TitleListQuery mirrors the list endpoint's query parameters. Empty
// fields do not filter.
type TitleListQuery struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}

type CreateTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Genre       []string `json:"genre,omitempty"`
}

// PatchTitleRequest carries partial updates; absent fields stay as-is.
type PatchTitleRequest struct {
	Name        *string   `json:"name,omitempty"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Genre       *[]string `json:"genre,omitempty"`
}

type ListCategoriesResponse struct {
	Categories []CategoryDTO `json:"categories"`
}

type ListGenresResponse struct {
	Genres []GenreDTO `json:"genres"`
}

type ListTitlesResponse struct {
	Titles []TitleDTO `json:"titles"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
