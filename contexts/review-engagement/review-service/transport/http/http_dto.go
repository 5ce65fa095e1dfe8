package httptransport

import "time"

type ReviewDTO struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"title_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
}

type CommentDTO struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"review_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
}

type CreateReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// PatchReviewRequest carries partial updates; absent fields stay as-is.
type PatchReviewRequest struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

type ListReviewsResponse struct {
	Reviews []ReviewDTO `json:"reviews"`
}

type ListCommentsResponse struct {
	Comments []CommentDTO `json:"comments"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
