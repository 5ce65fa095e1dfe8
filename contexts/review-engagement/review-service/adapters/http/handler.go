package httpadapter

import (
	"context"
	"log/slog"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	"ratehub/contexts/review-engagement/review-service/application"
	"ratehub/contexts/review-engagement/review-service/ports"
	httptransport "ratehub/contexts/review-engagement/review-service/transport/http"
)

// Handler maps HTTP DTOs to the review application service.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListReviewsHandler(ctx context.Context, titleID string) (httptransport.ListReviewsResponse, error) {
	reviews, err := h.Service.ListReviews(ctx, titleID)
	if err != nil {
		return httptransport.ListReviewsResponse{}, err
	}
	out := make([]httptransport.ReviewDTO, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, toReviewDTO(review))
	}
	return httptransport.ListReviewsResponse{Reviews: out}, nil
}

func (h Handler) GetReviewHandler(ctx context.Context, titleID string, reviewID string) (httptransport.ReviewDTO, error) {
	review, err := h.Service.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return httptransport.ReviewDTO{}, err
	}
	return toReviewDTO(review), nil
}

func (h Handler) CreateReviewHandler(
	ctx context.Context,
	requester authzentities.Requester,
	titleID string,
	request httptransport.CreateReviewRequest,
) (httptransport.ReviewDTO, error) {
	review, err := h.Service.CreateReview(ctx, requester, titleID, request.Text, request.Score)
	if err != nil {
		return httptransport.ReviewDTO{}, err
	}
	return toReviewDTO(review), nil
}

func (h Handler) PatchReviewHandler(
	ctx context.Context,
	requester authzentities.Requester,
	titleID string,
	reviewID string,
	request httptransport.PatchReviewRequest,
) (httptransport.ReviewDTO, error) {
	review, err := h.Service.UpdateReview(ctx, requester, titleID, reviewID, ports.ReviewPatch{
		Text:  request.Text,
		Score: request.Score,
	})
	if err != nil {
		return httptransport.ReviewDTO{}, err
	}
	return toReviewDTO(review), nil
}

func (h Handler) DeleteReviewHandler(ctx context.Context, requester authzentities.Requester, titleID string, reviewID string) error {
	return h.Service.DeleteReview(ctx, requester, titleID, reviewID)
}

func (h Handler) ListCommentsHandler(ctx context.Context, titleID string, reviewID string) (httptransport.ListCommentsResponse, error) {
	comments, err := h.Service.ListComments(ctx, titleID, reviewID)
	if err != nil {
		return httptransport.ListCommentsResponse{}, err
	}
	out := make([]httptransport.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentDTO(comment))
	}
	return httptransport.ListCommentsResponse{Comments: out}, nil
}

func (h Handler) GetCommentHandler(ctx context.Context, titleID string, reviewID string, commentID string) (httptransport.CommentDTO, error) {
	comment, err := h.Service.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return httptransport.CommentDTO{}, err
	}
	return toCommentDTO(comment), nil
}

func (h Handler) CreateCommentHandler(
	ctx context.Context,
	requester authzentities.Requester,
	titleID string,
	reviewID string,
	request httptransport.CreateCommentRequest,
) (httptransport.CommentDTO, error) {
	comment, err := h.Service.CreateComment(ctx, requester, titleID, reviewID, request.Text)
	if err != nil {
		return httptransport.CommentDTO{}, err
	}
	return toCommentDTO(comment), nil
}

func (h Handler) PatchCommentHandler(
	ctx context.Context,
	requester authzentities.Requester,
	titleID string,
	reviewID string,
	commentID string,
	request httptransport.CreateCommentRequest,
) (httptransport.CommentDTO, error) {
	comment, err := h.Service.UpdateComment(ctx, requester, titleID, reviewID, commentID, request.Text)
	if err != nil {
		return httptransport.CommentDTO{}, err
	}
	return toCommentDTO(comment), nil
}

func (h Handler) DeleteCommentHandler(ctx context.Context, requester authzentities.Requester, titleID string, reviewID string, commentID string) error {
	return h.Service.DeleteComment(ctx, requester, titleID, reviewID, commentID)
}

func toReviewDTO(review ports.Review) httptransport.ReviewDTO {
	return httptransport.ReviewDTO{
		ID:        review.ReviewID,
		TitleID:   review.TitleID,
		Author:    review.AuthorID,
		Text:      review.Text,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
}

func toCommentDTO(comment ports.Comment) httptransport.CommentDTO {
	return httptransport.CommentDTO{
		ID:        comment.CommentID,
		ReviewID:  comment.ReviewID,
		Author:    comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}
