package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/mock"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPublicBase = "https://cdn.example.com"

var testAuthor = auth.Identity{Subject: "u1", Name: "remy", Role: auth.RoleUser}

func newTestReviewService(t *testing.T) (*reviewService, *mock.MockReviewRepository, *mock.MockObjectStorage) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockReviewRepository(ctrl)
	storage := mock.NewMockObjectStorage(ctrl)

	svc := NewReviewService(repo, storage, config.Objects{PublicBaseURL: testPublicBase + "/"}, &fixedIDs{ids: []string{"r1"}}, logger.Nop()).(*reviewService)
	svc.now = func() time.Time { return testNow }
	return svc, repo, storage
}

func echoReview(_ context.Context, r models.Review) (models.Review, error) {
	return r, nil
}

func TestListReviews(t *testing.T) {
	svc, repo, _ := newTestReviewService(t)
	reviews := []models.Review{{ID: "r2"}, {ID: "r1"}}
	repo.EXPECT().ListApprovedReviews(gomock.Any(), uint64(ReviewListLimit)).Return(reviews, nil)

	got, err := svc.ListReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reviews, got)
}

func TestFindOwnReview(t *testing.T) {
	svc, repo, _ := newTestReviewService(t)

	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{}, store.ErrReviewNotFound)
	_, found, err := svc.FindOwnReview(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, found)

	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{}, store.ErrScanningRow)
	_, _, err = svc.FindOwnReview(context.Background(), "u1")
	assert.ErrorIs(t, err, store.ErrScanningRow)
}

func TestCreateReview_Success(t *testing.T) {
	svc, repo, _ := newTestReviewService(t)

	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{}, store.ErrReviewNotFound)
	repo.EXPECT().CreateReview(gomock.Any(), gomock.Any()).DoAndReturn(echoReview)

	review, err := svc.CreateReview(context.Background(), testAuthor, models.ReviewInput{
		Message:  "  Super soirée  ",
		Rating:   json.Number("5"),
		ImageURL: testPublicBase + "/reviews/a.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "r1", review.ID)
	assert.Equal(t, "u1", review.UserID)
	assert.Equal(t, "remy", review.NameSnapshot)
	assert.Equal(t, "Super soirée", review.Message)
	assert.Equal(t, 5, review.Rating)
	require.NotNil(t, review.ImageURL)
	assert.Equal(t, testPublicBase+"/reviews/a.jpg", *review.ImageURL)
	assert.True(t, review.Approved)
	assert.Equal(t, testNow, review.CreatedAt)
}

func TestCreateReview_Duplicate(t *testing.T) {
	svc, repo, _ := newTestReviewService(t)
	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{ID: "r0"}, nil)

	_, err := svc.CreateReview(context.Background(), testAuthor, models.ReviewInput{Message: "m", Rating: "4"})
	require.ErrorIs(t, err, ErrReviewAlreadyExists)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "r0", conflict.ID)
}

func TestCreateReview_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   models.ReviewInput
		wantErr error
	}{
		{name: "blank message", input: models.ReviewInput{Message: "   ", Rating: "4"}, wantErr: ErrInvalidMessage},
		{name: "long message", input: models.ReviewInput{Message: strings.Repeat("m", 501), Rating: "4"}, wantErr: ErrInvalidMessage},
		{name: "rating zero", input: models.ReviewInput{Message: "m", Rating: "0"}, wantErr: ErrInvalidRating},
		{name: "rating six", input: models.ReviewInput{Message: "m", Rating: "6"}, wantErr: ErrInvalidRating},
		{name: "fractional rating", input: models.ReviewInput{Message: "m", Rating: "4.5"}, wantErr: ErrInvalidRating},
		{name: "missing rating", input: models.ReviewInput{Message: "m"}, wantErr: ErrInvalidRating},
		{name: "foreign image", input: models.ReviewInput{Message: "m", Rating: "4", ImageURL: "https://evil.example/a.jpg"}, wantErr: ErrInvalidImageURL},
		{name: "long image", input: models.ReviewInput{Message: "m", Rating: "4", ImageURL: testPublicBase + "/" + strings.Repeat("a", 600)}, wantErr: ErrInvalidImageURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestReviewService(t)
			repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{}, store.ErrReviewNotFound)

			_, err := svc.CreateReview(context.Background(), testAuthor, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateReview_IntegralFloatRating(t *testing.T) {
	svc, repo, _ := newTestReviewService(t)
	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{}, store.ErrReviewNotFound)
	repo.EXPECT().CreateReview(gomock.Any(), gomock.Any()).DoAndReturn(echoReview)

	review, err := svc.CreateReview(context.Background(), testAuthor, models.ReviewInput{Message: "m", Rating: "4.0"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Nil(t, review.ImageURL)
}

func TestUpdateOwnReview_RemovesImage(t *testing.T) {
	svc, repo, storage := newTestReviewService(t)
	oldImage := testPublicBase + "/reviews/old.jpg"
	current := models.Review{ID: "r0", UserID: "u1", NameSnapshot: "rémy", Rating: 3, Message: "old", ImageURL: &oldImage, Approved: true}

	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(current, nil)
	storage.EXPECT().Delete(gomock.Any(), "reviews/old.jpg").Return(errors.New("bucket down"))
	repo.EXPECT().UpdateReview(gomock.Any(), gomock.Any()).DoAndReturn(echoReview)

	updated, err := svc.UpdateOwnReview(context.Background(), testAuthor, models.ReviewInput{Message: "new", Rating: "5"})
	require.NoError(t, err)

	assert.Equal(t, "r0", updated.ID)
	assert.Equal(t, "remy", updated.NameSnapshot)
	assert.Equal(t, "new", updated.Message)
	assert.Equal(t, 5, updated.Rating)
	assert.Nil(t, updated.ImageURL)
	assert.Equal(t, testNow, updated.UpdatedAt)
}

func TestUpdateOwnReview_KeepsForeignImageObject(t *testing.T) {
	svc, repo, _ := newTestReviewService(t)
	legacy := "https://old-cdn.example/reviews/a.jpg"

	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{ID: "r0", ImageURL: &legacy}, nil)
	repo.EXPECT().UpdateReview(gomock.Any(), gomock.Any()).DoAndReturn(echoReview)

	_, err := svc.UpdateOwnReview(context.Background(), testAuthor, models.ReviewInput{Message: "m", Rating: "2"})
	assert.NoError(t, err)
}

func TestUpdateOwnReview_NoReview(t *testing.T) {
	svc, repo, _ := newTestReviewService(t)
	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{}, store.ErrReviewNotFound)

	_, err := svc.UpdateOwnReview(context.Background(), testAuthor, models.ReviewInput{Message: "m", Rating: "2"})
	assert.ErrorIs(t, err, store.ErrReviewNotFound)
}

func TestUpdateOwnReview_InvalidRating(t *testing.T) {
	svc, repo, _ := newTestReviewService(t)
	repo.EXPECT().FindReviewByUserID(gomock.Any(), "u1").Return(models.Review{ID: "r0"}, nil)

	_, err := svc.UpdateOwnReview(context.Background(), testAuthor, models.ReviewInput{Message: "m", Rating: "nope"})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestValidImageURL_WithoutPublicBase(t *testing.T) {
	svc := &reviewService{}

	assert.True(t, svc.validImageURL("https://anywhere.example/a.jpg"))
	assert.True(t, svc.validImageURL("http://anywhere.example/a.jpg"))
	assert.False(t, svc.validImageURL("ftp://anywhere.example/a.jpg"))
	assert.False(t, svc.validImageURL("javascript:alert(1)"))
	assert.False(t, svc.validImageURL("/relative.jpg"))
}
