package store

import (
	"database/sql"

	"github.com/MKhiriev/remy-site/models"
	sq "github.com/Masterminds/squirrel"
)

var (
	userColumns    = []string{"id", "name", "password_hash", "role", "created_at"}
	productColumns = []string{"id", "title", "subtitle", "description", "hero_image_url", "gallery_json", "created_at", "updated_at"}
	reviewColumns  = []string{"id", "user_id", "name_snapshot", "rating", "message", "image_url", "approved", "created_at", "updated_at"}
)

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.PasswordHash, string(user.Role), user.CreatedAt).
		ToSql()
}

func buildSelectUserByNameQuery(b sq.StatementBuilderType, name string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"name": name}).
		ToSql()
}

func buildUpdateUserRoleQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update(user.TableName()).
		Set("role", string(user.Role)).
		Where(sq.Eq{"name": user.Name}).
		ToSql()
}

// buildSelectProductQuery selects the oldest product; the site has one.
func buildSelectProductQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(productColumns...).
		From(models.Product{}.TableName()).
		OrderBy("created_at ASC", "id ASC").
		Limit(1).
		ToSql()
}

func buildInsertProductQuery(b sq.StatementBuilderType, product models.Product, gallery string) (string, []any, error) {
	return b.Insert(product.TableName()).
		Columns(productColumns...).
		Values(
			product.ID,
			product.Title,
			nullString(product.Subtitle),
			product.Description,
			nullString(product.HeroImageURL),
			gallery,
			product.CreatedAt,
			product.UpdatedAt,
		).
		ToSql()
}

func buildUpdateProductQuery(b sq.StatementBuilderType, product models.Product, gallery string) (string, []any, error) {
	return b.Update(product.TableName()).
		SetMap(map[string]any{
			"title":          product.Title,
			"subtitle":       nullString(product.Subtitle),
			"description":    product.Description,
			"hero_image_url": nullString(product.HeroImageURL),
			"gallery_json":   gallery,
			"updated_at":     product.UpdatedAt,
		}).
		Where(sq.Eq{"id": product.ID}).
		ToSql()
}

// buildSelectApprovedReviewsQuery lists approved reviews, newest first.
func buildSelectApprovedReviewsQuery(b sq.StatementBuilderType, limit uint64) (string, []any, error) {
	return b.Select(reviewColumns...).
		From(models.Review{}.TableName()).
		Where(sq.Eq{"approved": true}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
}

func buildSelectReviewByUserIDQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(reviewColumns...).
		From(models.Review{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildInsertReviewQuery(b sq.StatementBuilderType, review models.Review) (string, []any, error) {
	return b.Insert(review.TableName()).
		Columns(reviewColumns...).
		Values(
			review.ID,
			review.UserID,
			review.NameSnapshot,
			review.Rating,
			review.Message,
			nullString(review.ImageURL),
			review.Approved,
			review.CreatedAt,
			review.UpdatedAt,
		).
		ToSql()
}

// buildUpdateReviewQuery rewrites the editable fields of the user's review.
func buildUpdateReviewQuery(b sq.StatementBuilderType, review models.Review) (string, []any, error) {
	return b.Update(review.TableName()).
		SetMap(map[string]any{
			"name_snapshot": review.NameSnapshot,
			"rating":        review.Rating,
			"message":       review.Message,
			"image_url":     nullString(review.ImageURL),
			"updated_at":    review.UpdatedAt,
		}).
		Where(sq.Eq{"user_id": review.UserID}).
		ToSql()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
