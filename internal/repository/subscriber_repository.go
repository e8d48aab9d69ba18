package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"recipe-catalog/internal/model"
)

// SubscriberRepository tracks chats receiving the digest.
type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Subscribe finds or creates the subscriber for chatID and refreshes its username.
func (r *SubscriberRepository) Subscribe(ctx context.Context, chatID int64, username string) (*model.Subscriber, error) {
	var sub model.Subscriber
	db := r.db.WithContext(ctx)
	err := db.Where("chat_id = ?", chatID).First(&sub).Error
	switch {
	case err == nil:
		if sub.Username != username {
			if err := db.Model(&sub).Update("username", username).Error; err != nil {
				return nil, fmt.Errorf("update subscriber: %w", err)
			}
			sub.Username = username
		}
		return &sub, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = model.Subscriber{ChatID: chatID, Username: username}
		if err := db.Create(&sub).Error; err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}
		return &sub, nil
	default:
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
}

// Unsubscribe removes the chat. It reports whether a subscription existed.
func (r *SubscriberRepository) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&model.Subscriber{})
	if res.Error != nil {
		return false, fmt.Errorf("delete subscriber: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *SubscriberRepository) ListAll(ctx context.Context) ([]model.Subscriber, error) {
	var subs []model.Subscriber
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
