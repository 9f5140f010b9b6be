package service

import (
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/message/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/message/repository"
)

// Service remembers recent group messages so an edit can be compared with
// what was originally sent
type Service struct {
	repo repository.Repository
}

// New creates a new message service
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Remember stores the content of a message as sent.
func (s *Service) Remember(snapshot domain.Snapshot) {
	s.repo.Put(snapshot)
}

// Original returns the last known content of a message.
func (s *Service) Original(chatID, messageID int64) (domain.Snapshot, bool) {
	return s.repo.Get(domain.Key{ChatID: chatID, MessageID: messageID})
}

// Replace records the edited content so a later edit is compared with
// this one. The original send time is kept.
func (s *Service) Replace(snapshot domain.Snapshot) {
	if prev, ok := s.repo.Get(snapshot.Key()); ok && !prev.SentAt.IsZero() {
		snapshot.SentAt = prev.SentAt
	}
	s.repo.Put(snapshot)
}

// Forget drops a message, typically after it was deleted.
func (s *Service) Forget(chatID, messageID int64) {
	s.repo.Remove(domain.Key{ChatID: chatID, MessageID: messageID})
}

// Size returns the number of cached messages.
func (s *Service) Size() int {
	return s.repo.Len()
}
