package services

import (
	"github.com/yungbote/estatehub-backend/internal/platform/i18n"
)

type Messages struct {
	Locale   string            `json:"locale"`
	Messages map[string]string `json:"messages"`
}

type MessageService interface {
	Load(locale string) *Messages
	Locales() []string
}

type messageService struct {
	catalog *i18n.Catalog
}

func NewMessageService(catalog *i18n.Catalog) MessageService {
	return &messageService{catalog: catalog}
}

func (s *messageService) Load(locale string) *Messages {
	resolved, msgs := s.catalog.LoadMessages(locale)
	return &Messages{Locale: resolved, Messages: msgs}
}

func (s *messageService) Locales() []string { return s.catalog.Locales() }
