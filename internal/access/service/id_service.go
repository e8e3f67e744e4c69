package service

import (
	accessDomain "github.com/allisson/accessvault/internal/access/domain"
)

type idService struct{}

// NewID returns a new public identifier for prefix.
func (s *idService) NewID(prefix accessDomain.IDPrefix) (string, error) {
	if _, err := accessDomain.ParseIDPrefix(string(prefix)); err != nil {
		return "", err
	}
	return accessDomain.NewPublicID(prefix)
}

// NewIDService creates a new IDService.
func NewIDService() IDService {
	return &idService{}
}
