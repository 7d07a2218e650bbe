package service

import (
	"time"

	"github.com/hance08/carteira/internal/attachment"
	"github.com/hance08/carteira/internal/realtime"
	"github.com/hance08/carteira/internal/store"
	"github.com/rs/zerolog"
)

type Config struct {
	// KindCacheTTL bounds how long a kind snapshot is reused. Zero keeps it
	// until Invalidate.
	KindCacheTTL time.Duration
}

type Service struct {
	Kind        *KindService
	Transaction *TransactionService
	Summary     *SummaryService
}

func NewService(repo store.Repository, files *attachment.Service, pub realtime.Publisher, log zerolog.Logger, cfg Config) (*Service, error) {
	kinds, err := NewKindService(repo, cfg.KindCacheTTL, log)
	if err != nil {
		return nil, err
	}

	return &Service{
		Kind:        kinds,
		Transaction: NewTransactionService(repo, kinds, files, pub, log),
		Summary:     NewSummaryService(repo, kinds),
	}, nil
}

func (s *Service) Close() {
	s.Kind.Close()
}
