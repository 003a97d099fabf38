package importer

import (
	"fmt"
	"io"

	"github.com/granahq/grana/internal/encoding"
	"github.com/granahq/grana/internal/transaction"
)

type Service struct {
	importer *Importer
}

func NewService() *Service {
	return &Service{importer: New()}
}

// Import normalizes the upload to UTF-8 and parses it into create params.
func (s *Service) Import(accountType transaction.AccountType, r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("normalizing encoding: %w", err)
	}

	return s.importer.Parse(accountType, utf8r)
}
