package translator

import (
	"context"
	"fmt"
	"sync"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleTranslator sends sentences to the Cloud Translation API instead of
// prompting a model. The client is created on first use and reused.
type GoogleTranslator struct {
	credentials string

	once    sync.Once
	client  *translate.Client
	initErr error
}

// NewGoogleTranslator uses the credentials file at credentials, or the
// application default credentials when it is empty.
func NewGoogleTranslator(credentials string) *GoogleTranslator {
	return &GoogleTranslator{credentials: credentials}
}

func (s *GoogleTranslator) Name() string {
	return "google"
}

func (s *GoogleTranslator) init(ctx context.Context) error {
	s.once.Do(func() {
		opts := []option.ClientOption{}
		if s.credentials != "" {
			opts = append(opts, option.WithCredentialsFile(s.credentials))
		}
		s.client, s.initErr = translate.NewClient(ctx, opts...)
		if s.initErr != nil {
			s.initErr = fmt.Errorf("failed to create client: %w", s.initErr)
		}
	})
	return s.initErr
}

func (s *GoogleTranslator) Translate(ctx context.Context, sentence string) Result {
	if err := s.init(ctx); err != nil {
		return Failed(err)
	}

	translations, err := s.client.Translate(ctx, []string{sentence}, language.Hindi, &translate.Options{
		Source: language.English,
		Format: translate.Text,
	})
	if err != nil {
		return Failed(fmt.Errorf("translation failed: %w", err))
	}
	if len(translations) == 0 {
		return Failed(fmt.Errorf("no translation returned"))
	}

	text := translations[0].Text
	if text == "" {
		return Result{Err: ErrEmpty}
	}
	return Result{Text: text, Raw: text}
}

// Close releases the API client if one was created.
func (s *GoogleTranslator) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
