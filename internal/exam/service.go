package exam

import (
	"context"
	"log/slog"
	"time"

	"examgen/internal/config"
	"examgen/internal/gemini"
)

// timestampLayout matches ISO 8601 with millisecond precision in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Settings is the immutable relay configuration built once at startup.
type Settings struct {
	APIKeyConfigured bool
	Model            string
	Timeout          time.Duration
}

func SettingsFromConfig(cfg config.GeminiConfig) Settings {
	return Settings{
		APIKeyConfigured: cfg.HasAPIKey(),
		Model:            cfg.Model,
		Timeout:          cfg.Timeout,
	}
}

type ExamResult struct {
	Exam          string `json:"exam"`
	Topic         string `json:"topic"`
	QuestionCount int    `json:"questionCount"`
	GeneratedAt   string `json:"generatedAt"`
	Model         string `json:"model"`
}

type AnswerKeyResult struct {
	AnswerKey   string `json:"answerKey"`
	GeneratedAt string `json:"generatedAt"`
	Model       string `json:"model"`
}

// Service relays validated requests to the provider.
type Service struct {
	settings Settings
	client   gemini.Client
	logger   *slog.Logger
	now      func() time.Time
}

// NewService builds the relay. client may be nil when no API key is
// configured; every generation then fails with a configuration error.
func NewService(settings Settings, client gemini.Client, logger *slog.Logger) *Service {
	return &Service{
		settings: settings,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}
}

// CheckConfigured reports a configuration error when no credential is set.
func (s *Service) CheckConfigured() error {
	if !s.settings.APIKeyConfigured || s.client == nil {
		return newConfigurationError()
	}
	return nil
}

func (s *Service) GenerateExam(ctx context.Context, req ExamRequest) (ExamResult, error) {
	text, err := s.generate(ctx, BuildExamPrompt(req), msgExamFailed)
	if err != nil {
		return ExamResult{}, err
	}
	return ExamResult{
		Exam:          text,
		Topic:         req.Topic,
		QuestionCount: req.QuestionCount,
		GeneratedAt:   s.timestamp(),
		Model:         s.settings.Model,
	}, nil
}

func (s *Service) GenerateAnswerKey(ctx context.Context, req AnswerKeyRequest) (AnswerKeyResult, error) {
	text, err := s.generate(ctx, BuildAnswerKeyPrompt(req), msgAnswerKeyFailed)
	if err != nil {
		return AnswerKeyResult{}, err
	}
	return AnswerKeyResult{
		AnswerKey:   text,
		GeneratedAt: s.timestamp(),
		Model:       s.settings.Model,
	}, nil
}

func (s *Service) generate(ctx context.Context, prompt string, genericMessage string) (string, error) {
	if err := s.CheckConfigured(); err != nil {
		return "", err
	}

	if s.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		defer cancel()
	}

	start := s.now()
	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return "", Classify(err, genericMessage)
	}

	if s.logger != nil {
		s.logger.Debug("generation complete",
			slog.String("model", s.settings.Model),
			slog.Int("chars", len(text)),
			slog.Duration("duration", s.now().Sub(start)),
		)
	}
	return text, nil
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}
