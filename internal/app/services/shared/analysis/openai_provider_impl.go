package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"jazaidoc-service/internal/app/config"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"jazaidoc-service/internal/pkg/constvars"
	"jazaidoc-service/internal/pkg/exceptions"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	transcriptionPath = "/audio/transcriptions"
	completionPath    = "/chat/completions"

	callTranscription = "transcription"
	callCompletion    = "completion"
)

type (
	transcriptionResponse struct {
		Text string `json:"text"`
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	responseFormat struct {
		Type string `json:"type"`
	}

	completionRequest struct {
		Model          string         `json:"model"`
		Messages       []chatMessage  `json:"messages"`
		ResponseFormat responseFormat `json:"response_format"`
		Temperature    float64        `json:"temperature"`
	}

	completionResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}

	providerError struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
)

// openAIProvider transcribes with the audio endpoint and extracts fields with a
// JSON-mode chat completion. Calls are never retried.
type openAIProvider struct {
	client             *resty.Client
	limiter            *rate.Limiter
	transcriptionModel string
	completionModel    string
	language           string
	location           *time.Location
	now                func() time.Time
	Log                *zap.Logger
}

func NewOpenAIProvider(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.AnalysisProvider {
	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logger.Warn("NewOpenAIProvider unknown timezone, falling back to UTC",
			zap.String(constvars.LoggingTimezoneKey, internalConfig.App.Timezone),
			zap.Error(err),
		)
		location = time.UTC
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(internalConfig.Analysis.BaseUrl, "/")).
		SetTimeout(time.Duration(internalConfig.Analysis.TimeoutInSeconds) * time.Second).
		SetRetryCount(0).
		SetAuthToken(internalConfig.Analysis.ApiKey).
		SetHeader(constvars.HeaderAccept, constvars.MIMEApplicationJSON).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	perSecond := internalConfig.Analysis.MaxRequestsPerSecond
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &openAIProvider{
		client:             client,
		limiter:            rate.NewLimiter(limit, max(perSecond, 1)),
		transcriptionModel: internalConfig.Analysis.TranscriptionModel,
		completionModel:    internalConfig.Analysis.CompletionModel,
		language:           internalConfig.Analysis.Language,
		location:           location,
		now:                time.Now,
		Log:                logger,
	}
}

func (p *openAIProvider) Analyze(ctx context.Context, audio *models.AudioInput) (*models.AnalysisResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("openAIProvider.Analyze called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFileSizeKey, len(audio.Content)),
	)

	transcript, err := p.transcribe(ctx, audio)
	if err != nil {
		p.Log.Error("openAIProvider.Analyze error transcribing audio",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	fields, err := p.extract(ctx, transcript)
	if err != nil {
		p.Log.Error("openAIProvider.Analyze error extracting fields",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	p.Log.Info("openAIProvider.Analyze succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTranscriptLenKey, len(transcript)),
	)
	return &models.AnalysisResult{Transcript: transcript, Fields: fields}, nil
}

func (p *openAIProvider) transcribe(ctx context.Context, audio *models.AudioInput) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", exceptions.ErrAnalysisProvider(err, callTranscription)
	}

	fileName := audio.FileName
	if fileName == "" {
		fileName = "recording.webm"
	}

	var result transcriptionResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetFileReader("file", fileName, bytes.NewReader(audio.Content)).
		SetFormData(map[string]string{
			"model":    p.transcriptionModel,
			"language": p.language,
		}).
		SetResult(&result).
		SetError(&providerError{}).
		Post(transcriptionPath)
	if err := responseError(resp, err); err != nil {
		return "", exceptions.ErrAnalysisProvider(err, callTranscription)
	}
	return result.Text, nil
}

func (p *openAIProvider) extract(ctx context.Context, transcript string) (map[string]interface{}, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrAnalysisProvider(err, callCompletion)
	}

	request := completionRequest{
		Model: p.completionModel,
		Messages: []chatMessage{
			{Role: "system", Content: buildExtractionPrompt(p.now().In(p.location).Format(visitDateLayout))},
			{Role: "user", Content: transcript},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    0,
	}

	var result completionResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader(constvars.HeaderContentType, constvars.MIMEApplicationJSON).
		SetBody(request).
		SetResult(&result).
		SetError(&providerError{}).
		Post(completionPath)
	if err := responseError(resp, err); err != nil {
		return nil, exceptions.ErrAnalysisProvider(err, callCompletion)
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return nil, exceptions.ErrAnalysisEmptyContent(nil)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &fields); err != nil {
		return nil, exceptions.ErrAnalysisProvider(err, callCompletion)
	}
	return fields, nil
}

func responseError(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	if providerErr, ok := resp.Error().(*providerError); ok && providerErr.Error.Message != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode(), providerErr.Error.Message)
	}
	return errors.New("status " + resp.Status())
}
