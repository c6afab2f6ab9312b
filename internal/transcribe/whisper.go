package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Whisper transcribes clips with the OpenAI audio transcription API.
type Whisper struct {
	client *openai.Client
	model  openai.AudioModel
}

// WhisperArgs configures the OpenAI transcriber.
type WhisperArgs struct {
	// APIKey authenticates with OpenAI. Empty falls back to the
	// OPENAI_API_KEY environment variable.
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a proxy.
	BaseURL string
	// Model selects the transcription model. Default whisper-1.
	Model string
}

// NewWhisper creates an OpenAI-backed transcription service.
func NewWhisper(args WhisperArgs) *Whisper {
	var opts []option.RequestOption
	if args.APIKey != "" {
		opts = append(opts, option.WithAPIKey(args.APIKey))
	}
	if args.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(args.BaseURL))
	}
	client := openai.NewClient(opts...)

	model := openai.AudioModel(args.Model)
	if model == "" {
		model = openai.AudioModelWhisper1
	}
	return &Whisper{client: &client, model: model}
}

func (w *Whisper) Start(ctx context.Context, audioFile string, done func(Result)) {
	go func() {
		text, err := w.transcribe(ctx, audioFile)
		if err != nil {
			done(Result{Err: fmt.Errorf("transcribe %s: %w", audioFile, err)})
			return
		}
		done(Result{Text: text})
	}()
}

func (w *Whisper) transcribe(ctx context.Context, audioFile string) (string, error) {
	f, err := os.Open(audioFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	resp, err := w.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  f,
		Model: w.model,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}
