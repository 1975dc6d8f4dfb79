package service

import (
	"beyondextra_backend/internal/config"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const defaultVoiceID = "EXAVITQu4vr4xnSDxMaL"

var voiceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{10,30}$`)

var (
	ErrTextLength     = errors.New("text must be between 1-5000 characters")
	ErrInvalidVoiceID = errors.New("invalid voice ID")
	ErrAudioRequired  = errors.New("audio file is required")
)

// VoiceService proxies text-to-speech and speech-to-text to an
// ElevenLabs-compatible API. It only forwards; no audio is stored.
type VoiceService struct {
	Cfg    config.VoiceConfig
	client *http.Client
}

func NewVoiceService(cfg config.VoiceConfig) *VoiceService {
	return &VoiceService{
		Cfg:    cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Synthesize returns MP3 audio for the given text.
func (s *VoiceService) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(text) > 5000 {
		return nil, ErrTextLength
	}
	if voiceID == "" {
		voiceID = s.Cfg.VoiceID
	}
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	if !voiceIDPattern.MatchString(voiceID) {
		return nil, ErrInvalidVoiceID
	}

	reqBody := map[string]interface{}{
		"text":     text,
		"model_id": "eleven_turbo_v2_5",
		"voice_settings": map[string]interface{}{
			"stability":         0.5,
			"similarity_boost":  0.75,
			"style":             0.5,
			"use_speaker_boost": true,
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/text-to-speech/%s?output_format=mp3_44100_128", s.Cfg.BaseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", s.Cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS API error (status %d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

type Transcription struct {
	Text string `json:"text"`
}

// Transcribe sends an uploaded audio file to the speech-to-text API.
func (s *VoiceService) Transcribe(ctx context.Context, fileHeader *multipart.FileHeader) (*Transcription, error) {
	if fileHeader == nil {
		return nil, ErrAudioRequired
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileHeader.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	writer.WriteField("model_id", "scribe_v2")
	writer.WriteField("language_code", "eng")
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.Cfg.BaseURL+"/speech-to-text", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", s.Cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("STT API error (status %d): %s", resp.StatusCode, string(errBody))
	}

	var transcription Transcription
	if err := json.NewDecoder(resp.Body).Decode(&transcription); err != nil {
		return nil, err
	}
	return &transcription, nil
}
