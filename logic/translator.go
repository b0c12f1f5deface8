package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jcrbcn/rss2bsky/shared"
)

//go:generate mockgen --build_flags=--mod=mod -destination ../test/mocks/mock_translator.go -package mocks github.com/jcrbcn/rss2bsky/logic ITranslator

const deeplEndpoint = "https://api-free.deepl.com/v2/translate"
const translateTimeoutSec = 10

// ITranslator translates post text. Callers treat failure as a soft
// condition and fall back to the original text.
type ITranslator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

type deeplTranslator struct {
	cfg      *shared.Config
	logger   shared.ILogger
	endpoint string
	client   *http.Client
}

func NewDeepLTranslator(cfg *shared.Config, logger shared.ILogger) ITranslator {
	return newDeepLTranslator(cfg, logger, deeplEndpoint)
}

func newDeepLTranslator(cfg *shared.Config, logger shared.ILogger, endpoint string) ITranslator {
	return &deeplTranslator{
		cfg:      cfg,
		logger:   logger,
		endpoint: endpoint,
		client:   &http.Client{Timeout: translateTimeoutSec * time.Second},
	}
}

func (t *deeplTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {

	if text == "" || targetLang == "" {
		return text, nil
	}
	authKey := t.cfg.Secrets.DeeplAuthKey
	if authKey == "" {
		return "", errors.New("DEEPL_AUTH_KEY is required for translation")
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", normalizeLangCode(targetLang))
	// DeepL auto-detects the source when none is given
	if sourceLang != "" && sourceLang != "auto" {
		form.Set("source_lang", normalizeLangCode(sourceLang))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+authKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translation request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Translations) == 0 || parsed.Translations[0].Text == "" {
		return "", errors.New("translation service returned no translated text")
	}
	return parsed.Translations[0].Text, nil
}

func normalizeLangCode(lang string) string {
	return strings.ToUpper(strings.ReplaceAll(lang, "_", "-"))
}
