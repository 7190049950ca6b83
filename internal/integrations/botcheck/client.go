package botcheck

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"helm/config"
	"helm/infras/otel"
	"helm/shared/constant"

	"github.com/rs/zerolog/log"
)

const verifyTimeout = 10 * time.Second

// Verifier checks a client-submitted challenge token against the external
// bot-verification service. When no secret is configured the check is skipped
// entirely.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

type verifierImpl struct {
	cfg        *config.Config
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Verifier {
	return &verifierImpl{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: verifyTimeout,
		},
		otel: otl,
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *verifierImpl) Verify(ctx context.Context, token, remoteIP string) (ok bool, err error) {
	ctx, scope := v.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".botcheck.Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	if v.cfg.BotCheck.Secret == "" {
		return true, nil
	}

	form := url.Values{}
	form.Set("secret", v.cfg.BotCheck.Secret)
	form.Set("response", token)

	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.BotCheck.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build verification request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, "application/x-www-form-urlencoded")

	response, err := v.httpClient.Do(request)
	if err != nil {
		return false, fmt.Errorf("failed to reach verification service: %w", err)
	}
	defer response.Body.Close()

	var payload verifyResponse
	if err = json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("failed to decode verification response: %w", err)
	}

	if !payload.Success {
		log.Warn().Strs("errorCodes", payload.ErrorCodes).Msg("bot verification rejected a booking attempt")
	}

	return payload.Success, nil
}
