package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/arome-jobs/jobwatch/internal/network"
)

const (
	maxResponseBytes = 8 << 20
	maxErrorBody     = 512
)

// apiKey reads the credential at call time so a missing key fails the call, not startup.
func apiKey(source, envName string) (string, error) {
	key := strings.TrimSpace(os.Getenv(envName))
	if key == "" {
		return "", &ConfigError{Source: source, Key: envName, Err: ErrMissingAPIKey}
	}
	return key, nil
}

func rapidAPIHeaders(key, host string) map[string]string {
	return map[string]string{
		"x-rapidapi-key":  key,
		"x-rapidapi-host": host,
	}
}

func getJSON(ctx context.Context, client network.Doer, source, endpoint string, headers map[string]string, out any) error {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	req.Header.Set("accept", "application/json")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	zerolog.Ctx(ctx).Debug().Str("site", source).Str("url", endpoint).Msg("aggregator request")
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", source, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := bytes.TrimSpace(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return &StatusError{Source: source, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", source, err)
	}
	return nil
}

// formatSalaryRange renders an aggregator salary as "min - max CUR / période" with
// thousands grouping for the currency's usual locale. Zero or missing bounds are omitted.
func formatSalaryRange(minValue, maxValue *float64, currency, period string) string {
	low := roundedAmount(minValue)
	high := roundedAmount(maxValue)
	if low == 0 && high == 0 {
		return ""
	}

	printer := message.NewPrinter(salaryLocale(currency))
	var text string
	switch {
	case low > 0 && high > 0 && low != high:
		text = printer.Sprintf("%d - %d", low, high)
	case low > 0:
		text = printer.Sprintf("%d", low)
	default:
		text = printer.Sprintf("%d", high)
	}
	if currency = strings.ToUpper(strings.TrimSpace(currency)); currency != "" {
		text += " " + currency
	}
	if label := periodLabel(period); label != "" {
		text += " / " + label
	}
	return text
}

func roundedAmount(value *float64) int64 {
	if value == nil || *value <= 0 {
		return 0
	}
	return int64(math.Round(*value))
}

func salaryLocale(currency string) language.Tag {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "EUR", "CHF", "XOF", "XAF", "MAD":
		return language.French
	default:
		return language.English
	}
}

// flexString accepts a JSON string or number, since aggregators disagree on id types.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) String() string {
	return string(f)
}
