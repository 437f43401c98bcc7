package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gatherctl/gather/internal/model"
)

// TestJSONWriterCrypto verifies the raw dump shape.
func TestJSONWriterCrypto(t *testing.T) {
	t.Parallel()

	run := cryptoRun()
	run.AddRawPayload("prices", json.RawMessage(`{"bitcoin":{"usd":114000}}`))

	dir := t.TempDir()
	if err := NewJSONWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "crypto_prices_raw.json"))
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Info struct {
			Tool           string   `json:"tool"`
			CollectionTime string   `json:"collection_time"`
			TotalRecords   int      `json:"total_records"`
			Symbols        []string `json:"cryptocurrencies"`
		} `json:"collection_info"`
		PriceData []model.PriceSample `json:"price_data"`
		RawAPI    map[string]any      `json:"raw_api_response"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to parse dump: %v", err)
	}

	if decoded.Info.Tool != "gather" || decoded.Info.TotalRecords != 2 {
		t.Errorf("collection_info = %+v", decoded.Info)
	}
	if len(decoded.Info.Symbols) != 2 || decoded.Info.Symbols[0] != "BTC" {
		t.Errorf("cryptocurrencies = %v", decoded.Info.Symbols)
	}
	if len(decoded.PriceData) != 2 || decoded.PriceData[0].USDPrice != 114000 {
		t.Errorf("price_data = %+v", decoded.PriceData)
	}
	if _, ok := decoded.RawAPI["bitcoin"]; !ok {
		t.Error("raw_api_response missing upstream payload")
	}
}

// TestJSONWriterCryptoNoRaw verifies the dump degrades to an empty object
// when every round failed to return a payload.
func TestJSONWriterCryptoNoRaw(t *testing.T) {
	t.Parallel()

	run := cryptoRun()

	dir := t.TempDir()
	if err := NewJSONWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "crypto_prices_raw.json"))
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		RawAPI map[string]any `json:"raw_api_response"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to parse dump: %v", err)
	}
	if len(decoded.RawAPI) != 0 {
		t.Errorf("raw_api_response = %v, want empty object", decoded.RawAPI)
	}
}

// TestJSONWriterWeather verifies raw payloads are keyed by city.
func TestJSONWriterWeather(t *testing.T) {
	t.Parallel()

	run := model.NewRun(model.RunWeather)
	run.AddRawPayload("Hà Nội", json.RawMessage(`{"hourly":{}}`))
	run.AddRawPayload("Đà Nẵng", json.RawMessage(`{"hourly":{}}`))

	dir := t.TempDir()
	if err := NewJSONWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "weather_raw.json"))
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to parse dump: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("cities = %d, want 2", len(decoded))
	}
	if _, ok := decoded["Hà Nội"]; !ok {
		t.Error("missing city key")
	}
}

// TestJSONWriterNews verifies the articles dump.
func TestJSONWriterNews(t *testing.T) {
	t.Parallel()

	run := model.NewRun(model.RunNews)
	run.CollectedAt = "2026-08-25 10:00:00"
	run.Articles = []model.Article{{Title: "Tin nhanh", Category: "Thời sự"}}

	dir := t.TempDir()
	if err := NewJSONWriter(dir).Write(run); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "news_articles.json"))
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Info struct {
			TotalRecords int `json:"total_records"`
		} `json:"collection_info"`
		Articles []model.Article `json:"articles"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to parse dump: %v", err)
	}
	if decoded.Info.TotalRecords != 1 || len(decoded.Articles) != 1 {
		t.Errorf("dump = %+v", decoded)
	}
	if decoded.Articles[0].Title != "Tin nhanh" {
		t.Errorf("article title = %q", decoded.Articles[0].Title)
	}
}
